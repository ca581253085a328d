package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestViolations(t *testing.T) {
	unique := fmt.Errorf("insert invoice: %w", &pgconn.PgError{Code: "23505", ConstraintName: "invoices_number_key"})
	assert.True(t, isUniqueViolation(unique))
	assert.Equal(t, "invoices_number_key", violatedConstraint(unique))
	assert.False(t, isForeignKeyViolation(unique))

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "payments_invoice_id_fkey"}
	assert.True(t, isForeignKeyViolation(fk))
	assert.False(t, isUniqueViolation(fk))

	plain := errors.New("conexión cerrada")
	assert.False(t, isUniqueViolation(plain))
	assert.Empty(t, violatedConstraint(plain))
}

func TestNullIfEmpty(t *testing.T) {
	assert.Nil(t, nullIfEmpty(""))
	if p := nullIfEmpty("x"); assert.NotNil(t, p) {
		assert.Equal(t, "x", *p)
	}
}
