package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	id := Identity{UserID: "u-1", CustomerID: "c-1", Role: "CLIENTE"}
	token, err := Generate("s3cr3t", id, "buen-sabor", 5)
	require.NoError(t, err)

	got, err := Parse("s3cr3t", token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestParse_Rechazos(t *testing.T) {
	token, err := Generate("s3cr3t", Identity{UserID: "u-1", Role: "ADMIN"}, "buen-sabor", 5)
	require.NoError(t, err)

	_, err = Parse("otro", token)
	assert.Error(t, err, "firma con otro secreto")

	expired, err := Generate("s3cr3t", Identity{UserID: "u-1", Role: "ADMIN"}, "buen-sabor", -1)
	require.NoError(t, err)
	_, err = Parse("s3cr3t", expired)
	assert.Error(t, err, "token vencido")

	_, err = Parse("", token)
	assert.Error(t, err)
	_, err = Generate("", Identity{}, "", 5)
	assert.Error(t, err)
}
