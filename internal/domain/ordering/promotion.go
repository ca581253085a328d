package ordering

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/BuenSabor-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Motivos por los que una promoción no aplica a una línea.
const (
	RejectInactive      = "promoción inactiva"
	RejectOutsideDates  = "fuera del rango de fechas"
	RejectOutsideHours  = "fuera de la franja horaria"
	RejectArticle       = "artículo no incluido en la promoción"
	RejectBranch        = "sucursal no incluida en la promoción"
	RejectMinQuantity   = "cantidad menor a la mínima"
	RejectInvalidWindow = "franja horaria mal configurada"
)

// ParseClock convierte "HH:MM" a minutos desde medianoche.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, fmt.Errorf("hora inválida %q", s)
	}
	return hh*60 + mm, nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WithinDates indica si la fecha de now (en su zona) cae en [StartDate, EndDate], inclusive.
func WithinDates(p *entity.Promotion, now time.Time) bool {
	today := civilDate(now)
	if !p.StartDate.IsZero() && today.Before(civilDate(p.StartDate)) {
		return false
	}
	if !p.EndDate.IsZero() && today.After(civilDate(p.EndDate)) {
		return false
	}
	return true
}

// WithinHours indica si la hora de now cae en la franja diaria. Sin franja = todo el día.
// Si StartTime > EndTime la franja cruza la medianoche (ej. 22:00-02:00).
func WithinHours(p *entity.Promotion, now time.Time) (bool, error) {
	if p.StartTime == "" && p.EndTime == "" {
		return true, nil
	}
	start, err := ParseClock(p.StartTime)
	if err != nil {
		return false, err
	}
	end, err := ParseClock(p.EndTime)
	if err != nil {
		return false, err
	}
	cur := now.Hour()*60 + now.Minute()
	if start <= end {
		return cur >= start && cur <= end, nil
	}
	return cur >= start || cur <= end, nil
}

// Eligibility evalúa si la promoción aplica a (artículo, cantidad, sucursal) en now.
// Devuelve el motivo del rechazo cuando no aplica.
func Eligibility(p *entity.Promotion, articleID, branchID string, quantity int, now time.Time) (bool, string) {
	if !p.Active {
		return false, RejectInactive
	}
	if !WithinDates(p, now) {
		return false, RejectOutsideDates
	}
	inHours, err := WithinHours(p, now)
	if err != nil {
		return false, RejectInvalidWindow
	}
	if !inHours {
		return false, RejectOutsideHours
	}
	if !slices.Contains(p.ArticleIDs, articleID) {
		return false, RejectArticle
	}
	if !slices.Contains(p.BranchIDs, branchID) {
		return false, RejectBranch
	}
	if quantity < p.MinQuantity {
		return false, RejectMinQuantity
	}
	return true, ""
}

// Discount calcula el descuento de la línea. PERCENTAGE se aplica sobre el subtotal
// extendido (precio × cantidad); FIXED es un monto plano que no escala con la cantidad.
// El resultado nunca supera el subtotal de la línea ni es negativo.
func Discount(p *entity.Promotion, unitPrice decimal.Decimal, quantity int) decimal.Decimal {
	subtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
	var d decimal.Decimal
	switch p.DiscountType {
	case entity.DiscountPercentage:
		d = subtotal.Mul(p.Value).Div(hundred)
	case entity.DiscountFixed:
		d = p.Value
	default:
		return decimal.Zero
	}
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}
