package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Cents is a monetary amount in integer minor units (centavos).
// All internal arithmetic happens on this type; decimal rendering
// only happens at formatting boundaries.
type Cents int64

var ErrInvalidAmount = errors.New("invalid monetary amount")

// Mul multiplies an amount by an integer quantity.
func (c Cents) Mul(qty int) Cents {
	return c * Cents(qty)
}

// Percent returns pct% of the amount, rounded half away from zero.
func (c Cents) Percent(pct int64) Cents {
	n := int64(c) * pct
	if n >= 0 {
		return Cents((n + 50) / 100)
	}
	return Cents((n - 50) / 100)
}

// ClampZero floors the amount at zero.
func (c Cents) ClampZero() Cents {
	if c < 0 {
		return 0
	}
	return c
}

// Decimal renders the amount as a plain decimal string with two places,
// e.g. 1234 -> "12.34".
func (c Cents) Decimal() string {
	neg := c < 0
	v := int64(c)
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%d.%02d", v/100, v%100)
	if neg {
		return "-" + s
	}
	return s
}

// BRL renders the amount in Brazilian currency display format,
// e.g. 1234 -> "R$ 12,34".
func (c Cents) BRL() string {
	return "R$ " + strings.ReplaceAll(c.Decimal(), ".", ",")
}

// Parse converts a decimal string ("12.34" or "12,34") to Cents.
// At most two fractional digits are accepted.
func Parse(s string) (Cents, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	whole := s
	frac := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: %q has more than two decimal places", ErrInvalidAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	v := w*100 + f
	if neg {
		v = -v
	}
	return Cents(v), nil
}
