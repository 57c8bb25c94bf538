// Package composer implements the guided custom sandwich builder: a six
// step flow (size, meat, cheese, salad, sauce, extras) that produces a
// single priced cart line.
package composer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"movearena-pos/internal/domain"
	"movearena-pos/internal/menu"
	"movearena-pos/internal/money"
)

// Step identifies one of the six builder steps
type Step int

const (
	StepSize Step = iota + 1
	StepMeat
	StepCheese
	StepSalad
	StepSauce
	StepExtras
)

const maxCheeses = 2

// Custom item cost is approximated as 40% of the base size price.
const costNumerator, costDenominator = 40, 100

var (
	ErrSizeRequired = errors.New("a size must be selected first")
	ErrUnknownSize  = errors.New("unknown size")
	ErrUnknownExtra = errors.New("unknown extra for selected size")
)

// Composer is the transient builder state. Create one per dialog open,
// discard on cancel, Build on confirm.
type Composer struct {
	step    Step
	size    *menu.Size
	meat    string
	cheeses []string
	salads  []string
	sauces  []string
	extras  map[string]int
}

// New returns a composer positioned at the size step with nothing chosen
func New() *Composer {
	return &Composer{
		step:   StepSize,
		extras: make(map[string]int),
	}
}

// Step returns the current step
func (c *Composer) Step() Step {
	return c.step
}

// Next advances to the following step. Leaving the size step requires a
// size; every other transition is unconditional.
func (c *Composer) Next() error {
	if c.step == StepSize && c.size == nil {
		return ErrSizeRequired
	}
	if c.step < StepExtras {
		c.step++
	}
	return nil
}

// Prev steps back, never before the size step
func (c *Composer) Prev() {
	if c.step > StepSize {
		c.step--
	}
}

// SelectSize chooses the sandwich size that anchors base price and the
// extra price table
func (c *Composer) SelectSize(key string) error {
	size, ok := menu.SizeByKey(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSize, key)
	}
	c.size = &size
	return nil
}

// SelectMeat picks the protein; an empty name means no meat
func (c *Composer) SelectMeat(name string) {
	c.meat = name
}

// ToggleCheese flips a cheese selection. At most two cheeses are kept; a
// third choice replaces the oldest-but-one, matching the original flow.
// Holding two cheeses auto-applies one unit of the double-cheese extra;
// dropping below two removes it.
func (c *Composer) ToggleCheese(name string) {
	idx := -1
	for i, cheese := range c.cheeses {
		if cheese == name {
			idx = i
			break
		}
	}

	switch {
	case idx >= 0:
		c.cheeses = append(c.cheeses[:idx], c.cheeses[idx+1:]...)
	case len(c.cheeses) < maxCheeses:
		c.cheeses = append(c.cheeses, name)
	default:
		c.cheeses = []string{c.cheeses[1], name}
	}

	c.syncDoubleCheese()
}

// ClearCheeses removes all cheeses and the double-cheese extra
func (c *Composer) ClearCheeses() {
	c.cheeses = nil
	c.syncDoubleCheese()
}

func (c *Composer) syncDoubleCheese() {
	if len(c.cheeses) == maxCheeses {
		c.extras[menu.ExtraDoubleCheese] = 1
	} else {
		delete(c.extras, menu.ExtraDoubleCheese)
	}
}

// ToggleSalad flips a salad selection; salads carry no charge
func (c *Composer) ToggleSalad(name string) {
	for i, s := range c.salads {
		if s == name {
			c.salads = append(c.salads[:i], c.salads[i+1:]...)
			return
		}
	}
	c.salads = append(c.salads, name)
}

// SelectAllSalads selects the full salad ("completa")
func (c *Composer) SelectAllSalads() {
	c.salads = append([]string(nil), menu.Salads...)
}

// ClearSalads removes every salad
func (c *Composer) ClearSalads() {
	c.salads = nil
}

// ToggleSauce flips a sauce selection; sauces carry no charge
func (c *Composer) ToggleSauce(name string) {
	for i, s := range c.sauces {
		if s == name {
			c.sauces = append(c.sauces[:i], c.sauces[i+1:]...)
			return
		}
	}
	c.sauces = append(c.sauces, name)
}

// ClearSauces removes every sauce
func (c *Composer) ClearSauces() {
	c.sauces = nil
}

// IncrementExtra adds one unit of a priced extra. The extra must exist in
// the selected size's price table.
func (c *Composer) IncrementExtra(key string) error {
	if c.size == nil {
		return ErrSizeRequired
	}
	if _, ok := c.size.Extras[key]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownExtra, key)
	}
	c.extras[key]++
	return nil
}

// DecrementExtra removes one unit of an extra, flooring at zero; reaching
// zero drops the extra from the priced set entirely
func (c *Composer) DecrementExtra(key string) {
	if c.extras[key] <= 1 {
		delete(c.extras, key)
		return
	}
	c.extras[key]--
}

// ExtraQuantity reports the current units of one extra
func (c *Composer) ExtraQuantity(key string) int {
	return c.extras[key]
}

// Total is the running price: base size price plus every extra unit at
// the selected size's rate. Without a size the total is zero.
func (c *Composer) Total() money.Cents {
	if c.size == nil {
		return 0
	}
	total := c.size.Price
	for key, qty := range c.extras {
		if qty > 0 {
			total += c.size.Extras[key].Mul(qty)
		}
	}
	return total
}

// CanConfirm reports whether the composition can be turned into a cart
// line; only a size is mandatory
func (c *Composer) CanConfirm() bool {
	return c.size != nil
}

// Build converts the composition into a custom cart line with quantity 1,
// a synthetic identity, the computed price, and both the structured
// composition record and its text rendering.
func (c *Composer) Build(customName string) (domain.CartItem, error) {
	if c.size == nil {
		return domain.CartItem{}, ErrSizeRequired
	}

	comp := c.Composition()

	name := "Lanche " + c.size.Name
	if trimmed := strings.TrimSpace(customName); trimmed != "" {
		name = name + " - " + trimmed
	}

	return domain.CartItem{
		ID:          "custom_" + uuid.New().String(),
		Name:        name,
		Price:       c.Total(),
		Cost:        c.size.Price.Mul(costNumerator) / costDenominator,
		Quantity:    1,
		Observation: Describe(comp),
		IsCustom:    true,
		Composition: &comp,
	}, nil
}

// Composition snapshots the current builder state as a structured record
func (c *Composer) Composition() domain.Composition {
	comp := domain.Composition{
		Size:      c.size.Key,
		SizePrice: c.size.Price,
		Meat:      c.meat,
		Cheeses:   append([]string(nil), c.cheeses...),
		Salads:    append([]string(nil), c.salads...),
		Sauces:    append([]string(nil), c.sauces...),
	}
	for _, key := range extraOrder {
		if qty := c.extras[key]; qty > 0 {
			comp.Extras = append(comp.Extras, domain.ExtraSelection{
				Key:       key,
				Name:      menu.ExtraNames[key],
				UnitPrice: c.size.Extras[key],
				Quantity:  qty,
			})
		}
	}
	return comp
}

// extraOrder fixes the rendering order of extras
var extraOrder = []string{"bacon", "presunto", "peru", "queijo"}

// Describe renders a composition as the labeled text shown on receipts
// and in the cart. One line per category; multi-values comma joined.
func Describe(comp domain.Composition) string {
	meat := comp.Meat
	if meat == "" {
		meat = "Sem carne"
	}
	cheeses := "Sem queijo"
	if len(comp.Cheeses) > 0 {
		cheeses = strings.Join(comp.Cheeses, ", ")
	}
	salads := "Sem salada"
	if len(comp.Salads) > 0 {
		salads = strings.Join(comp.Salads, ", ")
	}
	sauces := "Sem molho"
	if len(comp.Sauces) > 0 {
		sauces = strings.Join(comp.Sauces, ", ")
	}

	lines := []string{
		"Tamanho: " + comp.Size,
		"Carne: " + meat,
		"Queijos: " + cheeses,
		"Salada: " + salads,
		"Molhos: " + sauces,
	}

	if len(comp.Extras) > 0 {
		parts := make([]string, 0, len(comp.Extras))
		for _, extra := range comp.Extras {
			parts = append(parts, fmt.Sprintf("%dx %s", extra.Quantity, extra.Name))
		}
		lines = append(lines, "Extras: "+strings.Join(parts, ", "))
	}

	return strings.Join(lines, "\n")
}
