// Package menu holds the fixed sandwich menu: sizes with their base prices,
// the per-size extra-ingredient price tables, and the selectable fillings.
package menu

import (
	"movearena-pos/internal/money"
)

// ExtraDoubleCheese is the extra automatically applied when a second
// cheese is selected in the composer.
const ExtraDoubleCheese = "queijo"

// Size is a sandwich size with its base price and extra price table
type Size struct {
	Key    string
	Name   string
	Price  money.Cents
	Extras map[string]money.Cents
}

// Option is a named selectable ingredient
type Option struct {
	Key  string
	Name string
}

var sizes = map[string]Size{
	"15cm": {
		Key:   "15cm",
		Name:  "15cm",
		Price: 1800,
		Extras: map[string]money.Cents{
			"bacon":    400,
			"presunto": 300,
			"peru":     400,
			"queijo":   300,
		},
	},
	"30cm": {
		Key:   "30cm",
		Name:  "30cm",
		Price: 3200,
		Extras: map[string]money.Cents{
			"bacon":    600,
			"presunto": 500,
			"peru":     600,
			"queijo":   500,
		},
	},
}

// Meats are the protein choices (at most one, optional)
var Meats = []Option{
	{Key: "carne-suprema", Name: "Carne Suprema"},
	{Key: "frango-cream-cheese", Name: "Frango com Cream Cheese"},
	{Key: "lombo-defumado", Name: "Lombo Defumado"},
}

// Cheeses are the cheese choices (up to two)
var Cheeses = []Option{
	{Key: "mussarela", Name: "Mussarela"},
	{Key: "cheddar", Name: "Cheddar Cremoso"},
	{Key: "ricota", Name: "Ricota"},
}

// Salads are the free salad choices
var Salads = []string{
	"Alface", "Tomate", "Picles", "Pimentao",
	"Cebola Roxa", "Azeitona", "Cenoura Ralada", "Rucula",
}

// Sauces are the free sauce choices
var Sauces = []Option{
	{Key: "chipotle", Name: "Chipotle"},
	{Key: "mostarda-mel", Name: "Mostarda e Mel"},
	{Key: "maionese", Name: "Maionese Temperada"},
	{Key: "ranch", Name: "Molho Ranch"},
	{Key: "barbecue", Name: "Barbecue"},
	{Key: "baconese", Name: "Baconese"},
}

// ExtraNames maps extra keys to display names
var ExtraNames = map[string]string{
	"bacon":    "Bacon",
	"presunto": "Presunto",
	"peru":     "Peito de Peru",
	"queijo":   "Queijo em Dobro",
}

// SeedProduct is one entry of the stock beverage catalog restored on demand
type SeedProduct struct {
	Name     string
	Category string
	Price    money.Cents
	Cost     money.Cents
	Stock    int
}

// DefaultProducts is the beverage catalog the shop opens with
var DefaultProducts = []SeedProduct{
	{Name: "Coca-Cola Lata", Category: "bebidas", Price: 600, Cost: 300, Stock: 50},
	{Name: "Coca-Cola Zero Lata", Category: "bebidas", Price: 600, Cost: 300, Stock: 30},
	{Name: "Guarana Lata", Category: "bebidas", Price: 600, Cost: 300, Stock: 40},
	{Name: "Guarana Zero Lata", Category: "bebidas", Price: 600, Cost: 300, Stock: 20},
	{Name: "Agua sem Gas", Category: "bebidas", Price: 300, Cost: 100, Stock: 60},
	{Name: "Agua com Gas", Category: "bebidas", Price: 500, Cost: 200, Stock: 40},
	{Name: "Limoneto", Category: "bebidas", Price: 800, Cost: 400, Stock: 25},
	{Name: "Gatorade", Category: "bebidas", Price: 800, Cost: 400, Stock: 20},
	{Name: "Suco de Uva Integral", Category: "bebidas", Price: 800, Cost: 400, Stock: 15},
	{Name: "Redbull", Category: "bebidas", Price: 1200, Cost: 600, Stock: 30},
	{Name: "Fanta Laranja Lata", Category: "bebidas", Price: 600, Cost: 300, Stock: 30},
	{Name: "Fanta Uva Lata", Category: "bebidas", Price: 600, Cost: 300, Stock: 20},
	{Name: "Sprite Lata", Category: "bebidas", Price: 600, Cost: 300, Stock: 20},
	{Name: "Schweppes Citrus Lata", Category: "bebidas", Price: 700, Cost: 350, Stock: 15},
	{Name: "H2OH Limão 500ml", Category: "bebidas", Price: 700, Cost: 350, Stock: 20},
	{Name: "Coca-Cola 600ml", Category: "bebidas", Price: 900, Cost: 450, Stock: 20},
	{Name: "Guaraná Antarctica 600ml", Category: "bebidas", Price: 900, Cost: 450, Stock: 20},
	{Name: "Suco Del Valle Pêssego", Category: "bebidas", Price: 800, Cost: 400, Stock: 15},
	{Name: "Suco Del Valle Uva", Category: "bebidas", Price: 800, Cost: 400, Stock: 15},
	{Name: "Coca-Cola 2 Litros", Category: "bebidas", Price: 1600, Cost: 900, Stock: 10},
	{Name: "Guaraná Antarctica 2 Litros", Category: "bebidas", Price: 1500, Cost: 800, Stock: 10},
}

// SizeByKey looks up a size by its key ("15cm", "30cm")
func SizeByKey(key string) (Size, bool) {
	s, ok := sizes[key]
	return s, ok
}

// SizeKeys returns the available size keys in menu order
func SizeKeys() []string {
	return []string{"15cm", "30cm"}
}
