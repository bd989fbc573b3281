package category

import (
	"errors"
	"fmt"
)

// Type is the semantic class a raw transaction category belongs to.
type Type string

const (
	TypePhysical Type = "Physical"
	TypeDigital  Type = "Digital"
	TypeOthers   Type = "Others"
)

// Types returns the category types in display order.
func Types() []Type {
	return []Type{TypePhysical, TypeDigital, TypeOthers}
}

// Raw category codes as they appear in the transactions extract.
const (
	GroceryPOS    = "grocery_pos"
	ShoppingPOS   = "shopping_pos"
	GasTransport  = "gas_transport"
	KidsPets      = "kids_pets"
	Home          = "home"
	NoCategory    = "no_category"
	PersonalCare  = "personal_care"
	FoodDining    = "food_dining"
	Entertainment = "entertainment"
	MiscPOS       = "misc_pos"
	HealthFitness = "health_fitness"
	ShoppingNet   = "shopping_net"
	Travel        = "travel"
	MiscNet       = "misc_net"
	GroceryNet    = "grocery_net"
)

var ErrMissingCategoryLabel = errors.New("missing category label")

var physical = map[string]struct{}{
	GroceryPOS:   {},
	GasTransport: {},
	ShoppingPOS:  {},
	MiscPOS:      {},
}

var digital = map[string]struct{}{
	GroceryNet:  {},
	ShoppingNet: {},
	MiscNet:     {},
}

// vocabulary holds every known code in display order with its human label.
var vocabulary = []struct {
	code  string
	label string
}{
	{GroceryPOS, "Physical Grocery"},
	{ShoppingPOS, "Physical Shopping"},
	{GasTransport, "Gas and Transportation"},
	{KidsPets, "Kids and Pets"},
	{Home, "Home"},
	{NoCategory, "No Category"},
	{PersonalCare, "Personal Care"},
	{FoodDining, "Food and Dining"},
	{Entertainment, "Entertainment"},
	{MiscPOS, "Physical Miscellaneous"},
	{HealthFitness, "Health and Fitness"},
	{ShoppingNet, "Online Shopping"},
	{Travel, "Travel"},
	{MiscNet, "Online Miscellaneous"},
	{GroceryNet, "Online Grocery"},
}

var (
	labels = make(map[string]string, len(vocabulary))
	order  = make(map[string]int, len(vocabulary))
)

func init() {
	for i, v := range vocabulary {
		labels[v.code] = v.label
		order[v.code] = i
	}
}

// Classify maps a raw category code to its type. Codes outside the physical
// and digital sets, including unknown ones, are Others.
func Classify(code string) Type {
	if _, ok := physical[code]; ok {
		return TypePhysical
	}

	if _, ok := digital[code]; ok {
		return TypeDigital
	}

	return TypeOthers
}

// Label returns the display label for a category code.
func Label(code string) (string, error) {
	l, ok := labels[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrMissingCategoryLabel, code)
	}

	return l, nil
}

// Known reports whether code is part of the category vocabulary.
func Known(code string) bool {
	_, ok := labels[code]
	return ok
}

// Codes returns the category vocabulary in display order.
func Codes() []string {
	codes := make([]string, len(vocabulary))
	for i, v := range vocabulary {
		codes[i] = v.code
	}

	return codes
}

// Position returns the display position of a known code, or -1.
func Position(code string) int {
	if i, ok := order[code]; ok {
		return i
	}

	return -1
}

// Validate checks that the static tables agree with each other: every code
// is labelled once and no code is both physical and digital.
func Validate() error {
	if len(labels) != len(vocabulary) {
		return fmt.Errorf("category vocabulary has duplicate codes")
	}

	for code := range physical {
		if _, ok := digital[code]; ok {
			return fmt.Errorf("category %q is both physical and digital", code)
		}

		if !Known(code) {
			return fmt.Errorf("physical category %q: %w", code, ErrMissingCategoryLabel)
		}
	}

	for code := range digital {
		if !Known(code) {
			return fmt.Errorf("digital category %q: %w", code, ErrMissingCategoryLabel)
		}
	}

	return nil
}
