package dataset

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
)

// Generation is the age cohort a customer was assigned to upstream.
type Generation string

const (
	GenerationGreatest Generation = "Greatest Generation"
	GenerationSilent   Generation = "Silent Generation"
	GenerationBoomers  Generation = "Baby Boomers"
	GenerationX        Generation = "Generation X"
)

// Generations returns the known cohorts, oldest first.
func Generations() []Generation {
	return []Generation{GenerationGreatest, GenerationSilent, GenerationBoomers, GenerationX}
}

// SortGenerations orders known cohorts oldest first, followed by any unknown
// ones alphabetically.
func SortGenerations(gens []Generation) {
	rank := func(g Generation) int {
		if i := slices.Index(Generations(), g); i >= 0 {
			return i
		}

		return len(Generations())
	}

	slices.SortStableFunc(gens, func(a, b Generation) int {
		ra, rb := rank(a), rank(b)
		if ra != rb {
			return ra - rb
		}

		return cmp.Compare(a, b)
	})
}

// Gender of a customer, F or M.
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
)

// Unclustered marks a row whose cluster label is unknown. Zero is a real
// label, so it cannot serve as the default.
const Unclustered = -1

// Transaction is one labelled row of the transactions extract.
type Transaction struct {
	Amount       decimal.Decimal
	Category     string
	CategoryType category.Type
	Time         time.Time
	Year         int
	Month        int
	Generation   Generation
	Cluster      int
	CardNumber   string // empty when the extract has no cc_num column
}

// Customer is one row of the unique account holders extract.
type Customer struct {
	CardNumber string
	Gender     Gender
	Generation Generation
	Age        int
	City       string
	Cluster    int
}
