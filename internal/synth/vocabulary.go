package synth

import "sort"

// The fixed demo vocabulary. Queries map to categories, categories carry a
// base click probability, and a handful of queries are designated as
// systematically underperforming so the opportunity finder has something to
// surface.

var queryCategories = map[string]string{
	"running shoes":     "Sportswear",
	"sneakers":          "Footwear",
	"winter jacket":     "Apparel",
	"jeans":             "Apparel",
	"t shirt":           "Apparel",
	"lipstick":          "Beauty",
	"moisturizer":       "Beauty",
	"perfume":           "Beauty",
	"gaming mouse":      "Electronics",
	"wireless keyboard": "Electronics",
	"earbuds":           "Electronics",
	"smart watch":       "Electronics",
	"coffee maker":      "Home Appliances",
	"blender":           "Home Appliances",
	"vacuum cleaner":    "Home Appliances",
	"dog food":          "Pet Supplies",
	"cat litter":        "Pet Supplies",
	"yoga mat":          "Sportswear",
}

// Higher click probability for electronics & beauty (better merchandising).
var categoryClickProb = map[string]float64{
	"Electronics":     0.80,
	"Beauty":          0.75,
	"Sportswear":      0.70,
	"Footwear":        0.70,
	"Apparel":         0.65,
	"Home Appliances": 0.60,
	"Pet Supplies":    0.60,
}

// Queries that are systematically worse, e.g. due to poor search config.
var badQueries = map[string]bool{
	"t shirt":    true,
	"blender":    true,
	"cat litter": true,
}

// Noisy variants simulate typos and spelling drift. The raw query gets the
// variant; NormalizedQuery keeps the canonical form.
var noisyVariants = map[string]string{
	"running shoes": "runing shoes",
	"sneakers":      "sneeker",
	"winter jacket": "winter jaket",
	"t shirt":       "t-shirt",
	"earbuds":       "ear buds",
}

const (
	badQueryPenalty  = 0.20
	typoRate         = 0.10
	zeroResultRate   = 0.05
	basePurchaseProb = 0.22
	purchaseBonus    = 0.08
)

// Categories that convert better once clicked.
var purchaseBonusCategories = map[string]bool{
	"Beauty":       true,
	"Pet Supplies": true,
}

// Queries returns the canonical query vocabulary in stable order.
func Queries() []string {
	out := make([]string, 0, len(queryCategories))
	for q := range queryCategories {
		out = append(out, q)
	}
	sort.Strings(out)
	return out
}
