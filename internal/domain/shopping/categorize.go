package shopping

import (
	"regexp"
	"sort"
	"strings"
)

// CategoryOther is the fallback grocery category
const CategoryOther = "Other"

// categoryEntry pairs a grocery category with its match keywords. Table
// order is the tie-break: the first category with a matching keyword wins.
type categoryEntry struct {
	name     string
	keywords []string
}

var categoryTable = []categoryEntry{
	{"Produce", []string{
		"vegetable", "vegetables", "fruit", "fruits", "apple", "banana", "orange",
		"lettuce", "spinach", "kale", "carrot", "tomato", "potato", "onion",
		"garlic", "avocado", "broccoli", "cucumber", "pepper", "zucchini",
		"squash", "mushroom",
	}},
	{"Meat & Seafood", []string{
		"meat", "beef", "chicken", "pork", "turkey", "lamb", "fish", "salmon",
		"tuna", "shrimp", "seafood", "bacon", "sausage", "ground",
	}},
	{"Dairy & Eggs", []string{
		"milk", "cheese", "yogurt", "butter", "cream", "egg", "dairy", "yoghurt",
	}},
	{"Bakery", []string{
		"bread", "roll", "bun", "bagel", "tortilla", "pita", "pastry", "cake", "cookie",
	}},
	{"Grains & Pasta", []string{
		"rice", "pasta", "noodle", "grain", "quinoa", "couscous", "barley",
		"oat", "cereal", "flour", "cornmeal",
	}},
	{"Canned Goods", []string{
		"can", "canned", "soup", "beans", "tomato sauce", "broth", "stock",
	}},
	{"Condiments & Sauces", []string{
		"sauce", "ketchup", "mustard", "mayonnaise", "dressing", "vinegar",
		"oil", "condiment", "syrup", "honey", "jam", "jelly",
	}},
	{"Spices & Herbs", []string{
		"spice", "herb", "seasoning", "salt", "pepper", "basil", "oregano",
		"thyme", "rosemary", "cinnamon", "cumin", "paprika", "curry",
	}},
	{"Nuts & Seeds", []string{
		"nut", "seed", "almond", "walnut", "peanut", "cashew", "pecan",
		"pistachio", "sesame", "flax", "chia", "sunflower",
	}},
	{"Beverages", []string{
		"water", "juice", "soda", "coffee", "tea", "wine", "beer", "beverage", "drink",
	}},
	{"Frozen Foods", []string{
		"frozen", "ice cream", "frozen vegetables", "frozen fruit",
	}},
	{"Snacks", []string{
		"chip", "cracker", "pretzel", "popcorn", "snack", "candy", "chocolate",
	}},
}

// Categories returns the fixed grocery category set in table order,
// followed by the Other fallback
func Categories() []string {
	out := make([]string, 0, len(categoryTable)+1)
	for _, e := range categoryTable {
		out = append(out, e.name)
	}
	return append(out, CategoryOther)
}

var categoryRank = func() map[string]int {
	ranks := make(map[string]int, len(categoryTable)+1)
	for i, e := range categoryTable {
		ranks[e.name] = i
	}
	ranks[CategoryOther] = len(categoryTable)
	return ranks
}()

// CategorizeIngredient maps an ingredient name onto exactly one grocery
// category. Total and deterministic: unmatched names get CategoryOther.
func CategorizeIngredient(name string) string {
	lower := strings.ToLower(name)
	for _, entry := range categoryTable {
		for _, keyword := range entry.keywords {
			if strings.Contains(lower, keyword) {
				return entry.name
			}
		}
	}
	return CategoryOther
}

// Quantity prefixes like "2 cups of", "1/2 tbsp", "500 g". The optional
// "of" joins quantity and name in phrases like "1 cup of rice".
var quantityPattern = regexp.MustCompile(
	`^([\d/\.\s]+\s*(?:cup|tbsp|tsp|oz|g|kg|ml|l|pound|lb|piece|slice|clove)s?)\s+(?:of\s+)?(.+)$`)

// ParseIngredient splits a free-text ingredient into a leading quantity
// token and the canonical item name. When no quantity is recognized the
// whole string is the name.
func ParseIngredient(raw string) (quantity, name string) {
	cleaned := strings.ToLower(strings.TrimSpace(strings.SplitN(raw, ",", 2)[0]))
	if m := quantityPattern.FindStringSubmatch(cleaned); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", cleaned
}

// BuildItems applies the local strategy to a flattened ingredient
// sequence: strip quantities, categorize by keyword, dedupe on the
// lower-cased canonical name (first occurrence wins, later duplicates are
// dropped without merging quantities), and order the result by category.
func BuildItems(ingredients []string) []Item {
	seen := make(map[string]struct{}, len(ingredients))
	items := make([]Item, 0, len(ingredients))

	for _, raw := range ingredients {
		quantity, name := ParseIngredient(raw)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		items = append(items, Item{
			ItemName:    capitalize(name),
			Quantity:    quantity,
			Category:    CategorizeIngredient(name),
			IsPurchased: false,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return categoryRank[items[i].Category] < categoryRank[items[j].Category]
	})
	return items
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
