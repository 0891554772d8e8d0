// Package nutrition contains the nutrition value objects shared by the
// estimator and the meal plan domain.
package nutrition

// Facts holds calorie and macronutrient estimates for a food or meal.
// Micronutrient fields are optional: nil means the source had no data,
// which is distinct from a measured zero.
type Facts struct {
	Calories      float64  `json:"calories"`
	ProteinGrams  float64  `json:"protein_grams"`
	CarbsGrams    float64  `json:"carbs_grams"`
	FatGrams      float64  `json:"fat_grams"`
	FiberGrams    *float64 `json:"fiber_grams,omitempty"`
	SugarGrams    *float64 `json:"sugar_grams,omitempty"`
	SodiumMg      *float64 `json:"sodium_mg,omitempty"`
	CholesterolMg *float64 `json:"cholesterol_mg,omitempty"`
}

// Add accumulates another set of facts into f. Optional fields are left
// untouched: summing partially known micronutrients would report a false
// total.
func (f *Facts) Add(other Facts) {
	f.Calories += other.Calories
	f.ProteinGrams += other.ProteinGrams
	f.CarbsGrams += other.CarbsGrams
	f.FatGrams += other.FatGrams
}
