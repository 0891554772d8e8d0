package mealplan

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IngredientList decodes generator output where ingredients arrive either
// as plain strings ("1 cup oats") or as {name, quantity, unit} objects,
// depending on the generator variant. Both shapes collapse to the opaque
// string form the rest of the system works with.
type IngredientList []string

// UnmarshalJSON implements json.Unmarshaler
func (l *IngredientList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	out := make([]string, 0, len(raw))
	for _, entry := range raw {
		var s string
		if err := json.Unmarshal(entry, &s); err == nil {
			out = append(out, s)
			continue
		}

		var obj struct {
			Name     string      `json:"name"`
			Quantity interface{} `json:"quantity"`
			Unit     string      `json:"unit"`
		}
		if err := json.Unmarshal(entry, &obj); err != nil {
			return fmt.Errorf("ingredient entry is neither string nor object: %w", err)
		}
		out = append(out, formatIngredient(obj.Name, obj.Quantity, obj.Unit))
	}

	*l = out
	return nil
}

func formatIngredient(name string, quantity interface{}, unit string) string {
	parts := make([]string, 0, 3)
	switch q := quantity.(type) {
	case nil:
	case string:
		if q != "" {
			parts = append(parts, q)
		}
	case float64:
		// json numbers decode as float64; drop the trailing .0 on integers
		if q == float64(int64(q)) {
			parts = append(parts, fmt.Sprintf("%d", int64(q)))
		} else {
			parts = append(parts, fmt.Sprintf("%g", q))
		}
	default:
		parts = append(parts, fmt.Sprintf("%v", q))
	}
	if unit != "" {
		parts = append(parts, unit)
	}
	parts = append(parts, name)
	return strings.TrimSpace(strings.Join(parts, " "))
}
