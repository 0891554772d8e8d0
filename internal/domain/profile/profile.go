// Package profile contains the dietary profile domain model.
// A dietary profile captures the preferences that parametrize meal plan
// generation. Profiles are immutable once a plan references them.
package profile

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// GoalType enumerates the supported dietary goals
type GoalType string

const (
	GoalWeightLoss  GoalType = "weight_loss"
	GoalMuscleGain  GoalType = "muscle_gain"
	GoalMaintenance GoalType = "maintenance"
)

// DisplayName renders the goal for prompt text ("weight_loss" -> "Weight Loss")
func (g GoalType) DisplayName() string {
	switch g {
	case GoalWeightLoss:
		return "Weight Loss"
	case GoalMuscleGain:
		return "Muscle Gain"
	case GoalMaintenance:
		return "Maintenance"
	default:
		return string(g)
	}
}

// DietaryProfile holds a user's stored generation preferences.
// Field tags match the dietary_profiles table columns.
type DietaryProfile struct {
	ID                 string    `json:"id,omitempty"`
	UserID             string    `json:"user_id"`
	GoalType           GoalType  `json:"goal_type" validate:"required,oneof=weight_loss muscle_gain maintenance"`
	DietaryStyles      []string  `json:"dietary_styles"`
	Allergies          []string  `json:"allergies"`
	PreferredCuisines  []string  `json:"preferred_cuisines"`
	DailyCalorieTarget *int      `json:"daily_calorie_target,omitempty" validate:"omitempty,min=1000,max=5000"`
	MealPrepTimeLimit  *int      `json:"meal_prep_time_limit,omitempty" validate:"omitempty,min=10,max=120"`
	IsActive           bool      `json:"is_active"`
	CreatedAt          time.Time `json:"created_at,omitempty"`
	UpdatedAt          time.Time `json:"updated_at,omitempty"`
}

var validate = validator.New()

// Validate checks the enumerated goal type and the bounded numeric fields
func (p *DietaryProfile) Validate() error {
	if err := validate.Struct(p); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
			v := verrs[0]
			return fmt.Errorf("invalid %s: failed %s constraint", v.Field(), v.Tag())
		}
		return err
	}
	return nil
}
