package supabase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/domain/mealplan"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

const (
	mealPlansTable = "meal_plans"
	daysTable      = "days"
	mealsTable     = "meals"
)

// Row shapes for the flattened plan graph. Ingredient lists are stored as
// a serialized JSON string column and deserialized on read.

type mealPlanRow struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	DietaryProfileID string    `json:"dietary_profile_id"`
	StartDate        string    `json:"start_date"`
	EndDate          string    `json:"end_date"`
	CreatedAt        time.Time `json:"created_at"`
}

type dayRow struct {
	ID                string `json:"id"`
	MealPlanID        string `json:"meal_plan_id"`
	DayNumber         int    `json:"day_number"`
	Date              string `json:"date"`
	TotalCalories     int    `json:"total_calories"`
	TotalProteinGrams int    `json:"total_protein_grams"`
	TotalCarbsGrams   int    `json:"total_carbs_grams"`
	TotalFatGrams     int    `json:"total_fat_grams"`
}

type mealRow struct {
	ID              string `json:"id"`
	DayID           string `json:"day_id"`
	Name            string `json:"name"`
	Description     string `json:"description"`
	MealType        string `json:"meal_type"`
	Calories        *int   `json:"calories"`
	ProteinGrams    *int   `json:"protein_grams"`
	CarbsGrams      *int   `json:"carbs_grams"`
	FatGrams        *int   `json:"fat_grams"`
	Ingredients     string `json:"ingredients"`
	Recipe          string `json:"recipe"`
	PrepTimeMinutes *int   `json:"preparation_time_minutes"`
	CookTimeMinutes *int   `json:"cooking_time_minutes"`
}

// MealPlanRepository persists the plan/day/meal graph across three tables
type MealPlanRepository struct {
	db     *Client
	logger *zap.Logger
}

// NewMealPlanRepository creates a meal plan repository
func NewMealPlanRepository(db *Client, logger *zap.Logger) *MealPlanRepository {
	return &MealPlanRepository{db: db, logger: logger}
}

// Save writes the plan row, then one row per day, then one row per meal.
// The store offers no multi-row transaction, so a failure mid-sequence
// triggers best-effort compensating deletes of the rows already written.
func (r *MealPlanRepository) Save(ctx context.Context, plan *mealplan.MealPlan) (string, error) {
	planID := uuid.New().String()
	row := mealPlanRow{
		ID:               planID,
		UserID:           plan.UserID,
		DietaryProfileID: plan.DietaryProfileID,
		StartDate:        plan.StartDate,
		EndDate:          plan.EndDate,
		CreatedAt:        time.Now().UTC(),
	}
	if err := r.db.Insert(ctx, mealPlansTable, row, nil); err != nil {
		return "", apperrors.NewDatabaseError("create meal plan", err)
	}

	var writtenDays []string
	for i := range plan.Days {
		day := &plan.Days[i]
		dayID := uuid.New().String()
		dRow := dayRow{
			ID:                dayID,
			MealPlanID:        planID,
			DayNumber:         day.DayNumber,
			Date:              day.Date,
			TotalCalories:     day.TotalCalories,
			TotalProteinGrams: day.TotalProteinGrams,
			TotalCarbsGrams:   day.TotalCarbsGrams,
			TotalFatGrams:     day.TotalFatGrams,
		}
		if err := r.db.Insert(ctx, daysTable, dRow, nil); err != nil {
			r.compensate(ctx, planID, writtenDays)
			return "", apperrors.NewDatabaseError("create day plan", err)
		}
		writtenDays = append(writtenDays, dayID)
		day.ID = dayID
		day.MealPlanID = planID

		for j := range day.Meals {
			meal := &day.Meals[j]
			ingredients, err := json.Marshal(meal.Ingredients)
			if err != nil {
				r.compensate(ctx, planID, writtenDays)
				return "", apperrors.NewDatabaseError("serialize ingredients", err)
			}
			mRow := mealRow{
				ID:              uuid.New().String(),
				DayID:           dayID,
				Name:            meal.Name,
				Description:     meal.Description,
				MealType:        string(meal.MealType),
				Calories:        meal.Calories,
				ProteinGrams:    meal.ProteinGrams,
				CarbsGrams:      meal.CarbsGrams,
				FatGrams:        meal.FatGrams,
				Ingredients:     string(ingredients),
				Recipe:          meal.Recipe,
				PrepTimeMinutes: meal.PrepTimeMinutes,
				CookTimeMinutes: meal.CookTimeMinutes,
			}
			if err := r.db.Insert(ctx, mealsTable, mRow, nil); err != nil {
				r.compensate(ctx, planID, writtenDays)
				return "", apperrors.NewDatabaseError("create meal", err)
			}
			meal.ID = mRow.ID
			meal.DayID = dayID
		}
	}

	plan.ID = planID
	return planID, nil
}

// compensate removes rows written before a failed insert. Failures here
// are logged and swallowed: an orphaned row is preferable to masking the
// original error.
func (r *MealPlanRepository) compensate(ctx context.Context, planID string, dayIDs []string) {
	for _, dayID := range dayIDs {
		if err := r.db.Delete(ctx, mealsTable, []Filter{Eq("day_id", dayID)}); err != nil {
			r.logger.Warn("cleanup of meals failed", zap.String("day_id", dayID), zap.Error(err))
		}
	}
	if err := r.db.Delete(ctx, daysTable, []Filter{Eq("meal_plan_id", planID)}); err != nil {
		r.logger.Warn("cleanup of days failed", zap.String("meal_plan_id", planID), zap.Error(err))
	}
	if err := r.db.Delete(ctx, mealPlansTable, []Filter{Eq("id", planID)}); err != nil {
		r.logger.Warn("cleanup of meal plan failed", zap.String("meal_plan_id", planID), zap.Error(err))
	}
}

// FindByID reconstructs the full plan graph: plan row, then day rows by
// plan id, then meal rows per day
func (r *MealPlanRepository) FindByID(ctx context.Context, id string) (*mealplan.MealPlan, error) {
	var planRows []mealPlanRow
	if err := r.db.Select(ctx, mealPlansTable, []Filter{Eq("id", id)}, "", &planRows); err != nil {
		return nil, apperrors.NewDatabaseError("get meal plan", err)
	}
	if len(planRows) == 0 {
		return nil, apperrors.NewMealPlanNotFoundError(id)
	}
	row := planRows[0]

	plan := &mealplan.MealPlan{
		ID:               row.ID,
		UserID:           row.UserID,
		DietaryProfileID: row.DietaryProfileID,
		StartDate:        row.StartDate,
		EndDate:          row.EndDate,
		CreatedAt:        row.CreatedAt,
	}

	var dRows []dayRow
	if err := r.db.Select(ctx, daysTable, []Filter{Eq("meal_plan_id", id)}, "day_number.asc", &dRows); err != nil {
		return nil, apperrors.NewDatabaseError("get day plans", err)
	}

	for _, d := range dRows {
		day := mealplan.DayPlan{
			ID:                d.ID,
			MealPlanID:        d.MealPlanID,
			DayNumber:         d.DayNumber,
			Date:              d.Date,
			TotalCalories:     d.TotalCalories,
			TotalProteinGrams: d.TotalProteinGrams,
			TotalCarbsGrams:   d.TotalCarbsGrams,
			TotalFatGrams:     d.TotalFatGrams,
		}

		var mRows []mealRow
		if err := r.db.Select(ctx, mealsTable, []Filter{Eq("day_id", d.ID)}, "", &mRows); err != nil {
			return nil, apperrors.NewDatabaseError("get meals", err)
		}
		for _, m := range mRows {
			meal, err := rowToMeal(m)
			if err != nil {
				return nil, apperrors.NewDatabaseError("deserialize meal", err)
			}
			day.Meals = append(day.Meals, meal)
		}
		plan.Days = append(plan.Days, day)
	}

	return plan, nil
}

func rowToMeal(m mealRow) (mealplan.Meal, error) {
	var ingredients mealplan.IngredientList
	if m.Ingredients != "" {
		if err := json.Unmarshal([]byte(m.Ingredients), &ingredients); err != nil {
			return mealplan.Meal{}, err
		}
	}
	if ingredients == nil {
		ingredients = mealplan.IngredientList{}
	}
	return mealplan.Meal{
		ID:              m.ID,
		DayID:           m.DayID,
		Name:            m.Name,
		Description:     m.Description,
		MealType:        mealplan.NormalizeMealType(m.MealType),
		Calories:        m.Calories,
		ProteinGrams:    m.ProteinGrams,
		CarbsGrams:      m.CarbsGrams,
		FatGrams:        m.FatGrams,
		Ingredients:     ingredients,
		Recipe:          m.Recipe,
		PrepTimeMinutes: m.PrepTimeMinutes,
		CookTimeMinutes: m.CookTimeMinutes,
	}, nil
}

// FindByUser returns a user's plans (shallow rows, no nested days),
// newest first
func (r *MealPlanRepository) FindByUser(ctx context.Context, userID string) ([]mealplan.MealPlan, error) {
	var rows []mealPlanRow
	err := r.db.Select(ctx, mealPlansTable, []Filter{Eq("user_id", userID)}, "created_at.desc", &rows)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list meal plans", err)
	}

	plans := make([]mealplan.MealPlan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, mealplan.MealPlan{
			ID:               row.ID,
			UserID:           row.UserID,
			DietaryProfileID: row.DietaryProfileID,
			StartDate:        row.StartDate,
			EndDate:          row.EndDate,
			CreatedAt:        row.CreatedAt,
		})
	}
	return plans, nil
}
