package supabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hungryjack/backend/internal/domain/profile"
	apperrors "github.com/hungryjack/backend/pkg/errors"
)

const profilesTable = "dietary_profiles"

// ProfileRepository persists dietary profiles in the dietary_profiles table
type ProfileRepository struct {
	db     *Client
	logger *zap.Logger
}

// NewProfileRepository creates a profile repository
func NewProfileRepository(db *Client, logger *zap.Logger) *ProfileRepository {
	return &ProfileRepository{db: db, logger: logger}
}

// Create inserts a new dietary profile and returns the stored row
func (r *ProfileRepository) Create(ctx context.Context, p *profile.DietaryProfile) (*profile.DietaryProfile, error) {
	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.IsActive = true
	p.CreatedAt = now
	p.UpdatedAt = now

	var rows []profile.DietaryProfile
	if err := r.db.Insert(ctx, profilesTable, p, &rows); err != nil {
		return nil, apperrors.NewDatabaseError("create dietary profile", err)
	}
	if len(rows) == 0 {
		return p, nil
	}
	return &rows[0], nil
}

// FindByUser returns a user's profiles, newest first
func (r *ProfileRepository) FindByUser(ctx context.Context, userID string) ([]profile.DietaryProfile, error) {
	var rows []profile.DietaryProfile
	err := r.db.Select(ctx, profilesTable, []Filter{Eq("user_id", userID)}, "created_at.desc", &rows)
	if err != nil {
		return nil, apperrors.NewDatabaseError("list dietary profiles", err)
	}
	return rows, nil
}

// FindByID returns one profile scoped by owner. A profile owned by a
// different user reads as not found.
func (r *ProfileRepository) FindByID(ctx context.Context, id, userID string) (*profile.DietaryProfile, error) {
	var rows []profile.DietaryProfile
	filters := []Filter{Eq("id", id), Eq("user_id", userID)}
	if err := r.db.Select(ctx, profilesTable, filters, "", &rows); err != nil {
		return nil, apperrors.NewDatabaseError("get dietary profile", err)
	}
	if len(rows) == 0 {
		return nil, apperrors.NewProfileNotFoundError(id)
	}
	return &rows[0], nil
}
