package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/courtvision/internal/domain/profile"
	qb "github.com/riskibarqy/courtvision/internal/platform/querybuilder"
)

type ProfileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create reports false when a profile already exists for the user.
func (r *ProfileRepository) Create(ctx context.Context, item profile.Profile) (bool, error) {
	now := time.Now().UTC()
	model := profileInsertModel{
		UserID:    strings.TrimSpace(item.UserID),
		Email:     strings.TrimSpace(item.Email),
		FullName:  strings.TrimSpace(item.FullName),
		Tier:      string(item.Tier),
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
	if model.Tier == "" {
		model.Tier = string(profile.TierFree)
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	if model.UpdatedAt.IsZero() {
		model.UpdatedAt = now
	}

	builder, err := qb.InsertModels("profiles", []profileInsertModel{model})
	if err != nil {
		return false, fmt.Errorf("build insert profile query: %w", err)
	}
	query, args, err := builder.OnConflictDoNothing("user_id").ToSQL()
	if err != nil {
		return false, fmt.Errorf("build insert profile query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert profile user=%s: %w", model.UserID, err)
	}
	return rowsAffected(res) == 1, nil
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID string) (profile.Profile, bool, error) {
	query, args, err := qb.Select("user_id", "email", "full_name", "tier", "stripe_customer_id", "created_at", "updated_at").
		From("profiles").
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("build get profile query: %w", err)
	}

	var row profileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return profile.Profile{}, false, nil
		}
		return profile.Profile{}, false, fmt.Errorf("get profile user=%s: %w", userID, err)
	}
	return profileFromRow(row), true, nil
}

// SetTierByUserID keeps the stored customer id when stripeCustomerID is blank.
func (r *ProfileRepository) SetTierByUserID(ctx context.Context, userID string, tier profile.Tier, stripeCustomerID string) (bool, error) {
	query, args, err := qb.Update("profiles").
		Set("tier", string(tier)).
		SetExpr("updated_at", "NOW()").
		SetExpr("stripe_customer_id", "COALESCE(?, stripe_customer_id)", optionalString(stripeCustomerID)).
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update profile tier query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update profile tier user=%s: %w", userID, err)
	}
	return rowsAffected(res) > 0, nil
}

func (r *ProfileRepository) SetTierByStripeCustomer(ctx context.Context, customerID string, tier profile.Tier) (int, error) {
	query, args, err := qb.Update("profiles").
		Set("tier", string(tier)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("stripe_customer_id", strings.TrimSpace(customerID))).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build update profile tier by customer query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update profile tier customer=%s: %w", customerID, err)
	}
	return rowsAffected(res), nil
}

func profileFromRow(row profileTableModel) profile.Profile {
	return profile.Profile{
		UserID:           row.UserID,
		Email:            row.Email,
		FullName:         row.FullName,
		Tier:             profile.ParseTier(row.Tier),
		StripeCustomerID: strings.TrimSpace(row.StripeCustomerID.String),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
