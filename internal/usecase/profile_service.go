package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/courtvision/internal/domain/profile"
	"github.com/riskibarqy/courtvision/internal/domain/user"
	"github.com/riskibarqy/courtvision/internal/platform/logging"
)

type CreateProfileInput struct {
	Email    string
	FullName string
}

type ProfileService struct {
	repo   profile.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewProfileService(repo profile.Repository, logger *logging.Logger) *ProfileService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ProfileService{repo: repo, logger: logger, now: time.Now}
}

// Create registers a free-tier profile for the authenticated caller.
func (s *ProfileService) Create(ctx context.Context, principal user.Principal, input CreateProfileInput) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Create")
	defer span.End()

	email := strings.TrimSpace(input.Email)
	if email == "" {
		email = strings.TrimSpace(principal.Email)
	}
	now := s.now().UTC()
	item := profile.Profile{
		UserID:    strings.TrimSpace(principal.UserID),
		Email:     email,
		FullName:  strings.TrimSpace(input.FullName),
		Tier:      profile.TierFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := item.Validate(); err != nil {
		return profile.Profile{}, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}
	if item.FullName == "" {
		return profile.Profile{}, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	created, err := s.repo.Create(ctx, item)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("create profile: %w", err)
	}
	if !created {
		return profile.Profile{}, fmt.Errorf("%w: profile already exists for user=%s", ErrConflict, item.UserID)
	}

	s.logger.InfoContext(ctx, "profile created", "user_id", item.UserID)
	return item, nil
}

func (s *ProfileService) Get(ctx context.Context, userID string) (profile.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return profile.Profile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	item, exists, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("get profile: %w", err)
	}
	if !exists {
		return profile.Profile{}, fmt.Errorf("%w: profile user=%s", ErrNotFound, userID)
	}
	return item, nil
}

// RequirePremium returns ErrForbidden unless the user's tier unlocks the tools.
func (s *ProfileService) RequirePremium(ctx context.Context, userID string) error {
	item, err := s.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("%w: premium subscription required", ErrForbidden)
		}
		return err
	}
	if !item.Tier.HasPremiumAccess() {
		return fmt.Errorf("%w: premium subscription required", ErrForbidden)
	}
	return nil
}
