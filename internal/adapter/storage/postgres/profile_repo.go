package postgres

import (
	"context"
	"encoding/json"

	"tron-wallet-service/internal/core/domain"

	"github.com/rs/zerolog"
)

// ProfileRepo implements ports.ProfileRepository on the user_records
// store. A missing or corrupt document reads as the zero profile, which
// is the safe default: 2FA disabled, no secret.
type ProfileRepo struct {
	pool Pool
	log  zerolog.Logger
}

// NewProfileRepo creates a new ProfileRepo.
func NewProfileRepo(pool Pool, log zerolog.Logger) *ProfileRepo {
	return &ProfileRepo{pool: pool, log: log}
}

// Get returns the user's security profile.
func (r *ProfileRepo) Get(ctx context.Context, username string) (*domain.SecurityProfile, error) {
	raw, err := getDoc(ctx, r.pool, username, kindProfile)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return &domain.SecurityProfile{}, nil
	}

	var profile domain.SecurityProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		r.log.Error().Err(err).Str("user", username).Msg("corrupt profile document, treating as disabled")
		return &domain.SecurityProfile{}, nil
	}
	return &profile, nil
}

// Put replaces the user's security profile.
func (r *ProfileRepo) Put(ctx context.Context, username string, profile domain.SecurityProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return putDoc(ctx, r.pool, username, kindProfile, raw)
}
