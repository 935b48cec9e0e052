package service

import (
	"context"
	"fmt"

	"tron-wallet-service/internal/core/domain"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// TwoFactorServiceImpl implements ports.TwoFactorService.
//
// Enrollment walks NotEnrolled -> PendingConfirmation -> Enrolled: Begin
// hands out an ephemeral challenge, Confirm promotes its secret into the
// profile once the user proves possession with a valid code. Disable
// discards the secret entirely; re-enabling starts over with a new one.
type TwoFactorServiceImpl struct {
	profiles ports.ProfileRepository
	otp      ports.OneTimePasswordService
	log      zerolog.Logger
}

// NewTwoFactorService creates a new TwoFactorServiceImpl.
func NewTwoFactorService(profiles ports.ProfileRepository, otp ports.OneTimePasswordService, log zerolog.Logger) *TwoFactorServiceImpl {
	return &TwoFactorServiceImpl{profiles: profiles, otp: otp, log: log}
}

// BeginEnrollment mints a fresh secret and provisioning URI. Fails if the
// profile already has 2FA enabled — the caller must disable first.
func (s *TwoFactorServiceImpl) BeginEnrollment(ctx context.Context, sess domain.Session) (*domain.EnrollmentChallenge, error) {
	profile, err := s.profiles.Get(ctx, sess.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load profile: %w", err))
	}
	if profile.TwoFactorEnabled {
		return nil, apperror.ErrTwoFactorAlreadyEnabled()
	}

	secret, err := s.otp.GenerateSecret()
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("generate secret: %w", err))
	}

	return &domain.EnrollmentChallenge{
		Secret:          secret,
		ProvisioningURI: s.otp.ProvisioningURI(sess.Username, secret),
	}, nil
}

// ConfirmEnrollment enables 2FA once the candidate code validates against
// the challenge secret. On a wrong code the profile is untouched and the
// challenge stays usable for further attempts.
func (s *TwoFactorServiceImpl) ConfirmEnrollment(ctx context.Context, sess domain.Session, code string, challenge domain.EnrollmentChallenge) error {
	profile, err := s.profiles.Get(ctx, sess.Username)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load profile: %w", err))
	}
	if profile.TwoFactorEnabled {
		return apperror.ErrTwoFactorAlreadyEnabled()
	}

	if !s.otp.Validate(code, challenge.Secret) {
		return apperror.ErrInvalidOneTimeCode()
	}

	// Secret and flag flip together — never partially.
	if err := s.profiles.Put(ctx, sess.Username, domain.SecurityProfile{
		TwoFactorEnabled: true,
		Secret:           challenge.Secret,
	}); err != nil {
		return apperror.InternalError(fmt.Errorf("persist profile: %w", err))
	}

	s.log.Info().Str("user", sess.Username).Msg("two-factor authentication enabled")
	return nil
}

// Disable clears the secret and flag atomically. The discarded secret is
// unrecoverable.
func (s *TwoFactorServiceImpl) Disable(ctx context.Context, sess domain.Session) error {
	profile, err := s.profiles.Get(ctx, sess.Username)
	if err != nil {
		return apperror.InternalError(fmt.Errorf("load profile: %w", err))
	}
	if !profile.TwoFactorEnabled {
		return apperror.ErrTwoFactorNotEnabled()
	}

	if err := s.profiles.Put(ctx, sess.Username, domain.SecurityProfile{}); err != nil {
		return apperror.InternalError(fmt.Errorf("persist profile: %w", err))
	}

	s.log.Info().Str("user", sess.Username).Msg("two-factor authentication disabled")
	return nil
}

// Profile returns the user's security profile with the secret redacted.
func (s *TwoFactorServiceImpl) Profile(ctx context.Context, sess domain.Session) (*domain.SecurityProfile, error) {
	profile, err := s.profiles.Get(ctx, sess.Username)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("load profile: %w", err))
	}
	return &domain.SecurityProfile{TwoFactorEnabled: profile.TwoFactorEnabled}, nil
}
