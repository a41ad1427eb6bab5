package usecase

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/izthiaka/loumaa/internal/config"
	"github.com/izthiaka/loumaa/internal/identifier"
	"github.com/izthiaka/loumaa/internal/model"
	"github.com/izthiaka/loumaa/internal/otp"
	"github.com/izthiaka/loumaa/internal/repository"
	"github.com/izthiaka/loumaa/internal/security"
)

// PasswordUsecase composes the password-update and password-reset flows.
type PasswordUsecase interface {
	// UpdatePassword changes the password of an authenticated user after
	// verifying the old one, then invalidates the active session.
	UpdatePassword(ctx context.Context, user *model.User, oldPassword, newPassword string) error

	// ForgetPassword stores a one-time code against the identity and mails
	// it. An unknown identifier succeeds silently so callers cannot probe
	// which emails or phones are registered.
	ForgetPassword(ctx context.Context, rawIdentifier string) error

	// CheckCode validates a caller-supplied code against the identity's
	// persisted one, enforcing its expiry.
	CheckCode(ctx context.Context, rawIdentifier, code string) error

	// ResetPassword consumes a valid code to set a new password and drops
	// the active session.
	ResetPassword(ctx context.Context, rawIdentifier, code, newPassword string) error
}

// CodeSender dispatches a reset code out-of-band. Send failures surface to
// the caller but never roll back the persisted code.
type CodeSender interface {
	SendResetCode(to, name, code string, expiresIn time.Duration) error
}

type passwordUsecase struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	hasher      security.Hasher
	sender      CodeSender
	cfg         *config.Config
	logger      *zerolog.Logger
}

// NewPasswordUsecase creates a new PasswordUsecase.
func NewPasswordUsecase(
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	hasher security.Hasher,
	sender CodeSender,
	cfg *config.Config,
	logger *zerolog.Logger,
) PasswordUsecase {
	return &passwordUsecase{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		sender:      sender,
		cfg:         cfg,
		logger:      logger,
	}
}

func (u *passwordUsecase) UpdatePassword(
	ctx context.Context,
	user *model.User,
	oldPassword, newPassword string,
) error {
	if !u.hasher.Verify(oldPassword, user.Password) {
		return ErrOldPasswordIncorrect
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// Sessions do not survive a password change.
	if err := u.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}

	return nil
}

func (u *passwordUsecase) ForgetPassword(ctx context.Context, rawIdentifier string) error {
	if _, err := identifier.Classify(rawIdentifier); err != nil {
		return ErrInvalidIdentifier
	}

	user, err := u.userRepo.GetByEmailOrPhone(ctx, rawIdentifier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil
		}
		return fmt.Errorf("look up identity: %w", err)
	}

	code, err := otp.Generate(otp.DefaultLength)
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(u.cfg.Signup.ResetCodeTTL)
	if err := u.userRepo.UpdateResetCode(ctx, user.ID, code, expiresAt); err != nil {
		return fmt.Errorf("store reset code: %w", err)
	}

	if user.Email == "" {
		u.logger.Warn().Str("matricule", user.Matricule).
			Msg("reset code stored for user without email, no channel to deliver it")
		return nil
	}

	if err := u.sender.SendResetCode(user.Email, user.Name, code, u.cfg.Signup.ResetCodeTTL); err != nil {
		return fmt.Errorf("send reset code: %w", err)
	}

	return nil
}

func (u *passwordUsecase) CheckCode(ctx context.Context, rawIdentifier, code string) error {
	_, err := u.resolveByCode(ctx, rawIdentifier, code)
	return err
}

func (u *passwordUsecase) ResetPassword(ctx context.Context, rawIdentifier, code, newPassword string) error {
	user, err := u.resolveByCode(ctx, rawIdentifier, code)
	if err != nil {
		return err
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := u.userRepo.UpdatePassword(ctx, user.ID, hash); err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	// The code is single-use.
	if err := u.userRepo.ClearResetCode(ctx, user.ID); err != nil {
		return fmt.Errorf("clear reset code: %w", err)
	}

	if err := u.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}

	return nil
}

// resolveByCode looks up the identity and checks the supplied code against
// its persisted one-time slot.
func (u *passwordUsecase) resolveByCode(
	ctx context.Context,
	rawIdentifier, code string,
) (*model.User, error) {
	if _, err := identifier.Classify(rawIdentifier); err != nil {
		return nil, ErrInvalidIdentifier
	}

	user, err := u.userRepo.GetByEmailOrPhone(ctx, rawIdentifier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdentifierNotFound
		}
		return nil, fmt.Errorf("look up identity: %w", err)
	}

	if user.IdentifierToken == "" ||
		subtle.ConstantTimeCompare([]byte(user.IdentifierToken), []byte(code)) != 1 {
		return nil, ErrCodeInvalid
	}

	if time.Now().After(user.IdentifierTokenExpiresAt) {
		return nil, ErrCodeExpired
	}

	return user, nil
}
