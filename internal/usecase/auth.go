package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/izthiaka/loumaa/internal/config"
	"github.com/izthiaka/loumaa/internal/identifier"
	"github.com/izthiaka/loumaa/internal/matricule"
	"github.com/izthiaka/loumaa/internal/model"
	"github.com/izthiaka/loumaa/internal/repository"
	"github.com/izthiaka/loumaa/internal/security"
	"github.com/izthiaka/loumaa/internal/token"
)

// AuthUsecase composes the sign-in, sign-up, refresh and logout flows.
type AuthUsecase interface {
	SignIn(ctx context.Context, params SignInParams) (*TokenPair, error)
	SignUp(ctx context.Context, params SignUpParams) (*model.User, error)
	RefreshToken(ctx context.Context, matricule, device string) (*TokenPair, error)
	LogOut(ctx context.Context, user *model.User) error
	DeleteAccount(ctx context.Context, user *model.User) error

	// Authenticate resolves the caller of a bearer token. The token must
	// verify and match the user's live session record.
	Authenticate(ctx context.Context, rawToken string) (*model.User, error)

	Profile(ctx context.Context, user *model.User) (*Profile, error)
}

// SignInParams defines the parameters for signing in.
type SignInParams struct {
	Identifier string
	Password   string
	Device     string
}

// SignUpParams defines the parameters for creating an account.
type SignUpParams struct {
	Name     string
	Gender   string
	Phone    string
	Email    string
	Password string
}

// TokenPair is the issued access/refresh pair with absolute and relative
// expiry markers.
type TokenPair struct {
	Type             string `json:"type"`
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresAt        int64  `json:"expire_at"`
	ExpiresIn        int64  `json:"expire_in"`
	RefreshExpiresAt int64  `json:"refresh_expire_at"`
	RefreshExpiresIn int64  `json:"refresh_expire_in"`
}

// Attempts to regenerate a matricule when the unique index reports a
// collision on insert.
const maxMatriculeRetries = 3

type authUsecase struct {
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	sessionRepo repository.SessionRepository
	hasher      security.Hasher
	tokens      *token.Issuer
	cfg         *config.Config
	logger      *zerolog.Logger
}

// NewAuthUsecase creates a new AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	sessionRepo repository.SessionRepository,
	hasher security.Hasher,
	tokens *token.Issuer,
	cfg *config.Config,
	logger *zerolog.Logger,
) AuthUsecase {
	return &authUsecase{
		userRepo:    userRepo,
		roleRepo:    roleRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		cfg:         cfg,
		logger:      logger,
	}
}

func (u *authUsecase) SignIn(ctx context.Context, params SignInParams) (*TokenPair, error) {
	if _, err := identifier.Classify(params.Identifier); err != nil {
		return nil, ErrInvalidIdentifier
	}

	user, err := u.userRepo.GetByEmailOrPhone(ctx, params.Identifier)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdentifierNotFound
		}
		return nil, fmt.Errorf("look up identity: %w", err)
	}

	if !u.hasher.Verify(params.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	if err := checkAccountStatus(user.Status); err != nil {
		return nil, err
	}

	return u.issueSession(ctx, user, params.Device)
}

func (u *authUsecase) SignUp(ctx context.Context, params SignUpParams) (*model.User, error) {
	// Pre-insert duplicate checks give friendly errors; the unique indexes
	// remain the authoritative guard under concurrent sign-ups.
	if _, err := u.userRepo.GetByPhone(ctx, params.Phone); err == nil {
		return nil, ErrPhoneAlreadyUsed
	} else if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("check phone: %w", err)
	}

	if params.Email != "" {
		if _, err := u.userRepo.GetByEmail(ctx, params.Email); err == nil {
			return nil, ErrEmailAlreadyUsed
		} else if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("check email: %w", err)
		}
	}

	passwordHash, err := u.hasher.Hash(params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role, err := u.roleRepo.GetByName(ctx, u.cfg.Signup.DefaultRole)
	if err != nil {
		return nil, fmt.Errorf("resolve default role %q: %w", u.cfg.Signup.DefaultRole, err)
	}

	for attempt := 0; ; attempt++ {
		code, err := matricule.Generate()
		if err != nil {
			return nil, err
		}

		user := &model.User{
			Matricule: code,
			Name:      params.Name,
			Gender:    params.Gender,
			Email:     params.Email,
			Phone:     params.Phone,
			Status:    u.cfg.SignupStatus(),
			Role:      role.ID,
			Password:  passwordHash,
		}

		created, err := u.userRepo.Create(ctx, user)
		if err == nil {
			// No session at sign-up; signing in is a separate step.
			return created, nil
		}
		if !mongo.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("create identity: %w", err)
		}

		// The index rejected the insert. Classify which key lost the race
		// before blaming the matricule.
		if _, lookupErr := u.userRepo.GetByPhone(ctx, params.Phone); lookupErr == nil {
			return nil, ErrPhoneAlreadyUsed
		}
		if params.Email != "" {
			if _, lookupErr := u.userRepo.GetByEmail(ctx, params.Email); lookupErr == nil {
				return nil, ErrEmailAlreadyUsed
			}
		}
		if attempt+1 >= maxMatriculeRetries {
			return nil, fmt.Errorf("create identity: %w", err)
		}
		u.logger.Warn().Str("matricule", code).Msg("matricule collision, regenerating")
	}
}

func (u *authUsecase) RefreshToken(ctx context.Context, userMatricule, device string) (*TokenPair, error) {
	user, err := u.userRepo.GetByMatricule(ctx, userMatricule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrSessionUserNotFound
		}
		return nil, fmt.Errorf("look up identity: %w", err)
	}

	return u.issueSession(ctx, user, device)
}

func (u *authUsecase) LogOut(ctx context.Context, user *model.User) error {
	if err := u.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (u *authUsecase) DeleteAccount(ctx context.Context, user *model.User) error {
	// Session first: if the second step fails the account survives with a
	// dangling session rather than the reverse, and the caller can retry.
	if err := u.sessionRepo.DeleteByUser(ctx, user.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	if err := u.userRepo.Delete(ctx, user.ID); err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("delete identity: %w", err)
	}

	return nil
}

func (u *authUsecase) Authenticate(ctx context.Context, rawToken string) (*model.User, error) {
	claims, err := u.tokens.Verify(rawToken)
	if err != nil {
		return nil, token.ErrInvalidToken
	}

	user, err := u.userRepo.GetByActiveSessionToken(ctx, rawToken)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, token.ErrInvalidToken
		}
		return nil, fmt.Errorf("look up session: %w", err)
	}

	if user.Matricule != claims.Matricule {
		return nil, token.ErrInvalidToken
	}

	return user, nil
}

// issueSession signs a fresh token pair and replaces the user's session
// record. Any previous session for the same user is superseded.
func (u *authUsecase) issueSession(ctx context.Context, user *model.User, device string) (*TokenPair, error) {
	accessToken, err := u.tokens.AccessToken(user)
	if err != nil {
		return nil, err
	}

	refreshToken, err := u.tokens.RefreshToken(user)
	if err != nil {
		return nil, err
	}

	if device == "" {
		device = "unknown"
	}

	if err := u.sessionRepo.Upsert(ctx, user.ID, repository.UpsertSessionParams{
		Token:        accessToken,
		RefreshToken: refreshToken,
		Device:       device,
	}); err != nil {
		return nil, fmt.Errorf("upsert session: %w", err)
	}

	now := time.Now()
	return &TokenPair{
		Type:             "Bearer",
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresAt:        now.Add(u.tokens.AccessTTL()).Unix(),
		ExpiresIn:        int64(u.tokens.AccessTTL().Seconds()),
		RefreshExpiresAt: now.Add(u.tokens.RefreshTTL()).Unix(),
		RefreshExpiresIn: int64(u.tokens.RefreshTTL().Seconds()),
	}, nil
}

func checkAccountStatus(status model.Status) error {
	switch status {
	case model.StatusActive:
		return nil
	case model.StatusPending:
		return ErrAccountPending
	default:
		return ErrAccountInactive
	}
}
