package impl

import (
	"context"
	"log/slog"

	"jobhub/config"
	deliverycontext "jobhub/internal/delivery/context"
	"jobhub/internal/domain/entity"
	domainerrors "jobhub/internal/domain/errors"
	"jobhub/internal/domain/repository"
	"jobhub/internal/domain/service"
	"jobhub/internal/errors"
	"jobhub/internal/usecase"

	"go.uber.org/fx"
)

// loginTimingPassword is hashed at construction and compared against when the email is
// unknown, so both login failures cost one hash comparison.
const loginTimingPassword = "jobhub-login-timing"

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo        repository.UserRepository
	sessions        usecase.SessionUsecase
	hasher          service.PasswordHasher
	tokenService    service.TokenService
	rotateOnRefresh bool
	dummyHash       string
	logger          *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Sessions     usecase.SessionUsecase
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It fails when the hasher cannot
// produce the unknown-email comparison hash.
func NewAuthService(params AuthServiceParams) (usecase.AuthUsecase, error) {
	rotate := false
	if params.Config != nil && params.Config.Auth != nil {
		rotate = params.Config.Auth.RotateRefreshTokens
	}

	dummyHash, err := params.Hasher.Hash(loginTimingPassword)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash login timing password")
	}

	return &authService{
		userRepo:        params.UserRepo,
		sessions:        params.Sessions,
		hasher:          params.Hasher,
		tokenService:    params.TokenService,
		rotateOnRefresh: rotate,
		dummyHash:       dummyHash,
		logger:          params.Logger,
	}, nil
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a USER or COMPANY principal and signs it in.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	role, err := registrationRole(input.Role)
	if err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.String("role", input.Role), slog.Any("error", err))

		return nil, err
	}

	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Info("Starting registration", slog.Any("role", role), slog.String("email", email))

	exists, err := srv.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	}
	if exists {
		return nil, errors.Wrap(domainerrors.ErrEmailAlreadyExists, "email already registered")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hashedPassword,
		Name:         input.Name,
		Role:         role,
	}

	// The unique index decides concurrent registrations of the same email.
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, translateRepoError(err, "failed to create user")
	}
	srv.log(ctx).Info("Registration completed", slog.Any("user_id", user.ID), slog.Any("role", role))

	return srv.issueTokens(ctx, user)
}

// registrationRole validates the requested role. ADMIN can never be self-assigned.
func registrationRole(raw string) (entity.Role, error) {
	if raw == "" {
		return entity.RoleUser, nil
	}

	role, ok := entity.ParseRole(raw)
	if !ok {
		return "", errors.WithStack(domainerrors.ErrInvalidRole)
	}
	if role == entity.RoleAdmin {
		return "", errors.WithStack(domainerrors.ErrAdminRegistration)
	}

	return role, nil
}

// Login verifies credentials. Unknown email and wrong password are indistinguishable to the caller.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(err, "failed to find user")
		}
		srv.hasher.Check(input.Password, srv.dummyHash)
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	output, err := srv.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Info("Login succeeded", slog.Any("user_id", user.ID))

	return output, nil
}

// Refresh issues a new access token for a live session.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.AuthOutput, error) {
	session, err := srv.sessions.VerifySession(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPrincipalNotFound, "refresh session user was deleted")
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	accessToken, err := srv.tokenService.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	if srv.rotateOnRefresh {
		refreshToken, _, err = srv.sessions.RotateSession(ctx, refreshToken, user)
		if err != nil {
			return nil, err
		}
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// Logout revokes the session of the refresh token.
func (srv *authService) Logout(ctx context.Context, refreshToken string) error {
	return srv.sessions.RevokeSession(ctx, refreshToken)
}

func (srv *authService) issueTokens(ctx context.Context, user *entity.User) (*usecase.AuthOutput, error) {
	accessToken, err := srv.tokenService.GenerateAccessToken(user.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	refreshToken, _, err := srv.sessions.CreateSession(ctx, user)
	if err != nil {
		return nil, err
	}

	return &usecase.AuthOutput{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}
