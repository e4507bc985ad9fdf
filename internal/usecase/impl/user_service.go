// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "quill/internal/delivery/context"
	"quill/internal/domain/entity"
	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/domain/service"
	"quill/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// tokenTypeBearer is the token_type value returned on login.
const tokenTypeBearer = "bearer"

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete user registration process.
// Username and email pre-checks give friendly errors for the common case;
// the store's unique constraints remain the authoritative guard, so a
// concurrent duplicate still surfaces as a conflict rather than a 500.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	var registeredUser *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		if err := srv.checkAvailability(ctx, userRepo, input); err != nil {
			return err
		}

		hashedPassword, err := srv.hasher.Hash(input.Password)
		if err != nil {
			srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

			return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
		}

		newUser := &entity.User{
			Username:       input.Username,
			Email:          input.Email,
			HashedPassword: hashedPassword,
			Age:            input.Age,
		}

		if err := userRepo.Create(ctx, newUser); err != nil {
			return translateCreateUserError(err)
		}

		registeredUser = newUser

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed",
		slog.String("username", registeredUser.Username),
		slog.Int64("userID", registeredUser.ID),
	)

	return &usecase.RegisterOutput{User: registeredUser}, nil
}

// checkAvailability rejects usernames and emails that are already registered.
func (srv *userService) checkAvailability(ctx context.Context, userRepo repository.UserRepository, input *usecase.RegisterUserInput) error {
	_, err := userRepo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return domainerrors.ErrUsernameTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to check username availability")
	}

	_, err = userRepo.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return domainerrors.ErrEmailTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		return errors.Wrap(err, "failed to check email availability")
	}

	return nil
}

// translateCreateUserError maps constraint violations raced past the
// pre-checks onto the same conflict errors the pre-checks produce.
func translateCreateUserError(err error) error {
	switch {
	case errors.Is(err, repository.ErrDuplicateUsername):
		return domainerrors.ErrUsernameTaken
	case errors.Is(err, repository.ErrDuplicateEmail):
		return domainerrors.ErrEmailTaken
	default:
		return errors.Wrap(err, "failed to create user")
	}
}

// Login verifies the credentials and issues an access token.
// A missing user and a wrong password produce the same error so the
// response does not reveal which usernames exist.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login attempt for unknown username", slog.String("username", input.Username))

			return nil, domainerrors.ErrInvalidCredentials
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.HashedPassword) {
		srv.log(ctx).Warn("Login attempt with wrong password", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}

	accessToken, err := srv.tokenService.Issue(user.Username)
	if err != nil {
		srv.log(ctx).Error("Failed to issue access token", slog.String("username", input.Username), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue access token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("username", user.Username))

	return &usecase.LoginOutput{
		AccessToken: accessToken,
		TokenType:   tokenTypeBearer,
		User:        user,
	}, nil
}
