package impl

import (
	"context"
	"log/slog"
	"testing"

	domainerrors "quill/internal/domain/errors"
	"quill/internal/domain/repository"
	"quill/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUserService(userRepo *fakeUserRepo) usecase.UserUsecase {
	return NewUserService(UserServiceParams{
		TxManager:    &fakeTxManager{userRepo: userRepo},
		UserRepo:     userRepo,
		Hasher:       &fakeHasher{},
		TokenService: &fakeTokenService{},
		Logger:       slog.New(slog.DiscardHandler),
	})
}

func TestUserService_Register(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo)

	age := 30
	output, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
		Age:      &age,
	})
	require.NoError(t, err)
	require.NotNil(t, output.User)

	assert.Equal(t, int64(1), output.User.ID)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, "alice@example.com", output.User.Email)
	require.NotNil(t, output.User.Age)
	assert.Equal(t, 30, *output.User.Age)

	// The stored credential must be the hash, never the plaintext.
	stored, err := userRepo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "hashed:s3cret", stored.HashedPassword)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "other@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "bob",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_Register_ConstraintRace(t *testing.T) {
	// A duplicate slipping past the pre-checks must still come back as a
	// conflict, not an internal error.
	userRepo := newFakeUserRepo()
	userRepo.createErr = repository.ErrDuplicateUsername
	svc := newTestUserService(userRepo)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)

	userRepo.createErr = repository.ErrDuplicateEmail
	_, err = svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "s3cret",
	})
	assert.ErrorIs(t, err, domainerrors.ErrEmailTaken)
}

func TestUserService_Login(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	output, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "s3cret",
	})
	require.NoError(t, err)

	assert.Equal(t, "token-for-alice", output.AccessToken)
	assert.Equal(t, "bearer", output.TokenType)
	require.NotNil(t, output.User)
	assert.Equal(t, "alice", output.User.Username)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := newTestUserService(userRepo)

	_, err := svc.Register(context.Background(), &usecase.RegisterUserInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &usecase.LoginInput{
		Username: "alice",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownUsername(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, err := svc.Login(context.Background(), &usecase.LoginInput{
		Username: "ghost",
		Password: "s3cret",
	})

	// Indistinguishable from a wrong password.
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
