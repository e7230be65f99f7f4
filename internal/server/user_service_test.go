package server

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/config"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDBClient implements DBClient with an in-memory user map keyed by email.
type fakeDBClient struct {
	users     map[string]*db.User
	createErr error
}

func newFakeDBClient() *fakeDBClient {
	return &fakeDBClient{users: make(map[string]*db.User)}
}

func (f *fakeDBClient) CreateUser(_ context.Context, input db.CreateUserInput) (*db.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	user := &db.User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	f.users[user.Email] = user
	return user, nil
}

func (f *fakeDBClient) GetUserByEmail(_ context.Context, email string) (*db.User, error) {
	return f.users[email], nil
}

func (f *fakeDBClient) GetUserByID(_ context.Context, id uuid.UUID) (*db.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func testPasswordConfig() *config.PasswordConfig {
	// Minimum cost keeps the bcrypt work factor small in tests.
	return &config.PasswordConfig{BcryptCost: 10}
}

func registerRequest() *types.CreateUserRequest {
	return &types.CreateUserRequest{
		FirstName: "Dana",
		LastName:  "Reyes",
		Email:     "dana@example.com",
		Password:  "correct horse battery",
		Role:      "hr",
	}
}

func TestUserService_Register(t *testing.T) {
	fake := newFakeDBClient()
	svc := NewUserService(fake, testPasswordConfig())

	user, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.Equal(t, "Dana", user.FirstName)
	assert.Equal(t, "dana@example.com", user.Email)
	assert.Equal(t, types.RoleHR, user.Role)
	assert.NotEqual(t, uuid.Nil, user.ID)

	// Stored hash must not be the plaintext password.
	stored := fake.users["dana@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "correct horse battery", stored.PasswordHash)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fake := newFakeDBClient()
	svc := NewUserService(fake, testPasswordConfig())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerRequest())
	var dupErr *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dupErr)
	assert.Equal(t, "dana@example.com", dupErr.Email)
}

func TestUserService_Register_CreateFails(t *testing.T) {
	fake := newFakeDBClient()
	fake.createErr = fmt.Errorf("connection refused")
	svc := NewUserService(fake, testPasswordConfig())

	_, err := svc.Register(context.Background(), registerRequest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create user")
}

func TestUserService_Login(t *testing.T) {
	fake := newFakeDBClient()
	svc := NewUserService(fake, testPasswordConfig())

	registered, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "dana@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, types.RoleHR, user.Role)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fake := newFakeDBClient()
	svc := NewUserService(fake, testPasswordConfig())

	_, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &types.LoginRequest{
		Email:    "dana@example.com",
		Password: "wrong password",
	})
	var credErr *ErrInvalidCredentials
	assert.ErrorAs(t, err, &credErr)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	svc := NewUserService(newFakeDBClient(), testPasswordConfig())

	_, err := svc.Login(context.Background(), &types.LoginRequest{
		Email:    "nobody@example.com",
		Password: "irrelevant",
	})
	var credErr *ErrInvalidCredentials
	assert.ErrorAs(t, err, &credErr)
}
