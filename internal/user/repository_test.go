//go:build unit

package user

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"course-api/pkg/cerror"
	"course-api/pkg/config"
)

const (
	TestMongoDbUserName = "root"
	TestMongoDbPassword = "12345"

	TestMongoDbDatabaseName   = "course-api"
	TestMongoDbUserCollection = "user"
)

func TestNewRepository(t *testing.T) {
	userRepository := NewRepository(nil, config.MongodbConfig{})

	assert.Implements(t, (*Repository)(nil), userRepository)
}

func newTestUserDocument() *UserDocument {
	now := time.Now().UTC().Unix()
	return &UserDocument{
		Id:            uuid.New().String(),
		Email:         fmt.Sprintf("%s@test.com", uuid.New().String()),
		Password:      "hashed-password",
		Role:          RoleUser,
		EmailVerified: false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestRepository_InsertUser(t *testing.T) {
	ctx := context.Background()
	userRepository := setupTestRepository(t, ctx)

	t.Run("happy path", func(t *testing.T) {
		document := newTestUserDocument()

		userId, err := userRepository.InsertUser(ctx, document)

		assert.NoError(t, err)
		assert.Equal(t, document.Id, userId)
	})

	t.Run("when email already exists should return error", func(t *testing.T) {
		document := newTestUserDocument()

		_, err := userRepository.InsertUser(ctx, document)
		require.NoError(t, err)

		duplicate := newTestUserDocument()
		duplicate.Email = document.Email
		_, err = userRepository.InsertUser(ctx, duplicate)

		assert.ErrorIs(t, err, cerror.ErrorEmailAlreadyExists)
	})
}

func TestRepository_FindUserWithEmail(t *testing.T) {
	ctx := context.Background()
	userRepository := setupTestRepository(t, ctx)

	t.Run("happy path", func(t *testing.T) {
		document := newTestUserDocument()
		_, err := userRepository.InsertUser(ctx, document)
		require.NoError(t, err)

		foundUser, err := userRepository.FindUserWithEmail(ctx, document.Email)

		assert.NoError(t, err)
		assert.Equal(t, document.Id, foundUser.Id)
	})

	t.Run("when user does not exist should return not found", func(t *testing.T) {
		foundUser, err := userRepository.FindUserWithEmail(ctx, "unknown@test.com")

		assert.ErrorIs(t, err, cerror.ErrorUserNotFound)
		assert.Nil(t, foundUser)
	})
}

func TestRepository_MarkEmailVerified(t *testing.T) {
	ctx := context.Background()
	userRepository := setupTestRepository(t, ctx)

	t.Run("verification flow consumes the token", func(t *testing.T) {
		document := newTestUserDocument()
		document.EmailVerificationToken = uuid.New().String()
		document.EmailVerificationExpires = time.Now().UTC().Add(24 * time.Hour).Unix()

		_, err := userRepository.InsertUser(ctx, document)
		require.NoError(t, err)

		foundUser, err := userRepository.FindUserWithVerificationToken(ctx, document.EmailVerificationToken)
		require.NoError(t, err)
		require.Equal(t, document.Id, foundUser.Id)

		err = userRepository.MarkEmailVerified(ctx, document.Id)
		assert.NoError(t, err)

		verifiedUser, err := userRepository.FindUserWithId(ctx, document.Id)
		require.NoError(t, err)
		assert.True(t, verifiedUser.EmailVerified)
		assert.Empty(t, verifiedUser.EmailVerificationToken)

		// The consumed token no longer resolves to anyone.
		_, err = userRepository.FindUserWithVerificationToken(ctx, document.EmailVerificationToken)
		assert.ErrorIs(t, err, cerror.ErrorUserNotFound)
	})

	t.Run("when user does not exist should return not found", func(t *testing.T) {
		err := userRepository.MarkEmailVerified(ctx, uuid.New().String())

		assert.ErrorIs(t, err, cerror.ErrorUserNotFound)
	})
}

func TestRepository_UpdateVerificationToken(t *testing.T) {
	ctx := context.Background()
	userRepository := setupTestRepository(t, ctx)

	t.Run("new token replaces the old one", func(t *testing.T) {
		document := newTestUserDocument()
		document.EmailVerificationToken = uuid.New().String()
		document.EmailVerificationExpires = time.Now().UTC().Add(24 * time.Hour).Unix()

		_, err := userRepository.InsertUser(ctx, document)
		require.NoError(t, err)

		newToken := uuid.New().String()
		newExpiresAt := time.Now().UTC().Add(24 * time.Hour).Unix()
		err = userRepository.UpdateVerificationToken(ctx, document.Id, newToken, newExpiresAt)
		require.NoError(t, err)

		_, err = userRepository.FindUserWithVerificationToken(ctx, document.EmailVerificationToken)
		assert.ErrorIs(t, err, cerror.ErrorUserNotFound)

		foundUser, err := userRepository.FindUserWithVerificationToken(ctx, newToken)
		assert.NoError(t, err)
		assert.Equal(t, document.Id, foundUser.Id)
	})

	t.Run("when user does not exist should return not found", func(t *testing.T) {
		err := userRepository.UpdateVerificationToken(ctx, uuid.New().String(), uuid.New().String(), 0)

		assert.ErrorIs(t, err, cerror.ErrorUserNotFound)
	})
}

func TestRepository_DeleteUnverifiedUsersCreatedBefore(t *testing.T) {
	ctx := context.Background()
	userRepository := setupTestRepository(t, ctx)

	cutoff := time.Now().UTC().Add(-7 * 24 * time.Hour)

	staleUnverified := newTestUserDocument()
	staleUnverified.CreatedAt = cutoff.Add(-time.Hour).Unix()

	recentUnverified := newTestUserDocument()

	staleVerified := newTestUserDocument()
	staleVerified.EmailVerified = true
	staleVerified.CreatedAt = cutoff.Add(-time.Hour).Unix()

	for _, document := range []*UserDocument{staleUnverified, recentUnverified, staleVerified} {
		_, err := userRepository.InsertUser(ctx, document)
		require.NoError(t, err)
	}

	deletedCount, err := userRepository.DeleteUnverifiedUsersCreatedBefore(ctx, cutoff)

	assert.NoError(t, err)
	assert.Equal(t, int64(1), deletedCount)

	_, err = userRepository.FindUserWithId(ctx, staleUnverified.Id)
	assert.ErrorIs(t, err, cerror.ErrorUserNotFound)

	_, err = userRepository.FindUserWithId(ctx, recentUnverified.Id)
	assert.NoError(t, err)

	_, err = userRepository.FindUserWithId(ctx, staleVerified.Id)
	assert.NoError(t, err)
}

func TestRepository_ListUsers(t *testing.T) {
	ctx := context.Background()
	userRepository := setupTestRepository(t, ctx)

	for i := 0; i < 5; i++ {
		document := newTestUserDocument()
		document.CreatedAt = time.Now().UTC().Add(time.Duration(i) * time.Minute).Unix()
		_, err := userRepository.InsertUser(ctx, document)
		require.NoError(t, err)
	}

	users, totalItems, err := userRepository.ListUsers(ctx, 1, 3)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), totalItems)
	require.Len(t, users, 3)
	assert.GreaterOrEqual(t, users[0].CreatedAt, users[1].CreatedAt)
	assert.GreaterOrEqual(t, users[1].CreatedAt, users[2].CreatedAt)

	users, _, err = userRepository.ListUsers(ctx, 2, 3)

	assert.NoError(t, err)
	assert.Len(t, users, 2)
}

func setupTestRepository(t *testing.T, ctx context.Context) Repository {
	t.Helper()

	container := setupMongoDbContainer(t, ctx)
	mongodbUri, err := container.Endpoint(ctx, "mongodb")
	require.NoError(t, err)

	mongodbCredential := options.Credential{
		Username: TestMongoDbUserName,
		Password: TestMongoDbPassword,
	}
	mongodbClient, err := mongo.Connect(ctx, options.Client().
		ApplyURI(mongodbUri).
		SetAuth(mongodbCredential))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = mongodbClient.Disconnect(ctx)
	})

	return NewRepository(mongodbClient, config.MongodbConfig{
		Uri:            mongodbUri,
		Username:       TestMongoDbUserName,
		Password:       TestMongoDbPassword,
		Database:       TestMongoDbDatabaseName,
		UserCollection: TestMongoDbUserCollection,
	})
}

func setupMongoDbContainer(t *testing.T, ctx context.Context) testcontainers.Container {
	req := testcontainers.ContainerRequest{
		Image: "mongo",
		Env: map[string]string{
			"MONGO_INITDB_ROOT_USERNAME": TestMongoDbUserName,
			"MONGO_INITDB_ROOT_PASSWORD": TestMongoDbPassword,
		},
		ExposedPorts: []string{"27017/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Waiting for connections"),
			wait.ForListeningPort("27017/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("failed to terminate container: %s", err)
		}
	})

	return container
}
