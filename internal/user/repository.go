package user

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"course-api/pkg/cerror"
	"course-api/pkg/config"
)

type Repository interface {
	InsertUser(ctx context.Context, user *UserDocument) (string, error)
	FindUserWithId(ctx context.Context, userId string) (*UserDocument, error)
	FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error)
	FindUserWithVerificationToken(ctx context.Context, token string) (*UserDocument, error)
	MarkEmailVerified(ctx context.Context, userId string) error
	UpdateVerificationToken(ctx context.Context, userId, token string, expiresAt int64) error
	DeleteUnverifiedUsersCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
	ListUsers(ctx context.Context, page, limit int64) ([]UserDocument, int64, error)
}

type repository struct {
	client *mongo.Client
	config config.MongodbConfig
}

func NewRepository(client *mongo.Client, config config.MongodbConfig) Repository {
	return &repository{
		client: client,
		config: config,
	}
}

func (r *repository) collection() *mongo.Collection {
	return r.client.
		Database(r.config.Database).
		Collection(r.config.UserCollection)
}

func (r *repository) InsertUser(ctx context.Context, user *UserDocument) (string, error) {
	collection := r.collection()

	// Email is globally unique; enforced before every mutation.
	var foundUser bson.D
	filter := bson.D{{Key: "email", Value: user.Email}}
	err := collection.FindOne(ctx, &filter).Decode(&foundUser)
	if err != nil && err != mongo.ErrNoDocuments {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while user existing check",
			zap.Error(err),
		)
	}

	if len(foundUser) > 0 {
		return "", cerror.ErrorEmailAlreadyExists
	}

	result, err := collection.InsertOne(ctx, user)
	if err != nil {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while insert user",
			zap.Error(err),
		)
	}

	userId, ok := result.InsertedID.(string)
	if !ok {
		return "", cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while type casting for user id",
		)
	}

	return userId, nil
}

func (r *repository) FindUserWithId(ctx context.Context, userId string) (*UserDocument, error) {
	filter := bson.D{{Key: "_id", Value: userId}}
	return r.findOne(ctx, filter, "error occurred while find user with id")
}

func (r *repository) FindUserWithEmail(ctx context.Context, email string) (*UserDocument, error) {
	filter := bson.D{{Key: "email", Value: email}}
	return r.findOne(ctx, filter, "error occurred while find user with email")
}

func (r *repository) FindUserWithVerificationToken(ctx context.Context, token string) (*UserDocument, error) {
	filter := bson.D{{Key: "emailVerificationToken", Value: token}}
	return r.findOne(ctx, filter, "error occurred while find user with verification token")
}

func (r *repository) findOne(ctx context.Context, filter bson.D, logMessage string) (*UserDocument, error) {
	var user UserDocument
	err := r.collection().FindOne(ctx, &filter).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, cerror.ErrorUserNotFound
		}

		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			logMessage,
			zap.Error(err),
		)
	}

	return &user, nil
}

// MarkEmailVerified flips the verified flag and clears the token fields in
// one update, so a consumed token can never be replayed.
func (r *repository) MarkEmailVerified(ctx context.Context, userId string) error {
	filter := bson.D{{Key: "_id", Value: userId}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "emailVerified", Value: true},
			{Key: "updatedAt", Value: time.Now().UTC().Unix()},
		}},
		{Key: "$unset", Value: bson.D{
			{Key: "emailVerificationToken", Value: ""},
			{Key: "emailVerificationExpires", Value: ""},
		}},
	}

	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while mark email verified",
			zap.Error(err),
		)
	}

	if result.MatchedCount == 0 {
		return cerror.ErrorUserNotFound
	}

	return nil
}

func (r *repository) UpdateVerificationToken(
	ctx context.Context,
	userId, token string,
	expiresAt int64,
) error {
	filter := bson.D{{Key: "_id", Value: userId}}
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "emailVerificationToken", Value: token},
			{Key: "emailVerificationExpires", Value: expiresAt},
			{Key: "updatedAt", Value: time.Now().UTC().Unix()},
		}},
	}

	result, err := r.collection().UpdateOne(ctx, filter, update)
	if err != nil {
		return cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while update verification token",
			zap.Error(err),
		)
	}

	if result.MatchedCount == 0 {
		return cerror.ErrorUserNotFound
	}

	return nil
}

func (r *repository) DeleteUnverifiedUsersCreatedBefore(
	ctx context.Context,
	cutoff time.Time,
) (int64, error) {
	filter := bson.D{
		{Key: "emailVerified", Value: false},
		{Key: "createdAt", Value: bson.D{{Key: "$lt", Value: cutoff.UTC().Unix()}}},
	}

	result, err := r.collection().DeleteMany(ctx, filter)
	if err != nil {
		return 0, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while delete unverified users",
			zap.Error(err),
		)
	}

	return result.DeletedCount, nil
}

func (r *repository) ListUsers(ctx context.Context, page, limit int64) ([]UserDocument, int64, error) {
	collection := r.collection()

	totalItems, err := collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return nil, 0, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while count users",
			zap.Error(err),
		)
	}

	findOptions := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip((page - 1) * limit).
		SetLimit(limit)

	cursor, err := collection.Find(ctx, bson.D{}, findOptions)
	if err != nil {
		return nil, 0, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while list users",
			zap.Error(err),
		)
	}

	var users []UserDocument
	err = cursor.All(ctx, &users)
	if err != nil {
		return nil, 0, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while decode users",
			zap.Error(err),
		)
	}

	return users, totalItems, nil
}
