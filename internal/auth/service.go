package auth

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"course-api/internal/email"
	"course-api/internal/user"
	"course-api/pkg/cerror"
	"course-api/pkg/jwt_generator"
	"course-api/pkg/logger"
)

type Service interface {
	Register(ctx context.Context, payload *RegisterPayload) (*RegisterResult, error)
	Login(ctx context.Context, payload *LoginPayload) (*SessionTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*SessionTokens, error)
	VerifyEmail(ctx context.Context, token string) (*MessageResult, error)
	ResendVerification(ctx context.Context, emailAddress string) (*MessageResult, error)
	GetProfile(ctx context.Context, userId string) (*user.Profile, error)
}

type service struct {
	userRepository user.Repository
	jwtGenerator   jwt_generator.JwtGenerator
	emailSender    email.Sender
}

func NewService(
	userRepository user.Repository,
	jwtGenerator jwt_generator.JwtGenerator,
	emailSender email.Sender,
) Service {
	return &service{
		userRepository: userRepository,
		jwtGenerator:   jwtGenerator,
		emailSender:    emailSender,
	}
}

func (s *service) Register(ctx context.Context, payload *RegisterPayload) (*RegisterResult, error) {
	_, err := s.userRepository.FindUserWithEmail(ctx, payload.Email)
	if err == nil {
		return nil, cerror.ErrorEmailAlreadyExists
	}
	if !errors.Is(err, cerror.ErrorUserNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate hash from password",
			zap.Error(err),
		)
	}

	verificationToken, verificationExpires, err := generateVerificationToken()
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate verification token",
			zap.Error(err),
		)
	}

	now := time.Now().UTC().Unix()
	userDocument := &user.UserDocument{
		Id:                       uuid.New().String(),
		Email:                    payload.Email,
		Password:                 string(hashedPassword),
		FullName:                 payload.FullName,
		Role:                     user.RoleUser,
		EmailVerified:            false,
		EmailVerificationToken:   verificationToken,
		EmailVerificationExpires: verificationExpires.Unix(),
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	_, err = s.userRepository.InsertUser(ctx, userDocument)
	if err != nil {
		return nil, err
	}

	// Email delivery is best-effort here; registration already succeeded
	// and the user can request a resend.
	err = s.emailSender.SendVerificationEmail(ctx, payload.Email, payload.FullName, verificationToken)
	if err != nil {
		log := logger.FromContext(ctx)
		log.Errorw("failed to send verification email", zap.Error(err))
	}

	return &RegisterResult{
		User:    userDocument.ToProfile(),
		Message: "Registration successful! Please check your email to verify your account.",
	}, nil
}

func (s *service) Login(ctx context.Context, payload *LoginPayload) (*SessionTokens, error) {
	claimedUser, err := s.userRepository.FindUserWithEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, cerror.ErrorUserNotFound) {
			// Same error as a password mismatch; account existence must
			// not be observable.
			return nil, cerror.ErrorInvalidCredentials
		}

		return nil, err
	}

	if !claimedUser.EmailVerified {
		return nil, cerror.ErrorEmailNotVerified
	}

	err = bcrypt.CompareHashAndPassword([]byte(claimedUser.Password), []byte(payload.Password))
	if err != nil {
		return nil, cerror.ErrorInvalidCredentials
	}

	return s.generateSessionTokens(claimedUser)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*SessionTokens, error) {
	claims, err := s.jwtGenerator.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, cerror.ErrorInvalidRefreshToken.WithFields(zap.Error(err))
	}

	claimedUser, err := s.userRepository.FindUserWithId(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, cerror.ErrorUserNotFound) {
			return nil, cerror.ErrorInvalidRefreshToken
		}

		return nil, err
	}

	// Full rotation: a fresh access and refresh pair on every exchange.
	return s.generateSessionTokens(claimedUser)
}

func (s *service) VerifyEmail(ctx context.Context, token string) (*MessageResult, error) {
	claimedUser, err := s.userRepository.FindUserWithVerificationToken(ctx, token)
	if err != nil {
		if errors.Is(err, cerror.ErrorUserNotFound) {
			return nil, cerror.ErrorInvalidVerificationToken
		}

		return nil, err
	}

	if claimedUser.EmailVerified {
		return nil, cerror.ErrorAlreadyVerified
	}

	if claimedUser.EmailVerificationExpires > 0 {
		expiresAt := time.Unix(claimedUser.EmailVerificationExpires, 0)
		if time.Now().UTC().After(expiresAt) {
			return nil, cerror.ErrorVerificationTokenExpired
		}
	}

	err = s.userRepository.MarkEmailVerified(ctx, claimedUser.Id)
	if err != nil {
		return nil, err
	}

	return &MessageResult{
		Message: "Email verified successfully! You can now log in.",
	}, nil
}

func (s *service) ResendVerification(ctx context.Context, emailAddress string) (*MessageResult, error) {
	claimedUser, err := s.userRepository.FindUserWithEmail(ctx, emailAddress)
	if err != nil {
		if errors.Is(err, cerror.ErrorUserNotFound) {
			return nil, cerror.ErrorEmailNotFound
		}

		return nil, err
	}

	if claimedUser.EmailVerified {
		return nil, cerror.ErrorAlreadyVerified
	}

	verificationToken, verificationExpires, err := generateVerificationToken()
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate verification token",
			zap.Error(err),
		)
	}

	// Overwriting the stored token implicitly invalidates the old one.
	err = s.userRepository.UpdateVerificationToken(
		ctx,
		claimedUser.Id,
		verificationToken,
		verificationExpires.Unix(),
	)
	if err != nil {
		return nil, err
	}

	// Unlike registration, delivery failure surfaces to the caller: the
	// resend response is the only signal the user gets.
	err = s.emailSender.SendVerificationEmail(ctx, emailAddress, claimedUser.FullName, verificationToken)
	if err != nil {
		return nil, cerror.ErrorEmailDeliveryFailed.WithFields(zap.Error(err))
	}

	return &MessageResult{
		Message: "Verification email has been resent. Please check your inbox.",
	}, nil
}

func (s *service) GetProfile(ctx context.Context, userId string) (*user.Profile, error) {
	claimedUser, err := s.userRepository.FindUserWithId(ctx, userId)
	if err != nil {
		return nil, err
	}

	return claimedUser.ToProfile(), nil
}

func (s *service) generateSessionTokens(claimedUser *user.UserDocument) (*SessionTokens, error) {
	accessToken, err := s.jwtGenerator.GenerateAccessToken(claimedUser.Email, claimedUser.Id)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate access token",
			zap.Error(err),
		)
	}

	refreshToken, err := s.jwtGenerator.GenerateRefreshToken(claimedUser.Email, claimedUser.Id)
	if err != nil {
		return nil, cerror.NewError(
			fiber.StatusInternalServerError,
			"error occurred while generate refresh token",
			zap.Error(err),
		)
	}

	return &SessionTokens{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		ExpiresIn:        s.jwtGenerator.AccessTokenExpiresInSeconds(),
		RefreshExpiresIn: s.jwtGenerator.RefreshTokenExpiresInSeconds(),
		User: &UserSummary{
			Id:       claimedUser.Id,
			Email:    claimedUser.Email,
			FullName: claimedUser.FullName,
		},
	}, nil
}
