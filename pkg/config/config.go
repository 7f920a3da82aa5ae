package config

import (
	"fmt"
	"os"

	"github.com/kr/pretty"
)

type Config struct {
	ServerPort      string
	FrontendUrl     string
	CleanupSchedule string
	Mongodb         MongodbConfig
	Jwt             JwtConfig
	Email           EmailConfig
}

func ReadConfig() (*Config, error) {
	serverPort := os.Getenv(ServerPort)
	if serverPort == "" {
		serverPort = DefaultServerPort
		fmt.Println("server port environment variable is empty its declared 8080 by default")
	}

	frontendUrl := os.Getenv(FrontendUrl)
	if frontendUrl == "" {
		frontendUrl = DefaultFrontendUrl
	}

	cleanupSchedule := os.Getenv(CleanupSchedule)
	if cleanupSchedule == "" {
		cleanupSchedule = DefaultCleanupSchedule
	}

	mongodbConfig, err := ReadMongoDbConfig()
	if err != nil {
		return nil, err
	}

	jwtConfig, err := ReadJwtConfig()
	if err != nil {
		return nil, err
	}

	emailConfig, err := ReadEmailConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:      serverPort,
		FrontendUrl:     frontendUrl,
		CleanupSchedule: cleanupSchedule,
		Mongodb:         mongodbConfig,
		Jwt:             jwtConfig,
		Email:           emailConfig,
	}, nil
}

func (c *Config) Print() {
	_, _ = pretty.Println(c)
}

func ReadMongoDbConfig() (MongodbConfig, error) {
	mongodbUri := os.Getenv(MongodbUri)
	if mongodbUri == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUri)
	}

	mongodbUsername := os.Getenv(MongodbUsername)
	if mongodbUsername == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUsername)
	}

	mongodbPassword := os.Getenv(MongodbPassword)
	if mongodbPassword == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbPassword)
	}

	mongodbDatabase := os.Getenv(MongodbDatabase)
	if mongodbDatabase == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbDatabase)
	}

	mongodbUserCollection := os.Getenv(MongodbUserCollection)
	if mongodbUserCollection == "" {
		return MongodbConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, MongodbUserCollection)
	}

	return MongodbConfig{
		Uri:            mongodbUri,
		Username:       mongodbUsername,
		Password:       mongodbPassword,
		Database:       mongodbDatabase,
		UserCollection: mongodbUserCollection,
	}, nil
}

func ReadJwtConfig() (JwtConfig, error) {
	accessSecret := os.Getenv(JwtAccessSecret)
	if accessSecret == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, JwtAccessSecret)
	}

	refreshSecret := os.Getenv(JwtRefreshSecret)
	if refreshSecret == "" {
		return JwtConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, JwtRefreshSecret)
	}

	expiresIn := os.Getenv(JwtExpiresIn)
	if expiresIn == "" {
		expiresIn = DefaultJwtExpiresIn
	}

	refreshExpiresIn := os.Getenv(JwtRefreshExpiresIn)
	if refreshExpiresIn == "" {
		refreshExpiresIn = DefaultJwtRefreshExpiresIn
	}

	return JwtConfig{
		AccessSecret:     []byte(accessSecret),
		RefreshSecret:    []byte(refreshSecret),
		ExpiresIn:        expiresIn,
		RefreshExpiresIn: refreshExpiresIn,
	}, nil
}

func ReadEmailConfig() (EmailConfig, error) {
	apiKey := os.Getenv(ResendApiKey)
	if apiKey == "" {
		return EmailConfig{}, fmt.Errorf(EnvironmentVariableNotDefined, ResendApiKey)
	}

	fromEmail := os.Getenv(ResendFromEmail)
	if fromEmail == "" {
		fromEmail = DefaultResendFromEmail
	}

	return EmailConfig{
		ApiKey:    apiKey,
		FromEmail: fromEmail,
	}, nil
}
