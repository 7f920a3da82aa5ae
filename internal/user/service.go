package user

import (
	"context"

	"course-api/pkg/response"
)

type Service interface {
	ListUsers(ctx context.Context, page, limit int64) ([]Profile, *response.Pagination, error)
	GetUserRole(ctx context.Context, userId string) (string, error)
}

type service struct {
	userRepository Repository
}

func NewService(userRepository Repository) Service {
	return &service{
		userRepository: userRepository,
	}
}

func (s *service) ListUsers(ctx context.Context, page, limit int64) ([]Profile, *response.Pagination, error) {
	users, totalItems, err := s.userRepository.ListUsers(ctx, page, limit)
	if err != nil {
		return nil, nil, err
	}

	profiles := make([]Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, *users[i].ToProfile())
	}

	totalPages := totalItems / limit
	if totalItems%limit > 0 {
		totalPages++
	}

	return profiles, &response.Pagination{
		Page:       int(page),
		Limit:      int(limit),
		TotalItems: totalItems,
		TotalPages: totalPages,
	}, nil
}

// GetUserRole is the capability check behind role-gated routes.
func (s *service) GetUserRole(ctx context.Context, userId string) (string, error) {
	userDocument, err := s.userRepository.FindUserWithId(ctx, userId)
	if err != nil {
		return "", err
	}

	return userDocument.Role, nil
}
