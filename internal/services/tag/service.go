package tag

import (
	"context"
	"fmt"
	"regexp"

	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// DefaultColor is used when a tag is created without a color
const DefaultColor = "#7D56F4"

// Service defines all tag-related business operations
type Service interface {
	GetTagsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Tag, error)
	CreateTag(ctx context.Context, req CreateTagRequest) (*models.Tag, error)
	DeleteTag(ctx context.Context, id types.TagID) error
}

// CreateTagRequest encapsulates data for creating a tag
type CreateTagRequest struct {
	SubAccountID types.SubAccountID
	Name         string
	Color        string
}

// repository defines the data access methods needed by the tag service
type repository interface {
	GetSubAccountByID(ctx context.Context, id types.SubAccountID) (*models.SubAccount, error)
	GetTagsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Tag, error)
	CreateTag(ctx context.Context, subAccountID types.SubAccountID, name, color string) (*models.Tag, error)
	DeleteTag(ctx context.Context, id types.TagID) error
}

// service implements Service interface with private repository.
// Tags are sub-account scoped and not shown on a single pipeline, so tag
// changes publish nothing; attaching them to tickets goes through the
// ticket service.
type service struct {
	repo repository
}

// NewService creates a new tag service
func NewService(repo repository) Service {
	return &service{repo: repo}
}

// GetTagsBySubAccount lists a sub-account's tags alphabetically
func (s *service) GetTagsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Tag, error) {
	if subAccountID <= 0 {
		return nil, ErrInvalidSubAccountID
	}
	return s.repo.GetTagsBySubAccount(ctx, subAccountID)
}

// CreateTag creates a tag; names are unique per sub-account
func (s *service) CreateTag(ctx context.Context, req CreateTagRequest) (*models.Tag, error) {
	if req.Color == "" {
		req.Color = DefaultColor
	}
	if err := validateCreateTag(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetSubAccountByID(ctx, req.SubAccountID); err != nil {
		return nil, fmt.Errorf("failed to get sub-account: %w", err)
	}

	tag, err := s.repo.CreateTag(ctx, req.SubAccountID, req.Name, req.Color)
	if err != nil {
		return nil, fmt.Errorf("failed to create tag: %w", err)
	}
	return tag, nil
}

// DeleteTag deletes a tag and detaches it from every ticket
func (s *service) DeleteTag(ctx context.Context, id types.TagID) error {
	if id <= 0 {
		return ErrInvalidTagID
	}
	if err := s.repo.DeleteTag(ctx, id); err != nil {
		return fmt.Errorf("failed to delete tag: %w", err)
	}
	return nil
}

func validateCreateTag(req CreateTagRequest) error {
	if req.SubAccountID <= 0 {
		return ErrInvalidSubAccountID
	}
	if req.Name == "" {
		return ErrEmptyName
	}
	if len(req.Name) > 50 {
		return ErrNameTooLong
	}
	if !hexColorRegex.MatchString(req.Color) {
		return ErrInvalidColor
	}
	return nil
}
