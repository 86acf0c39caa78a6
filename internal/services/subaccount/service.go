package subaccount

import (
	"context"
	"fmt"
	"net/mail"

	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

const maxNameLength = 100

// Service defines sub-account and contact operations
type Service interface {
	GetSubAccounts(ctx context.Context) ([]*models.SubAccount, error)
	GetSubAccountByID(ctx context.Context, id types.SubAccountID) (*models.SubAccount, error)
	CreateSubAccount(ctx context.Context, name string) (*models.SubAccount, error)

	GetContactByID(ctx context.Context, id types.ContactID) (*models.Contact, error)
	GetContactsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Contact, error)
	CreateContact(ctx context.Context, req CreateContactRequest) (*models.Contact, error)
}

// CreateContactRequest encapsulates data for creating a contact
type CreateContactRequest struct {
	SubAccountID types.SubAccountID
	Name         string
	Email        string // Optional
}

// repository defines the data access methods needed by the sub-account service
type repository interface {
	GetSubAccounts(ctx context.Context) ([]*models.SubAccount, error)
	GetSubAccountByID(ctx context.Context, id types.SubAccountID) (*models.SubAccount, error)
	CreateSubAccount(ctx context.Context, name string) (*models.SubAccount, error)
	GetContactByID(ctx context.Context, id types.ContactID) (*models.Contact, error)
	GetContactsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Contact, error)
	CreateContact(ctx context.Context, subAccountID types.SubAccountID, name, email string) (*models.Contact, error)
}

type service struct {
	repo repository
}

// NewService creates a new sub-account service.
// Sub-accounts live above any single pipeline so nothing here publishes events.
func NewService(repo repository) Service {
	return &service{repo: repo}
}

func (s *service) GetSubAccounts(ctx context.Context) ([]*models.SubAccount, error) {
	return s.repo.GetSubAccounts(ctx)
}

func (s *service) GetSubAccountByID(ctx context.Context, id types.SubAccountID) (*models.SubAccount, error) {
	if id <= 0 {
		return nil, ErrInvalidSubAccountID
	}
	return s.repo.GetSubAccountByID(ctx, id)
}

// CreateSubAccount creates a new sub-account
func (s *service) CreateSubAccount(ctx context.Context, name string) (*models.SubAccount, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	account, err := s.repo.CreateSubAccount(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create sub-account: %w", err)
	}
	return account, nil
}

func (s *service) GetContactByID(ctx context.Context, id types.ContactID) (*models.Contact, error) {
	if id <= 0 {
		return nil, ErrInvalidContactID
	}
	return s.repo.GetContactByID(ctx, id)
}

func (s *service) GetContactsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Contact, error) {
	if subAccountID <= 0 {
		return nil, ErrInvalidSubAccountID
	}
	return s.repo.GetContactsBySubAccount(ctx, subAccountID)
}

// CreateContact adds a contact to an existing sub-account
func (s *service) CreateContact(ctx context.Context, req CreateContactRequest) (*models.Contact, error) {
	if req.SubAccountID <= 0 {
		return nil, ErrInvalidSubAccountID
	}
	if err := validateName(req.Name); err != nil {
		return nil, err
	}
	if req.Email != "" {
		if _, err := mail.ParseAddress(req.Email); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEmail, req.Email)
		}
	}

	if _, err := s.repo.GetSubAccountByID(ctx, req.SubAccountID); err != nil {
		return nil, fmt.Errorf("failed to get sub-account: %w", err)
	}

	contact, err := s.repo.CreateContact(ctx, req.SubAccountID, req.Name, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}
	return contact, nil
}

func validateName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}
