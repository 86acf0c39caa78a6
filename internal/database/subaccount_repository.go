package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/thenoetrevino/pipeboard/internal/models"
	"github.com/thenoetrevino/pipeboard/internal/types"
)

// SubAccountRepo handles sub-account and contact persistence
type SubAccountRepo struct {
	conn
}

// CreateSubAccount inserts a new sub-account
func (r *SubAccountRepo) CreateSubAccount(ctx context.Context, name string) (*models.SubAccount, error) {
	res, err := r.q.ExecContext(ctx, `INSERT INTO subaccounts (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("inserting subaccount: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetSubAccountByID(ctx, types.SubAccountID(id))
}

// GetSubAccounts lists all sub-accounts by id
func (r *SubAccountRepo) GetSubAccounts(ctx context.Context) ([]*models.SubAccount, error) {
	var accounts []*models.SubAccount
	err := sqlx.SelectContext(ctx, r.q, &accounts,
		`SELECT id, name, created_at FROM subaccounts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying subaccounts: %w", err)
	}
	return accounts, nil
}

// GetSubAccountByID retrieves a sub-account by its ID
func (r *SubAccountRepo) GetSubAccountByID(ctx context.Context, id types.SubAccountID) (*models.SubAccount, error) {
	account := &models.SubAccount{}
	err := sqlx.GetContext(ctx, r.q, account,
		`SELECT id, name, created_at FROM subaccounts WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "subaccount", id.ToInt())
	}
	return account, nil
}

// CreateContact inserts a contact for a sub-account
func (r *SubAccountRepo) CreateContact(ctx context.Context, subAccountID types.SubAccountID, name, email string) (*models.Contact, error) {
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO contacts (name, email, subaccount_id) VALUES (?, ?, ?)`,
		name, email, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("inserting contact: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetContactByID(ctx, types.ContactID(id))
}

// GetContactByID retrieves a contact by its ID
func (r *SubAccountRepo) GetContactByID(ctx context.Context, id types.ContactID) (*models.Contact, error) {
	contact := &models.Contact{}
	err := sqlx.GetContext(ctx, r.q, contact,
		`SELECT id, name, email, subaccount_id, created_at FROM contacts WHERE id = ?`, id)
	if err != nil {
		return nil, notFound(err, "contact", id.ToInt())
	}
	return contact, nil
}

// GetContactsBySubAccount lists a sub-account's contacts by name
func (r *SubAccountRepo) GetContactsBySubAccount(ctx context.Context, subAccountID types.SubAccountID) ([]*models.Contact, error) {
	var contacts []*models.Contact
	err := sqlx.SelectContext(ctx, r.q, &contacts,
		`SELECT id, name, email, subaccount_id, created_at
		 FROM contacts WHERE subaccount_id = ? ORDER BY name, id`, subAccountID)
	if err != nil {
		return nil, fmt.Errorf("querying contacts: %w", err)
	}
	return contacts, nil
}
