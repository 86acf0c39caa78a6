package models

import (
	"time"

	"github.com/thenoetrevino/pipeboard/internal/types"
)

// SubAccount is a tenant-scoped workspace owned by an agency.
// Pipelines, tags and contacts all belong to exactly one sub-account.
type SubAccount struct {
	ID        types.SubAccountID `db:"id" json:"id"`
	Name      string             `db:"name" json:"name"`
	CreatedAt time.Time          `db:"created_at" json:"created_at"`
}

// Contact is a customer of a sub-account that can be assigned to tickets
type Contact struct {
	ID           types.ContactID    `db:"id" json:"id"`
	Name         string             `db:"name" json:"name"`
	Email        string             `db:"email" json:"email"`
	SubAccountID types.SubAccountID `db:"subaccount_id" json:"subaccount_id"`
	CreatedAt    time.Time          `db:"created_at" json:"created_at"`
}
