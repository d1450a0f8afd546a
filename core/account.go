package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Account vault deposit account. Deposited is denominated in subunits
// (1e6 subunits = 1 unit) and is never negative.
type Account struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Address   string    `sql:"size:64;unique_index:account_address_idx" json:"address"`
	Deposited int64     `sql:"default:0" json:"deposited"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IAccountStore account store interface
type IAccountStore interface {
	// Find returns the account for address. A missing account is not an
	// error; the zero balance account is returned with ID = 0.
	Find(ctx context.Context, address string) (*Account, error)
	Save(ctx context.Context, tx *db.DB, account *Account) error
	All(ctx context.Context) ([]*Account, error)
}
