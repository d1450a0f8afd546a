package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Loan user loan model. A borrower holds at most one active loan,
// enforced by the unique index on borrower. All amounts are subunits,
// time is measured in block height.
type Loan struct {
	ID           uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Borrower     string    `sql:"size:64;unique_index:loan_borrower_idx" json:"borrower"`
	Principal    int64     `json:"principal"`
	InterestRate int64     `json:"interest_rate"`
	StartBlock   int64     `json:"start_block"`
	TermEnd      int64     `json:"term_end"`
	Version      int64     `sql:"default:0" json:"version"`
	CreatedAt    time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ILoanStore loan store interface
type ILoanStore interface {
	// Find returns the active loan of borrower, with ID = 0 when none exists.
	Find(ctx context.Context, borrower string) (*Loan, error)
	Create(ctx context.Context, tx *db.DB, loan *Loan) error
	Delete(ctx context.Context, tx *db.DB, loan *Loan) error
	All(ctx context.Context) ([]*Loan, error)
}

// Repayment repay quote: interest accrued on top of principal up to the
// quoted block.
type Repayment struct {
	Principal int64 `json:"principal"`
	Interest  int64 `json:"interest"`
	Total     int64 `json:"total"`
}

// Liquidation result of seizing an under-collateralized position.
type Liquidation struct {
	SeizedCollateral int64 `json:"seized_collateral"`
	Paid             int64 `json:"paid"`
	Bonus            int64 `json:"bonus"`
}
