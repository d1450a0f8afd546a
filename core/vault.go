package core

import (
	"context"
)

// PositionSummary full read-only view of one address
type PositionSummary struct {
	Address                string `json:"address"`
	DepositAmount          int64  `json:"deposit_amount"`
	HasLoan                bool   `json:"has_loan"`
	LoanAmount             int64  `json:"loan_amount"`
	LoanInterestRate       int64  `json:"loan_interest_rate"`
	LoanTermEnd            int64  `json:"loan_term_end"`
	HealthFactor           int64  `json:"health_factor"`
	IsLiquidatable         bool   `json:"is_liquidatable"`
	MaxBorrowAvailable     int64  `json:"max_borrow_available"`
	CollateralUsagePercent int64  `json:"collateral_usage_percent"`
}

// IVaultService the collateralized lending ledger. Every mutation is a
// single atomic transition: it either fully commits or fails with an
// ErrorCode and no observable side effect.
type IVaultService interface {
	Deposit(ctx context.Context, address string, amount int64) error
	Withdraw(ctx context.Context, address string, amount int64) error
	Borrow(ctx context.Context, address string, amount, ratePercent, termDays int64) error
	Repay(ctx context.Context, address string) (*Repayment, error)
	Liquidate(ctx context.Context, borrower string, price int64, liquidator string) (*Liquidation, error)

	GetUserDeposit(ctx context.Context, address string) (int64, error)
	// GetUserLoan returns nil when the address has no active loan.
	GetUserLoan(ctx context.Context, address string) (*Loan, error)
	// GetRepaymentAmount returns nil when the address has no active loan.
	GetRepaymentAmount(ctx context.Context, address string) (*Repayment, error)
	GetMaxBorrowAmount(ctx context.Context, address string) (int64, error)
	// CalculateHealthFactor reports ok = false when there is no position.
	CalculateHealthFactor(ctx context.Context, address string, price int64) (hf int64, ok bool, err error)
	IsLiquidatable(ctx context.Context, address string, price int64) (bool, error)
	GetProtocolStats(ctx context.Context) (*Stat, error)
	GetPositionSummary(ctx context.Context, address string, price int64) (*PositionSummary, error)
}

// IBlockService block height clock
type IBlockService interface {
	CurrentBlock(ctx context.Context) (int64, error)
}

// IPriceService price collaborator. The vault itself never fetches a
// price; workers and handlers do and pass it in as a parameter.
type IPriceService interface {
	// CurrentPrice returns the USD price of one unit, scaled to subunits.
	CurrentPrice(ctx context.Context) (int64, error)
}
