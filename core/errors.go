package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrInvalidAmount amount must be positive
	ErrInvalidAmount ErrorCode = 100101
	// ErrInsufficientBalance withdraw exceeds deposit
	ErrInsufficientBalance ErrorCode = 100102
	// ErrCollateralLocked withdraw would breach the active loan's collateral
	ErrCollateralLocked ErrorCode = 100103
	// ErrLoanAlreadyActive borrower already has a loan
	ErrLoanAlreadyActive ErrorCode = 100104
	// ErrInsufficientCollateral deposit below required collateral
	ErrInsufficientCollateral ErrorCode = 100105
	// ErrNoActiveLoan repay or liquidate with nothing to act on
	ErrNoActiveLoan ErrorCode = 100106
	// ErrNotLiquidatable health factor at or above threshold
	ErrNotLiquidatable ErrorCode = 100107
	// ErrInvalidPrice price must be positive
	ErrInvalidPrice ErrorCode = 100108
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
