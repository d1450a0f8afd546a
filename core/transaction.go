package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// ActionType vault mutation kind
type ActionType int

const (
	// ActionTypeDeposit deposit
	ActionTypeDeposit ActionType = iota
	// ActionTypeWithdraw withdraw
	ActionTypeWithdraw
	// ActionTypeBorrow borrow
	ActionTypeBorrow
	// ActionTypeRepay repay
	ActionTypeRepay
	// ActionTypeLiquidate liquidate
	ActionTypeLiquidate
)

func (a ActionType) String() string {
	switch a {
	case ActionTypeDeposit:
		return "deposit"
	case ActionTypeWithdraw:
		return "withdraw"
	case ActionTypeBorrow:
		return "borrow"
	case ActionTypeRepay:
		return "repay"
	case ActionTypeLiquidate:
		return "liquidate"
	default:
		return "unknown"
	}
}

// Transaction one committed vault mutation. Amount carries the value the
// action moved: deposit/withdraw amount, borrow principal, repay total,
// liquidation seized collateral.
type Transaction struct {
	ID        uint64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string     `sql:"size:36;unique_index:transaction_trace_idx" json:"trace_id"`
	Address   string     `sql:"size:64;index:transaction_address_idx" json:"address"`
	Action    ActionType `json:"action"`
	Amount    int64      `json:"amount"`
	Block     int64      `json:"block"`
	CreatedAt time.Time  `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// ActionAggregate per-action rollup over the transaction log
type ActionAggregate struct {
	Action ActionType `json:"action"`
	Count  int64      `json:"count"`
	Volume int64      `json:"volume"`
}

// ITransactionStore transaction store interface
type ITransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	List(ctx context.Context, fromID uint64, limit int) ([]*Transaction, error)
	ListByAddress(ctx context.Context, address string, fromID uint64, limit int) ([]*Transaction, error)
	Aggregate(ctx context.Context) ([]*ActionAggregate, error)
}
