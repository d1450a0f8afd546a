package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Stat protocol wide aggregates, maintained inside the same transaction
// as the ledger mutation that moves them.
type Stat struct {
	ID                uint64    `sql:"PRIMARY_KEY" json:"id"`
	TotalDeposited    int64     `sql:"default:0" json:"total_deposited"`
	TotalRepaid       int64     `sql:"default:0" json:"total_repaid"`
	TotalLiquidations int64     `sql:"default:0" json:"total_liquidations"`
	Version           int64     `sql:"default:0" json:"version"`
	UpdatedAt         time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IStatStore stat store interface
type IStatStore interface {
	Get(ctx context.Context) (*Stat, error)
	Save(ctx context.Context, tx *db.DB, stat *Stat) error
}
