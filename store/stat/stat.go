package stat

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/maydayroblox/bitflow-finance/core"
)

// the aggregates live in a single well known row
const statRowID = 1

type statStore struct {
	db *db.DB
}

// New new stat store
func New(db *db.DB) core.IStatStore {
	return &statStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Stat{})
		if err := tx.AutoMigrate(core.Stat{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *statStore) Get(ctx context.Context) (*core.Stat, error) {
	stat := core.Stat{ID: statRowID}
	if err := s.db.Update().Where("id = ?", statRowID).FirstOrCreate(&stat).Error; err != nil {
		return nil, err
	}

	return &stat, nil
}

func (s *statStore) Save(ctx context.Context, tx *db.DB, stat *core.Stat) error {
	version := stat.Version
	stat.Version++
	updates := tx.Update().Model(core.Stat{}).
		Where("id = ? and version = ?", stat.ID, version).
		Updates(map[string]interface{}{
			"total_deposited":    stat.TotalDeposited,
			"total_repaid":       stat.TotalRepaid,
			"total_liquidations": stat.TotalLiquidations,
			"version":            stat.Version,
		})
	if updates.Error != nil {
		return updates.Error
	}

	if updates.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
