package transaction

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/maydayroblox/bitflow-finance/core"
)

type transactionStore struct {
	db *db.DB
}

// New new transaction store
func New(db *db.DB) core.ITransactionStore {
	return &transactionStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Transaction{})
		if err := tx.AutoMigrate(core.Transaction{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *transactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	return tx.Update().Create(transaction).Error
}

func (s *transactionStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	if err := s.db.View().
		Where("id > ?", fromID).
		Order("id").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}

func (s *transactionStore) ListByAddress(ctx context.Context, address string, fromID uint64, limit int) ([]*core.Transaction, error) {
	var transactions []*core.Transaction
	if err := s.db.View().
		Where("address = ? and id > ?", address, fromID).
		Order("id").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	return transactions, nil
}

func (s *transactionStore) Aggregate(ctx context.Context) ([]*core.ActionAggregate, error) {
	var aggregates []*core.ActionAggregate
	if err := s.db.View().Model(core.Transaction{}).
		Select("action, count(*) as count, sum(amount) as volume").
		Group("action").
		Scan(&aggregates).Error; err != nil {
		return nil, err
	}

	return aggregates, nil
}
