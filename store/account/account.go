package account

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/maydayroblox/bitflow-finance/core"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Account{})
		if err := tx.AutoMigrate(core.Account{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Find(ctx context.Context, address string) (*core.Account, error) {
	var account core.Account
	if err := s.db.View().Where("address = ?", address).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			// absence reads as a zero balance
			return &core.Account{Address: address}, nil
		}

		return nil, err
	}

	return &account, nil
}

func (s *accountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	if account.ID == 0 {
		return tx.Update().Create(account).Error
	}

	version := account.Version
	account.Version++
	updates := tx.Update().Model(core.Account{}).
		Where("id = ? and version = ?", account.ID, version).
		Updates(map[string]interface{}{
			"deposited": account.Deposited,
			"version":   account.Version,
		})
	if updates.Error != nil {
		return updates.Error
	}

	if updates.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *accountStore) All(ctx context.Context) ([]*core.Account, error) {
	var accounts []*core.Account
	if err := s.db.View().Find(&accounts).Error; err != nil {
		return nil, err
	}

	return accounts, nil
}
