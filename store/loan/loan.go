package loan

import (
	"context"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/maydayroblox/bitflow-finance/core"
)

type loanStore struct {
	db *db.DB
}

// New new loan store
func New(db *db.DB) core.ILoanStore {
	return &loanStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Loan{})
		if err := tx.AutoMigrate(core.Loan{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *loanStore) Find(ctx context.Context, borrower string) (*core.Loan, error) {
	var loan core.Loan
	if err := s.db.View().Where("borrower = ?", borrower).First(&loan).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Loan{Borrower: borrower}, nil
		}

		return nil, err
	}

	return &loan, nil
}

func (s *loanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	return tx.Update().Create(loan).Error
}

func (s *loanStore) Delete(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	deletes := tx.Update().Where("id = ? and version = ?", loan.ID, loan.Version).Delete(core.Loan{})
	if deletes.Error != nil {
		return deletes.Error
	}

	if deletes.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *loanStore) All(ctx context.Context) ([]*core.Loan, error) {
	var loans []*core.Loan
	if err := s.db.View().Find(&loans).Error; err != nil {
		return nil, err
	}

	return loans, nil
}
