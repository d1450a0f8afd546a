package loan

import (
	"context"
	"fmt"
	"time"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"github.com/maydayroblox/bitflow-finance/core"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a loan store with a short lived LRU read cache. Mutations
// run on the wrapped store and drop the cached entry, so the cached view
// is only used by read-only query paths.
func Cache(store core.ILoanStore, exp time.Duration) core.ILoanStore {
	return &cacheLoanStore{
		ILoanStore: store,
		cache:      gcache.New(2048).LRU().Expiration(exp).Build(),
		sf:         &singleflight.Group{},
	}
}

type cacheLoanStore struct {
	core.ILoanStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheLoanStore) Find(ctx context.Context, borrower string) (*core.Loan, error) {
	key := s.loanKey(borrower)
	if v, err := s.cache.Get(key); err == nil {
		if loan, ok := v.(*core.Loan); ok {
			return loan, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		loan, err := s.ILoanStore.Find(ctx, borrower)
		if err != nil {
			return nil, err
		}

		s.cache.Set(key, loan)
		return loan, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Loan), nil
}

func (s *cacheLoanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	if err := s.ILoanStore.Create(ctx, tx, loan); err != nil {
		return err
	}

	s.cache.Remove(s.loanKey(loan.Borrower))
	return nil
}

func (s *cacheLoanStore) Delete(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	if err := s.ILoanStore.Delete(ctx, tx, loan); err != nil {
		return err
	}

	s.cache.Remove(s.loanKey(loan.Borrower))
	return nil
}

func (s *cacheLoanStore) loanKey(borrower string) string {
	return fmt.Sprintf("loan:borrower:%s", borrower)
}
