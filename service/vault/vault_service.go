package vault

import (
	"context"
	"math"
	"sync"

	"github.com/fox-one/pkg/store/db"
	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/internal/bitflow"
	"github.com/maydayroblox/bitflow-finance/pkg/id"
)

type vaultService struct {
	db               *db.DB
	accountStore     core.IAccountStore
	loanStore        core.ILoanStore
	statStore        core.IStatStore
	transactionStore core.ITransactionStore
	blockService     core.IBlockService

	// serializes mutating transitions; the host this ledger was modeled
	// on runs them strictly one at a time
	mux sync.Mutex
}

// New new vault service
func New(
	db *db.DB,
	accountStore core.IAccountStore,
	loanStore core.ILoanStore,
	statStore core.IStatStore,
	transactionStore core.ITransactionStore,
	blockService core.IBlockService,
) core.IVaultService {
	return &vaultService{
		db:               db,
		accountStore:     accountStore,
		loanStore:        loanStore,
		statStore:        statStore,
		transactionStore: transactionStore,
		blockService:     blockService,
	}
}

// transact runs fn inside one database transaction. Stores without a
// backing database (in-memory test doubles) run the writes directly;
// validation always happens before any write, so a rejected call has
// already returned by the time fn runs.
func (s *vaultService) transact(fn func(tx *db.DB) error) error {
	if s.db == nil {
		return fn(nil)
	}

	return s.db.Tx(fn)
}

func (s *vaultService) Deposit(ctx context.Context, address string, amount int64) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	account, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return err
	}

	stat, err := s.statStore.Get(ctx)
	if err != nil {
		return err
	}

	// the balance and the aggregate must both stay addressable in int64
	if amount > math.MaxInt64-account.Deposited || amount > math.MaxInt64-stat.TotalDeposited {
		return core.ErrInvalidAmount
	}

	account.Deposited += amount
	stat.TotalDeposited += amount

	return s.transact(func(tx *db.DB) error {
		if err := s.accountStore.Save(ctx, tx, account); err != nil {
			return err
		}

		if err := s.statStore.Save(ctx, tx, stat); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			TraceID: id.GenTraceID(),
			Address: address,
			Action:  core.ActionTypeDeposit,
			Amount:  amount,
			Block:   block,
		})
	})
}

func (s *vaultService) Withdraw(ctx context.Context, address string, amount int64) error {
	if amount <= 0 {
		return core.ErrInvalidAmount
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	account, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return err
	}

	if amount > account.Deposited {
		return core.ErrInsufficientBalance
	}

	loan, err := s.loanStore.Find(ctx, address)
	if err != nil {
		return err
	}

	// an active loan keeps its collateral locked; letting it leave would
	// strand an under-collateralized position no liquidator can reach
	if loan.ID > 0 && !bitflow.CollateralCovers(account.Deposited-amount, loan.Principal) {
		return core.ErrCollateralLocked
	}

	stat, err := s.statStore.Get(ctx)
	if err != nil {
		return err
	}

	account.Deposited -= amount
	stat.TotalDeposited -= amount

	return s.transact(func(tx *db.DB) error {
		if err := s.accountStore.Save(ctx, tx, account); err != nil {
			return err
		}

		if err := s.statStore.Save(ctx, tx, stat); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			TraceID: id.GenTraceID(),
			Address: address,
			Action:  core.ActionTypeWithdraw,
			Amount:  amount,
			Block:   block,
		})
	})
}

func (s *vaultService) Borrow(ctx context.Context, address string, amount, ratePercent, termDays int64) error {
	if amount <= 0 || termDays <= 0 || ratePercent < 0 {
		return core.ErrInvalidAmount
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	loan, err := s.loanStore.Find(ctx, address)
	if err != nil {
		return err
	}

	if loan.ID > 0 {
		return core.ErrLoanAlreadyActive
	}

	account, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return err
	}

	if !bitflow.CollateralCovers(account.Deposited, amount) {
		return core.ErrInsufficientCollateral
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	return s.transact(func(tx *db.DB) error {
		if err := s.loanStore.Create(ctx, tx, &core.Loan{
			Borrower:     address,
			Principal:    amount,
			InterestRate: ratePercent,
			StartBlock:   block,
			TermEnd:      bitflow.TermEnd(block, termDays),
		}); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			TraceID: id.GenTraceID(),
			Address: address,
			Action:  core.ActionTypeBorrow,
			Amount:  amount,
			Block:   block,
		})
	})
}

func (s *vaultService) Repay(ctx context.Context, address string) (*core.Repayment, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	loan, err := s.loanStore.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if loan.ID == 0 {
		return nil, core.ErrNoActiveLoan
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	repayment := quote(loan, block)

	stat, err := s.statStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	stat.TotalRepaid += repayment.Total

	if err := s.transact(func(tx *db.DB) error {
		if err := s.loanStore.Delete(ctx, tx, loan); err != nil {
			return err
		}

		if err := s.statStore.Save(ctx, tx, stat); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			TraceID: id.GenTraceID(),
			Address: address,
			Action:  core.ActionTypeRepay,
			Amount:  repayment.Total,
			Block:   block,
		})
	}); err != nil {
		return nil, err
	}

	return repayment, nil
}

func (s *vaultService) Liquidate(ctx context.Context, borrower string, price int64, liquidator string) (*core.Liquidation, error) {
	if price <= 0 {
		return nil, core.ErrInvalidPrice
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	loan, err := s.loanStore.Find(ctx, borrower)
	if err != nil {
		return nil, err
	}

	if loan.ID == 0 {
		return nil, core.ErrNoActiveLoan
	}

	account, err := s.accountStore.Find(ctx, borrower)
	if err != nil {
		return nil, err
	}

	hf, ok := bitflow.HealthFactor(account.Deposited, loan.Principal, price)
	if !ok || !bitflow.Liquidatable(hf) {
		return nil, core.ErrNotLiquidatable
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	repayment := quote(loan, block)
	seized := account.Deposited
	paid, bonus := bitflow.LiquidationPayout(seized, repayment.Total)

	stat, err := s.statStore.Get(ctx)
	if err != nil {
		return nil, err
	}

	account.Deposited = 0
	// the seized balance leaves the ledger, keep the aggregate equal to
	// the sum of account balances
	stat.TotalDeposited -= seized
	stat.TotalLiquidations++

	if err := s.transact(func(tx *db.DB) error {
		if err := s.accountStore.Save(ctx, tx, account); err != nil {
			return err
		}

		if err := s.loanStore.Delete(ctx, tx, loan); err != nil {
			return err
		}

		if err := s.statStore.Save(ctx, tx, stat); err != nil {
			return err
		}

		return s.transactionStore.Create(ctx, tx, &core.Transaction{
			TraceID: id.GenTraceID(),
			Address: borrower,
			Action:  core.ActionTypeLiquidate,
			Amount:  seized,
			Block:   block,
		})
	}); err != nil {
		return nil, err
	}

	return &core.Liquidation{
		SeizedCollateral: seized,
		Paid:             paid,
		Bonus:            bonus,
	}, nil
}

func (s *vaultService) GetUserDeposit(ctx context.Context, address string) (int64, error) {
	account, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return 0, err
	}

	return account.Deposited, nil
}

func (s *vaultService) GetUserLoan(ctx context.Context, address string) (*core.Loan, error) {
	loan, err := s.loanStore.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if loan.ID == 0 {
		return nil, nil
	}

	return loan, nil
}

func (s *vaultService) GetRepaymentAmount(ctx context.Context, address string) (*core.Repayment, error) {
	loan, err := s.loanStore.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	if loan.ID == 0 {
		return nil, nil
	}

	block, err := s.blockService.CurrentBlock(ctx)
	if err != nil {
		return nil, err
	}

	return quote(loan, block), nil
}

func (s *vaultService) GetMaxBorrowAmount(ctx context.Context, address string) (int64, error) {
	account, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return 0, err
	}

	return bitflow.MaxBorrowable(account.Deposited), nil
}

func (s *vaultService) CalculateHealthFactor(ctx context.Context, address string, price int64) (int64, bool, error) {
	if price <= 0 {
		return 0, false, core.ErrInvalidPrice
	}

	loan, err := s.loanStore.Find(ctx, address)
	if err != nil {
		return 0, false, err
	}

	if loan.ID == 0 {
		return 0, false, nil
	}

	account, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return 0, false, err
	}

	hf, ok := bitflow.HealthFactor(account.Deposited, loan.Principal, price)
	return hf, ok, nil
}

func (s *vaultService) IsLiquidatable(ctx context.Context, address string, price int64) (bool, error) {
	hf, ok, err := s.CalculateHealthFactor(ctx, address, price)
	if err != nil {
		return false, err
	}

	return ok && bitflow.Liquidatable(hf), nil
}

func (s *vaultService) GetProtocolStats(ctx context.Context) (*core.Stat, error) {
	return s.statStore.Get(ctx)
}

func (s *vaultService) GetPositionSummary(ctx context.Context, address string, price int64) (*core.PositionSummary, error) {
	account, err := s.accountStore.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	loan, err := s.loanStore.Find(ctx, address)
	if err != nil {
		return nil, err
	}

	summary := &core.PositionSummary{
		Address:            address,
		DepositAmount:      account.Deposited,
		MaxBorrowAvailable: bitflow.MaxBorrowable(account.Deposited),
	}

	if loan.ID == 0 {
		return summary, nil
	}

	summary.HasLoan = true
	summary.LoanAmount = loan.Principal
	summary.LoanInterestRate = loan.InterestRate
	summary.LoanTermEnd = loan.TermEnd

	if available := summary.MaxBorrowAvailable - loan.Principal; available > 0 {
		summary.MaxBorrowAvailable = available
	} else {
		summary.MaxBorrowAvailable = 0
	}

	summary.CollateralUsagePercent = bitflow.CollateralUsage(loan.Principal, account.Deposited)

	if hf, ok := bitflow.HealthFactor(account.Deposited, loan.Principal, price); ok {
		summary.HealthFactor = hf
		summary.IsLiquidatable = bitflow.Liquidatable(hf)
	}

	return summary, nil
}

func quote(loan *core.Loan, block int64) *core.Repayment {
	interest := bitflow.InterestOwed(loan.Principal, loan.InterestRate, block-loan.StartBlock)

	return &core.Repayment{
		Principal: loan.Principal,
		Interest:  interest,
		Total:     loan.Principal + interest,
	}
}
