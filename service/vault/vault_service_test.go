package vault

import (
	"context"
	"math"
	"testing"

	"github.com/fox-one/pkg/store/db"
	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testBlockService struct {
	block int64
}

func (s *testBlockService) CurrentBlock(ctx context.Context) (int64, error) {
	return s.block, nil
}

type testAccountStore struct {
	accounts map[string]*core.Account
	nextID   uint64
}

func (s *testAccountStore) Find(ctx context.Context, address string) (*core.Account, error) {
	if a, ok := s.accounts[address]; ok {
		dup := *a
		return &dup, nil
	}

	return &core.Account{Address: address}, nil
}

func (s *testAccountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	if account.ID == 0 {
		s.nextID++
		account.ID = s.nextID
	}

	dup := *account
	s.accounts[account.Address] = &dup
	return nil
}

func (s *testAccountStore) All(ctx context.Context) ([]*core.Account, error) {
	var accounts []*core.Account
	for _, a := range s.accounts {
		dup := *a
		accounts = append(accounts, &dup)
	}

	return accounts, nil
}

type testLoanStore struct {
	loans  map[string]*core.Loan
	nextID uint64
}

func (s *testLoanStore) Find(ctx context.Context, borrower string) (*core.Loan, error) {
	if l, ok := s.loans[borrower]; ok {
		dup := *l
		return &dup, nil
	}

	return &core.Loan{Borrower: borrower}, nil
}

func (s *testLoanStore) Create(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	s.nextID++
	loan.ID = s.nextID
	dup := *loan
	s.loans[loan.Borrower] = &dup
	return nil
}

func (s *testLoanStore) Delete(ctx context.Context, tx *db.DB, loan *core.Loan) error {
	delete(s.loans, loan.Borrower)
	return nil
}

func (s *testLoanStore) All(ctx context.Context) ([]*core.Loan, error) {
	var loans []*core.Loan
	for _, l := range s.loans {
		dup := *l
		loans = append(loans, &dup)
	}

	return loans, nil
}

type testStatStore struct {
	stat core.Stat
}

func (s *testStatStore) Get(ctx context.Context) (*core.Stat, error) {
	dup := s.stat
	return &dup, nil
}

func (s *testStatStore) Save(ctx context.Context, tx *db.DB, stat *core.Stat) error {
	s.stat = *stat
	return nil
}

type testTransactionStore struct {
	transactions []*core.Transaction
}

func (s *testTransactionStore) Create(ctx context.Context, tx *db.DB, transaction *core.Transaction) error {
	dup := *transaction
	dup.ID = uint64(len(s.transactions) + 1)
	s.transactions = append(s.transactions, &dup)
	return nil
}

func (s *testTransactionStore) List(ctx context.Context, fromID uint64, limit int) ([]*core.Transaction, error) {
	var out []*core.Transaction
	for _, t := range s.transactions {
		if t.ID > fromID && len(out) < limit {
			out = append(out, t)
		}
	}

	return out, nil
}

func (s *testTransactionStore) ListByAddress(ctx context.Context, address string, fromID uint64, limit int) ([]*core.Transaction, error) {
	var out []*core.Transaction
	for _, t := range s.transactions {
		if t.Address == address && t.ID > fromID && len(out) < limit {
			out = append(out, t)
		}
	}

	return out, nil
}

func (s *testTransactionStore) Aggregate(ctx context.Context) ([]*core.ActionAggregate, error) {
	byAction := map[core.ActionType]*core.ActionAggregate{}
	for _, t := range s.transactions {
		agg, ok := byAction[t.Action]
		if !ok {
			agg = &core.ActionAggregate{Action: t.Action}
			byAction[t.Action] = agg
		}
		agg.Count++
		agg.Volume += t.Amount
	}

	var out []*core.ActionAggregate
	for _, agg := range byAction {
		out = append(out, agg)
	}

	return out, nil
}

type testVault struct {
	core.IVaultService

	accounts     *testAccountStore
	loans        *testLoanStore
	stats        *testStatStore
	transactions *testTransactionStore
	clock        *testBlockService
}

func newTestVault() *testVault {
	accounts := &testAccountStore{accounts: map[string]*core.Account{}}
	loans := &testLoanStore{loans: map[string]*core.Loan{}}
	stats := &testStatStore{stat: core.Stat{ID: 1}}
	transactions := &testTransactionStore{}
	clock := &testBlockService{block: 100}

	return &testVault{
		IVaultService: New(nil, accounts, loans, stats, transactions, clock),
		accounts:      accounts,
		loans:         loans,
		stats:         stats,
		transactions:  transactions,
		clock:         clock,
	}
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 1000))
	require.Nil(t, v.Deposit(ctx, "alice", 2000))
	require.Nil(t, v.Deposit(ctx, "bob", 500))

	deposit, err := v.GetUserDeposit(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, int64(3000), deposit)

	stat, err := v.GetProtocolStats(ctx)
	require.Nil(t, err)
	assert.Equal(t, int64(3500), stat.TotalDeposited)
}

func TestDepositInvalidAmount(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	assert.Equal(t, core.ErrInvalidAmount, v.Deposit(ctx, "alice", 0))
	assert.Equal(t, core.ErrInvalidAmount, v.Deposit(ctx, "alice", -5))

	deposit, err := v.GetUserDeposit(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, int64(0), deposit)

	stat, _ := v.GetProtocolStats(ctx)
	assert.Equal(t, int64(0), stat.TotalDeposited)
	assert.Empty(t, v.transactions.transactions)
}

func TestDepositOverflow(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", math.MaxInt64))

	// a further deposit would push the balance past int64
	assert.Equal(t, core.ErrInvalidAmount, v.Deposit(ctx, "alice", 1))
	assert.Equal(t, core.ErrInvalidAmount, v.Deposit(ctx, "bob", 1000))

	deposit, _ := v.GetUserDeposit(ctx, "alice")
	assert.Equal(t, int64(math.MaxInt64), deposit)

	stat, _ := v.GetProtocolStats(ctx)
	assert.Equal(t, int64(math.MaxInt64), stat.TotalDeposited)
	assert.Equal(t, 1, len(v.transactions.transactions))
}

func TestWithdraw(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 1000))
	require.Nil(t, v.Withdraw(ctx, "alice", 400))

	deposit, _ := v.GetUserDeposit(ctx, "alice")
	assert.Equal(t, int64(600), deposit)

	stat, _ := v.GetProtocolStats(ctx)
	assert.Equal(t, int64(600), stat.TotalDeposited)

	assert.Equal(t, core.ErrInsufficientBalance, v.Withdraw(ctx, "alice", 601))
	assert.Equal(t, core.ErrInvalidAmount, v.Withdraw(ctx, "alice", 0))
}

func TestWithdrawCollateralLocked(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 2000))
	require.Nil(t, v.Borrow(ctx, "alice", 1000, 10, 30))

	// 1500 stays locked for the loan, only 500 is free
	assert.Equal(t, core.ErrCollateralLocked, v.Withdraw(ctx, "alice", 501))
	require.Nil(t, v.Withdraw(ctx, "alice", 500))

	deposit, _ := v.GetUserDeposit(ctx, "alice")
	assert.Equal(t, int64(1500), deposit)

	// with the loan repaid the rest is free again
	_, err := v.Repay(ctx, "alice")
	require.Nil(t, err)
	require.Nil(t, v.Withdraw(ctx, "alice", 1500))
}

func TestBorrow(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()
	v.clock.block = 5000

	require.Nil(t, v.Deposit(ctx, "alice", 1500))
	require.Nil(t, v.Borrow(ctx, "alice", 1000, 5, 30))

	loan, err := v.GetUserLoan(ctx, "alice")
	require.Nil(t, err)
	require.NotNil(t, loan)
	assert.Equal(t, int64(1000), loan.Principal)
	assert.Equal(t, int64(5), loan.InterestRate)
	assert.Equal(t, int64(5000), loan.StartBlock)
	assert.Equal(t, int64(5000+30*144), loan.TermEnd)
}

func TestBorrowBoundary(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	// one subunit short of the required 150%
	require.Nil(t, v.Deposit(ctx, "bob", 1499))
	assert.Equal(t, core.ErrInsufficientCollateral, v.Borrow(ctx, "bob", 1000, 5, 30))

	require.Nil(t, v.Deposit(ctx, "bob", 1))
	require.Nil(t, v.Borrow(ctx, "bob", 1000, 5, 30))
}

func TestBorrowRejections(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 3000))

	assert.Equal(t, core.ErrInvalidAmount, v.Borrow(ctx, "alice", 0, 5, 30))
	assert.Equal(t, core.ErrInvalidAmount, v.Borrow(ctx, "alice", 1000, 5, 0))
	assert.Equal(t, core.ErrInvalidAmount, v.Borrow(ctx, "alice", 1000, -1, 30))

	require.Nil(t, v.Borrow(ctx, "alice", 1000, 5, 30))
	assert.Equal(t, core.ErrLoanAlreadyActive, v.Borrow(ctx, "alice", 1, 5, 30))
}

func TestBorrowHugePrincipal(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	// the collateral requirement for such a principal exceeds int64;
	// it must still be unsatisfiable, not wrap around
	err := v.Borrow(ctx, "mallory", 7_000_000_000_000_000_000, 5, 30)
	assert.Equal(t, core.ErrInsufficientCollateral, err)
	assert.Empty(t, v.loans.loans)

	require.Nil(t, v.Deposit(ctx, "mallory", math.MaxInt64))
	err = v.Borrow(ctx, "mallory", 7_000_000_000_000_000_000, 5, 30)
	assert.Equal(t, core.ErrInsufficientCollateral, err)
	assert.Empty(t, v.loans.loans)
}

func TestRepay(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()
	v.clock.block = 100

	require.Nil(t, v.Deposit(ctx, "alice", 2000))
	require.Nil(t, v.Borrow(ctx, "alice", 1000, 12, 90))

	// 30 days of blocks later
	v.clock.block += 4320

	quote, err := v.GetRepaymentAmount(ctx, "alice")
	require.Nil(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, int64(1000), quote.Principal)
	assert.Equal(t, int64(9), quote.Interest)
	assert.Equal(t, int64(1009), quote.Total)

	repayment, err := v.Repay(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, quote, repayment)

	loan, err := v.GetUserLoan(ctx, "alice")
	require.Nil(t, err)
	assert.Nil(t, loan)

	stat, _ := v.GetProtocolStats(ctx)
	assert.Equal(t, int64(1009), stat.TotalRepaid)
}

func TestRepayImmediately(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 2000))
	require.Nil(t, v.Borrow(ctx, "alice", 1000, 10, 30))

	repayment, err := v.Repay(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, int64(0), repayment.Interest)
	assert.Equal(t, int64(1000), repayment.Total)
}

func TestRepayNoActiveLoan(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	_, err := v.Repay(ctx, "alice")
	assert.Equal(t, core.ErrNoActiveLoan, err)
}

func TestHealthFactor(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	// positions seeded directly; the borrow path enforces 150% so an
	// at-threshold book can only come from prior market movement
	v.accounts.accounts["carol"] = &core.Account{ID: 1, Address: "carol", Deposited: 11_000_000}
	v.loans.loans["carol"] = &core.Loan{ID: 1, Borrower: "carol", Principal: 10_000_000, InterestRate: 10, StartBlock: 50, TermEnd: 50 + 30*144}

	hf, ok, err := v.CalculateHealthFactor(ctx, "carol", 1_000_000)
	require.Nil(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(110), hf)

	liquidatable, err := v.IsLiquidatable(ctx, "carol", 1_000_000)
	require.Nil(t, err)
	assert.False(t, liquidatable)

	// no position reads as empty, not as an error
	_, ok, err = v.CalculateHealthFactor(ctx, "nobody", 1_000_000)
	require.Nil(t, err)
	assert.False(t, ok)

	_, _, err = v.CalculateHealthFactor(ctx, "carol", 0)
	assert.Equal(t, core.ErrInvalidPrice, err)
}

func TestLiquidate(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()
	v.clock.block = 4420

	v.accounts.accounts["dave"] = &core.Account{ID: 1, Address: "dave", Deposited: 10_900_000}
	v.loans.loans["dave"] = &core.Loan{ID: 1, Borrower: "dave", Principal: 10_000_000, InterestRate: 10, StartBlock: 100, TermEnd: 100 + 30*144}
	v.stats.stat.TotalDeposited = 10_900_000

	liquidatable, err := v.IsLiquidatable(ctx, "dave", 1_000_000)
	require.Nil(t, err)
	require.True(t, liquidatable)

	result, err := v.Liquidate(ctx, "dave", 1_000_000, "liquidator")
	require.Nil(t, err)

	// debt: 10_000_000 principal + 10_000_000*10*4320/5_256_000 = 82_191 interest
	assert.Equal(t, int64(10_900_000), result.SeizedCollateral)
	assert.Equal(t, int64(10_082_191), result.Paid)
	// full 10% bonus exceeds the surplus, capped at seized - paid
	assert.Equal(t, int64(817_809), result.Bonus)

	deposit, _ := v.GetUserDeposit(ctx, "dave")
	assert.Equal(t, int64(0), deposit)

	loan, _ := v.GetUserLoan(ctx, "dave")
	assert.Nil(t, loan)

	stat, _ := v.GetProtocolStats(ctx)
	assert.Equal(t, int64(1), stat.TotalLiquidations)
	assert.Equal(t, int64(0), stat.TotalDeposited)
}

func TestLiquidateRejections(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	_, err := v.Liquidate(ctx, "nobody", 1_000_000, "liquidator")
	assert.Equal(t, core.ErrNoActiveLoan, err)

	v.accounts.accounts["erin"] = &core.Account{ID: 1, Address: "erin", Deposited: 11_100_000}
	v.loans.loans["erin"] = &core.Loan{ID: 1, Borrower: "erin", Principal: 10_000_000, InterestRate: 10, StartBlock: 100, TermEnd: 100 + 30*144}
	v.stats.stat.TotalDeposited = 11_100_000

	_, err = v.Liquidate(ctx, "erin", 0, "liquidator")
	assert.Equal(t, core.ErrInvalidPrice, err)

	_, err = v.Liquidate(ctx, "erin", 1_000_000, "liquidator")
	assert.Equal(t, core.ErrNotLiquidatable, err)

	// a rejected liquidation leaves every piece of state untouched
	deposit, _ := v.GetUserDeposit(ctx, "erin")
	assert.Equal(t, int64(11_100_000), deposit)

	loan, _ := v.GetUserLoan(ctx, "erin")
	require.NotNil(t, loan)

	stat, _ := v.GetProtocolStats(ctx)
	assert.Equal(t, int64(0), stat.TotalLiquidations)
	assert.Equal(t, int64(11_100_000), stat.TotalDeposited)
}

func TestGetMaxBorrowAmount(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 10_000_000))

	max, err := v.GetMaxBorrowAmount(ctx, "alice")
	require.Nil(t, err)
	assert.Equal(t, int64(6_666_666), max)

	max, err = v.GetMaxBorrowAmount(ctx, "nobody")
	require.Nil(t, err)
	assert.Equal(t, int64(0), max)
}

func TestGetRepaymentAmountNoLoan(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	quote, err := v.GetRepaymentAmount(ctx, "alice")
	require.Nil(t, err)
	assert.Nil(t, quote)
}

func TestGetPositionSummary(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 20_000_000))
	require.Nil(t, v.Borrow(ctx, "alice", 10_000_000, 10, 30))

	summary, err := v.GetPositionSummary(ctx, "alice", 1_000_000)
	require.Nil(t, err)
	assert.Equal(t, int64(20_000_000), summary.DepositAmount)
	assert.True(t, summary.HasLoan)
	assert.Equal(t, int64(10_000_000), summary.LoanAmount)
	assert.Equal(t, int64(10), summary.LoanInterestRate)
	assert.Equal(t, int64(200), summary.HealthFactor)
	assert.False(t, summary.IsLiquidatable)
	assert.Equal(t, int64(3_333_333), summary.MaxBorrowAvailable)
	assert.Equal(t, int64(50), summary.CollateralUsagePercent)

	summary, err = v.GetPositionSummary(ctx, "bob", 1_000_000)
	require.Nil(t, err)
	assert.False(t, summary.HasLoan)
	assert.Equal(t, int64(0), summary.DepositAmount)
}

func TestTransactionLog(t *testing.T) {
	ctx := context.Background()
	v := newTestVault()

	require.Nil(t, v.Deposit(ctx, "alice", 2000))
	require.Nil(t, v.Borrow(ctx, "alice", 1000, 10, 30))

	_, err := v.Repay(ctx, "alice")
	require.Nil(t, err)

	transactions, err := v.transactions.ListByAddress(ctx, "alice", 0, 10)
	require.Nil(t, err)
	require.Len(t, transactions, 3)
	assert.Equal(t, core.ActionTypeDeposit, transactions[0].Action)
	assert.Equal(t, core.ActionTypeBorrow, transactions[1].Action)
	assert.Equal(t, core.ActionTypeRepay, transactions[2].Action)

	for _, transaction := range transactions {
		assert.NotEmpty(t, transaction.TraceID)
	}

	aggregates, err := v.transactions.Aggregate(ctx)
	require.Nil(t, err)
	assert.Len(t, aggregates, 3)
}
