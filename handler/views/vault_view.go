package views

import (
	"github.com/maydayroblox/bitflow-finance/core"
	"github.com/maydayroblox/bitflow-finance/internal/bitflow"
	"github.com/maydayroblox/bitflow-finance/pkg/number"
	"github.com/shopspring/decimal"
)

// Deposit account balance view
type Deposit struct {
	Address       string          `json:"address"`
	Amount        int64           `json:"amount"`
	AmountDisplay decimal.Decimal `json:"amount_display"`
}

// NewDeposit new deposit view
func NewDeposit(address string, amount int64) Deposit {
	return Deposit{
		Address:       address,
		Amount:        amount,
		AmountDisplay: number.FromSubunits(amount),
	}
}

// Loan loan view
type Loan struct {
	Borrower           string          `json:"borrower"`
	Principal          int64           `json:"principal"`
	PrincipalDisplay   decimal.Decimal `json:"principal_display"`
	InterestRate       int64           `json:"interest_rate"`
	StartBlock         int64           `json:"start_block"`
	TermEnd            int64           `json:"term_end"`
	DurationDays       int64           `json:"duration_days"`
	RequiredCollateral int64           `json:"required_collateral"`
}

// NewLoan new loan view
func NewLoan(loan *core.Loan) Loan {
	return Loan{
		Borrower:           loan.Borrower,
		Principal:          loan.Principal,
		PrincipalDisplay:   number.FromSubunits(loan.Principal),
		InterestRate:       loan.InterestRate,
		StartBlock:         loan.StartBlock,
		TermEnd:            loan.TermEnd,
		DurationDays:       (loan.TermEnd - loan.StartBlock) / bitflow.BlocksPerDay,
		RequiredCollateral: bitflow.RequiredCollateral(loan.Principal),
	}
}

// Repayment repayment quote view
type Repayment struct {
	Principal    int64           `json:"principal"`
	Interest     int64           `json:"interest"`
	Total        int64           `json:"total"`
	TotalDisplay decimal.Decimal `json:"total_display"`
}

// NewRepayment new repayment view
func NewRepayment(r *core.Repayment) Repayment {
	return Repayment{
		Principal:    r.Principal,
		Interest:     r.Interest,
		Total:        r.Total,
		TotalDisplay: number.FromSubunits(r.Total),
	}
}

// HealthFactor health factor view
type HealthFactor struct {
	Address        string `json:"address"`
	Value          int64  `json:"value"`
	Status         string `json:"status"`
	IsLiquidatable bool   `json:"is_liquidatable"`
}

// NewHealthFactor new health factor view
func NewHealthFactor(address string, value int64) HealthFactor {
	return HealthFactor{
		Address:        address,
		Value:          value,
		Status:         HealthStatus(value),
		IsLiquidatable: bitflow.Liquidatable(value),
	}
}

// HealthStatus classification used by display layers
func HealthStatus(healthFactor int64) string {
	switch {
	case healthFactor >= bitflow.MinCollateralRatio:
		return "healthy"
	case healthFactor >= bitflow.LiquidationThreshold:
		return "warning"
	default:
		return "danger"
	}
}

// Liquidation liquidation result view
type Liquidation struct {
	Borrower         string `json:"borrower"`
	SeizedCollateral int64  `json:"seized_collateral"`
	Paid             int64  `json:"paid"`
	Bonus            int64  `json:"bonus"`
}

// NewLiquidation new liquidation view
func NewLiquidation(borrower string, l *core.Liquidation) Liquidation {
	return Liquidation{
		Borrower:         borrower,
		SeizedCollateral: l.SeizedCollateral,
		Paid:             l.Paid,
		Bonus:            l.Bonus,
	}
}
