package bitflow

import (
	"math"
	"math/big"
)

var (
	bigHundred = big.NewInt(100)
	// interest denominator, 100 * BlocksPerYear
	interestBase = new(big.Int).Mul(bigHundred, big.NewInt(BlocksPerYear))
)

// saturate extracts v as int64, pinning values outside the int64 range
// to the nearest bound instead of letting them wrap.
func saturate(v *big.Int) int64 {
	if !v.IsInt64() {
		if v.Sign() > 0 {
			return math.MaxInt64
		}

		return math.MinInt64
	}

	return v.Int64()
}

// RequiredCollateral deposit needed to back a borrow of borrowAmount,
// required_collateral = borrow_amount * min_collateral_ratio / 100
// truncated toward zero. A requirement beyond the int64 range pins to
// MaxInt64, which no deposit balance can satisfy.
func RequiredCollateral(borrowAmount int64) int64 {
	v := new(big.Int).Mul(big.NewInt(borrowAmount), big.NewInt(MinCollateralRatio))
	return saturate(v.Quo(v, bigHundred))
}

// CollateralCovers reports whether deposit satisfies the collateral
// requirement for principal. The comparison happens in big.Int, so a
// requirement beyond the int64 range is simply never covered.
func CollateralCovers(deposit, principal int64) bool {
	v := new(big.Int).Mul(big.NewInt(principal), big.NewInt(MinCollateralRatio))
	v.Quo(v, bigHundred)
	return v.Cmp(big.NewInt(deposit)) <= 0
}

// MaxBorrowable largest principal a deposit can back,
// max_borrowable = deposit * 100 / min_collateral_ratio
// truncated toward zero so RequiredCollateral(MaxBorrowable(d)) <= d.
func MaxBorrowable(depositAmount int64) int64 {
	v := new(big.Int).Mul(big.NewInt(depositAmount), bigHundred)
	return v.Quo(v, big.NewInt(MinCollateralRatio)).Int64()
}

// InterestOwed interest accrued over elapsedBlocks,
// interest = principal * rate * elapsed / (100 * blocks_per_year)
// with intermediate products kept in big.Int. Negative elapsed counts
// as zero.
func InterestOwed(principal, ratePercent, elapsedBlocks int64) int64 {
	if elapsedBlocks < 0 {
		elapsedBlocks = 0
	}

	v := new(big.Int).Mul(big.NewInt(principal), big.NewInt(ratePercent))
	v.Mul(v, big.NewInt(elapsedBlocks))
	return saturate(v.Quo(v, interestBase))
}

// HealthFactor collateral value over principal value as a percent.
// Both sides are priced in USD subunits; accrued interest is excluded
// from the debt side so only principal arms the liquidation trigger.
// ok is false when there is no debt to measure against.
func HealthFactor(collateral, principal, price int64) (int64, bool) {
	if principal <= 0 || price <= 0 {
		return 0, false
	}

	collateralValue := new(big.Int).Mul(big.NewInt(collateral), big.NewInt(price))
	debtValue := new(big.Int).Mul(big.NewInt(principal), big.NewInt(price))

	collateralValue.Mul(collateralValue, bigHundred)
	return saturate(collateralValue.Quo(collateralValue, debtValue)), true
}

// CollateralUsage borrowed principal as a percent of the deposit,
// truncated toward zero.
func CollateralUsage(principal, deposited int64) int64 {
	if principal <= 0 || deposited <= 0 {
		return 0
	}

	v := new(big.Int).Mul(big.NewInt(principal), bigHundred)
	return saturate(v.Quo(v, big.NewInt(deposited)))
}

// Liquidatable a position exactly at the threshold is still repayable.
func Liquidatable(healthFactor int64) bool {
	return healthFactor < LiquidationThreshold
}

// LiquidationPayout splits seized collateral between debt payoff and
// the liquidator bonus. The bonus is LiquidationBonus percent of the
// paid debt, capped at the surplus the seizure actually produced; a
// seizure short of the debt yields no bonus and the gap is absorbed by
// the protocol.
func LiquidationPayout(seized, debt int64) (paid, bonus int64) {
	paid = debt

	surplus := seized - debt
	if surplus <= 0 {
		return paid, 0
	}

	b := new(big.Int).Mul(big.NewInt(debt), big.NewInt(LiquidationBonus))
	bonus = b.Quo(b, bigHundred).Int64()
	if bonus > surplus {
		bonus = surplus
	}

	return paid, bonus
}

// TermEnd block height at which a loan of termDays expires.
func TermEnd(startBlock, termDays int64) int64 {
	return startBlock + termDays*BlocksPerDay
}
