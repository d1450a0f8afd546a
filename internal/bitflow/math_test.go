package bitflow

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequiredCollateral(t *testing.T) {
	cases := map[int64]int64{
		1000:       1500,
		2000:       3000,
		500:        750,
		1:          1,
		0:          0,
		10_000_000: 15_000_000,
	}

	for in, want := range cases {
		assert.Equal(t, want, RequiredCollateral(in))
	}

	// a requirement past the int64 range pins to MaxInt64 instead of
	// wrapping negative, so it can never be satisfied by a balance
	assert.Equal(t, int64(math.MaxInt64), RequiredCollateral(7_000_000_000_000_000_000))
	assert.Equal(t, int64(math.MaxInt64), RequiredCollateral(math.MaxInt64))
}

func TestCollateralCovers(t *testing.T) {
	assert.True(t, CollateralCovers(1500, 1000))
	assert.False(t, CollateralCovers(1499, 1000))
	assert.True(t, CollateralCovers(10_000_000, 6_666_666))
	// 6_666_667 * 150 / 100 truncates to exactly 10_000_000
	assert.True(t, CollateralCovers(10_000_000, 6_666_667))
	assert.False(t, CollateralCovers(10_000_000, 6_666_668))

	// requirements beyond int64 are never covered, not even by the
	// largest possible balance
	assert.False(t, CollateralCovers(math.MaxInt64, 7_000_000_000_000_000_000))
	assert.False(t, CollateralCovers(math.MaxInt64, math.MaxInt64))
}

func TestMaxBorrowable(t *testing.T) {
	assert.Equal(t, int64(6_666_666), MaxBorrowable(10_000_000))
	assert.Equal(t, int64(1000), MaxBorrowable(1500))
	assert.Equal(t, int64(0), MaxBorrowable(1))

	// rounding down keeps the pair conservative
	for _, d := range []int64{1, 2, 149, 1500, 999_999, 10_000_000} {
		assert.True(t, RequiredCollateral(MaxBorrowable(d)) <= d)
	}
}

func TestInterestOwed(t *testing.T) {
	// 1000 * 12 * 4320 / (100 * 52560) = 9.86 => 9
	assert.Equal(t, int64(9), InterestOwed(1000, 12, 4320))
	assert.Equal(t, int64(0), InterestOwed(1000, 10, 0))
	assert.Equal(t, int64(0), InterestOwed(1000, 10, -5))
	// 1000 * 10 * 1001 / 5256000 = 1.90 => 1
	assert.Equal(t, int64(1), InterestOwed(1000, 10, 1001))
	// products beyond int64 stay exact
	assert.Equal(t, int64(190_258_751), InterestOwed(1_000_000_000_000, 100, 100_000))
	// a quotient past the int64 range pins to MaxInt64, never negative
	assert.Equal(t, int64(math.MaxInt64), InterestOwed(9_000_000_000_000_000_000, 100, 600_000_000))
}

func TestHealthFactor(t *testing.T) {
	hf, ok := HealthFactor(11_000_000, 10_000_000, 1_000_000)
	assert.True(t, ok)
	assert.Equal(t, int64(110), hf)

	hf, ok = HealthFactor(10_900_000, 10_000_000, 1_000_000)
	assert.True(t, ok)
	assert.Equal(t, int64(109), hf)

	// the ratio is price invariant
	hf, ok = HealthFactor(11_100_000, 10_000_000, 2_345_678)
	assert.True(t, ok)
	assert.Equal(t, int64(111), hf)

	_, ok = HealthFactor(11_000_000, 0, 1_000_000)
	assert.False(t, ok)
	_, ok = HealthFactor(11_000_000, 10_000_000, 0)
	assert.False(t, ok)

	// an enormous ratio pins to MaxInt64; it must never wrap negative
	// and read as liquidatable
	hf, ok = HealthFactor(9_000_000_000_000_000_000, 1, 1_000_000)
	assert.True(t, ok)
	assert.Equal(t, int64(math.MaxInt64), hf)
	assert.False(t, Liquidatable(hf))
}

func TestCollateralUsage(t *testing.T) {
	assert.Equal(t, int64(50), CollateralUsage(10_000_000, 20_000_000))
	assert.Equal(t, int64(33), CollateralUsage(1, 3))
	assert.Equal(t, int64(100), CollateralUsage(1500, 1500))
	assert.Equal(t, int64(0), CollateralUsage(0, 20_000_000))
	assert.Equal(t, int64(0), CollateralUsage(10_000_000, 0))
	assert.Equal(t, int64(math.MaxInt64), CollateralUsage(9_000_000_000_000_000_000, 1))
}

func TestLiquidatable(t *testing.T) {
	assert.True(t, Liquidatable(109))
	assert.False(t, Liquidatable(110))
	assert.False(t, Liquidatable(111))
}

func TestLiquidationPayout(t *testing.T) {
	// ample surplus: full 10% bonus
	paid, bonus := LiquidationPayout(15_000_000, 10_000_000)
	assert.Equal(t, int64(10_000_000), paid)
	assert.Equal(t, int64(1_000_000), bonus)

	// thin surplus caps the bonus
	paid, bonus = LiquidationPayout(10_500_000, 10_000_000)
	assert.Equal(t, int64(10_000_000), paid)
	assert.Equal(t, int64(500_000), bonus)

	// shortfall: no bonus, debt unchanged
	paid, bonus = LiquidationPayout(9_000_000, 10_000_000)
	assert.Equal(t, int64(10_000_000), paid)
	assert.Equal(t, int64(0), bonus)
}

func TestTermEnd(t *testing.T) {
	assert.Equal(t, int64(4321), TermEnd(1, 30))
	assert.Equal(t, int64(100+144*365), TermEnd(100, 365))
}
