package bitflow

const (
	// MinCollateralRatio percent of borrowed value that must be deposited at borrow time
	MinCollateralRatio int64 = 150
	// LiquidationThreshold health factor percent below which a position may be seized
	LiquidationThreshold int64 = 110
	// LiquidationBonus percent of the paid debt rewarded to the liquidator
	LiquidationBonus int64 = 10

	// SecondsPerBlock seconds per block
	SecondsPerBlock int64 = 600
	// BlocksPerDay blocks per day at a ~10 minute cadence
	BlocksPerDay int64 = 144
	// DaysPerYear days per year
	DaysPerYear int64 = 365
	// BlocksPerYear blocks per year
	BlocksPerYear = BlocksPerDay * DaysPerYear

	// SubunitsPerUnit subunits per display unit
	SubunitsPerUnit int64 = 1_000_000
	// SubunitDecimals decimal places of one display unit
	SubunitDecimals int32 = 6
)
