package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestToSubunits(t *testing.T) {
	data := map[string]int64{
		"1":          1000000,
		"0.5":        500000,
		"1.5":        1500000,
		"0.000001":   1,
		"0.0000019":  1,
		"10.999999":  10999999,
		"-2.5":       -2500000,
		"-0.0000019": -1,
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, ToSubunits(Decimal(k)), "should truncate toward zero")
		})
	}
}

func TestFromSubunits(t *testing.T) {
	data := map[int64]string{
		1000000:  "1",
		1500000:  "1.5",
		1:        "0.000001",
		6666666:  "6.666666",
		-2500000: "-2.5",
	}

	for k, v := range data {
		assert.Equal(t, v, FromSubunits(k).String())
	}
}

func TestRoundTrip(t *testing.T) {
	for _, v := range []int64{0, 1, 999999, 1000000, 6666666, 15000000} {
		assert.Equal(t, v, ToSubunits(FromSubunits(v)))
	}
}
