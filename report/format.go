// Package report renders solver results for people and spreadsheets.
package report

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// DefaultPrecision is the number of decimal places used when none is given.
const DefaultPrecision int32 = 4

// Number formats v rounded to places decimals, without trailing zeros.
func Number(v float64, places int32) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return decimal.NewFromFloat(v).Round(places).String()
}
