// Package rewards holds the point arithmetic shared by the services and the
// storage layer: the award size, the points-to-cash conversion rate, and the
// balance formula. Keeping these in one place means the withdrawal balance
// check, the journalist-facing balance, and the dashboard rankings can never
// use divergent computations.
package rewards

import "github.com/shopspring/decimal"

// PointsPerApprovedLink is the award for the first approved link per
// (journalist, press release) pair.
const PointsPerApprovedLink int64 = 5

// 5 points convert to 100 KSH.
var (
	conversionPoints = decimal.NewFromInt(5)
	conversionCash   = decimal.NewFromInt(100)
)

// CashAmount converts a point count to its KSH equivalent: (points / 5) * 100.
// The division is done in decimal arithmetic so point counts that are not a
// multiple of five do not silently truncate.
func CashAmount(points int64) decimal.Decimal {
	return decimal.NewFromInt(points).Div(conversionPoints).Mul(conversionCash)
}

// CurrentPoints derives a balance from the two per-type ledger sums:
// sum(earned) - abs(sum(withdrawal)). Withdrawal entries are stored with
// negative points, so this is algebraically equal to summing all entries;
// the equivalence is asserted in tests.
func CurrentPoints(earned, withdrawn int64) int64 {
	if withdrawn < 0 {
		withdrawn = -withdrawn
	}
	return earned - withdrawn
}
