package services

import (
	"math"
	"time"

	"finance-ledger/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// OutlierWindow is the trailing interval Rule 1 samples for the
	// standard deviation check.
	OutlierWindow = 90 * 24 * time.Hour

	// CategoryWindow is the trailing interval Rule 2 searches for a prior
	// transaction of the same category.
	CategoryWindow = 180 * 24 * time.Hour

	// BurstWindow is the trailing interval Rule 3 counts transactions in.
	BurstWindow = 5 * time.Minute

	outlierStdDevFactor = 3
	burstCountThreshold = 3
)

// The rule predicates below are pure functions over immutable history
// snapshots. Window filtering happens at the repository; the snapshots passed
// in already cover the half-open interval [t − window, t) for the candidate
// timestamp t, so the candidate itself is never part of its own sample.

// IsStatisticalOutlier reports whether amount exceeds three sample standard
// deviations of the window's amounts. A window with fewer than two points has
// a standard deviation of zero, so any positive amount is flagged.
func IsStatisticalOutlier(amount decimal.Decimal, window []models.Transaction) bool {
	stddev := SampleStdDev(amounts(window))
	return amount.GreaterThan(stddev.Mul(decimal.NewFromInt(outlierStdDevFactor)))
}

// IsNovelCategory reports whether the same-category window is empty, meaning
// the account has not used this category within the lookback interval.
func IsNovelCategory(sameCategoryWindow []models.Transaction) bool {
	return len(sameCategoryWindow) == 0
}

// IsBurst reports whether the burst window holds more than three transactions
// whose combined amount exceeds the account's all-time mean transaction
// amount. The mean is zero for an account with no history.
func IsBurst(window []models.Transaction, allTimeMean decimal.Decimal) bool {
	if len(window) <= burstCountThreshold {
		return false
	}
	return sumAmounts(window).GreaterThan(allTimeMean)
}

// SampleStdDev computes the sample standard deviation (n−1 divisor) of the
// given amounts. Fewer than two samples yields zero by definition.
func SampleStdDev(values []decimal.Decimal) decimal.Decimal {
	n := len(values)
	if n < 2 {
		return decimal.Zero
	}

	mean := 0.0
	for _, v := range values {
		mean += v.InexactFloat64()
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		d := v.InexactFloat64() - mean
		variance += d * d
	}
	variance /= float64(n - 1)

	return decimal.NewFromFloat(math.Sqrt(variance))
}

// MeanAmount computes the arithmetic mean of the transactions' amounts,
// zero when the slice is empty.
func MeanAmount(transactions []models.Transaction) decimal.Decimal {
	if len(transactions) == 0 {
		return decimal.Zero
	}
	return sumAmounts(transactions).Div(decimal.NewFromInt(int64(len(transactions))))
}

func sumAmounts(transactions []models.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, tx := range transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum
}

func amounts(transactions []models.Transaction) []decimal.Decimal {
	out := make([]decimal.Decimal, len(transactions))
	for i, tx := range transactions {
		out[i] = tx.Amount
	}
	return out
}
