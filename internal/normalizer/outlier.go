package normalizer

import (
	"log"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// Outlier detection bounds, applied to each listing's median against the
// pooled mean of the batch. A salary seven times the mean or below a
// tenth of it is almost always a parsing artifact, not a real offer.
const (
	OutlierHighFactor = 7.0
	OutlierLowFactor  = 0.1
)

// PooledMean returns the mean of all numeric median salaries in the
// batch. ok is false when no listing carries a numeric median.
func PooledMean(jobs []*domain.JobListing) (float64, bool) {
	var sum float64
	var n int
	for _, j := range jobs {
		if j.MedianSalary.Kind == domain.AmountNumber {
			sum += j.MedianSalary.Value
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// IsOutlier reports whether a median salary falls outside the accepted
// band around the pooled mean.
func IsOutlier(median, mean float64) bool {
	if mean <= 0 {
		return false
	}
	return median > mean*OutlierHighFactor || median < mean*OutlierLowFactor
}

// FlagOutliers stamps the abnormal sentinel on every listing whose
// median salary is implausible relative to the batch. All three figures
// are replaced at once so downstream consumers never see a half-flagged
// record. Returns the number of listings flagged.
func FlagOutliers(jobs []*domain.JobListing) int {
	mean, ok := PooledMean(jobs)
	if !ok {
		return 0
	}
	return FlagOutliersAgainst(jobs, mean)
}

// FlagOutliersAgainst flags against a caller-supplied mean instead of
// the batch's own pooled mean, for callers comparing a small batch to a
// larger reference population.
func FlagOutliersAgainst(jobs []*domain.JobListing, mean float64) int {
	flagged := 0
	for _, j := range jobs {
		if j.MedianSalary.Kind != domain.AmountNumber {
			continue
		}
		if IsOutlier(j.MedianSalary.Value, mean) {
			log.Printf("outlier salary flagged: job=%s median=%.0f mean=%.0f raw=%q", j.ID, j.MedianSalary.Value, mean, j.RawSalaryText)
			j.MarkAbnormal()
			flagged++
		}
	}
	return flagged
}
