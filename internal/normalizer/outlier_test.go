package normalizer_test

import (
	"testing"

	"github.com/project-tktt/go-jobstats/internal/domain"
	"github.com/project-tktt/go-jobstats/internal/normalizer"
)

func jobWithMedian(id string, a domain.Amount) *domain.JobListing {
	return &domain.JobListing{ID: id, MinSalary: a, MaxSalary: a, MedianSalary: a}
}

func TestPooledMeanSkipsSentinels(t *testing.T) {
	jobs := []*domain.JobListing{
		jobWithMedian("a", domain.Number(80)),
		jobWithMedian("b", domain.Number(120)),
		jobWithMedian("c", domain.NoInfo()),
		jobWithMedian("d", domain.Missing()),
	}
	mean, ok := normalizer.PooledMean(jobs)
	if !ok || mean != 100 {
		t.Errorf("PooledMean = %v (%v), want 100", mean, ok)
	}

	if _, ok := normalizer.PooledMean(nil); ok {
		t.Error("PooledMean of empty batch reported ok")
	}
}

func TestIsOutlier(t *testing.T) {
	cases := []struct {
		median, mean float64
		want         bool
	}{
		{800, 100, true},  // above 7x
		{5, 100, true},    // below 0.1x
		{700, 100, false}, // exactly 7x stays
		{10, 100, false},  // exactly 0.1x stays
		{150, 100, false},
		{150, 0, false}, // no mean, no flagging
	}
	for _, c := range cases {
		if got := normalizer.IsOutlier(c.median, c.mean); got != c.want {
			t.Errorf("IsOutlier(%v, %v) = %v, want %v", c.median, c.mean, got, c.want)
		}
	}
}

func TestFlagOutliers(t *testing.T) {
	// The ten numeric medians sum to 1000, pooling to a mean of 100.
	// 800 crosses the 7x ceiling and 5 falls under the 0.1x floor; the
	// rest stay inside the band.
	jobs := []*domain.JobListing{
		jobWithMedian("high", domain.Number(800)),
		jobWithMedian("low", domain.Number(5)),
		jobWithMedian("c", domain.Number(20)),
		jobWithMedian("d", domain.Number(20)),
		jobWithMedian("e", domain.Number(20)),
		jobWithMedian("f", domain.Number(25)),
		jobWithMedian("g", domain.Number(25)),
		jobWithMedian("h", domain.Number(25)),
		jobWithMedian("i", domain.Number(30)),
		jobWithMedian("j", domain.Number(30)),
		jobWithMedian("negotiable", domain.NoInfo()),
	}
	mean, _ := normalizer.PooledMean(jobs)
	if mean != 100 {
		t.Fatalf("PooledMean = %v, want 100", mean)
	}

	flagged := normalizer.FlagOutliers(jobs)
	if flagged != 2 {
		t.Errorf("FlagOutliers = %d, want 2", flagged)
	}
	for _, j := range jobs[:2] {
		if j.MedianSalary.Kind != domain.AmountAbnormal {
			t.Errorf("job %s median = %v, want abnormal", j.ID, j.MedianSalary)
		}
		if j.MinSalary.Kind != domain.AmountAbnormal || j.MaxSalary.Kind != domain.AmountAbnormal {
			t.Errorf("job %s min/max not replaced alongside the median", j.ID)
		}
	}
	if jobs[2].MedianSalary.Kind != domain.AmountNumber {
		t.Errorf("in-band listing was flagged: %v", jobs[2].MedianSalary)
	}
	if jobs[10].MedianSalary.Kind != domain.AmountNoInfo {
		t.Errorf("negotiable listing was touched: %v", jobs[10].MedianSalary)
	}
}

func TestFlagOutliersAgainst(t *testing.T) {
	jobs := []*domain.JobListing{
		jobWithMedian("a", domain.Number(50)),
		jobWithMedian("b", domain.Number(50)),
	}
	// Against a reference mean of 1000 both medians fall under the floor.
	if flagged := normalizer.FlagOutliersAgainst(jobs, 1000); flagged != 2 {
		t.Errorf("FlagOutliersAgainst = %d, want 2", flagged)
	}
	for _, j := range jobs {
		if j.MedianSalary.Kind != domain.AmountAbnormal {
			t.Errorf("job %s median = %v, want abnormal", j.ID, j.MedianSalary)
		}
	}
}
