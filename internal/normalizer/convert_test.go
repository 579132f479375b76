package normalizer_test

import (
	"testing"

	"github.com/project-tktt/go-jobstats/internal/domain"
	"github.com/project-tktt/go-jobstats/internal/normalizer"
)

func TestScaleFromText(t *testing.T) {
	cases := []struct {
		raw    string
		want   float64
		marked bool
	}{
		{"10-15 triệu/tháng", 1e6, true},
		{"20tr", 1e6, true},
		{"1,2 tỷ/năm", 1e9, true},
		// tỷ outranks a stray tr in the same string.
		{"1 tỷ 200 tr", 1e9, true},
		{"12.000.000 đ/tháng", 1, true},
		{"25.000 ₫/giờ", 1, true},
		{"5.000.000 VNĐ", 1, true},
		// No VND unit marker at all: the unit is unknown.
		{"20k/giờ", 1, false},
		{"$2,000", 1, false},
		{"2.000 - 3.000", 1, false},
	}
	for _, c := range cases {
		got, marked := normalizer.ScaleFromText(c.raw)
		if got != c.want || marked != c.marked {
			t.Errorf("ScaleFromText(%q) = %v, %v, want %v, %v",
				c.raw, got, marked, c.want, c.marked)
		}
	}
}

func TestToMonthly(t *testing.T) {
	var opts normalizer.ConvertOptions
	cases := []struct {
		v      float64
		period domain.Period
		want   float64
	}{
		{240, domain.PeriodYear, 20},
		{5, domain.PeriodWeek, 20},
		// Default schedule: 8 hours, 6 days, 4 weeks.
		{1, domain.PeriodHour, 192},
		{20, domain.PeriodMonth, 20},
		{20, "", 20},
	}
	for _, c := range cases {
		if got := normalizer.ToMonthly(c.v, c.period, opts); got != c.want {
			t.Errorf("ToMonthly(%v, %q) = %v, want %v", c.v, c.period, got, c.want)
		}
	}
}

func TestToMonthlyExplicitSchedule(t *testing.T) {
	opts := normalizer.ConvertOptions{HoursPerDay: 7, DaysPerWeek: 5}
	if got := normalizer.ToMonthly(1, domain.PeriodHour, opts); got != 140 {
		t.Errorf("ToMonthly(1, hour) = %v, want 140", got)
	}
}

func TestConvertAmountIdentity(t *testing.T) {
	// VND per month with a đ marker must pass through unchanged.
	got := normalizer.ConvertAmount(domain.Number(12000000), 1, true, domain.PeriodMonth,
		domain.CurrencyVND, 0, normalizer.ConvertOptions{})
	if got.Kind != domain.AmountNumber || got.Value != 12000000 {
		t.Errorf("identity conversion = %v, want 12000000", got)
	}
}

// An unmarked VND figure stays untouched even when a pay period was
// detected: without a unit marker the magnitude is unknown, so scaling
// an hourly rate up to a month would just manufacture a wrong number.
func TestConvertAmountUnmarkedSkipsPeriodScaling(t *testing.T) {
	got := normalizer.ConvertAmount(domain.Number(20), 1, false, domain.PeriodHour,
		domain.CurrencyVND, 0, normalizer.ConvertOptions{})
	if got.Kind != domain.AmountNumber || got.Value != 20 {
		t.Errorf("unmarked hourly conversion = %v, want 20 unchanged", got)
	}
}

func TestConvertAmountUnknownCurrency(t *testing.T) {
	for _, cur := range []domain.Currency{"", domain.CurrencyNoInfo} {
		got := normalizer.ConvertAmount(domain.Number(2500), 1, false, domain.PeriodMonth,
			cur, 0, normalizer.ConvertOptions{})
		if got.Kind != domain.AmountNumber || got.Value != 2500 {
			t.Errorf("currency %q conversion = %v, want 2500 unchanged", cur, got)
		}
	}
}

func TestConvertAmountRate(t *testing.T) {
	got := normalizer.ConvertAmount(domain.Number(2000), 1, false, domain.PeriodMonth,
		domain.CurrencyUSD, 25000, normalizer.ConvertOptions{})
	if got.Value != 2000*25000 {
		t.Errorf("USD conversion = %v, want %v", got.Value, 2000.0*25000)
	}
}

func TestConvertAmountMissingRate(t *testing.T) {
	got := normalizer.ConvertAmount(domain.Number(2000), 1, false, domain.PeriodMonth,
		domain.CurrencyUSD, 0, normalizer.ConvertOptions{})
	if got.Kind != domain.AmountMissing {
		t.Errorf("conversion without a rate = %v, want missing", got)
	}
}

func TestConvertAmountSentinelsPassThrough(t *testing.T) {
	for _, a := range []domain.Amount{domain.NoInfo(), domain.Abnormal(), domain.Missing()} {
		got := normalizer.ConvertAmount(a, 1e6, true, domain.PeriodYear,
			domain.CurrencyUSD, 25000, normalizer.ConvertOptions{})
		if got != a {
			t.Errorf("sentinel %v changed to %v", a, got)
		}
	}
}

func TestConvertListing(t *testing.T) {
	job := &domain.JobListing{
		RawSalaryText: "10-15 triệu/tháng",
		Currency:      domain.CurrencyVND,
		PayPeriod:     domain.PeriodMonth,
		MinSalary:     domain.Number(10),
		MaxSalary:     domain.Number(15),
		MedianSalary:  domain.Number(12.5),
	}
	normalizer.ConvertListing(job, 0)
	if job.MinSalary.Value != 10e6 || job.MaxSalary.Value != 15e6 || job.MedianSalary.Value != 12.5e6 {
		t.Errorf("got %v..%v median %v, want 10e6..15e6 median 12.5e6",
			job.MinSalary, job.MaxSalary, job.MedianSalary)
	}
	if job.Currency != domain.CurrencyVND {
		t.Errorf("Currency = %s, want VND", job.Currency)
	}
}

// "20k/giờ" carries no tỷ/triệu/đ marker, so the hourly figure must come
// through the converter exactly as parsed.
func TestConvertListingUnmarkedHourly(t *testing.T) {
	job := &domain.JobListing{
		RawSalaryText: "20k/giờ",
		Currency:      domain.CurrencyVND,
		PayPeriod:     domain.PeriodHour,
		MinSalary:     domain.Number(20),
		MaxSalary:     domain.Number(20),
		MedianSalary:  domain.Number(20),
	}
	normalizer.ConvertListing(job, 0)
	if job.MedianSalary.Value != 20 {
		t.Errorf("MedianSalary = %v, want 20 unchanged", job.MedianSalary)
	}
	if job.MinSalary.Value != 20 || job.MaxSalary.Value != 20 {
		t.Errorf("bounds = %v..%v, want 20..20 unchanged", job.MinSalary, job.MaxSalary)
	}
}

func TestConvertListingForeign(t *testing.T) {
	job := &domain.JobListing{
		RawSalaryText: "$2,000/month",
		Currency:      domain.CurrencyUSD,
		PayPeriod:     domain.PeriodMonth,
		MinSalary:     domain.Number(2000),
		MaxSalary:     domain.Number(2000),
		MedianSalary:  domain.Number(2000),
	}
	normalizer.ConvertListing(job, 25000)
	if job.MedianSalary.Value != 50e6 {
		t.Errorf("MedianSalary = %v, want 5e7", job.MedianSalary)
	}
	if job.Currency != domain.CurrencyVND {
		t.Errorf("Currency = %s, want VND after conversion", job.Currency)
	}
}
