package normalizer

import (
	"regexp"
	"strings"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// Work-schedule defaults used when a listing gives no explicit hours.
// Six-day weeks are still the norm on the boards we crawl.
const (
	DefaultHoursPerDay = 8.0
	DefaultDaysPerWeek = 6
)

var (
	tyScaleRe    = regexp.MustCompile(`\d\s*t[yi]\b`)
	trieuScaleRe = regexp.MustCompile(`\d\s*(trieu|tr)\b`)
	dongMarkerRe = regexp.MustCompile(`\bvnd\b|\bvd\b|\bdong\b|\bd\b`)
)

// ScaleFromText resolves the magnitude multiplier implied by the raw
// salary text. Priority runs tỷ over triệu over a đ/₫/vnđ marker: a
// listing saying "1,2 tỷ/năm" must not be re-scaled by a stray "tr"
// elsewhere in the string. marked is false when no VND unit marker of
// any kind is present; the figure's unit is then unknown and the
// caller must keep it untouched instead of period-scaling it.
func ScaleFromText(rawSalary string) (scale float64, marked bool) {
	norm := Normalize(rawSalary)
	switch {
	case tyScaleRe.MatchString(norm) || strings.Contains(norm, "ty dong"):
		return 1e9, true
	case trieuScaleRe.MatchString(norm):
		return 1e6, true
	case dongMarkerRe.MatchString(norm) || strings.Contains(rawSalary, "₫"):
		// A đ/₫ suffix means the figure is already in full đồng.
		return 1, true
	default:
		return 1, false
	}
}

// ConvertOptions carries the schedule facts needed to project hourly and
// weekly rates onto a calendar month.
type ConvertOptions struct {
	HoursPerDay float64 // 0 means unknown, defaults apply
	DaysPerWeek int     // 0 means unknown, defaults apply
}

func (o ConvertOptions) hoursPerDay() float64 {
	if o.HoursPerDay > 0 {
		return o.HoursPerDay
	}
	return DefaultHoursPerDay
}

func (o ConvertOptions) daysPerWeek() float64 {
	if o.DaysPerWeek > 0 {
		return float64(o.DaysPerWeek)
	}
	return DefaultDaysPerWeek
}

// ToMonthly converts a value expressed per the given period into a
// per-month figure.
func ToMonthly(v float64, period domain.Period, opts ConvertOptions) float64 {
	switch period {
	case domain.PeriodYear:
		return v / 12
	case domain.PeriodWeek:
		return v * 4
	case domain.PeriodHour:
		return v * opts.hoursPerDay() * opts.daysPerWeek() * 4
	default:
		return v
	}
}

// ConvertAmount rewrites one salary figure into VND per month. Missing
// and sentinel amounts pass through untouched.
//
// A VND figure with no unit marker in the raw text keeps its value
// unchanged, period conversion included: the unit is unknown, so the
// conservative move is a no-op. A record with no resolved currency is
// unconvertible and also stays as parsed. rate is the VND price of one
// unit of a foreign currency; rate <= 0 means no quote was available
// and the amount degrades to missing.
func ConvertAmount(a domain.Amount, scale float64, marked bool, period domain.Period, cur domain.Currency, rate float64, opts ConvertOptions) domain.Amount {
	if a.Kind != domain.AmountNumber {
		return a
	}
	switch {
	case cur == domain.CurrencyNoInfo || cur == "":
		return a
	case cur == domain.CurrencyVND:
		if !marked {
			return a
		}
		return domain.Number(ToMonthly(a.Value*scale, period, opts))
	default:
		if rate <= 0 {
			return domain.Missing()
		}
		return domain.Number(ToMonthly(a.Value*rate, period, opts))
	}
}

// ConvertListing normalizes all three salary figures of a listing to VND
// per month in place. The rate argument follows the ConvertAmount
// contract and is ignored for VND records.
func ConvertListing(job *domain.JobListing, rate float64) {
	scale, marked := ScaleFromText(job.RawSalaryText)
	opts := ConvertOptions{HoursPerDay: job.HoursPerDay, DaysPerWeek: job.WorkdaysPerWeek}
	job.MinSalary = ConvertAmount(job.MinSalary, scale, marked, job.PayPeriod, job.Currency, rate, opts)
	job.MaxSalary = ConvertAmount(job.MaxSalary, scale, marked, job.PayPeriod, job.Currency, rate, opts)
	job.MedianSalary = ConvertAmount(job.MedianSalary, scale, marked, job.PayPeriod, job.Currency, rate, opts)
	// Once any figure survived conversion the record is denominated in VND.
	if job.Currency != domain.CurrencyNoInfo && job.Currency != "" &&
		(job.MinSalary.Kind == domain.AmountNumber || job.MaxSalary.Kind == domain.AmountNumber || job.MedianSalary.Kind == domain.AmountNumber) {
		job.Currency = domain.CurrencyVND
	}
}
