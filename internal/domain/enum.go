package domain

// Currency is an ISO 4217 code, or the "no_info" sentinel for listings
// whose salary is negotiable, or empty when classification failed.
type Currency string

const (
	CurrencyVND Currency = "VND"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyCNY Currency = "CNY"
	CurrencyKRW Currency = "KRW"
	CurrencySGD Currency = "SGD"
	CurrencyTHB Currency = "THB"

	// CurrencyNoInfo marks negotiable listings where classification is
	// deliberately skipped.
	CurrencyNoInfo Currency = "no_info"
)

// Supported lists every code the rate client will attempt to convert.
var Supported = map[Currency]bool{
	CurrencyVND: true,
	CurrencyUSD: true,
	CurrencyEUR: true,
	CurrencyGBP: true,
	CurrencyJPY: true,
	CurrencyCNY: true,
	CurrencyKRW: true,
	CurrencySGD: true,
	CurrencyTHB: true,
}

// Period is the time unit the raw text expressed the salary in, before
// conversion to VND/month. Retained on the record for audit.
type Period string

const (
	PeriodYear  Period = "year"
	PeriodMonth Period = "month"
	PeriodWeek  Period = "week"
	PeriodHour  Period = "hour"
)
