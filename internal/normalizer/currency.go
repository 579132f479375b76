package normalizer

import (
	"context"
	"regexp"
	"strings"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// CurrencyClassifier is the escalation hook for salary strings no
// deterministic rule can place. Implementations may call an external
// service; failures must come back as errors, never guesses.
type CurrencyClassifier interface {
	Classify(ctx context.Context, salaryText string) (domain.Currency, error)
}

// NullClassifier always declines. It is the default collaborator when no
// external classifier is configured.
type NullClassifier struct{}

func (NullClassifier) Classify(context.Context, string) (domain.Currency, error) {
	return "", nil
}

// currencyRule is one step of the ordered cascade. Rules are evaluated in
// slice order and the first hit wins, which keeps the priority between
// ambiguous symbols ("$", "¥") explicit and testable per rule.
type currencyRule struct {
	name  string
	match func(norm, raw string) bool
	code  func(norm string) domain.Currency
}

func anyOf(subs ...string) func(norm, raw string) bool {
	return func(norm, raw string) bool {
		for _, s := range subs {
			if strings.Contains(norm, s) || strings.Contains(raw, s) {
				return true
			}
		}
		return false
	}
}

func fixed(c domain.Currency) func(string) domain.Currency {
	return func(string) domain.Currency { return c }
}

var cnyMarkers = []string{"cny", "rmb", "yuan", "元", "人民币", "nhan dan te"}

var currencyRules = []currencyRule{
	// Unambiguous symbols and codes come first. A bare đ is NOT enough
	// for VND; that case falls through to the external classifier and
	// the conflict-fix pass.
	{"vnd-symbol", anyOf("₫", "vnđ", "vnd", "đồng"), fixed(domain.CurrencyVND)},
	{"eur", anyOf("€", " eur", "euro"), fixed(domain.CurrencyEUR)},
	{"gbp", anyOf("£", " gbp", "pound"), fixed(domain.CurrencyGBP)},
	{"krw", anyOf("₩", " krw", " won"), fixed(domain.CurrencyKRW)},
	{"thb", anyOf("฿", " thb", "baht"), fixed(domain.CurrencyTHB)},
	{"sgd", anyOf("s$", " sgd", "do sing"), fixed(domain.CurrencySGD)},
	// A plain dollar sign defaults to USD.
	{"usd", anyOf("$", " usd", "us$", "dollar", "do la"), fixed(domain.CurrencyUSD)},
	// ¥ is JPY unless Chinese-currency context co-occurs.
	{"yen", anyOf("¥", " yen", "jpy"), func(norm string) domain.Currency {
		for _, m := range cnyMarkers {
			if strings.Contains(norm, m) {
				return domain.CurrencyCNY
			}
		}
		return domain.CurrencyJPY
	}},
	{"cny", anyOf(cnyMarkers...), fixed(domain.CurrencyCNY)},
	// Vietnamese informal magnitude shorthand implies VND.
	{"vnd-hints", func(norm, raw string) bool {
		for _, h := range []string{" tr", "tr/", "tr-", "trieu", "k/", "k/thang", "k/gio"} {
			if strings.Contains(norm, h) {
				return true
			}
		}
		return false
	}, fixed(domain.CurrencyVND)},
}

// ClassifyCurrency runs the deterministic rule cascade over a raw salary
// string. ok is false when no rule matched; the caller should escalate to
// the classifier collaborator before recording the currency as unknown.
func ClassifyCurrency(raw string) (domain.Currency, bool) {
	norm := Normalize(raw)
	if norm == "" {
		return "", false
	}
	for _, r := range currencyRules {
		if r.match(norm, strings.ToLower(raw)) {
			return r.code(norm), true
		}
	}
	return "", false
}

var (
	trTokenRe = regexp.MustCompile(`\d\s*tr\b|\btr\b`)
	tyTokenRe = regexp.MustCompile(`\d\s*t[yi]\b|\bt[yi]\b`)
)

// FixCurrencyConflict applies the post-classification correction rules to
// one record. It returns the corrected code and, when a correction fired,
// an auditable reason string; the raw text is never modified.
//
// Rule 1: "$" together with a million marker means the dollar sign is a
// display artifact of "20-30tr$"-style listings; the figure is VND.
// Rule 2: a đ/₫ symbol with no $, no tr, no tỷ and a magnitude under
// 500000 more plausibly labels a per-hour USD rate.
func FixCurrencyConflict(rawSalary string, cur domain.Currency) (domain.Currency, string) {
	norm := Normalize(rawSalary)
	lower := strings.ToLower(rawSalary)

	hasDollar := strings.Contains(rawSalary, "$")
	hasTr := trTokenRe.MatchString(norm)
	hasDong := strings.Contains(lower, "đ") || strings.Contains(rawSalary, "₫")
	hasTy := tyTokenRe.MatchString(norm)

	if hasDollar && hasTr {
		if cur != domain.CurrencyVND {
			return domain.CurrencyVND, "dollar sign and 'tr' marker together: corrected to VND"
		}
		return cur, ""
	}

	if hasDong && !hasDollar && !hasTr && !hasTy {
		if mean, ok := MeanOfNumbers(rawSalary); ok && mean < 500000 {
			if cur != domain.CurrencyUSD {
				return domain.CurrencyUSD, "dong symbol with magnitude below 500000 and no VND scale marker: corrected to USD"
			}
		}
	}

	return cur, ""
}
