package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// SalaryParse is the result of parsing one free-form salary string.
// Values are in the units the text used; million scaling and currency
// conversion happen later in the unit converter.
type SalaryParse struct {
	Min, Max, Median domain.Amount
	Period           domain.Period
	Negotiable       bool
}

// negotiableTokens covers the diacritic typing variants actually seen in
// listings, plus English.
var negotiableTokens = []string{
	"thuong luong", "thoa thuan", "deal", "negotiable",
	"canh tranh", "hap dan", "competitive",
}

var (
	// Two numbers separated by a dash variant, each side optionally
	// carrying a million marker.
	salaryRangeRe = regexp.MustCompile(`(\d[\d.,]*)\s*(trieu|tr)?\s*[-–—]\s*(\d[\d.,]*)\s*(trieu|tr)?`)
	salaryMaxRe   = regexp.MustCompile(`\b(?:toi da|toi|den)\b.*?(\d[\d.,]*)\s*(trieu|tr)?`)
	salaryMinRe   = regexp.MustCompile(`\btu\b.*?(\d[\d.,]*)\s*(trieu|tr)?`)
	salarySingle  = regexp.MustCompile(`(\d[\d.,]*)\s*(trieu|tr)?`)

	thousandSepRe = regexp.MustCompile(`(\d)[,.](\d{3})(\D|$)`)
)

// ParseSalary extracts (min, max, median, period) from a raw salary string.
// Rules fire in priority order; the first match wins. The parser is total:
// any input yields a result, never an error.
func ParseSalary(raw string) SalaryParse {
	text := Normalize(raw)
	if text == "" {
		return SalaryParse{}
	}

	if ContainsToken(text, negotiableTokens) {
		return SalaryParse{
			Min: domain.NoInfo(), Max: domain.NoInfo(), Median: domain.NoInfo(),
			Negotiable: true,
		}
	}

	// Period detection is independent of whether numbers are found.
	period := DetectPeriod(text)

	if m := salaryRangeRe.FindStringSubmatch(text); m != nil {
		million := m[2] != "" || m[4] != ""
		a, aok := parseNumber(m[1], million)
		b, bok := parseNumber(m[3], million)
		if aok && bok {
			if a > b {
				a, b = b, a
			}
			return SalaryParse{
				Min:    domain.Number(a),
				Max:    domain.Number(b),
				Median: domain.Number((a + b) / 2),
				Period: period,
			}
		}
	}

	if m := salaryMaxRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseNumber(m[1], m[2] != ""); ok {
			return SalaryParse{
				Max: domain.Number(v), Median: domain.Number(v), Period: period,
			}
		}
	}

	if m := salaryMinRe.FindStringSubmatch(text); m != nil {
		if v, ok := parseNumber(m[1], m[2] != ""); ok {
			return SalaryParse{
				Min: domain.Number(v), Median: domain.Number(v), Period: period,
			}
		}
	}

	if m := salarySingle.FindStringSubmatch(text); m != nil {
		if v, ok := parseNumber(m[1], m[2] != ""); ok {
			return SalaryParse{
				Min: domain.Number(v), Max: domain.Number(v), Median: domain.Number(v),
				Period: period,
			}
		}
	}

	return SalaryParse{Period: period}
}

// parseNumber converts a raw digit group. With a million marker the comma
// is a Vietnamese decimal point ("12,5" -> 12.5); without one, separators
// between three-digit groups are thousand marks ("1.500" -> 1500).
func parseNumber(raw string, million bool) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if million {
		raw = strings.ReplaceAll(raw, " ", "")
		raw = strings.ReplaceAll(raw, ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false
		}
		return v, true
	}
	s := stripThousandSeps(raw)
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v, true
	}
	// Very noisy input: keep the digits and try once more.
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(digits, 64)
	return v, err == nil
}

// stripThousandSeps removes "," or "." acting as thousand separators while
// keeping a genuine decimal point ("500.75" stays 500.75).
func stripThousandSeps(s string) string {
	for {
		replaced := thousandSepRe.ReplaceAllString(s, "$1$2$3")
		if replaced == s {
			return s
		}
		s = replaced
	}
}

var periodRules = []struct {
	re     *regexp.Regexp
	period domain.Period
}{
	{regexp.MustCompile(`thang|/thang|month|/month|per month|\bmo\b|\bmth\b`), domain.PeriodMonth},
	{regexp.MustCompile(`\bnam\b|/nam|year|/year|per year|\byr\b`), domain.PeriodYear},
	{regexp.MustCompile(`tuan|/tuan|week|/week|per week|\bwk\b`), domain.PeriodWeek},
	{regexp.MustCompile(`\bgio\b|/gio|hour|/hour|per hour|\bhr\b|\bh\b`), domain.PeriodHour},
}

// DetectPeriod finds the pay period keyword in normalized text; empty if
// none of the Vietnamese/English variants occur.
func DetectPeriod(text string) domain.Period {
	for _, r := range periodRules {
		if r.re.MatchString(text) {
			return r.period
		}
	}
	return ""
}
