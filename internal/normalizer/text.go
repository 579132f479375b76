package normalizer

import (
	"regexp"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var (
	spaceRe  = regexp.MustCompile(`\s+`)
	numberRe = regexp.MustCompile(`\d+(?:[.,]\d+)*`)
)

// Normalize lowercases, strips Vietnamese diacritics and collapses
// whitespace. Idempotent: Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(s)
	s = stripDiacritics(s)
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stripDiacritics decomposes to NFD and drops combining marks. đ is a
// standalone letter, not a base+mark, so it is mapped explicitly.
func stripDiacritics(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch r {
		case 'đ':
			b.WriteRune('d')
		case 'Đ':
			b.WriteRune('D')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ExtractNumbers returns every decimal number in the text, treating a
// comma as a decimal separator ("12,5" -> 12.5).
func ExtractNumbers(s string) []float64 {
	matches := numberRe.FindAllString(s, -1)
	if len(matches) == 0 {
		return nil
	}
	nums := make([]float64, 0, len(matches))
	for _, m := range matches {
		m = strings.ReplaceAll(m, ",", ".")
		// Keep only the last dot as decimal point ("10.000.5" is noise
		// anyway; thousand-separator handling lives in the salary parser).
		if strings.Count(m, ".") > 1 {
			last := strings.LastIndex(m, ".")
			m = strings.ReplaceAll(m[:last], ".", "") + m[last:]
		}
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			nums = append(nums, v)
		}
	}
	return nums
}

// MeanOfNumbers averages every number found in the text, used as the
// record's rough magnitude by the currency conflict rules.
func MeanOfNumbers(s string) (float64, bool) {
	nums := ExtractNumbers(strings.ReplaceAll(s, ",", ""))
	if len(nums) == 0 {
		return 0, false
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	return sum / float64(len(nums)), true
}

// ContainsToken reports whether any token occurs in the normalized text.
// Tokens with embedded whitespace match as substrings; single words match
// on word boundaries.
func ContainsToken(text string, tokens []string) bool {
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(tok, " ") {
			if strings.Contains(text, tok) {
				return true
			}
			continue
		}
		if wordRe(tok).MatchString(text) {
			return true
		}
	}
	return false
}

// Parsing runs on multiple goroutines, so the compiled-pattern cache is
// guarded.
var wordReCache sync.Map // token -> *regexp.Regexp

func wordRe(tok string) *regexp.Regexp {
	if re, ok := wordReCache.Load(tok); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(tok) + `\b`)
	wordReCache.Store(tok, re)
	return re
}
