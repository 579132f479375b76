package normalizer

import (
	"regexp"
	"strconv"
	"strings"
)

var intRe = regexp.MustCompile(`\d+`)

// ExperienceTags maps a required-experience string to candidate level
// tags. A=none, B=0-1y, C=1-2y, D=2-3y, E=3-5y, F=5+y. A candidate with
// more experience can apply to a lower-requirement job, so each
// requirement keeps every higher tag.
func ExperienceTags(exp string) []string {
	norm := Normalize(exp)
	if norm == "" || strings.Contains(norm, "khong yeu cau") || strings.Contains(norm, "chua co kinh nghiem") {
		return []string{"A", "B", "C", "D", "E", "F"}
	}
	if strings.Contains(norm, "duoi 1 nam") {
		return []string{"B", "C", "D", "E", "F"}
	}
	if strings.Contains(norm, "hon 5 nam") || strings.Contains(norm, "tren 5 nam") {
		return []string{"F"}
	}

	years := 0
	if m := intRe.FindString(norm); m != "" {
		years, _ = strconv.Atoi(m)
	}
	switch {
	case years <= 1:
		return []string{"C", "D", "E", "F"}
	case years <= 2:
		return []string{"D", "E", "F"}
	case years <= 5:
		return []string{"E", "F"}
	default:
		return []string{"F"}
	}
}

// MinExperienceYears extracts the minimum years figure from a
// required-experience string. Returns 0 when none is stated.
func MinExperienceYears(exp string) int {
	norm := Normalize(exp)
	if norm == "" || strings.Contains(norm, "khong yeu cau") || strings.Contains(norm, "chua co kinh nghiem") || strings.Contains(norm, "duoi 1 nam") {
		return 0
	}
	if m := intRe.FindString(norm); m != "" {
		n, _ := strconv.Atoi(m)
		return n
	}
	return 0
}

// ParseIntRange reads "22-30" or a single "25" style string into a
// min/max pair. Thousand separators inside numbers are stripped first,
// so "1.000 - 5.000 nhan vien" parses as 1000..5000. ok is false when
// the text holds no number at all.
func ParseIntRange(raw string) (min, max int, ok bool) {
	s := stripThousandSeps(Normalize(raw))
	nums := intRe.FindAllString(s, 2)
	switch len(nums) {
	case 0:
		return 0, 0, false
	case 1:
		n, _ := strconv.Atoi(nums[0])
		return n, n, true
	default:
		a, _ := strconv.Atoi(nums[0])
		b, _ := strconv.Atoi(nums[1])
		if a > b {
			a, b = b, a
		}
		return a, b, true
	}
}

// Language labels carry the display diacritics even though matching runs
// on stripped text.
var langPatterns = []struct {
	Label string
	Re    *regexp.Regexp
}{
	{"Tiếng Anh", regexp.MustCompile(`\benglish\b|\bielts\b|\btoeic\b|\btoefl\b|\banh van\b|\btieng anh\b`)},
	{"Tiếng Nhật", regexp.MustCompile(`\bjapanese\b|\bnihongo\b|\bjlpt\b|\bn[1-5]\b|\btieng nhat\b|\bnhat ngu\b`)},
	{"Tiếng Hàn", regexp.MustCompile(`\bkorean\b|\btopik\b|\bhangul\b|\btieng han\b|\bhan ngu\b`)},
	{"Tiếng Trung", regexp.MustCompile(`\bchinese\b|\bmandarin\b|\bhsk\b|\btieng trung\b|\bquan thoai\b`)},
	{"Tiếng Pháp", regexp.MustCompile(`\bfrench\b|\bdelf\b|\bdalf\b|\btieng phap\b`)},
	{"Tiếng Đức", regexp.MustCompile(`\bgerman\b|\bdeutsch\b|\btieng duc\b`)},
	{"Tiếng Tây Ban Nha", regexp.MustCompile(`\bspanish\b|\bespanol\b|\bdele\b|\btieng tay ban nha\b`)},
}

var vietnameseRe = regexp.MustCompile(`\bvietnamese\b|\btieng viet\b`)

// LanguageAny marks a job that accepts applications in Vietnamese, which
// effectively means no foreign-language requirement.
const LanguageAny = "Bất Kỳ"

// DetectLanguages scans description and requirement text for language
// requirements. A Vietnamese mention dominates and collapses the result
// to the unrestricted label. Output order follows the fixed priority of
// langPatterns. Nil when nothing is found.
func DetectLanguages(texts ...string) []string {
	norm := Normalize(strings.Join(texts, " | "))
	if norm == "" {
		return nil
	}
	if vietnameseRe.MatchString(norm) {
		return []string{LanguageAny}
	}
	var found []string
	for _, lp := range langPatterns {
		if lp.Re.MatchString(norm) {
			found = append(found, lp.Label)
		}
	}
	return found
}
