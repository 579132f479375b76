package normalizer_test

import (
	"testing"

	"github.com/project-tktt/go-jobstats/internal/domain"
	"github.com/project-tktt/go-jobstats/internal/normalizer"
)

func TestClassifyCurrency(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.Currency
	}{
		{"12.000.000 ₫/tháng", domain.CurrencyVND},
		{"15 triệu VNĐ", domain.CurrencyVND},
		{"20.000.000 đồng", domain.CurrencyVND},
		{"2.000 €/month", domain.CurrencyEUR},
		{"£3,000 per month", domain.CurrencyGBP},
		{"3.000.000 ₩", domain.CurrencyKRW},
		{"50.000 ฿/tháng", domain.CurrencyTHB},
		{"S$4,500", domain.CurrencySGD},
		{"$1,500 - $2,000", domain.CurrencyUSD},
		{"2,500 USD", domain.CurrencyUSD},
		{"¥350,000", domain.CurrencyJPY},
		{"¥20,000 RMB", domain.CurrencyCNY},
		{"30.000 nhân dân tệ", domain.CurrencyCNY},
		// Informal magnitude shorthand implies VND.
		{"15-20tr/tháng", domain.CurrencyVND},
		{"Lương 10 triệu", domain.CurrencyVND},
	}
	for _, c := range cases {
		got, ok := normalizer.ClassifyCurrency(c.raw)
		if !ok {
			t.Errorf("ClassifyCurrency(%q): no rule matched, want %s", c.raw, c.want)
			continue
		}
		if got != c.want {
			t.Errorf("ClassifyCurrency(%q) = %s, want %s", c.raw, got, c.want)
		}
	}
}

func TestClassifyCurrencyUnmatched(t *testing.T) {
	for _, raw := range []string{"", "Thương lượng", "400đ/giờ"} {
		if got, ok := normalizer.ClassifyCurrency(raw); ok {
			t.Errorf("ClassifyCurrency(%q) = %s, want no match", raw, got)
		}
	}
}

func TestFixCurrencyConflict(t *testing.T) {
	cases := []struct {
		raw        string
		in, want   domain.Currency
		wantReason bool
	}{
		// Dollar sign next to a million marker is a display artifact.
		{"20-30tr$", domain.CurrencyUSD, domain.CurrencyVND, true},
		// A lone đ on a tiny figure labels an hourly USD rate.
		{"400đ/giờ", domain.CurrencyVND, domain.CurrencyUSD, true},
		// Already correct: no reason emitted.
		{"20-30tr$", domain.CurrencyVND, domain.CurrencyVND, false},
		// A tr marker blocks the hourly-USD rule.
		{"15tr đ/tháng", domain.CurrencyVND, domain.CurrencyVND, false},
		// Magnitude at or above the cutoff stays untouched.
		{"600000đ/tháng", domain.CurrencyVND, domain.CurrencyVND, false},
		// tỷ marker blocks the hourly-USD rule.
		{"1,2 tỷ đ/năm", domain.CurrencyVND, domain.CurrencyVND, false},
		{"$2,000/month", domain.CurrencyUSD, domain.CurrencyUSD, false},
	}
	for _, c := range cases {
		got, reason := normalizer.FixCurrencyConflict(c.raw, c.in)
		if got != c.want {
			t.Errorf("FixCurrencyConflict(%q, %s) = %s, want %s", c.raw, c.in, got, c.want)
		}
		if (reason != "") != c.wantReason {
			t.Errorf("FixCurrencyConflict(%q, %s) reason = %q, want reason: %v",
				c.raw, c.in, reason, c.wantReason)
		}
	}
}
