package normalizer_test

import (
	"testing"

	"github.com/project-tktt/go-jobstats/internal/normalizer"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Thương Lượng", "thuong luong"},
		{"10 - 15 Triệu/Tháng", "10 - 15 trieu/thang"},
		{"  nhiều   khoảng   trắng  ", "nhieu khoang trang"},
		{"Đồng", "dong"},
		{"", ""},
	}
	for _, c := range cases {
		if got := normalizer.Normalize(c.in); got != c.want {
			t.Errorf("Normalize(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{"Thoả Thuận", "8h00 – 17h30", "Từ 5 triệu"}
	for _, in := range inputs {
		once := normalizer.Normalize(in)
		if twice := normalizer.Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestExtractNumbers(t *testing.T) {
	got := normalizer.ExtractNumbers("10-15 va 1.2")
	want := []float64{10, 15, 1.2}
	if len(got) != len(want) {
		t.Fatalf("ExtractNumbers = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtractNumbers[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMeanOfNumbers(t *testing.T) {
	mean, ok := normalizer.MeanOfNumbers("400 đ/giờ")
	if !ok || mean != 400 {
		t.Errorf("MeanOfNumbers = %v, %v; want 400, true", mean, ok)
	}
	if _, ok := normalizer.MeanOfNumbers("thỏa thuận"); ok {
		t.Error("MeanOfNumbers on text without digits should report false")
	}
}

func TestContainsToken(t *testing.T) {
	cases := []struct {
		text   string
		tokens []string
		want   bool
	}{
		{"luong thuong luong", []string{"thuong luong"}, true},
		{"mucluongdeal", []string{"deal"}, false}, // single words need word boundaries
		{"deal luong", []string{"deal"}, true},
		{"khong co gi", []string{"deal", "negotiable"}, false},
	}
	for _, c := range cases {
		if got := normalizer.ContainsToken(c.text, c.tokens); got != c.want {
			t.Errorf("ContainsToken(%q, %v) = %v, want %v", c.text, c.tokens, got, c.want)
		}
	}
}
