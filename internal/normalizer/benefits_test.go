package normalizer_test

import (
	"testing"

	"github.com/project-tktt/go-jobstats/internal/normalizer"
)

func TestDetectBenefits(t *testing.T) {
	found := normalizer.DetectBenefits(
		"Thưởng tháng lương 13, thưởng KPI hấp dẫn.",
		"Đóng BHXH, BHYT đầy đủ theo luật.",
	)

	labels := found["Luong-Thuong"]
	if !contains(labels, "Luong thang 13") {
		t.Errorf("Luong-Thuong = %v, want 13th month salary detected", labels)
	}
	if !contains(labels, "Thuong hieu suat/KPI") {
		t.Errorf("Luong-Thuong = %v, want KPI bonus detected", labels)
	}
	if ins := found["BaoHiem-SK"]; !contains(ins, "BHXH/BHYT/BHTN") {
		t.Errorf("BaoHiem-SK = %v, want statutory insurance detected", ins)
	}
}

func TestDetectBenefitsWFHAlias(t *testing.T) {
	found := normalizer.DetectBenefits("Hỗ trợ WFH 2 ngày mỗi tuần")
	if items := found["NghiPhep-Time"]; !contains(items, "Remote/Hybrid/WFH") {
		t.Errorf("NghiPhep-Time = %v, want the wfh alias to match", items)
	}
}

func TestDetectBenefitsEmpty(t *testing.T) {
	if found := normalizer.DetectBenefits(""); len(found) != 0 {
		t.Errorf("DetectBenefits(\"\") = %v, want empty", found)
	}
}

func TestSummarizeBenefits(t *testing.T) {
	found := map[string][]string{
		"BaoHiem-SK":   {"BHXH/BHYT/BHTN"},
		"Luong-Thuong": {"Luong thang 13", "Bonus"},
	}
	summary, count := normalizer.SummarizeBenefits(found)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
	// Group order is fixed and items are sorted inside each group.
	want := "Luong-Thuong: Bonus; Luong thang 13 | BaoHiem-SK: BHXH/BHYT/BHTN"
	if summary != want {
		t.Errorf("summary = %q, want %q", summary, want)
	}

	if summary, count := normalizer.SummarizeBenefits(nil); summary != "" || count != 0 {
		t.Errorf("empty summary = %q/%d, want empty", summary, count)
	}
}

func contains(ss []string, want string) bool {
	for _, s := range ss {
		if s == want {
			return true
		}
	}
	return false
}
