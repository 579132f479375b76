package report_test

import (
	"strings"
	"testing"

	"github.com/project-tktt/go-jobstats/internal/domain"
	"github.com/project-tktt/go-jobstats/internal/report"
)

func listing(id, industry string, median domain.Amount) *domain.JobListing {
	return &domain.JobListing{
		ID:             id,
		Industry:       industry,
		IsQuantifiable: median.Kind == domain.AmountNumber,
		MinSalary:      median,
		MaxSalary:      median,
		MedianSalary:   median,
	}
}

func TestBuild(t *testing.T) {
	jobs := []*domain.JobListing{
		listing("a", "IT", domain.Number(20e6)),
		listing("b", "IT", domain.Number(30e6)),
		listing("c", "IT", domain.NoInfo()),
		listing("d", "Bán hàng", domain.Number(10e6)),
		listing("e", "", domain.Missing()),
	}
	flagged := listing("f", "IT", domain.Abnormal())
	flagged.RawSalaryText = "800 triệu/tháng"
	flagged.SourceURL = "https://example.vn/f"
	jobs = append(jobs, flagged)

	jobs[0].WorkdaysPerWeek = 5
	jobs[1].WorkdaysPerWeek = 6
	jobs[3].WorkdaysPerWeek = 6
	jobs[0].BenefitGroups = "Luong-Thuong: Bonus | BaoHiem-SK: BHXH/BHYT/BHTN"
	jobs[1].BenefitGroups = "Luong-Thuong: Luong thang 13"

	rep := report.Build(jobs)

	if rep.TotalListings != 6 {
		t.Errorf("TotalListings = %d, want 6", rep.TotalListings)
	}
	if len(rep.Industries) != 3 {
		t.Fatalf("len(Industries) = %d, want 3", len(rep.Industries))
	}

	// Sorted by listing count, so IT leads.
	it := rep.Industries[0]
	if it.Industry != "IT" || it.Total != 4 {
		t.Fatalf("top industry = %s/%d, want IT/4", it.Industry, it.Total)
	}
	if it.Quantifiable != 2 || it.Negotiable != 1 || it.Abnormal != 1 {
		t.Errorf("IT splits = %d/%d/%d, want 2 quantifiable, 1 negotiable, 1 abnormal",
			it.Quantifiable, it.Negotiable, it.Abnormal)
	}
	if it.MeanSalary != 25e6 || it.MinSalary != 20e6 || it.MaxSalary != 30e6 {
		t.Errorf("IT salary stats = %v/%v/%v, want 25e6/20e6/30e6",
			it.MeanSalary, it.MinSalary, it.MaxSalary)
	}

	// The empty industry falls under the catch-all bucket.
	found := false
	for _, st := range rep.Industries {
		if st.Industry == "Khac" {
			found = true
		}
	}
	if !found {
		t.Errorf("no catch-all industry bucket in %v", rep.Industries)
	}

	if rep.WorkdayCounts[5] != 1 || rep.WorkdayCounts[6] != 2 {
		t.Errorf("workday counts = %v, want one 5-day and two 6-day", rep.WorkdayCounts)
	}
	if rep.BenefitFrequency["Luong-Thuong"] != 2 || rep.BenefitFrequency["BaoHiem-SK"] != 1 {
		t.Errorf("BenefitFrequency = %v", rep.BenefitFrequency)
	}

	if len(rep.Abnormal) != 1 || rep.Abnormal[0].ID != "f" {
		t.Fatalf("Abnormal = %v, want the flagged listing", rep.Abnormal)
	}
	if rep.Abnormal[0].RawSalaryText != "800 triệu/tháng" {
		t.Errorf("audit row lost the raw text: %v", rep.Abnormal[0])
	}
}

func TestWrite(t *testing.T) {
	rep := report.Build([]*domain.JobListing{
		listing("a", "IT", domain.Number(20e6)),
		listing("b", "IT", domain.NoInfo()),
	})

	var buf strings.Builder
	if err := rep.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"2 listings", "IT", "20,000,000"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	rep := report.Build(nil)
	if rep.TotalListings != 0 || len(rep.Industries) != 0 || len(rep.Abnormal) != 0 {
		t.Errorf("empty report = %+v", rep)
	}
	var buf strings.Builder
	if err := rep.Write(&buf); err != nil {
		t.Fatalf("Write on empty report: %v", err)
	}
}
