package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// IndustryStats summarizes all listings of one industry.
type IndustryStats struct {
	Industry     string
	Total        int
	Quantifiable int
	Negotiable   int
	Abnormal     int

	// Over numeric medians only, VND/month.
	MeanSalary float64
	MinSalary  float64
	MaxSalary  float64
}

// AbnormalRecord is one audit row for a listing the outlier pass
// flagged. The raw text and URL stay attached so a reviewer can judge
// the flag without a database lookup.
type AbnormalRecord struct {
	ID            string
	Industry      string
	RawSalaryText string
	SourceURL     string
}

// Report is the full per-industry statistics output of one dataset.
type Report struct {
	TotalListings int
	Industries    []IndustryStats
	Abnormal      []AbnormalRecord

	// Distribution of workdays per week, index 0 unused, 1..7 counts.
	WorkdayCounts [8]int

	// Benefit group key -> number of listings carrying it.
	BenefitFrequency map[string]int
}

const unknownIndustry = "Khac"

// Build computes the report over a set of stored listings.
func Build(jobs []*domain.JobListing) *Report {
	rep := &Report{
		TotalListings:    len(jobs),
		BenefitFrequency: make(map[string]int),
	}

	byIndustry := make(map[string]*IndustryStats)
	for _, j := range jobs {
		industry := strings.TrimSpace(j.Industry)
		if industry == "" {
			industry = unknownIndustry
		}
		st, ok := byIndustry[industry]
		if !ok {
			st = &IndustryStats{Industry: industry}
			byIndustry[industry] = st
		}
		st.Total++

		switch {
		case j.MedianSalary.Kind == domain.AmountAbnormal:
			st.Abnormal++
			rep.Abnormal = append(rep.Abnormal, AbnormalRecord{
				ID:            j.ID,
				Industry:      industry,
				RawSalaryText: j.RawSalaryText,
				SourceURL:     j.SourceURL,
			})
		case j.MedianSalary.Kind == domain.AmountNoInfo:
			st.Negotiable++
		case j.Quantified():
			st.Quantifiable++
			v := j.MedianSalary.Value
			st.MeanSalary += v
			if st.MinSalary == 0 || v < st.MinSalary {
				st.MinSalary = v
			}
			if v > st.MaxSalary {
				st.MaxSalary = v
			}
		}

		if j.WorkdaysPerWeek >= 1 && j.WorkdaysPerWeek <= 7 {
			rep.WorkdayCounts[j.WorkdaysPerWeek]++
		}

		for _, part := range strings.Split(j.BenefitGroups, " | ") {
			if key, _, ok := strings.Cut(part, ":"); ok {
				rep.BenefitFrequency[strings.TrimSpace(key)]++
			}
		}
	}

	for _, st := range byIndustry {
		if st.Quantifiable > 0 {
			st.MeanSalary /= float64(st.Quantifiable)
		}
		rep.Industries = append(rep.Industries, *st)
	}
	// Largest industries first, name as tiebreak for stable output.
	sort.Slice(rep.Industries, func(a, b int) bool {
		if rep.Industries[a].Total != rep.Industries[b].Total {
			return rep.Industries[a].Total > rep.Industries[b].Total
		}
		return rep.Industries[a].Industry < rep.Industries[b].Industry
	})

	return rep
}

func pct(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}

// Write renders the report as plain text.
func (r *Report) Write(w io.Writer) error {
	fmt.Fprintf(w, "Salary report: %s listings\n\n", humanize.Comma(int64(r.TotalListings)))

	fmt.Fprintln(w, "Per industry:")
	for _, st := range r.Industries {
		fmt.Fprintf(w, "  %-40s %6d listings | quantifiable %d (%.1f%%) | negotiable %d (%.1f%%) | abnormal %d\n",
			st.Industry, st.Total,
			st.Quantifiable, pct(st.Quantifiable, st.Total),
			st.Negotiable, pct(st.Negotiable, st.Total),
			st.Abnormal)
		if st.Quantifiable > 0 {
			fmt.Fprintf(w, "  %-40s median salary VND/month: mean %s, min %s, max %s\n",
				"",
				humanize.CommafWithDigits(st.MeanSalary, 0),
				humanize.CommafWithDigits(st.MinSalary, 0),
				humanize.CommafWithDigits(st.MaxSalary, 0))
		}
	}

	fmt.Fprintln(w, "\nWorkdays per week:")
	for d := 1; d <= 7; d++ {
		if r.WorkdayCounts[d] > 0 {
			fmt.Fprintf(w, "  %d days: %d listings\n", d, r.WorkdayCounts[d])
		}
	}

	if len(r.BenefitFrequency) > 0 {
		fmt.Fprintln(w, "\nBenefit groups:")
		keys := make([]string, 0, len(r.BenefitFrequency))
		for k := range r.BenefitFrequency {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(a, b int) bool {
			if r.BenefitFrequency[keys[a]] != r.BenefitFrequency[keys[b]] {
				return r.BenefitFrequency[keys[a]] > r.BenefitFrequency[keys[b]]
			}
			return keys[a] < keys[b]
		})
		for _, k := range keys {
			fmt.Fprintf(w, "  %-20s %d listings\n", k, r.BenefitFrequency[k])
		}
	}

	if len(r.Abnormal) > 0 {
		fmt.Fprintln(w, "\nFlagged salaries (review manually):")
		for _, a := range r.Abnormal {
			fmt.Fprintf(w, "  %s [%s] %q %s\n", a.ID, a.Industry, a.RawSalaryText, a.SourceURL)
		}
	}

	return nil
}
