package normalizer

import (
	"context"
	"html"
	"log"
	"strings"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// Normalizer converts a RawListing into an enriched JobListing. It is
// safe for concurrent use; the classifier is only consulted when the
// rule cascade cannot place a currency.
type Normalizer struct {
	classifier CurrencyClassifier
}

func New(classifier CurrencyClassifier) *Normalizer {
	if classifier == nil {
		classifier = NullClassifier{}
	}
	return &Normalizer{classifier: classifier}
}

// field looks a value up under any of the given keys, decoding HTML
// entities and folding junk placeholders to empty.
func field(fields map[string]string, keys ...string) string {
	for _, k := range keys {
		v := strings.TrimSpace(html.UnescapeString(fields[k]))
		if v == "" {
			continue
		}
		switch Normalize(v) {
		case "nan", "none", "khong hien thi", "n/a", "-":
			continue
		}
		return v
	}
	return ""
}

// Normalize maps the raw scraped fields onto the domain record and runs
// every per-record parsing stage. Batch-relative stages (currency
// conversion, outlier flagging) run later in the batch driver.
func (n *Normalizer) Normalize(ctx context.Context, raw *domain.RawListing) (*domain.JobListing, error) {
	f := raw.Fields
	job := &domain.JobListing{
		ID:        raw.ID,
		Source:    raw.Source,
		SourceURL: raw.URL,
		CrawledAt: raw.ExtractedAt,

		Title:    field(f, "title", "ten_cong_viec"),
		Company:  field(f, "company", "ten_cong_ty"),
		Location: field(f, "location", "dia_diem"),
		Industry: field(f, "industry", "nganh"),
		Field:    field(f, "field", "nganh_nghe"),

		Description:  field(f, "description", "mo_ta_cong_viec"),
		Requirements: field(f, "requirements", "yeu_cau_cong_viec"),
		Benefits:     field(f, "benefits", "phuc_loi"),
	}

	n.normalizeSalary(ctx, job, field(f, "salary", "luong", "muc_luong"))
	n.normalizeSchedule(job,
		field(f, "workdays", "ngay_lam_viec"),
		field(f, "workhours", "gio_lam_viec"))
	n.normalizeCandidate(job, f)
	n.normalizeBenefits(job)

	return job, nil
}

func (n *Normalizer) normalizeSalary(ctx context.Context, job *domain.JobListing, rawSalary string) {
	job.RawSalaryText = rawSalary

	p := ParseSalary(rawSalary)
	job.MinSalary = p.Min
	job.MaxSalary = p.Max
	job.MedianSalary = p.Median
	job.PayPeriod = p.Period
	job.IsQuantifiable = !p.Negotiable && p.Median.Kind == domain.AmountNumber

	if p.Negotiable {
		job.Currency = domain.CurrencyNoInfo
		return
	}

	cur, ok := ClassifyCurrency(rawSalary)
	if !ok && rawSalary != "" {
		got, err := n.classifier.Classify(ctx, rawSalary)
		if err != nil {
			log.Printf("currency classifier failed: job=%s err=%v", job.ID, err)
		}
		if domain.Supported[got] {
			cur, ok = got, true
		}
	}
	if !ok {
		job.Currency = domain.CurrencyNoInfo
		return
	}

	if fixed, reason := FixCurrencyConflict(rawSalary, cur); reason != "" {
		job.Currency = fixed
		job.CurrencyReason = reason
	} else {
		job.Currency = cur
	}
}

func (n *Normalizer) normalizeSchedule(job *domain.JobListing, rawDays, rawHours string) {
	job.RawWorkdaysText = rawDays
	job.RawHoursText = rawHours
	job.WorkdaysPerWeek = CountWorkdays(rawDays)
	job.HoursPerDay = LongestTimeSpan(rawHours)
	if start, end, ok := LongestTimeRange(rawHours); ok {
		job.WorkStart, job.WorkEnd = start, end
	}
}

func (n *Normalizer) normalizeCandidate(job *domain.JobListing, f map[string]string) {
	job.Experience = field(f, "experience", "so_nam_kinh_nghiem", "kinh_nghiem")
	job.ExpTags = ExperienceTags(job.Experience)

	if min, max, ok := ParseIntRange(field(f, "age", "do_tuoi")); ok {
		job.AgeMin, job.AgeMax = min, max
	}
	if min, max, ok := ParseIntRange(field(f, "company_size", "quy_mo_cong_ty")); ok {
		job.CompanySizeMin, job.CompanySizeMax = min, max
	}

	job.Languages = strings.Join(DetectLanguages(job.Description, job.Requirements), ", ")
	if lang := field(f, "language", "ngon_ngu_cv"); lang != "" && job.Languages == "" {
		job.Languages = lang
	}
}

func (n *Normalizer) normalizeBenefits(job *domain.JobListing) {
	found := DetectBenefits(job.Description, job.Requirements, job.Benefits)
	summary, total := SummarizeBenefits(found)
	job.BenefitGroups = summary
	job.BenefitCount = total
}
