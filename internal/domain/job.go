package domain

import "time"

// RawListing is one scraped listing before any normalization.
// Fields holds raw text exactly as labeled on the source page; a selector
// that matched nothing yields an empty string, never an error.
type RawListing struct {
	ID          string            `json:"id"`
	URL         string            `json:"url"`
	Source      string            `json:"source"`
	Fields      map[string]string `json:"fields"`
	ExtractedAt time.Time         `json:"extracted_at"`
}

// JobListing is one row of the enriched output table. Raw text fields are
// copied from the RawListing and never mutated; everything else is derived.
type JobListing struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company"`
	Location  string    `json:"location"`
	Industry  string    `json:"industry"`
	Field     string    `json:"field"`
	Source    string    `json:"source"`
	SourceURL string    `json:"source_url"`
	CrawledAt time.Time `json:"crawled_at"`

	// Salary, normalized to VND/month by the unit converter.
	RawSalaryText  string   `json:"raw_salary_text"`
	Currency       Currency `json:"currency"`
	CurrencyReason string   `json:"currency_fix_reason,omitempty"`
	IsQuantifiable bool     `json:"is_quantifiable"`
	MinSalary      Amount   `json:"min_salary"`
	MaxSalary      Amount   `json:"max_salary"`
	MedianSalary   Amount   `json:"median_salary"`
	PayPeriod      Period   `json:"pay_period,omitempty"`

	// Work schedule.
	RawWorkdaysText string  `json:"raw_workdays_text"`
	RawHoursText    string  `json:"raw_hours_text"`
	WorkdaysPerWeek int     `json:"workdays_per_week,omitempty"` // 1..7, 0 = unknown
	WorkStart       string  `json:"work_start,omitempty"`        // "HH:MM"
	WorkEnd         string  `json:"work_end,omitempty"`
	HoursPerDay     float64 `json:"hours_per_day,omitempty"`

	// Candidate requirements.
	Experience string   `json:"experience"`
	ExpTags    []string `json:"experience_tags"`
	Languages  string   `json:"languages,omitempty"`
	AgeMin     int      `json:"age_min,omitempty"`
	AgeMax     int      `json:"age_max,omitempty"`

	// Benefits taxonomy.
	BenefitGroups string `json:"benefit_groups"`
	BenefitCount  int    `json:"benefit_count"`

	// Company size ("50-100 nhân viên" style text on the source page).
	CompanySizeMin int `json:"company_size_min,omitempty"`
	CompanySizeMax int `json:"company_size_max,omitempty"`

	Description  string `json:"description"`
	Requirements string `json:"requirements"`
	Benefits     string `json:"benefits"`
}

// Quantified reports whether the median survived parsing, conversion and
// outlier flagging as a real number.
func (j *JobListing) Quantified() bool {
	return j.IsQuantifiable && j.MedianSalary.Kind == AmountNumber
}

// MarkAbnormal overwrites all three salary fields with the abnormal
// sentinel. The operation is all-or-nothing: a record never carries a mix
// of numbers and sentinels.
func (j *JobListing) MarkAbnormal() {
	j.MinSalary = Abnormal()
	j.MaxSalary = Abnormal()
	j.MedianSalary = Abnormal()
}

// Known listing source sites.
const (
	SourceCareerViet   = "careerviet"
	SourceVietnamWorks = "vietnamworks"
)
