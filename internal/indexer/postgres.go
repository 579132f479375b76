package indexer

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/project-tktt/go-jobstats/internal/domain"
)

// PostgresIndexer stores enriched listings in PostgreSQL. Salary columns
// are TEXT so the no_info and abnormal sentinels survive round trips.
type PostgresIndexer struct {
	db        *sql.DB
	tableName string
}

// NewPostgresIndexer creates a new PostgreSQL indexer
func NewPostgresIndexer(connStr string, tableName string) (*PostgresIndexer, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	indexer := &PostgresIndexer{
		db:        db,
		tableName: tableName,
	}

	if err := indexer.ensureTable(); err != nil {
		return nil, fmt.Errorf("ensure table: %w", err)
	}

	return indexer, nil
}

// ensureTable creates the listings table if it doesn't exist
func (i *PostgresIndexer) ensureTable() error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			company TEXT,
			location TEXT,
			industry TEXT,
			field TEXT,
			raw_salary_text TEXT,
			currency TEXT,
			currency_fix_reason TEXT,
			is_quantifiable BOOLEAN DEFAULT FALSE,
			min_salary TEXT,
			max_salary TEXT,
			median_salary TEXT,
			pay_period TEXT,
			raw_workdays_text TEXT,
			raw_hours_text TEXT,
			workdays_per_week INTEGER,
			work_start TEXT,
			work_end TEXT,
			hours_per_day FLOAT,
			experience TEXT,
			experience_tags TEXT[],
			languages TEXT,
			age_min INTEGER,
			age_max INTEGER,
			benefit_groups TEXT,
			benefit_count INTEGER DEFAULT 0,
			company_size_min INTEGER,
			company_size_max INTEGER,
			description TEXT,
			requirements TEXT,
			benefits TEXT,
			source TEXT,
			source_url TEXT,
			crawled_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
		)
	`, i.tableName)

	_, err := i.db.Exec(query)
	return err
}

const upsertColumns = `
		id, title, company, location, industry, field,
		raw_salary_text, currency, currency_fix_reason, is_quantifiable,
		min_salary, max_salary, median_salary, pay_period,
		raw_workdays_text, raw_hours_text, workdays_per_week,
		work_start, work_end, hours_per_day,
		experience, experience_tags, languages, age_min, age_max,
		benefit_groups, benefit_count, company_size_min, company_size_max,
		description, requirements, benefits,
		source, source_url, crawled_at, updated_at`

func (i *PostgresIndexer) upsertQuery() string {
	return fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13, $14,
			$15, $16, $17,
			$18, $19, $20,
			$21, $22, $23, $24, $25,
			$26, $27, $28, $29,
			$30, $31, $32,
			$33, $34, $35, NOW()
		)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			location = EXCLUDED.location,
			industry = EXCLUDED.industry,
			field = EXCLUDED.field,
			raw_salary_text = EXCLUDED.raw_salary_text,
			currency = EXCLUDED.currency,
			currency_fix_reason = EXCLUDED.currency_fix_reason,
			is_quantifiable = EXCLUDED.is_quantifiable,
			min_salary = EXCLUDED.min_salary,
			max_salary = EXCLUDED.max_salary,
			median_salary = EXCLUDED.median_salary,
			pay_period = EXCLUDED.pay_period,
			raw_workdays_text = EXCLUDED.raw_workdays_text,
			raw_hours_text = EXCLUDED.raw_hours_text,
			workdays_per_week = EXCLUDED.workdays_per_week,
			work_start = EXCLUDED.work_start,
			work_end = EXCLUDED.work_end,
			hours_per_day = EXCLUDED.hours_per_day,
			experience = EXCLUDED.experience,
			experience_tags = EXCLUDED.experience_tags,
			languages = EXCLUDED.languages,
			age_min = EXCLUDED.age_min,
			age_max = EXCLUDED.age_max,
			benefit_groups = EXCLUDED.benefit_groups,
			benefit_count = EXCLUDED.benefit_count,
			company_size_min = EXCLUDED.company_size_min,
			company_size_max = EXCLUDED.company_size_max,
			description = EXCLUDED.description,
			requirements = EXCLUDED.requirements,
			benefits = EXCLUDED.benefits,
			source = EXCLUDED.source,
			source_url = EXCLUDED.source_url,
			crawled_at = EXCLUDED.crawled_at,
			updated_at = NOW()
	`, i.tableName, upsertColumns)
}

func upsertArgs(job *domain.JobListing) []any {
	expTags := "{}"
	if len(job.ExpTags) > 0 {
		expTags = "{" + strings.Join(job.ExpTags, ",") + "}"
	}

	return []any{
		job.ID, job.Title, job.Company, job.Location, job.Industry, job.Field,
		job.RawSalaryText, string(job.Currency), job.CurrencyReason, job.IsQuantifiable,
		job.MinSalary.String(), job.MaxSalary.String(), job.MedianSalary.String(), string(job.PayPeriod),
		job.RawWorkdaysText, job.RawHoursText, job.WorkdaysPerWeek,
		job.WorkStart, job.WorkEnd, job.HoursPerDay,
		job.Experience, expTags, job.Languages, job.AgeMin, job.AgeMax,
		job.BenefitGroups, job.BenefitCount, job.CompanySizeMin, job.CompanySizeMax,
		job.Description, job.Requirements, job.Benefits,
		job.Source, job.SourceURL, job.CrawledAt,
	}
}

// Index upserts a single listing
func (i *PostgresIndexer) Index(ctx context.Context, job *domain.JobListing) error {
	_, err := i.db.ExecContext(ctx, i.upsertQuery(), upsertArgs(job)...)
	return err
}

// BulkIndex upserts multiple listings inside one transaction
func (i *PostgresIndexer) BulkIndex(ctx context.Context, jobs []*domain.JobListing) error {
	if len(jobs) == 0 {
		return nil
	}

	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, i.upsertQuery())
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, job := range jobs {
		if _, err := stmt.ExecContext(ctx, upsertArgs(job)...); err != nil {
			log.Printf("Error indexing listing %s: %v", job.ID, err)
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// FetchAll loads every stored listing for the report stage. Only the
// columns the report reads are selected.
func (i *PostgresIndexer) FetchAll(ctx context.Context) ([]*domain.JobListing, error) {
	query := fmt.Sprintf(`
		SELECT id, title, industry, raw_salary_text, currency, is_quantifiable,
			min_salary, max_salary, median_salary,
			workdays_per_week, hours_per_day, benefit_groups, benefit_count,
			source, source_url, crawled_at
		FROM %s
	`, i.tableName)

	rows, err := i.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("select listings: %w", err)
	}
	defer rows.Close()

	var jobs []*domain.JobListing
	for rows.Next() {
		var j domain.JobListing
		var cur, minS, maxS, medS string
		var crawled sql.NullTime
		if err := rows.Scan(
			&j.ID, &j.Title, &j.Industry, &j.RawSalaryText, &cur, &j.IsQuantifiable,
			&minS, &maxS, &medS,
			&j.WorkdaysPerWeek, &j.HoursPerDay, &j.BenefitGroups, &j.BenefitCount,
			&j.Source, &j.SourceURL, &crawled,
		); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		j.Currency = domain.Currency(cur)
		j.MinSalary = domain.ParseAmount(minS)
		j.MaxSalary = domain.ParseAmount(maxS)
		j.MedianSalary = domain.ParseAmount(medS)
		if crawled.Valid {
			j.CrawledAt = crawled.Time
		} else {
			j.CrawledAt = time.Time{}
		}
		jobs = append(jobs, &j)
	}
	return jobs, rows.Err()
}

// Close closes the database connection
func (i *PostgresIndexer) Close() error {
	return i.db.Close()
}
