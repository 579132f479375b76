package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

// Selector addresses one field on a detail page. Attr, when set, reads
// an attribute instead of the element text. An empty Selector means the
// site does not expose that field.
type Selector struct {
	Selector string `yaml:"selector"`
	Attr     string `yaml:"attr"`
}

// ListConfig drives the listing-index crawl of one site.
type ListConfig struct {
	URL      string `yaml:"url" validate:"required,url"`
	ItemLink string `yaml:"item_link" validate:"required,min=1"`
	NextPage string `yaml:"next_page"`
	MaxPages int    `yaml:"max_pages" validate:"gte=0"`
}

// DetailConfig maps detail-page fields to selectors. Only title,
// company and salary are mandatory; a missing optional selector yields
// an empty field downstream.
type DetailConfig struct {
	Title        Selector `yaml:"title"`
	Company      Selector `yaml:"company"`
	Salary       Selector `yaml:"salary"`
	Location     Selector `yaml:"location"`
	Industry     Selector `yaml:"industry"`
	Workdays     Selector `yaml:"workdays"`
	Workhours    Selector `yaml:"workhours"`
	Experience   Selector `yaml:"experience"`
	Age          Selector `yaml:"age"`
	CompanySize  Selector `yaml:"company_size"`
	Description  Selector `yaml:"description"`
	Requirements Selector `yaml:"requirements"`
	Benefits     Selector `yaml:"benefits"`
}

// SiteConfig is the full scraping recipe for one job board.
type SiteConfig struct {
	Name   string       `yaml:"name" validate:"required,min=1"`
	List   ListConfig   `yaml:"list"`
	Detail DetailConfig `yaml:"detail"`
}

type SelectorFile struct {
	Sites []SiteConfig `yaml:"sites" validate:"required,min=1,dive"`
}

var validate = validator.New()

// LoadSelectors reads and validates the per-site selector file.
func LoadSelectors(path string) (*SelectorFile, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read selector file: %w", err)
	}

	var cfg SelectorFile
	if err := yaml.Unmarshal(f, &cfg); err != nil {
		return nil, fmt.Errorf("parse selector file: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate selector file: %w", err)
	}

	// Mandatory detail selectors the validator cannot express without
	// rejecting the optional ones too.
	for _, site := range cfg.Sites {
		for name, sel := range map[string]Selector{
			"title":   site.Detail.Title,
			"company": site.Detail.Company,
			"salary":  site.Detail.Salary,
		} {
			if sel.Selector == "" {
				return nil, fmt.Errorf("site %s: detail selector %q is required", site.Name, name)
			}
		}
	}

	return &cfg, nil
}
