package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/project-tktt/go-jobstats/internal/config"
)

const validSelectors = `
sites:
  - name: careerviet
    list:
      url: https://careerviet.vn/viec-lam/tat-ca-viec-lam-vi.html
      item_link: a.job_link
      next_page: a.next-page
      max_pages: 5
    detail:
      title:
        selector: h1.title
      company:
        selector: a.company-name
      salary:
        selector: .job-detail .salary
      description:
        selector: .job-description
`

func writeSelectors(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "selectors.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSelectors(t *testing.T) {
	cfg, err := config.LoadSelectors(writeSelectors(t, validSelectors))
	if err != nil {
		t.Fatalf("LoadSelectors: %v", err)
	}
	if len(cfg.Sites) != 1 {
		t.Fatalf("len(Sites) = %d, want 1", len(cfg.Sites))
	}

	site := cfg.Sites[0]
	if site.Name != "careerviet" {
		t.Errorf("Name = %q, want careerviet", site.Name)
	}
	if site.List.ItemLink != "a.job_link" || site.List.MaxPages != 5 {
		t.Errorf("List = %+v", site.List)
	}
	if site.Detail.Title.Selector != "h1.title" {
		t.Errorf("Title selector = %q", site.Detail.Title.Selector)
	}
	// Optional selectors stay empty without complaint.
	if site.Detail.Workdays.Selector != "" {
		t.Errorf("Workdays selector = %q, want empty", site.Detail.Workdays.Selector)
	}
}

func TestLoadSelectorsMissingMandatory(t *testing.T) {
	body := strings.Replace(validSelectors, "      salary:\n        selector: .job-detail .salary\n", "", 1)
	_, err := config.LoadSelectors(writeSelectors(t, body))
	if err == nil {
		t.Fatal("LoadSelectors accepted a site without a salary selector")
	}
	if !strings.Contains(err.Error(), "salary") {
		t.Errorf("error %q does not name the missing selector", err)
	}
}

func TestLoadSelectorsNoSites(t *testing.T) {
	if _, err := config.LoadSelectors(writeSelectors(t, "sites: []\n")); err == nil {
		t.Fatal("LoadSelectors accepted an empty site list")
	}
}

func TestLoadSelectorsMissingFile(t *testing.T) {
	if _, err := config.LoadSelectors(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadSelectors accepted a missing file")
	}
}
