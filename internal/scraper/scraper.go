package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/project-tktt/go-jobstats/internal/config"
	"github.com/project-tktt/go-jobstats/internal/domain"
)

// Options carries the crawl-wide settings shared by every site.
type Options struct {
	RequestDelay time.Duration
	MaxRetries   int
	UserAgent    string
}

// Scraper crawls one job board's listing index and detail pages using
// the selectors from its SiteConfig.
type Scraper struct {
	site config.SiteConfig
	opts Options
}

func New(site config.SiteConfig, opts Options) *Scraper {
	return &Scraper{site: site, opts: opts}
}

func (s *Scraper) newCollector() *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(s.opts.UserAgent),
		colly.AllowURLRevisit(),
	)
	if s.opts.RequestDelay > 0 {
		c.Limit(&colly.LimitRule{
			DomainGlob:  "*",
			Delay:       s.opts.RequestDelay,
			RandomDelay: s.opts.RequestDelay / 2,
		})
	}
	return c
}

// CollectLinks walks the listing index and returns the detail-page URLs
// found, following pagination up to MaxPages.
func (s *Scraper) CollectLinks(ctx context.Context) ([]string, error) {
	var links []string
	seen := make(map[string]bool)
	pages := 0

	c := s.newCollector()

	c.OnHTML(s.site.List.ItemLink, func(el *colly.HTMLElement) {
		link := el.Request.AbsoluteURL(el.Attr("href"))
		if link == "" || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})

	if s.site.List.NextPage != "" {
		c.OnHTML(s.site.List.NextPage, func(el *colly.HTMLElement) {
			if ctx.Err() != nil {
				return
			}
			pages++
			if s.site.List.MaxPages > 0 && pages >= s.site.List.MaxPages {
				return
			}
			next := el.Request.AbsoluteURL(el.Attr("href"))
			if next != "" {
				el.Request.Visit(next)
			}
		})
	}

	var crawlErr error
	c.OnError(func(r *colly.Response, err error) {
		crawlErr = fmt.Errorf("list page %s: %w (status %d)", r.Request.URL, err, r.StatusCode)
	})

	if err := c.Visit(s.site.List.URL); err != nil {
		return nil, fmt.Errorf("visit index: %w", err)
	}
	c.Wait()

	if len(links) == 0 && crawlErr != nil {
		return nil, crawlErr
	}
	return links, nil
}

func pick(dom *goquery.Selection, sel config.Selector) string {
	if sel.Selector == "" {
		return ""
	}
	node := dom.Find(sel.Selector).First()
	if sel.Attr != "" {
		v, _ := node.Attr(sel.Attr)
		return strings.TrimSpace(v)
	}
	return strings.TrimSpace(node.Text())
}

func pickHTML(dom *goquery.Selection, sel config.Selector) string {
	if sel.Selector == "" {
		return ""
	}
	h, _ := dom.Find(sel.Selector).First().Html()
	return h
}

// Extract fetches one detail page, retrying transient failures up to
// MaxRetries, and maps its fields through the site's selectors. Missing
// selectors or missing elements yield empty fields; the record still
// comes back so the pipeline stays total.
func (s *Scraper) Extract(ctx context.Context, url string) (*domain.RawListing, error) {
	var listing *domain.RawListing
	var err error
	for attempt := 0; attempt <= s.opts.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		listing, err = s.extractOnce(url)
		if err == nil {
			return listing, nil
		}
	}
	return nil, err
}

func (s *Scraper) extractOnce(url string) (*domain.RawListing, error) {
	var listing *domain.RawListing
	var extractErr error

	c := s.newCollector()

	c.OnHTML("body", func(el *colly.HTMLElement) {
		d := s.site.Detail
		dom := el.DOM

		fields := map[string]string{
			"title":        pick(dom, d.Title),
			"company":      pick(dom, d.Company),
			"salary":       pick(dom, d.Salary),
			"location":     pick(dom, d.Location),
			"industry":     pick(dom, d.Industry),
			"workdays":     pick(dom, d.Workdays),
			"workhours":    pick(dom, d.Workhours),
			"experience":   pick(dom, d.Experience),
			"age":          pick(dom, d.Age),
			"company_size": pick(dom, d.CompanySize),
			// Long-form fields keep markup for the cleaner to strip.
			"description":  pickHTML(dom, d.Description),
			"requirements": pickHTML(dom, d.Requirements),
			"benefits":     pickHTML(dom, d.Benefits),
		}

		listing = &domain.RawListing{
			ID:          listingID(s.site.Name, url),
			URL:         url,
			Source:      s.site.Name,
			Fields:      fields,
			ExtractedAt: time.Now(),
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		extractErr = fmt.Errorf("detail page: %w (status %d)", err, r.StatusCode)
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("visit url: %w", err)
	}
	c.Wait()

	if extractErr != nil {
		return nil, extractErr
	}
	if listing == nil {
		return nil, fmt.Errorf("no data extracted from %s", url)
	}
	return listing, nil
}

func listingID(source, url string) string {
	h := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%s-%s", source, hex.EncodeToString(h[:8]))
}
