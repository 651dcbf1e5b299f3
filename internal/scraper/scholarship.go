package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"skillsync/internal/domain/opportunity"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

const (
	scholarshipProvider = "Scholarships.com"
	scholarshipListSel  = "ul.scholarshiplist li"

	defaultScholarshipQuery = "computer-science"

	scholarshipScore = 85
	fallbackScore    = 80
	gpaBonus         = 5
	gpaBonusFloor    = 3.0
)

var errNoScholarships = errors.New("no scholarships found")

type ScholarshipScraper struct {
	baseURL  string
	renderer Renderer
	logger   *zap.Logger
}

func NewScholarshipScraper(baseURL string, renderer Renderer, logger *zap.Logger) *ScholarshipScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = "https://www.scholarships.com"
	}
	return &ScholarshipScraper{baseURL: baseURL, renderer: renderer, logger: logger.Named("scholarship_scraper")}
}

// Scan never fails: when the directory cannot be scraped it returns a single
// fallback listing so the caller still has something to show.
func (s *ScholarshipScraper) Scan(ctx context.Context, p Profile) []opportunity.Opportunity {
	query := strings.TrimSpace(p.Major)
	if query == "" {
		query = defaultScholarshipQuery
	}

	items, err := s.Scrape(ctx, query)
	if err != nil {
		s.logger.Warn("scholarship scrape failed, using fallback", zap.String("query", query), zap.Error(err))
		items = []opportunity.Opportunity{fallbackScholarship(query)}
	}

	if p.GPA >= gpaBonusFloor {
		for i := range items {
			items[i].MatchScore += gpaBonus
		}
	}
	return items
}

func (s *ScholarshipScraper) Scrape(ctx context.Context, query string) ([]opportunity.Opportunity, error) {
	if s == nil || s.renderer == nil {
		return nil, fmt.Errorf("nil scraper/renderer")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	pageURL := s.directoryURL(query)
	s.logger.Info("scraping scholarships", zap.String("url", pageURL))

	html, err := s.renderer.Render(ctx, pageURL, scholarshipListSel)
	if err != nil {
		return nil, err
	}
	return ParseScholarshipList(html, pageURL, query)
}

func (s *ScholarshipScraper) directoryURL(query string) string {
	return fmt.Sprintf("%s/financial-aid/college-scholarships/scholarship-directory/academic-major/%s",
		s.baseURL, url.PathEscape(slug(query)))
}

// ParseScholarshipList extracts at most ten listings from a rendered
// scholarship directory page. Relative links resolve against pageURL.
func ParseScholarshipList(html, pageURL, query string) ([]opportunity.Opportunity, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}
	base, _ := url.Parse(pageURL)

	out := make([]opportunity.Opportunity, 0, maxResults)
	doc.Find(scholarshipListSel).EachWithBreak(func(_ int, li *goquery.Selection) bool {
		if len(out) >= maxResults {
			return false
		}

		a := li.Find("h3 a").First()
		title := collapseSpaces(a.Text())
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if title == "" || href == "" {
			return true
		}
		if base != nil {
			if ref, err := url.Parse(href); err == nil {
				href = base.ResolveReference(ref).String()
			}
		}

		out = append(out, opportunity.Opportunity{
			Kind:       opportunity.KindScholarship,
			Title:      title,
			Provider:   scholarshipProvider,
			Amount:     collapseSpaces(li.Find(".scholarship-amount").First().Text()),
			Deadline:   collapseSpaces(li.Find(".scholarship-deadline").First().Text()),
			URL:        href,
			MatchScore: scholarshipScore,
			Tags:       []string{query},
			IsActive:   true,
		})
		return true
	})

	if len(out) == 0 {
		return nil, errNoScholarships
	}
	return out, nil
}

func fallbackScholarship(query string) opportunity.Opportunity {
	return opportunity.Opportunity{
		Kind:       opportunity.KindScholarship,
		Title:      "Opportunity in " + query,
		Provider:   "Manual Entry (Fallback)",
		Amount:     "$5000 / $30hr",
		URL:        "https://google.com/search?q=" + url.QueryEscape(query),
		MatchScore: fallbackScore,
		Tags:       []string{query},
		IsActive:   true,
	}
}

func slug(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), "-"))
}
