package scraper

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"skillsync/internal/domain/opportunity"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"
)

const (
	internshipProvider = "Web Search"
	internshipAmount   = "Competitive"
	internshipScore    = 80

	defaultInternshipQuery = "software engineering"
)

var internshipLinkMarkers = []string{"linkedin", "indeed", "glassdoor", "careers", "jobs"}

// InternshipScraper runs a web search for internship postings and keeps the
// results that point at job boards or career pages.
type InternshipScraper struct {
	searchURL string
	logger    *zap.Logger
	now       func() time.Time
}

func NewInternshipScraper(searchURL string, logger *zap.Logger) *InternshipScraper {
	if logger == nil {
		logger = zap.NewNop()
	}
	searchURL = strings.TrimSpace(searchURL)
	if searchURL == "" {
		searchURL = "https://html.duckduckgo.com/html/"
	}
	return &InternshipScraper{searchURL: searchURL, logger: logger.Named("internship_scraper"), now: time.Now}
}

// InternshipQuery is the major followed by the first two skills.
func InternshipQuery(p Profile) string {
	terms := []string{p.Major}
	if len(p.Skills) > 2 {
		terms = append(terms, p.Skills[:2]...)
	} else {
		terms = append(terms, p.Skills...)
	}

	parts := make([]string, 0, len(terms))
	for _, t := range terms {
		if t = strings.TrimSpace(t); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return defaultInternshipQuery
	}
	return strings.Join(parts, " ")
}

func (s *InternshipScraper) Scan(ctx context.Context, p Profile) ([]opportunity.Opportunity, error) {
	return s.Scrape(ctx, InternshipQuery(p))
}

func (s *InternshipScraper) Scrape(ctx context.Context, query string) ([]opportunity.Opportunity, error) {
	if s == nil {
		return nil, fmt.Errorf("nil scraper")
	}
	query = strings.TrimSpace(query)
	if query == "" {
		query = defaultInternshipQuery
	}
	full := fmt.Sprintf("%s internship %s apply", query, strconv.Itoa(s.now().Year()))

	opts := []colly.CollectorOption{}
	if host := hostFromURL(s.searchURL); host != "" {
		opts = append(opts, colly.AllowedDomains(host))
	}
	c := colly.NewCollector(opts...)
	c.SetRequestTimeout(20 * time.Second)

	type hit struct {
		title   string
		link    string
		snippet string
	}
	hits := make([]hit, 0)

	c.OnRequest(func(r *colly.Request) {
		for k, v := range httpHeaders() {
			r.Headers.Set(k, v)
		}
	})

	c.OnHTML(".result", func(e *colly.HTMLElement) {
		a := e.DOM.Find("a.result__a").First()
		href, _ := a.Attr("href")
		hits = append(hits, hit{
			title:   collapseSpaces(a.Text()),
			link:    resultLink(href),
			snippet: collapseSpaces(e.DOM.Find(".result__snippet").First().Text()),
		})
	})

	var reqErr error
	c.OnError(func(r *colly.Response, err error) {
		reqErr = err
	})

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	s.logger.Info("searching internships", zap.String("query", full))
	if err := c.Post(s.searchURL, map[string]string{"q": full}); err != nil {
		return nil, err
	}
	c.Wait()
	if reqErr != nil {
		return nil, reqErr
	}

	seen := map[string]struct{}{}
	out := make([]opportunity.Opportunity, 0, maxResults)
	for _, h := range hits {
		if len(out) >= maxResults {
			break
		}
		if h.link == "" || !isJobLink(h.link) {
			continue
		}
		if _, ok := seen[h.link]; ok {
			continue
		}
		seen[h.link] = struct{}{}

		out = append(out, opportunity.Opportunity{
			Kind:        opportunity.KindInternship,
			Title:       pickNonEmpty(h.title, "Internship Opportunity"),
			Provider:    internshipProvider,
			Amount:      internshipAmount,
			URL:         h.link,
			Description: pickNonEmpty(h.snippet, "Click to view details."),
			MatchScore:  internshipScore,
			Tags:        []string{query},
			IsActive:    true,
		})
	}
	return out, nil
}

// resultLink unwraps the redirect links the search page emits
// (//duckduckgo.com/l/?uddg=<target>).
func resultLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return strings.TrimSpace(target)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return href
}

func isJobLink(link string) bool {
	l := strings.ToLower(link)
	for _, m := range internshipLinkMarkers {
		if strings.Contains(l, m) {
			return true
		}
	}
	return false
}
