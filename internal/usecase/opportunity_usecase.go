package usecase

import (
	"context"
	"strings"
	"time"

	"skillsync/internal/domain/opportunity"
	"skillsync/internal/scraper"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	scanLockTTL      = 2 * time.Minute
	scanLockWait     = 5 * time.Second
	scanPollInterval = 250 * time.Millisecond
)

type ScanProfile struct {
	Major  string
	GPA    float64
	Skills []string
}

func (p ScanProfile) scraperProfile() scraper.Profile {
	return scraper.Profile{Major: strings.TrimSpace(p.Major), GPA: p.GPA, Skills: cleanList(p.Skills)}
}

type ScholarshipScanner interface {
	Scan(ctx context.Context, p scraper.Profile) []opportunity.Opportunity
}

type InternshipScanner interface {
	Scan(ctx context.Context, p scraper.Profile) ([]opportunity.Opportunity, error)
}

type ScanAllResult struct {
	Scholarships []opportunity.Opportunity
	Internships  []opportunity.Opportunity
}

type OpportunityUsecase interface {
	List(ctx context.Context, kind opportunity.Kind) ([]opportunity.Opportunity, error)
	ScanScholarships(ctx context.Context, p ScanProfile) ([]opportunity.Opportunity, error)
	ScanInternships(ctx context.Context, p ScanProfile) ([]opportunity.Opportunity, error)
	ScanAll(ctx context.Context, p ScanProfile) (ScanAllResult, error)
}

type OpportunityDeps struct {
	Repo         opportunity.Repository
	Scholarships ScholarshipScanner
	Internships  InternshipScanner
	Cache        ScanCache
	CacheTTL     time.Duration
	Events       EventPublisher
	Logger       *zap.Logger
}

type Opportunities struct {
	repo         opportunity.Repository
	scholarships ScholarshipScanner
	internships  InternshipScanner
	cache        ScanCache
	ttl          time.Duration
	events       EventPublisher
	logger       *zap.Logger

	lockWait time.Duration
}

func NewOpportunityUsecase(d OpportunityDeps) *Opportunities {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Opportunities{
		repo:         d.Repo,
		scholarships: d.Scholarships,
		internships:  d.Internships,
		cache:        d.Cache,
		ttl:          d.CacheTTL,
		events:       publisherOrNop(d.Events),
		logger:       logger.Named("opportunities"),
		lockWait:     scanLockWait,
	}
}

func (u *Opportunities) List(ctx context.Context, kind opportunity.Kind) ([]opportunity.Opportunity, error) {
	items, err := u.repo.ListByKind(ctx, kind)
	if err != nil {
		return nil, ErrInternal
	}
	return items, nil
}

func (u *Opportunities) ScanScholarships(ctx context.Context, p ScanProfile) ([]opportunity.Opportunity, error) {
	return u.scan(ctx, opportunity.KindScholarship, p, func(ctx context.Context) ([]opportunity.Opportunity, error) {
		return u.scholarships.Scan(ctx, p.scraperProfile()), nil
	})
}

func (u *Opportunities) ScanInternships(ctx context.Context, p ScanProfile) ([]opportunity.Opportunity, error) {
	return u.scan(ctx, opportunity.KindInternship, p, func(ctx context.Context) ([]opportunity.Opportunity, error) {
		return u.internships.Scan(ctx, p.scraperProfile())
	})
}

// ScanAll runs both scans concurrently. A failure in either cancels the
// other.
func (u *Opportunities) ScanAll(ctx context.Context, p ScanProfile) (ScanAllResult, error) {
	var out ScanAllResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := u.ScanScholarships(gctx, p)
		out.Scholarships = items
		return err
	})
	g.Go(func() error {
		items, err := u.ScanInternships(gctx, p)
		out.Internships = items
		return err
	})

	if err := g.Wait(); err != nil {
		return ScanAllResult{}, err
	}
	return out, nil
}

func (u *Opportunities) scan(ctx context.Context, kind opportunity.Kind, p ScanProfile, run func(context.Context) ([]opportunity.Opportunity, error)) ([]opportunity.Opportunity, error) {
	cacheKey := ScanCacheKey(kind, p)
	lockKey := ScanLockKey(cacheKey)
	log := u.logger.With(zap.String("kind", string(kind)), zap.String("cache_key", cacheKey))

	if u.cache != nil {
		var cached []opportunity.Opportunity
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			log.Debug("scan cache hit")
			return cached, nil
		}

		ok, err := u.cache.SetIfNotExists(ctx, lockKey, "1", scanLockTTL)
		switch {
		case err == nil && ok:
			defer func() { _ = u.cache.Delete(context.Background(), lockKey) }()
		case err == nil && !ok:
			if cached, hit := u.waitForCache(ctx, cacheKey); hit {
				log.Debug("scan cache filled while waiting on lock")
				return cached, nil
			}
			log.Info("scan lock wait fallback")
		}
	}

	found, err := run(ctx)
	if err != nil {
		log.Warn("scan failed", zap.Error(err))
		return nil, ErrInternal
	}

	stored, err := u.repo.Upsert(ctx, found)
	if err != nil {
		log.Error("store scan results failed", zap.Error(err))
		return nil, ErrInternal
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, stored, u.ttl); err != nil {
			log.Warn("scan cache write failed", zap.Error(err))
		}
	}

	u.events.Publish(EventOpportunitiesUpdated, map[string]any{
		"kind":  string(kind),
		"count": len(stored),
	})
	log.Info("scan finished", zap.Int("count", len(stored)))
	return stored, nil
}

func (u *Opportunities) waitForCache(ctx context.Context, key string) ([]opportunity.Opportunity, bool) {
	deadline := time.Now().Add(u.lockWait)
	t := time.NewTicker(scanPollInterval)
	defer t.Stop()

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, false
		case <-t.C:
		}
		var cached []opportunity.Opportunity
		if hit, err := u.cache.GetJSON(ctx, key, &cached); err == nil && hit {
			return cached, true
		}
	}
	return nil, false
}
