package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"skillsync/internal/domain/opportunity"
	"skillsync/internal/infrastructure/cache"
	"skillsync/internal/repository/memory"
	"skillsync/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScholarships struct {
	calls atomic.Int32
	last  scraper.Profile
}

func (f *fakeScholarships) Scan(_ context.Context, p scraper.Profile) []opportunity.Opportunity {
	f.calls.Add(1)
	f.last = p
	return []opportunity.Opportunity{{
		Kind:       opportunity.KindScholarship,
		Title:      "STEM Award",
		Provider:   "Scholarships.com",
		URL:        "https://www.scholarships.com/stem-award",
		MatchScore: 90,
		IsActive:   true,
	}}
}

type fakeInternships struct {
	calls atomic.Int32
	err   error
}

func (f *fakeInternships) Scan(context.Context, scraper.Profile) ([]opportunity.Opportunity, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return []opportunity.Opportunity{{
		Kind:     opportunity.KindInternship,
		Title:    "Go Intern",
		Provider: "Web Search",
		URL:      "https://careers.example.com/go-intern",
		IsActive: true,
	}}, nil
}

type oppFixture struct {
	uc     *Opportunities
	repo   *memory.OpportunityRepository
	cache  *cache.Memory
	sch    *fakeScholarships
	intern *fakeInternships
	events *recordingPublisher
}

func newOppFixture() oppFixture {
	f := oppFixture{
		repo:   memory.NewOpportunityRepository(),
		cache:  cache.NewMemory(time.Minute),
		sch:    &fakeScholarships{},
		intern: &fakeInternships{},
		events: &recordingPublisher{},
	}
	f.uc = NewOpportunityUsecase(OpportunityDeps{
		Repo:         f.repo,
		Scholarships: f.sch,
		Internships:  f.intern,
		Cache:        f.cache,
		CacheTTL:     time.Minute,
		Events:       f.events,
	})
	return f
}

var annProfile = ScanProfile{Major: " Computer Science ", GPA: 3.6, Skills: []string{"Go", "", "SQL"}}

func TestScanScholarships_StoresCachesAndPublishes(t *testing.T) {
	f := newOppFixture()
	ctx := context.Background()

	items, err := f.uc.ScanScholarships(ctx, annProfile)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.NotEqual(t, "", items[0].ID.String())
	assert.Equal(t, "Computer Science", f.sch.last.Major)
	assert.Equal(t, []string{"Go", "SQL"}, f.sch.last.Skills)

	again, err := f.uc.ScanScholarships(ctx, ScanProfile{Major: "computer  science", GPA: 3.6, Skills: []string{"go", "sql"}})
	require.NoError(t, err)
	require.Len(t, again, 1)
	assert.Equal(t, items[0].ID, again[0].ID)
	assert.EqualValues(t, 1, f.sch.calls.Load())

	listed, err := f.uc.List(ctx, opportunity.KindScholarship)
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	assert.Equal(t, []string{EventOpportunitiesUpdated}, f.events.names())
	assert.Equal(t, "scholarship", f.events.events[0].payload["kind"])

	ok, err := f.cache.SetIfNotExists(ctx, ScanLockKey(ScanCacheKey(opportunity.KindScholarship, annProfile)), "1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "lock is released after the scan")
}

func TestScan_LockHeldFallsBackAfterWait(t *testing.T) {
	f := newOppFixture()
	f.uc.lockWait = 10 * time.Millisecond
	ctx := context.Background()

	key := ScanCacheKey(opportunity.KindInternship, annProfile)
	ok, err := f.cache.SetIfNotExists(ctx, ScanLockKey(key), "1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	items, err := f.uc.ScanInternships(ctx, annProfile)
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.EqualValues(t, 1, f.intern.calls.Load())
}

func TestScan_LockHeldUsesResultOfOtherScan(t *testing.T) {
	f := newOppFixture()
	f.uc.lockWait = 2 * time.Second
	ctx := context.Background()

	key := ScanCacheKey(opportunity.KindInternship, annProfile)
	ok, err := f.cache.SetIfNotExists(ctx, ScanLockKey(key), "1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	go func() {
		time.Sleep(50 * time.Millisecond)
		_ = f.cache.SetJSON(ctx, key, []opportunity.Opportunity{{Kind: opportunity.KindInternship, Title: "From peer"}}, time.Minute)
	}()

	items, err := f.uc.ScanInternships(ctx, annProfile)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "From peer", items[0].Title)
	assert.EqualValues(t, 0, f.intern.calls.Load())
}

func TestScanInternships_Failure(t *testing.T) {
	f := newOppFixture()
	f.intern.err = errors.New("search blocked")

	_, err := f.uc.ScanInternships(context.Background(), annProfile)
	assert.ErrorIs(t, err, ErrInternal)
	assert.Empty(t, f.events.names())

	_, hit, _ := f.cache.GetString(context.Background(), ScanCacheKey(opportunity.KindInternship, annProfile))
	assert.False(t, hit)
}

func TestScanAll(t *testing.T) {
	f := newOppFixture()

	res, err := f.uc.ScanAll(context.Background(), annProfile)
	require.NoError(t, err)
	assert.Len(t, res.Scholarships, 1)
	assert.Len(t, res.Internships, 1)
	assert.Len(t, f.events.names(), 2)

	f2 := newOppFixture()
	f2.intern.err = errors.New("boom")
	_, err = f2.uc.ScanAll(context.Background(), annProfile)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestScan_WithoutCache(t *testing.T) {
	f := newOppFixture()
	f.uc.cache = nil

	_, err := f.uc.ScanScholarships(context.Background(), annProfile)
	require.NoError(t, err)
	_, err = f.uc.ScanScholarships(context.Background(), annProfile)
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.sch.calls.Load())
}

func TestScanCacheKey(t *testing.T) {
	a := ScanCacheKey(opportunity.KindScholarship, ScanProfile{Major: "CS", Skills: []string{"Go", "SQL"}})
	b := ScanCacheKey(opportunity.KindScholarship, ScanProfile{Major: " cs ", Skills: []string{"go", " ", "sql"}})
	c := ScanCacheKey(opportunity.KindScholarship, ScanProfile{Major: "CS", Skills: []string{"SQL", "Go"}})
	d := ScanCacheKey(opportunity.KindInternship, ScanProfile{Major: "CS", Skills: []string{"Go", "SQL"}})

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
	assert.Contains(t, ScanLockKey(a), "opportunities:lock:")
}
