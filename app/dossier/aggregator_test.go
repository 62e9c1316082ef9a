package dossier

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	calls  int
	result AuthorSearchResult
	err    error
}

func (f *fakeSource) AuthorArticles(ctx context.Context, reporterName string, limit int) (AuthorSearchResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeAssistant struct {
	calls    int
	summary  string
	beat     string
	err      error
	bio      string
	bioErr   error
	bioCalls int
}

func (f *fakeAssistant) Summarize(ctx context.Context, headline, outlet string) (string, string, error) {
	f.calls++
	return f.summary, f.beat, f.err
}

func (f *fakeAssistant) ComposeBio(ctx context.Context, reporterName string, articles []Article) (string, error) {
	f.bioCalls++
	return f.bio, f.bioErr
}

type fakeProfiles struct {
	profiles []Profile
}

func (f *fakeProfiles) TouchProfile(p Profile) error {
	f.profiles = append(f.profiles, p)
	return nil
}

type fakeStore struct {
	dossiers   map[string]*Dossier
	computedAt map[string]time.Time
	getErr     error
	putErr     error
	puts       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		dossiers:   make(map[string]*Dossier),
		computedAt: make(map[string]time.Time),
	}
}

func (f *fakeStore) Get(key string) (*Dossier, time.Time, error) {
	if f.getErr != nil {
		return nil, time.Time{}, f.getErr
	}
	return f.dossiers[key], f.computedAt[key], nil
}

func (f *fakeStore) Put(key string, d *Dossier) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.puts++
	f.dossiers[key] = d
	f.computedAt[key] = d.ComputedAt
	return nil
}

func testOptions() Options {
	return Options{ArticleLimit: 100, Staleness: 24 * time.Hour, MinShare: 2}
}

func TestGetDossierInvalidName(t *testing.T) {
	agg := NewAggregator(&fakeSource{}, &fakeAssistant{}, newFakeStore(), nil, nil, testOptions())

	_, err := agg.GetDossier(context.Background(), "   ", false)
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestGetDossierCacheHitSkipsSource(t *testing.T) {
	store := newFakeStore()
	cached := &Dossier{ReporterName: "Jane Doe", ComputedAt: time.Now().UTC()}
	store.dossiers["jane doe"] = cached
	store.computedAt["jane doe"] = cached.ComputedAt

	src := &fakeSource{}
	agg := NewAggregator(src, &fakeAssistant{}, store, nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Jane  Doe", false)
	require.NoError(t, err)

	assert.Same(t, cached, d)
	assert.Equal(t, 0, src.calls)
}

func TestGetDossierStaleCacheRecomputes(t *testing.T) {
	store := newFakeStore()
	stale := time.Now().UTC().Add(-48 * time.Hour)
	store.dossiers["jane doe"] = &Dossier{ReporterName: "Jane Doe", ComputedAt: stale}
	store.computedAt["jane doe"] = stale

	src := &fakeSource{result: AuthorSearchResult{Articles: []Article{
		article("Daily", "2026-08-01"),
	}}}
	agg := NewAggregator(src, &fakeAssistant{err: errors.New("down")}, store, nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Jane Doe", false)
	require.NoError(t, err)

	assert.Equal(t, 1, src.calls)
	assert.Equal(t, 1, store.puts)
	assert.Equal(t, "Daily", d.CurrentOutlet)
}

func TestGetDossierForceRefreshBypassesCache(t *testing.T) {
	store := newFakeStore()
	fresh := time.Now().UTC()
	store.dossiers["jane doe"] = &Dossier{ReporterName: "Jane Doe", ComputedAt: fresh}
	store.computedAt["jane doe"] = fresh

	src := &fakeSource{}
	agg := NewAggregator(src, &fakeAssistant{}, store, nil, nil, testOptions())

	_, err := agg.GetDossier(context.Background(), "Jane Doe", true)
	require.NoError(t, err)
	assert.Equal(t, 1, src.calls)
}

func TestGetDossierSourceFailureLeavesCacheAlone(t *testing.T) {
	store := newFakeStore()
	src := &fakeSource{err: fmt.Errorf("search: %w", ErrSourceUnavailable)}
	agg := NewAggregator(src, &fakeAssistant{}, store, nil, nil, testOptions())

	_, err := agg.GetDossier(context.Background(), "Jane Doe", false)

	assert.ErrorIs(t, err, ErrSourceUnavailable)
	assert.Equal(t, 0, store.puts)
}

func TestGetDossierZeroArticlesIsValid(t *testing.T) {
	store := newFakeStore()
	agg := NewAggregator(&fakeSource{}, &fakeAssistant{}, store, nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Unknown Person", false)
	require.NoError(t, err)

	assert.Empty(t, d.Articles)
	assert.Empty(t, d.OutletHistory)
	assert.Empty(t, d.CurrentOutlet)
	assert.False(t, d.OutletChangeDetected)
	assert.False(t, d.ComputedAt.IsZero())
	// Even an empty dossier is cached.
	assert.Equal(t, 1, store.puts)
}

func TestGetDossierAssistantFailureFallsBackToKeywords(t *testing.T) {
	src := &fakeSource{result: AuthorSearchResult{Articles: []Article{
		{Headline: "Appeals court revives lawsuit", Outlet: "Daily", PublishedAt: time.Now(), URL: "https://example.com/1"},
	}}}
	agg := NewAggregator(src, &fakeAssistant{err: errors.New("quota")}, newFakeStore(), nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Jane Doe", false)
	require.NoError(t, err)

	require.Len(t, d.Articles, 1)
	assert.Empty(t, d.Articles[0].Summary)
	assert.Equal(t, "Legal", d.Articles[0].Beat)
}

func TestGetDossierAssistantBeatPreferred(t *testing.T) {
	src := &fakeSource{result: AuthorSearchResult{Articles: []Article{
		{Headline: "Some headline", Outlet: "Daily", PublishedAt: time.Now(), URL: "https://example.com/1"},
	}}}
	assistant := &fakeAssistant{summary: "One sentence.", beat: "Antitrust"}
	agg := NewAggregator(src, assistant, newFakeStore(), nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Jane Doe", false)
	require.NoError(t, err)

	require.Len(t, d.Articles, 1)
	assert.Equal(t, "One sentence.", d.Articles[0].Summary)
	assert.Equal(t, "Antitrust", d.Articles[0].Beat)
	assert.Equal(t, []BeatEntry{{Beat: "Antitrust", Count: 1}}, d.BeatHistory)
}

func TestGetDossierIncludesAssistantBio(t *testing.T) {
	src := &fakeSource{result: AuthorSearchResult{Articles: []Article{
		article("Daily", "2026-08-01"),
	}}}
	assistant := &fakeAssistant{summary: "One sentence.", beat: "Legal", bio: "Covers courts for Daily."}
	profiles := &fakeProfiles{}
	agg := NewAggregator(src, assistant, newFakeStore(), profiles, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Jane Doe", false)
	require.NoError(t, err)

	assert.Equal(t, "Covers courts for Daily.", d.Bio)
	require.Len(t, profiles.profiles, 1)
	assert.Equal(t, "Covers courts for Daily.", profiles.profiles[0].Bio)
}

func TestGetDossierBioFailureLeavesBioEmpty(t *testing.T) {
	src := &fakeSource{result: AuthorSearchResult{Articles: []Article{
		article("Daily", "2026-08-01"),
	}}}
	assistant := &fakeAssistant{summary: "One sentence.", beat: "Legal", bioErr: errors.New("quota")}
	agg := NewAggregator(src, assistant, newFakeStore(), nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Jane Doe", false)
	require.NoError(t, err)
	assert.Empty(t, d.Bio)
}

func TestGetDossierNoArticlesSkipsBio(t *testing.T) {
	assistant := &fakeAssistant{bio: "should not appear"}
	agg := NewAggregator(&fakeSource{}, assistant, newFakeStore(), nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Unknown Person", false)
	require.NoError(t, err)

	assert.Empty(t, d.Bio)
	assert.Equal(t, 0, assistant.bioCalls)
}

func TestGetDossierCacheWriteFailureStillReturns(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("disk full")
	src := &fakeSource{result: AuthorSearchResult{Articles: []Article{
		article("Daily", "2026-08-01"),
	}}}
	agg := NewAggregator(src, &fakeAssistant{err: errors.New("down")}, store, nil, nil, testOptions())

	d, err := agg.GetDossier(context.Background(), "Jane Doe", false)
	require.NoError(t, err)
	assert.Equal(t, "Daily", d.CurrentOutlet)
}
