package loading

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/events"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/cache"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/fallback"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/metrics"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/retry"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/report"
)

// BinaryFetcher fetches raw asset bytes by identifier.
type BinaryFetcher interface {
	Fetch(ctx context.Context, resourceID string) ([]byte, error)
}

// DataFetcher fetches a structured localized dataset by source identifier.
type DataFetcher interface {
	FetchGameData(ctx context.Context, source string) (*domain.GameData, error)
}

// PolicyHints are the network monitor's read-only predicates.
type PolicyHints interface {
	ShouldUseAggressiveCaching() bool
	ShouldReduceAssetQuality() bool
}

// noHints is the default when no monitor is wired.
type noHints struct{}

func (noHints) ShouldUseAggressiveCaching() bool { return false }
func (noHints) ShouldReduceAssetQuality() bool   { return false }

// LoadOptions configures a single asset load. Every field has a default;
// use DefaultLoadOptions and override what you need.
type LoadOptions struct {
	// Timeout bounds one attempt, not the whole retry sequence.
	// Default 10s.
	Timeout time.Duration
	// ShowLoadingState broadcasts lifecycle events. Default true.
	ShowLoadingState bool
	// RetryOnFailure enables the backoff retry cycle. Default true.
	RetryOnFailure bool
	// FallbackOnError resolves the fallback chain instead of raising a
	// terminal error once retries are exhausted. Default true.
	FallbackOnError bool
}

// DefaultLoadOptions returns the documented defaults.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{
		Timeout:          10 * time.Second,
		ShowLoadingState: true,
		RetryOnFailure:   true,
		FallbackOnError:  true,
	}
}

func (o LoadOptions) withDefaults() LoadOptions {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	return o
}

// Config holds the loader's tunables.
type Config struct {
	// AssetPolicy is the retry profile for binary assets.
	AssetPolicy retry.Policy
	// DataMaxRetries bounds retries on the data path unless a call
	// overrides it.
	DataMaxRetries int
	// DataTTL bounds locale cache entries.
	DataTTL time.Duration
	// DefaultLanguage is the fallback language code.
	DefaultLanguage string
}

// Deps are the loader's collaborators. Binary and Data are required;
// everything else has an in-process default or is optional.
type Deps struct {
	Binary      BinaryFetcher
	Data        DataFetcher
	Resources   *cache.ResourceStore
	Locales     cache.LocaleCache
	Resolver    *fallback.Resolver
	Hints       PolicyHints
	Events      *events.Broadcaster
	Reporter    report.Reporter
	Preferences storage.PreferenceRepository
	Log         *slog.Logger
}

// Loader orchestrates resource loads: cache consult, bounded attempt,
// retry with backoff, and fallback resolution. Callers always get
// something usable when fallback is enabled.
type Loader struct {
	binary      BinaryFetcher
	data        DataFetcher
	resources   *cache.ResourceStore
	locales     cache.LocaleCache
	resolver    *fallback.Resolver
	assetPolicy retry.Policy
	dataRetries int
	dataTTL     time.Duration
	defaultLang string
	hints       PolicyHints
	broadcaster *events.Broadcaster
	reporter    report.Reporter
	prefs       storage.PreferenceRepository
	log         *slog.Logger

	// Concurrent loads of one key coalesce into one in-flight attempt.
	group singleflight.Group

	sleep func(ctx context.Context, d time.Duration) error

	mu       sync.Mutex
	attempts map[string]int
}

// New creates a loader. Zero-value config fields get the documented
// defaults.
func New(cfg Config, deps Deps) *Loader {
	if cfg.AssetPolicy == (retry.Policy{}) {
		cfg.AssetPolicy = retry.AssetPolicy()
	}
	if cfg.DataMaxRetries < 0 {
		cfg.DataMaxRetries = 0
	}
	if cfg.DataTTL <= 0 {
		cfg.DataTTL = cache.DefaultLocaleTTL
	}
	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = domain.DefaultLanguage
	}
	if deps.Resources == nil {
		deps.Resources = cache.NewResourceStore()
	}
	if deps.Locales == nil {
		deps.Locales = cache.NewMemoryLocaleCache()
	}
	if deps.Resolver == nil {
		deps.Resolver = fallback.NewResolver()
	}
	if deps.Hints == nil {
		deps.Hints = noHints{}
	}
	if deps.Log == nil {
		deps.Log = slog.Default()
	}

	return &Loader{
		binary:      deps.Binary,
		data:        deps.Data,
		resources:   deps.Resources,
		locales:     deps.Locales,
		resolver:    deps.Resolver,
		assetPolicy: cfg.AssetPolicy,
		dataRetries: cfg.DataMaxRetries,
		dataTTL:     cfg.DataTTL,
		defaultLang: cfg.DefaultLanguage,
		hints:       deps.Hints,
		broadcaster: deps.Events,
		reporter:    deps.Reporter,
		prefs:       deps.Preferences,
		log:         deps.Log,
		sleep:       sleepCtx,
		attempts:    make(map[string]int),
	}
}

// Resources exposes the resource record store, e.g. for health reporting
// and test teardown.
func (l *Loader) Resources() *cache.ResourceStore { return l.resources }

// Locales exposes the localized-data cache.
func (l *Loader) Locales() cache.LocaleCache { return l.locales }

// Load fetches a resource, retrying and degrading as configured. With
// FallbackOnError set (the default) it never returns an error other than
// context cancellation: the fallback chain always terminates in an inline
// placeholder.
func (l *Loader) Load(ctx context.Context, resourceID string, typ domain.ResourceType, opts LoadOptions) (*domain.Resource, error) {
	opts = opts.withDefaults()

	if rec, ok := l.resources.Get(resourceID); ok && rec.State == domain.StateLoaded {
		metrics.CacheHits.WithLabelValues("resource").Inc()
		return &domain.Resource{ID: resourceID, Type: typ, Data: rec.Value}, nil
	}
	metrics.CacheMisses.WithLabelValues("resource").Inc()

	v, err, _ := l.group.Do(resourceID, func() (any, error) {
		return l.loadCycle(ctx, resourceID, typ, opts)
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Resource), nil
}

func (l *Loader) loadCycle(ctx context.Context, id string, typ domain.ResourceType, opts LoadOptions) (*domain.Resource, error) {
	// A coalesced flight that just finished may have filled the cache.
	if rec, ok := l.resources.Get(id); ok {
		if rec.State == domain.StateLoaded {
			return &domain.Resource{ID: id, Type: typ, Data: rec.Value}, nil
		}
		// Known-bad key: without retries, or under a degraded link,
		// resolve the fallback without touching the network again.
		if rec.State == domain.StateFailed &&
			(!opts.RetryOnFailure || l.hints.ShouldUseAggressiveCaching()) {
			if !opts.FallbackOnError {
				return nil, &domain.TerminalAssetError{
					ResourceID: id,
					Err:        &domain.TransientError{Op: "cached failure for " + id},
				}
			}
			return l.resolveFallback(ctx, id, typ, opts), nil
		}
	}

	l.setAttempts(id, 0)
	var lastErr error
	for attempt := 0; ; attempt++ {
		if opts.ShowLoadingState {
			l.publish(id, domain.StatePending)
		}

		data, err := l.attemptFetch(ctx, id, typ, opts.Timeout)
		if err == nil {
			l.resources.Put(id, domain.StateLoaded, data)
			l.clearAttempts(id)
			if opts.ShowLoadingState {
				l.publish(id, domain.StateLoaded)
			}
			metrics.LoadsTotal.WithLabelValues(string(typ), "loaded").Inc()
			return &domain.Resource{ID: id, Type: typ, Data: data}, nil
		}

		lastErr = err
		l.setAttempts(id, attempt+1)
		l.log.Warn("Asset fetch failed", "resource", id, "attempt", attempt, "error", err)

		if !opts.RetryOnFailure || !l.assetPolicy.ShouldRetry(attempt) {
			break
		}
		metrics.RetriesTotal.WithLabelValues(string(typ)).Inc()
		if err := l.sleep(ctx, l.assetPolicy.Delay(attempt)); err != nil {
			return nil, err
		}
	}

	attempts := l.attemptCount(id)
	l.resources.MarkFailed(id)
	if opts.ShowLoadingState {
		l.publish(id, domain.StateFailed)
	}
	metrics.LoadsTotal.WithLabelValues(string(typ), "failed").Inc()

	l.report(report.CategoryAsset, lastErr, report.Context{
		AssetType: string(typ),
		AssetPath: id,
		Retry: func(rctx context.Context) error {
			return l.replayAsset(rctx, id, opts.Timeout)
		},
	})

	if !opts.FallbackOnError {
		return nil, &domain.TerminalAssetError{ResourceID: id, Attempts: attempts, Err: lastErr}
	}
	return l.resolveFallback(ctx, id, typ, opts), nil
}

// replayAsset is the no-retry replay handed to the error reporter: one
// fresh attempt, cache updated on success.
func (l *Loader) replayAsset(ctx context.Context, id string, timeout time.Duration) error {
	data, err := l.fetchOnce(ctx, id, timeout)
	if err != nil {
		return err
	}
	l.resources.Put(id, domain.StateLoaded, data)
	l.clearAttempts(id)
	l.publish(id, domain.StateLoaded)
	return nil
}

// attemptFetch performs one bounded fetch. Under a poor link the
// reduced-quality variant is preferred, falling through to the original
// identifier within the same attempt.
func (l *Loader) attemptFetch(ctx context.Context, id string, typ domain.ResourceType, timeout time.Duration) ([]byte, error) {
	start := time.Now()
	if l.hints.ShouldReduceAssetQuality() {
		if data, err := l.fetchOnce(ctx, reducedVariant(id), timeout); err == nil {
			metrics.LoadLatency.WithLabelValues(string(typ)).Observe(time.Since(start).Seconds())
			return data, nil
		}
	}
	data, err := l.fetchOnce(ctx, id, timeout)
	if err != nil {
		return nil, err
	}
	metrics.LoadLatency.WithLabelValues(string(typ)).Observe(time.Since(start).Seconds())
	return data, nil
}

func (l *Loader) fetchOnce(ctx context.Context, id string, timeout time.Duration) ([]byte, error) {
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return l.binary.Fetch(actx, id)
}

// reducedVariant names the degraded-quality rendition of an asset.
func reducedVariant(id string) string { return "low/" + id }

// resolveFallback walks the category's chain: cached candidates win,
// fetchable candidates get one attempt each, and the inline terminal
// candidate guarantees a result without I/O.
func (l *Loader) resolveFallback(ctx context.Context, id string, typ domain.ResourceType, opts LoadOptions) *domain.Resource {
	category := fallback.Classify(id, typ)
	chain := l.resolver.Chain(category)

	for _, candidate := range chain {
		if len(candidate.Inline) > 0 {
			metrics.FallbacksServed.WithLabelValues(string(category)).Inc()
			metrics.LoadsTotal.WithLabelValues(string(typ), "fallback").Inc()
			return &domain.Resource{ID: id, Type: typ, Data: candidate.Inline, Placeholder: true}
		}
		if rec, ok := l.resources.Get(candidate.ID); ok && rec.State == domain.StateLoaded {
			metrics.FallbacksServed.WithLabelValues(string(category)).Inc()
			metrics.LoadsTotal.WithLabelValues(string(typ), "fallback").Inc()
			return &domain.Resource{ID: id, Type: typ, Data: rec.Value, Placeholder: true}
		}
		data, err := l.fetchOnce(ctx, candidate.ID, opts.Timeout)
		if err != nil {
			l.log.Debug("Fallback candidate failed", "resource", id, "candidate", candidate.ID, "error", err)
			continue
		}
		l.resources.Put(candidate.ID, domain.StateLoaded, data)
		metrics.FallbacksServed.WithLabelValues(string(category)).Inc()
		metrics.LoadsTotal.WithLabelValues(string(typ), "fallback").Inc()
		return &domain.Resource{ID: id, Type: typ, Data: data, Placeholder: true}
	}

	// Not reached: Register guarantees an inline terminal candidate.
	return &domain.Resource{ID: id, Type: typ, Placeholder: true}
}

func (l *Loader) publish(id string, state domain.LoadState) {
	if l.broadcaster == nil {
		return
	}
	l.broadcaster.Publish(domain.NewLoadingStateEvent(id, state))
}

// report forwards a terminal failure to the error reporter. Reporter
// failures stay here; they never reach the loader's callers.
func (l *Loader) report(category report.Category, err error, rctx report.Context) {
	if l.reporter == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			l.log.Error("Error reporter panicked", "category", category, "panic", r)
		}
	}()
	l.reporter.HandleError(category, err, rctx)
}

func (l *Loader) setAttempts(id string, n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.attempts[id] = n
}

func (l *Loader) attemptCount(id string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.attempts[id]
}

func (l *Loader) clearAttempts(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, id)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
