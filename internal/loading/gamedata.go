package loading

import (
	"context"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/metrics"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/loading/retry"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/report"
)

// DataLoadOptions configures a localized dataset load.
type DataLoadOptions struct {
	// Timeout bounds one attempt. Default 10s.
	Timeout time.Duration
	// MaxRetries bounds the retry cycle. Default is the loader's
	// configured data retry count; negative disables retries.
	MaxRetries int
	// CacheTTL bounds the locale cache entry. Default one hour.
	CacheTTL time.Duration
	// Default is the caller-supplied dataset used when every source
	// fails, before the built-in placeholder.
	Default *domain.GameData
	// ShowLoadingState broadcasts lifecycle events. Default true.
	ShowLoadingState bool
}

// DefaultDataLoadOptions returns the documented defaults.
func DefaultDataLoadOptions() DataLoadOptions {
	return DataLoadOptions{
		Timeout:          10 * time.Second,
		ShowLoadingState: true,
	}
}

func (l *Loader) dataDefaults(o DataLoadOptions) DataLoadOptions {
	if o.Timeout <= 0 {
		o.Timeout = 10 * time.Second
	}
	if o.MaxRetries == 0 {
		o.MaxRetries = l.dataRetries
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.CacheTTL <= 0 {
		o.CacheTTL = l.dataTTL
	}
	return o
}

// LoadGameData fetches the localized dataset for a language code. The
// degradation order on failure is: default-language source (one
// non-retrying attempt), caller-supplied default data, built-in
// placeholder. Apart from context cancellation this never returns an
// error: the caller always gets a dataset with at least one city.
func (l *Loader) LoadGameData(ctx context.Context, languageCode string, opts DataLoadOptions) (*domain.GameData, error) {
	opts = l.dataDefaults(opts)
	if languageCode == "" {
		languageCode = l.defaultLang
	}

	if data, ok := l.locales.Get(ctx, languageCode); ok {
		metrics.CacheHits.WithLabelValues("locale").Inc()
		return data, nil
	}
	metrics.CacheMisses.WithLabelValues("locale").Inc()

	source := domain.DataSource(languageCode)
	policy := retry.DataPolicy(opts.MaxRetries)

	data, lastErr := l.fetchDataWithRetry(ctx, source, policy, opts)
	if lastErr == nil {
		l.finishGameData(ctx, languageCode, data, opts)
		return data, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	metrics.LoadsTotal.WithLabelValues(string(domain.TypeData), "failed").Inc()
	l.report(report.CategoryData, lastErr, report.Context{
		AssetType:    string(domain.TypeData),
		AssetPath:    source,
		LanguageCode: languageCode,
		Retry: func(rctx context.Context) error {
			fetched, err := l.fetchDataOnce(rctx, source, opts.Timeout)
			if err != nil {
				return err
			}
			l.finishGameData(rctx, languageCode, fetched, opts)
			return nil
		},
	})

	if languageCode != l.defaultLang {
		fetched, err := l.fetchDataOnce(ctx, domain.DataSource(l.defaultLang), opts.Timeout)
		if err == nil {
			l.log.Info("Serving default-language data", "requested", languageCode, "served", l.defaultLang)
			l.finishGameData(ctx, l.defaultLang, fetched, opts)
			metrics.FallbacksServed.WithLabelValues("data").Inc()
			return fetched, nil
		}
		l.log.Warn("Default-language data also unavailable", "requested", languageCode, "error", err)
	}

	metrics.FallbacksServed.WithLabelValues("data").Inc()
	if opts.Default != nil {
		return opts.Default, nil
	}
	return domain.PlaceholderGameData(), nil
}

func (l *Loader) fetchDataWithRetry(ctx context.Context, source string, policy retry.Policy, opts DataLoadOptions) (*domain.GameData, error) {
	var lastErr error
	for attempt := 0; ; attempt++ {
		if opts.ShowLoadingState {
			l.publish(source, domain.StatePending)
		}

		data, err := l.fetchDataOnce(ctx, source, opts.Timeout)
		if err == nil {
			return data, nil
		}
		lastErr = err
		l.log.Warn("Data fetch failed", "source", source, "attempt", attempt, "error", err)

		// Parse errors route straight to the data-fallback chain.
		if !domain.Retryable(err) || !policy.ShouldRetry(attempt) {
			break
		}
		metrics.RetriesTotal.WithLabelValues(string(domain.TypeData)).Inc()
		if err := l.sleep(ctx, policy.Delay(attempt)); err != nil {
			return nil, err
		}
	}
	if opts.ShowLoadingState {
		l.publish(source, domain.StateFailed)
	}
	return nil, lastErr
}

func (l *Loader) fetchDataOnce(ctx context.Context, source string, timeout time.Duration) (*domain.GameData, error) {
	actx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return l.data.FetchGameData(actx, source)
}

// finishGameData records a successful dataset load: locale cache entry,
// persisted language preference, lifecycle event. Cache and preference
// failures are logged, never surfaced.
func (l *Loader) finishGameData(ctx context.Context, languageCode string, data *domain.GameData, opts DataLoadOptions) {
	if err := l.locales.Put(ctx, languageCode, data, opts.CacheTTL); err != nil {
		l.log.Warn("Failed to cache game data", "language", languageCode, "error", err)
	}
	if l.prefs != nil {
		if err := l.prefs.Set(ctx, domain.PreferenceKeyLanguage, languageCode); err != nil {
			l.log.Warn("Failed to persist language preference", "language", languageCode, "error", err)
		}
	}
	if opts.ShowLoadingState {
		l.publish(domain.DataSource(languageCode), domain.StateLoaded)
	}
	metrics.LoadsTotal.WithLabelValues(string(domain.TypeData), "loaded").Inc()
}
