package loading

import (
	"context"
	"sync"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

// Preload launches every descriptor's load concurrently and waits for all
// of them to settle. One failure never aborts the batch: preloading is
// advisory, so a failed item is counted and otherwise dropped.
func (l *Loader) Preload(ctx context.Context, descriptors []domain.ResourceDescriptor) domain.PreloadResult {
	result := domain.PreloadResult{Total: len(descriptors)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, desc := range descriptors {
		wg.Add(1)
		go func(desc domain.ResourceDescriptor) {
			defer wg.Done()

			opts := DefaultLoadOptions()
			opts.ShowLoadingState = false
			// No fallback: a preload that would only warm a placeholder
			// is a failure, not a success.
			opts.FallbackOnError = false

			_, err := l.Load(ctx, desc.ID, desc.Type, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.FailureCount++
			} else {
				result.SuccessCount++
			}
		}(desc)
	}
	wg.Wait()

	l.log.Info("Preload settled",
		"total", result.Total, "loaded", result.SuccessCount, "failed", result.FailureCount)
	return result
}

// PreloadLanguages warms the locale cache for a set of language codes.
// A code already cached within its TTL skips the network entirely; a code
// that ends on the placeholder dataset counts as a failure.
func (l *Loader) PreloadLanguages(ctx context.Context, languageCodes []string) domain.PreloadResult {
	result := domain.PreloadResult{Total: len(languageCodes)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, code := range languageCodes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()

			opts := DefaultDataLoadOptions()
			opts.ShowLoadingState = false

			data, err := l.LoadGameData(ctx, code, opts)

			mu.Lock()
			defer mu.Unlock()
			if err != nil || data.Degraded {
				result.FailureCount++
			} else {
				result.SuccessCount++
			}
		}(code)
	}
	wg.Wait()

	l.log.Info("Language preload settled",
		"total", result.Total, "loaded", result.SuccessCount, "failed", result.FailureCount)
	return result
}
