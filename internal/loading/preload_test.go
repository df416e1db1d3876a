package loading

import (
	"context"
	"testing"
	"time"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

func TestPreload_PartialFailure(t *testing.T) {
	binary := newFakeBinary()
	binary.serve("city_scenes/paris.jpg", []byte("a"))
	binary.serve("city_scenes/cairo.jpg", []byte("b"))
	binary.serve("covers/title_screen.jpg", []byte("c"))
	l, _ := newTestLoader(binary, Deps{})

	descriptors := []domain.ResourceDescriptor{
		{ID: "city_scenes/paris.jpg", Type: domain.TypeCityScene},
		{ID: "city_scenes/cairo.jpg", Type: domain.TypeCityScene},
		{ID: "covers/title_screen.jpg", Type: domain.TypeCover},
		{ID: "maps/missing.png", Type: domain.TypeMap},
		{ID: "characters/missing.png", Type: domain.TypePortrait},
	}

	result := l.Preload(context.Background(), descriptors)

	want := domain.PreloadResult{SuccessCount: 3, FailureCount: 2, Total: 5}
	if result != want {
		t.Errorf("result = %+v, want %+v", result, want)
	}
}

func TestPreload_EmptyBatch(t *testing.T) {
	l, _ := newTestLoader(newFakeBinary(), Deps{})
	result := l.Preload(context.Background(), nil)
	if result.Total != 0 || result.SuccessCount != 0 || result.FailureCount != 0 {
		t.Errorf("result = %+v, want all zero", result)
	}
}

func TestPreload_WarmsCache(t *testing.T) {
	binary := newFakeBinary()
	binary.serve("covers/title_screen.jpg", []byte("cover"))
	l, _ := newTestLoader(binary, Deps{})
	ctx := context.Background()

	l.Preload(ctx, []domain.ResourceDescriptor{
		{ID: "covers/title_screen.jpg", Type: domain.TypeCover},
	})

	// A later load is served from cache.
	res, err := l.Load(ctx, "covers/title_screen.jpg", domain.TypeCover, DefaultLoadOptions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if string(res.Data) != "cover" {
		t.Error("unexpected bytes")
	}
	if got := binary.callCount("covers/title_screen.jpg"); got != 1 {
		t.Errorf("transport called %d times, want 1", got)
	}
}

func TestPreloadLanguages_CacheHitShortCircuits(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	data.serve("game_data.fr.json", dataset("fr"))
	l, _ := newTestLoader(binary, Deps{Data: data})
	ctx := context.Background()

	// "es" is already cached; only "fr" should hit the network.
	if err := l.Locales().Put(ctx, "es", dataset("es"), time.Hour); err != nil {
		t.Fatalf("Put: %v", err)
	}

	result := l.PreloadLanguages(ctx, []string{"es", "fr"})

	want := domain.PreloadResult{SuccessCount: 2, FailureCount: 0, Total: 2}
	if result != want {
		t.Errorf("result = %+v, want %+v", result, want)
	}
	if got := data.callCount("game_data.json"); got != 0 {
		t.Errorf("cached language hit the network %d times", got)
	}
	if got := data.callCount("game_data.fr.json"); got != 1 {
		t.Errorf("fr fetched %d times, want 1", got)
	}
}

func TestPreloadLanguages_PlaceholderCountsAsFailure(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	l, _ := newTestLoader(binary, Deps{Data: data})

	result := l.PreloadLanguages(context.Background(), []string{"fr", "de"})

	if result.FailureCount != 2 || result.SuccessCount != 0 {
		t.Errorf("result = %+v, want 2 failures", result)
	}
}
