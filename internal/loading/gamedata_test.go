package loading

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/infra/storage/memory"
)

// fakeData serves configured datasets by source name. Sources can be
// marked malformed to yield parse errors.
type fakeData struct {
	mu        sync.Mutex
	datasets  map[string]*domain.GameData
	malformed map[string]bool
	calls     map[string]int
}

func newFakeData() *fakeData {
	return &fakeData{
		datasets:  make(map[string]*domain.GameData),
		malformed: make(map[string]bool),
		calls:     make(map[string]int),
	}
}

func (f *fakeData) FetchGameData(_ context.Context, source string) (*domain.GameData, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[source]++
	if f.malformed[source] {
		return nil, &domain.DataParseError{Source: source, Err: errors.New("unexpected end of JSON input")}
	}
	if data, ok := f.datasets[source]; ok {
		return data, nil
	}
	return nil, &domain.TransientError{Op: "fetch data " + source, Err: errors.New("connection refused")}
}

func (f *fakeData) serve(source string, data *domain.GameData) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.datasets[source] = data
}

func (f *fakeData) callCount(source string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[source]
}

func dataset(lang string) *domain.GameData {
	return &domain.GameData{
		Language: lang,
		Cities: []domain.City{
			{Name: "Madrid", Clues: []string{"a clue"}, Connections: []string{"Paris"}},
		},
	}
}

func TestLoadGameData_CachesByLanguage(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	data.serve("game_data.fr.json", dataset("fr"))
	l, _ := newTestLoader(binary, Deps{Data: data})
	ctx := context.Background()

	first, err := l.LoadGameData(ctx, "fr", DefaultDataLoadOptions())
	if err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}
	second, err := l.LoadGameData(ctx, "fr", DefaultDataLoadOptions())
	if err != nil {
		t.Fatalf("LoadGameData (cached): %v", err)
	}

	if first.Language != "fr" || second.Language != "fr" {
		t.Error("unexpected dataset language")
	}
	if got := data.callCount("game_data.fr.json"); got != 1 {
		t.Errorf("transport called %d times, want 1", got)
	}
}

func TestLoadGameData_DefaultLanguageUsesUnqualifiedSource(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	data.serve("game_data.json", dataset("es"))
	l, _ := newTestLoader(binary, Deps{Data: data})

	got, err := l.LoadGameData(context.Background(), "es", DefaultDataLoadOptions())
	if err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}
	if got.Language != "es" {
		t.Errorf("language = %s, want es", got.Language)
	}
	if data.callCount("game_data.json") != 1 || data.callCount("game_data.es.json") != 0 {
		t.Error("default language must be served from game_data.json")
	}
}

func TestLoadGameData_FallsBackToDefaultLanguage(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	data.serve("game_data.json", dataset("es"))
	l, _ := newTestLoader(binary, Deps{Data: data})

	got, err := l.LoadGameData(context.Background(), "fr", DefaultDataLoadOptions())
	if err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}
	if got.Language != "es" {
		t.Errorf("language = %s, want the default-language dataset", got.Language)
	}
	if got.Degraded {
		t.Error("default-language dataset is real data, not the placeholder")
	}
	// The default-language fallback is a single non-retrying attempt.
	if calls := data.callCount("game_data.json"); calls != 1 {
		t.Errorf("default source fetched %d times, want 1", calls)
	}
}

func TestLoadGameData_CallerDefaultBeforePlaceholder(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	l, _ := newTestLoader(binary, Deps{Data: data})

	opts := DefaultDataLoadOptions()
	opts.Default = dataset("en")

	got, err := l.LoadGameData(context.Background(), "fr", opts)
	if err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}
	if got.Language != "en" {
		t.Errorf("language = %s, want the caller-supplied default", got.Language)
	}
}

func TestLoadGameData_PlaceholderNeverFails(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	l, _ := newTestLoader(binary, Deps{Data: data})

	got, err := l.LoadGameData(context.Background(), "fr", DefaultDataLoadOptions())
	if err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}
	if !got.Degraded {
		t.Error("expected the built-in placeholder dataset")
	}
	if len(got.Cities) == 0 {
		t.Fatal("placeholder dataset has no entry point")
	}
	city := got.Cities[0]
	if city.Name == "" || len(city.Clues) == 0 || len(city.Connections) == 0 {
		t.Errorf("placeholder city is not self-explanatory: %+v", city)
	}
}

func TestLoadGameData_ParseErrorSkipsRetries(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	data.malformed["game_data.fr.json"] = true
	data.serve("game_data.json", dataset("es"))
	l, sleeps := newTestLoader(binary, Deps{Data: data})

	opts := DefaultDataLoadOptions()
	opts.MaxRetries = 3

	got, err := l.LoadGameData(context.Background(), "fr", opts)
	if err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}
	if got.Language != "es" {
		t.Errorf("language = %s, want default-language fallback", got.Language)
	}
	if calls := data.callCount("game_data.fr.json"); calls != 1 {
		t.Errorf("malformed source fetched %d times, want 1", calls)
	}
	if len(sleeps.delays) != 0 {
		t.Errorf("unexpected backoff sleeps for a parse error: %v", sleeps.delays)
	}
}

func TestLoadGameData_RetriesWithDataBackoff(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	l, sleeps := newTestLoader(binary, Deps{Data: data})

	opts := DefaultDataLoadOptions()
	opts.MaxRetries = 2

	if _, err := l.LoadGameData(context.Background(), "fr", opts); err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}
	if calls := data.callCount("game_data.fr.json"); calls != 3 {
		t.Errorf("attempts = %d, want 3", calls)
	}

	sleeps.mu.Lock()
	defer sleeps.mu.Unlock()
	if len(sleeps.delays) != 2 || sleeps.delays[0].Seconds() != 2 || sleeps.delays[1].Seconds() != 4 {
		t.Errorf("backoff delays = %v, want [2s 4s]", sleeps.delays)
	}
}

func TestLoadGameData_PersistsLanguagePreference(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	data.serve("game_data.fr.json", dataset("fr"))
	prefs := memory.NewPreferenceRepo()
	l, _ := newTestLoader(binary, Deps{Data: data, Preferences: prefs})
	ctx := context.Background()

	if _, err := l.LoadGameData(ctx, "fr", DefaultDataLoadOptions()); err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}

	got, err := prefs.Get(ctx, domain.PreferenceKeyLanguage)
	if err != nil {
		t.Fatalf("preference not persisted: %v", err)
	}
	if got != "fr" {
		t.Errorf("persisted language = %s, want fr", got)
	}
}

func TestLoadGameData_ReporterReceivesLanguage(t *testing.T) {
	binary := newFakeBinary()
	data := newFakeData()
	reporter := &recordingReporter{}
	l, _ := newTestLoader(binary, Deps{Data: data, Reporter: reporter})

	if _, err := l.LoadGameData(context.Background(), "fr", DefaultDataLoadOptions()); err != nil {
		t.Fatalf("LoadGameData: %v", err)
	}

	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if reporter.count != 1 {
		t.Fatalf("reporter invoked %d times, want 1", reporter.count)
	}
	if reporter.last.LanguageCode != "fr" {
		t.Errorf("reported language = %q, want fr", reporter.last.LanguageCode)
	}
	if reporter.last.Retry == nil {
		t.Error("report context has no replay callback")
	}
}
