package domain

import "fmt"

// DefaultLanguage is the fallback language code used when a requested
// language's data is unobtainable.
const DefaultLanguage = "es"

// PreferenceKeyLanguage is the preference-store key under which the last
// successfully applied language code is persisted.
const PreferenceKeyLanguage = "player_language"

// GameData is a localized structured dataset: the cities, clues and
// connections the narrative runs on.
type GameData struct {
	Language string `json:"language"`
	Title    string `json:"title,omitempty"`
	Cities   []City `json:"cities"`

	// Degraded marks a dataset served from the built-in placeholder
	// rather than a real source. Never serialized.
	Degraded bool `json:"-"`
}

// City is a single location in the dataset. Connections reference other
// cities by name.
type City struct {
	Name        string   `json:"name"`
	Country     string   `json:"country,omitempty"`
	Clues       []string `json:"clues"`
	Connections []string `json:"connections"`
}

// DataSource returns the source identifier for a language's dataset.
// The default language is served from the unqualified source.
func DataSource(languageCode string) string {
	if languageCode == "" || languageCode == DefaultLanguage {
		return "game_data.json"
	}
	return fmt.Sprintf("game_data.%s.json", languageCode)
}

// PlaceholderGameData returns the minimal built-in dataset used when every
// other source has failed. It always contains one resolvable city so the
// game can signal the failure state to the player instead of crashing.
func PlaceholderGameData() *GameData {
	return &GameData{
		Language: DefaultLanguage,
		Title:    "Connection lost",
		Degraded: true,
		Cities: []City{
			{
				Name:        "Nowhere",
				Clues:       []string{"The trail has gone cold. Check your connection and try again."},
				Connections: []string{"Nowhere"},
			},
		},
	}
}
