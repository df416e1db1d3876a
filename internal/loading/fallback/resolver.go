package fallback

import (
	"strings"

	"github.com/fakush/Where-in-the-wolrd-is-Nadine-Vuan-sub001/internal/core/domain"
)

// Category groups failed resources by what can stand in for them.
type Category string

const (
	CategoryCityScene Category = "city_scene"
	CategoryPortrait  Category = "portrait"
	CategoryCover     Category = "cover"
	CategoryMap       Category = "map"
	CategoryGeneric   Category = "generic"
)

// classifyRule matches an identifier substring to a category. Rules are
// evaluated in order; the first match wins.
type classifyRule struct {
	marker   string
	category Category
}

var classifyRules = []classifyRule{
	{"city_scenes/", CategoryCityScene},
	{"_clue", CategoryCityScene},
	{"characters/", CategoryPortrait},
	{"nadine", CategoryPortrait},
	{"cover", CategoryCover},
	{"map", CategoryMap},
}

// Classify buckets a resource identifier using ordered substring rules.
// Identifiers with no recognizable marker fall back to the type's default
// category.
func Classify(resourceID string, typ domain.ResourceType) Category {
	id := strings.ToLower(resourceID)
	for _, rule := range classifyRules {
		if strings.Contains(id, rule.marker) {
			return rule.category
		}
	}
	return defaultCategory(typ)
}

func defaultCategory(typ domain.ResourceType) Category {
	switch typ {
	case domain.TypeCityScene:
		return CategoryCityScene
	case domain.TypePortrait:
		return CategoryPortrait
	case domain.TypeCover:
		return CategoryCover
	case domain.TypeMap:
		return CategoryMap
	default:
		return CategoryGeneric
	}
}

// Candidate is one entry in a fallback chain: either a fetchable
// identifier or inline bytes requiring no I/O.
type Candidate struct {
	ID     string
	Inline []byte
}

// Chain is an ordered sequence of degraded substitutes. The final
// candidate is always inline, so resolving a chain never fails.
type Chain []Candidate

// Resolver maps categories to their registered fallback chains.
type Resolver struct {
	chains map[Category]Chain
}

// NewResolver builds a resolver with the default chain per category.
func NewResolver() *Resolver {
	r := &Resolver{chains: make(map[Category]Chain)}

	r.Register(CategoryCityScene, Chain{
		{ID: "city_scenes/generic_city.jpg"},
		{ID: "covers/title_screen.jpg"},
		{Inline: placeholderScene},
	})
	r.Register(CategoryPortrait, Chain{
		{ID: "characters/silhouette.png"},
		{Inline: placeholderPortrait},
	})
	r.Register(CategoryCover, Chain{
		{ID: "covers/title_screen.jpg"},
		{Inline: placeholderCover},
	})
	r.Register(CategoryMap, Chain{
		{ID: "maps/world_outline.png"},
		{Inline: placeholderMap},
	})
	r.Register(CategoryGeneric, Chain{
		{Inline: placeholderGeneric},
	})

	return r
}

// Register replaces a category's chain. Chains that do not end in an
// inline candidate get the generic placeholder appended, preserving the
// never-fails invariant.
func (r *Resolver) Register(category Category, chain Chain) {
	if len(chain) == 0 || chain[len(chain)-1].Inline == nil {
		chain = append(chain, Candidate{Inline: placeholderGeneric})
	}
	r.chains[category] = chain
}

// Chain returns the fallback chain for a category. Unknown categories get
// the generic chain.
func (r *Resolver) Chain(category Category) Chain {
	if chain, ok := r.chains[category]; ok {
		return chain
	}
	return r.chains[CategoryGeneric]
}
