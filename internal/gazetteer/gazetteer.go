package gazetteer

import (
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 1000.0
	ScorePrefixMatch    = 500.0
	ScoreSubstringMatch = 100.0

	// Fixed bonuses
	ScoreMajorCityBonus = 200.0
	ScoreDistrictBonus  = 150.0
)

// Place is one entry of the place-name gazetteer used for
// autocomplete. Location stays an opaque string everywhere else;
// this list only ranks suggestions.
type Place struct {
	Name     string `yaml:"name"`
	Major    bool   `yaml:"major,omitempty"`
	District bool   `yaml:"district,omitempty"`
}

// Match pairs a place with its score for a query.
type Match struct {
	Place Place   `json:"place"`
	Score float64 `json:"score"`
}

// Gazetteer ranks place names against free-text queries.
type Gazetteer struct {
	places []Place
}

// New creates a gazetteer over the given places. Pass nil to use the
// built-in list.
func New(places []Place) *Gazetteer {
	if places == nil {
		places = defaultPlaces
	}
	return &Gazetteer{places: places}
}

// Score rates how well a place matches a query. Exact beats prefix
// beats substring; major cities and district entries get a fixed
// bonus on top. Zero means no match.
func Score(query string, place Place) float64 {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return 0.0
	}

	name := strings.ToLower(place.Name)

	var score float64
	switch {
	case name == q:
		score = ScoreExactMatch
	case strings.HasPrefix(name, q):
		score = ScorePrefixMatch
	case strings.Contains(name, q):
		score = ScoreSubstringMatch
	default:
		return 0.0
	}

	if place.Major {
		score += ScoreMajorCityBonus
	}
	if place.District {
		score += ScoreDistrictBonus
	}

	return score
}

// Rank returns the best matches for the query, highest score first,
// capped at limit. Ties break alphabetically so results are stable.
func (g *Gazetteer) Rank(query string, limit int) []Match {
	matches := make([]Match, 0, limit)
	for _, p := range g.places {
		if score := Score(query, p); score > 0 {
			matches = append(matches, Match{Place: p, Score: score})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Place.Name < matches[j].Place.Name
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}

	return matches
}
