package search

import (
	"context"
	"net/url"
	"regexp"
	"strings"

	"github.com/therealharsh/backflow-tester-sub001/providers"
)

const (
	maxSuggestions      = 8
	maxStateSuggestions = 4
	scopedCityLimit     = 5
)

var (
	partialZipRe = regexp.MustCompile(`^[0-9]{1,5}$`)
	shortAlphaRe = regexp.MustCompile(`^[A-Za-z]{1,2}$`)
)

// Suggester produces ranked autocomplete candidates. It shares the
// query classifier with the search pipeline but does its own lightweight
// matching; it never geocodes.
type Suggester struct {
	dir     Directory
	metrics *Metrics
}

func NewSuggester(dir Directory, metrics *Metrics) *Suggester {
	return &Suggester{
		dir:     dir,
		metrics: metrics,
	}
}

// Suggest returns at most 8 suggestions, de-duplicated by href. Digit
// input is treated as a ZIP in progress and never mixes with city or
// state candidates.
func (s *Suggester) Suggest(ctx context.Context, partial string) ([]providers.Suggestion, error) {
	s.metrics.countSuggest()

	q := strings.TrimSpace(partial)
	if q == "" {
		return []providers.Suggestion{}, nil
	}

	if partialZipRe.MatchString(q) {
		return s.suggestZip(ctx, q)
	}

	out := make([]providers.Suggestion, 0, maxSuggestions)
	seen := make(map[string]bool)

	if shortAlphaRe.MatchString(q) {
		out = appendStateMatches(out, seen, q, statePrefixMatch)
	}
	out = appendStateMatches(out, seen, q, stateWordPrefixMatch)

	out, err := s.appendCityMatches(ctx, out, seen, q)
	if err != nil {
		return nil, err
	}

	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out, nil
}

// A complete 5-digit ZIP resolves to its city page when the directory
// knows it; anything shorter (or an unknown ZIP) points at the generic
// search fallback.
func (s *Suggester) suggestZip(ctx context.Context, q string) ([]providers.Suggestion, error) {
	sug := providers.Suggestion{
		Type:  providers.SuggestionZip,
		Label: q,
		Href:  "/search?query=" + url.QueryEscape(q),
	}

	if len(q) == 5 {
		city, err := s.dir.CityByPostalCode(ctx, q)
		if err != nil {
			return nil, err
		}
		if city != nil {
			sug.Sublabel = city.Name + ", " + city.StateCode
			sug.Href = city.URL()
			sug.Count = city.ProviderCount
		}
	}

	return []providers.Suggestion{sug}, nil
}

func statePrefixMatch(code, name, lower string) bool {
	return strings.HasPrefix(strings.ToLower(code), lower) ||
		strings.HasPrefix(strings.ToLower(name), lower)
}

// stateWordPrefixMatch matches full or partial state names. The whole
// name may start with the query ("new jer") or any word of it may
// ("jersey"); the word rule extends whole-name matching, it does not
// replace it.
func stateWordPrefixMatch(_, name, lower string) bool {
	lowerName := strings.ToLower(name)
	if strings.HasPrefix(lowerName, lower) {
		return true
	}
	for _, word := range strings.Fields(lowerName) {
		if strings.HasPrefix(word, lower) {
			return true
		}
	}
	return false
}

func appendStateMatches(out []providers.Suggestion, seen map[string]bool, q string, match func(code, name, lower string) bool) []providers.Suggestion {
	lower := strings.ToLower(q)
	added := 0

	for _, code := range providers.StateCodes() {
		if added >= maxStateSuggestions || len(out) >= maxSuggestions {
			break
		}
		name, _ := providers.StateName(code)
		if !match(code, name, lower) {
			continue
		}

		href := providers.StateURL(code)
		if seen[href] {
			continue
		}
		seen[href] = true

		out = append(out, providers.Suggestion{
			Type:     providers.SuggestionState,
			Label:    name,
			Sublabel: code,
			Href:     href,
		})
		added++
	}

	return out
}

func (s *Suggester) appendCityMatches(ctx context.Context, out []providers.Suggestion, seen map[string]bool, q string) ([]providers.Suggestion, error) {
	cityQuery, stateScope := q, ""
	limit := maxSuggestions

	if c := Classify(q); c.Kind == KindCityState {
		if _, ok := providers.StateName(c.StateCode); ok {
			cityQuery, stateScope = c.City, c.StateCode
			limit = scopedCityLimit
		}
	}

	cities, err := s.dir.SearchCities(ctx, cityQuery, stateScope, limit)
	if err != nil {
		return nil, err
	}

	for _, city := range cities {
		if len(out) >= maxSuggestions {
			break
		}
		href := city.URL()
		if seen[href] {
			continue
		}
		seen[href] = true

		sublabel := city.StateCode
		if name, ok := providers.StateName(city.StateCode); ok {
			sublabel = name
		}

		out = append(out, providers.Suggestion{
			Type:     providers.SuggestionCity,
			Label:    city.Name,
			Sublabel: sublabel,
			Href:     href,
			Count:    city.ProviderCount,
		})
	}

	return out, nil
}
