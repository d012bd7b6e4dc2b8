package search

import (
	"regexp"
	"strings"

	"github.com/therealharsh/backflow-tester-sub001/providers"
)

type Kind string

const (
	KindZip       Kind = "zip"
	KindStateCode Kind = "state_code"
	KindCityState Kind = "city_state"
	KindStateName Kind = "state_name"
	KindFreeform  Kind = "freeform"
)

// Classification is the outcome of classifying one raw query. StateCode
// is set for state_code, state_name and city_state kinds; City only for
// city_state.
type Classification struct {
	Kind      Kind
	Query     string
	City      string
	StateCode string
}

var (
	zipRe       = regexp.MustCompile(`^[0-9]{5}$`)
	stateCodeRe = regexp.MustCompile(`^[A-Za-z]{2}$`)
	cityStateRe = regexp.MustCompile(`^(.+?)[,\s]+([A-Za-z]{2})$`)
)

// Classify buckets a trimmed query into exactly one kind. Predicates
// run in priority order and the first match wins, so a two-letter input
// is always state_code even when it is not a real state; the resolver
// validates realness separately.
func Classify(query string) Classification {
	q := strings.TrimSpace(query)
	c := Classification{Kind: KindFreeform, Query: q}

	switch {
	case zipRe.MatchString(q):
		c.Kind = KindZip
	case stateCodeRe.MatchString(q):
		c.Kind = KindStateCode
		c.StateCode = strings.ToUpper(q)
	case cityStateRe.MatchString(q):
		m := cityStateRe.FindStringSubmatch(q)
		c.Kind = KindCityState
		c.City = strings.TrimSpace(m[1])
		c.StateCode = strings.ToUpper(m[2])
	default:
		if code, ok := providers.StateCodeForName(q); ok {
			c.Kind = KindStateName
			c.StateCode = code
		}
	}

	return c
}
