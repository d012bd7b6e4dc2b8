package providers

import (
	"sort"
	"strings"
)

// The 50 states plus DC. Territories are out of the directory's coverage.
var stateNames = map[string]string{
	"AL": "Alabama",
	"AK": "Alaska",
	"AZ": "Arizona",
	"AR": "Arkansas",
	"CA": "California",
	"CO": "Colorado",
	"CT": "Connecticut",
	"DE": "Delaware",
	"DC": "District of Columbia",
	"FL": "Florida",
	"GA": "Georgia",
	"HI": "Hawaii",
	"ID": "Idaho",
	"IL": "Illinois",
	"IN": "Indiana",
	"IA": "Iowa",
	"KS": "Kansas",
	"KY": "Kentucky",
	"LA": "Louisiana",
	"ME": "Maine",
	"MD": "Maryland",
	"MA": "Massachusetts",
	"MI": "Michigan",
	"MN": "Minnesota",
	"MS": "Mississippi",
	"MO": "Missouri",
	"MT": "Montana",
	"NE": "Nebraska",
	"NV": "Nevada",
	"NH": "New Hampshire",
	"NJ": "New Jersey",
	"NM": "New Mexico",
	"NY": "New York",
	"NC": "North Carolina",
	"ND": "North Dakota",
	"OH": "Ohio",
	"OK": "Oklahoma",
	"OR": "Oregon",
	"PA": "Pennsylvania",
	"RI": "Rhode Island",
	"SC": "South Carolina",
	"SD": "South Dakota",
	"TN": "Tennessee",
	"TX": "Texas",
	"UT": "Utah",
	"VT": "Vermont",
	"VA": "Virginia",
	"WA": "Washington",
	"WV": "West Virginia",
	"WI": "Wisconsin",
	"WY": "Wyoming",
}

var (
	stateCodes  []string
	codesByName map[string]string
)

func init() {
	stateCodes = make([]string, 0, len(stateNames))
	codesByName = make(map[string]string, len(stateNames))
	for code, name := range stateNames {
		stateCodes = append(stateCodes, code)
		codesByName[strings.ToLower(name)] = code
	}
	sort.Strings(stateCodes)
}

// StateName resolves a two-letter code (any case) to its full name.
func StateName(code string) (string, bool) {
	name, ok := stateNames[strings.ToUpper(code)]
	return name, ok
}

// StateCodeForName resolves a full state name (any case) to its code.
func StateCodeForName(name string) (string, bool) {
	code, ok := codesByName[strings.ToLower(strings.TrimSpace(name))]
	return code, ok
}

// StateCodes returns all recognized codes in alphabetical order.
func StateCodes() []string {
	return stateCodes
}
