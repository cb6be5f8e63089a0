package region

import (
	"regexp"
	"strings"
)

// stateKeyword maps a city or province keyword to the state it belongs to
type stateKeyword struct {
	Keyword string
	State   string
}

// Country is one entry of the international cascade
type Country struct {
	Name string // Korean display name, used as country
	// Triggers are lower-case substrings that select this country
	Triggers []string
	States   []stateKeyword
	// DefaultState is used when no keyword matches
	DefaultState string

	statePatterns []*regexp.Regexp
}

var countries = compileCountries([]Country{
	{
		Name:     "인도네시아",
		Triggers: []string{"indonesia", "jawa", "jakarta"},
		States: []stateKeyword{
			{"Jakarta", "Jakarta"},
			{"Jawa Timur", "Jawa Timur"},
			{"Banyuwangi", "Jawa Timur"},
			{"Malang", "Jawa Timur"},
			{"Lampung", "Lampung"},
		},
	},
	{
		Name:     "파키스탄",
		Triggers: []string{"pakistan", "islamabad", "karachi"},
		States: []stateKeyword{
			{"Islamabad", "Islamabad"},
			{"Karachi", "Sindh"},
			{"Lahore", "Punjab"},
			{"Bhakkar", "Punjab"},
		},
	},
	{
		Name:     "나이지리아",
		Triggers: []string{"nigeria", "lagos", "abuja"},
		States: []stateKeyword{
			{"Lagos", "Lagos"},
			{"Abuja", "FCT"},
			{"Akure", "Ondo"},
			{"Ogbomoso", "Oyo"},
			{"Jos", "Plateau"},
			{"Katsina", "Katsina"},
			{"Kano", "Kano"},
		},
	},
	{
		Name:         "가나",
		Triggers:     []string{"ghana", "accra"},
		DefaultState: "Greater Accra",
	},
	{
		Name:         "케냐",
		Triggers:     []string{"kenya", "nairobi"},
		DefaultState: "Nairobi",
	},
	{
		Name:     "네팔",
		Triggers: []string{"nepal", "kathmandu", "bhaktapur"},
		States: []stateKeyword{
			{"Kathmandu", "Bagmati"},
			{"Bhaktapur", "Bagmati"},
			{"Lalitpur", "Bagmati"},
			{"Pokhara", "Gandaki"},
		},
	},
})

// State keywords are whole words so that short names like Jos do not fire inside
// unrelated words.
func compileCountries(cs []Country) []Country {
	for i := range cs {
		for _, s := range cs[i].States {
			cs[i].statePatterns = append(cs[i].statePatterns,
				regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(s.Keyword)+`\b`))
		}
	}
	return cs
}

// matches reports whether lowered (an already lower-cased address) triggers c.
func (c Country) matches(lowered string) bool {
	for _, t := range c.Triggers {
		if strings.Contains(lowered, t) {
			return true
		}
	}
	return false
}

// state returns the state for address, or the country default.
func (c Country) state(address string) string {
	for i, re := range c.statePatterns {
		if re.MatchString(address) {
			return c.States[i].State
		}
	}
	return c.DefaultState
}
