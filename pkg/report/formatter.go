package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// WriteText renders a human readable summary.
func WriteText(w io.Writer, s *Summary) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Total shops:          %d\n", s.Total)
	fmt.Fprintf(&b, "With name and address: %d\n", s.Valid)
	fmt.Fprintf(&b, "Missing name:         %d\n", s.MissingName)
	fmt.Fprintf(&b, "Missing address:      %d\n", s.MissingAddress)
	fmt.Fprintf(&b, "Classified:           %d\n", s.Classified)
	fmt.Fprintf(&b, "Domestic:             %d (priced in 원: %d)\n", s.Domestic, s.DomesticWithPrice)
	fmt.Fprintf(&b, "With detail page:     %d\n", s.Detailed)
	fmt.Fprintf(&b, "Countries:            %d\n", s.Countries)
	fmt.Fprintf(&b, "Categories:           %d\n", s.Categories)

	writeBreakdown(&b, "By country", s.ByCountry)
	writeBreakdown(&b, "By state", s.ByState)
	writeBreakdown(&b, "By category", s.ByCategory)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON renders the summary as indented JSON.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func writeBreakdown(b *strings.Builder, title string, m map[string]int) {
	if len(m) == 0 {
		return
	}
	fmt.Fprintf(b, "\n%s:\n", title)
	for _, c := range Sorted(m) {
		fmt.Fprintf(b, "  %-20s %d\n", c.Key, c.Value)
	}
}
