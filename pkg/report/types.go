package report

import "time"

// Summary describes one dataset
type Summary struct {
	Total             int            `json:"total"`               // records in the dataset
	Valid             int            `json:"valid"`               // records with both name and address
	MissingName       int            `json:"missing_name"`        // records with a blank name
	MissingAddress    int            `json:"missing_address"`     // records with a blank address
	Classified        int            `json:"classified"`          // records with a country
	Domestic          int            `json:"domestic"`            // records whose address matches a Korean region
	DomesticWithPrice int            `json:"domestic_with_price"` // domestic records priced in 원
	Detailed          int            `json:"detailed"`            // records carrying detail-page fields
	Countries         int            `json:"countries"`           // distinct countries
	Categories        int            `json:"categories"`          // distinct categories
	ByCountry         map[string]int `json:"by_country"`          // records per country
	ByState           map[string]int `json:"by_state"`            // records per classified state
	ByCategory        map[string]int `json:"by_category"`         // records per category
	GeneratedAt       time.Time      `json:"generated_at"`
}

// Count is one row of a sorted breakdown
type Count struct {
	Key   string
	Value int
}
