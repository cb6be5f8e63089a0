package detail

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"shopscan/internal/models"
	"shopscan/pkg/extract"
)

// tried in order; the first hit wins
var phonePatterns = []*regexp.Regexp{
	regexp.MustCompile(`010[-.\s]?\d{4}[-.\s]?\d{4}`),
	regexp.MustCompile(`\+82[-.\s]?10[-.\s]?\d{4}[-.\s]?\d{4}`),
	regexp.MustCompile(`02[-.\s]?\d{3,4}[-.\s]?\d{4}`),
	regexp.MustCompile(`0\d{1,2}[-.\s]?\d{3,4}[-.\s]?\d{4}`),
}

var hoursMarkers = []string{"영업시간", "운영시간", "Hours", "오픈"}

// site chrome that never belongs to a shop description
var chromeMarkers = []string{"verypay", "verychain", "verychat", "veryads", "logo"}

// Parse extracts the detail fields of shop from its page.
func Parse(r io.Reader, shop models.Shop) (models.ShopDetail, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return models.ShopDetail{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	lines := extract.Lines(doc.Find("body"))
	text := strings.Join(lines, "\n")

	d := models.ShopDetail{
		Phone:         PhoneOf(text),
		Hours:         hoursOf(lines),
		AddressDetail: addressDetailOf(lines, shop.Address),
		PriceInfo:     extract.PriceOf(text),
	}
	if ratio := extract.RatioOf(text); ratio != "" {
		d.PaymentMethods = []string{ratio}
	}

	d.Description = descriptionOf(lines, shop, d.Hours)
	if d.Description == "" {
		meta, _ := doc.Find(`meta[name="description"]`).Attr("content")
		d.Description = strings.TrimSpace(meta)
	}
	return d, nil
}

// PhoneOf returns the first phone number in text. +82 mobile numbers are
// rewritten to the domestic 010-XXXX-XXXX form.
func PhoneOf(text string) string {
	for _, re := range phonePatterns {
		m := re.FindString(text)
		if m == "" {
			continue
		}
		phone := strings.ReplaceAll(strings.Join(strings.Fields(m), ""), ".", "-")
		if !strings.HasPrefix(phone, "+82") {
			return phone
		}
		digits := "0" + strings.ReplaceAll(strings.TrimPrefix(phone, "+82"), "-", "")
		if len(digits) == 11 && strings.HasPrefix(digits, "010") {
			return digits[:3] + "-" + digits[3:7] + "-" + digits[7:]
		}
		return digits
	}
	return ""
}

// hoursOf returns the first opening-hours line joined with the line after it.
func hoursOf(lines []string) string {
	for i, line := range lines {
		if !containsAny(line, hoursMarkers) {
			continue
		}
		if i+1 < len(lines) {
			return line + " " + lines[i+1]
		}
		return line
	}
	return ""
}

// addressDetailOf returns a line extending the listing address, such as one that
// adds a floor or unit.
func addressDetailOf(lines []string, address string) string {
	if address == "" {
		return ""
	}
	for _, line := range lines {
		if line != address && strings.HasPrefix(line, address) {
			return line
		}
	}
	return ""
}

// descriptionOf collects the lines between the shop name and the first price or
// payment label.
func descriptionOf(lines []string, shop models.Shop, hours string) string {
	start := -1
	for i, line := range lines {
		if line == shop.Name {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return ""
	}

	var parts []string
	seen := make(map[string]bool)
	for _, line := range lines[start:] {
		if extract.IsLabel(line) {
			break
		}
		if utf8.RuneCountInString(line) <= 1 || seen[line] || isChrome(line) ||
			(shop.Address != "" && strings.HasPrefix(line, shop.Address)) || strings.Contains(hours, line) {
			continue
		}
		seen[line] = true
		parts = append(parts, line)
	}
	return strings.Join(parts, "\n")
}

func isChrome(line string) bool {
	if strings.Contains(line, "KR") {
		return true
	}
	return containsAny(strings.ToLower(line), chromeMarkers)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
