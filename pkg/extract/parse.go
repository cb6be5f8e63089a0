package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"shopscan/internal/models"
)

// Categories is the closed category vocabulary in match priority order.
var Categories = []string{
	"식당/카페",
	"미용",
	"패션/잡화",
	"취미/도서",
	"사무기기",
	"가전/게임",
	"의료/건강",
	"부동산/인테리어",
	"여행/숙박",
	"반려동물",
	"사주/타로",
	"지원센터",
	"기타",
}

var (
	// \p{Zs} covers the no-break spaces that &nbsp; renders to
	priceRe = regexp.MustCompile(`VERY[\s\p{Zs}]*단가([^\n]+)`)
	ratioRe = regexp.MustCompile(`결제[\s\p{Zs}]*비율([^\n]+)`)

	// used only to pick tier-2 containers
	locationRe     = regexp.MustCompile(`[가-힣]{2,}(시|도|구|군|동|읍|면)`)
	categoryHintRe = regexp.MustCompile(`(식당|카페|미용|패션|취미|사무|가전|의료|부동산|여행|반려|사주|타로|기타|지원)`)
)

// lines carrying these markers are never a name or an address
var labelMarkers = []string{"VERY", "결제", "생태계"}

// ParseText turns the rendered text of one container into a shop record. ok is false
// when the text has fewer than two lines or no name/address could be found.
func ParseText(text string) (shop models.Shop, ok bool) {
	lines := splitLines(text)
	if len(lines) < 2 {
		return models.Shop{}, false
	}

	for _, line := range lines {
		if IsLabel(line) || utf8.RuneCountInString(line) <= 1 {
			continue
		}
		if shop.Name == "" {
			shop.Name = line
			continue
		}
		if utf8.RuneCountInString(line) > 5 {
			shop.Address = line
			break
		}
	}

	shop.VeryPrice = PriceOf(text)
	shop.PaymentRatio = RatioOf(text)
	shop.Category = CategoryOf(text)

	return shop, shop.IsValid()
}

// CategoryOf returns the first vocabulary entry contained in text, or "".
func CategoryOf(text string) string {
	for _, c := range Categories {
		if strings.Contains(text, c) {
			return c
		}
	}
	return ""
}

// PriceOf returns the VERY unit price following its label in text, or "".
// The value may sit on the line after the label.
func PriceOf(text string) string {
	return labelValue(priceRe, text, "결제")
}

// RatioOf returns the payment ratio following its label in text, or "".
func RatioOf(text string) string {
	return labelValue(ratioRe, text, "V")
}

// IsLabel reports whether line carries a price, payment or ecosystem label.
func IsLabel(line string) bool {
	for _, m := range labelMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// labelValue returns the text following re's label up to the end of the line,
// truncated at stop.
func labelValue(re *regexp.Regexp, text, stop string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	v := m[1]
	if i := strings.Index(v, stop); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

func looksLikeShop(text string) bool {
	return locationRe.MatchString(text) || categoryHintRe.MatchString(text)
}
