// Package extract turns a fully expanded listing page into shop records.
package extract

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"shopscan/internal/models"
	"shopscan/pkg/logger"
)

// Tier identifies which discovery strategy produced the candidates
type Tier int

const (
	TierNone Tier = iota
	TierShopLinks
	TierContainers
)

func (t Tier) String() string {
	switch t {
	case TierShopLinks:
		return "shop_links"
	case TierContainers:
		return "containers"
	default:
		return "none"
	}
}

const (
	minChildren = 2
	maxChildren = 20
	minTextLen  = 20 // exclusive
	maxTextLen  = 500
)

// Options configures candidate discovery
type Options struct {
	// ShopRoute is the href fragment identifying links to shop pages
	ShopRoute string
}

// Result is the outcome of one extraction pass
type Result struct {
	Shops      []models.Shop
	Tier       Tier
	Candidates int
	Dropped    int
	Failed     int
}

// Extractor parses page snapshots
type Extractor struct {
	opts  Options
	parse func(text string) (models.Shop, bool)
}

// New creates an Extractor
func New(opts Options) *Extractor {
	if opts.ShopRoute == "" {
		opts.ShopRoute = "shop"
	}
	return &Extractor{opts: opts, parse: ParseText}
}

// ExtractHTML parses an HTML string. See Extract.
func (e *Extractor) ExtractHTML(ctx context.Context, page string) (*Result, error) {
	return e.Extract(ctx, strings.NewReader(page))
}

// Extract discovers candidate containers in the snapshot and parses each one.
// Records come back in document order; duplicates are kept.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (*Result, error) {
	log := logger.FromContext(ctx)

	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDocument, err)
	}

	candidates, tier := e.Candidates(doc)
	res := &Result{Tier: tier, Candidates: candidates.Length()}
	log.Info("Found extraction candidates",
		zap.String("tier", tier.String()),
		logger.CountField(res.Candidates))

	candidates.EachWithBreak(func(i int, s *goquery.Selection) bool {
		if ctx.Err() != nil {
			return false
		}
		shop, ok, err := e.parseCandidate(s, tier)
		switch {
		case err != nil:
			res.Failed++
			log.Warn("Skipping candidate", zap.Int("index", i), zap.Error(err))
		case !ok:
			res.Dropped++
		default:
			res.Shops = append(res.Shops, shop)
		}
		return true
	})
	if err := ctx.Err(); err != nil {
		return res, err
	}

	if len(res.Shops) == 0 {
		log.Warn("No shop records extracted, page structure may have changed",
			zap.Int("candidates", res.Candidates))
	} else {
		log.Info("Extracted shop records",
			logger.CountField(len(res.Shops)),
			zap.Int("dropped", res.Dropped),
			zap.Int("failed", res.Failed))
	}
	return res, nil
}

// Candidates returns the containers to parse. Shop links win; generic card-sized
// divs are only considered when the page has none.
func (e *Extractor) Candidates(doc *goquery.Document) (*goquery.Selection, Tier) {
	links := doc.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		return strings.Contains(href, e.opts.ShopRoute)
	})
	if links.Length() > 0 {
		return links, TierShopLinks
	}

	divs := doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
		children := s.Children().Length()
		if children < minChildren || children > maxChildren {
			return false
		}
		text := s.Text()
		n := utf8.RuneCountInString(text)
		if n <= minTextLen || n >= maxTextLen {
			return false
		}
		return looksLikeShop(text)
	})
	if divs.Length() > 0 {
		return divs, TierContainers
	}
	return divs, TierNone
}

func (e *Extractor) parseCandidate(s *goquery.Selection, tier Tier) (shop models.Shop, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCandidate, r)
		}
	}()

	if len(s.Nodes) == 0 {
		return models.Shop{}, false, nil
	}
	shop, ok = e.parse(renderText(s.Nodes[0]))
	if ok && tier == TierShopLinks {
		if href, exists := s.Attr("href"); exists {
			shop.Link = strings.TrimSpace(href)
		}
	}
	return shop, ok, nil
}
