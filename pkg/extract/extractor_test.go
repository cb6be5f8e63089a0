package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"shopscan/internal/models"
)

const cardPage = `<!DOCTYPE html>
<html><head><title>shops</title><script>var x = "<a href='/shop/0'>no</a>";</script></head>
<body>
<nav><a href="/about">소개</a></nav>
<main>
  <a href="/shops/101">
    <div>
      <h3>맛있는 식당</h3>
      <p>서울특별시 강남구 테헤란로 123</p>
      <span>식당/카페</span>
      <div><span>VERY 단가</span><span>1,200원</span></div>
      <div><span>결제 비율</span><span>50%</span></div>
    </div>
  </a>
  <a href="/shops/102?ref=list">
    <div>
      <h3>Beauty Lab</h3>
      <p>부산광역시 해운대구 우동 45</p>
      <span>미용</span>
    </div>
  </a>
  <a href="/shops/103"><span>혼자</span></a>
</main>
</body></html>`

func TestExtractShopLinks(t *testing.T) {
	res, err := New(Options{}).ExtractHTML(context.Background(), cardPage)
	require.NoError(t, err)

	assert.Equal(t, TierShopLinks, res.Tier)
	assert.Equal(t, 3, res.Candidates)
	assert.Equal(t, 1, res.Dropped)
	require.Len(t, res.Shops, 2)

	first := res.Shops[0]
	assert.Equal(t, "맛있는 식당", first.Name)
	assert.Equal(t, "서울특별시 강남구 테헤란로 123", first.Address)
	assert.Equal(t, "식당/카페", first.Category)
	assert.Equal(t, "1,200원", first.VeryPrice)
	assert.Equal(t, "50%", first.PaymentRatio)
	assert.Equal(t, "/shops/101", first.Link)

	second := res.Shops[1]
	assert.Equal(t, "Beauty Lab", second.Name)
	assert.Equal(t, "미용", second.Category)
	assert.Empty(t, second.VeryPrice)
	assert.Empty(t, second.PaymentRatio)
	assert.Equal(t, "/shops/102?ref=list", second.Link)
}

func TestExtractFallsBackToContainers(t *testing.T) {
	page := `<html><body>
<div class="card">
  <h3>해피 펫샵</h3>
  <p>경기도 성남시 분당구 정자동 7</p>
  <span>반려동물</span>
</div>
<div><span>짧음</span><span>x</span></div>
</body></html>`

	res, err := New(Options{}).ExtractHTML(context.Background(), page)
	require.NoError(t, err)

	assert.Equal(t, TierContainers, res.Tier)
	require.Len(t, res.Shops, 1)
	assert.Equal(t, "해피 펫샵", res.Shops[0].Name)
	assert.Equal(t, "경기도 성남시 분당구 정자동 7", res.Shops[0].Address)
	assert.Equal(t, "반려동물", res.Shops[0].Category)
	assert.Empty(t, res.Shops[0].Link)
}

func TestExtractCustomShopRoute(t *testing.T) {
	page := `<html><body>
<a href="/store/1"><div><h3>문구점</h3><p>대전광역시 유성구 봉명동 1</p></div></a>
<a href="/shop/2"><div><h3>무시</h3><p>대전광역시 서구 둔산동 2</p></div></a>
</body></html>`

	res, err := New(Options{ShopRoute: "/store/"}).ExtractHTML(context.Background(), page)
	require.NoError(t, err)

	require.Len(t, res.Shops, 1)
	assert.Equal(t, "문구점", res.Shops[0].Name)
}

func TestExtractEmptyPage(t *testing.T) {
	res, err := New(Options{}).ExtractHTML(context.Background(), `<html><body><p>점검 중입니다</p></body></html>`)
	require.NoError(t, err)

	assert.Equal(t, TierNone, res.Tier)
	assert.Empty(t, res.Shops)
}

func TestExtractHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).ExtractHTML(ctx, cardPage)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractSkipsFailingCandidate(t *testing.T) {
	e := New(Options{})
	e.parse = func(text string) (models.Shop, bool) {
		if strings.Contains(text, "깨진") {
			panic("unexpected markup")
		}
		return ParseText(text)
	}

	res, err := e.ExtractHTML(context.Background(), `<html><body>
<a href="/shop/1"><h3>첫 가게</h3><p>서울특별시 강남구 1</p></a>
<a href="/shop/2"><h3>깨진 가게</h3><p>서울특별시 마포구 2</p></a>
<a href="/shop/3"><h3>셋째 가게</h3><p>부산광역시 해운대구 3</p></a>
</body></html>`)
	require.NoError(t, err)

	assert.Equal(t, 3, res.Candidates)
	assert.Equal(t, 1, res.Failed)
	require.Len(t, res.Shops, 2)
	assert.Equal(t, "첫 가게", res.Shops[0].Name)
	assert.Equal(t, "셋째 가게", res.Shops[1].Name)
	assert.Equal(t, "/shop/3", res.Shops[1].Link)
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name string
		text string
		ok   bool
		want func(t *testing.T, name, address, category, price, ratio string)
	}{
		{
			name: "single line yields nothing",
			text: "맛있는 식당 서울특별시 강남구",
			ok:   false,
		},
		{
			name: "labels are skipped for name and address",
			text: "VERY 단가 900원\n카페 모모\n결제 비율 30%\n짧은\n인천광역시 연수구 송도동 1",
			ok:   true,
			want: func(t *testing.T, name, address, category, price, ratio string) {
				assert.Equal(t, "카페 모모", name)
				assert.Equal(t, "인천광역시 연수구 송도동 1", address)
				assert.Equal(t, "900원", price)
				assert.Equal(t, "30%", ratio)
			},
		},
		{
			name: "price on the following line",
			text: "상점\n광주광역시 북구 용봉동\nVERY 단가\n1,500원",
			ok:   true,
			want: func(t *testing.T, name, address, category, price, ratio string) {
				assert.Equal(t, "1,500원", price)
			},
		},
		{
			name: "price cut at payment label and ratio cut at V",
			text: "상점\n울산광역시 남구 삼산동\nVERY 단가 2,000원 결제비율 40% VERY",
			ok:   true,
			want: func(t *testing.T, name, address, category, price, ratio string) {
				assert.Equal(t, "2,000원", price)
				assert.Equal(t, "40%", ratio)
			},
		},
		{
			name: "no-break spaces inside labels",
			text: "가게이름\n서울특별시 강남구 테헤란로 1\nVERY\u00a0단가 1,200원 결제\u00a0비율 50%",
			ok:   true,
			want: func(t *testing.T, name, address, category, price, ratio string) {
				assert.Equal(t, "1,200원", price)
				assert.Equal(t, "50%", ratio)
			},
		},
		{
			name: "nothing fabricated",
			text: "그냥 가게\n세종특별자치시 한솔동 1",
			ok:   true,
			want: func(t *testing.T, name, address, category, price, ratio string) {
				assert.Empty(t, category)
				assert.Empty(t, price)
				assert.Empty(t, ratio)
			},
		},
		{
			name: "no address line long enough",
			text: "가게 이름\n서울",
			ok:   false,
		},
		{
			name: "category priority order",
			text: "가게\n제주특별자치도 제주시 연동\n기타 미용",
			ok:   true,
			want: func(t *testing.T, name, address, category, price, ratio string) {
				assert.Equal(t, "미용", category)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shop, ok := ParseText(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.want != nil {
				tt.want(t, shop.Name, shop.Address, shop.Category, shop.VeryPrice, shop.PaymentRatio)
			}
		})
	}
}

func TestRenderText(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(
		`<div><b>Shop</b> <i>One</i><br>line  two<p>para</p><script>ignored()</script></div>`))
	require.NoError(t, err)

	lines := splitLines(renderText(doc))
	assert.Equal(t, []string{"Shop One", "line two", "para"}, lines)

	doc, err = html.Parse(strings.NewReader(`<p>VERY&nbsp;&nbsp;단가 900원</p>`))
	require.NoError(t, err)
	assert.Equal(t, []string{"VERY 단가 900원"}, splitLines(renderText(doc)))
}

func TestRenderTextNormalizesToNFC(t *testing.T) {
	doc, err := html.Parse(strings.NewReader("<p>\u1112\u1161\u11ab</p>"))
	require.NoError(t, err)

	assert.Equal(t, "\ud55c", strings.TrimSpace(renderText(doc)))
}
