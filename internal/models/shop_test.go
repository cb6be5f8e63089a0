package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShopKeyIgnoresClassification(t *testing.T) {
	a := Shop{Name: "가게", Address: "서울 강남구 역삼동"}
	b := a
	b.Country = "대한민국"
	b.State = "서울특별시"

	assert.Equal(t, a.Key(), b.Key())
}

func TestShopIsValid(t *testing.T) {
	assert.True(t, Shop{Name: "가게", Address: "서울 강남구"}.IsValid())
	assert.False(t, Shop{Name: "가게", Address: "  "}.IsValid())
	assert.False(t, Shop{Address: "서울 강남구"}.IsValid())
}

func TestShopID(t *testing.T) {
	tests := []struct {
		link string
		want string
	}{
		{"", ""},
		{"/shop/123", "123"},
		{"https://pay.verychat.io/shop/abc/", "abc"},
		{"/shop/77?ref=list", "77"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			assert.Equal(t, tt.want, Shop{Link: tt.link}.ID())
		})
	}
}

func TestShopDetailFlattensIntoRecord(t *testing.T) {
	shop := Shop{Name: "가게", Address: "서울 강남구 역삼동 1"}
	data, err := json.Marshal(shop)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"가게","address":"서울 강남구 역삼동 1"}`, string(data))
	assert.True(t, shop.ShopDetail.IsZero())

	shop.Phone = "010-1234-5678"
	shop.PaymentMethods = []string{"50%"}
	data, err = json.Marshal(shop)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"가게","address":"서울 강남구 역삼동 1","phone":"010-1234-5678","payment_methods":["50%"]}`, string(data))
	assert.False(t, shop.ShopDetail.IsZero())
}

func TestShopRowRestoresDetailFromPayload(t *testing.T) {
	shop := Shop{Name: "가게", Address: "서울 강남구 역삼동 1", Link: "/shop/7"}
	shop.Hours = "영업시간 10:00 - 22:00"
	payload, err := json.Marshal(shop)
	require.NoError(t, err)

	row := ShopRow{Name: shop.Name, Address: shop.Address, Link: shop.Link, Payload: payload}
	assert.Equal(t, shop, row.ToShop())
}
