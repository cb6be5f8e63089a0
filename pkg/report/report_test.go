package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopscan/internal/models"
)

func sampleShops() []models.Shop {
	return []models.Shop{
		{Name: "A", Address: "서울특별시 강남구 1", Category: "식당/카페", VeryPrice: "1,200원", Country: "대한민국", State: "서울특별시", City: "강남구",
			ShopDetail: models.ShopDetail{Phone: "010-1234-5678"}},
		{Name: "B", Address: "서울 마포구 2", Category: "미용", VeryPrice: "-", Country: "대한민국", State: "서울특별시"},
		{Name: "C", Address: "경기도 성남시 3", Category: "식당/카페", VeryPrice: "2 VERY", Country: "대한민국", State: "경기도"},
		{Name: "D", Address: "Osu, Accra", Country: "가나", State: "Greater Accra"},
		{Name: " ", Address: "어딘가"},
		{Name: "F", Address: ""},
	}
}

func TestBuild(t *testing.T) {
	s := Build(sampleShops())

	assert.Equal(t, 6, s.Total)
	assert.Equal(t, 4, s.Valid, "blank name and blank address are not valid")
	assert.Equal(t, 1, s.MissingName)
	assert.Equal(t, 1, s.MissingAddress)
	assert.Equal(t, 4, s.Classified)
	assert.Equal(t, 3, s.Domestic)
	assert.Equal(t, 1, s.DomesticWithPrice)
	assert.Equal(t, 1, s.Detailed)
	assert.Equal(t, 2, s.Countries)
	assert.Equal(t, 2, s.Categories)
	assert.Equal(t, map[string]int{"대한민국": 3, "가나": 1}, s.ByCountry)
	assert.Equal(t, 2, s.ByState["서울특별시"])
	assert.Equal(t, 2, s.ByCategory["식당/카페"])
}

func TestSorted(t *testing.T) {
	got := Sorted(map[string]int{"b": 2, "a": 2, "c": 5})

	assert.Equal(t, []Count{{"c", 5}, {"a", 2}, {"b", 2}}, got)
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, Build(sampleShops())))

	out := buf.String()
	assert.Contains(t, out, "Total shops:          6")
	assert.Contains(t, out, "With detail page:     1")
	assert.Contains(t, out, "By country:")
	assert.Contains(t, out, "대한민국")
	assert.NotContains(t, out, "By nothing")
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Build(sampleShops())))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.EqualValues(t, 6, decoded["total"])
	assert.Contains(t, decoded, "by_state")
}
