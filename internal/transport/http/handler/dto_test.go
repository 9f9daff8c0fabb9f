package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rp-market/internal/domain"
)

func TestFlexFloat(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		bad  bool
	}{
		{`12.5`, 12.5, false},
		{`"12.5"`, 12.5, false},
		{`" 7 "`, 7, false},
		{`""`, 0, false},
		{`"abc"`, 0, true},
		{`"NaN"`, 0, true},
		{`true`, 0, true},
	}
	for _, tc := range cases {
		var f FlexFloat
		err := json.Unmarshal([]byte(tc.in), &f)
		if tc.bad {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, float64(f), tc.in)
	}
}

func TestProductDTOInput(t *testing.T) {
	var d productDTO
	require.NoError(t, json.Unmarshal([]byte(`{
		"name":"Bravado Banshee","price":"1200","stock":"3","type":" car ",
		"images":[{"url":" https://img/2.png ","order":"2"},{"url":"https://img/1.png","order":1}]
	}`), &d))
	in, err := d.input()
	require.NoError(t, err)
	assert.Equal(t, "Bravado Banshee", *in.Name)
	assert.Equal(t, 1200.0, *in.Price)
	assert.Nil(t, in.DiscountPercentage)
	assert.Equal(t, 3, *in.Stock)
	assert.Equal(t, domain.ProductCar, *in.Type)
	require.NotNil(t, in.Images)
	assert.Equal(t, []domain.ProductImage{{URL: "https://img/2.png", Order: 2}, {URL: "https://img/1.png", Order: 1}}, *in.Images)

	require.NoError(t, json.Unmarshal([]byte(`{"stock":"2.5"}`), &d))
	_, err = d.input()
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTruthy(t *testing.T) {
	for _, s := range []string{"1", "true", "yes", "TRUE"} {
		assert.True(t, truthy(s), s)
	}
	for _, s := range []string{"", "0", "false", "off", " no "} {
		assert.False(t, truthy(s), s)
	}
}

func TestParseSameSite(t *testing.T) {
	assert.Equal(t, http.SameSiteNoneMode, ParseSameSite("None"))
	assert.Equal(t, http.SameSiteLaxMode, ParseSameSite("lax"))
	assert.Equal(t, http.SameSiteStrictMode, ParseSameSite("strict"))
	assert.Equal(t, http.SameSiteDefaultMode, ParseSameSite(""))
}
