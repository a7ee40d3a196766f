package wire

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeValues(t *testing.T) {
	fields := EncodeValues("cuisines", []string{"Italian", "Pizza"})

	require.Equal(t, []Field{
		{Name: "cuisines[0]", Value: "Italian"},
		{Name: "cuisines[1]", Value: "Pizza"},
	}, fields)
}

func TestEncodeList(t *testing.T) {
	fields := EncodeList("menuItems", []string{"name", "price"}, []map[string]string{
		{"name": "Burger", "price": "500"},
		{"name": "Fries", "price": "250"},
	})

	require.Equal(t, []Field{
		{Name: "menuItems[0][name]", Value: "Burger"},
		{Name: "menuItems[0][price]", Value: "500"},
		{Name: "menuItems[1][name]", Value: "Fries"},
		{Name: "menuItems[1][price]", Value: "250"},
	}, fields)
}

func TestDecodeValues(t *testing.T) {
	values := map[string][]string{
		"cuisines[1]":    {"Pizza"},
		"cuisines[0]":    {"Italian"},
		"restaurantName": {"ignored"},
	}

	decoded, err := DecodeValues("cuisines", values)
	require.NoError(t, err)
	assert.Equal(t, []string{"Italian", "Pizza"}, decoded)
}

func TestDecodeValuesEmpty(t *testing.T) {
	decoded, err := DecodeValues("cuisines", map[string][]string{})
	require.NoError(t, err)
	assert.Empty(t, decoded)
}

func TestDecodeValuesErrors(t *testing.T) {
	cases := []struct {
		name   string
		values map[string][]string
	}{
		{"gap", map[string][]string{"cuisines[0]": {"a"}, "cuisines[2]": {"b"}}},
		{"not zero based", map[string][]string{"cuisines[1]": {"a"}}},
		{"repeated value", map[string][]string{"cuisines[0]": {"a", "b"}}},
		{"bad index", map[string][]string{"cuisines[x]": {"a"}}},
		{"negative index", map[string][]string{"cuisines[-1]": {"a"}}},
		{"unterminated", map[string][]string{"cuisines[0": {"a"}}},
		{"stray attribute", map[string][]string{"cuisines[0][x]": {"a"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeValues("cuisines", tc.values)
			assert.ErrorIs(t, err, ErrMalformedList)
		})
	}
}

func TestDecodeListRoundTrip(t *testing.T) {
	attrs := []string{"name", "price"}
	items := []map[string]string{
		{"name": "Burger", "price": "5.00"},
		{"name": "Fries", "price": "2.50"},
		{"name": "Shake", "price": "3.25"},
	}

	values := map[string][]string{}
	for _, f := range EncodeList("menuItems", attrs, items) {
		values[f.Name] = append(values[f.Name], f.Value)
	}

	decoded, err := DecodeList("menuItems", attrs, values)
	require.NoError(t, err)
	assert.Equal(t, items, decoded)
}

func TestDecodeListErrors(t *testing.T) {
	attrs := []string{"name", "price"}

	cases := []struct {
		name   string
		values map[string][]string
	}{
		{"gap", map[string][]string{
			"menuItems[0][name]":  {"a"},
			"menuItems[0][price]": {"1"},
			"menuItems[2][name]":  {"b"},
			"menuItems[2][price]": {"2"},
		}},
		{"missing attribute", map[string][]string{
			"menuItems[0][name]": {"a"},
		}},
		{"unknown attribute", map[string][]string{
			"menuItems[0][name]":  {"a"},
			"menuItems[0][price]": {"1"},
			"menuItems[0][qty]":   {"3"},
		}},
		{"missing attribute brackets", map[string][]string{
			"menuItems[0]name": {"a"},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeList("menuItems", attrs, tc.values)
			assert.ErrorIs(t, err, ErrMalformedList)
		})
	}
}

func TestPayloadAppendAndGet(t *testing.T) {
	var p Payload
	p.Append("city", "London")
	p.Append("country", "UK")

	v, ok := p.Get("city")
	require.True(t, ok)
	assert.Equal(t, "London", v)

	_, ok = p.Get("missing")
	assert.False(t, ok)
}
