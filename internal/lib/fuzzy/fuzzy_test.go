package fuzzy_test

import (
	"testing"

	"github.com/quintans/noovo/internal/lib/fuzzy"
	"github.com/stretchr/testify/assert"
)

func TestRatio(t *testing.T) {
	assert.Equal(t, 100, fuzzy.Ratio("roast", "roast"))
	assert.Equal(t, 80, fuzzy.Ratio("roast", "toast"))
	assert.Equal(t, 0, fuzzy.Ratio("abc", "xyz"))
	assert.Equal(t, 100, fuzzy.Ratio("", ""))
	assert.Equal(t, 0, fuzzy.Ratio("", "abc"))
}

func TestPartialRatio(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"substring", "roast", "The roast Battle", 100},
		{"symmetric", "The roast Battle", "roast", 100},
		{"case sensitive", "roast", "The Roast Battle", 80},
		{"one substitution", "roast", "toast of the town", 80},
		{"one deletion", "roast", "rost", 75},
		{"accents", "Cuisine futée", "Roast", 20},
		{"empty query", "", "anything", 0},
		{"both empty", "", "", 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fuzzy.PartialRatio(tt.a, tt.b))
		})
	}
}

func TestPartialRatio_Ordering(t *testing.T) {
	exact := fuzzy.PartialRatio("roast", "roast")
	near := fuzzy.PartialRatio("roast", "rost")
	far := fuzzy.PartialRatio("roast", "Lucky")
	assert.Greater(t, exact, near)
	assert.Greater(t, near, far)
}
