package store

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReconcileTasks(t *testing.T) {
	tests := []struct {
		name       string
		stored     []string
		requested  []string
		wantAdd    []string
		wantRemove []string
	}{
		{"unchanged", []string{"Reading", "Sports"}, []string{"Sports", "Reading"}, nil, nil},
		{"add only", []string{"Reading"}, []string{"Reading", "Yoga"}, []string{"Yoga"}, nil},
		{"remove only", []string{"Reading", "Sports"}, []string{"Reading"}, nil, []string{"Sports"}},
		{"replace all", []string{"A", "B"}, []string{"C"}, []string{"C"}, []string{"A", "B"}},
		{"clear", []string{"A", "A"}, nil, nil, []string{"A"}},
		{"blanks and repeats", nil, []string{" ", "Yoga", "Yoga ", ""}, []string{"Yoga"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			add, remove := ReconcileTasks(tt.stored, tt.requested)
			assert.Equal(t, tt.wantAdd, add)
			assert.Equal(t, tt.wantRemove, remove)
		})
	}
}

func TestNormalizeImagePath(t *testing.T) {
	assert.Equal(t, "uploads/assets/lists_for_life/wishlist/bike.png",
		NormalizeImagePath(`uploads\assets\lists_for_life\wishlist\bike.png`))
	assert.Equal(t, "a/b.png", NormalizeImagePath(" a//b.png "))
	assert.Equal(t, "", NormalizeImagePath("  "))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", formatDate(d))

	for _, bad := range []string{"", "2023-02-29", "29.02.2024", "2024-2-1"} {
		_, err := ParseDate(bad)
		assert.True(t, errors.Is(err, ErrInvalid), "ParseDate(%q) = %v", bad, err)
	}
}

func TestValidation(t *testing.T) {
	_, err := month("Smarch")
	assert.ErrorIs(t, err, ErrInvalid)
	m, err := month(" march ")
	require.NoError(t, err)
	assert.Equal(t, "March", m)

	_, err = weekday("Funday")
	assert.ErrorIs(t, err, ErrInvalid)

	assert.ErrorIs(t, validYear(0), ErrInvalid)
	assert.NoError(t, validYear(2025))

	assert.True(t, colourCode.MatchString("#A1b2C3"))
	assert.False(t, colourCode.MatchString("red"))
	assert.False(t, colourCode.MatchString("#abc"))

	neg := decimal.RequireFromString("-1")
	_, err = priceArg(&neg)
	assert.ErrorIs(t, err, ErrInvalid)
	p := decimal.RequireFromString("12.5")
	arg, err := priceArg(&p)
	require.NoError(t, err)
	assert.Equal(t, "12.50", arg)

	for _, tooBig := range []string{"10000000000", "9999999999.999", "1e12"} {
		big := decimal.RequireFromString(tooBig)
		_, err = priceArg(&big)
		assert.ErrorIs(t, err, ErrInvalid, tooBig)
	}
	top := decimal.RequireFromString("9999999999.99")
	arg, err = priceArg(&top)
	require.NoError(t, err)
	assert.Equal(t, "9999999999.99", arg)
}
