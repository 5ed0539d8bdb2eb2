package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFontSizeDelta(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3", 3},
		{"+2px", 2},
		{" -4.9 ", -4},
		{"12", 5},
		{"-99", -5},
		{"abc", 0},
		{"", 0},
		{"+", 0},
		{"99999999999999999999999", 5},
		{"-99999999999999999999999", -5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseFontSizeDelta(tt.in))
		})
	}
}

func TestDomainConfig_SentinelValuesClearFields(t *testing.T) {
	c := NewDomainConfig("a.com")

	c.SetFont("Arial")
	c.SetFontSizeDelta(3)
	require.NoError(t, c.SetScaleFactor(1.5))
	assert.False(t, c.IsEmpty())

	c.SetFont("  ")
	assert.Nil(t, c.Font)

	c.SetFontSizeDelta(0)
	assert.Nil(t, c.FontSizeDelta)

	require.NoError(t, c.SetScaleFactor(1))
	assert.Nil(t, c.ScaleFactor)

	assert.True(t, c.IsEmpty())
}

func TestDomainConfig_SetFontSizeDeltaClamps(t *testing.T) {
	c := NewDomainConfig("a.com")
	c.SetFontSizeDelta(42)
	require.NotNil(t, c.FontSizeDelta)
	assert.Equal(t, FontSizeDeltaMax, *c.FontSizeDelta)

	c.SetFontSizeDelta(-42)
	assert.Equal(t, FontSizeDeltaMin, *c.FontSizeDelta)
}

func TestDomainConfig_SetScaleFactorRejectsInvalid(t *testing.T) {
	c := NewDomainConfig("a.com")
	for _, f := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		assert.ErrorIs(t, c.SetScaleFactor(f), ErrInvalidScale)
	}
	assert.Nil(t, c.ScaleFactor)

	require.NoError(t, c.SetScaleFactor(10))
	assert.Equal(t, ScaleMax, *c.ScaleFactor)
}

func TestDomainConfig_SetRaw(t *testing.T) {
	c := NewDomainConfig("a.com")
	require.NoError(t, c.SetRaw(FieldFont, "Fira Sans"))
	require.NoError(t, c.SetRaw(FieldFontSizeDelta, "7"))
	require.NoError(t, c.SetRaw(FieldScaleFactor, "1.25"))

	assert.Equal(t, "Fira Sans", *c.Font)
	assert.Equal(t, 5, *c.FontSizeDelta)
	assert.InDelta(t, 1.25, *c.ScaleFactor, 1e-9)

	assert.ErrorIs(t, c.SetRaw(FieldScaleFactor, "big"), ErrInvalidScale)
	assert.ErrorIs(t, c.SetRaw(SettingField("color"), "red"), ErrUnknownField)
}

func TestDomainConfig_CloneIsDeep(t *testing.T) {
	c := NewDomainConfig("a.com")
	c.SetFont("Arial")
	clone := c.Clone()
	clone.SetFont("Georgia")
	assert.Equal(t, "Arial", *c.Font)
}

func TestDomainConfig_SummaryLines(t *testing.T) {
	c := NewDomainConfig("a.com")
	c.SetFont("Arial")
	c.SetFontSizeDelta(-2)
	require.NoError(t, c.SetScaleFactor(1.5))

	assert.Equal(t, []string{
		"Domain: a.com, Font: Arial",
		"Domain: a.com, Font Size delta: -2px",
		"Domain: a.com, Scaling Factor: 1.5",
	}, c.SummaryLines())

	c.SetFontSizeDelta(3)
	assert.Contains(t, c.SummaryLines(), "Domain: a.com, Font Size delta: +3px")
}

func TestParseSettingField(t *testing.T) {
	for in, want := range map[string]SettingField{
		"font":          FieldFont,
		"font-size":     FieldFontSizeDelta,
		"fontSizeDelta": FieldFontSizeDelta,
		"scaling":       FieldScaleFactor,
		"scaleFactor":   FieldScaleFactor,
	} {
		got, err := ParseSettingField(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseSettingField("color")
	assert.ErrorIs(t, err, ErrUnknownField)
}

func TestStyleActions(t *testing.T) {
	assert.Equal(t, StyleReset, FontAction(""))
	assert.Equal(t, StyleApply, FontAction("Arial"))
	assert.Equal(t, StyleReset, FontSizeDeltaAction(0))
	assert.Equal(t, StyleApply, FontSizeDeltaAction(-1))
	assert.Equal(t, StyleReset, ScaleAction(1))
	assert.Equal(t, StyleApply, ScaleAction(0.9))
}
