package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func fptr(f float64) *float64 { return &f }

func TestAgeBucket(t *testing.T) {
	tests := []struct {
		name string
		age  *float64
		want string
	}{
		{"nil is unknown", nil, ""},
		{"newborn", fptr(0), "puppy"},
		{"just under two", fptr(1.9), "puppy"},
		{"two is adult", fptr(2), "adult"},
		{"just under seven", fptr(6.9), "adult"},
		{"seven is senior", fptr(7), "senior"},
		{"very old", fptr(15), "senior"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, ageBucket(tt.age))
		})
	}
}

func TestAloneHours(t *testing.T) {
	tests := []struct {
		band string
		want float64
	}{
		{"lt4", 3},
		{"4to6", 5},
		{"4_6", 5},
		{"6to8", 7},
		{"6_8", 7},
		{"gt8", 9},
		{"8_plus", 9},
		{"", 0},
		{"whenever", 0},
	}
	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			require.Equal(t, tt.want, aloneHours(tt.band))
		})
	}
}

func TestNormSize(t *testing.T) {
	require.Equal(t, "extra_large", normSize("XL"))
	require.Equal(t, "extra_large", normSize("Extra Large"))
	require.Equal(t, "extra_large", normSize("x-large"))
	require.Equal(t, "small", normSize(" Small "))
	require.Equal(t, "", normSize(""))
}

func TestNormEnergy(t *testing.T) {
	require.Equal(t, "moderate", normEnergy("Medium"))
	require.Equal(t, "moderate", normEnergy("moderate"))
	require.Equal(t, "high", normEnergy("HIGH"))
}

func TestNormBarking(t *testing.T) {
	require.Equal(t, "quiet", normBarking("Rarely barks"))
	require.Equal(t, "quiet", normBarking("low"))
	require.Equal(t, "moderate", normBarking("Some barking"))
	require.Equal(t, "moderate", normBarking("medium"))
	require.Equal(t, "vocal", normBarking("Very vocal"))
	require.Equal(t, "vocal", normBarking("high"))
	require.Equal(t, "", normBarking(""))
}

func TestNormShedding(t *testing.T) {
	require.Equal(t, "minimal", normShedding("Minimal"))
	require.Equal(t, "minimal", normShedding("low"))
	require.Equal(t, "moderate", normShedding("medium"))
	require.Equal(t, "heavy_ok", normShedding("Heavy"))
	require.Equal(t, "heavy_ok", normShedding("high"))
}

func TestNormAllergy(t *testing.T) {
	// Both token generations fold to the same set.
	require.Equal(t, "no_allergies", normAllergy("none"))
	require.Equal(t, "no_allergies", normAllergy("no_allergies"))
	require.Equal(t, "mild_allergies", normAllergy("mild"))
	require.Equal(t, "mild_allergies", normAllergy("mild_allergies"))
	require.Equal(t, "have_allergies", normAllergy("needs_low_shedding"))
	require.Equal(t, "have_allergies", normAllergy("have_allergies"))
}

func TestToArrayFlexible(t *testing.T) {
	require.Equal(t, []string{"fetch", "tug"}, toArrayFlexible([]string{"fetch, tug"}))
	require.Equal(t, []string{"fetch", "tug"}, toArrayFlexible([]string{" fetch ", "tug"}))
	require.Nil(t, toArrayFlexible([]string{"", "  "}))
	require.Nil(t, toArrayFlexible(nil))
}

func TestRoundFrac(t *testing.T) {
	require.Equal(t, 13, roundFrac(25, 0.5))
	require.Equal(t, 5, roundFrac(15, 0.35))
	require.Equal(t, 4, roundFrac(10, 0.4))
	require.Equal(t, 4, roundFrac(5, 0.7))
	require.Equal(t, 0, roundFrac(10, 0))
	require.Equal(t, 10, roundFrac(10, 1))
}
