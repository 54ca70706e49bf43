package match

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

func fullPrefs() domain.PreferenceSet {
	return domain.PreferenceSet{
		PlayStyles:         []string{"fetch"},
		EnergyPreference:   "moderate",
		SizePreference:     []string{"medium"},
		AgePreference:      []string{"adult"},
		PottyRequirement:   "must",
		KidsInHome:         "yes",
		PetsInHome:         []string{"dogs", "cats", "small_animals"},
		FirstTimeOwner:     "yes",
		AllergySensitivity: "have_allergies",
		SheddingLevels:     []string{"minimal"},
		NoisePreference:    "prefer_quiet",
		AloneTime:          "4to6",
	}
}

func perfectDog() domain.Dog {
	return domain.Dog{
		ID:                   1,
		Name:                 "Biscuit",
		Size:                 "medium",
		EnergyLevel:          "moderate",
		AgeYears:             fptr(3),
		PlayStyles:           []string{"fetch"},
		PottyTrained:         bptr(true),
		GoodWithKids:         bptr(true),
		GoodWithCats:         bptr(true),
		GoodWithDogs:         bptr(true),
		GoodWithSmallAnimals: bptr(true),
		FirstTimeFriendly:    bptr(true),
		Hypoallergenic:       bptr(true),
		SheddingLevel:        "minimal",
		BarkingLevel:         "quiet",
		MaxAloneHours:        fptr(8),
	}
}

func TestPerfectDogScoresFullWeight(t *testing.T) {
	res := scoreOne(t, perfectDog(), fullPrefs())
	require.Equal(t, 140, res.RawScore)
	require.Equal(t, 100.0, res.ScorePct)
}

func TestBreakdownSumsToRawScore(t *testing.T) {
	dogs := []domain.Dog{
		perfectDog(),
		{Name: "Blank"},
		{Name: "Partial", Size: "large", PottyTrained: bptr(false), GoodWithDogs: bptr(false)},
	}
	prefSets := []domain.PreferenceSet{
		fullPrefs(),
		{},
		{SizePreference: []string{"small"}, PottyRequirement: "preferred"},
	}
	for _, d := range dogs {
		for _, p := range prefSets {
			res := scoreOne(t, d, p)
			sum := 0
			for _, pts := range res.Breakdown {
				sum += pts
			}
			require.Equal(t, res.RawScore, sum)
			require.Len(t, res.Breakdown, 13)
		}
	}
}

func TestEmptyQuizScoresZeroWithoutError(t *testing.T) {
	res := scoreOne(t, perfectDog(), domain.PreferenceSet{})
	require.Equal(t, 0, res.RawScore)
	require.Equal(t, 0.0, res.ScorePct)
}

func TestActiveDenominatorIgnoresUnanswered(t *testing.T) {
	// Only play answered: half overlap of a weight-25 criterion.
	prefs := domain.PreferenceSet{PlayStyles: []string{"fetch", "tug"}}
	dog := domain.Dog{PlayStyles: []string{"fetch"}}

	res := scoreOne(t, dog, prefs)
	require.Equal(t, 13, res.RawScore)
	require.Equal(t, 52.0, res.ScorePct) // 13/25
}

func TestFixedDenominatorUsesFullTable(t *testing.T) {
	s := DefaultScheme()
	s.Mode = ModeFixed
	e, err := New(s)
	require.NoError(t, err)

	prefs := domain.PreferenceSet{PlayStyles: []string{"fetch", "tug"}}
	dog := domain.Dog{PlayStyles: []string{"fetch"}}

	res := e.Score(dog, prefs)
	require.Equal(t, 13, res.RawScore)
	require.Equal(t, 9.3, res.ScorePct) // 13/140
}

func TestZeroWeightCriterionNeverContributes(t *testing.T) {
	s := DefaultScheme()
	s.Weights[CriterionPlay] = 0
	e, err := New(s)
	require.NoError(t, err)

	res := e.Score(
		domain.Dog{PlayStyles: []string{"fetch"}},
		domain.PreferenceSet{PlayStyles: []string{"fetch"}},
	)
	require.Equal(t, 0, res.Breakdown[CriterionPlay])
	require.Equal(t, 0, res.RawScore)
}

func TestNewRejectsMalformedScheme(t *testing.T) {
	s := DefaultScheme()
	s.Weights[CriterionPlay] = -1
	_, err := New(s)
	require.Error(t, err)

	s = DefaultScheme()
	s.Weights["sparkle"] = 5
	_, err = New(s)
	require.Error(t, err)

	s = DefaultScheme()
	delete(s.Weights, CriterionNoise)
	_, err = New(s)
	require.Error(t, err)

	s = DefaultScheme()
	s.Fractions.AllergySoft = 1.5
	_, err = New(s)
	require.Error(t, err)
}

func TestLabelBands(t *testing.T) {
	e := newTestEngine(t)
	require.Equal(t, "Great match", e.Label(92))
	require.Equal(t, "Great match", e.Label(85))
	require.Equal(t, "Strong match", e.Label(84.9))
	require.Equal(t, "Strong match", e.Label(70))
	require.Equal(t, "Good match", e.Label(55))
	require.Equal(t, "Possible match", e.Label(54.9))
	require.Equal(t, "Possible match", e.Label(0))
}
