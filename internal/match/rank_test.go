package match

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

func TestRankOrdersBestFirst(t *testing.T) {
	e := newTestEngine(t)
	prefs := domain.PreferenceSet{SizePreference: []string{"small"}, EnergyPreference: "low"}

	dogs := []domain.Dog{
		{ID: 1, Name: "Rex", Size: "large", EnergyLevel: "high"},
		{ID: 2, Name: "Pip", Size: "small", EnergyLevel: "low"},
		{ID: 3, Name: "Mo", Size: "small", EnergyLevel: "high"},
	}

	ranked := e.Rank(dogs, prefs)
	require.Len(t, ranked, 3)
	require.Equal(t, "Pip", ranked[0].Dog.Name)
	require.Equal(t, "Mo", ranked[1].Dog.Name)
	require.Equal(t, "Rex", ranked[2].Dog.Name)
}

func TestRankTieBreaksAreDeterministic(t *testing.T) {
	e := newTestEngine(t)
	prefs := domain.PreferenceSet{} // everyone ties at zero

	dogs := []domain.Dog{
		{ID: 9, Name: "zeus"},
		{ID: 4, Name: "Apollo"},
		{ID: 2, Name: "apollo"}, // same name, different case and id
		{ID: 7, Name: "Luna"},
	}

	ranked := e.Rank(dogs, prefs)
	require.Equal(t, []int64{2, 4, 7, 9}, []int64{
		ranked[0].Dog.ID, ranked[1].Dog.ID, ranked[2].Dog.ID, ranked[3].Dog.ID,
	})

	// Same inputs, same order, every time.
	for i := 0; i < 20; i++ {
		again := e.Rank(dogs, prefs)
		for j := range ranked {
			require.Equal(t, ranked[j].Dog.ID, again[j].Dog.ID)
		}
	}
}

func TestRankKeepsEveryDog(t *testing.T) {
	e := newTestEngine(t)
	dogs := []domain.Dog{
		perfectDog(),
		{ID: 2, Name: "Mystery"}, // nothing known about this dog
	}

	ranked := e.Rank(dogs, fullPrefs())
	require.Len(t, ranked, 2)
	require.Equal(t, "Biscuit", ranked[0].Dog.Name)
	require.Equal(t, "Mystery", ranked[1].Dog.Name)
}

func TestRankEmptyCatalog(t *testing.T) {
	e := newTestEngine(t)
	require.Empty(t, e.Rank(nil, fullPrefs()))
}

func TestMoreAnsweredDataNeverLowersRawScore(t *testing.T) {
	e := newTestEngine(t)

	sparse := domain.PreferenceSet{SizePreference: []string{"medium"}}
	richer := sparse
	richer.EnergyPreference = "moderate"

	dog := perfectDog()
	require.GreaterOrEqual(t,
		e.Score(dog, richer).RawScore,
		e.Score(dog, sparse).RawScore,
	)
}
