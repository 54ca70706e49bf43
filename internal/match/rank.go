package match

import (
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

// Rank scores every dog against the preference set and returns them ordered
// best first. No dog is dropped; filtering is the caller's concern. Output is
// reproducible: the same inputs always yield byte-identical order.
func (e *Engine) Rank(dogs []domain.Dog, prefs domain.PreferenceSet) []RankedResult {
	results := make([]RankedResult, len(dogs))
	if len(dogs) == 0 {
		return results
	}

	p := buildPrefView(prefs)

	// Scoring is an independent map per dog; fan it out. Each goroutine owns
	// its index slot, so parallelism cannot leak into the final order.
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range dogs {
		g.Go(func() error {
			results[i] = e.score(buildDogView(dogs[i]), dogs[i], p)
			return nil
		})
	}
	_ = g.Wait() // scorers never error

	sort.Slice(results, func(i, j int) bool {
		return lessRanked(results[i], results[j])
	})
	return results
}

// lessRanked is the ranking comparator: raw score descending, then percentage
// descending, then name (case-insensitive) ascending, then id ascending as
// the final total-order tie break.
func lessRanked(a, b RankedResult) bool {
	if a.RawScore != b.RawScore {
		return a.RawScore > b.RawScore
	}
	if a.ScorePct != b.ScorePct {
		return a.ScorePct > b.ScorePct
	}
	an := strings.ToLower(strings.TrimSpace(a.Dog.Name))
	bn := strings.ToLower(strings.TrimSpace(b.Dog.Name))
	if an != bn {
		return an < bn
	}
	return a.Dog.ID < b.Dog.ID
}
