// Package match is the compatibility ranking engine: it scores a catalog of
// dogs against one adopter's quiz answers and returns a deterministic ordered
// list with a percentage and a per-criterion breakdown. The package does no
// I/O and never errors on data shape: missing or malformed fields degrade to
// the neutral/zero branch of the relevant scorer.
package match

import (
	"fmt"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

// Breakdown maps each configured criterion to the points it earned for one
// dog. Its values always sum to the dog's raw score.
type Breakdown map[Criterion]int

// RankedResult is one dog's position in a ranking.
type RankedResult struct {
	Dog       domain.Dog `json:"dog"`
	RawScore  int        `json:"raw_score"`
	ScorePct  float64    `json:"score_pct"`
	Breakdown Breakdown  `json:"breakdown"`
}

// Engine scores and ranks. It is safe for concurrent use: the scheme is
// read-only after construction.
type Engine struct {
	scheme      Scheme
	totalWeight int
}

// New builds an Engine, failing fast on a malformed scheme. A bad weight
// table is a configuration bug and must never reach scoring.
func New(scheme Scheme) (*Engine, error) {
	if err := scheme.Validate(); err != nil {
		return nil, fmt.Errorf("match: %w", err)
	}
	return &Engine{scheme: scheme, totalWeight: scheme.TotalWeight()}, nil
}

// Scheme returns the engine's configuration.
func (e *Engine) Scheme() Scheme { return e.scheme }

// Label maps a percentage onto the scheme's display bands.
func (e *Engine) Label(scorePct float64) string { return e.scheme.Label(scorePct) }

type scorer func(*Engine, prefView, dogView) criterionResult

var scorers = map[Criterion]scorer{
	CriterionPlay:      (*Engine).scorePlay,
	CriterionEnergy:    (*Engine).scoreEnergy,
	CriterionSize:      (*Engine).scoreSize,
	CriterionAge:       (*Engine).scoreAge,
	CriterionPotty:     (*Engine).scorePotty,
	CriterionKids:      (*Engine).scoreKids,
	CriterionCats:      (*Engine).scoreCats,
	CriterionFirstTime: (*Engine).scoreFirstTime,
	CriterionAllergy:   (*Engine).scoreAllergy,
	CriterionShedding:  (*Engine).scoreShedding,
	CriterionPets:      (*Engine).scorePets,
	CriterionNoise:     (*Engine).scoreNoise,
	CriterionAlone:     (*Engine).scoreAlone,
}

// Score evaluates one dog against one preference set. Total over any input
// pair: a dog with no optional fields at all still scores without error.
func (e *Engine) Score(dog domain.Dog, prefs domain.PreferenceSet) RankedResult {
	return e.score(buildDogView(dog), dog, buildPrefView(prefs))
}

func (e *Engine) score(d dogView, dog domain.Dog, p prefView) RankedResult {
	breakdown := make(Breakdown, len(criteria))
	raw := 0
	activeWeight := 0
	for _, c := range criteria {
		res := scorers[c](e, p, d)
		breakdown[c] = res.points
		raw += res.points
		if res.answered {
			activeWeight += e.scheme.Weights[c]
		}
	}

	denom := activeWeight
	if e.scheme.Mode == ModeFixed {
		denom = e.totalWeight
	}
	pct := 0.0
	if denom > 0 {
		pct = round1(100 * float64(raw) / float64(denom))
	}

	return RankedResult{
		Dog:       dog,
		RawScore:  raw,
		ScorePct:  pct,
		Breakdown: breakdown,
	}
}
