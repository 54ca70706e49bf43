package match

import (
	"fmt"
	"sort"
)

// Criterion is one independently weighted axis of compatibility.
type Criterion string

const (
	CriterionPlay      Criterion = "play"
	CriterionEnergy    Criterion = "energy"
	CriterionSize      Criterion = "size"
	CriterionAge       Criterion = "age"
	CriterionPotty     Criterion = "potty"
	CriterionKids      Criterion = "kids"
	CriterionCats      Criterion = "cats"
	CriterionFirstTime Criterion = "first_time"
	CriterionAllergy   Criterion = "allergy"
	CriterionShedding  Criterion = "shedding"
	CriterionPets      Criterion = "pets"
	CriterionNoise     Criterion = "noise"
	CriterionAlone     Criterion = "alone"
)

// criteria is the canonical evaluation order. Breakdown maps are unordered;
// everything that needs a stable order (aggregation, tests) iterates this.
var criteria = []Criterion{
	CriterionPlay,
	CriterionEnergy,
	CriterionSize,
	CriterionAge,
	CriterionPotty,
	CriterionKids,
	CriterionCats,
	CriterionFirstTime,
	CriterionAllergy,
	CriterionShedding,
	CriterionPets,
	CriterionNoise,
	CriterionAlone,
}

// Mode selects the percentage denominator.
type Mode string

const (
	// ModeActive divides by the summed weight of answered criteria only, so
	// the percentage reads "fit among what you told us".
	ModeActive Mode = "active"
	// ModeFixed divides by the full weight table regardless of how much of
	// the quiz was filled in.
	ModeFixed Mode = "fixed"
)

// Fractions are the partial-credit and penalty knobs shared by the graded
// scorers. All values are fractions of the criterion's weight in [0,1].
type Fractions struct {
	// Credit when the adopter said "preferred" but the dog isn't potty
	// trained (or its training status is unknown).
	PottySoft float64 `yaml:"potty_soft" json:"potty_soft"`
	// Credit for a first-time owner when the dog isn't flagged beginner
	// friendly.
	FirstTimeSoft float64 `yaml:"first_time_soft" json:"first_time_soft"`
	// Credit for mild allergies when the dog isn't hypoallergenic.
	AllergySoft float64 `yaml:"allergy_soft" json:"allergy_soft"`
	// Credit when the dog's shedding level is unknown.
	SheddingUnknown float64 `yaml:"shedding_unknown" json:"shedding_unknown"`
	// Deduction per co-habitant animal the dog is explicitly bad with.
	PetsIncompatible float64 `yaml:"pets_incompatible" json:"pets_incompatible"`
	// Deduction per co-habitant animal whose compatibility is unknown.
	PetsUnknown float64 `yaml:"pets_unknown" json:"pets_unknown"`
	// Credit for a moderate barker when the adopter prefers quiet.
	NoiseNearMiss float64 `yaml:"noise_near_miss" json:"noise_near_miss"`
	// Credit for a quieter-than-requested dog when the adopter wants an
	// alert dog.
	NoiseQuietForAlert float64 `yaml:"noise_quiet_for_alert" json:"noise_quiet_for_alert"`
}

// LabelBand maps a minimum percentage to a human label.
type LabelBand struct {
	MinPct float64 `yaml:"min_pct" json:"min_pct"`
	Label  string  `yaml:"label" json:"label"`
}

// Scheme is the whole tunable surface of the engine: the weight table, the
// per-criterion open-marker token sets, the graded-credit fractions, and the
// match label bands. A Scheme is read-only once an Engine is built from it;
// several schemes can coexist in one process.
type Scheme struct {
	Mode        Mode                  `yaml:"mode" json:"mode"`
	Weights     map[Criterion]int     `yaml:"weights" json:"weights"`
	OpenMarkers map[Criterion][]string `yaml:"open_markers" json:"open_markers"`
	Fractions   Fractions             `yaml:"fractions" json:"fractions"`
	Labels      []LabelBand           `yaml:"labels" json:"labels"`
	// FallbackLabel is used below the lowest band.
	FallbackLabel string `yaml:"fallback_label" json:"fallback_label"`
}

// DefaultScheme returns the production weighting. The numbers are the tuned
// values the matching quiz shipped with; change them in config, not here.
func DefaultScheme() Scheme {
	return Scheme{
		Mode: ModeActive,
		Weights: map[Criterion]int{
			CriterionPlay:      25,
			CriterionEnergy:    10,
			CriterionSize:      15,
			CriterionAge:       10,
			CriterionPotty:     15,
			CriterionKids:      10,
			CriterionCats:      10,
			CriterionFirstTime: 5,
			CriterionAllergy:   10,
			CriterionShedding:  10,
			CriterionPets:      10,
			CriterionNoise:     5,
			CriterionAlone:     5,
		},
		OpenMarkers: map[Criterion][]string{
			CriterionPlay:      {"no_preference", "any"},
			CriterionEnergy:    {"any", "flexible", "no_preference"},
			CriterionSize:      {"any", "flexible"},
			CriterionAge:       {"any", "flexible"},
			CriterionPotty:     {"no_matter", "flexible"},
			CriterionFirstTime: {"no", "not_sure"},
			CriterionAllergy:   {"no_allergies", "none"},
			CriterionShedding:  {"no_preference", "any", "flexible"},
			CriterionPets:      {"none", "not_sure"},
			CriterionNoise:     {"no_pref", "no_preference"},
			CriterionAlone:     {"not_sure"},
		},
		Fractions: Fractions{
			PottySoft:          0.35,
			FirstTimeSoft:      0.35,
			AllergySoft:        0.40,
			SheddingUnknown:    0.50,
			PetsIncompatible:   0.60,
			PetsUnknown:        0.15,
			NoiseNearMiss:      0.60,
			NoiseQuietForAlert: 0.70,
		},
		Labels: []LabelBand{
			{MinPct: 85, Label: "Great match"},
			{MinPct: 70, Label: "Strong match"},
			{MinPct: 55, Label: "Good match"},
		},
		FallbackLabel: "Possible match",
	}
}

// Validate rejects configuration bugs loudly: a malformed scheme is a
// programming/config error, not a data-quality issue, so it must never make
// it into a running Engine.
func (s Scheme) Validate() error {
	if s.Mode != ModeActive && s.Mode != ModeFixed {
		return fmt.Errorf("scheme: unknown mode %q", s.Mode)
	}
	known := make(map[Criterion]bool, len(criteria))
	for _, c := range criteria {
		known[c] = true
	}
	for c, w := range s.Weights {
		if !known[c] {
			return fmt.Errorf("scheme: unknown criterion %q in weights", c)
		}
		if w < 0 {
			return fmt.Errorf("scheme: negative weight %d for %q", w, c)
		}
	}
	for _, c := range criteria {
		if _, ok := s.Weights[c]; !ok {
			return fmt.Errorf("scheme: missing weight for %q", c)
		}
	}
	for c := range s.OpenMarkers {
		if !known[c] {
			return fmt.Errorf("scheme: unknown criterion %q in open_markers", c)
		}
	}
	for name, f := range map[string]float64{
		"potty_soft":            s.Fractions.PottySoft,
		"first_time_soft":       s.Fractions.FirstTimeSoft,
		"allergy_soft":          s.Fractions.AllergySoft,
		"shedding_unknown":      s.Fractions.SheddingUnknown,
		"pets_incompatible":     s.Fractions.PetsIncompatible,
		"pets_unknown":          s.Fractions.PetsUnknown,
		"noise_near_miss":       s.Fractions.NoiseNearMiss,
		"noise_quiet_for_alert": s.Fractions.NoiseQuietForAlert,
	} {
		if f < 0 || f > 1 {
			return fmt.Errorf("scheme: fraction %s=%v out of [0,1]", name, f)
		}
	}
	return nil
}

// TotalWeight is the fixed denominator: the sum of every configured weight.
func (s Scheme) TotalWeight() int {
	total := 0
	for _, c := range criteria {
		total += s.Weights[c]
	}
	return total
}

// Label maps a percentage to its display band.
func (s Scheme) Label(scorePct float64) string {
	bands := make([]LabelBand, len(s.Labels))
	copy(bands, s.Labels)
	sort.Slice(bands, func(i, j int) bool { return bands[i].MinPct > bands[j].MinPct })
	for _, b := range bands {
		if scorePct >= b.MinPct {
			return b.Label
		}
	}
	return s.FallbackLabel
}

func (s Scheme) isOpen(c Criterion, token string) bool {
	for _, m := range s.OpenMarkers[c] {
		if m == token {
			return true
		}
	}
	return false
}

func (s Scheme) anyOpen(c Criterion, tokens []string) bool {
	for _, t := range tokens {
		if s.isOpen(c, t) {
			return true
		}
	}
	return false
}
