package match

import (
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

// prefView is a PreferenceSet after normalization: lowered tokens, folded
// legacy spellings, derived co-habitant needs. Built once per ranking call.
type prefView struct {
	play     []string
	energy   string
	sizes    []string
	ages     []string
	potty    string
	kids     string
	pets     []string
	first    string
	allergy  string
	shedding []string
	noise    string
	alone    string

	dogsNeeded   bool
	catsNeeded   bool
	smallNeeded  bool
	catsAnswered bool
}

func buildPrefView(p domain.PreferenceSet) prefView {
	v := prefView{
		play:     toLowerArray(p.PlayStyles),
		energy:   normEnergy(p.EnergyPreference),
		ages:     toLowerArray(p.AgePreference),
		potty:    normLower(p.PottyRequirement),
		kids:     normLower(p.KidsInHome),
		pets:     toLowerArray(p.PetsInHome),
		first:    normLower(p.FirstTimeOwner),
		allergy:  normAllergy(p.AllergySensitivity),
		noise:    normLower(p.NoisePreference),
		alone:    normLower(p.AloneTime),
	}
	for _, s := range toLowerArray(p.SizePreference) {
		v.sizes = append(v.sizes, normSize(s))
	}
	for _, s := range toLowerArray(p.SheddingLevels) {
		v.shedding = append(v.shedding, normShedding(s))
	}

	// The combined pets question supersedes the old standalone cats question,
	// but older saved quizzes may only carry the latter.
	if len(v.pets) > 0 {
		v.catsNeeded = containsToken(v.pets, "cats")
	} else {
		v.catsNeeded = normLower(p.CatsInHome) == "yes"
	}
	v.catsAnswered = len(v.pets) > 0 || normLower(p.CatsInHome) != ""
	v.dogsNeeded = containsToken(v.pets, "dogs")
	v.smallNeeded = containsToken(v.pets, "small_animals") || containsToken(v.pets, "small_pets")
	return v
}

// dogView is a Dog after normalization. Unknown stays unknown: pointer fields
// are carried through so scorers can tell "no" from "nobody recorded it".
type dogView struct {
	play      []string
	energy    string
	size      string
	ageBucket string
	shedding  string
	barking   string

	potty    *bool
	kids     *bool
	cats     *bool
	dogs     *bool
	small    *bool
	first    *bool
	hypo     *bool
	maxAlone *float64
}

func buildDogView(d domain.Dog) dogView {
	return dogView{
		play:      toLowerArray(d.PlayStyles),
		energy:    normEnergy(d.EnergyLevel),
		size:      normSize(d.Size),
		ageBucket: ageBucket(d.AgeYears),
		shedding:  normShedding(d.SheddingLevel),
		barking:   normBarking(d.BarkingLevel),
		potty:     d.PottyTrained,
		kids:      d.GoodWithKids,
		cats:      d.GoodWithCats,
		dogs:      d.GoodWithDogs,
		small:     d.GoodWithSmallAnimals,
		first:     d.FirstTimeFriendly,
		hypo:      d.Hypoallergenic,
		maxAlone:  d.MaxAloneHours,
	}
}

// criterionResult is one scorer's verdict: the points earned (0..weight) and
// whether the adopter answered the question at all. Unanswered criteria earn
// nothing and, in active mode, stay out of the denominator.
type criterionResult struct {
	points   int
	answered bool
}

func unanswered() criterionResult { return criterionResult{} }

func answered(points int) criterionResult {
	return criterionResult{points: points, answered: true}
}

func isTrue(b *bool) bool  { return b != nil && *b }
func isFalse(b *bool) bool { return b != nil && !*b }

// Multi-select overlap: weight * |pref ∩ dog| / |pref|, rounded. An open
// marker anywhere in the selection makes the whole field open.
func (e *Engine) scorePlay(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionPlay]
	switch {
	case e.scheme.anyOpen(CriterionPlay, p.play):
		return answered(w)
	case len(p.play) == 0:
		return unanswered()
	}
	matches := 0
	for _, style := range p.play {
		if containsToken(d.play, style) {
			matches++
		}
	}
	ratio := clamp01(float64(matches) / float64(len(p.play)))
	return answered(roundFrac(w, ratio))
}

// Exact-match scalar.
func (e *Engine) scoreEnergy(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionEnergy]
	switch {
	case p.energy == "":
		return unanswered()
	case e.scheme.isOpen(CriterionEnergy, p.energy):
		return answered(w)
	case d.energy == p.energy:
		return answered(w)
	default:
		return answered(0)
	}
}

func (e *Engine) scoreSize(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionSize]
	switch {
	case e.scheme.anyOpen(CriterionSize, p.sizes):
		return answered(w)
	case len(p.sizes) == 0:
		return unanswered()
	case containsToken(p.sizes, d.size):
		return answered(w)
	default:
		return answered(0)
	}
}

// Derived-bucket rule: the dog's continuous age buckets to puppy/adult/senior
// before comparison. An unbucketable age earns nothing unless the preference
// is open.
func (e *Engine) scoreAge(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionAge]
	switch {
	case e.scheme.anyOpen(CriterionAge, p.ages):
		return answered(w)
	case len(p.ages) == 0:
		return unanswered()
	case d.ageBucket != "" && containsToken(p.ages, d.ageBucket):
		return answered(w)
	default:
		return answered(0)
	}
}

// Three-tier graded rule: open / preferred-with-partial-credit / hard must.
func (e *Engine) scorePotty(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionPotty]
	switch {
	case p.potty == "":
		return unanswered()
	case e.scheme.isOpen(CriterionPotty, p.potty):
		return answered(w)
	case p.potty == "preferred":
		if isTrue(d.potty) {
			return answered(w)
		}
		return answered(roundFrac(w, e.scheme.Fractions.PottySoft))
	case p.potty == "must" || p.potty == "must_be_trained":
		if isTrue(d.potty) {
			return answered(w)
		}
		return answered(0)
	default:
		return answered(0)
	}
}

// A home without kids needs nothing from the dog; a home with kids (full time
// or visiting) needs an explicit good-with-kids flag.
func (e *Engine) scoreKids(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionKids]
	switch p.kids {
	case "":
		return unanswered()
	case "no":
		return answered(w)
	case "yes", "sometimes":
		if isTrue(d.kids) {
			return answered(w)
		}
		return answered(0)
	default:
		return answered(0)
	}
}

// Standalone cats criterion, kept alongside the combined pets question for
// older saved quizzes. Only an explicit cat-friendly flag earns credit.
func (e *Engine) scoreCats(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionCats]
	if !p.catsAnswered {
		return unanswered()
	}
	if !p.catsNeeded {
		// No cats in the home constrains nothing.
		return answered(w)
	}
	if isTrue(d.cats) {
		return answered(w)
	}
	return answered(0)
}

func (e *Engine) scoreFirstTime(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionFirstTime]
	switch {
	case p.first == "":
		return unanswered()
	case e.scheme.isOpen(CriterionFirstTime, p.first):
		return answered(w)
	case p.first == "yes":
		if isTrue(d.first) {
			return answered(w)
		}
		return answered(roundFrac(w, e.scheme.Fractions.FirstTimeSoft))
	default:
		return answered(0)
	}
}

func (e *Engine) scoreAllergy(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionAllergy]
	switch {
	case p.allergy == "":
		return unanswered()
	case e.scheme.isOpen(CriterionAllergy, p.allergy) || p.allergy == "no_allergies":
		return answered(w)
	case p.allergy == "mild_allergies":
		if isTrue(d.hypo) {
			return answered(w)
		}
		return answered(roundFrac(w, e.scheme.Fractions.AllergySoft))
	case p.allergy == "have_allergies":
		if isTrue(d.hypo) {
			return answered(w)
		}
		return answered(0)
	default:
		return answered(0)
	}
}

// Multi-select overlap with an unknown-data concession: a dog with no
// recorded shedding level earns half credit rather than zero.
func (e *Engine) scoreShedding(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionShedding]
	switch {
	case e.scheme.anyOpen(CriterionShedding, p.shedding):
		return answered(w)
	case len(p.shedding) == 0:
		return unanswered()
	case d.shedding == "":
		return answered(roundFrac(w, e.scheme.Fractions.SheddingUnknown))
	case containsToken(p.shedding, d.shedding):
		return answered(w)
	default:
		return answered(0)
	}
}

// Multi-need compatibility with soft penalties: start from full weight,
// subtract a large slice per declared co-habitant the dog is explicitly bad
// with and a small slice per co-habitant whose compatibility is unknown.
func (e *Engine) scorePets(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionPets]
	switch {
	case len(p.pets) == 0:
		return unanswered()
	case e.scheme.anyOpen(CriterionPets, p.pets):
		return answered(w)
	}

	score := w
	penalize := func(flag *bool) {
		if isFalse(flag) {
			score -= roundFrac(w, e.scheme.Fractions.PetsIncompatible)
		} else if flag == nil {
			score -= roundFrac(w, e.scheme.Fractions.PetsUnknown)
		}
	}
	if p.dogsNeeded {
		penalize(d.dogs)
	}
	if p.catsNeeded {
		penalize(d.cats)
	}
	if p.smallNeeded {
		penalize(d.small)
	}

	if score < 0 {
		score = 0
	}
	if score > w {
		score = w
	}
	return answered(score)
}

// Directional-comfort rule: an explicit (preference band, barking band) →
// fraction table. Unknown barking data is neutral, never a penalty.
func (e *Engine) scoreNoise(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionNoise]
	switch {
	case p.noise == "":
		return unanswered()
	case e.scheme.isOpen(CriterionNoise, p.noise) || d.barking == "":
		return answered(w)
	}

	near := e.scheme.Fractions.NoiseNearMiss
	quietOK := e.scheme.Fractions.NoiseQuietForAlert
	table := map[string]map[string]float64{
		"need_very_quiet": {"quiet": 1, "moderate": 0, "vocal": 0},
		"prefer_quiet":    {"quiet": 1, "moderate": near, "vocal": 0},
		"some_ok":         {"quiet": 1, "moderate": 1, "vocal": near},
		"alert_ok":        {"quiet": quietOK, "moderate": quietOK, "vocal": 1},
	}
	row, ok := table[p.noise]
	if !ok {
		return answered(w)
	}
	frac, ok := row[d.barking]
	if !ok {
		// Unrecognized barking token: treat like missing data.
		return answered(w)
	}
	return answered(roundFrac(w, frac))
}

// Numeric-threshold rule: the adopter's alone-time band maps to representative
// hours; the dog earns full credit when it can tolerate at least that long.
// Missing data on either side earns full credit so thin shelter records do
// not sink a dog.
func (e *Engine) scoreAlone(p prefView, d dogView) criterionResult {
	w := e.scheme.Weights[CriterionAlone]
	if p.alone == "" {
		return unanswered()
	}
	if e.scheme.isOpen(CriterionAlone, p.alone) {
		return answered(w)
	}
	hours := aloneHours(p.alone)
	if hours == 0 || d.maxAlone == nil {
		return answered(w)
	}
	if hours <= *d.maxAlone {
		return answered(w)
	}
	return answered(0)
}
