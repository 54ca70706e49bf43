package match

import (
	"fmt"
	"sort"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

// DefaultReasonLimit caps how many reasons a card shows.
const DefaultReasonLimit = 3

// reasonLabels maps breakdown keys to the short labels shown on match cards.
// Only keys present here may ever appear in explanation output.
var reasonLabels = map[Criterion]string{
	CriterionPlay:      "play style",
	CriterionEnergy:    "energy",
	CriterionSize:      "size",
	CriterionAge:       "age",
	CriterionPotty:     "potty training",
	CriterionKids:      "kids",
	CriterionCats:      "cats",
	CriterionFirstTime: "first-time owner",
	CriterionAllergy:   "allergies",
	CriterionShedding:  "shedding",
	CriterionPets:      "pets",
	CriterionNoise:     "noise",
	CriterionAlone:     "alone time",
}

// excludedReasonKeys are bookkeeping fields that ride along when a breakdown
// has been round-tripped through storage. They must never surface as reasons.
var excludedReasonKeys = map[Criterion]bool{
	"raw_score":        true,
	"score_pct":        true,
	"total_score":      true,
	"normalized_score": true,
	"completion_pct":   true,
}

// genericReason is the last resort when neither a breakdown nor any salient
// dog attribute is available.
const genericReason = "Based on what we know so far"

// Reasons derives up to limit short human-readable reasons for a dog's rank.
// With a breakdown it picks the highest-earning criteria; without one (or
// when too few criteria earned points) it falls back to the dog's salient
// known attributes. It never returns an empty slice.
func Reasons(breakdown Breakdown, dog domain.Dog, limit int) []string {
	if limit <= 0 {
		limit = DefaultReasonLimit
	}

	var reasons []string
	push := func(msg string) {
		if msg == "" || len(reasons) >= limit {
			return
		}
		for _, r := range reasons {
			if r == msg {
				return
			}
		}
		reasons = append(reasons, msg)
	}

	if len(breakdown) > 0 {
		type entry struct {
			c   Criterion
			pts int
		}
		var entries []entry
		for c, pts := range breakdown {
			if pts <= 0 || excludedReasonKeys[c] {
				continue
			}
			if _, ok := reasonLabels[c]; !ok {
				continue
			}
			entries = append(entries, entry{c, pts})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].pts != entries[j].pts {
				return entries[i].pts > entries[j].pts
			}
			return criterionOrder(entries[i].c) < criterionOrder(entries[j].c)
		})
		for _, en := range entries {
			push(reasonLabels[en.c])
		}
	}

	if len(reasons) < limit {
		for _, f := range attributeFallbacks(dog) {
			push(f)
		}
	}

	if len(reasons) == 0 {
		return []string{genericReason}
	}
	return reasons
}

func criterionOrder(c Criterion) int {
	for i, k := range criteria {
		if k == c {
			return i
		}
	}
	return len(criteria)
}

// attributeFallbacks lists "good to know" facts in a fixed order, used when a
// dog has too few positive criteria (or the adopter never took the quiz).
func attributeFallbacks(dog domain.Dog) []string {
	var out []string
	if dog.Size != "" {
		out = append(out, "Size: "+dog.Size)
	}
	if dog.EnergyLevel != "" {
		out = append(out, "Energy: "+dog.EnergyLevel)
	}
	if b := ageBucket(dog.AgeYears); b != "" {
		out = append(out, "Age: "+b)
	}
	if isTrue(dog.Hypoallergenic) {
		out = append(out, "Hypoallergenic")
	}
	if isTrue(dog.PottyTrained) {
		out = append(out, "Potty trained")
	}
	if isTrue(dog.GoodWithKids) {
		out = append(out, "Good with kids")
	}
	if isTrue(dog.GoodWithCats) {
		out = append(out, "Good with cats")
	}
	if isTrue(dog.GoodWithDogs) {
		out = append(out, "Good with other dogs")
	}
	return out
}

// PersonalizedReasons phrases reasons against the adopter's own answers
// ("Fits your preferred size"), claiming a match only where the dog's data
// explicitly supports it. Used on detail views where the quiz answers are at
// hand; falls back exactly like Reasons.
func PersonalizedReasons(dog domain.Dog, prefs domain.PreferenceSet, limit int) []string {
	if limit <= 0 {
		limit = DefaultReasonLimit
	}
	p := buildPrefView(prefs)
	d := buildDogView(dog)

	var reasons []string
	push := func(msg string) {
		if msg == "" || len(reasons) >= limit {
			return
		}
		for _, r := range reasons {
			if r == msg {
				return
			}
		}
		reasons = append(reasons, msg)
	}

	if p.energy != "" && d.energy != "" && p.energy == d.energy {
		push(fmt.Sprintf("Energy level matches what you want (%s)", dog.EnergyLevel))
	}
	if len(p.sizes) > 0 && d.size != "" && containsToken(p.sizes, d.size) {
		push(fmt.Sprintf("Fits your preferred size (%s)", dog.Size))
	}
	if len(p.ages) > 0 && d.ageBucket != "" && containsToken(p.ages, d.ageBucket) {
		push(fmt.Sprintf("Age matches what you're looking for (%s)", d.ageBucket))
	}
	if p.dogsNeeded && isTrue(d.dogs) {
		push("Good with other dogs")
	}
	if p.catsNeeded && isTrue(d.cats) {
		push("Cat-friendly")
	}
	if p.smallNeeded && isTrue(d.small) {
		push("Okay with small animals")
	}
	if p.noise != "" && d.barking != "" {
		if (p.noise == "prefer_quiet" || p.noise == "need_very_quiet") && d.barking == "quiet" {
			push("Lower barking tendency")
		} else if p.noise == "alert_ok" && d.barking == "vocal" {
			push("More vocal / good alert dog")
		}
	}
	if p.alone != "" && d.maxAlone != nil {
		if h := aloneHours(p.alone); h > 0 && h <= *d.maxAlone {
			push("Can handle your daily alone-time schedule")
		}
	}
	if p.allergy == "have_allergies" && isTrue(d.hypo) {
		push("Better fit for allergy-sensitive homes")
	}

	if len(reasons) < limit {
		for _, f := range attributeFallbacks(dog) {
			push(f)
		}
	}
	if len(reasons) == 0 {
		return []string{genericReason}
	}
	return reasons
}
