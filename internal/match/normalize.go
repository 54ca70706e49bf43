package match

import (
	"math"
	"strings"
)

// The normalizers are total: any input, including nil/empty/garbage, maps to
// a canonical value. Nothing in this file returns an error.

func normString(v string) string {
	return strings.TrimSpace(v)
}

func normLower(v string) string {
	return strings.ToLower(normString(v))
}

// toArrayFlexible accepts the shapes quiz answers arrive in: a cleaned slice,
// a comma-separated string, a single token, or nothing.
func toArrayFlexible(vs []string) []string {
	var out []string
	for _, v := range vs {
		v = normString(v)
		if v == "" {
			continue
		}
		if strings.Contains(v, ",") {
			for _, p := range strings.Split(v, ",") {
				if p = normString(p); p != "" {
					out = append(out, p)
				}
			}
			continue
		}
		out = append(out, v)
	}
	return out
}

func toLowerArray(vs []string) []string {
	arr := toArrayFlexible(vs)
	for i, v := range arr {
		arr[i] = strings.ToLower(v)
	}
	return arr
}

func containsToken(arr []string, token string) bool {
	for _, v := range arr {
		if v == token {
			return true
		}
	}
	return false
}

// Age buckets: puppy under 2, adult 2 to 6, senior 7+. Unknown buckets to "".
const (
	bucketPuppy  = "puppy"
	bucketAdult  = "adult"
	bucketSenior = "senior"
)

func ageBucket(ageYears *float64) string {
	if ageYears == nil || math.IsNaN(*ageYears) || math.IsInf(*ageYears, 0) {
		return ""
	}
	switch n := *ageYears; {
	case n < 2:
		return bucketPuppy
	case n < 7:
		return bucketAdult
	default:
		return bucketSenior
	}
}

// normSize folds the size spellings different shelters use onto the four
// canonical tokens.
func normSize(v string) string {
	s := normLower(v)
	switch {
	case s == "":
		return ""
	case s == "xl" || s == "x-large" || strings.Contains(s, "extra"):
		return "extra_large"
	default:
		return s
	}
}

// normEnergy folds "medium" (a common shelter spelling) onto "moderate".
func normEnergy(v string) string {
	s := normLower(v)
	if s == "medium" {
		return "moderate"
	}
	return s
}

// normBarking folds free-text barking descriptions onto quiet/moderate/vocal.
func normBarking(v string) string {
	s := normLower(v)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "quiet") || strings.Contains(s, "rare") || s == "low":
		return "quiet"
	case strings.Contains(s, "mod") || strings.Contains(s, "some") || s == "medium":
		return "moderate"
	case strings.Contains(s, "vocal") || strings.Contains(s, "high") || strings.Contains(s, "often"):
		return "vocal"
	default:
		return s
	}
}

// normShedding folds shedding descriptions onto the quiz's answer tokens.
func normShedding(v string) string {
	s := normLower(v)
	switch {
	case s == "":
		return ""
	case strings.Contains(s, "min") || s == "low":
		return "minimal"
	case strings.Contains(s, "mod") || s == "medium":
		return "moderate"
	case strings.Contains(s, "heavy") || s == "high":
		return "heavy_ok"
	default:
		return s
	}
}

// aloneHours maps an alone-time band to a representative hour count. Both the
// quiz's underscore spellings and the legacy short tokens are accepted.
// Unknown bands map to 0 (treated as unanswered).
func aloneHours(band string) float64 {
	switch normLower(band) {
	case "lt4":
		return 3
	case "4to6", "4_6":
		return 5
	case "6to8", "6_8":
		return 7
	case "gt8", "8_plus":
		return 9
	default:
		return 0
	}
}

// normAllergy folds both generations of allergy answer tokens onto one set.
func normAllergy(v string) string {
	switch normLower(v) {
	case "none", "no_allergies":
		return "no_allergies"
	case "mild", "mild_allergies":
		return "mild_allergies"
	case "have_allergies", "needs_low_shedding":
		return "have_allergies"
	default:
		return normLower(v)
	}
}

func clamp01(x float64) float64 {
	if math.IsNaN(x) {
		return 0
	}
	return math.Max(0, math.Min(1, x))
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}

func roundFrac(weight int, frac float64) int {
	return int(math.Round(float64(weight) * frac))
}
