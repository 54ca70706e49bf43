package util

import (
	"regexp"
	"strconv"
	"strings"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

var (
	reYears  = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:years?|yrs?|y\b)`)
	reMonths = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:months?|mos?|m\b)`)
	reNumber = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseAgeYears reads shelter age text like "2 years", "8 months",
// "1 year 6 months" or a bare number. Unparseable text returns nil.
func ParseAgeYears(s string) *float64 {
	s = CleanText(s)
	if s == "" {
		return nil
	}

	var years float64
	found := false
	if m := reYears.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			years += v
			found = true
		}
	}
	if m := reMonths.FindStringSubmatch(s); m != nil {
		if v, err := strconv.ParseFloat(m[1], 64); err == nil {
			years += v / 12
			found = true
		}
	}
	if !found {
		if m := reNumber.FindString(s); m != "" {
			if v, err := strconv.ParseFloat(m, 64); err == nil {
				years = v
				found = true
			}
		}
	}
	if !found {
		return nil
	}
	return &years
}

// ParseHours reads "4", "6-8 hours", "up to 4h". A range keeps the upper
// bound since it is the longest stretch the dog tolerates.
func ParseHours(s string) *float64 {
	s = CleanText(s)
	if s == "" {
		return nil
	}
	nums := reNumber.FindAllString(s, -1)
	if len(nums) == 0 {
		return nil
	}
	v, err := strconv.ParseFloat(nums[len(nums)-1], 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseTristate maps free-text trait answers to yes/no/unknown pointers.
func ParseTristate(s string) *bool {
	switch strings.ToLower(CleanText(s)) {
	case "yes", "y", "true", "good", "ok", "friendly":
		t := true
		return &t
	case "no", "n", "false", "bad", "not good":
		f := false
		return &f
	}
	return nil
}
