package domain

// PreferenceSet is one adopter's quiz answers. Fields mirror the quiz_responses
// columns; every field may be unset (empty string / nil slice), which means the
// question was never answered. Tokens like "any" or "no_preference" are
// answered-but-open and are handled by the matching scheme, not here.
type PreferenceSet struct {
	SessionID string `json:"session_id,omitempty"`

	PlayStyles       []string `json:"play_styles,omitempty"`
	EnergyPreference string   `json:"energy_preference,omitempty"`
	SizePreference   []string `json:"size_preference,omitempty"`
	AgePreference    []string `json:"age_preference,omitempty"`

	PottyRequirement string `json:"potty_requirement,omitempty"` // must/preferred/no_matter

	KidsInHome string   `json:"kids_in_home,omitempty"` // yes/no/sometimes
	PetsInHome []string `json:"pets_in_home,omitempty"` // dogs/cats/small_animals/none/not_sure
	// Older clients sent a standalone cats question before pets_in_home existed.
	CatsInHome string `json:"cats_in_home,omitempty"`

	FirstTimeOwner     string   `json:"first_time_owner,omitempty"`
	AllergySensitivity string   `json:"allergy_sensitivity,omitempty"` // no_allergies/mild_allergies/have_allergies
	SheddingLevels     []string `json:"shedding_levels,omitempty"`

	NoisePreference string `json:"noise_preference,omitempty"` // need_very_quiet/prefer_quiet/some_ok/alert_ok/no_pref
	AloneTime       string `json:"alone_time,omitempty"`       // lt4/4to6/6to8/gt8
}

// Empty reports whether no question was answered at all.
func (p PreferenceSet) Empty() bool {
	return len(p.PlayStyles) == 0 &&
		p.EnergyPreference == "" &&
		len(p.SizePreference) == 0 &&
		len(p.AgePreference) == 0 &&
		p.PottyRequirement == "" &&
		p.KidsInHome == "" &&
		len(p.PetsInHome) == 0 &&
		p.CatsInHome == "" &&
		p.FirstTimeOwner == "" &&
		p.AllergySensitivity == "" &&
		len(p.SheddingLevels) == 0 &&
		p.NoisePreference == "" &&
		p.AloneTime == ""
}
