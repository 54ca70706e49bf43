package domain

import "time"

// Dog is one adoptable listing. Shelter data is chronically incomplete, so
// every behavioral field is optional: a nil pointer means "unknown", which is
// not the same thing as false/zero.
type Dog struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Breed       string `json:"breed,omitempty"`
	Sex         string `json:"sex,omitempty"`
	Size        string `json:"size,omitempty"`         // small/medium/large/extra_large
	EnergyLevel string `json:"energy_level,omitempty"` // low/moderate/high

	AgeYears *float64 `json:"age_years,omitempty"`

	PlayStyles []string `json:"play_styles,omitempty"`

	PottyTrained         *bool `json:"potty_trained,omitempty"`
	GoodWithKids         *bool `json:"good_with_kids,omitempty"`
	GoodWithCats         *bool `json:"good_with_cats,omitempty"`
	GoodWithDogs         *bool `json:"good_with_dogs,omitempty"`
	GoodWithSmallAnimals *bool `json:"good_with_small_animals,omitempty"`
	FirstTimeFriendly    *bool `json:"first_time_friendly,omitempty"`
	Hypoallergenic       *bool `json:"hypoallergenic,omitempty"`

	SheddingLevel string   `json:"shedding_level,omitempty"` // minimal/moderate/heavy
	BarkingLevel  string   `json:"barking_level,omitempty"`  // quiet/moderate/vocal
	MaxAloneHours *float64 `json:"max_alone_hours,omitempty"`

	ShelterName string `json:"shelter_name,omitempty"`
	PhotoKey    string `json:"photo_key,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`

	SourceID  string    `json:"source_id,omitempty"` // shelterweb:<slug>:<id>, email:<msgid>, ...
	CreatedAt time.Time `json:"created_at,omitempty"`
}
