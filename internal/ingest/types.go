package ingest

import "context"

// DogLead is one raw listing pulled from a shelter feed, before any
// normalization. Every field is text as scraped; Process turns leads into
// store rows.
type DogLead struct {
	Name    string
	Breed   string
	Sex     string
	AgeText string // "2 years", "8 months", "2"
	Size    string
	Energy  string

	PlayStyles []string

	// Traits holds yes/no/unknown answers keyed by trait name:
	// potty_trained, good_with_kids, good_with_cats, good_with_dogs,
	// good_with_small_animals, first_time_friendly, hypoallergenic.
	Traits map[string]string

	SheddingLevel string
	BarkingLevel  string
	MaxAloneText  string // "4", "6-8 hours"

	ShelterName string
	PhotoURL    string
	ProfileURL  string

	Source   string // fetcher name
	SourceID string // stable dedupe key, e.g. shelterweb:<slug>:<id>
}

type SyncResult struct {
	Source string
	Leads  []DogLead
}

type Fetcher interface {
	Name() string
	Fetch(ctx context.Context) (SyncResult, error)
}
