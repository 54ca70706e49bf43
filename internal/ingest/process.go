package ingest

import (
	"context"
	"database/sql"
	"log"
	"time"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/ingest/util"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/store"
)

// ProcessLeads normalizes scraped leads, inserts the new ones (deduped by
// source_id) and caches their photos. Returns how many rows were added.
func ProcessLeads(ctx context.Context, db *sql.DB, leads []DogLead, onNewDog func()) (added int) {
	// Run-local cache so the same photo URL is fetched once per poll.
	photoKeys := make(map[string]string)

	for _, lead := range leads {
		if lead.Name == "" || lead.SourceID == "" {
			log.Printf("[%s] skipped (incomplete) name=%q source_id=%q",
				lead.Source, lead.Name, lead.SourceID)
			continue
		}

		d := dogFromLead(lead)

		ok, ierr := store.InsertDogIgnore(ctx, db, d)
		if ierr != nil {
			log.Printf("[process:%s] insert error: %v name=%q source_id=%q",
				lead.Source, ierr, lead.Name, lead.SourceID)
			continue
		}
		if !ok {
			continue
		}

		// Photo enrichment only for newly inserted dogs
		if lead.PhotoURL != "" {
			key, cached := photoKeys[lead.PhotoURL]
			if !cached {
				if k, _ := store.CachePhotoFromURL(ctx, db, lead.PhotoURL); k != "" {
					key = k
				}
				photoKeys[lead.PhotoURL] = key // cache empty to avoid retry storms
			}

			if key != "" {
				_, _ = db.ExecContext(ctx, `
UPDATE dogs
SET photo_key = ?
WHERE source_id = ?
  AND (photo_key = '' OR photo_key IS NULL);`,
					key, lead.SourceID,
				)
			}
		}

		added++
		if onNewDog != nil {
			onNewDog()
		}
	}

	return added
}

func dogFromLead(lead DogLead) domain.Dog {
	d := domain.Dog{
		Name:        util.CleanText(lead.Name),
		Breed:       util.CleanText(lead.Breed),
		Sex:         util.CleanText(lead.Sex),
		Size:        util.CleanText(lead.Size),
		EnergyLevel: util.CleanText(lead.Energy),

		AgeYears:   util.ParseAgeYears(lead.AgeText),
		PlayStyles: lead.PlayStyles,

		SheddingLevel: util.CleanText(lead.SheddingLevel),
		BarkingLevel:  util.CleanText(lead.BarkingLevel),
		MaxAloneHours: util.ParseHours(lead.MaxAloneText),

		ShelterName: util.CleanText(lead.ShelterName),
		SourceID:    lead.SourceID,
		CreatedAt:   time.Now().UTC(),
	}

	d.PottyTrained = util.ParseTristate(lead.Traits["potty_trained"])
	d.GoodWithKids = util.ParseTristate(lead.Traits["good_with_kids"])
	d.GoodWithCats = util.ParseTristate(lead.Traits["good_with_cats"])
	d.GoodWithDogs = util.ParseTristate(lead.Traits["good_with_dogs"])
	d.GoodWithSmallAnimals = util.ParseTristate(lead.Traits["good_with_small_animals"])
	d.FirstTimeFriendly = util.ParseTristate(lead.Traits["first_time_friendly"])
	d.Hypoallergenic = util.ParseTristate(lead.Traits["hypoallergenic"])

	return d
}
