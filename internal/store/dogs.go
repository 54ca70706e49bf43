package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

type ListDogsOpts struct {
	Sort      string // created | name | age
	AgeBucket string // puppy | adult | senior
	Size      string
	Energy    string

	HypoOnly  bool
	PottyOnly bool
	KidsOnly  bool
	CatsOnly  bool
	DogsOnly  bool

	Limit int
}

const dogColumns = `id, name, breed, sex, size, energy_level, age_years, play_styles,
potty_trained, good_with_kids, good_with_cats, good_with_dogs, good_with_small_animals,
first_time_friendly, hypoallergenic, shedding_level, barking_level, max_alone_hours,
shelter_name, photo_key, source_id, created_at`

// ListDogs returns the catalog, hard-filtered per opts. These are the browse
// page's only-show-me toggles; ranking never filters.
func ListDogs(ctx context.Context, db *sql.DB, opts ListDogsOpts) ([]domain.Dog, error) {
	if opts.Limit <= 0 || opts.Limit > 5000 {
		opts.Limit = 500
	}

	// whitelist sort columns (prevents SQL injection)
	order := map[string]string{
		"created": "created_at DESC",
		"name":    "name COLLATE NOCASE ASC",
		"age":     "age_years ASC",
	}[opts.Sort]
	if order == "" {
		order = "created_at DESC"
	}

	var where []string
	var args []any

	switch opts.AgeBucket {
	case "puppy":
		where = append(where, "age_years IS NOT NULL AND age_years < 2")
	case "adult":
		where = append(where, "age_years IS NOT NULL AND age_years >= 2 AND age_years < 7")
	case "senior":
		where = append(where, "age_years IS NOT NULL AND age_years >= 7")
	}
	if opts.Size != "" {
		where = append(where, "LOWER(size) = LOWER(?)")
		args = append(args, opts.Size)
	}
	if opts.Energy != "" {
		where = append(where, "LOWER(energy_level) = LOWER(?)")
		args = append(args, opts.Energy)
	}
	if opts.HypoOnly {
		where = append(where, "hypoallergenic = 1")
	}
	if opts.PottyOnly {
		where = append(where, "potty_trained = 1")
	}
	if opts.KidsOnly {
		where = append(where, "good_with_kids = 1")
	}
	if opts.CatsOnly {
		where = append(where, "good_with_cats = 1")
	}
	if opts.DogsOnly {
		where = append(where, "good_with_dogs = 1")
	}

	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	query := fmt.Sprintf(`
SELECT %s
FROM dogs
%s
ORDER BY %s
LIMIT ?;
`, dogColumns, clause, order)

	args = append(args, opts.Limit)
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Dog
	for rows.Next() {
		d, err := scanDog(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDog returns one dog or sql.ErrNoRows.
func GetDog(ctx context.Context, db *sql.DB, id int64) (domain.Dog, error) {
	row := db.QueryRowContext(ctx, fmt.Sprintf(`SELECT %s FROM dogs WHERE id = ?;`, dogColumns), id)
	return scanDog(row)
}

func DeleteDog(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM dogs WHERE id = ?;`, id)
	return err
}

// InsertDogIgnore inserts an ingested dog, deduping on the unique source_id
// index, and reports whether a row was actually added.
func InsertDogIgnore(ctx context.Context, db *sql.DB, d domain.Dog) (added bool, err error) {
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now().UTC()
	}
	playJSON, _ := json.Marshal(emptyIfNil(d.PlayStyles))

	_, err = db.ExecContext(ctx, `
INSERT OR IGNORE INTO dogs (
  name, breed, sex, size, energy_level, age_years, play_styles,
  potty_trained, good_with_kids, good_with_cats, good_with_dogs, good_with_small_animals,
  first_time_friendly, hypoallergenic, shedding_level, barking_level, max_alone_hours,
  shelter_name, photo_key, source_id, created_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		d.Name, d.Breed, d.Sex, d.Size, d.EnergyLevel, nullFloat(d.AgeYears), string(playJSON),
		nullBool(d.PottyTrained), nullBool(d.GoodWithKids), nullBool(d.GoodWithCats),
		nullBool(d.GoodWithDogs), nullBool(d.GoodWithSmallAnimals),
		nullBool(d.FirstTimeFriendly), nullBool(d.Hypoallergenic),
		d.SheddingLevel, d.BarkingLevel, nullFloat(d.MaxAloneHours),
		d.ShelterName, d.PhotoKey, d.SourceID, d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("insert dog: %w", err)
	}

	var changes int
	if e := db.QueryRowContext(ctx, `SELECT changes();`).Scan(&changes); e == nil {
		return changes > 0, nil
	}
	return true, nil
}

// SeedDog inserts a demo dog so the UI has something to show on a fresh DB.
func SeedDog(ctx context.Context, db *sql.DB) (domain.Dog, error) {
	age := 3.0
	yes := true
	d := domain.Dog{
		Name:          "Biscuit",
		Breed:         "Lab mix",
		Sex:           "male",
		Size:          "medium",
		EnergyLevel:   "moderate",
		AgeYears:      &age,
		PlayStyles:    []string{"fetch", "cuddly"},
		PottyTrained:  &yes,
		GoodWithKids:  &yes,
		GoodWithDogs:  &yes,
		SheddingLevel: "moderate",
		BarkingLevel:  "quiet",
		ShelterName:   "Demo Shelter",
		CreatedAt:     time.Now().UTC(),
	}
	playJSON, _ := json.Marshal(d.PlayStyles)
	res, err := db.ExecContext(ctx, `
INSERT INTO dogs (
  name, breed, sex, size, energy_level, age_years, play_styles,
  potty_trained, good_with_kids, good_with_dogs,
  shedding_level, barking_level, shelter_name, created_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?);`,
		d.Name, d.Breed, d.Sex, d.Size, d.EnergyLevel, *d.AgeYears, string(playJSON),
		1, 1, 1, d.SheddingLevel, d.BarkingLevel, d.ShelterName,
		d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return domain.Dog{}, err
	}
	d.ID, _ = res.LastInsertId()
	return d, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDog(row rowScanner) (domain.Dog, error) {
	var d domain.Dog
	var age, maxAlone sql.NullFloat64
	var potty, kids, cats, dogs, small, first, hypo sql.NullBool
	var playJSON, createdStr string

	if err := row.Scan(
		&d.ID, &d.Name, &d.Breed, &d.Sex, &d.Size, &d.EnergyLevel, &age, &playJSON,
		&potty, &kids, &cats, &dogs, &small, &first, &hypo,
		&d.SheddingLevel, &d.BarkingLevel, &maxAlone,
		&d.ShelterName, &d.PhotoKey, &d.SourceID, &createdStr,
	); err != nil {
		return domain.Dog{}, err
	}

	d.AgeYears = floatPtr(age)
	d.MaxAloneHours = floatPtr(maxAlone)
	d.PottyTrained = boolPtr(potty)
	d.GoodWithKids = boolPtr(kids)
	d.GoodWithCats = boolPtr(cats)
	d.GoodWithDogs = boolPtr(dogs)
	d.GoodWithSmallAnimals = boolPtr(small)
	d.FirstTimeFriendly = boolPtr(first)
	d.Hypoallergenic = boolPtr(hypo)
	_ = json.Unmarshal([]byte(playJSON), &d.PlayStyles)
	d.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	if d.PhotoKey != "" {
		d.PhotoURL = "/photo/" + d.PhotoKey
	}
	return d, nil
}

func nullBool(b *bool) any {
	if b == nil {
		return nil
	}
	if *b {
		return 1
	}
	return 0
}

func nullFloat(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func boolPtr(nb sql.NullBool) *bool {
	if !nb.Valid {
		return nil
	}
	v := nb.Bool
	return &v
}

func floatPtr(nf sql.NullFloat64) *float64 {
	if !nf.Valid {
		return nil
	}
	v := nf.Float64
	return &v
}

func emptyIfNil(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
