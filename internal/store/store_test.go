package store

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db.Pool))
	return db.Pool
}

func bptr(b bool) *bool       { return &b }
func fptr(f float64) *float64 { return &f }

func sampleDog(name, sourceID string) domain.Dog {
	return domain.Dog{
		Name:          name,
		Breed:         "Lab mix",
		Size:          "medium",
		EnergyLevel:   "moderate",
		AgeYears:      fptr(3),
		PlayStyles:    []string{"fetch"},
		PottyTrained:  bptr(true),
		GoodWithKids:  bptr(true),
		SheddingLevel: "minimal",
		ShelterName:   "Happy Tails",
		SourceID:      sourceID,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestInsertDogIgnoreDedupesBySourceID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	added, err := InsertDogIgnore(ctx, db, sampleDog("Biscuit", "shelterweb:ht:1"))
	require.NoError(t, err)
	require.True(t, added)

	added, err = InsertDogIgnore(ctx, db, sampleDog("Biscuit Again", "shelterweb:ht:1"))
	require.NoError(t, err)
	require.False(t, added)

	dogs, err := ListDogs(ctx, db, ListDogsOpts{})
	require.NoError(t, err)
	require.Len(t, dogs, 1)
	require.Equal(t, "Biscuit", dogs[0].Name)
}

func TestInsertAllowsManualDogsWithoutSourceID(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"Rex", "Pip"} {
		added, err := InsertDogIgnore(ctx, db, sampleDog(name, ""))
		require.NoError(t, err)
		require.True(t, added)
	}

	dogs, err := ListDogs(ctx, db, ListDogsOpts{})
	require.NoError(t, err)
	require.Len(t, dogs, 2)
}

func TestGetDogRoundTripsOptionalFields(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	in := sampleDog("Biscuit", "shelterweb:ht:1")
	in.GoodWithCats = bptr(false)
	in.MaxAloneHours = fptr(6)
	_, err := InsertDogIgnore(ctx, db, in)
	require.NoError(t, err)

	dogs, err := ListDogs(ctx, db, ListDogsOpts{})
	require.NoError(t, err)
	require.Len(t, dogs, 1)

	got, err := GetDog(ctx, db, dogs[0].ID)
	require.NoError(t, err)
	require.Equal(t, "Biscuit", got.Name)
	require.NotNil(t, got.AgeYears)
	require.Equal(t, 3.0, *got.AgeYears)
	require.NotNil(t, got.PottyTrained)
	require.True(t, *got.PottyTrained)
	require.NotNil(t, got.GoodWithCats)
	require.False(t, *got.GoodWithCats)
	require.Nil(t, got.GoodWithDogs) // never recorded stays unknown
	require.NotNil(t, got.MaxAloneHours)
	require.Equal(t, 6.0, *got.MaxAloneHours)
	require.Equal(t, []string{"fetch"}, got.PlayStyles)
}

func TestGetDogMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := GetDog(context.Background(), db, 12345)
	require.True(t, errors.Is(err, sql.ErrNoRows))
}

func TestDeleteDog(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := InsertDogIgnore(ctx, db, sampleDog("Biscuit", "x:1"))
	require.NoError(t, err)
	dogs, err := ListDogs(ctx, db, ListDogsOpts{})
	require.NoError(t, err)

	require.NoError(t, DeleteDog(ctx, db, dogs[0].ID))

	dogs, err = ListDogs(ctx, db, ListDogsOpts{})
	require.NoError(t, err)
	require.Empty(t, dogs)
}

func TestListDogsFilters(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	puppy := sampleDog("Pup", "x:1")
	puppy.AgeYears = fptr(1)
	puppy.Size = "small"

	senior := sampleDog("Gramps", "x:2")
	senior.AgeYears = fptr(9)
	senior.Hypoallergenic = bptr(true)

	for _, d := range []domain.Dog{puppy, senior} {
		_, err := InsertDogIgnore(ctx, db, d)
		require.NoError(t, err)
	}

	got, err := ListDogs(ctx, db, ListDogsOpts{AgeBucket: "puppy"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Pup", got[0].Name)

	got, err = ListDogs(ctx, db, ListDogsOpts{AgeBucket: "senior"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Gramps", got[0].Name)

	got, err = ListDogs(ctx, db, ListDogsOpts{Size: "SMALL"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Pup", got[0].Name)

	got, err = ListDogs(ctx, db, ListDogsOpts{HypoOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Gramps", got[0].Name)

	got, err = ListDogs(ctx, db, ListDogsOpts{Sort: "name"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "Gramps", got[0].Name)
}

func TestSeedDog(t *testing.T) {
	db := openTestDB(t)
	d, err := SeedDog(context.Background(), db)
	require.NoError(t, err)
	require.NotZero(t, d.ID)
	require.Equal(t, "Biscuit", d.Name)

	got, err := GetDog(context.Background(), db, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PottyTrained)
	require.True(t, *got.PottyTrained)
}

func TestQuizRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	in := domain.PreferenceSet{
		SessionID:          "sess-1",
		PlayStyles:         []string{"fetch", "tug"},
		EnergyPreference:   "moderate",
		SizePreference:     []string{"medium", "large"},
		PottyRequirement:   "preferred",
		PetsInHome:         []string{"dogs"},
		AllergySensitivity: "mild_allergies",
		AloneTime:          "4to6",
	}
	require.NoError(t, UpsertQuizResponses(ctx, db, in))

	got, err := GetQuizResponses(ctx, db, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, in.PlayStyles, got.PlayStyles)
	require.Equal(t, in.SizePreference, got.SizePreference)
	require.Equal(t, "preferred", got.PottyRequirement)
	require.Equal(t, "4to6", got.AloneTime)

	// Second save replaces the first.
	in.AloneTime = "gt8"
	in.PlayStyles = nil
	require.NoError(t, UpsertQuizResponses(ctx, db, in))

	got, err = GetQuizResponses(ctx, db, "sess-1")
	require.NoError(t, err)
	require.Equal(t, "gt8", got.AloneTime)
	require.Empty(t, got.PlayStyles)
}

func TestQuizMissingSession(t *testing.T) {
	db := openTestDB(t)

	got, err := GetQuizResponses(context.Background(), db, "nope")
	require.NoError(t, err)
	require.Nil(t, got)

	err = UpsertQuizResponses(context.Background(), db, domain.PreferenceSet{})
	require.Error(t, err)
}

func TestPhotoRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx,
		`INSERT INTO photos(key, content_type, bytes, fetched_at) VALUES(?,?,?,?);`,
		"abc", "image/png", []byte{1, 2, 3}, time.Now().UTC().Format(time.RFC3339),
	)
	require.NoError(t, err)

	ct, b, err := GetPhoto(ctx, db, "abc")
	require.NoError(t, err)
	require.Equal(t, "image/png", ct)
	require.Equal(t, []byte{1, 2, 3}, b)

	_, _, err = GetPhoto(ctx, db, "missing")
	require.True(t, errors.Is(err, sql.ErrNoRows))
}
