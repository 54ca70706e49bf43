package ingest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/store"
)

func openTestDB(t *testing.T) *store.DB {
	t.Helper()
	db, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(db.Pool))
	return db
}

func TestProcessLeadsInsertsAndDedupes(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	leads := []DogLead{
		{
			Name:     "Biscuit",
			Breed:    "Lab mix",
			AgeText:  "2 years",
			Size:     "medium",
			Energy:   "moderate",
			Source:   "shelterweb",
			SourceID: "shelterweb:ht:101",
			Traits:   map[string]string{"potty_trained": "yes", "good_with_cats": "no"},
		},
		{Name: "", SourceID: "shelterweb:ht:102"},        // incomplete, skipped
		{Name: "NoSource", Source: "shelterweb"},         // incomplete, skipped
		{Name: "Biscuit", SourceID: "shelterweb:ht:101"}, // duplicate
	}

	var notified int
	added := ProcessLeads(ctx, db.Pool, leads, func() { notified++ })
	require.Equal(t, 1, added)
	require.Equal(t, 1, notified)

	dogs, err := store.ListDogs(ctx, db.Pool, store.ListDogsOpts{})
	require.NoError(t, err)
	require.Len(t, dogs, 1)

	d := dogs[0]
	require.Equal(t, "Biscuit", d.Name)
	require.NotNil(t, d.AgeYears)
	require.Equal(t, 2.0, *d.AgeYears)
	require.NotNil(t, d.PottyTrained)
	require.True(t, *d.PottyTrained)
	require.NotNil(t, d.GoodWithCats)
	require.False(t, *d.GoodWithCats)
	require.Nil(t, d.GoodWithDogs)

	// Second run with the same leads adds nothing.
	added = ProcessLeads(ctx, db.Pool, leads, nil)
	require.Equal(t, 0, added)
}

func TestProcessLeadsCachesPhotos(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte{0xff, 0xd8, 0xff})
	}))
	defer srv.Close()

	photoURL := srv.URL + "/photos/7.jpg"
	leads := []DogLead{
		{Name: "Mochi", SourceID: "emailalert:ht:7", PhotoURL: photoURL},
		{Name: "Mochi Twin", SourceID: "emailalert:ht:8", PhotoURL: photoURL},
	}

	added := ProcessLeads(ctx, db.Pool, leads, nil)
	require.Equal(t, 2, added)
	require.Equal(t, 1, hits) // same URL fetched once per run

	dogs, err := store.ListDogs(ctx, db.Pool, store.ListDogsOpts{Sort: "name"})
	require.NoError(t, err)
	require.Len(t, dogs, 2)
	for _, d := range dogs {
		require.NotEmpty(t, d.PhotoKey)
	}

	ct, b, err := store.GetPhoto(ctx, db.Pool, dogs[0].PhotoKey)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", ct)
	require.Equal(t, []byte{0xff, 0xd8, 0xff}, b)
}

func TestProcessLeadsToleratesDeadPhotoHost(t *testing.T) {
	db := openTestDB(t)

	leads := []DogLead{
		{Name: "Rex", SourceID: "x:1", PhotoURL: "http://127.0.0.1:1/nope.jpg"},
	}
	added := ProcessLeads(context.Background(), db.Pool, leads, nil)
	require.Equal(t, 1, added)

	dogs, err := store.ListDogs(context.Background(), db.Pool, store.ListDogsOpts{})
	require.NoError(t, err)
	require.Len(t, dogs, 1)
	require.Empty(t, dogs[0].PhotoKey)
}
