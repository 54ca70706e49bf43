package httpapi

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/events"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/store"
)

type DogsHandler struct {
	DB        *sql.DB
	Hub       *events.Hub
	DeleteDog func(ctx context.Context, db *sql.DB, id int64) error
}

func (h DogsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	dogs, err := store.ListDogs(r.Context(), h.DB, store.ListDogsOpts{
		Sort:      q.Get("sort"),
		AgeBucket: q.Get("age"),
		Size:      q.Get("size"),
		Energy:    q.Get("energy"),
		HypoOnly:  queryBool(q.Get("hypoallergenic")),
		PottyOnly: queryBool(q.Get("potty_trained")),
		KidsOnly:  queryBool(q.Get("good_with_kids")),
		CatsOnly:  queryBool(q.Get("good_with_cats")),
		DogsOnly:  queryBool(q.Get("good_with_dogs")),
		Limit:     5000,
	})
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, dogs)
}

func (h DogsHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/dogs/")
	if !ok {
		http.Error(w, "invalid id", 400)
		return
	}

	dog, err := store.GetDog(r.Context(), h.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	writeJSON(w, dog)
}

func (h DogsHandler) DeleteByPath(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromPath(r.URL.Path, "/dogs/")
	if !ok {
		http.Error(w, "invalid id", 400)
		return
	}

	if err := h.DeleteDog(r.Context(), h.DB, id); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeDogDeleted, 1, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h DogsHandler) Seed(w http.ResponseWriter, r *http.Request) {
	dog, err := store.SeedDog(r.Context(), h.DB)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeDogCreated, 1, map[string]any{"id": dog.ID}))
	writeJSON(w, dog)
}
