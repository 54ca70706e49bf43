package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/store"
)

type PhotosHandler struct {
	DB *sql.DB
}

func (h PhotosHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	key := strings.TrimSpace(strings.TrimPrefix(r.URL.Path, "/photo/"))
	if key == "" {
		http.Error(w, "missing key", 400)
		return
	}

	ct, b, err := store.GetPhoto(r.Context(), h.DB, key)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	if ct == "" {
		ct = "image/*"
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Cache-Control", "public, max-age=604800")
	_, _ = w.Write(b)
}
