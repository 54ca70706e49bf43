package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/events"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/store"
)

type QuizHandler struct {
	DB  *sql.DB
	Hub *events.Hub
}

func sessionFromPath(path string) string {
	return strings.TrimSpace(strings.TrimPrefix(path, "/quiz/"))
}

func (h QuizHandler) GetByPath(w http.ResponseWriter, r *http.Request) {
	session := sessionFromPath(r.URL.Path)
	if session == "" {
		http.Error(w, "missing session", 400)
		return
	}

	prefs, err := store.GetQuizResponses(r.Context(), h.DB, session)
	if err != nil {
		http.Error(w, err.Error(), 500)
		return
	}
	if prefs == nil {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, prefs)
}

func (h QuizHandler) PutByPath(w http.ResponseWriter, r *http.Request) {
	session := sessionFromPath(r.URL.Path)
	if session == "" {
		http.Error(w, "missing session", 400)
		return
	}

	var prefs domain.PreferenceSet
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		http.Error(w, "invalid JSON: "+err.Error(), 400)
		return
	}
	prefs.SessionID = session

	if err := store.UpsertQuizResponses(r.Context(), h.DB, prefs); err != nil {
		http.Error(w, err.Error(), 500)
		return
	}

	reqID := RequestIDFrom(r.Context())
	h.Hub.Publish(events.MakeEvent(reqID, events.TypeQuizSaved, 1, map[string]any{"session_id": session}))
	writeJSON(w, prefs)
}
