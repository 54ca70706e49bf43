package httpapi

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"sync/atomic"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/config"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/match"
	"github.com/hoomanfinder-pixel/Hooman-finder/internal/store"
)

type MatchHandler struct {
	DB     *sql.DB
	CfgVal *atomic.Value // stores config.Config
}

type matchRequest struct {
	// Either inline answers or a stored quiz session.
	SessionID   string                `json:"session_id,omitempty"`
	Preferences *domain.PreferenceSet `json:"preferences,omitempty"`
}

type matchResult struct {
	Dog       domain.Dog      `json:"dog"`
	RawScore  int             `json:"raw_score"`
	ScorePct  float64         `json:"score_pct"`
	Label     string          `json:"label"`
	Breakdown match.Breakdown `json:"breakdown"`
	Reasons   []string        `json:"reasons"`
}

func (h MatchHandler) Match(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}

	prefs := domain.PreferenceSet{}
	switch {
	case req.Preferences != nil:
		prefs = *req.Preferences
	case req.SessionID != "":
		stored, err := store.GetQuizResponses(r.Context(), h.DB, req.SessionID)
		if err != nil {
			WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
			return
		}
		if stored != nil {
			prefs = *stored
		}
	}

	cfg := h.CfgVal.Load().(config.Config)
	eng, err := match.New(cfg.Matching.Scheme())
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "bad_scheme", err.Error())
		return
	}

	dogs, err := store.ListDogs(r.Context(), h.DB, store.ListDogsOpts{Limit: 5000})
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "store_error", err.Error())
		return
	}

	ranked := eng.Rank(dogs, prefs)
	out := make([]matchResult, len(ranked))
	for i, rr := range ranked {
		reasons := match.Reasons(rr.Breakdown, rr.Dog, match.DefaultReasonLimit)
		if !prefs.Empty() {
			reasons = match.PersonalizedReasons(rr.Dog, prefs, match.DefaultReasonLimit)
		}
		out[i] = matchResult{
			Dog:       rr.Dog,
			RawScore:  rr.RawScore,
			ScorePct:  rr.ScorePct,
			Label:     eng.Label(rr.ScorePct),
			Breakdown: rr.Breakdown,
			Reasons:   reasons,
		}
	}
	writeJSON(w, out)
}
