package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hoomanfinder-pixel/Hooman-finder/internal/domain"
)

// UpsertQuizResponses persists one session's answers, replacing any earlier
// row for the same session. Multi-select columns are stored as JSON arrays so
// a half-finished quiz round-trips exactly.
func UpsertQuizResponses(ctx context.Context, db *sql.DB, p domain.PreferenceSet) error {
	if p.SessionID == "" {
		return errors.New("quiz upsert: missing session id")
	}

	playJSON, _ := json.Marshal(emptyIfNil(p.PlayStyles))
	sizeJSON, _ := json.Marshal(emptyIfNil(p.SizePreference))
	ageJSON, _ := json.Marshal(emptyIfNil(p.AgePreference))
	petsJSON, _ := json.Marshal(emptyIfNil(p.PetsInHome))
	shedJSON, _ := json.Marshal(emptyIfNil(p.SheddingLevels))

	_, err := db.ExecContext(ctx, `
INSERT INTO quiz_responses (
  session_id, play_styles, energy_preference, size_preference, age_preference,
  potty_requirement, kids_in_home, pets_in_home, cats_in_home,
  first_time_owner, allergy_sensitivity, shedding_levels,
  noise_preference, alone_time, updated_at
) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
ON CONFLICT(session_id) DO UPDATE SET
  play_styles = excluded.play_styles,
  energy_preference = excluded.energy_preference,
  size_preference = excluded.size_preference,
  age_preference = excluded.age_preference,
  potty_requirement = excluded.potty_requirement,
  kids_in_home = excluded.kids_in_home,
  pets_in_home = excluded.pets_in_home,
  cats_in_home = excluded.cats_in_home,
  first_time_owner = excluded.first_time_owner,
  allergy_sensitivity = excluded.allergy_sensitivity,
  shedding_levels = excluded.shedding_levels,
  noise_preference = excluded.noise_preference,
  alone_time = excluded.alone_time,
  updated_at = excluded.updated_at;`,
		p.SessionID, string(playJSON), p.EnergyPreference, string(sizeJSON), string(ageJSON),
		p.PottyRequirement, p.KidsInHome, string(petsJSON), p.CatsInHome,
		p.FirstTimeOwner, p.AllergySensitivity, string(shedJSON),
		p.NoisePreference, p.AloneTime, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("quiz upsert: %w", err)
	}
	return nil
}

// GetQuizResponses loads one session's answers. A session with no saved quiz
// returns (nil, nil): browsing without the quiz is a normal state, not an
// error.
func GetQuizResponses(ctx context.Context, db *sql.DB, sessionID string) (*domain.PreferenceSet, error) {
	var p domain.PreferenceSet
	var playJSON, sizeJSON, ageJSON, petsJSON, shedJSON string

	err := db.QueryRowContext(ctx, `
SELECT session_id, play_styles, energy_preference, size_preference, age_preference,
  potty_requirement, kids_in_home, pets_in_home, cats_in_home,
  first_time_owner, allergy_sensitivity, shedding_levels,
  noise_preference, alone_time
FROM quiz_responses
WHERE session_id = ?;`, sessionID).Scan(
		&p.SessionID, &playJSON, &p.EnergyPreference, &sizeJSON, &ageJSON,
		&p.PottyRequirement, &p.KidsInHome, &petsJSON, &p.CatsInHome,
		&p.FirstTimeOwner, &p.AllergySensitivity, &shedJSON,
		&p.NoisePreference, &p.AloneTime,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	_ = json.Unmarshal([]byte(playJSON), &p.PlayStyles)
	_ = json.Unmarshal([]byte(sizeJSON), &p.SizePreference)
	_ = json.Unmarshal([]byte(ageJSON), &p.AgePreference)
	_ = json.Unmarshal([]byte(petsJSON), &p.PetsInHome)
	_ = json.Unmarshal([]byte(shedJSON), &p.SheddingLevels)
	return &p, nil
}
