package db

import (
	"database/sql"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

func (s *pgStore) CreateParticipant(contestID, profileID int, entryImageID *int, autoEntry bool) (model.ContestParticipant, error) {
	var p model.ContestParticipant
	query := `
	INSERT INTO contest_participants (contest_id, profile_id, entry_image_id, auto_entry, joined_at)
	VALUES ($1, $2, $3, $4, now())
	RETURNING id, contest_id, profile_id, entry_image_id, auto_entry, joined_at;`
	if err := s.db.Get(&p, query, contestID, profileID, entryImageID, autoEntry); err != nil {
		log.Error().Err(err).Int("contest_id", contestID).Int("profile_id", profileID).Msg("CreateParticipant failed")
		return model.ContestParticipant{}, err
	}
	return p, nil
}

func (s *pgStore) GetParticipant(contestID, profileID int) (*model.ContestParticipant, error) {
	var p model.ContestParticipant
	query := `
	SELECT id, contest_id, profile_id, entry_image_id, auto_entry, joined_at
	  FROM contest_participants
	 WHERE contest_id = $1 AND profile_id = $2;`
	if err := s.db.Get(&p, query, contestID, profileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		log.Error().Err(err).Int("contest_id", contestID).Msg("GetParticipant failed")
		return nil, err
	}
	return &p, nil
}

func (s *pgStore) GetParticipantByID(id int) (model.ContestParticipant, error) {
	var p model.ContestParticipant
	query := `
	SELECT id, contest_id, profile_id, entry_image_id, auto_entry, joined_at
	  FROM contest_participants
	 WHERE id = $1;`
	err := s.db.Get(&p, query, id)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		log.Error().Err(err).Int("participant_id", id).Msg("GetParticipantByID failed")
	}
	return p, err
}

func (s *pgStore) ListParticipants(contestID int) ([]model.ContestParticipant, error) {
	var out []model.ContestParticipant
	query := `
	SELECT id, contest_id, profile_id, entry_image_id, auto_entry, joined_at
	  FROM contest_participants
	 WHERE contest_id = $1
	 ORDER BY joined_at, id;`
	if err := s.db.Select(&out, query, contestID); err != nil {
		log.Error().Err(err).Int("contest_id", contestID).Msg("ListParticipants failed")
		return nil, err
	}
	return out, nil
}

// CountParticipants derives occupancy from the join rows; it is never
// stored on the contest.
func (s *pgStore) CountParticipants(contestID int) (int, error) {
	var n int
	err := s.db.Get(&n, `SELECT count(*) FROM contest_participants WHERE contest_id = $1;`, contestID)
	if err != nil {
		log.Error().Err(err).Int("contest_id", contestID).Msg("CountParticipants failed")
		return 0, err
	}
	return n, nil
}

func (s *pgStore) CountParticipantsByRole(contestID int, role string) (int, error) {
	var n int
	query := `
	SELECT count(*)
	  FROM contest_participants cp
	  JOIN profiles p ON p.id = cp.profile_id
	 WHERE cp.contest_id = $1 AND p.role = $2;`
	if err := s.db.Get(&n, query, contestID, role); err != nil {
		log.Error().Err(err).Int("contest_id", contestID).Msg("CountParticipantsByRole failed")
		return 0, err
	}
	return n, nil
}
