package db

import (
	"errors"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// ErrAlreadyVoted is returned when a voter casts a second vote in the
// same contest.
var ErrAlreadyVoted = errors.New("already voted in this contest")

func (s *pgStore) CreateVote(contestID, participantID, voterID int) (model.Vote, error) {
	var v model.Vote
	query := `
	INSERT INTO votes (contest_id, participant_id, voter_id, created_at)
	VALUES ($1, $2, $3, now())
	RETURNING id, contest_id, participant_id, voter_id, created_at;`
	err := s.db.Get(&v, query, contestID, participantID, voterID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return model.Vote{}, ErrAlreadyVoted
		}
		log.Error().Err(err).Int("contest_id", contestID).Int("voter_id", voterID).Msg("CreateVote failed")
		return model.Vote{}, err
	}
	return v, nil
}

func (s *pgStore) ListContestResults(contestID int) ([]model.ParticipantResult, error) {
	var out []model.ParticipantResult
	query := `
	SELECT cp.id            AS participant_id,
	       cp.profile_id    AS profile_id,
	       p.screen_name    AS screen_name,
	       count(v.id)      AS votes
	  FROM contest_participants cp
	  JOIN profiles p ON p.id = cp.profile_id
	  LEFT JOIN votes v ON v.participant_id = cp.id
	 WHERE cp.contest_id = $1 AND p.role = 'contributor'
	 GROUP BY cp.id, cp.profile_id, p.screen_name
	 ORDER BY votes DESC, cp.id;`
	if err := s.db.Select(&out, query, contestID); err != nil {
		log.Error().Err(err).Int("contest_id", contestID).Msg("ListContestResults failed")
		return nil, err
	}
	return out, nil
}
