package db

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

var (
	// ErrDuplicateInstance is returned when an instance for the same
	// (parent, start) window already exists. A sweep retrying after a
	// partial failure hits this instead of double-generating.
	ErrDuplicateInstance = errors.New("instance already generated for this window")

	// ErrStaleGeneration is returned when a conditional advance of
	// next_generation_date finds the row already moved on, i.e. a
	// concurrent sweep won the race.
	ErrStaleGeneration = errors.New("next generation date already advanced")
)

const contestColumns = `
	id, title, category, image, attributes, max_participants,
	start_time, end_time, cadence, parent_contest_id,
	is_recurring_template, next_generation_date, cost, is_active,
	created_by, created_at, updated_at`

func (s *pgStore) CreateContest(c model.Contest) (model.Contest, error) {
	var out model.Contest
	query := `
	INSERT INTO contests
	(title, category, image, attributes, max_participants,
	 start_time, end_time, cadence, parent_contest_id,
	 is_recurring_template, next_generation_date, cost, is_active,
	 created_by, created_at, updated_at)
	VALUES
	($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, now(), now())
	RETURNING` + contestColumns + `;`

	err := s.db.Get(&out, query,
		c.Title, c.Category, c.Image, c.Attributes, c.MaxParticipants,
		c.StartTime, c.EndTime, c.Cadence, c.ParentContestID,
		c.IsRecurringTemplate, c.NextGenerationDate, c.Cost, c.IsActive,
		c.CreatedBy,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return model.Contest{}, ErrDuplicateInstance
		}
		log.Error().Err(err).Str("title", c.Title).Msg("CreateContest failed")
		return model.Contest{}, err
	}
	return out, nil
}

func (s *pgStore) GetContestByID(id int) (model.Contest, error) {
	var c model.Contest
	query := `SELECT` + contestColumns + ` FROM contests WHERE id = $1;`
	if err := s.db.Get(&c, query, id); err != nil {
		log.Error().Err(err).Int("contest_id", id).Msg("GetContestByID failed")
		return model.Contest{}, err
	}
	return c, nil
}

// ListContests is the admin view: templates included, optional filters.
func (s *pgStore) ListContests(f ContestFilter) ([]model.Contest, error) {
	var out []model.Contest
	query := `
	SELECT` + contestColumns + `
	  FROM contests
	 WHERE ($1::text IS NULL OR category = $1)
	   AND ($2::text IS NULL OR cadence = $2)
	   AND ($3::boolean IS NULL OR is_active = $3)
	 ORDER BY created_at DESC, id DESC;`
	if err := s.db.Select(&out, query, f.Category, f.Cadence, f.IsActive); err != nil {
		log.Error().Err(err).Msg("ListContests failed")
		return nil, err
	}
	return out, nil
}

// ListOpenContests returns active, non-template contests that have not
// ended yet. The caller applies the availability-window check on top;
// the advance-window math lives in one place (the model), not in SQL.
func (s *pgStore) ListOpenContests(now time.Time) ([]model.Contest, error) {
	var out []model.Contest
	query := `
	SELECT` + contestColumns + `
	  FROM contests
	 WHERE is_active = true
	   AND is_recurring_template = false
	   AND end_time >= $1
	 ORDER BY start_time, id;`
	if err := s.db.Select(&out, query, now); err != nil {
		log.Error().Err(err).Msg("ListOpenContests failed")
		return nil, err
	}
	return out, nil
}

// ListDueRecurring selects every cadence-bearing contest whose next
// generation date has passed, in stable id order.
func (s *pgStore) ListDueRecurring(now time.Time) ([]model.Contest, error) {
	var out []model.Contest
	query := `
	SELECT` + contestColumns + `
	  FROM contests
	 WHERE is_active = true
	   AND cadence IN ('daily', 'weekly', 'monthly')
	   AND next_generation_date IS NOT NULL
	   AND next_generation_date <= $1
	 ORDER BY id;`
	if err := s.db.Select(&out, query, now); err != nil {
		log.Error().Err(err).Msg("ListDueRecurring failed")
		return nil, err
	}
	return out, nil
}

func (s *pgStore) UpdateContest(id int, upd ContestUpdate) (model.Contest, error) {
	var c model.Contest
	query := `
	UPDATE contests
	SET
	title            = COALESCE($2, title),
	image            = COALESCE($3, image),
	max_participants = COALESCE($4, max_participants),
	cost             = COALESCE($5, cost),
	updated_at       = now()
	WHERE id = $1
	RETURNING` + contestColumns + `;`
	err := s.db.Get(&c, query, id, upd.Title, upd.Image, upd.MaxParticipants, upd.Cost)
	if err != nil {
		log.Error().Err(err).Int("contest_id", id).Msg("UpdateContest failed")
		return model.Contest{}, err
	}
	return c, nil
}

// DeactivateContest is the only way a contest leaves circulation; the
// scheduler never deletes rows.
func (s *pgStore) DeactivateContest(id int) error {
	_, err := s.db.Exec(`
	UPDATE contests SET is_active = false, updated_at = now() WHERE id = $1;`, id)
	if err != nil {
		log.Error().Err(err).Int("contest_id", id).Msg("DeactivateContest failed")
	}
	return err
}

// AdvanceNextGeneration moves a contest's next_generation_date forward,
// but only if the row still carries the value the caller read. A zero
// row count means a concurrent sweep advanced it first.
func (s *pgStore) AdvanceNextGeneration(contestID int, previous *time.Time, next time.Time) error {
	res, err := s.db.Exec(`
	UPDATE contests
	SET next_generation_date = $3, updated_at = now()
	WHERE id = $1
	  AND (next_generation_date = $2
	       OR ($2::timestamptz IS NULL AND next_generation_date IS NULL));`,
		contestID, previous, next)
	if err != nil {
		log.Error().Err(err).Int("contest_id", contestID).Msg("AdvanceNextGeneration failed")
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrStaleGeneration
	}
	return nil
}
