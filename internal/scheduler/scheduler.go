// Package scheduler owns the recurring-contest engine: materializing the
// next instance of a cadence-bearing contest and sweeping all contests
// whose generation date has passed.
package scheduler

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// Store is the slice of persistence the engine needs. db.Store satisfies it.
type Store interface {
	CreateContest(c model.Contest) (model.Contest, error)
	AdvanceNextGeneration(contestID int, previous *time.Time, next time.Time) error
	ListDueRecurring(now time.Time) ([]model.Contest, error)
}

type Generator struct {
	store Store
	now   func() time.Time
}

// New builds a Generator. now may be nil, in which case time.Now is used;
// tests inject a fixed clock.
func New(store Store, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	return &Generator{store: store, now: now}
}

// GenerateNext materializes the next occurrence of a recurring contest.
// It returns (nil, nil) when the contest has no cadence: not generating
// is a no-op signal, not an error.
//
// The new instance copies title, category, image, attributes (deep copy),
// capacity, cadence, cost and creator; it is active, never a template,
// and its parent is the originating row's parent if set, else the
// originating row itself. Generated chains stay one level deep.
func (g *Generator) GenerateNext(origin model.Contest) (*model.Contest, error) {
	if !origin.Cadence.Recurring() {
		return nil, nil
	}

	newStart, newEnd := origin.NextOccurrence()

	parentID := origin.ID
	if origin.ParentContestID != nil {
		parentID = *origin.ParentContestID
	}

	instance := model.Contest{
		Title:               origin.Title,
		Category:            origin.Category,
		Image:               origin.Image,
		Attributes:          origin.Attributes.Clone(),
		MaxParticipants:     origin.MaxParticipants,
		StartTime:           newStart,
		EndTime:             newEnd,
		Cadence:             origin.Cadence,
		ParentContestID:     &parentID,
		IsRecurringTemplate: false,
		Cost:                origin.Cost,
		IsActive:            true,
		CreatedBy:           origin.CreatedBy,
	}
	if err := instance.Validate(); err != nil {
		return nil, err
	}

	created, err := g.store.CreateContest(instance)
	if errors.Is(err, db.ErrDuplicateInstance) {
		// A previous run created the instance but crashed before
		// advancing the due date. Advance it now so the row stops
		// showing up as due, and report "nothing generated".
		log.Warn().
			Int("contest_id", origin.ID).
			Time("start", newStart).
			Msg("instance already exists for this window, advancing due date only")
		if err := g.advance(origin, newStart); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := g.advance(origin, newStart); err != nil {
		return nil, err
	}

	log.Info().
		Int("contest_id", origin.ID).
		Int("instance_id", created.ID).
		Time("start", created.StartTime).
		Time("end", created.EndTime).
		Msg("generated recurring contest instance")
	return &created, nil
}

// advance moves the originating row's next_generation_date one cadence
// step forward of the instance just produced. Losing the conditional
// update means a concurrent sweep already advanced it; the instance
// itself is protected by the (parent, start) uniqueness, so that race
// is benign.
func (g *Generator) advance(origin model.Contest, newStart time.Time) error {
	next := origin.Cadence.Previous(newStart)
	err := g.store.AdvanceNextGeneration(origin.ID, origin.NextGenerationDate, next)
	if errors.Is(err, db.ErrStaleGeneration) {
		log.Warn().Int("contest_id", origin.ID).Msg("next generation date advanced concurrently")
		return nil
	}
	return err
}

// SweepFailure pairs a due contest with the error that stopped its
// generation.
type SweepFailure struct {
	Contest model.Contest
	Err     error
}

// SweepResult reports the outcome of one due-contest sweep.
type SweepResult struct {
	Created []model.Contest
	Failed  []SweepFailure
}

// GenerateDue finds every active cadence-bearing contest whose next
// generation date has passed and generates its next instance. One row's
// failure never stops the rest; failures are collected for the caller
// to report.
func (g *Generator) GenerateDue(now time.Time) (SweepResult, error) {
	var result SweepResult

	due, err := g.store.ListDueRecurring(now)
	if err != nil {
		return result, err
	}

	for _, contest := range due {
		created, err := g.GenerateNext(contest)
		if err != nil {
			log.Error().Err(err).
				Int("contest_id", contest.ID).
				Str("title", contest.Title).
				Msg("failed to generate recurring contest")
			result.Failed = append(result.Failed, SweepFailure{Contest: contest, Err: err})
			continue
		}
		if created != nil {
			result.Created = append(result.Created, *created)
		}
	}

	log.Info().
		Int("due", len(due)).
		Int("created", len(result.Created)).
		Int("failed", len(result.Failed)).
		Msg("due-contest sweep finished")
	return result, nil
}

// Sweep runs GenerateDue against the injected clock.
func (g *Generator) Sweep() (SweepResult, error) {
	return g.GenerateDue(g.now())
}
