package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// fakeStore implements Store in memory for generator tests.
type fakeStore struct {
	contests     map[int]model.Contest
	nextID       int
	createErr    error
	advanceErr   error
	advanceCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{contests: map[int]model.Contest{}, nextID: 1}
}

func (f *fakeStore) add(c model.Contest) model.Contest {
	c.ID = f.nextID
	f.nextID++
	f.contests[c.ID] = c
	return c
}

func (f *fakeStore) CreateContest(c model.Contest) (model.Contest, error) {
	if f.createErr != nil {
		return model.Contest{}, f.createErr
	}
	for _, existing := range f.contests {
		if existing.ParentContestID != nil && c.ParentContestID != nil &&
			*existing.ParentContestID == *c.ParentContestID &&
			existing.StartTime.Equal(c.StartTime) {
			return model.Contest{}, db.ErrDuplicateInstance
		}
	}
	return f.add(c), nil
}

func (f *fakeStore) AdvanceNextGeneration(contestID int, previous *time.Time, next time.Time) error {
	f.advanceCalls++
	if f.advanceErr != nil {
		return f.advanceErr
	}
	c, ok := f.contests[contestID]
	if !ok {
		return errors.New("contest not found")
	}
	samePrevious := (previous == nil && c.NextGenerationDate == nil) ||
		(previous != nil && c.NextGenerationDate != nil && previous.Equal(*c.NextGenerationDate))
	if !samePrevious {
		return db.ErrStaleGeneration
	}
	c.NextGenerationDate = &next
	f.contests[contestID] = c
	return nil
}

func (f *fakeStore) ListDueRecurring(now time.Time) ([]model.Contest, error) {
	var due []model.Contest
	for id := 1; id < f.nextID; id++ {
		c, ok := f.contests[id]
		if !ok {
			continue
		}
		if c.IsActive && c.Cadence.Recurring() &&
			c.NextGenerationDate != nil && !c.NextGenerationDate.After(now) {
			due = append(due, c)
		}
	}
	return due, nil
}

func ts(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func weeklyContest(store *fakeStore) model.Contest {
	start := ts(2025, time.July, 1)
	due := start.AddDate(0, 0, -7)
	return store.add(model.Contest{
		Title:              "Weekly Portrait",
		Category:           "face",
		Attributes:         model.Attributes{"gender": {"female"}},
		MaxParticipants:    20,
		StartTime:          start,
		EndTime:            start.AddDate(0, 0, 5),
		Cadence:            model.CadenceWeekly,
		NextGenerationDate: &due,
		Cost:               10,
		IsActive:           true,
		CreatedBy:          1,
	})
}

func TestGenerateNextShiftsScheduleOneStep(t *testing.T) {
	store := newFakeStore()
	origin := weeklyContest(store)

	created, err := New(store, nil).GenerateNext(origin)
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.Equal(t, origin.StartTime.AddDate(0, 0, 7), created.StartTime)
	assert.Equal(t, origin.EndTime.AddDate(0, 0, 7), created.EndTime)
	assert.Equal(t, origin.Cadence, created.Cadence)
	assert.Equal(t, origin.Title, created.Title)
	assert.Equal(t, origin.Cost, created.Cost)
	assert.Equal(t, origin.CreatedBy, created.CreatedBy)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsRecurringTemplate)
	require.NotNil(t, created.ParentContestID)
	assert.Equal(t, origin.ID, *created.ParentContestID)
}

func TestGenerateNextAdvancesDueDate(t *testing.T) {
	store := newFakeStore()
	origin := weeklyContest(store)

	created, err := New(store, nil).GenerateNext(origin)
	require.NoError(t, err)
	require.NotNil(t, created)

	updated := store.contests[origin.ID]
	require.NotNil(t, updated.NextGenerationDate)
	// The new due date sits one cadence step before the start just
	// produced, i.e. exactly at the instance's start.
	assert.Equal(t, created.StartTime.AddDate(0, 0, -7), *updated.NextGenerationDate)
	assert.Equal(t, origin.NextGenerationDate.AddDate(0, 0, 7), *updated.NextGenerationDate)
}

func TestGenerateNextNoopsWithoutCadence(t *testing.T) {
	store := newFakeStore()
	origin := store.add(model.Contest{
		Title:           "One Shot",
		MaxParticipants: 10,
		StartTime:       ts(2025, time.July, 1),
		EndTime:         ts(2025, time.July, 2),
		Cadence:         model.CadenceNone,
		IsActive:        true,
	})

	created, err := New(store, nil).GenerateNext(origin)
	require.NoError(t, err)
	assert.Nil(t, created)
	assert.Len(t, store.contests, 1)
	assert.Zero(t, store.advanceCalls)
}

func TestGenerateNextFlattensParentChain(t *testing.T) {
	store := newFakeStore()
	root := weeklyContest(store)

	gen := New(store, nil)
	first, err := gen.GenerateNext(root)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := gen.GenerateNext(*first)
	require.NoError(t, err)
	require.NotNil(t, second)

	// Generations chain to the root, not to each other.
	require.NotNil(t, second.ParentContestID)
	assert.Equal(t, root.ID, *second.ParentContestID)
}

func TestGenerateNextClonesAttributes(t *testing.T) {
	store := newFakeStore()
	origin := weeklyContest(store)

	created, err := New(store, nil).GenerateNext(origin)
	require.NoError(t, err)
	require.NotNil(t, created)

	created.Attributes["gender"][0] = "male"
	assert.Equal(t, "female", origin.Attributes["gender"][0])
}

func TestGenerateNextDuplicateAdvancesOnly(t *testing.T) {
	store := newFakeStore()
	origin := weeklyContest(store)

	gen := New(store, nil)
	first, err := gen.GenerateNext(origin)
	require.NoError(t, err)
	require.NotNil(t, first)

	// Replaying the same origin state hits the uniqueness guard: no new
	// row, no error, and the due date still moves forward.
	replay, err := gen.GenerateNext(origin)
	require.NoError(t, err)
	assert.Nil(t, replay)
	assert.Len(t, store.contests, 2)
}

func TestGenerateNextToleratesConcurrentAdvance(t *testing.T) {
	store := newFakeStore()
	origin := weeklyContest(store)

	// Another sweep advanced the due date between our read and write.
	store.advanceErr = db.ErrStaleGeneration

	created, err := New(store, nil).GenerateNext(origin)
	require.NoError(t, err)
	require.NotNil(t, created)
}

func TestSweepGeneratesAllDue(t *testing.T) {
	store := newFakeStore()
	weeklyContest(store)

	start := ts(2025, time.June, 20)
	due := start.AddDate(0, 0, -1)
	store.add(model.Contest{
		Title:              "Daily Look",
		MaxParticipants:    10,
		StartTime:          start,
		EndTime:            start.Add(12 * time.Hour),
		Cadence:            model.CadenceDaily,
		NextGenerationDate: &due,
		IsActive:           true,
	})

	// Not due yet.
	futureStart := ts(2025, time.September, 1)
	futureDue := futureStart.AddDate(0, 0, -7)
	store.add(model.Contest{
		Title:              "Autumn Special",
		MaxParticipants:    10,
		StartTime:          futureStart,
		EndTime:            futureStart.AddDate(0, 0, 5),
		Cadence:            model.CadenceWeekly,
		NextGenerationDate: &futureDue,
		IsActive:           true,
	})

	now := ts(2025, time.July, 1)
	result, err := New(store, func() time.Time { return now }).Sweep()
	require.NoError(t, err)

	assert.Len(t, result.Created, 2)
	assert.Empty(t, result.Failed)
	assert.Len(t, store.contests, 5)
}

func TestSweepIsolatesFailures(t *testing.T) {
	store := newFakeStore()
	good := weeklyContest(store)

	// An invalid row (end before start) fails validation during
	// generation but must not stop the rest of the sweep.
	badStart := ts(2025, time.June, 10)
	badDue := badStart.AddDate(0, 0, -7)
	bad := store.add(model.Contest{
		Title:              "Broken",
		MaxParticipants:    10,
		StartTime:          badStart,
		EndTime:            badStart.AddDate(0, 0, -1),
		Cadence:            model.CadenceWeekly,
		NextGenerationDate: &badDue,
		IsActive:           true,
	})

	thirdStart := ts(2025, time.June, 25)
	thirdDue := thirdStart.AddDate(0, 0, -1)
	third := store.add(model.Contest{
		Title:              "Daily Look",
		MaxParticipants:    10,
		StartTime:          thirdStart,
		EndTime:            thirdStart.Add(12 * time.Hour),
		Cadence:            model.CadenceDaily,
		NextGenerationDate: &thirdDue,
		IsActive:           true,
	})

	result, err := New(store, func() time.Time { return ts(2025, time.July, 1) }).Sweep()
	require.NoError(t, err)

	require.Len(t, result.Failed, 1)
	assert.Equal(t, bad.ID, result.Failed[0].Contest.ID)
	assert.ErrorIs(t, result.Failed[0].Err, model.ErrEndBeforeStart)

	// Rows before and after the failure still generate.
	require.Len(t, result.Created, 2)
	assert.Equal(t, good.ID, *result.Created[0].ParentContestID)
	assert.Equal(t, third.ID, *result.Created[1].ParentContestID)
}
