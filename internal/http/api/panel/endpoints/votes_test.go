package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

func voteRouter(store *fakeStore, user *model.User, profile *model.Profile) *gin.Engine {
	return newTestRouter(asUser(user, profile), VoteModule(store, fixedNow))
}

// seeds a contest with one contributor entry and returns the entry's
// participant id.
func seedEntry(t *testing.T, store *fakeStore, contestID int) model.ContestParticipant {
	t.Helper()
	_, contributor := store.addUser(t, fmt.Sprintf("model%d@example.com", store.nextID), model.RoleContributor, nil)
	img, _ := store.CreateEntryImage(contributor.ID, "face", "/uploads/entry.jpg")
	p, err := store.CreateParticipant(contestID, contributor.ID, &img.ID, false)
	require.NoError(t, err)
	return p
}

func TestCastVote(t *testing.T) {
	store := newFakeStore()
	user, profile := store.addUser(t, "voter@example.com", model.RoleUser, nil)
	contest := seedContest(store, nil)
	entry := seedEntry(t, store, contest.ID)
	store.CreateParticipant(contest.ID, profile.ID, nil, false)

	body := fmt.Sprintf(`{"participant_id": %d}`, entry.ID)
	w := doRequest(voteRouter(store, user, profile), http.MethodPost, fmt.Sprintf("/contests/%d/votes", contest.ID), body)
	mustStatus(t, w, http.StatusOK)

	results, err := store.ListContestResults(contest.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 1, results[0].Votes)
}

func TestCastVoteRequiresJoining(t *testing.T) {
	store := newFakeStore()
	user, profile := store.addUser(t, "voter@example.com", model.RoleUser, nil)
	contest := seedContest(store, nil)
	entry := seedEntry(t, store, contest.ID)

	body := fmt.Sprintf(`{"participant_id": %d}`, entry.ID)
	w := doRequest(voteRouter(store, user, profile), http.MethodPost, fmt.Sprintf("/contests/%d/votes", contest.ID), body)
	mustStatus(t, w, http.StatusForbidden)
}

func TestCastVoteOncePerContest(t *testing.T) {
	store := newFakeStore()
	user, profile := store.addUser(t, "voter@example.com", model.RoleUser, nil)
	contest := seedContest(store, nil)
	first := seedEntry(t, store, contest.ID)
	second := seedEntry(t, store, contest.ID)
	store.CreateParticipant(contest.ID, profile.ID, nil, false)

	router := voteRouter(store, user, profile)
	path := fmt.Sprintf("/contests/%d/votes", contest.ID)

	mustStatus(t, doRequest(router, http.MethodPost, path, fmt.Sprintf(`{"participant_id": %d}`, first.ID)), http.StatusOK)
	mustStatus(t, doRequest(router, http.MethodPost, path, fmt.Sprintf(`{"participant_id": %d}`, second.ID)), http.StatusConflict)
}

func TestCastVoteRejectsOwnEntry(t *testing.T) {
	store := newFakeStore()
	user, profile := store.addUser(t, "model@example.com", model.RoleContributor, nil)
	contest := seedContest(store, nil)
	img, _ := store.CreateEntryImage(profile.ID, "face", "/uploads/me.jpg")
	mine, err := store.CreateParticipant(contest.ID, profile.ID, &img.ID, false)
	require.NoError(t, err)

	body := fmt.Sprintf(`{"participant_id": %d}`, mine.ID)
	w := doRequest(voteRouter(store, user, profile), http.MethodPost, fmt.Sprintf("/contests/%d/votes", contest.ID), body)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestCastVoteClosedAfterEnd(t *testing.T) {
	store := newFakeStore()
	user, profile := store.addUser(t, "voter@example.com", model.RoleUser, nil)
	contest := seedContest(store, func(c *model.Contest) {
		c.StartTime = testNow.AddDate(0, 0, -9)
		c.EndTime = testNow.AddDate(0, 0, -2)
	})
	entry := seedEntry(t, store, contest.ID)
	store.CreateParticipant(contest.ID, profile.ID, nil, false)

	body := fmt.Sprintf(`{"participant_id": %d}`, entry.ID)
	w := doRequest(voteRouter(store, user, profile), http.MethodPost, fmt.Sprintf("/contests/%d/votes", contest.ID), body)
	mustStatus(t, w, http.StatusBadRequest)
}

func TestResultsOrderedByVotes(t *testing.T) {
	store := newFakeStore()
	user, profile := store.addUser(t, "viewer@example.com", model.RoleUser, nil)
	contest := seedContest(store, nil)
	first := seedEntry(t, store, contest.ID)
	second := seedEntry(t, store, contest.ID)

	_, voterA := store.addUser(t, "a@example.com", model.RoleUser, nil)
	_, voterB := store.addUser(t, "b@example.com", model.RoleUser, nil)
	store.CreateVote(contest.ID, second.ID, voterA.ID)
	store.CreateVote(contest.ID, second.ID, voterB.ID)
	store.CreateVote(contest.ID, first.ID, profile.ID)

	w := doRequest(voteRouter(store, user, profile), http.MethodGet, fmt.Sprintf("/contests/%d/results", contest.ID), "")
	mustStatus(t, w, http.StatusOK)

	var got struct {
		ContestID int                       `json:"contest_id"`
		Results   []model.ParticipantResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, contest.ID, got.ContestID)
	require.Len(t, got.Results, 2)

	byParticipant := map[int]int{}
	for _, r := range got.Results {
		byParticipant[r.ParticipantID] = r.Votes
	}
	assert.Equal(t, 2, byParticipant[second.ID])
	assert.Equal(t, 1, byParticipant[first.ID])
}
