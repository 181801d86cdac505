package endpoints

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api/panel/packets"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/middleware"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

type VoteController struct {
	store db.Store
	now   func() time.Time
}

func VoteModule(store db.Store, now func() time.Time) api.Module {
	if now == nil {
		now = time.Now
	}
	ctl := &VoteController{store: store, now: now}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/contests/:id/votes", ctl.castVote)
		c.GET("/contests/:id/results", ctl.results)
	})
}

// POST /contests/:id/votes casts the caller's single vote for a
// contributor entry. Voting requires having joined the contest and is
// closed once the contest ends.
func (ctl *VoteController) castVote(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	var request packets.CastVoteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}

	contest, err := ctl.store.GetContestByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "contest not found"}
	}
	if !contest.IsActive || contest.IsRecurringTemplate {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "voting is not open for this contest"}
	}
	if ctl.now().After(contest.EndTime) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "this contest has ended"}
	}

	if joined, err := ctl.store.GetParticipant(contest.ID, profile.ID); err != nil || joined == nil {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "join the contest before voting"}
	}

	target, err := ctl.store.GetParticipantByID(request.ParticipantID)
	if err != nil || target.ContestID != contest.ID {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "participant not found in this contest"}
	}
	if target.ProfileID == profile.ID {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "you cannot vote for your own entry"}
	}

	vote, err := ctl.store.CreateVote(contest.ID, target.ID, profile.ID)
	if err != nil {
		if errors.Is(err, db.ErrAlreadyVoted) {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "you already voted in this contest"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not record vote"}
	}

	return gin.H{"message": "vote recorded", "vote_id": vote.ID}, nil
}

// GET /contests/:id/results
func (ctl *VoteController) results(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	if _, err := ctl.store.GetContestByID(id); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "contest not found"}
	}

	results, err := ctl.store.ListContestResults(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load results"}
	}

	return packets.ResultsResponse{ContestID: id, Results: results}, nil
}
