package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api/admin/packets"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/middleware"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
	"github.com/numanubhani/adminpanel-integration-se/internal/notify"
	"github.com/numanubhani/adminpanel-integration-se/internal/scheduler"
)

type ContestAdminController struct {
	store     db.Store
	generator *scheduler.Generator
	publisher notify.Publisher
}

// ContestAdminModule mounts contest management behind RequireAdmin.
func ContestAdminModule(store db.Store, generator *scheduler.Generator, publisher notify.Publisher) api.Module {
	if publisher == nil {
		publisher = notify.Nop{}
	}
	ctl := &ContestAdminController{store: store, generator: generator, publisher: publisher}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/contests", ctl.createContest)
		c.GET("/contests", ctl.listContests)
		c.GET("/contests/:id", ctl.getContest)
		c.PATCH("/contests/:id", ctl.updateContest)
		c.DELETE("/contests/:id", ctl.deactivateContest)
		c.GET("/contests/:id/participants", ctl.listParticipants)
		c.POST("/contests/:id/generate", ctl.generateNext)
		c.POST("/contests/generate-due", ctl.generateDue)
	})
}

// POST /contests creates a contest. A cadence turns it into a
// self-generating contest; force_template additionally makes it a
// non-joinable master template.
func (ctl *ContestAdminController) createContest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	admin, ok := middleware.GetCurrentAdmin(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "admin access required"}
	}

	var request packets.CreateContestRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	cadence := request.Cadence
	if cadence == "" {
		cadence = model.CadenceNone
	}

	contest := model.Contest{
		Title:           request.Title,
		Category:        request.Category,
		Image:           request.Image,
		Attributes:      request.Attributes,
		MaxParticipants: request.MaxParticipants,
		StartTime:       request.StartTime,
		EndTime:         request.EndTime,
		Cadence:         cadence,
		Cost:            request.Cost,
		IsActive:        true,
		CreatedBy:       admin.ID,
	}
	if err := scheduler.ApplyCreationPolicy(&contest, request.ForceTemplate); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	created, err := ctl.store.CreateContest(contest)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create contest"}
	}

	log.Info().
		Int("contest_id", created.ID).
		Str("cadence", string(created.Cadence)).
		Bool("template", created.IsRecurringTemplate).
		Msg("contest created")
	return packets.NewContestAdminResponse(created), nil
}

// GET /contests lists all contests, templates included. Supports
// ?category=, ?cadence= and ?is_active= filters.
func (ctl *ContestAdminController) listContests(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	var filter db.ContestFilter
	if q := ctx.Query("category"); q != "" {
		filter.Category = &q
	}
	if q := ctx.Query("cadence"); q != "" {
		cadence := model.Cadence(q)
		if !cadence.Valid() {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid cadence filter"}
		}
		filter.Cadence = &cadence
	}
	if q := ctx.Query("is_active"); q != "" {
		active, err := strconv.ParseBool(q)
		if err != nil {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid is_active filter"}
		}
		filter.IsActive = &active
	}

	contests, err := ctl.store.ListContests(filter)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list contests"}
	}

	out := make([]packets.ContestAdminResponse, 0, len(contests))
	for _, contest := range contests {
		out = append(out, packets.NewContestAdminResponse(contest))
	}
	return out, nil
}

// GET /contests/:id
func (ctl *ContestAdminController) getContest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	contest, apiErr := ctl.contestFromPath(ctx)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.NewContestAdminResponse(*contest), nil
}

// PATCH /contests/:id edits presentation and capacity fields. Schedule
// and cadence are fixed at creation; a different schedule means a new
// contest.
func (ctl *ContestAdminController) updateContest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	contest, apiErr := ctl.contestFromPath(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	var request packets.UpdateContestRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if request.MaxParticipants != nil && *request.MaxParticipants <= 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "max_participants must be positive"}
	}
	if request.Cost != nil && *request.Cost < 0 {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "cost cannot be negative"}
	}

	updated, err := ctl.store.UpdateContest(contest.ID, db.ContestUpdate{
		Title:           request.Title,
		Image:           request.Image,
		MaxParticipants: request.MaxParticipants,
		Cost:            request.Cost,
	})
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update contest"}
	}
	return packets.NewContestAdminResponse(updated), nil
}

// DELETE /contests/:id deactivates rather than deletes, so generated
// instances keep a valid parent. A deactivated template stops spawning.
func (ctl *ContestAdminController) deactivateContest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	contest, apiErr := ctl.contestFromPath(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	if err := ctl.store.DeactivateContest(contest.ID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not deactivate contest"}
	}
	return gin.H{"message": "contest deactivated"}, nil
}

// GET /contests/:id/participants
func (ctl *ContestAdminController) listParticipants(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	contest, apiErr := ctl.contestFromPath(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	participants, err := ctl.store.ListParticipants(contest.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list participants"}
	}
	return participants, nil
}

// POST /contests/:id/generate forces the next instance of a recurring
// contest without waiting for the sweep.
func (ctl *ContestAdminController) generateNext(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	contest, apiErr := ctl.contestFromPath(ctx)
	if apiErr != nil {
		return nil, apiErr
	}

	created, err := ctl.generator.GenerateNext(*contest)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateInstance) {
			return nil, &api.APIError{Code: http.StatusConflict, Message: "instance for this window already exists"}
		}
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "generation failed"}
	}
	if created == nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "contest is not recurring or the window is already covered"}
	}

	ctl.publisher.ContestGenerated(*created)
	return packets.NewContestAdminResponse(*created), nil
}

// POST /contests/generate-due runs one due-contest sweep inline. The
// sweeper binary does the same thing on a schedule.
func (ctl *ContestAdminController) generateDue(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	result, err := ctl.generator.Sweep()
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "sweep failed"}
	}

	response := packets.SweepResponse{
		Created: make([]packets.ContestAdminResponse, 0, len(result.Created)),
		Failed:  make([]packets.SweepFailureResponse, 0, len(result.Failed)),
	}
	for _, created := range result.Created {
		ctl.publisher.ContestGenerated(created)
		response.Created = append(response.Created, packets.NewContestAdminResponse(created))
	}
	for _, failure := range result.Failed {
		response.Failed = append(response.Failed, packets.SweepFailureResponse{
			ContestID: failure.Contest.ID,
			Title:     failure.Contest.Title,
			Error:     failure.Err.Error(),
		})
	}
	return response, nil
}

func (ctl *ContestAdminController) contestFromPath(ctx *gin.Context) (*model.Contest, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}
	contest, err := ctl.store.GetContestByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "contest not found"}
	}
	return &contest, nil
}
