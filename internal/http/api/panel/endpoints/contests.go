package endpoints

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api/panel/packets"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/middleware"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
	"github.com/numanubhani/adminpanel-integration-se/internal/notify"
)

type ContestController struct {
	store     db.Store
	publisher notify.Publisher
	now       func() time.Time
}

func NewContestController(store db.Store, publisher notify.Publisher, now func() time.Time) *ContestController {
	if now == nil {
		now = time.Now
	}
	if publisher == nil {
		publisher = notify.Nop{}
	}
	return &ContestController{store: store, publisher: publisher, now: now}
}

func ContestModule(store db.Store, publisher notify.Publisher, now func() time.Time) api.Module {
	ctl := NewContestController(store, publisher, now)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/contests", ctl.listContests)
		c.GET("/contests/:id", ctl.getContest)
		c.POST("/contests/:id/join", ctl.joinContest)
	})
}

// GET /contests lists contests currently open for joining. Recurring
// templates never appear here; an instance only shows up once its
// availability window has opened.
func (ctl *ContestController) listContests(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	now := ctl.now()
	contests, err := ctl.store.ListOpenContests(now)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list contests"}
	}

	response := make([]packets.ContestResponse, 0, len(contests))
	for _, contest := range contests {
		if category := ctx.Query("category"); category != "" && contest.Category != category {
			continue
		}
		if !contest.IsAvailableForJoining(now) {
			continue
		}
		response = append(response, ctl.contestResponse(contest, now))
	}
	return response, nil
}

// GET /contests/:id
func (ctl *ContestController) getContest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	contest, err := ctl.store.GetContestByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "contest not found"}
	}
	if contest.IsRecurringTemplate || !contest.IsActive {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "contest not found"}
	}

	return ctl.contestResponse(contest, ctl.now()), nil
}

// POST /contests/:id/join enters the caller into a contest. Voters join
// with no image; contributors enter an image matching the contest
// category, picked explicitly or auto-selected from their uploads.
func (ctl *ContestController) joinContest(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid id"}
	}

	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}

	contest, err := ctl.store.GetContestByID(id)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "contest not found"}
	}
	if contest.IsRecurringTemplate {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "recurring templates cannot be joined directly"}
	}
	if !contest.IsActive {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "this contest is not active"}
	}
	now := ctl.now()
	if !contest.IsAvailableForJoining(now) {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "this contest is not open for joining"}
	}

	// Already joined: report success so the client can open the contest.
	if existing, err := ctl.store.GetParticipant(contest.ID, profile.ID); err == nil && existing != nil {
		return packets.JoinContestResponse{
			Message:       "already joined - opening contest",
			AlreadyJoined: true,
			ContestID:     contest.ID,
			ContestName:   contest.Title,
			JoinedAt:      existing.JoinedAt,
			EntryImageID:  existing.EntryImageID,
		}, nil
	}

	joined, err := ctl.store.CountParticipants(contest.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to check capacity"}
	}
	if joined >= contest.MaxParticipants {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "contest is full, maximum participants reached"}
	}

	var entryImageID *int
	autoEntry := false
	if profile.Role == model.RoleContributor {
		if !contest.Attributes.Matches(profile.AttributeValues()) {
			return nil, &api.APIError{Code: http.StatusBadRequest, Message: "you do not meet the contest requirements"}
		}

		image, auto, apiErr := ctl.resolveEntryImage(ctx, profile, contest)
		if apiErr != nil {
			return nil, apiErr
		}
		entryImageID = &image.ID
		autoEntry = auto
	}

	participant, err := ctl.store.CreateParticipant(contest.ID, profile.ID, entryImageID, autoEntry)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not join contest"}
	}

	if profile.Role == model.RoleContributor {
		ctl.notifyFollowers(profile, contest)
	}

	message := "successfully entered the contest for voting"
	if profile.Role == model.RoleContributor {
		message = "successfully joined the contest"
	}
	return packets.JoinContestResponse{
		Message:      message,
		ContestID:    contest.ID,
		ContestName:  contest.Title,
		JoinedAt:     participant.JoinedAt,
		EntryImageID: participant.EntryImageID,
	}, nil
}

// resolveEntryImage picks the image a contributor competes with: the one
// named in the request (verified for ownership and category), or the
// first uploaded image in the contest category, falling back to the
// first upload of any category. The bool reports auto-selection.
func (ctl *ContestController) resolveEntryImage(ctx *gin.Context, profile *model.Profile, contest model.Contest) (*model.EntryImage, bool, *api.APIError) {
	var request packets.JoinContestRequest
	// The body is optional; an empty body means auto-select.
	_ = ctx.ShouldBindJSON(&request)

	if request.EntryImageID != nil {
		image, err := ctl.store.GetEntryImageByID(*request.EntryImageID)
		if err != nil || image.ProfileID != profile.ID {
			return nil, false, &api.APIError{Code: http.StatusNotFound, Message: "selected image not found or does not belong to you"}
		}
		if !strings.EqualFold(image.Category, contest.Category) {
			return nil, false, &api.APIError{Code: http.StatusBadRequest,
				Message: "selected image does not match contest category \"" + contest.Category + "\""}
		}
		return &image, false, nil
	}

	matching, err := ctl.store.ListEntryImages(profile.ID, &contest.Category)
	if err != nil {
		return nil, false, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load entry images"}
	}
	if len(matching) > 0 {
		return &matching[0], true, nil
	}

	fallback, err := ctl.store.ListEntryImages(profile.ID, nil)
	if err != nil {
		return nil, false, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to load entry images"}
	}
	if len(fallback) > 0 {
		return &fallback[0], true, nil
	}

	return nil, false, &api.APIError{Code: http.StatusBadRequest,
		Message: "you need to upload a \"" + contest.Category + "\" image before joining this contest"}
}

func (ctl *ContestController) notifyFollowers(profile *model.Profile, contest model.Contest) {
	followers, err := ctl.store.ListImageFollowers(profile.ID)
	if err != nil {
		log.Error().Err(err).Int("profile_id", profile.ID).Msg("failed to list followers for join notification")
		return
	}
	if len(followers) > 0 {
		ctl.publisher.ContributorJoined(*profile, contest, followers)
	}
}

// estimated prize is 75% of the pot paid in by voter entries;
// contributors join free and compete for it.
func (ctl *ContestController) contestResponse(contest model.Contest, now time.Time) packets.ContestResponse {
	joined, err := ctl.store.CountParticipants(contest.ID)
	if err != nil {
		log.Error().Err(err).Int("contest_id", contest.ID).Msg("failed to count participants")
	}
	voters, err := ctl.store.CountParticipantsByRole(contest.ID, model.RoleUser)
	if err != nil {
		log.Error().Err(err).Int("contest_id", contest.ID).Msg("failed to count voters")
	}

	return packets.ContestResponse{
		ID:                    contest.ID,
		Title:                 contest.Title,
		Category:              contest.Category,
		Image:                 contest.Image,
		Attributes:            contest.Attributes,
		MaxParticipants:       contest.MaxParticipants,
		StartTime:             contest.StartTime,
		EndTime:               contest.EndTime,
		Cadence:               contest.Cadence,
		Cost:                  contest.Cost,
		Joined:                joined,
		EstimatedPrize:        float64(voters) * contest.Cost * 0.75,
		AvailableFrom:         contest.AvailableFrom(),
		IsAvailableForJoining: contest.IsAvailableForJoining(now),
	}
}
