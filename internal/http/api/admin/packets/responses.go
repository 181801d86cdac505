package packets

import (
	"time"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// ContestAdminResponse exposes the scheduling fields the voter panel
// never sees: template flag, parent link and the next generation date.
type ContestAdminResponse struct {
	ID                  int              `json:"id"`
	Title               string           `json:"title"`
	Category            string           `json:"category"`
	Image               *string          `json:"image"`
	Attributes          model.Attributes `json:"attributes"`
	MaxParticipants     int              `json:"max_participants"`
	StartTime           time.Time        `json:"start_time"`
	EndTime             time.Time        `json:"end_time"`
	Cadence             model.Cadence    `json:"cadence"`
	ParentContestID     *int             `json:"parent_contest_id"`
	IsRecurringTemplate bool             `json:"is_recurring_template"`
	NextGenerationDate  *time.Time       `json:"next_generation_date"`
	Cost                float64          `json:"cost"`
	IsActive            bool             `json:"is_active"`
	CreatedBy           int              `json:"created_by"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`
}

func NewContestAdminResponse(c model.Contest) ContestAdminResponse {
	return ContestAdminResponse{
		ID:                  c.ID,
		Title:               c.Title,
		Category:            c.Category,
		Image:               c.Image,
		Attributes:          c.Attributes,
		MaxParticipants:     c.MaxParticipants,
		StartTime:           c.StartTime,
		EndTime:             c.EndTime,
		Cadence:             c.Cadence,
		ParentContestID:     c.ParentContestID,
		IsRecurringTemplate: c.IsRecurringTemplate,
		NextGenerationDate:  c.NextGenerationDate,
		Cost:                c.Cost,
		IsActive:            c.IsActive,
		CreatedBy:           c.CreatedBy,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

type SweepResponse struct {
	Created []ContestAdminResponse `json:"created"`
	Failed  []SweepFailureResponse `json:"failed"`
}

type SweepFailureResponse struct {
	ContestID int    `json:"contest_id"`
	Title     string `json:"title"`
	Error     string `json:"error"`
}
