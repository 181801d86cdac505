package packets

import (
	"time"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

type CreateContestRequest struct {
	Title           string           `json:"title" binding:"required"`
	Category        string           `json:"category" binding:"required"`
	Image           *string          `json:"image"`
	Attributes      model.Attributes `json:"attributes"`
	MaxParticipants int              `json:"max_participants" binding:"required,gt=0"`
	StartTime       time.Time        `json:"start_time" binding:"required"`
	EndTime         time.Time        `json:"end_time" binding:"required"`
	Cadence         model.Cadence    `json:"cadence" binding:"omitempty,oneof=none daily weekly monthly"`
	Cost            float64          `json:"cost" binding:"gte=0"`
	ForceTemplate   bool             `json:"force_template"`
}

type UpdateContestRequest struct {
	Title           *string  `json:"title"`
	Image           *string  `json:"image"`
	MaxParticipants *int     `json:"max_participants"`
	Cost            *float64 `json:"cost"`
}
