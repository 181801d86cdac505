package packets

import (
	"time"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

type ProfileResponse struct {
	ID         int     `json:"id"`
	Email      string  `json:"email"`
	Role       string  `json:"role"`
	ScreenName string  `json:"screen_name"`
	Bio        *string `json:"bio"`
	City       *string `json:"city"`
	Country    *string `json:"country"`
	IsOver18   bool    `json:"is_over_18"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// ContestResponse mirrors model.Contest plus the derived availability
// and occupancy fields the voting panel renders.
type ContestResponse struct {
	ID                    int              `json:"id"`
	Title                 string           `json:"title"`
	Category              string           `json:"category"`
	Image                 *string          `json:"image"`
	Attributes            model.Attributes `json:"attributes"`
	MaxParticipants       int              `json:"max_participants"`
	StartTime             time.Time        `json:"start_time"`
	EndTime               time.Time        `json:"end_time"`
	Cadence               model.Cadence    `json:"cadence"`
	Cost                  float64          `json:"cost"`
	Joined                int              `json:"joined"`
	EstimatedPrize        float64          `json:"estimated_prize"`
	AvailableFrom         time.Time        `json:"available_from"`
	IsAvailableForJoining bool             `json:"is_available_for_joining"`
}

type JoinContestResponse struct {
	Message       string    `json:"message"`
	AlreadyJoined bool      `json:"already_joined,omitempty"`
	ContestID     int       `json:"contest_id"`
	ContestName   string    `json:"contest_name"`
	JoinedAt      time.Time `json:"joined_at"`
	EntryImageID  *int      `json:"entry_image_id,omitempty"`
}

type EntryImageResponse struct {
	ID        int    `json:"id"`
	Category  string `json:"category"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

type ResultsResponse struct {
	ContestID int                       `json:"contest_id"`
	Results   []model.ParticipantResult `json:"results"`
}
