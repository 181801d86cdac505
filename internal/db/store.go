// Store exposes all persistence used by the API and the scheduler so
// handlers can be tested against a fake.
package db

import (
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

type Store interface {
	// users
	CreateUser(email, hashedPassword string) (int, error)
	GetUserByEmail(email string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)

	// profiles
	CreateProfile(userID int, role, screenName string) (model.Profile, error)
	GetProfileByUserID(userID int) (*model.Profile, error)
	GetProfileByID(id int) (*model.Profile, error)
	UpdateProfile(profileID int, upd model.ProfileUpdate) error
	GetAdminByUserID(userID int) (*model.Admin, error)
	CreateAdmin(profileID int) (model.Admin, error)

	// contests
	CreateContest(c model.Contest) (model.Contest, error)
	GetContestByID(id int) (model.Contest, error)
	ListContests(f ContestFilter) ([]model.Contest, error)
	ListOpenContests(now time.Time) ([]model.Contest, error)
	ListDueRecurring(now time.Time) ([]model.Contest, error)
	UpdateContest(id int, upd ContestUpdate) (model.Contest, error)
	DeactivateContest(id int) error
	AdvanceNextGeneration(contestID int, previous *time.Time, next time.Time) error

	// participants
	CreateParticipant(contestID, profileID int, entryImageID *int, autoEntry bool) (model.ContestParticipant, error)
	GetParticipant(contestID, profileID int) (*model.ContestParticipant, error)
	GetParticipantByID(id int) (model.ContestParticipant, error)
	ListParticipants(contestID int) ([]model.ContestParticipant, error)
	CountParticipants(contestID int) (int, error)
	CountParticipantsByRole(contestID int, role string) (int, error)

	// entry images
	CreateEntryImage(profileID int, category, url string) (model.EntryImage, error)
	GetEntryImageByID(id int) (model.EntryImage, error)
	ListEntryImages(profileID int, category *string) ([]model.EntryImage, error)

	// votes
	CreateVote(contestID, participantID, voterID int) (model.Vote, error)
	ListContestResults(contestID int) ([]model.ParticipantResult, error)

	// favorites
	AddFavorite(profileID, imageID int) error
	RemoveFavorite(profileID, imageID int) error
	ListFavorites(profileID int) ([]model.EntryImage, error)
	ListImageFollowers(ownerProfileID int) ([]int, error)
}

// ContestFilter narrows the admin contest listing.
type ContestFilter struct {
	Category *string
	Cadence  *model.Cadence
	IsActive *bool
}

// ContestUpdate carries the fields an admin may change after creation.
// Schedule and recurrence fields are deliberately absent: cadence and the
// template decision are fixed at creation time.
type ContestUpdate struct {
	Title           *string
	Image           *string
	MaxParticipants *int
	Cost            *float64
}

type pgStore struct {
	db *sqlx.DB
}

// compile-time check that pgStore implements Store
var _ Store = (*pgStore)(nil)

func NewStore(database *sqlx.DB) Store {
	if database == nil {
		database = DB
	}
	return &pgStore{db: database}
}
