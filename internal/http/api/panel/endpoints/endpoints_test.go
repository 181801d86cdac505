package endpoints

import (
	"database/sql"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// fakeStore is an in-memory db.Store for handler tests.
type fakeStore struct {
	users        map[int]*model.User
	profiles     map[int]*model.Profile
	admins       map[int]*model.Admin // keyed by user id
	contests     map[int]model.Contest
	participants map[int]model.ContestParticipant
	images       map[int]model.EntryImage
	votes        map[int]model.Vote
	favorites    map[int]map[int]bool // profile id -> image id set
	nextID       int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:        map[int]*model.User{},
		profiles:     map[int]*model.Profile{},
		admins:       map[int]*model.Admin{},
		contests:     map[int]model.Contest{},
		participants: map[int]model.ContestParticipant{},
		images:       map[int]model.EntryImage{},
		votes:        map[int]model.Vote{},
		favorites:    map[int]map[int]bool{},
		nextID:       1,
	}
}

func (f *fakeStore) id() int {
	id := f.nextID
	f.nextID++
	return id
}

func (f *fakeStore) CreateUser(email, hashedPassword string) (int, error) {
	u := &model.User{ID: f.id(), Email: email, HashedPassword: hashedPassword}
	f.users[u.ID] = u
	return u.ID, nil
}

func (f *fakeStore) GetUserByEmail(email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) GetUserByID(id int) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeStore) CreateProfile(userID int, role, screenName string) (model.Profile, error) {
	p := model.Profile{ID: f.id(), UserID: userID, Role: role, ScreenName: screenName}
	f.profiles[p.ID] = &p
	return p, nil
}

func (f *fakeStore) GetProfileByUserID(userID int) (*model.Profile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) GetProfileByID(id int) (*model.Profile, error) {
	p, ok := f.profiles[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) UpdateProfile(profileID int, upd model.ProfileUpdate) error {
	p, ok := f.profiles[profileID]
	if !ok {
		return sql.ErrNoRows
	}
	if upd.ScreenName != nil {
		p.ScreenName = *upd.ScreenName
	}
	if upd.Gender != nil {
		p.Gender = upd.Gender
	}
	if upd.HairColor != nil {
		p.HairColor = upd.HairColor
	}
	return nil
}

func (f *fakeStore) GetAdminByUserID(userID int) (*model.Admin, error) {
	a, ok := f.admins[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return a, nil
}

func (f *fakeStore) CreateAdmin(profileID int) (model.Admin, error) {
	a := model.Admin{ID: f.id(), ProfileID: profileID}
	for _, p := range f.profiles {
		if p.ID == profileID {
			f.admins[p.UserID] = &a
		}
	}
	return a, nil
}

func (f *fakeStore) CreateContest(c model.Contest) (model.Contest, error) {
	c.ID = f.id()
	f.contests[c.ID] = c
	return c, nil
}

func (f *fakeStore) GetContestByID(id int) (model.Contest, error) {
	c, ok := f.contests[id]
	if !ok {
		return model.Contest{}, sql.ErrNoRows
	}
	return c, nil
}

func (f *fakeStore) ListContests(filter db.ContestFilter) ([]model.Contest, error) {
	var out []model.Contest
	for id := 1; id < f.nextID; id++ {
		c, ok := f.contests[id]
		if !ok {
			continue
		}
		if filter.Category != nil && c.Category != *filter.Category {
			continue
		}
		if filter.Cadence != nil && c.Cadence != *filter.Cadence {
			continue
		}
		if filter.IsActive != nil && c.IsActive != *filter.IsActive {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeStore) ListOpenContests(now time.Time) ([]model.Contest, error) {
	var out []model.Contest
	for id := 1; id < f.nextID; id++ {
		c, ok := f.contests[id]
		if !ok {
			continue
		}
		if c.IsActive && !c.IsRecurringTemplate && !now.After(c.EndTime) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) ListDueRecurring(now time.Time) ([]model.Contest, error) {
	return nil, nil
}

func (f *fakeStore) UpdateContest(id int, upd db.ContestUpdate) (model.Contest, error) {
	c, ok := f.contests[id]
	if !ok {
		return model.Contest{}, sql.ErrNoRows
	}
	if upd.Title != nil {
		c.Title = *upd.Title
	}
	if upd.Image != nil {
		c.Image = upd.Image
	}
	if upd.MaxParticipants != nil {
		c.MaxParticipants = *upd.MaxParticipants
	}
	if upd.Cost != nil {
		c.Cost = *upd.Cost
	}
	f.contests[id] = c
	return c, nil
}

func (f *fakeStore) DeactivateContest(id int) error {
	c, ok := f.contests[id]
	if !ok {
		return sql.ErrNoRows
	}
	c.IsActive = false
	f.contests[id] = c
	return nil
}

func (f *fakeStore) AdvanceNextGeneration(contestID int, previous *time.Time, next time.Time) error {
	c, ok := f.contests[contestID]
	if !ok {
		return sql.ErrNoRows
	}
	c.NextGenerationDate = &next
	f.contests[contestID] = c
	return nil
}

func (f *fakeStore) CreateParticipant(contestID, profileID int, entryImageID *int, autoEntry bool) (model.ContestParticipant, error) {
	for _, p := range f.participants {
		if p.ContestID == contestID && p.ProfileID == profileID {
			return model.ContestParticipant{}, errors.New("duplicate participant")
		}
	}
	p := model.ContestParticipant{
		ID:           f.id(),
		ContestID:    contestID,
		ProfileID:    profileID,
		EntryImageID: entryImageID,
		AutoEntry:    autoEntry,
		JoinedAt:     time.Now().UTC(),
	}
	f.participants[p.ID] = p
	return p, nil
}

func (f *fakeStore) GetParticipant(contestID, profileID int) (*model.ContestParticipant, error) {
	for _, p := range f.participants {
		if p.ContestID == contestID && p.ProfileID == profileID {
			out := p
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStore) GetParticipantByID(id int) (model.ContestParticipant, error) {
	p, ok := f.participants[id]
	if !ok {
		return model.ContestParticipant{}, sql.ErrNoRows
	}
	return p, nil
}

func (f *fakeStore) ListParticipants(contestID int) ([]model.ContestParticipant, error) {
	var out []model.ContestParticipant
	for id := 1; id < f.nextID; id++ {
		p, ok := f.participants[id]
		if ok && p.ContestID == contestID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) CountParticipants(contestID int) (int, error) {
	n := 0
	for _, p := range f.participants {
		if p.ContestID == contestID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CountParticipantsByRole(contestID int, role string) (int, error) {
	n := 0
	for _, p := range f.participants {
		if p.ContestID != contestID {
			continue
		}
		if profile, ok := f.profiles[p.ProfileID]; ok && profile.Role == role {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateEntryImage(profileID int, category, url string) (model.EntryImage, error) {
	img := model.EntryImage{ID: f.id(), ProfileID: profileID, Category: category, URL: url, CreatedAt: time.Now().UTC()}
	f.images[img.ID] = img
	return img, nil
}

func (f *fakeStore) GetEntryImageByID(id int) (model.EntryImage, error) {
	img, ok := f.images[id]
	if !ok {
		return model.EntryImage{}, sql.ErrNoRows
	}
	return img, nil
}

func (f *fakeStore) ListEntryImages(profileID int, category *string) ([]model.EntryImage, error) {
	var out []model.EntryImage
	for id := 1; id < f.nextID; id++ {
		img, ok := f.images[id]
		if !ok || img.ProfileID != profileID {
			continue
		}
		if category != nil && img.Category != *category {
			continue
		}
		out = append(out, img)
	}
	return out, nil
}

func (f *fakeStore) CreateVote(contestID, participantID, voterID int) (model.Vote, error) {
	for _, v := range f.votes {
		if v.ContestID == contestID && v.VoterID == voterID {
			return model.Vote{}, db.ErrAlreadyVoted
		}
	}
	v := model.Vote{ID: f.id(), ContestID: contestID, ParticipantID: participantID, VoterID: voterID}
	f.votes[v.ID] = v
	return v, nil
}

func (f *fakeStore) ListContestResults(contestID int) ([]model.ParticipantResult, error) {
	var out []model.ParticipantResult
	for id := 1; id < f.nextID; id++ {
		p, ok := f.participants[id]
		if !ok || p.ContestID != contestID {
			continue
		}
		profile, ok := f.profiles[p.ProfileID]
		if !ok || profile.Role != model.RoleContributor {
			continue
		}
		votes := 0
		for _, v := range f.votes {
			if v.ParticipantID == p.ID {
				votes++
			}
		}
		out = append(out, model.ParticipantResult{
			ParticipantID: p.ID,
			ProfileID:     p.ProfileID,
			ScreenName:    profile.ScreenName,
			Votes:         votes,
		})
	}
	return out, nil
}

func (f *fakeStore) AddFavorite(profileID, imageID int) error {
	if f.favorites[profileID] == nil {
		f.favorites[profileID] = map[int]bool{}
	}
	f.favorites[profileID][imageID] = true
	return nil
}

func (f *fakeStore) RemoveFavorite(profileID, imageID int) error {
	delete(f.favorites[profileID], imageID)
	return nil
}

func (f *fakeStore) ListFavorites(profileID int) ([]model.EntryImage, error) {
	var out []model.EntryImage
	for imageID := range f.favorites[profileID] {
		if img, ok := f.images[imageID]; ok {
			out = append(out, img)
		}
	}
	return out, nil
}

func (f *fakeStore) ListImageFollowers(ownerProfileID int) ([]int, error) {
	seen := map[int]bool{}
	var out []int
	for profileID, imageIDs := range f.favorites {
		for imageID := range imageIDs {
			img, ok := f.images[imageID]
			if ok && img.ProfileID == ownerProfileID && !seen[profileID] {
				seen[profileID] = true
				out = append(out, profileID)
			}
		}
	}
	return out, nil
}

var _ db.Store = (*fakeStore)(nil)

// addUser seeds a user+profile pair and returns the profile.
func (f *fakeStore) addUser(t *testing.T, email, role string, mutate func(*model.Profile)) (*model.User, *model.Profile) {
	t.Helper()
	id, err := f.CreateUser(email, "x")
	if err != nil {
		t.Fatal(err)
	}
	p, err := f.CreateProfile(id, role, strings.Split(email, "@")[0])
	if err != nil {
		t.Fatal(err)
	}
	stored := f.profiles[p.ID]
	if mutate != nil {
		mutate(stored)
	}
	return f.users[id], stored
}

// asUser returns middleware that impersonates the given account, standing
// in for the JWT layer.
func asUser(user *model.User, profile *model.Profile) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("currentUser", user)
		if profile != nil {
			c.Set("currentProfile", profile)
		}
		c.Next()
	}
}

func newTestRouter(auth gin.HandlerFunc, modules ...api.Module) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	if auth != nil {
		r.Use(auth)
	}
	api.MountGroup(r, api.GroupConfig{}, modules...)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func strptr(s string) *string { return &s }

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
