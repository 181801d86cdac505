package endpoints

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api/panel/packets"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/middleware"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// AuthPublicModule mounts public auth endpoints (/auth/signup, /auth/login)
func AuthPublicModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUBLIC_POST("/auth/signup", ctl.signup)
		c.PUBLIC_POST("/auth/login", ctl.login)
	})
}

// AuthSessionModule mounts profile endpoints (JWT required)
func AuthSessionModule(jwtSecret string, store db.Store) api.Module {
	ctl := newAccountManager(jwtSecret, store)
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/profile", ctl.getProfile)
		c.PUT("/profile", ctl.updateProfile)
	})
}

type AccountManager struct {
	jwtSecret string
	store     db.Store
}

func newAccountManager(secret string, store db.Store) *AccountManager {
	return &AccountManager{jwtSecret: secret, store: store}
}

// POST /auth/signup registers a user and its contributor/voter profile.
func (a *AccountManager) signup(ctx *gin.Context) (any, *api.APIError) {
	var request packets.SignupRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if existing, _ := a.store.GetUserByEmail(request.Email); existing != nil {
		log.Warn().Str("email", request.Email).Msg("signup email already registered")
		return nil, &api.APIError{Code: http.StatusConflict, Message: "email already registered"}
	}

	hashed, err := middleware.HashPassword(request.Password)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not hash password"}
	}

	userID, err := a.store.CreateUser(request.Email, hashed)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create user"}
	}

	if _, err := a.store.CreateProfile(userID, request.Role, request.ScreenName); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not create profile"}
	}

	token, err := middleware.GenerateJWT(userID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return gin.H{"token": token}, nil
}

// POST /auth/login
func (a *AccountManager) login(ctx *gin.Context) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	foundUser, err := a.store.GetUserByEmail(request.Email)
	if err != nil || foundUser == nil || !middleware.CheckPassword(foundUser.HashedPassword, request.Password) {
		return nil, &api.APIError{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}

	token, err := middleware.GenerateJWT(foundUser.ID, a.jwtSecret)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}

	return gin.H{"token": token}, nil
}

// GET /profile
func (a *AccountManager) getProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}
	return profileResponse(user, profile), nil
}

// PUT /profile
func (a *AccountManager) updateProfile(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}

	var request packets.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	upd := model.ProfileUpdate{
		ScreenName:    request.ScreenName,
		LegalFullName: request.LegalFullName,
		PhoneNumber:   request.PhoneNumber,
		City:          request.City,
		Country:       request.Country,
		Bio:           request.Bio,
		Gender:        request.Gender,
		Height:        request.Height,
		Weight:        request.Weight,
		ShoeSize:      request.ShoeSize,
		SkinTone:      request.SkinTone,
		HairColor:     request.HairColor,
		BodyType:      request.BodyType,
		BustSize:      request.BustSize,
	}
	if err := a.store.UpdateProfile(profile.ID, upd); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not update profile"}
	}

	updated, err := a.store.GetProfileByID(profile.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not fetch updated profile"}
	}

	return profileResponse(user, updated), nil
}

func profileResponse(user *model.User, p *model.Profile) packets.ProfileResponse {
	return packets.ProfileResponse{
		ID:         p.ID,
		Email:      user.Email,
		Role:       p.Role,
		ScreenName: p.ScreenName,
		Bio:        p.Bio,
		City:       p.City,
		Country:    p.Country,
		IsOver18:   p.IsOver18,
		CreatedAt:  p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  p.UpdatedAt.Format(time.RFC3339),
	}
}
