package endpoints

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api/panel/packets"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/middleware"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

type FavoriteController struct {
	store db.Store
}

func FavoriteModule(store db.Store) api.Module {
	ctl := &FavoriteController{store: store}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/favorites", ctl.addFavorite)
		c.DELETE("/favorites/:image_id", ctl.removeFavorite)
		c.GET("/favorites", ctl.listFavorites)
	})
}

// POST /favorites marks an image as a favorite; favoriting subscribes
// the caller to the contributor's join notifications.
func (ctl *FavoriteController) addFavorite(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}

	var request packets.AddFavoriteRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	if _, err := ctl.store.GetEntryImageByID(request.ImageID); err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "image not found"}
	}

	if err := ctl.store.AddFavorite(profile.ID, request.ImageID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not add favorite"}
	}
	return gin.H{"message": "favorite added"}, nil
}

// DELETE /favorites/:image_id
func (ctl *FavoriteController) removeFavorite(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}

	imageID, err := strconv.Atoi(ctx.Param("image_id"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "invalid image id"}
	}

	if err := ctl.store.RemoveFavorite(profile.ID, imageID); err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not remove favorite"}
	}
	return gin.H{"message": "favorite removed"}, nil
}

// GET /favorites
func (ctl *FavoriteController) listFavorites(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}

	favorites, err := ctl.store.ListFavorites(profile.ID)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not list favorites"}
	}

	out := make([]packets.EntryImageResponse, 0, len(favorites))
	for _, image := range favorites {
		out = append(out, imageResponse(image))
	}
	return out, nil
}
