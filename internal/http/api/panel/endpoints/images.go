package endpoints

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api/panel/packets"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/middleware"
	"github.com/numanubhani/adminpanel-integration-se/internal/model"
	"github.com/numanubhani/adminpanel-integration-se/internal/storage"
)

type ImageController struct {
	store   db.Store
	storage storage.Storage
}

func ImageModule(store db.Store, fileStorage storage.Storage) api.Module {
	ctl := &ImageController{store: store, storage: fileStorage}
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/images", ctl.uploadImage)
		c.GET("/images", ctl.listImages)
	})
}

// POST /images accepts a multipart upload with a "file" part and a
// "category" field. Only contributors upload entry images.
func (ctl *ImageController) uploadImage(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}
	if profile.Role != model.RoleContributor {
		return nil, &api.APIError{Code: http.StatusForbidden, Message: "only contributors can upload entry images"}
	}

	category := strings.TrimSpace(ctx.PostForm("category"))
	if category == "" {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "category is required"}
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: "file is required"}
	}

	url, err := ctl.storage.SaveFile(fileHeader, fileHeader.Filename)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to store image"}
	}

	image, err := ctl.store.CreateEntryImage(profile.ID, category, url)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to save image"}
	}

	return imageResponse(image), nil
}

// GET /images lists the caller's uploads, optionally filtered by
// ?category=.
func (ctl *ImageController) listImages(ctx *gin.Context, user *model.User) (any, *api.APIError) {
	profile, ok := middleware.GetCurrentProfile(ctx)
	if !ok {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: "profile not found"}
	}

	var category *string
	if q := ctx.Query("category"); q != "" {
		category = &q
	}

	images, err := ctl.store.ListEntryImages(profile.ID, category)
	if err != nil {
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "failed to list images"}
	}

	out := make([]packets.EntryImageResponse, 0, len(images))
	for _, image := range images {
		out = append(out, imageResponse(image))
	}
	return out, nil
}

func imageResponse(i model.EntryImage) packets.EntryImageResponse {
	return packets.EntryImageResponse{
		ID:        i.ID,
		Category:  i.Category,
		URL:       i.URL,
		CreatedAt: i.CreatedAt.Format(time.RFC3339),
	}
}
