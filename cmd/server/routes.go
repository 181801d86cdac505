package main

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/api"
	adminapi "github.com/numanubhani/adminpanel-integration-se/internal/http/api/admin/endpoints"
	panelapi "github.com/numanubhani/adminpanel-integration-se/internal/http/api/panel/endpoints"
	"github.com/numanubhani/adminpanel-integration-se/internal/http/middleware"
	"github.com/numanubhani/adminpanel-integration-se/internal/notify"
	"github.com/numanubhani/adminpanel-integration-se/internal/scheduler"
	"github.com/numanubhani/adminpanel-integration-se/internal/storage"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, env Environment, store db.Store, fileStorage storage.Storage, publisher notify.Publisher) {
	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
		},
		ExposeHeaders: []string{
			"Content-Length",
		},
		AllowCredentials: false,
	}))

	// JWTMiddleware and RequireAdmin resolve the store from context.
	r.Use(middleware.InjectStore(store))

	generator := scheduler.New(store, nil)

	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api/panel",
		Auth:   false,
	},
		panelapi.AuthPublicModule(env.SecretKey, store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/panel",
		Auth:      true,
		SecretKey: env.SecretKey,
	},
		panelapi.AuthSessionModule(env.SecretKey, store),
		panelapi.ContestModule(store, publisher, nil),
		panelapi.ImageModule(store, fileStorage),
		panelapi.VoteModule(store, nil),
		panelapi.FavoriteModule(store),
	)

	api.MountGroup(r, api.GroupConfig{
		Prefix:     "/api/admin",
		Auth:       true,
		SecretKey:  env.SecretKey,
		Middleware: []gin.HandlerFunc{middleware.RequireAdmin()},
	},
		adminapi.ContestAdminModule(store, generator, publisher),
	)

	// Static content
	if !env.UseSpaces {
		r.Static("/uploads", "./uploads")
	}
}
