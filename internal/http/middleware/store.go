package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/numanubhani/adminpanel-integration-se/internal/db"
)

// InjectStore makes the persistence store available to later middleware
// and handlers through the request context.
func InjectStore(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("store", store)
		c.Next()
	}
}

// GetStore retrieves the injected db.Store.
func GetStore(c *gin.Context) (db.Store, bool) {
	v, exists := c.Get("store")
	if !exists {
		return nil, false
	}
	store, ok := v.(db.Store)
	return store, ok
}
