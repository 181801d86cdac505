package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/numanubhani/adminpanel-integration-se/internal/model"
)

// RequireAdmin resolves the caller's admin capability once, up front,
// and aborts with 403 when absent. Handlers behind it read the admin
// row from context instead of re-deriving it per call.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := GetCurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		store, ok := GetStore(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "store not configured"})
			return
		}

		admin, err := store.GetAdminByUserID(user.ID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Set("currentAdmin", admin)
		c.Next()
	}
}

// GetCurrentAdmin retrieves the *model.Admin set by RequireAdmin.
func GetCurrentAdmin(c *gin.Context) (*model.Admin, bool) {
	a, exists := c.Get("currentAdmin")
	if !exists {
		return nil, false
	}
	admin, ok := a.(*model.Admin)
	return admin, ok
}
