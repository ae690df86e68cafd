package utils

import "github.com/gin-gonic/gin"

// CurrentUserID reads the authenticated user id set by the auth middlewares.
func CurrentUserID(c *gin.Context) uint {
	return c.GetUint("userId")
}
