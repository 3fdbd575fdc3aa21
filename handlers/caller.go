package handlers

import (
	"github.com/gin-gonic/gin"

	"campuscare/models"
)

// callerFrom assembles the caller identity the auth middleware stored
// on the context. An anonymous request yields a zero Caller.
func callerFrom(c *gin.Context) models.Caller {
	var caller models.Caller
	if v, ok := c.Get("userID"); ok {
		caller.ID, _ = v.(string)
	}
	if v, ok := c.Get("userEmail"); ok {
		caller.Email, _ = v.(string)
	}
	if v, ok := c.Get("isAdmin"); ok {
		caller.IsAdmin, _ = v.(bool)
	}
	return caller
}
