package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe returns the account reloaded by the auth middleware.
func (h *MeHandler) GetMe(c *gin.Context) {
	user := middleware.UserFrom(c)
	if user == nil {
		httperr.Unauthorized(c, "unauthenticated", httperr.MessageFor("unauthenticated"))
		return
	}
	httpresp.OK(c, user)
}
