package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucUser "github.com/BruksfildServices01/salon-scheduler/internal/usecase/user"
)

type UserHandler struct {
	accounts *ucUser.Accounts
	log      *zap.Logger
}

func NewUserHandler(accounts *ucUser.Accounts, log *zap.Logger) *UserHandler {
	return &UserHandler{accounts: accounts, log: log}
}

type UpdateUserRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Role    *string `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *UserHandler) List(c *gin.Context) {
	list, err := h.accounts.List(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	u, err := h.accounts.Get(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	u, err := h.accounts.Update(c.Request.Context(), middleware.ActorFrom(c), id, ucUser.UpdateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Role:    req.Role,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.accounts.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Done(c, "user deleted")
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	err := h.accounts.ChangePassword(
		c.Request.Context(),
		middleware.ActorFrom(c),
		id,
		req.CurrentPassword,
		req.NewPassword,
	)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Done(c, "password updated")
}

// Avatar takes the multipart "image" field.
func (h *UserHandler) Avatar(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	u, err := h.accounts.SetAvatar(c.Request.Context(), middleware.ActorFrom(c), id, file)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, u)
}
