package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	ucCatalog "github.com/BruksfildServices01/salon-scheduler/internal/usecase/catalog"
)

type StylistHandler struct {
	stylists *ucCatalog.Stylists
	log      *zap.Logger
}

func NewStylistHandler(stylists *ucCatalog.Stylists, log *zap.Logger) *StylistHandler {
	return &StylistHandler{stylists: stylists, log: log}
}

type CreateStylistRequest struct {
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Salary float64 `json:"salary"`
	Image  string  `json:"image"`
}

type UpdateStylistRequest struct {
	Name   *string  `json:"name"`
	Email  *string  `json:"email"`
	Salary *float64 `json:"salary"`
	Image  *string  `json:"image"`
}

func (h *StylistHandler) List(c *gin.Context) {
	list, err := h.stylists.List(c.Request.Context())
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *StylistHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	st, err := h.stylists.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, st)
}

func (h *StylistHandler) Create(c *gin.Context) {
	var req CreateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	st, err := h.stylists.Create(c.Request.Context(), middleware.ActorFrom(c), ucCatalog.CreateStylistInput{
		Name:   req.Name,
		Email:  req.Email,
		Salary: req.Salary,
		Image:  req.Image,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, st)
}

func (h *StylistHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	st, err := h.stylists.Update(c.Request.Context(), middleware.ActorFrom(c), id, ucCatalog.UpdateStylistInput{
		Name:   req.Name,
		Email:  req.Email,
		Salary: req.Salary,
		Image:  req.Image,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, st)
}

func (h *StylistHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.stylists.Delete(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Done(c, "stylist deleted")
}

func (h *StylistHandler) SetImage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	file, ok := formImage(c)
	if !ok {
		return
	}
	defer file.Close()

	st, err := h.stylists.SetImage(c.Request.Context(), middleware.ActorFrom(c), id, file)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, st)
}
