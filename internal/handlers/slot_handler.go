package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/realtime"
	ucSlot "github.com/BruksfildServices01/salon-scheduler/internal/usecase/slot"
)

type SlotUseCases struct {
	Create  *ucSlot.CreateSlot
	Update  *ucSlot.UpdateSlot
	Delete  *ucSlot.DeleteSlot
	Queries *ucSlot.Queries
}

type SlotHandler struct {
	uc  SlotUseCases
	hub *realtime.Hub
	loc *time.Location
	log *zap.Logger
}

func NewSlotHandler(uc SlotUseCases, hub *realtime.Hub, loc *time.Location, log *zap.Logger) *SlotHandler {
	return &SlotHandler{uc: uc, hub: hub, loc: loc, log: log}
}

// Slot times are wall-clock strings in the salon timezone, "2006-01-02 15:04"
// or RFC 3339.
type CreateSlotRequest struct {
	StylistID uint   `json:"stylist_id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available *bool  `json:"available"`
}

type UpdateSlotRequest struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available *bool  `json:"available"`
}

// --------- Public ---------

func (h *SlotHandler) Available(c *gin.Context) {
	stylistID, ok := queryUint(c, "stylist_id", "stylistId")
	if !ok {
		return
	}

	list, err := h.uc.Queries.Available(c.Request.Context(), stylistID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *SlotHandler) Booked(c *gin.Context) {
	stylistID, ok := queryUint(c, "stylist_id", "stylistId")
	if !ok {
		return
	}

	list, err := h.uc.Queries.Booked(c.Request.Context(), stylistID, c.Query("date"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

// WS streams slot changes. Without stylist_id the client receives events
// for every stylist.
func (h *SlotHandler) WS(c *gin.Context) {
	stylistID, ok := queryUint(c, "stylist_id", "stylistId")
	if !ok {
		return
	}
	h.hub.ServeWS(c.Writer, c.Request, stylistID)
}

// --------- Admin ---------

func (h *SlotHandler) List(c *gin.Context) {
	stylistID, ok := queryUint(c, "stylist_id", "stylistId")
	if !ok {
		return
	}
	available, ok := queryBool(c, "available")
	if !ok {
		return
	}

	list, err := h.uc.Queries.List(c.Request.Context(), ucSlot.ListSlotsInput{
		StylistID: stylistID,
		Date:      c.Query("date"),
		Available: available,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}

func (h *SlotHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	s, err := h.uc.Queries.Get(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *SlotHandler) Create(c *gin.Context) {
	var req CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	start, err := parseSlotTime(req.StartTime, h.loc)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	end, err := parseSlotTime(req.EndTime, h.loc)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	if start == nil || end == nil {
		httperr.BadRequest(c, "missing_fields", httperr.MessageFor("missing_fields"))
		return
	}

	s, err := h.uc.Create.Execute(c.Request.Context(), middleware.ActorFrom(c), ucSlot.CreateSlotInput{
		StylistID: req.StylistID,
		StartTime: *start,
		EndTime:   *end,
		Available: req.Available,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Created(c, s)
}

func (h *SlotHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	start, err := parseSlotTime(req.StartTime, h.loc)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	end, err := parseSlotTime(req.EndTime, h.loc)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	s, err := h.uc.Update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, ucSlot.UpdateSlotInput{
		StartTime: start,
		EndTime:   end,
		Available: req.Available,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.OK(c, s)
}

func (h *SlotHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.uc.Delete.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.Done(c, "slot deleted")
}
