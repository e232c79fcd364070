package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/identity"
	"github.com/BruksfildServices01/salon-scheduler/internal/export"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/report"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create   *ucAppointment.CreateAppointment
	cancel   *ucAppointment.CancelAppointment
	confirm  *ucAppointment.ConfirmAppointment
	complete *ucAppointment.CompleteAppointment
	list     *ucAppointment.ListAppointments
	get      *ucAppointment.GetAppointment
	update   *ucAppointment.UpdateAppointment
	remove   *ucAppointment.DeleteAppointment

	reports *report.Reports
	loc     *time.Location
	log     *zap.Logger
}

type AppointmentUseCases struct {
	Create   *ucAppointment.CreateAppointment
	Cancel   *ucAppointment.CancelAppointment
	Confirm  *ucAppointment.ConfirmAppointment
	Complete *ucAppointment.CompleteAppointment
	List     *ucAppointment.ListAppointments
	Get      *ucAppointment.GetAppointment
	Update   *ucAppointment.UpdateAppointment
	Delete   *ucAppointment.DeleteAppointment
}

func NewAppointmentHandler(
	uc AppointmentUseCases,
	reports *report.Reports,
	loc *time.Location,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:   uc.Create,
		cancel:   uc.Cancel,
		confirm:  uc.Confirm,
		complete: uc.Complete,
		list:     uc.List,
		get:      uc.Get,
		update:   uc.Update,
		remove:   uc.Delete,
		reports:  reports,
		loc:      loc,
		log:      log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ServiceID    uint   `json:"service_id"`
	StylistID    uint   `json:"stylist_id"`
	SlotID       uint   `json:"slot_id"`
	SelectedTime string `json:"selected_time"`
	Notes        string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
	SlotID    *uint   `json:"slot_id"`
	ServiceID *uint   `json:"service_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.CreateAppointmentInput{
		ServiceID:    req.ServiceID,
		StylistID:    req.StylistID,
		SlotID:       req.SlotID,
		SelectedTime: req.SelectedTime,
		Notes:        req.Notes,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.log.Info("appointment booked",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("slot_id", ap.SlotID),
		zap.Uint("user_id", ap.UserID),
	)
	httpresp.Created(c, ap)
}

// ======================================================
// READ
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	userID, ok := queryUint(c, "user_id", "userId")
	if !ok {
		return
	}

	list, err := h.list.Execute(c.Request.Context(), middleware.ActorFrom(c), ucAppointment.ListAppointmentsInput{
		Status: c.Query("status"),
		UserID: userID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, list)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Receipt(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := h.get.Execute(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	pdf, err := export.Receipt(ap, h.loc)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="appointment-%d.pdf"`, ap.ID))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ======================================================
// STATE CHANGES
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	h.transition(c, h.cancel.Execute, "appointment cancelled")
}

func (h *AppointmentHandler) Confirm(c *gin.Context) {
	h.transition(c, h.confirm.Execute, "appointment confirmed")
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	h.transition(c, h.complete.Execute, "appointment completed")
}

type transitionFunc func(ctx context.Context, actor identity.Actor, id uint) (*models.Appointment, error)

func (h *AppointmentHandler) transition(c *gin.Context, run transitionFunc, msg string) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	ap, err := run(c.Request.Context(), middleware.ActorFrom(c), id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	h.log.Info(msg,
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("actor_id", c.GetUint(middleware.ContextUserID)),
	)
	httpresp.OK(c, ap)
}

// ======================================================
// ADMIN UPDATE / DELETE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), middleware.ActorFrom(c), id, ucAppointment.UpdateAppointmentInput{
		Status:    req.Status,
		Notes:     req.Notes,
		SlotID:    req.SlotID,
		ServiceID: req.ServiceID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.remove.Execute(c.Request.Context(), middleware.ActorFrom(c), id); err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Done(c, "appointment deleted")
}

// ======================================================
// STATS
// ======================================================

func (h *AppointmentHandler) MonthlyIncome(c *gin.Context) {
	month, year, ok := period(c, h.loc)
	if !ok {
		return
	}

	out, err := h.reports.MonthlyIncome(c.Request.Context(), month, year)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, out)
}

func (h *AppointmentHandler) MonthlyData(c *gin.Context) {
	month, year, ok := period(c, h.loc)
	if !ok {
		return
	}

	days, err := h.reports.MonthlyData(c.Request.Context(), month, year)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, days)
}

func (h *AppointmentHandler) MonthlyExport(c *gin.Context) {
	month, year, ok := period(c, h.loc)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	summary, err := h.reports.MonthlyIncome(ctx, month, year)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	days, err := h.reports.MonthlyData(ctx, month, year)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	file, err := export.MonthlyWorkbook(summary, days)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="income-%04d-%02d.xlsx"`, year, month))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file)
}
