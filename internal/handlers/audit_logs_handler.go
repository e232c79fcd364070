package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
)

type AuditLogsHandler struct {
	logs *audit.Logger
	log  *zap.Logger
}

func NewAuditLogsHandler(logs *audit.Logger, log *zap.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{logs: logs, log: log}
}

// List filters by actor_id, entity and entity_id, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	q := audit.Query{Entity: c.Query("entity")}

	actorID, ok := queryUint(c, "actor_id")
	if !ok {
		return
	}
	if actorID > 0 {
		q.ActorID = &actorID
	}

	entityID, ok := queryUint(c, "entity_id")
	if !ok {
		return
	}
	if entityID > 0 {
		q.EntityID = &entityID
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			invalidRequest(c)
			return
		}
		q.Limit = limit
	}

	list, err := h.logs.List(c.Request.Context(), q)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}
	httpresp.List(c, list)
}
