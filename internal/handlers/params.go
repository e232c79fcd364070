package handlers

import (
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// paramID reads a positive numeric path parameter. On failure the 400 has
// already been written.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_id", httperr.MessageFor("invalid_id"))
		return 0, false
	}
	return uint(id), true
}

// queryUint returns the first of names present in the query string.
// Clients send both snake_case and the older camelCase spelling.
func queryUint(c *gin.Context, names ...string) (uint, bool) {
	for _, name := range names {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_id", httperr.MessageFor("invalid_id"))
			return 0, false
		}
		return uint(v), true
	}
	return 0, true
}

func queryBool(c *gin.Context, name string) (*bool, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_request", httperr.MessageFor("invalid_request"))
		return nil, false
	}
	return &v, true
}

// period reads month and year. Missing values default to the current salon
// month.
func period(c *gin.Context, loc *time.Location) (int, int, bool) {
	now := time.Now().In(loc)

	month, err := strconv.Atoi(c.DefaultQuery("month", strconv.Itoa(int(now.Month()))))
	if err != nil {
		httperr.BadRequest(c, "invalid_month", httperr.MessageFor("invalid_month"))
		return 0, 0, false
	}
	year, err := strconv.Atoi(c.DefaultQuery("year", strconv.Itoa(now.Year())))
	if err != nil {
		httperr.BadRequest(c, "invalid_year", httperr.MessageFor("invalid_year"))
		return 0, 0, false
	}
	return month, year, true
}

func parseSlotTime(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := timezone.ParseLocalTime(value, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}
	return &t, nil
}

func invalidRequest(c *gin.Context) {
	httperr.BadRequest(c, "invalid_request", httperr.MessageFor("invalid_request"))
}

// formImage opens the multipart "image" field.
func formImage(c *gin.Context) (multipart.File, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		httperr.BadRequest(c, "invalid_image", httperr.MessageFor("invalid_image"))
		return nil, false
	}

	file, err := header.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_image", httperr.MessageFor("invalid_image"))
		return nil, false
	}
	return file, true
}
