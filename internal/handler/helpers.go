package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"warungpos/internal/apierror"
	"warungpos/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps a service error onto the canonical error envelope.
func respondError(c *gin.Context, err error) {
	status := apierror.StatusOf(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		// Never leak internals; the cause is in the logs.
		msg = "internal server error"
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, apierror.New(msg))
}

// bindJSON binds and validates the request body; on failure it writes the
// field-level validation envelope and returns false.
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make(map[string]string, len(verrs))
			for _, fe := range verrs {
				fields[fe.Field()] = fe.Tag()
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.NewValidation(fields))
			return false
		}
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("malformed request body"))
		return false
	}
	return true
}

// paramID parses a numeric path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("invalid "+name))
		return 0, false
	}
	return id, true
}

// dateRange parses the common start_date/end_date query filter. Both default
// to today; end before start is rejected.
func dateRange(c *gin.Context) (start, end time.Time, search string, ok bool) {
	var q dto.DateRangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("invalid query parameters"))
		return start, end, "", false
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start, end = today, today

	var err error
	if q.StartDate != "" {
		start, err = time.ParseInLocation("2006-01-02", q.StartDate, time.Local)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("start_date must be YYYY-MM-DD"))
			return start, end, "", false
		}
	}
	if q.EndDate != "" {
		end, err = time.ParseInLocation("2006-01-02", q.EndDate, time.Local)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("end_date must be YYYY-MM-DD"))
			return start, end, "", false
		}
	}
	if end.Before(start) {
		c.AbortWithStatusJSON(http.StatusBadRequest, apierror.New("end_date is before start_date"))
		return start, end, "", false
	}
	return start, end, q.Search, true
}
