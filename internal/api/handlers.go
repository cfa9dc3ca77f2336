package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/runoshun/twgate/internal/domain"
	"github.com/runoshun/twgate/internal/usecase"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleUnsupportedMethod(c *gin.Context) {
	c.JSON(http.StatusBadRequest, errorResponse{
		Message: fmt.Sprintf("Can't handle request: %s", c.Request.Method),
	})
}

// handleTasks lists tasks by filter with optional paging.
// Query parameters: filter, uuids (for filter=some), page.
func (s *Server) handleTasks(c *gin.Context) {
	page, pageSet := c.GetQuery("page")
	out, err := s.list.Execute(c.Request.Context(), usecase.ListTasksInput{
		Filter:  c.Query("filter"),
		UUIDs:   c.Query("uuids"),
		Page:    page,
		PageSet: pageSet,
	})
	if err != nil {
		status, msg := classify(err)
		if status >= http.StatusInternalServerError {
			s.logger.Error("list tasks", "error", err)
		}
		c.JSON(status, errorResponse{Message: msg})
		return
	}
	c.JSON(http.StatusOK, out.Tasks)
}

// classify maps an error to a status code and client message.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnknownFilter):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrMissingUUIDs):
		return http.StatusBadRequest,
			`No tasks could be read. Add them to the query parameters in a field called uuids as a comma-separated list, e.g. ?filter=some&uuids=<uuid>,<uuid>`
	case errors.Is(err, domain.ErrInvalidUUID):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidPage):
		return http.StatusBadRequest,
			err.Error() + ". Use page=0 for the first page of tasks"
	}
	return http.StatusBadGateway, err.Error()
}
