// Package api
package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/types"
)

const (
	ErrInternal      = "Internal server error"
	ErrBadRequest    = "Bad request"
	ErrRoadmap       = "Failed to fetch roadmap progress"
	ErrArchivedBurns = "Failed to fetch archived burns"
)

// ErrorResponse is the body of every non-2xx response. Details carries the
// underlying error outside production.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func (s *Server) errorResponse(c echo.Context, status int, category string, err error) error {
	resp := ErrorResponse{Error: category}
	if err != nil && !s.isProduction {
		resp.Details = err.Error()
	}
	return c.JSON(status, resp)
}

// serviceError converts a failed aggregation into the error envelope.
func (s *Server) serviceError(c echo.Context, lgr *zap.Logger, err error) error {
	category := ErrInternal
	var sErr *types.ServiceError
	if errors.As(err, &sErr) {
		category = sErr.Category
	}
	lgr.Error(category, zap.Error(err))
	return s.errorResponse(c, http.StatusInternalServerError, category, err)
}

// httpErrorHandler renders echo's own errors (404, 405, recovered panics) in the same envelope.
func (s *Server) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status := http.StatusInternalServerError
	category := ErrInternal
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		category = http.StatusText(he.Code)
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("unhandled error", zap.String("path", c.Request().URL.Path), zap.Error(err))
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = s.errorResponse(c, status, category, err)
}
