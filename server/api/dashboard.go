// Package api
package api

import (
	"net/http"

	"github.com/labstack/echo"
	"go.uber.org/zap"
)

func (s *Server) Tokenomics(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "Tokenomics"))
	ctx, cancel := s.requestContext(c.Request().Context())
	defer cancel()

	view, err := s.service.Tokenomics(ctx)
	if err != nil {
		return s.serviceError(c, lgr, err)
	}
	return c.JSON(http.StatusOK, view)
}
