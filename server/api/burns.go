// Package api
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo"
	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/types"
)

const (
	maxArchiveLimit = 500

	headerTotalCount = "X-Total-Count"
)

func (s *Server) BurnStats(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "BurnStats"))
	ctx, cancel := s.requestContext(c.Request().Context())
	defer cancel()

	stats, err := s.service.BurnStats(ctx)
	if err != nil {
		return s.serviceError(c, lgr, err)
	}
	return c.JSON(http.StatusOK, stats)
}

func (s *Server) BurnHistory(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "BurnHistory"))
	ctx, cancel := s.requestContext(c.Request().Context())
	defer cancel()

	history, err := s.service.BurnHistory(ctx)
	if err != nil {
		return s.serviceError(c, lgr, err)
	}
	if history == nil {
		history = []*types.BurnHistoryEntry{}
	}
	return c.JSON(http.StatusOK, history)
}

func (s *Server) BurnWalletTokens(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "BurnWalletTokens"))
	ctx, cancel := s.requestContext(c.Request().Context())
	defer cancel()

	tokens, err := s.service.BurnWalletTokens(ctx)
	if err != nil {
		return s.serviceError(c, lgr, err)
	}
	if tokens == nil {
		tokens = []*types.AccountToken{}
	}
	return c.JSON(http.StatusOK, tokens)
}

// BurnArchive lists burns stored by previous BurnStats refreshes. The number of
// stored burns is returned in X-Total-Count.
// Query params: ?limit=100
func (s *Server) BurnArchive(c echo.Context) error {
	lgr := s.logger.With(zap.String("method", "BurnArchive"))
	if s.dbClient == nil {
		return s.errorResponse(c, http.StatusServiceUnavailable, ErrArchivedBurns, nil)
	}

	var limit int64
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.ParseInt(v, 10, 64)
		if err != nil || l <= 0 {
			return s.errorResponse(c, http.StatusBadRequest, ErrBadRequest, err)
		}
		limit = l
	}
	if limit > maxArchiveLimit {
		limit = maxArchiveLimit
	}

	ctx, cancel := s.requestContext(c.Request().Context())
	defer cancel()
	burns, err := s.dbClient.Burns(ctx, limit)
	if err != nil {
		lgr.Error("cannot read archived burns", zap.Error(err))
		return s.errorResponse(c, http.StatusInternalServerError, ErrArchivedBurns, err)
	}
	total, err := s.dbClient.BurnsCount(ctx)
	if err != nil {
		lgr.Error("cannot count archived burns", zap.Error(err))
		return s.errorResponse(c, http.StatusInternalServerError, ErrArchivedBurns, err)
	}
	if burns == nil {
		burns = []*types.BurnRecord{}
	}
	c.Response().Header().Set(headerTotalCount, strconv.FormatInt(total, 10))
	return c.JSON(http.StatusOK, burns)
}
