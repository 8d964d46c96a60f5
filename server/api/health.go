// Package api
package api

import (
	"net/http"

	"github.com/labstack/echo"

	"github.com/sobatoken/burn-backend/types"
)

// Health reports static configuration only, it never calls upstream.
func (s *Server) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &types.HealthStatus{
		Status:    "healthy",
		Timestamp: s.now().UTC(),
		Solana: types.SolanaStatus{
			RPC:          s.rpcURL,
			TokenAddress: s.tokenAddress,
		},
	})
}
