// Package api
package api

import (
	"github.com/labstack/echo"
)

// RestServer define all API expose
type RestServer interface {
	// General
	Health(c echo.Context) error
	RoadmapProgress(c echo.Context) error

	// Token
	Tokenomics(c echo.Context) error

	// Burns
	BurnStats(c echo.Context) error
	BurnHistory(c echo.Context) error
	BurnWalletTokens(c echo.Context) error
	BurnArchive(c echo.Context) error
}
