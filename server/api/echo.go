/*
 *  Copyright 2018 KardiaChain
 *  This file is part of the go-kardia library.
 *
 *  The go-kardia library is free software: you can redistribute it and/or modify
 *  it under the terms of the GNU Lesser General Public License as published by
 *  the Free Software Foundation, either version 3 of the License, or
 *  (at your option) any later version.
 *
 *  The go-kardia library is distributed in the hope that it will be useful,
 *  but WITHOUT ANY WARRANTY; without even the implied warranty of
 *  MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
 *  GNU Lesser General Public License for more details.
 *
 *  You should have received a copy of the GNU Lesser General Public License
 *  along with the go-kardia library. If not, see <http://www.gnu.org/licenses/>.
 */

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo"
	"github.com/labstack/echo/middleware"
	"go.uber.org/zap"
)

type restDefinition struct {
	method      string
	path        string
	fn          func(c echo.Context) error
	middlewares []echo.MiddlewareFunc
}

func bind(gr *echo.Group, srv RestServer) {
	apis := []restDefinition{
		{
			method:      echo.GET,
			path:        "/health",
			fn:          srv.Health,
			middlewares: nil,
		},
		{
			method: echo.GET,
			path:   "/tokenomics",
			fn:     srv.Tokenomics,
		},
		{
			method: echo.GET,
			path:   "/roadmap/progress",
			fn:     srv.RoadmapProgress,
		},
	}
	bindBurnAPIs(gr, srv)
	for _, api := range apis {
		gr.Add(api.method, api.path, api.fn, api.middlewares...)
	}
}

func bindBurnAPIs(gr *echo.Group, srv RestServer) {
	apis := []restDefinition{
		{
			method: echo.GET,
			path:   "/burns",
			fn:     srv.BurnStats,
		},
		{
			method: echo.GET,
			path:   "/burns/history",
			fn:     srv.BurnHistory,
		},
		{
			method: echo.GET,
			path:   "/burns/wallet",
			fn:     srv.BurnWalletTokens,
		},
		{
			method: echo.GET,
			// Query params: ?limit=100
			path:        "/burns/archive",
			fn:          srv.BurnArchive,
			middlewares: nil,
		},
	}
	for _, api := range apis {
		gr.Add(api.method, api.path, api.fn, api.middlewares...)
	}
}

// NewEcho builds the HTTP router: the REST API under /api and Prometheus under /metrics.
func NewEcho(srv *Server) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = srv.httpErrorHandler

	e.Use(requestLogger(srv.logger))
	e.Use(requestMetrics(srv))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{echo.GET, echo.HEAD, echo.OPTIONS},
		ExposeHeaders: []string{headerTotalCount},
	}))

	e.GET("/metrics", echo.WrapHandler(srv.metrics.Handler()))
	apiGr := e.Group("/api")
	bind(apiGr, srv)
	return e
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, e *echo.Echo, addr string, logger *zap.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("Start API server", zap.String("addr", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	logger.Info("Shutting down API server")
	return e.Shutdown(shutdownCtx)
}
