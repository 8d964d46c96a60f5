// Package api
package api

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/db"
	"github.com/sobatoken/burn-backend/metrics"
	"github.com/sobatoken/burn-backend/types"
)

// TokenService is the aggregation layer the handlers read from.
type TokenService interface {
	Tokenomics(ctx context.Context) (*types.TokenomicsView, error)
	BurnStats(ctx context.Context) (*types.BurnStats, error)
	BurnHistory(ctx context.Context) ([]*types.BurnHistoryEntry, error)
	BurnWalletTokens(ctx context.Context) ([]*types.AccountToken, error)
}

type Server struct {
	isProduction bool
	rpcURL       string
	tokenAddress string
	timeout      time.Duration

	service  TokenService
	dbClient db.IBurns
	metrics  *metrics.Provider

	now    func() time.Time
	logger *zap.Logger
}

func NewServer() *Server {
	return &Server{
		timeout: 10 * time.Second,
		now:     time.Now,
		logger:  zap.NewNop(),
	}
}

func (s *Server) SetLogger(logger *zap.Logger) *Server {
	s.logger = logger
	return s
}

func (s *Server) SetService(service TokenService) *Server {
	s.service = service
	return s
}

func (s *Server) SetStorage(db db.IBurns) *Server {
	s.dbClient = db
	return s
}

func (s *Server) SetMetrics(metrics *metrics.Provider) *Server {
	s.metrics = metrics
	return s
}

// SetChainInfo sets what /health reports.
func (s *Server) SetChainInfo(rpcURL, tokenAddress string) *Server {
	s.rpcURL = rpcURL
	s.tokenAddress = tokenAddress
	return s
}

// SetProduction hides error details from responses when enabled.
func (s *Server) SetProduction(isProduction bool) *Server {
	s.isProduction = isProduction
	return s
}

// SetTimeout bounds the upstream work done for a single request.
func (s *Server) SetTimeout(timeout time.Duration) *Server {
	if timeout > 0 {
		s.timeout = timeout
	}
	return s
}

func (s *Server) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(parent, s.timeout)
}
