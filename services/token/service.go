// Package token aggregates chain and explorer data into the burn and
// tokenomics views served by the API.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sobatoken/burn-backend/cache"
	"github.com/sobatoken/burn-backend/metrics"
	"github.com/sobatoken/burn-backend/types"
	"github.com/sobatoken/burn-backend/utils"
)

const (
	HistoryLimit = 20

	// concurrent getTransaction calls per BurnStats miss
	txFetchConcurrency = 8
)

const (
	ErrTokenomics       = "Failed to fetch tokenomics data"
	ErrBurnStats        = "Failed to fetch burn statistics"
	ErrBurnHistory      = "Failed to fetch burn history"
	ErrBurnWalletTokens = "Failed to fetch burn wallet tokens"
)

type ChainClient interface {
	GetTokenAccountBalance(ctx context.Context, owner, mint string) (string, error)
	GetRecentSignatures(ctx context.Context, address string, limit int) ([]*types.SignatureRecord, error)
	GetTransactionDetail(ctx context.Context, signature string) (*types.TransactionDetail, error)
}

type ExplorerClient interface {
	GetTokenMetadata(ctx context.Context, mint string) (*types.TokenMetadata, error)
	GetAccountTokens(ctx context.Context, account string) ([]*types.AccountToken, error)
}

// BurnArchive keeps every burn transaction the service has observed.
type BurnArchive interface {
	UpsertBurns(ctx context.Context, burns []*types.BurnRecord) error
}

type Config struct {
	Chain    ChainClient
	Explorer ExplorerClient
	Cache    cache.Client
	Archive  BurnArchive
	Metrics  *metrics.Provider
	Logger   *zap.Logger

	TokenAddress string
	BurnWallet   string
	CacheTTL     time.Duration
}

type Service struct {
	chain    ChainClient
	explorer ExplorerClient
	cache    cache.Client
	archive  BurnArchive
	metrics  *metrics.Provider
	logger   *zap.Logger

	mint       string
	burnWallet string
	ttl        time.Duration

	now func() time.Time
}

func New(cfg Config) (*Service, error) {
	if cfg.Chain == nil || cfg.Explorer == nil || cfg.Cache == nil {
		return nil, errors.New("token service requires chain, explorer and cache clients")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Service{
		chain:      cfg.Chain,
		explorer:   cfg.Explorer,
		cache:      cfg.Cache,
		archive:    cfg.Archive,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger.With(zap.String("service", "token")),
		mint:       cfg.TokenAddress,
		burnWallet: cfg.BurnWallet,
		ttl:        cfg.CacheTTL,
		now:        time.Now,
	}, nil
}

// BurnStats returns the burned balance and the most recent burn wallet transactions.
func (s *Service) BurnStats(ctx context.Context) (*types.BurnStats, error) {
	lgr := s.logger.With(zap.String("op", "BurnStats"), zap.String("burnWallet", s.burnWallet))
	var stats types.BurnStats
	if s.getCached(ctx, cache.KeyBurnStats, &stats) {
		return &stats, nil
	}

	burned, err := s.chain.GetTokenAccountBalance(ctx, s.burnWallet, s.mint)
	if err != nil {
		lgr.Error("cannot get burn wallet balance", zap.Error(err))
		return nil, &types.ServiceError{Op: "BurnStats", Category: ErrBurnStats, Err: err}
	}

	history, err := s.burnHistory(ctx)
	if err != nil {
		lgr.Error("cannot build burn history", zap.Error(err))
		return nil, &types.ServiceError{Op: "BurnStats", Category: ErrBurnStats, Err: err}
	}

	stats = types.BurnStats{
		BurnedTokens: burned,
		History:      history,
	}
	s.setCached(ctx, cache.KeyBurnStats, &stats)
	s.archiveBurns(ctx, history)
	return &stats, nil
}

// BurnHistory returns the history part of BurnStats.
func (s *Service) BurnHistory(ctx context.Context) ([]*types.BurnHistoryEntry, error) {
	stats, err := s.BurnStats(ctx)
	if err != nil {
		var sErr *types.ServiceError
		if errors.As(err, &sErr) {
			return nil, &types.ServiceError{Op: "BurnHistory", Category: ErrBurnHistory, Err: sErr.Err}
		}
		return nil, &types.ServiceError{Op: "BurnHistory", Category: ErrBurnHistory, Err: err}
	}
	return stats.History, nil
}

func (s *Service) burnHistory(ctx context.Context) ([]*types.BurnHistoryEntry, error) {
	sigs, err := s.chain.GetRecentSignatures(ctx, s.burnWallet, HistoryLimit)
	if err != nil {
		return nil, err
	}

	history := make([]*types.BurnHistoryEntry, len(sigs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(txFetchConcurrency)
	for i, sig := range sigs {
		i, sig := i, sig
		g.Go(func() error {
			detail, err := s.chain.GetTransactionDetail(gCtx, sig.Signature)
			if err != nil {
				return err
			}
			history[i] = s.historyEntry(sig, detail)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return history, nil
}

func (s *Service) historyEntry(sig *types.SignatureRecord, detail *types.TransactionDetail) *types.BurnHistoryEntry {
	entry := &types.BurnHistoryEntry{Signature: sig.Signature}
	switch {
	case sig.BlockTime != nil:
		entry.Timestamp = sig.BlockTime.UTC()
	case detail != nil && detail.BlockTime != nil:
		entry.Timestamp = detail.BlockTime.UTC()
	default:
		entry.Timestamp = s.now().UTC()
	}
	if detail != nil && len(detail.PostBalances) > 0 {
		entry.Amount = detail.PostBalances[0]
	}
	return entry
}

func (s *Service) archiveBurns(ctx context.Context, history []*types.BurnHistoryEntry) {
	if s.archive == nil || len(history) == 0 {
		return
	}
	now := s.now().Unix()
	records := make([]*types.BurnRecord, 0, len(history))
	for _, h := range history {
		records = append(records, &types.BurnRecord{
			TxHash:     h.Signature,
			BurnAmount: h.Amount,
			Timestamp:  h.Timestamp,
			UpdatedAt:  now,
		})
	}
	if err := s.archive.UpsertBurns(ctx, records); err != nil {
		s.logger.Warn("cannot archive burns", zap.Int("count", len(records)), zap.Error(err))
	}
}

// Tokenomics returns supply figures for the token. Circulating supply is the
// explorer's total supply minus the burn wallet balance.
func (s *Service) Tokenomics(ctx context.Context) (*types.TokenomicsView, error) {
	lgr := s.logger.With(zap.String("op", "Tokenomics"), zap.String("mint", s.mint))
	var view types.TokenomicsView
	if s.getCached(ctx, cache.KeyTokenomics, &view) {
		return &view, nil
	}

	burned, err := s.chain.GetTokenAccountBalance(ctx, s.burnWallet, s.mint)
	if err != nil {
		lgr.Error("cannot get burn wallet balance", zap.Error(err))
		return nil, &types.ServiceError{Op: "Tokenomics", Category: ErrTokenomics, Err: err}
	}
	meta, err := s.explorer.GetTokenMetadata(ctx, s.mint)
	if err != nil {
		lgr.Error("cannot get token metadata", zap.Error(err))
		return nil, &types.ServiceError{Op: "Tokenomics", Category: ErrTokenomics, Err: err}
	}

	view = types.TokenomicsView{
		TotalSupply:       meta.TotalSupply,
		CirculatingSupply: utils.SubtractAmounts(meta.TotalSupply, burned),
		BurnedTokens:      burned,
		Holders:           meta.HolderCount,
		MarketCap:         meta.MarketCap,
		Price:             meta.Price,
		Volume24h:         meta.Volume24h,
	}
	s.setCached(ctx, cache.KeyTokenomics, &view)
	return &view, nil
}

// BurnWalletTokens returns the explorer's token listing for the burn wallet.
func (s *Service) BurnWalletTokens(ctx context.Context) ([]*types.AccountToken, error) {
	var tokens []*types.AccountToken
	if s.getCached(ctx, cache.KeyBurnWalletTokens, &tokens) {
		return tokens, nil
	}

	tokens, err := s.explorer.GetAccountTokens(ctx, s.burnWallet)
	if err != nil {
		s.logger.Error("cannot get burn wallet tokens", zap.String("burnWallet", s.burnWallet), zap.Error(err))
		return nil, &types.ServiceError{Op: "BurnWalletTokens", Category: ErrBurnWalletTokens, Err: err}
	}
	s.setCached(ctx, cache.KeyBurnWalletTokens, tokens)
	return tokens, nil
}

// getCached reports whether key held a value that could be decoded into dst.
// Cache backend failures count as a miss.
func (s *Service) getCached(ctx context.Context, key string, dst interface{}) bool {
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		s.metrics.RecordCacheLookup(key, false)
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		s.logger.Warn("cannot decode cached value", zap.String("key", key), zap.Error(err))
		s.metrics.RecordCacheLookup(key, false)
		return false
	}
	s.metrics.RecordCacheLookup(key, true)
	return true
}

func (s *Service) setCached(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("cannot encode value for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}
