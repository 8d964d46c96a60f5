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

// Package cfg
package cfg

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sobatoken/burn-backend/types"
	"github.com/sobatoken/burn-backend/utils"
)

const (
	ModeDev        = "dev"
	ModeProduction = "prod"
)

const (
	DefaultPort           = "3001"
	DefaultSolanaRPC      = "https://api.mainnet-beta.solana.com"
	DefaultSolscanAPI     = "https://public-api.solscan.io"
	DefaultStorageDB      = "soba"
	DefaultCacheEngine    = "memory"
	DefaultCacheTTL       = 300 * time.Second
	DefaultAPITimeout     = 10 * time.Second
	DefaultTxCacheEntries = 512
)

type Config struct {
	ServerMode string
	Port       string
	LogLevel   string
	SentryDSN  string

	DefaultAPITimeout time.Duration

	StorageURI     string
	StorageDB      string
	StorageIsFlush bool

	SolanaRPCURL      string
	SolanaTxCacheSize int
	SolscanAPIURL     string
	SolscanAPIKey     string

	TokenAddress string
	BurnWallet   string

	CacheEngine   string
	CacheURL      string
	CacheDB       int
	CachePassword string
	CacheTTL      time.Duration
	CacheIsFlush  bool
}

// IsProduction reports whether error details must be hidden from clients.
func (c Config) IsProduction() bool {
	return c.ServerMode == ModeProduction
}

// ListenAddr returns the echo listen address for Port.
func (c Config) ListenAddr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// New reads the service configuration from the environment. Every missing or
// malformed required value is collected into a single *types.ConfigurationError.
func New() (Config, error) {
	cErr := &types.ConfigurationError{}

	required := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			cErr.Missing = append(cErr.Missing, key)
		}
		return v
	}

	cacheTTL := optionalInt(cErr, "CACHE_TTL", int(DefaultCacheTTL/time.Second), 1)
	txCacheSize := optionalInt(cErr, "SOLANA_TX_CACHE_SIZE", DefaultTxCacheEntries, 0)
	cacheDB := optionalInt(cErr, "CACHE_DB", 0, 0)

	apiTimeout := DefaultAPITimeout
	if v := strings.TrimSpace(os.Getenv("DEFAULT_API_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			cErr.Invalid = append(cErr.Invalid, "DEFAULT_API_TIMEOUT")
		} else {
			apiTimeout = d
		}
	}

	storageIsFlush := optionalBool(cErr, "STORAGE_IS_FLUSH")
	cacheIsFlush := optionalBool(cErr, "CACHE_IS_FLUSH")

	cfg := Config{
		ServerMode:        withDefault(os.Getenv("SERVER_MODE"), ModeDev),
		Port:              withDefault(os.Getenv("PORT"), DefaultPort),
		LogLevel:          os.Getenv("LOG_LEVEL"),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		DefaultAPITimeout: apiTimeout,

		StorageURI:     required("MONGODB_URI"),
		StorageDB:      withDefault(os.Getenv("STORAGE_DB"), DefaultStorageDB),
		StorageIsFlush: storageIsFlush,

		SolanaRPCURL:      withDefault(os.Getenv("SOLANA_RPC_URL"), DefaultSolanaRPC),
		SolanaTxCacheSize: txCacheSize,
		SolscanAPIURL:     strings.TrimRight(withDefault(os.Getenv("SOLSCAN_API_URL"), DefaultSolscanAPI), "/"),
		SolscanAPIKey:     required("SOLSCAN_API_KEY"),

		TokenAddress: required("SOBA_TOKEN_ADDRESS"),
		BurnWallet:   required("SOBA_BURN_WALLET"),

		CacheEngine:   withDefault(os.Getenv("CACHE_ENGINE"), DefaultCacheEngine),
		CacheURL:      os.Getenv("CACHE_URI"),
		CacheDB:       cacheDB,
		CachePassword: os.Getenv("CACHE_PASSWORD"),
		CacheTTL:      time.Duration(cacheTTL) * time.Second,
		CacheIsFlush:  cacheIsFlush,
	}

	if cfg.TokenAddress != "" {
		if _, err := utils.ValidateAccount(cfg.TokenAddress); err != nil {
			cErr.Invalid = append(cErr.Invalid, "SOBA_TOKEN_ADDRESS")
		}
	}
	if cfg.BurnWallet != "" {
		if _, err := utils.ValidateAccount(cfg.BurnWallet); err != nil {
			cErr.Invalid = append(cErr.Invalid, "SOBA_BURN_WALLET")
		}
	}
	switch cfg.ServerMode {
	case ModeDev, ModeProduction:
	default:
		cErr.Invalid = append(cErr.Invalid, "SERVER_MODE")
	}
	switch cfg.CacheEngine {
	case "memory":
	case "redis":
		if cfg.CacheURL == "" {
			cErr.Missing = append(cErr.Missing, "CACHE_URI")
		}
	default:
		cErr.Invalid = append(cErr.Invalid, "CACHE_ENGINE")
	}

	if !cErr.Empty() {
		return Config{}, cErr
	}
	return cfg, nil
}

// optionalInt returns fallback when key is unset. A set value that is not an
// integer >= least is reported as invalid.
func optionalInt(cErr *types.ConfigurationError, key string, fallback, least int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < least {
		cErr.Invalid = append(cErr.Invalid, key)
		return fallback
	}
	return n
}

// optionalBool is false when key is unset.
func optionalBool(cErr *types.ConfigurationError, key string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		cErr.Invalid = append(cErr.Invalid, key)
	}
	return b
}

func withDefault(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}
