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

// Package solana reads token balances and transaction history from a Solana
// JSON-RPC node.
package solana

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/metrics"
	"github.com/sobatoken/burn-backend/types"
	"github.com/sobatoken/burn-backend/utils"
)

const (
	MethodGetTokenAccountsByOwner = "GetTokenAccountsByOwner"
	MethodGetSignaturesForAddress = "GetSignaturesForAddress"
	MethodGetTransaction          = "GetTransaction"
)

var maxSupportedTxVersion uint64 = 0

type ClientConfig struct {
	RPC         RPCClient
	TxCacheSize int
	Metrics     *metrics.Provider
	Logger      *zap.Logger
}

type Client struct {
	rpc     RPCClient
	txs     *txCache
	metrics *metrics.Provider
	logger  *zap.Logger
}

func NewClient(cfg ClientConfig) (*Client, error) {
	if cfg.RPC == nil {
		return nil, errors.New("missing rpc client")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Client{
		rpc:     cfg.RPC,
		txs:     newTxCache(cfg.TxCacheSize),
		metrics: cfg.Metrics,
		logger:  cfg.Logger.With(zap.String("client", types.SourceSolanaRPC)),
	}, nil
}

type parsedTokenAccount struct {
	Program string `json:"program"`
	Parsed  struct {
		Type string `json:"type"`
		Info struct {
			Mint        string `json:"mint"`
			Owner       string `json:"owner"`
			TokenAmount struct {
				Amount         string   `json:"amount"`
				Decimals       int      `json:"decimals"`
				UIAmount       *float64 `json:"uiAmount"`
				UIAmountString string   `json:"uiAmountString"`
			} `json:"tokenAmount"`
		} `json:"info"`
	} `json:"parsed"`
}

// GetTokenAccountBalance returns the human readable balance owner holds of mint,
// or "0" when owner has no token account for that mint.
func (c *Client) GetTokenAccountBalance(ctx context.Context, owner, mint string) (string, error) {
	lgr := c.logger.With(zap.String("method", MethodGetTokenAccountsByOwner), zap.String("owner", owner), zap.String("mint", mint))
	ownerPk, err := utils.ValidateAccount(owner)
	if err != nil {
		return "", types.NewUpstreamError(types.SourceSolanaRPC, MethodGetTokenAccountsByOwner, err)
	}

	programID := solana.TokenProgramID
	start := time.Now()
	res, err := c.rpc.GetTokenAccountsByOwner(ctx, ownerPk,
		&rpc.GetTokenAccountsConfig{ProgramId: &programID},
		&rpc.GetTokenAccountsOpts{
			Commitment: rpc.CommitmentConfirmed,
			Encoding:   solana.EncodingJSONParsed,
		},
	)
	c.metrics.RecordUpstreamCall(types.SourceSolanaRPC, MethodGetTokenAccountsByOwner, err, time.Since(start))
	if err != nil {
		lgr.Error("cannot get token accounts", zap.Error(err))
		return "", types.NewUpstreamError(types.SourceSolanaRPC, MethodGetTokenAccountsByOwner, err)
	}
	if res == nil {
		lgr.Warn("empty token accounts result")
		return "0", nil
	}
	lgr.Debug("found token accounts", zap.Int("count", len(res.Value)))

	for _, acc := range res.Value {
		if acc == nil || acc.Account.Data == nil {
			continue
		}
		raw := acc.Account.Data.GetRawJSON()
		if len(raw) == 0 {
			continue
		}
		var parsed parsedTokenAccount
		if err := json.Unmarshal(raw, &parsed); err != nil {
			lgr.Debug("skip unparsable token account", zap.String("account", acc.Pubkey.String()), zap.Error(err))
			continue
		}
		if parsed.Parsed.Info.Mint != mint {
			continue
		}
		amount := parsed.Parsed.Info.TokenAmount
		balance := "0"
		switch {
		case amount.UIAmountString != "":
			balance = amount.UIAmountString
		case amount.UIAmount != nil:
			balance = utils.FloatToAmount(*amount.UIAmount)
		}
		lgr.Info("token balance fetched", zap.String("balance", balance))
		return balance, nil
	}

	lgr.Warn("no token account found for mint")
	return "0", nil
}

// GetRecentSignatures returns up to limit signatures involving address, newest first.
func (c *Client) GetRecentSignatures(ctx context.Context, address string, limit int) ([]*types.SignatureRecord, error) {
	lgr := c.logger.With(zap.String("method", MethodGetSignaturesForAddress), zap.String("address", address))
	pk, err := utils.ValidateAccount(address)
	if err != nil {
		return nil, types.NewUpstreamError(types.SourceSolanaRPC, MethodGetSignaturesForAddress, err)
	}

	start := time.Now()
	sigs, err := c.rpc.GetSignaturesForAddress(ctx, pk, &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: rpc.CommitmentConfirmed,
	})
	c.metrics.RecordUpstreamCall(types.SourceSolanaRPC, MethodGetSignaturesForAddress, err, time.Since(start))
	if err != nil {
		lgr.Error("cannot get signatures", zap.Error(err))
		return nil, types.NewUpstreamError(types.SourceSolanaRPC, MethodGetSignaturesForAddress, err)
	}

	records := make([]*types.SignatureRecord, 0, len(sigs))
	for _, sig := range sigs {
		if sig == nil {
			continue
		}
		record := &types.SignatureRecord{
			Signature: sig.Signature.String(),
			Slot:      sig.Slot,
		}
		if sig.BlockTime != nil {
			t := sig.BlockTime.Time().UTC()
			record.BlockTime = &t
		}
		records = append(records, record)
	}
	lgr.Debug("fetched signatures", zap.Int("count", len(records)))
	return records, nil
}

// GetTransactionDetail returns nil without error when the node no longer has the transaction.
func (c *Client) GetTransactionDetail(ctx context.Context, signature string) (*types.TransactionDetail, error) {
	if detail, ok := c.txs.Get(signature); ok {
		return detail, nil
	}
	lgr := c.logger.With(zap.String("method", MethodGetTransaction), zap.String("signature", signature))
	sig, err := solana.SignatureFromBase58(signature)
	if err != nil {
		return nil, types.NewUpstreamError(types.SourceSolanaRPC, MethodGetTransaction, err)
	}

	start := time.Now()
	res, err := c.rpc.GetTransaction(ctx, sig, &rpc.GetTransactionOpts{
		Encoding:                       solana.EncodingBase64,
		Commitment:                     rpc.CommitmentConfirmed,
		MaxSupportedTransactionVersion: &maxSupportedTxVersion,
	})
	if errors.Is(err, rpc.ErrNotFound) {
		c.metrics.RecordUpstreamCall(types.SourceSolanaRPC, MethodGetTransaction, nil, time.Since(start))
		lgr.Debug("transaction not retained by node")
		return nil, nil
	}
	c.metrics.RecordUpstreamCall(types.SourceSolanaRPC, MethodGetTransaction, err, time.Since(start))
	if err != nil {
		lgr.Error("cannot get transaction", zap.Error(err))
		return nil, types.NewUpstreamError(types.SourceSolanaRPC, MethodGetTransaction, err)
	}
	if res == nil {
		return nil, nil
	}

	detail := &types.TransactionDetail{
		Signature: signature,
		Slot:      res.Slot,
	}
	if res.BlockTime != nil {
		t := res.BlockTime.Time().UTC()
		detail.BlockTime = &t
	}
	if res.Meta != nil {
		detail.PreBalances = res.Meta.PreBalances
		detail.PostBalances = res.Meta.PostBalances
	}
	c.txs.Add(detail)
	return detail, nil
}
