package external

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/metrics"
	"github.com/sobatoken/burn-backend/types"
	"github.com/sobatoken/burn-backend/utils"
)

const (
	MethodTokenMeta     = "token/meta"
	MethodAccountTokens = "account/tokens"

	apiKeyHeader = "token"
)

type SolscanConfig struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
	Metrics    *metrics.Provider
	Logger     *zap.Logger
}

// Solscan talks to the Solscan public REST API.
type Solscan struct {
	baseURL string
	apiKey  string
	client  *http.Client
	metrics *metrics.Provider
	logger  *zap.Logger
}

func NewSolscan(cfg SolscanConfig) *Solscan {
	if cfg.HTTPClient == nil {
		var netTransport = &http.Transport{
			Dial: (&net.Dialer{
				Timeout: 5 * time.Second,
			}).Dial,
			TLSHandshakeTimeout: 5 * time.Second,
		}
		cfg.HTTPClient = &http.Client{
			Timeout:   time.Second * 10,
			Transport: netTransport,
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Solscan{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		client:  cfg.HTTPClient,
		metrics: cfg.Metrics,
		logger:  cfg.Logger.With(zap.String("client", types.SourceSolscan)),
	}
}

// flexNumber accepts both 123.4 and "123.4".
type flexNumber string

func (n *flexNumber) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*n = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = flexNumber(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*n = flexNumber(num.String())
	return nil
}

func (n flexNumber) String() string {
	if n == "" {
		return "0"
	}
	return utils.StrToDecimal(string(n)).String()
}

func (n flexNumber) Float64() float64 {
	f, _ := utils.StrToDecimal(string(n)).Float64()
	return f
}

func (n flexNumber) Int64() int64 {
	return utils.StrToDecimal(string(n)).IntPart()
}

// solscanStatus is present on error bodies and on wrapped success bodies.
type solscanStatus struct {
	Success *bool           `json:"success"`
	Errors  json.RawMessage `json:"errors"`
}

// checkBody rejects a null body and an explicit success:false envelope.
func checkBody(body []byte) error {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return errors.New("empty response body")
	}
	if trimmed[0] != '{' {
		return nil
	}
	var status solscanStatus
	if err := json.Unmarshal(trimmed, &status); err != nil {
		return err
	}
	if status.Success != nil && !*status.Success {
		return fmt.Errorf("request rejected: %s", string(status.Errors))
	}
	return nil
}

type tokenMetaResponse struct {
	Supply      flexNumber `json:"supply"`
	TotalSupply flexNumber `json:"totalSupply"`
	Holder      flexNumber `json:"holder"`
	MarketCap   flexNumber `json:"marketCap"`
	Price       flexNumber `json:"price"`
	Volume24h   flexNumber `json:"volume24h"`
}

// GetTokenMetadata returns supply, holder count and market data for mint.
func (s *Solscan) GetTokenMetadata(ctx context.Context, mint string) (*types.TokenMetadata, error) {
	q := url.Values{}
	q.Set("tokenAddress", mint)
	body, err := s.get(ctx, MethodTokenMeta, q)
	if err != nil {
		return nil, err
	}

	var meta tokenMetaResponse
	if err := checkBody(body); err != nil {
		s.logger.Warn("token meta rejected", zap.String("mint", mint), zap.Error(err))
		return nil, types.NewUpstreamError(types.SourceSolscan, MethodTokenMeta, err)
	}
	if err := json.Unmarshal(body, &meta); err != nil {
		s.logger.Warn("malformed token meta", zap.String("mint", mint), zap.Error(err))
		return nil, types.NewUpstreamError(types.SourceSolscan, MethodTokenMeta, err)
	}
	supply := meta.TotalSupply
	if supply == "" {
		supply = meta.Supply
	}

	return &types.TokenMetadata{
		TotalSupply: supply.String(),
		HolderCount: meta.Holder.Int64(),
		MarketCap:   meta.MarketCap.Float64(),
		Price:       meta.Price.Float64(),
		Volume24h:   meta.Volume24h.Float64(),
	}, nil
}

type accountTokenResponse struct {
	TokenAccount string `json:"tokenAccount"`
	TokenAddress string `json:"tokenAddress"`
	TokenSymbol  string `json:"tokenSymbol"`
	TokenName    string `json:"tokenName"`
	TokenAmount  struct {
		Amount         flexNumber `json:"amount"`
		Decimals       int64      `json:"decimals"`
		UIAmount       flexNumber `json:"uiAmount"`
		UIAmountString string     `json:"uiAmountString"`
	} `json:"tokenAmount"`
}

// GetAccountTokens lists the token accounts held by account.
func (s *Solscan) GetAccountTokens(ctx context.Context, account string) ([]*types.AccountToken, error) {
	q := url.Values{}
	q.Set("account", account)
	body, err := s.get(ctx, MethodAccountTokens, q)
	if err != nil {
		return nil, err
	}

	if err := checkBody(body); err != nil {
		s.logger.Warn("account tokens rejected", zap.String("account", account), zap.Error(err))
		return nil, types.NewUpstreamError(types.SourceSolscan, MethodAccountTokens, err)
	}

	var rows []accountTokenResponse
	if err := json.Unmarshal(body, &rows); err != nil {
		// newer deployments wrap the listing
		var wrapped struct {
			Data []accountTokenResponse `json:"data"`
		}
		if wErr := json.Unmarshal(body, &wrapped); wErr != nil {
			s.logger.Warn("malformed account tokens", zap.String("account", account), zap.Error(err))
			return nil, types.NewUpstreamError(types.SourceSolscan, MethodAccountTokens, err)
		}
		rows = wrapped.Data
	}

	tokens := make([]*types.AccountToken, 0, len(rows))
	for _, r := range rows {
		uiAmount := r.TokenAmount.UIAmount.Float64()
		if r.TokenAmount.UIAmountString != "" {
			uiAmount = utils.StrToDecimal(r.TokenAmount.UIAmountString).InexactFloat64()
		}
		tokens = append(tokens, &types.AccountToken{
			TokenAccount:  r.TokenAccount,
			TokenAddress:  r.TokenAddress,
			TokenSymbol:   r.TokenSymbol,
			TokenName:     r.TokenName,
			TokenDecimals: r.TokenAmount.Decimals,
			Amount:        r.TokenAmount.Amount.String(),
			UIAmount:      uiAmount,
		})
	}
	return tokens, nil
}

func (s *Solscan) get(ctx context.Context, method string, q url.Values) (body []byte, err error) {
	lgr := s.logger.With(zap.String("method", method))
	start := time.Now()
	defer func() {
		s.metrics.RecordUpstreamCall(types.SourceSolscan, method, err, time.Since(start))
	}()

	endpoint := fmt.Sprintf("%s/%s?%s", s.baseURL, method, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, types.NewUpstreamError(types.SourceSolscan, method, err)
	}
	req.Header.Set(apiKeyHeader, s.apiKey)
	req.Header.Set("Accept", "application/json")

	response, err := s.client.Do(req)
	if err != nil {
		lgr.Error("request failed", zap.Error(err))
		return nil, types.NewUpstreamError(types.SourceSolscan, method, err)
	}
	defer response.Body.Close()

	body, err = ioutil.ReadAll(response.Body)
	if err != nil {
		return nil, types.NewUpstreamError(types.SourceSolscan, method, err)
	}
	if response.StatusCode < 200 || response.StatusCode > 299 {
		lgr.Warn("unexpected status", zap.Int("status", response.StatusCode))
		return nil, types.NewUpstreamError(types.SourceSolscan, method,
			fmt.Errorf("unexpected status %d", response.StatusCode))
	}
	lgr.Debug("solscan response", zap.Int("bytes", len(body)))
	return body, nil
}
