// Package solana
package solana

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sobatoken/burn-backend/metrics"
	"github.com/sobatoken/burn-backend/types"
)

const (
	testMint  = "So11111111111111111111111111111111111111112"
	otherMint = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
	testOwner = "1nc1nerator11111111111111111111111111111111"
)

type mockRPCClient struct {
	mu sync.Mutex

	tokenAccounts *rpc.GetTokenAccountsResult
	signatures    []*rpc.TransactionSignature
	transactions  map[string]*rpc.GetTransactionResult
	err           error

	calls map[string]int
	last  struct {
		conf    *rpc.GetTokenAccountsConfig
		opts    *rpc.GetTokenAccountsOpts
		sigOpts *rpc.GetSignaturesForAddressOpts
	}
}

func (m *mockRPCClient) called(method string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.calls == nil {
		m.calls = make(map[string]int)
	}
	m.calls[method]++
}

func (m *mockRPCClient) count(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func (m *mockRPCClient) GetTokenAccountsByOwner(
	ctx context.Context,
	owner solana.PublicKey,
	conf *rpc.GetTokenAccountsConfig,
	opts *rpc.GetTokenAccountsOpts,
) (*rpc.GetTokenAccountsResult, error) {
	m.called(MethodGetTokenAccountsByOwner)
	m.last.conf, m.last.opts = conf, opts
	if m.err != nil {
		return nil, m.err
	}
	return m.tokenAccounts, nil
}

func (m *mockRPCClient) GetSignaturesForAddress(
	ctx context.Context,
	address solana.PublicKey,
	opts *rpc.GetSignaturesForAddressOpts,
) ([]*rpc.TransactionSignature, error) {
	m.called(MethodGetSignaturesForAddress)
	m.last.sigOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	return m.signatures, nil
}

func (m *mockRPCClient) GetTransaction(
	ctx context.Context,
	signature solana.Signature,
	opts *rpc.GetTransactionOpts,
) (*rpc.GetTransactionResult, error) {
	m.called(MethodGetTransaction)
	if m.err != nil {
		return nil, m.err
	}
	tx, ok := m.transactions[signature.String()]
	if !ok {
		return nil, rpc.ErrNotFound
	}
	return tx, nil
}

func newTestClient(t *testing.T, mock *mockRPCClient, txCacheSize int) *Client {
	t.Helper()
	c, err := NewClient(ClientConfig{
		RPC:         mock,
		TxCacheSize: txCacheSize,
		Metrics:     metrics.New(),
		Logger:      zap.NewNop(),
	})
	require.NoError(t, err)
	return c
}

func tokenAccount(t *testing.T, mint, uiAmountString string) *rpc.TokenAccount {
	t.Helper()
	raw := fmt.Sprintf(`{"program":"spl-token","parsed":{"type":"account","info":{"mint":%q,"owner":%q,"tokenAmount":{"amount":"1","decimals":6,"uiAmount":1,"uiAmountString":%q}}},"space":165}`,
		mint, testOwner, uiAmountString)
	data := new(rpc.DataBytesOrJSON)
	require.NoError(t, data.UnmarshalJSON([]byte(raw)))
	return &rpc.TokenAccount{
		Pubkey:  solana.NewWallet().PublicKey(),
		Account: rpc.Account{Data: data},
	}
}

func testSignature(i int) solana.Signature {
	var sig solana.Signature
	sig[0] = byte(i + 1)
	sig[63] = 0xAB
	return sig
}

func TestGetTokenAccountBalance_MatchingMint(t *testing.T) {
	mock := &mockRPCClient{
		tokenAccounts: &rpc.GetTokenAccountsResult{
			Value: []*rpc.TokenAccount{
				tokenAccount(t, otherMint, "5"),
				tokenAccount(t, testMint, "1234.567"),
			},
		},
	}
	c := newTestClient(t, mock, 0)

	balance, err := c.GetTokenAccountBalance(context.Background(), testOwner, testMint)
	require.NoError(t, err)
	assert.Equal(t, "1234.567", balance)

	require.NotNil(t, mock.last.conf)
	require.NotNil(t, mock.last.conf.ProgramId)
	assert.Equal(t, solana.TokenProgramID, *mock.last.conf.ProgramId)
	assert.Equal(t, solana.EncodingJSONParsed, mock.last.opts.Encoding)
}

func TestGetTokenAccountBalance_NoMatchReturnsZero(t *testing.T) {
	cases := map[string][]*rpc.TokenAccount{
		"NoAccounts":        nil,
		"UnrelatedAccounts": {tokenAccount(t, otherMint, "10"), tokenAccount(t, otherMint, "20")},
		"AccountWithoutData": {
			{Pubkey: solana.NewWallet().PublicKey(), Account: rpc.Account{}},
		},
	}
	for name, accounts := range cases {
		t.Run(name, func(t *testing.T) {
			mock := &mockRPCClient{tokenAccounts: &rpc.GetTokenAccountsResult{Value: accounts}}
			c := newTestClient(t, mock, 0)

			balance, err := c.GetTokenAccountBalance(context.Background(), testOwner, testMint)
			require.NoError(t, err)
			assert.Equal(t, "0", balance)
		})
	}
}

func TestGetTokenAccountBalance_Errors(t *testing.T) {
	t.Run("RPCError", func(t *testing.T) {
		mock := &mockRPCClient{err: errors.New("connection reset")}
		c := newTestClient(t, mock, 0)

		_, err := c.GetTokenAccountBalance(context.Background(), testOwner, testMint)
		var upErr *types.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, types.SourceSolanaRPC, upErr.Source)
		assert.Equal(t, MethodGetTokenAccountsByOwner, upErr.Op)
	})

	t.Run("MalformedOwner", func(t *testing.T) {
		mock := &mockRPCClient{}
		c := newTestClient(t, mock, 0)

		_, err := c.GetTokenAccountBalance(context.Background(), "not-an-address", testMint)
		var upErr *types.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, 0, mock.count(MethodGetTokenAccountsByOwner))
	})
}

func TestGetRecentSignatures(t *testing.T) {
	now := solana.UnixTimeSeconds(time.Now().Unix())
	mock := &mockRPCClient{
		signatures: []*rpc.TransactionSignature{
			{Signature: testSignature(0), Slot: 100, BlockTime: &now},
			{Signature: testSignature(1), Slot: 99},
		},
	}
	c := newTestClient(t, mock, 0)

	records, err := c.GetRecentSignatures(context.Background(), testOwner, 20)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, testSignature(0).String(), records[0].Signature)
	assert.Equal(t, uint64(100), records[0].Slot)
	require.NotNil(t, records[0].BlockTime)
	assert.Equal(t, now.Time().Unix(), records[0].BlockTime.Unix())
	assert.Equal(t, testSignature(1).String(), records[1].Signature)
	assert.Nil(t, records[1].BlockTime)

	require.NotNil(t, mock.last.sigOpts.Limit)
	assert.Equal(t, 20, *mock.last.sigOpts.Limit)
}

func TestGetRecentSignatures_Error(t *testing.T) {
	mock := &mockRPCClient{err: errors.New("429 Too Many Requests")}
	c := newTestClient(t, mock, 0)

	_, err := c.GetRecentSignatures(context.Background(), testOwner, 20)
	var upErr *types.UpstreamError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, MethodGetSignaturesForAddress, upErr.Op)
}

func TestGetTransactionDetail(t *testing.T) {
	blockTime := solana.UnixTimeSeconds(1709251200)
	sig := testSignature(7)
	mock := &mockRPCClient{
		transactions: map[string]*rpc.GetTransactionResult{
			sig.String(): {
				Slot:      42,
				BlockTime: &blockTime,
				Meta: &rpc.TransactionMeta{
					PreBalances:  []uint64{3000, 10},
					PostBalances: []uint64{2000, 10},
				},
			},
		},
	}
	c := newTestClient(t, mock, 8)
	ctx := context.Background()

	detail, err := c.GetTransactionDetail(ctx, sig.String())
	require.NoError(t, err)
	require.NotNil(t, detail)
	assert.Equal(t, uint64(42), detail.Slot)
	assert.Equal(t, []uint64{2000, 10}, detail.PostBalances)
	require.NotNil(t, detail.BlockTime)
	assert.Equal(t, int64(1709251200), detail.BlockTime.Unix())

	// second lookup is served from the tx cache
	again, err := c.GetTransactionDetail(ctx, sig.String())
	require.NoError(t, err)
	assert.Same(t, detail, again)
	assert.Equal(t, 1, mock.count(MethodGetTransaction))
	assert.Equal(t, 1, c.txs.Len())
}

func TestGetTransactionDetail_NotRetained(t *testing.T) {
	mock := &mockRPCClient{transactions: map[string]*rpc.GetTransactionResult{}}
	c := newTestClient(t, mock, 8)

	detail, err := c.GetTransactionDetail(context.Background(), testSignature(3).String())
	require.NoError(t, err)
	assert.Nil(t, detail)
	assert.Equal(t, 0, c.txs.Len())
}

func TestGetTransactionDetail_Errors(t *testing.T) {
	t.Run("RPCError", func(t *testing.T) {
		mock := &mockRPCClient{err: errors.New("node is behind")}
		c := newTestClient(t, mock, 0)

		_, err := c.GetTransactionDetail(context.Background(), testSignature(1).String())
		var upErr *types.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, MethodGetTransaction, upErr.Op)
	})

	t.Run("MalformedSignature", func(t *testing.T) {
		mock := &mockRPCClient{}
		c := newTestClient(t, mock, 0)

		_, err := c.GetTransactionDetail(context.Background(), "0xabc")
		var upErr *types.UpstreamError
		require.True(t, errors.As(err, &upErr))
		assert.Equal(t, 0, mock.count(MethodGetTransaction))
	})
}

func TestNewClient_RequiresRPC(t *testing.T) {
	_, err := NewClient(ClientConfig{})
	assert.Error(t, err)
}
