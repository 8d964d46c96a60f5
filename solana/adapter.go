// Package solana
package solana

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// RPCClient is the subset of the Solana JSON-RPC API the service reads.
type RPCClient interface {
	GetTokenAccountsByOwner(
		ctx context.Context,
		owner solana.PublicKey,
		conf *rpc.GetTokenAccountsConfig,
		opts *rpc.GetTokenAccountsOpts,
	) (*rpc.GetTokenAccountsResult, error)

	GetSignaturesForAddress(
		ctx context.Context,
		address solana.PublicKey,
		opts *rpc.GetSignaturesForAddressOpts,
	) ([]*rpc.TransactionSignature, error)

	GetTransaction(
		ctx context.Context,
		signature solana.Signature,
		opts *rpc.GetTransactionOpts,
	) (*rpc.GetTransactionResult, error)
}

// rpcAdapter wraps the solana-go client so tests can swap the transport.
type rpcAdapter struct {
	client *rpc.Client
}

// NewRPCClient returns an RPCClient talking to rpcURL. API keys of premium
// providers go into the URL.
func NewRPCClient(rpcURL string) RPCClient {
	return &rpcAdapter{client: rpc.New(rpcURL)}
}

func (a *rpcAdapter) GetTokenAccountsByOwner(
	ctx context.Context,
	owner solana.PublicKey,
	conf *rpc.GetTokenAccountsConfig,
	opts *rpc.GetTokenAccountsOpts,
) (*rpc.GetTokenAccountsResult, error) {
	return a.client.GetTokenAccountsByOwner(ctx, owner, conf, opts)
}

func (a *rpcAdapter) GetSignaturesForAddress(
	ctx context.Context,
	address solana.PublicKey,
	opts *rpc.GetSignaturesForAddressOpts,
) ([]*rpc.TransactionSignature, error) {
	return a.client.GetSignaturesForAddressWithOpts(ctx, address, opts)
}

func (a *rpcAdapter) GetTransaction(
	ctx context.Context,
	signature solana.Signature,
	opts *rpc.GetTransactionOpts,
) (*rpc.GetTransactionResult, error) {
	return a.client.GetTransaction(ctx, signature, opts)
}
