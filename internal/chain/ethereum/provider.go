package ethereum

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"

	"github.com/shardwallet/shardwallet/internal/chain"
)

// RPCProvider submits raw signed transaction bytes to an Ethereum-RPC
// endpoint via eth_sendRawTransaction.
type RPCProvider struct {
	client *rpc.Client
}

func DialProvider(ctx context.Context, url string) (*RPCProvider, error) {
	c, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("ethereum: dialing provider: %w", err)
	}
	return &RPCProvider{client: c}, nil
}

var _ chain.Provider = (*RPCProvider)(nil)

func (p *RPCProvider) Submit(ctx context.Context, rawTx []byte) ([32]byte, error) {
	var hash string
	if err := p.client.CallContext(ctx, &hash, "eth_sendRawTransaction", hexutil.Encode(rawTx)); err != nil {
		return [32]byte{}, fmt.Errorf("ethereum: eth_sendRawTransaction: %w", err)
	}
	b, err := hexutil.Decode(hash)
	if err != nil || len(b) != 32 {
		return [32]byte{}, fmt.Errorf("ethereum: unexpected tx hash %q", hash)
	}
	var out [32]byte
	copy(out[:], b)
	return out, nil
}
