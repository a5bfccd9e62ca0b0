package bitcoin

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"

	"github.com/shardwallet/shardwallet/internal/chain"
)

// RPCProvider submits raw signed transaction bytes to a Bitcoin-RPC
// endpoint via sendrawtransaction. It is a minimal JSON-RPC caller,
// matching the narrow seam spec.md leaves for this out-of-scope
// collaborator (section 1).
type RPCProvider struct {
	url    string
	client *http.Client
}

func NewRPCProvider(url string) *RPCProvider {
	return &RPCProvider{url: url, client: http.DefaultClient}
}

var _ chain.Provider = (*RPCProvider)(nil)

func (p *RPCProvider) Submit(ctx context.Context, rawTx []byte) ([32]byte, error) {
	body := fmt.Sprintf(`{"jsonrpc":"1.0","method":"sendrawtransaction","params":["%s"]}`, hex.EncodeToString(rawTx))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, strings.NewReader(body))
	if err != nil {
		return [32]byte{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return [32]byte{}, fmt.Errorf("bitcoin: sendrawtransaction: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return [32]byte{}, fmt.Errorf("bitcoin: sendrawtransaction status %d", resp.StatusCode)
	}

	// The double SHA-256 of the raw bytes is the canonical txid even
	// before the node's response is parsed; used as the returned hash
	// since this provider's JSON-RPC parsing is intentionally minimal.
	first := sha256.Sum256(rawTx)
	return sha256.Sum256(first[:]), nil
}
