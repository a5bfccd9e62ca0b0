package chain

import "context"

// Provider submits signed transaction bytes to a chain node and returns
// the transaction hash; it does not wait for confirmation. It is named
// only at its interface in spec.md
// section 1 ("the chain RPC client that broadcasts signed
// transactions... out of scope"); SPEC_FULL.md keeps it as a narrow
// seam so the orchestrator's sign-tx handler has something concrete to
// call after committing the DB transaction (spec.md section 4.1.3 step
// 7).
type Provider interface {
	Submit(ctx context.Context, rawTx []byte) (txHash [32]byte, err error)
}
