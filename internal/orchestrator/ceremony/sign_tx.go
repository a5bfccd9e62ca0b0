package ceremony

import (
	"context"
	"fmt"

	"github.com/shardwallet/shardwallet/proto/mpc"
)

// SignTxResult is what the orchestrator keeps from a signing ceremony:
// the first responding participant's (r, s, v) — all responding
// parties compute the same signature (spec.md section 4.1.3).
type SignTxResult struct {
	R, S []byte
	V    uint32
}

// SelectSigners picks the threshold-sized signing coalition out of N
// configured participants. spec.md section 9 flags the original
// implementation's hardcoded [0, 1] coalition as a redesign target:
// "the Orchestrator selects any t live participants... and the state
// machine uses that set verbatim." This always returns the first t
// indices; a production build would health-check first and fall back
// to the next index on a known-down participant.
func SelectSigners(n, threshold int) []int32 {
	out := make([]int32, threshold)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}

// SignTx concurrently invokes SignTx on exactly the chosen signing
// coalition (spec.md section 4.1.3 step 5). If any fail, the caller
// rolls back; otherwise it takes the first response.
func SignTx(ctx context.Context, participants *Participants, signers []int32, txID, walletID int32, chain mpc.Chain, execID [16]byte, data []byte) (*SignTxResult, error) {
	clients := participants.Indices(signers)
	results := make([]*mpc.SignatureMessage, len(clients))

	err := fanOut(ctx, clients, func(ctx context.Context, c mpc.ParticipantClient, i int) error {
		resp, err := c.SignTx(ctx, &mpc.SignMessage{
			TxId:        txID,
			WalletId:    walletID,
			ExecutionId: execID[:],
			Chain:       chain,
			Data:        data,
			Signers:     signers,
		})
		if err != nil {
			return fmt.Errorf("signer %d: %w", signers[i], err)
		}
		results[i] = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	first := results[0]
	return &SignTxResult{R: first.R, S: first.S, V: first.V}, nil
}
