package ceremony

import (
	"context"
	"fmt"

	"github.com/shardwallet/shardwallet/proto/mpc"
)

// CreateWalletResult carries what every participant agreed on: the
// shared public key, taken from the first response since all
// participants that succeed compute the same one (spec.md section
// 4.1.3's "all responding parties compute the same signature" applies
// equally to the keygen's combined public key).
type CreateWalletResult struct {
	PublicKey []byte
}

// CreateWallet concurrently invokes NewWallet on every configured
// participant with the same execution id (spec.md section 4.1.1 steps
// 4-5). The caller is responsible for the surrounding DB transaction;
// this function only reports success or the first failure.
func CreateWallet(ctx context.Context, participants *Participants, walletID int32, chain mpc.Chain, execID [16]byte) (*CreateWalletResult, error) {
	clients := participants.All()
	results := make([]*mpc.KeyShareInfo, len(clients))

	err := fanOut(ctx, clients, func(ctx context.Context, c mpc.ParticipantClient, i int) error {
		resp, err := c.NewWallet(ctx, &mpc.CreateWalletMessage{
			WalletId:    walletID,
			Chain:       chain,
			ExecutionId: execID[:],
		})
		if err != nil {
			return fmt.Errorf("participant %d: %w", i, err)
		}
		results[i] = resp
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &CreateWalletResult{PublicKey: results[0].PublicKey}, nil
}
