package ceremony

import (
	"context"
	"fmt"

	"github.com/shardwallet/shardwallet/proto/mpc"
)

// DeleteWallet concurrently invokes DeleteWallet on every participant
// (spec.md section 4.1.2). Idempotent at the participant layer; calling
// it twice for the same wallet id is not an error.
func DeleteWallet(ctx context.Context, participants *Participants, walletID int32) error {
	return fanOut(ctx, participants.All(), func(ctx context.Context, c mpc.ParticipantClient, i int) error {
		if _, err := c.DeleteWallet(ctx, &mpc.DeleteWalletMessage{WalletId: walletID}); err != nil {
			return fmt.Errorf("participant %d: %w", i, err)
		}
		return nil
	})
}
