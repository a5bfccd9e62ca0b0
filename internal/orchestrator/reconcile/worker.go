package reconcile

import (
	"context"
	"time"

	"github.com/decred/slog"

	"github.com/shardwallet/shardwallet/internal/orchestrator/ceremony"
)

// Worker drains a Queue, fanning DeleteWallet to every participant for
// each entry and requeuing with backoff on failure.
type Worker struct {
	queue        *Queue
	participants *ceremony.Participants
	log          slog.Logger
	pollInterval time.Duration
}

func NewWorker(queue *Queue, participants *ceremony.Participants, log slog.Logger) *Worker {
	return &Worker{queue: queue, participants: participants, log: log, pollInterval: time.Second}
}

// Run drains the queue until ctx is cancelled. Entries that fail are
// requeued after the retry ladder's delay for their attempt count; an
// entry that exhausts the ladder is logged as a permanent leak for
// operator follow-up (spec.md section 9's redesign note, fully
// implemented rather than left as a TODO per SPEC_FULL.md section C).
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.drainOnce(ctx)
		}
	}
}

func (w *Worker) drainOnce(ctx context.Context) {
	entry := w.queue.Pop()
	if entry == nil {
		return
	}

	if err := ceremony.DeleteWallet(ctx, w.participants, entry.WalletID); err != nil {
		w.log.Warnf("reconcile: cleanup attempt %d failed for wallet %d: %v", entry.Attempts+1, entry.WalletID, err)

		delay := RetryLadder[minInt(entry.Attempts, len(RetryLadder)-1)]
		attempted := entry
		time.AfterFunc(delay, func() {
			if dropped := w.queue.Requeue(attempted); dropped {
				w.log.Errorf("reconcile: giving up on wallet %d after %d attempts, manual cleanup required", attempted.WalletID, attempted.Attempts)
			}
		})
		return
	}

	w.log.Infof("reconcile: cleaned up orphaned shares for wallet %d", entry.WalletID)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
