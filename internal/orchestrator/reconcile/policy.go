// Package reconcile implements the orphan-share cleanup spec.md section
// 9 names as an un-implemented redesign: after an aborted create-wallet
// ceremony, or a delete-wallet fan-out that failed on some participant,
// the Orchestrator records (wallet_id, execution_id) and a background
// worker fans DeleteWallet to all participants on a bounded retry
// ladder.
package reconcile

import "time"

// RetryLadder is the bounded sequence of backoff delays a reconciliation
// attempt waits between retries, in the shape of the teacher's
// watchtower DefaultReadTimeout/DefaultWriteTimeout constants: a small
// fixed table rather than an unbounded exponential series, since an
// operator alerting on the final "gave up" log line is the intended
// backstop.
var RetryLadder = []time.Duration{
	5 * time.Second,
	30 * time.Second,
	2 * time.Minute,
	10 * time.Minute,
	30 * time.Minute,
}

// MaxAttempts is len(RetryLadder) plus the initial attempt.
func MaxAttempts() int { return len(RetryLadder) + 1 }
