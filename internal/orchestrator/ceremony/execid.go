// Package ceremony drives the participant RPC fan-out for create-wallet,
// delete-wallet, and sign-tx (spec.md sections 4.1.1-4.1.3), and mints
// the CeremonyExecutionId that binds every message in one ceremony run.
package ceremony

import "github.com/google/uuid"

// NewExecutionID mints a fresh 128-bit CeremonyExecutionId (spec.md
// section 3). Collision probability is the standard UUIDv4 birthday
// bound; spec.md section 8 property 1 treats this as sufficient.
func NewExecutionID() [16]byte {
	return uuid.New()
}
