// Package secretstore persists a participant's KeyShare blobs in
// HashiCorp Vault's KV engine, keyed by wallet id (spec.md section 6.5:
// "Participant secret store: key-value under path secret/{wallet_id}").
package secretstore

import (
	"context"
	"encoding/json"
	"fmt"

	vaultapi "github.com/hashicorp/vault/api"

	"github.com/shardwallet/shardwallet/internal/tss"
)

// Store wraps a Vault client scoped to one mount point.
type Store struct {
	client *vaultapi.Client
	mount  string
}

// New builds a Store from a Vault address and token. mount is the KV
// engine's mount path (commonly "secret").
func New(addr, token, mount string) (*Store, error) {
	cfg := vaultapi.DefaultConfig()
	cfg.Address = addr
	client, err := vaultapi.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("secretstore: building vault client: %w", err)
	}
	client.SetToken(token)
	return &Store{client: client, mount: mount}, nil
}

func (s *Store) path(walletID string) string {
	return fmt.Sprintf("%s/data/%s", s.mount, walletID)
}

// Put serializes share and writes it to secret/{walletID}. Overwrites
// any prior version, matching spec.md's "exactly one share per
// (wallet_id, participant_index)" invariant at this participant.
func (s *Store) Put(ctx context.Context, walletID string, share *tss.KeyShare) error {
	blob, err := json.Marshal(share)
	if err != nil {
		return fmt.Errorf("secretstore: marshaling key share: %w", err)
	}
	_, err = s.client.Logical().WriteWithContext(ctx, s.path(walletID), map[string]interface{}{
		"data": map[string]interface{}{
			"key_share": string(blob),
		},
	})
	if err != nil {
		return fmt.Errorf("secretstore: writing %s: %w", walletID, err)
	}
	return nil
}

// Get loads and deserializes the share stored under walletID. Returns
// ErrNotFound if no such entry exists.
func (s *Store) Get(ctx context.Context, walletID string) (*tss.KeyShare, error) {
	secret, err := s.client.Logical().ReadWithContext(ctx, s.path(walletID))
	if err != nil {
		return nil, fmt.Errorf("secretstore: reading %s: %w", walletID, err)
	}
	if secret == nil || secret.Data == nil {
		return nil, ErrNotFound
	}
	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, ErrNotFound
	}
	blobStr, ok := data["key_share"].(string)
	if !ok {
		return nil, ErrNotFound
	}
	var share tss.KeyShare
	if err := json.Unmarshal([]byte(blobStr), &share); err != nil {
		return nil, fmt.Errorf("secretstore: decoding key share for %s: %w", walletID, err)
	}
	return &share, nil
}

// Delete removes every version of the entry under walletID. Idempotent:
// deleting an absent key is not an error, matching spec.md 4.2's
// DeleteWallet semantics.
func (s *Store) Delete(ctx context.Context, walletID string) error {
	_, err := s.client.Logical().DeleteWithContext(ctx, fmt.Sprintf("%s/metadata/%s", s.mount, walletID))
	if err != nil {
		return fmt.Errorf("secretstore: deleting %s: %w", walletID, err)
	}
	return nil
}

// ErrNotFound is returned by Get when no key share is stored under the
// requested wallet id.
var ErrNotFound = fmt.Errorf("secretstore: key share not found")
