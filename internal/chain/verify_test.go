package chain

import (
	"crypto/sha256"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v3"
	"github.com/decred/dcrd/dcrec/secp256k1/v3/ecdsa"
	"github.com/stretchr/testify/require"
)

func TestVerifySignatureAcceptsValidSignature(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("a ceremony's unsigned transaction bytes"))
	sig := ecdsa.Sign(priv, digest[:])

	r := sig.R().Bytes()
	s := sig.S().Bytes()

	err = VerifySignature(priv.PubKey().SerializeCompressed(), digest, Signature{R: r[:], S: s[:]})
	require.NoError(t, err)
}

func TestVerifySignatureRejectsWrongKey(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	other, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("some data"))
	sig := ecdsa.Sign(priv, digest[:])
	r := sig.R().Bytes()
	s := sig.S().Bytes()

	err = VerifySignature(other.PubKey().SerializeCompressed(), digest, Signature{R: r[:], S: s[:]})
	require.Error(t, err)
}

func TestVerifySignatureRejectsTamperedDigest(t *testing.T) {
	priv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("original"))
	sig := ecdsa.Sign(priv, digest[:])
	r := sig.R().Bytes()
	s := sig.S().Bytes()

	tamperedDigest := sha256.Sum256([]byte("tampered"))
	err = VerifySignature(priv.PubKey().SerializeCompressed(), tamperedDigest, Signature{R: r[:], S: s[:]})
	require.Error(t, err)
}
