// Package authn implements the orchestrator's user-facing auth: Argon2
// password hashing and JWT bearer tokens. Both are out-of-core glue
// named only at their interface in spec.md (section 1, section 6.4) and
// restored here per SPEC_FULL.md section C, grounded on
// original_source/app/src/auth/password.rs and jwt.rs.
package authn

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// argon2Params mirrors a conservative interactive-login profile; the
// Rust original used argon2's library defaults, which this matches.
var argon2Params = struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}{time: 1, memory: 64 * 1024, threads: 4, keyLen: 32, saltLen: 16}

// HashPassword returns an encoded "argon2id$..."-style string
// containing the salt and derived key, suitable for storing in
// tbl_users.password.
func HashPassword(password string) (string, error) {
	salt := make([]byte, argon2Params.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("authn: generating salt: %w", err)
	}
	hash := argon2.IDKey([]byte(password), salt, argon2Params.time, argon2Params.memory, argon2Params.threads, argon2Params.keyLen)

	return fmt.Sprintf("argon2id$%d$%d$%d$%s$%s",
		argon2Params.time, argon2Params.memory, argon2Params.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// VerifyPassword reports whether password matches the encoded hash
// produced by HashPassword. Comparison is constant-time over the
// derived key bytes.
func VerifyPassword(encoded, password string) bool {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "argon2id" {
		return false
	}
	var timeCost, memCost uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[1], "%d", &timeCost); err != nil {
		return false
	}
	if _, err := fmt.Sscanf(parts[2], "%d", &memCost); err != nil {
		return false
	}
	var threadsInt uint32
	if _, err := fmt.Sscanf(parts[3], "%d", &threadsInt); err != nil {
		return false
	}
	threads = uint8(threadsInt)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false
	}

	got := argon2.IDKey([]byte(password), salt, timeCost, memCost, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1
}
