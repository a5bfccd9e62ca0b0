package api

import (
	"encoding/hex"
	"strings"
)

// decodeHexAddress parses a 0x-prefixed 20-byte address as sent by
// SignTxRequest.To.
func decodeHexAddress(s string) ([]byte, error) {
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

func hexEncode(b []byte) string {
	return "0x" + hex.EncodeToString(b)
}
