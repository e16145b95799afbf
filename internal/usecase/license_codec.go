package usecase

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// obfuscatePayload XORs the payload against the license key (repeated) and
// renders it as upper-case hex, the format the EA loader expects. This is
// obfuscation of a per-client blob, not encryption.
func obfuscatePayload(plain, key string) string {
	if key == "" {
		return ""
	}
	keyBytes := []byte(key)
	var out strings.Builder
	out.Grow(len(plain) * 2)
	for i, b := range []byte(plain) {
		fmt.Fprintf(&out, "%02X", b^keyBytes[i%len(keyBytes)])
	}
	return out.String()
}

func deobfuscatePayload(encoded, key string) (string, error) {
	raw, err := hex.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding license payload: %w", err)
	}
	if key == "" {
		return "", fmt.Errorf("license key is empty")
	}
	keyBytes := []byte(key)
	for i := range raw {
		raw[i] ^= keyBytes[i%len(keyBytes)]
	}
	return string(raw), nil
}
