package store

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// KeyJWTSecret holds the token signing secret generated on first use.
const KeyJWTSecret = "rewear-jwt-secret"

// JWTSecret returns the stored signing secret, generating and storing one if
// none exists yet.
func (s *Store) JWTSecret(ctx context.Context) (string, error) {
	if stored, ok := s.kv.ReadBlob(ctx, KeyJWTSecret); ok && len(stored) > 0 {
		return string(stored), nil
	}

	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	secret := hex.EncodeToString(buf)

	if err := s.kv.WriteBlob(ctx, KeyJWTSecret, []byte(secret)); err != nil {
		return "", fmt.Errorf("storing jwt secret: %w", err)
	}
	s.env.log.Info("generated jwt secret")
	return secret, nil
}
