package config

import (
	"log/slog"
	"os"
)

var JwtKey []byte

// InitAuth loads the signing key for admin session tokens.
func InitAuth() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-only-insecure-secret"
		slog.Warn("JWT_SECRET is not set, using an insecure development key")
	}
	JwtKey = []byte(secret)
}
