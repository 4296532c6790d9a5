package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"bibiartisan/internal/config"
	"bibiartisan/internal/util"
)

func main() {
	subject := flag.String("subject", "ops", "who the token is issued to")
	ttl := flag.Duration("ttl", 0, "token lifetime (default ACCESS_TOKEN_EXPIRE_MINUTES)")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if len(cfg.Auth.SecretKey) < 32 {
		log.Fatal("SECRET_KEY must be set and at least 32 characters")
	}
	if !cfg.Auth.DiagnosticsEnabled {
		log.Println("Warning: DIAGNOSTICS_ENABLED is false; /debug is not served")
	}

	lifetime := *ttl
	if lifetime <= 0 {
		lifetime = time.Duration(cfg.Auth.TokenExpiryMinutes) * time.Minute
	}

	token, err := util.GenerateToken(cfg.Auth.SecretKey, *subject, []string{util.ScopeDiagnostics}, lifetime)
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	fmt.Println(token)
}
