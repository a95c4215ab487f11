// Command issue-token mints a client token for the syllable API.
//
// Usage:
//
//	issue-token --name <client> [--client <uuid>] [--ttl 720h]
//
// The signing secret and issuer come from the server configuration
// (auth.jwt_secret, auth.jwt_issuer). The token is printed to stdout.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/heartmarshall/lettergreep/internal/auth"
	"github.com/heartmarshall/lettergreep/internal/config"
)

func main() {
	nameFlag := flag.String("name", "", "client name stored in the token (required)")
	clientFlag := flag.String("client", "", "client UUID (default: random)")
	ttlFlag := flag.Duration("ttl", 0, "token lifetime (default: auth.token_ttl)")
	flag.Parse()

	if *nameFlag == "" {
		log.Fatal("--name is required")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.Auth.Enabled() {
		log.Fatal("auth.jwt_secret (AUTH_JWT_SECRET) is not set")
	}

	clientID := uuid.New()
	if *clientFlag != "" {
		clientID, err = uuid.Parse(*clientFlag)
		if err != nil {
			log.Fatalf("parse --client: %v", err)
		}
	}

	ttl := cfg.Auth.TokenTTL
	if *ttlFlag > 0 {
		ttl = *ttlFlag
	}

	tm := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, ttl)
	token, expiresAt, err := tm.Issue(clientID, *nameFlag)
	if err != nil {
		log.Fatalf("issue token: %v", err)
	}

	fmt.Printf("client:  %s\n", clientID)
	fmt.Printf("expires: %s\n", expiresAt.Format("2006-01-02T15:04:05Z07:00"))
	fmt.Println(token)
}
