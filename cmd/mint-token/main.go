// Command mint-token prints a signed bearer token for calling the API.
// Every API route requires one, and there are no user accounts to log
// in with, so operators mint tokens directly from the shared secret.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/deckorder-api/internal/config"
	"github.com/phrazzld/deckorder-api/internal/service/auth"
)

func main() {
	subject := flag.String("subject", "local", "subject claim to embed in the token")
	secret := flag.String("secret", "",
		"signing secret; read from configuration when empty")
	lifetime := flag.Int("lifetime", 60, "token lifetime in minutes (with -secret)")
	flag.Parse()

	if err := run(*subject, *secret, *lifetime, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "mint-token: %v\n", err)
		os.Exit(1)
	}
}

// run mints a token and writes it to out. The secret comes from the
// -secret flag when given, otherwise from the application configuration
// so tokens match what the running server validates against.
func run(subject, secret string, lifetimeMinutes int, out io.Writer) error {
	authCfg := config.AuthConfig{
		JWTSecret:            secret,
		TokenLifetimeMinutes: lifetimeMinutes,
	}

	if secret == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		authCfg = cfg.Auth
	}

	jwtService, err := auth.NewJWTService(authCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	token, err := jwtService.GenerateToken(context.Background(), subject)
	if err != nil {
		return fmt.Errorf("failed to generate token: %w", err)
	}

	fmt.Fprintln(out, token)
	return nil
}
