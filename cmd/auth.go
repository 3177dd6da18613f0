package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/artx/internal/services"
	"github.com/desertthunder/artx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthToken performs the client-credentials grant and prints the resulting token.
//
// The token is masked unless --show is set.
func (r *Runner) AuthToken(ctx context.Context, cmd *cli.Command) error {
	creds, err := shared.ResolveCredentials(r.config, cmd.String("properties"))
	if err != nil {
		return err
	}

	auth, err := services.NewTokenAuthenticator(creds, r.config.Spotify.TokenURL, r.httpClient)
	if err != nil {
		return err
	}

	r.logger.Info("requesting access token", "token_url", auth.TokenURL())

	token, err := auth.Authenticate(ctx)
	if err != nil {
		return err
	}

	accessToken := token.AccessToken
	if !cmd.Bool("show") {
		accessToken = shared.Mask(accessToken)
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]string{
			"access_token": accessToken,
			"token_type":   token.Type(),
		}, true)
	}

	if err := r.writePlain("✓ Access token acquired\n"); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	if err := r.writePlain("Type:  %s\n", token.Type()); err != nil {
		return fmt.Errorf("failed to write token: %w", err)
	}
	return r.writePlain("Token: %s\n", accessToken)
}
