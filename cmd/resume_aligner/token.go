package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-aligner/internal/config"
	"github.com/jonathan/resume-aligner/internal/server"
)

func newIssueTokenCmd(root *rootOptions) *cobra.Command {
	var clientID string
	cmd := &cobra.Command{
		Use:   "issue-token",
		Short: "Issue a bearer token for an API client",
		Long:  "Sign a bearer token for --client with JWT_SECRET, for calling protected endpoints without the token endpoint.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, _, err := root.load(cmd); err != nil {
				return err
			}
			jwtCfg, err := config.NewJWTConfig()
			if err != nil {
				return err
			}
			token, expiresAt, err := server.NewJWTService(jwtCfg).GenerateToken(clientID)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), "", server.TokenResponse{
				AccessToken: token,
				TokenType:   "Bearer",
				ExpiresAt:   expiresAt.UTC().Format(time.RFC3339),
				ExpiresIn:   int(jwtCfg.TTL().Seconds()),
			})
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "Client id to issue the token for (required)")
	_ = cmd.MarkFlagRequired("client")
	return cmd
}

// newHashSecretCmd prints the bcrypt hash to place under auth.clients
func newHashSecretCmd(_ *rootOptions) *cobra.Command {
	var secret string
	cmd := &cobra.Command{
		Use:   "hash-secret",
		Short: "Hash an API client secret for the auth.clients config",
		Long:  "Hash --secret, or the first line of stdin when --secret is empty, with BCRYPT_COST and SECRET_PEPPER.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("no secret given on --secret or stdin")
				}
				secret = strings.TrimRight(line, "\r\n")
			}
			if secret == "" {
				return fmt.Errorf("secret is empty")
			}
			secrets, err := config.NewSecretConfig()
			if err != nil {
				return err
			}
			hash, err := secrets.Hash(secret)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
			return err
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Secret to hash (default: read from stdin)")
	return cmd
}
