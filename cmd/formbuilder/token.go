package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formbuilder/internal/auth"
)

func newTokenCmd(flags *globalFlags) *cobra.Command {
	var (
		userID string
		name   string
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for the API",
		Long: `Signs a token with auth.secret from the configuration. Forms created
with the token belong to --user.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(userID) == "" {
				return errors.New("--user is required")
			}
			cfg, err := flags.load()
			if err != nil {
				return err
			}
			tokens, err := auth.NewTokens(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
			if err != nil {
				return err
			}
			raw, err := tokens.Issue(auth.User{ID: userID, Name: name})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), raw)
			return err
		},
	}
	cmd.Flags().StringVarP(&userID, "user", "u", "", "user id the token is issued to")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}
