package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/repository"
	"github.com/hugohenrick/nexpos-assistant/internal/config"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
)

func newTokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <username>",
		Short: "Emite um token JWT para um usuário de demonstração",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			jwtService, err := auth.NewJWTService(cfg.JWTSecret, cfg.JWTExpiration)
			if err != nil {
				return err
			}

			seed, err := repository.DefaultSeed()
			if err != nil {
				return err
			}
			store := repository.NewMemoryStore(seed)

			u, err := store.Users.FindByUsername(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("user %q: %w", args[0], err)
			}
			token, err := jwtService.GenerateToken(u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
