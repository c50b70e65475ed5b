package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/repository"
	"github.com/hugohenrick/nexpos-assistant/internal/config"
	"github.com/hugohenrick/nexpos-assistant/internal/infrastructure/database"
)

func main() {
	// Carregar variáveis de ambiente
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Aviso: falha ao ler .env: %v", err)
	}

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var seed bool

	root := &cobra.Command{
		Use:           "migration",
		Short:         "Gerencia o schema PostgreSQL do assistente",
		SilenceUsage:  true,
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Aplica as migrações pendentes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := database.RunMigrations(cfg.Database.ConnectionString()); err != nil {
				return err
			}
			log.Println("Migrações executadas com sucesso!")

			if !seed {
				return nil
			}
			return runSeed(cmd.Context(), cfg)
		},
	}
	up.Flags().BoolVar(&seed, "seed", false, "grava os dados de demonstração após migrar")

	down := &cobra.Command{
		Use:   "down",
		Short: "Desfaz a última migração",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := database.RollbackMigrations(cfg.Database.ConnectionString()); err != nil {
				return err
			}
			log.Println("Migração revertida com sucesso!")
			return nil
		},
	}

	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Grava os dados de demonstração",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runSeed(cmd.Context(), cfg)
		},
	}

	root.AddCommand(up, down, seedCmd)
	return root
}

func runSeed(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	seed, err := repository.DefaultSeed()
	if err != nil {
		return err
	}

	db, err := database.NewPostgresDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("erro ao conectar com o banco de dados: %w", err)
	}
	defer db.Close()

	if err := repository.SeedPostgres(ctx, db, seed); err != nil {
		return err
	}
	log.Println("Dados de demonstração gravados com sucesso!")
	return nil
}
