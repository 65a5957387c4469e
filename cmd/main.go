package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Triaksa-Space/be-landing-cms/config"
	"github.com/Triaksa-Space/be-landing-cms/domain/content"
	"github.com/Triaksa-Space/be-landing-cms/migrations"
	"github.com/Triaksa-Space/be-landing-cms/pkg/logger"
	"github.com/Triaksa-Space/be-landing-cms/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "landing-cms",
		Short:         "Landing page content service",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitConfig(); err != nil {
				return err
			}
			logger.Init(logger.Config{
				Level:       logger.Level(viper.GetString("LOG_LEVEL")),
				Environment: viper.GetString("APP_ENV"),
				ServiceName: "landing-cms",
				Version:     version,
			})
			return nil
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "server",
			Short: "Serve the landing page CMS API",
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
				defer stop()
				return runServer(ctx)
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply database migrations",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.InitDB(); err != nil {
					return err
				}
				defer config.CloseDB()
				if err := migrations.Up(config.DB.DB, config.DB.DriverName()); err != nil {
					return err
				}
				logger.Get().Info("Migrations applied")
				return nil
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Insert default landing page content for every missing field",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := config.InitDB(); err != nil {
					return err
				}
				defer config.CloseDB()
				_, err := content.SeedDefaults(cmd.Context(), content.NewSQLStore(config.DB))
				return err
			},
		},
		newTokenCmd(),
	)
	return root
}

func newTokenCmd() *cobra.Command {
	var (
		userID int64
		roleID int64
		ttl    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a signed access token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := viper.GetString("JWT_SECRET")
			if secret == "" {
				return fmt.Errorf("JWT_SECRET is not set")
			}
			token, err := utils.GenerateJWT(userID, roleID, secret, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user-id", 1, "user id claim")
	cmd.Flags().Int64Var(&roleID, "role-id", content.RoleSuperAdmin, "role id claim")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "token lifetime")
	return cmd
}
