package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/apothedoc/clinic-transfer/internal/config"
	"github.com/apothedoc/clinic-transfer/internal/domain/caresession"
	"github.com/apothedoc/clinic-transfer/internal/domain/chart"
	"github.com/apothedoc/clinic-transfer/internal/domain/enrollment"
	"github.com/apothedoc/clinic-transfer/internal/domain/identity"
	"github.com/apothedoc/clinic-transfer/internal/domain/patient"
	"github.com/apothedoc/clinic-transfer/internal/domain/transfer"
	"github.com/apothedoc/clinic-transfer/internal/platform/auth"
	"github.com/apothedoc/clinic-transfer/internal/platform/rest"
	"github.com/apothedoc/clinic-transfer/internal/platform/transport"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-transfer",
		Short: "Transfer clinical records between two clinic tenants",
	}
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default ./config.yaml)")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Execute the transfer",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runTransfer(cfgPath)
		},
	}
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check configuration, tokens, and identity mappings without writing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgPath, _ := cmd.Flags().GetString("config")
			return runValidate(cfgPath)
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}

func newLogger() zerolog.Logger {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	return logger.With().Str("run_id", uuid.NewString()).Logger()
}

// tenantClient builds a rest.Client for one tenant, sharing the run's rate
// limiter so source reads and destination writes draw from one budget.
func tenantClient(cfg *config.Config, t config.Tenant, limiter *rate.Limiter, logger zerolog.Logger) *rest.Client {
	return rest.NewClient(cfg.ResourceAPI, rest.Tenant{
		OrgID:    t.OrgID,
		ClinicID: t.ClinicID,
		Token:    t.AuthToken,
	}, rest.Options{
		Transport:    &transport.Retry{Limiter: limiter, Logger: logger},
		WriteTimeout: cfg.WriteTimeout,
		Logger:       logger,
	})
}

func newLimiter(cfg *config.Config) *rate.Limiter {
	if cfg.RateLimitRPS <= 0 {
		return nil
	}
	return rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
}

func runTransfer(cfgPath string) error {
	logger := newLogger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}
	if err := auth.CheckToken("source", cfg.Source.AuthToken); err != nil {
		logger.Error().Err(err).Msg("source token rejected")
		return err
	}
	if err := auth.CheckToken("destination", cfg.Destination.AuthToken); err != nil {
		logger.Error().Err(err).Msg("destination token rejected")
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := newLimiter(cfg)
	srcClient := tenantClient(cfg, cfg.Source, limiter, logger.With().Str("tenant", "source").Logger())
	dstClient := tenantClient(cfg, cfg.Destination, limiter, logger.With().Str("tenant", "destination").Logger())

	svc := transfer.NewService(transfer.Deps{
		Source: transfer.Repos{
			Patients:    patient.NewRepoAPI(srcClient, logger),
			Sessions:    caresession.NewRepoAPI(srcClient, logger),
			Enrollments: enrollment.NewRepoAPI(srcClient, logger),
			Chart:       chart.NewRepoAPI(srcClient),
		},
		Destination: transfer.Repos{
			Patients:    patient.NewRepoAPI(dstClient, logger),
			Sessions:    caresession.NewRepoAPI(dstClient, logger),
			Enrollments: enrollment.NewRepoAPI(dstClient, logger),
			Chart:       chart.NewRepoAPI(dstClient),
		},
		DestinationRoster: identity.NewRosterRepoAPI(dstClient),
		ProviderMappings:  cfg.ProviderMappings,
		UserMappings:      cfg.UserMappings,
		SkipCareSessions:  cfg.SkipCareSessions,
		Logger:            logger,
	})

	if err := svc.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("transfer aborted")
		return err
	}
	return nil
}

// runValidate performs every read-only preflight check a run depends on:
// config shape, token validity, reachability of both tenants, and that every
// mapping target exists in the destination rosters.
func runValidate(cfgPath string) error {
	logger := newLogger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		return err
	}
	logger.Info().Msg("config ok")

	failed := false
	for name, token := range map[string]string{
		"source":      cfg.Source.AuthToken,
		"destination": cfg.Destination.AuthToken,
	} {
		if err := auth.CheckToken(name, token); err != nil {
			logger.Error().Err(err).Str("tenant", name).Msg("token rejected")
			failed = true
			continue
		}
		if exp, err := auth.TokenExpiry(token); err == nil {
			logger.Info().Str("tenant", name).Time("expires", exp).Msg("token ok")
		} else {
			logger.Info().Str("tenant", name).Msg("token ok (opaque)")
		}
	}
	if failed {
		return fmt.Errorf("token validation failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	limiter := newLimiter(cfg)
	srcClient := tenantClient(cfg, cfg.Source, limiter, logger.With().Str("tenant", "source").Logger())
	dstClient := tenantClient(cfg, cfg.Destination, limiter, logger.With().Str("tenant", "destination").Logger())

	if _, err := patient.NewRepoAPI(srcClient, logger).List(ctx); err != nil {
		logger.Error().Err(err).Msg("source clinic unreachable")
		return err
	}
	logger.Info().Msg("source clinic reachable")

	roster := identity.NewRosterRepoAPI(dstClient)
	providers, err := roster.Providers(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("destination clinic unreachable")
		return err
	}
	users, err := roster.Users(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("destination user roster unreachable")
		return err
	}
	logger.Info().
		Int("providers", len(providers)).
		Int("users", len(users)).
		Msg("destination rosters loaded")

	missing := 0
	for _, m := range cfg.ProviderMappings {
		found := false
		for _, p := range providers {
			if p.ID == m.TargetID {
				found = true
				break
			}
		}
		if !found {
			logger.Warn().Int("source_id", m.SourceID).Int("target_id", m.TargetID).
				Msg("provider mapping targets an id absent from the destination roster")
			missing++
		}
	}
	for _, m := range cfg.UserMappings {
		var target *identity.User
		for i := range users {
			if users[i].ID == m.TargetID {
				target = &users[i]
				break
			}
		}
		switch {
		case target == nil:
			logger.Warn().Int("source_id", m.SourceID).Int("target_id", m.TargetID).
				Msg("user mapping targets an id absent from the destination roster")
			missing++
		case !target.CanAccessClinic(cfg.Destination.ClinicID):
			logger.Warn().Int("target_id", m.TargetID).
				Msg("mapped user cannot access the destination clinic")
			missing++
		}
	}
	if missing > 0 {
		logger.Warn().Int("unresolved_mappings", missing).
			Msg("some mappings will resolve to null during a run")
	} else {
		logger.Info().Msg("all identity mappings resolve")
	}
	return nil
}
