package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/user/article-backup/internal/adapter/chromedp_browser"
	"github.com/user/article-backup/internal/adapter/csvfile"
	"github.com/user/article-backup/internal/adapter/memory"
	"github.com/user/article-backup/internal/adapter/postgres"
	redis_adapter "github.com/user/article-backup/internal/adapter/redis"
	"github.com/user/article-backup/internal/delivery/http/handler"
	"github.com/user/article-backup/internal/delivery/http/router"
	"github.com/user/article-backup/internal/entity"
	"github.com/user/article-backup/internal/repository"
	"github.com/user/article-backup/internal/usecase"
	"github.com/user/article-backup/pkg/config"
	"github.com/user/article-backup/pkg/logger"
	"github.com/user/article-backup/pkg/utils"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "article-backup <email> <password> <account>",
		Short: "Back up the articles of a Qiita account to a dated CSV file",
		Long: `article-backup logs in with the given credentials, visits the edit page of
every post listed on the account's profile page and writes the raw markdown,
title and tags to backup/[YYYY-MM-DD_HHhMMm]Qiita-backup.csv.`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			creds := entity.Credentials{Identifier: args[0], Password: args[1]}
			return run(cmd.Context(), envFile, creds, args[2], cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "optional file with configuration variables")

	return cmd
}

func run(ctx context.Context, envFile string, creds entity.Credentials, account string, out io.Writer) error {
	// --- Configuration ---
	cfg, err := config.Load(envFile)
	if err != nil {
		return err
	}
	policy, err := usecase.ParseFailurePolicy(cfg.OnPostError)
	if err != nil {
		return err
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer log.Sync()

	// --- Stores ---
	var statusRepo repository.RunStatusRepository = memory.NewRunStatusRepo()
	checks := map[string]handler.Pinger{}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("unable to connect to Redis: %w", err)
		}
		repo := redis_adapter.NewRunStatusRepo(rdb, cfg.StatusTTL)
		statusRepo = repo
		checks["redis"] = repo
		log.Info("Redis connection established", zap.String("addr", cfg.RedisAddr))
	}

	var archive repository.PostArchiveRepository
	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("unable to connect to database: %w", err)
		}
		defer dbpool.Close()
		repo := postgres.NewPostArchiveRepo(dbpool)
		if err := repo.EnsureSchema(ctx); err != nil {
			return err
		}
		archive = repo
		checks["postgres"] = repo
		log.Info("PostgreSQL archive enabled")
	}

	// --- HTTP Server ---
	if cfg.HTTPAddr != "" {
		server := &http.Server{
			Addr:         cfg.HTTPAddr,
			Handler:      router.New(handler.NewHandler(statusRepo, checks, log), log),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  120 * time.Second,
		}
		go func() {
			log.Info("starting status server", zap.String("addr", cfg.HTTPAddr))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("status server failed", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Warn("status server shutdown", zap.Error(err))
			}
		}()
	}

	// --- Browser ---
	session, err := chromedp_browser.NewSession(ctx, chromedp_browser.Options{
		Headless:    cfg.Headless,
		ExecPath:    cfg.ChromePath,
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.PageLoadTimeout,
		NavInterval: cfg.NavInterval,
	}, log)
	if err != nil {
		return err
	}
	defer session.Close()

	// --- Use Cases ---
	loginURL, err := utils.JoinPath(cfg.BaseURL, cfg.LoginPath)
	if err != nil {
		return fmt.Errorf("invalid login URL: %w", err)
	}
	selectors := selectorsFromConfig(cfg)

	runner := usecase.NewBackupUseCase(
		usecase.NewAuthenticator(session, loginURL, selectors, cfg.VerifyLogin, log),
		usecase.NewListingFetcher(session, cfg.BaseURL, selectors, log),
		usecase.NewContentExtractor(session, selectors, log),
		csvfile.NewWriterFactory(cfg.BackupDir, cfg.BackupSuffix),
		archive,
		statusRepo,
		policy,
		log,
		time.Now,
	)

	summary, err := runner.Run(ctx, creds, account)
	printSummary(out, summary)
	return err
}

func selectorsFromConfig(cfg *config.Config) usecase.Selectors {
	return usecase.Selectors{
		LoginIdentity: cfg.SelectorLoginIdentity,
		LoginPassword: cfg.SelectorLoginPassword,
		LoginSubmit:   cfg.SelectorLoginSubmit,
		PostLink:      cfg.SelectorPostLink,
		EditLink:      cfg.SelectorEditLink,
		EditorBody:    cfg.SelectorEditorBody,
		EditorTitle:   cfg.SelectorEditorTitle,
		EditorTags:    cfg.SelectorEditorTags,
	}
}
