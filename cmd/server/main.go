package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"gameforge/internal/config"
	"gameforge/internal/fallback"
	"gameforge/internal/router"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	var (
		configDir string
		cfg       *config.Config
	)

	root := &cobra.Command{
		Use:           "gameforge",
		Short:         "GameForge: LLM generated HTML5 mini games",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load .env file
			if err := godotenv.Load(); err != nil {
				log.Println("No .env file found, finding env vars from system")
			}

			var paths []string
			if configDir != "" {
				paths = append(paths, configDir)
			}
			loaded, err := config.Load(paths...)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfg = loaded
			setupLogging(cfg.Log.File)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configDir, "config", "", "directory containing config.yaml")

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), cfg)
		},
	}

	tick := &cobra.Command{
		Use:   "tick",
		Short: "Run one auto-generation check (for cron)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTick(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	var description, hints string
	synth := &cobra.Command{
		Use:   "synth [title]",
		Short: "Print a fallback game document to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			title := ""
			if len(args) == 1 {
				title = args[0]
			}
			_, err := io.WriteString(cmd.OutOrStdout(), fallback.Synthesize(title, description, hints))
			return err
		},
	}
	synth.Flags().StringVar(&description, "description", "", "game description")
	synth.Flags().StringVar(&hints, "hints", "", "extra theme hints used for classification")

	root.AddCommand(serve, tick, synth)
	// 不带子命令时等同于 serve
	root.RunE = serve.RunE

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		log.Fatalf("gameforge: %v", err)
	}
}

// setupLogging 同时输出到 stdout 与滚动日志文件
func setupLogging(file string) {
	if file == "" {
		return
	}
	rotating := &lumberjack.Logger{
		Filename:   file,
		MaxSize:    50,
		MaxBackups: 5,
		MaxAge:     14,
		Compress:   true,
	}
	w := io.MultiWriter(os.Stdout, rotating)
	log.SetOutput(w)
	gin.DefaultWriter = w
	gin.DefaultErrorWriter = io.MultiWriter(os.Stderr, rotating)
}

func runServe(ctx context.Context, cfg *config.Config) error {
	gin.SetMode(cfg.Server.Mode)

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.Scheduler.Poll > 0 {
		go a.scheduler.Run(ctx, cfg.Scheduler.Poll)
	}

	r := router.New(router.Deps{
		Store:           a.store,
		Generator:       a.generator,
		Scheduler:       a.scheduler,
		Votes:           a.votes,
		Thumbnails:      a.thumbnails,
		Events:          a.events,
		VoteSalt:        cfg.Vote.Salt,
		SessionSecret:   cfg.Server.SessionSecret,
		CorsOrigins:     cfg.Server.CorsOrigins,
		CronTokenHash:   cfg.Scheduler.CronTokenHash,
		GenerateTimeout: cfg.Generate.Timeout,
		TemplatesDir:    cfg.Server.TemplatesDir,
		StaticDir:       cfg.Server.StaticDir,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}
	errCh := make(chan error, 1)
	go func() {
		log.Printf("GameForge server starting on :%s", cfg.Server.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runTick(ctx context.Context, cfg *config.Config, out io.Writer) error {
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	tickCtx, cancel := context.WithTimeout(ctx, cfg.Generate.Timeout)
	defer cancel()

	res, err := a.scheduler.Tick(tickCtx)
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err != nil {
		enc.Encode(map[string]interface{}{"error": err.Error(), "retryIn": int64(res.RetryIn.Seconds())})
		return err
	}
	if !res.Due {
		return enc.Encode(map[string]interface{}{
			"message":        "Not time for auto-generation yet",
			"nextGeneration": res.NextGeneration.UTC().Format(time.RFC3339),
			"timeRemaining":  res.TimeRemaining,
		})
	}
	return enc.Encode(map[string]interface{}{
		"success":        true,
		"game":           res.Game,
		"nextGeneration": res.NextGeneration.UTC().Format(time.RFC3339),
	})
}
