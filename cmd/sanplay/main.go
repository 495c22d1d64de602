package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/mway1/san"
	"github.com/mway1/san/internal/archive"
	"github.com/mway1/san/internal/config"
	"github.com/mway1/san/internal/engine"
	"github.com/mway1/san/internal/logger"
	"github.com/mway1/san/internal/server"
	"github.com/mway1/san/internal/session"
)

const defaultConfigPath = "sanplay.env"

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  sanplay [play]             - play a game on the terminal")
	fmt.Println("  sanplay serve              - run the HTTP and websocket server")
	fmt.Println("  sanplay replay <file.pgn>  - print the tree and moves of a recorded game (.pgn.bz2 too)")
}

func main() {
	os.Exit(run())
}

func run() int {
	cmd := "play"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}
	if cmd == "-h" || cmd == "--help" || cmd == "help" {
		usage()
		return 0
	}

	cfgPath := os.Getenv("SANPLAY_CONFIG")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	cfg, err := config.Setup(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 1
	}

	log, err := logger.New(cfg.LogLevel, cfg.LogDevelopment)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		return 1
	}
	defer log.Sync()

	rules, err := engine.New(cfg.Engine)
	if err != nil {
		log.Errorw("failed to select rules engine", "error", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	switch cmd {
	case "play":
		return play(ctx, *cfg, log, rules)
	case "serve":
		return serve(ctx, *cfg, log, rules)
	case "replay":
		if len(os.Args) < 3 {
			usage()
			return 2
		}
		return replay(os.Args[2], rules, os.Stdout, log)
	default:
		fmt.Println("Unknown command:", cmd)
		usage()
		return 2
	}
}

func openArchive(ctx context.Context, cfg config.Config, log *zap.SugaredLogger) (archive.Archive, error) {
	arch, err := archive.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if arch != nil {
		log.Infow("archive ready", "backend", cfg.Archive)
	}
	return arch, nil
}

func play(ctx context.Context, cfg config.Config, log *zap.SugaredLogger, rules san.Engine) int {
	arch, err := openArchive(ctx, cfg, log)
	if err != nil {
		log.Errorw("failed to open archive", "error", err)
		return 1
	}
	if arch != nil {
		defer arch.Close(context.Background())
	}

	ctrl := session.New(rules, session.NewScanner(os.Stdin), os.Stdout, log, session.Options{
		Archive: arch,
		SVGPath: cfg.SvgPath,
		PDFPath: cfg.PdfPath,
	})
	if _, err := ctrl.Run(ctx); err != nil {
		log.Errorw("session failed", "error", err)
		return 1
	}
	return 0
}

func serve(ctx context.Context, cfg config.Config, log *zap.SugaredLogger, rules san.Engine) int {
	arch, err := openArchive(ctx, cfg, log)
	if err != nil {
		log.Errorw("failed to open archive", "error", err)
		return 1
	}
	if arch != nil {
		defer arch.Close(context.Background())
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go handleShutdown(cancel, log)

	limit, err := cfg.ImportLimit()
	if err != nil {
		log.Errorw("invalid configuration", "error", err)
		return 1
	}

	srv := &http.Server{
		Addr:              cfg.HttpAddr,
		Handler:           server.New(log, rules, arch).WithImportLimit(limit).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Infof("Server is running on %s", cfg.HttpAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Errorw("server failed", "error", err)
		return 1
	}
	return 0
}

func handleShutdown(cancel context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancel()
}
