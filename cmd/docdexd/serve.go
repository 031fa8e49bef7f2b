package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/cobra"

	"github.com/docdex/docdex"
	"github.com/docdex/docdex/blobstore"
	miniostore "github.com/docdex/docdex/blobstore/minio"
	s3store "github.com/docdex/docdex/blobstore/s3"
	"github.com/docdex/docdex/codec"
	"github.com/docdex/docdex/httpd"
	"github.com/docdex/docdex/internal/config"
	"github.com/docdex/docdex/snapshot"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		return serve(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func serve(ctx context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}

	bs, err := newBlobStore(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("creating blob store: %w", err)
	}

	c, ok := codec.ByName(cfg.Engine.Codec)
	if !ok {
		return fmt.Errorf("unknown codec %q", cfg.Engine.Codec)
	}
	comp, ok := snapshot.CompressionByName(cfg.Engine.Compression)
	if !ok {
		return fmt.Errorf("unknown compression %q", cfg.Engine.Compression)
	}

	store, err := docdex.Open(ctx,
		docdex.WithBlobStore(bs),
		docdex.WithCodec(c),
		docdex.WithCompression(comp),
		docdex.WithLogger(logger),
		docdex.WithObserver(httpd.NewPrometheusObserver(nil)),
	)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	server := httpd.NewServer(store,
		httpd.WithLogger(logger),
		httpd.WithWriteRateLimit(cfg.HTTP.WriteRateLimit, cfg.HTTP.WriteRateBurst),
	)

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server",
			"addr", cfg.HTTP.Addr,
			"driver", cfg.Storage.Driver,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
	}
	logger.Info("received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}

func newLogger(cfg config.LoggingConfig) (*docdex.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}
	switch cfg.Format {
	case "json":
		return docdex.NewJSONLogger(level), nil
	case "text", "":
		return docdex.NewTextLogger(level), nil
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.Format)
	}
}

func newBlobStore(ctx context.Context, cfg config.StorageConfig) (blobstore.BlobStore, error) {
	switch cfg.Driver {
	case config.DriverLocal:
		return blobstore.NewLocalStore(cfg.Dir), nil

	case config.DriverS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("loading AWS config: %w", err)
		}
		client := awss3.NewFromConfig(awsCfg)
		return s3store.NewStore(client, cfg.Bucket, cfg.Prefix), nil

	case config.DriverMinio:
		client, err := minio.New(cfg.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
			Secure: !cfg.Insecure,
		})
		if err != nil {
			return nil, fmt.Errorf("creating MinIO client: %w", err)
		}
		return miniostore.NewStore(client, cfg.Bucket, cfg.Prefix), nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
