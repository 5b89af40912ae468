package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"filegrip/internal/config"
	"filegrip/internal/domain"
	"filegrip/internal/server/api"
	"filegrip/internal/server/storage"
)

func main() {
	app := &cli.Command{
		Name:  "filegripd",
		Usage: "File catalog API daemon",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Usage: "Configuration file path",
			},
		},
		Commands: []*cli.Command{
			serveCommand(),
			initCommand(),
			seedCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Command) (*config.Config, error) {
	svc := config.NewConfigService()
	if path := c.String("config"); path != "" {
		return svc.LoadFromPath(path)
	}
	return svc.Load()
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the catalog API server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "listen",
				Usage: "Listen address (overrides config)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			listen := cfg.Server.Listen
			if v := c.String("listen"); v != "" {
				listen = v
			}

			logger, err := zap.NewProduction()
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer func() { _ = logger.Sync() }()

			store, err := storage.New(cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("opening catalog database: %w", err)
			}
			defer func() {
				if err := store.Close(); err != nil {
					logger.Warn("closing store", zap.Error(err))
				}
			}()

			server := api.NewServer(store, logger, cfg.BotLink)
			httpServer := &http.Server{
				Addr:              listen,
				Handler:           server.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			errCh := make(chan error, 1)
			go func() {
				logger.Info("serving catalog API",
					zap.String("listen", listen),
					zap.String("db", cfg.Server.DBPath))
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case sig := <-sigCh:
				logger.Info("shutting down", zap.String("signal", sig.String()))
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}
}

func initCommand() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "Write a default configuration file",
		Action: func(ctx context.Context, c *cli.Command) error {
			svc := config.NewConfigService()
			path := c.String("config")
			if path == "" {
				path = svc.Path()
			}

			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("config file already exists at %s", path)
			}

			if err := svc.SaveToPath(config.DefaultConfig(), path); err != nil {
				return err
			}
			fmt.Printf("Wrote default config to %s\n", path)
			return nil
		},
	}
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Insert records into the catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Usage: "JSON file with an array of records to import",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of generated sample records (ignored with --file)",
				Value: 100,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			store, err := storage.New(cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("opening catalog database: %w", err)
			}
			defer func() { _ = store.Close() }()

			var records []domain.FileRecord
			if path := c.String("file"); path != "" {
				records, err = loadRecords(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
			} else {
				records = sampleRecords(c.Int("count"))
			}
			if err := store.InsertBatch(ctx, records); err != nil {
				return fmt.Errorf("seeding catalog: %w", err)
			}

			total, err := store.Count(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("Inserted %d records, catalog now holds %d\n", len(records), total)
			return nil
		},
	}
}

func loadRecords(path string) ([]domain.FileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var records []domain.FileRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// sampleRecords builds deterministic demo data covering every file type and a
// range of years.
func sampleRecords(count int) []domain.FileRecord {
	names := []string{
		"annual-report-%d.pdf",
		"lecture-notes-week-%d.pdf",
		"conference-talk-%d.mp4",
		"tutorial-series-episode-%d.mkv",
		"dataset-archive-%d.zip",
		"field-recording-%d.mp3",
		"research-paper-draft-%d.pdf",
		"workshop-session-%d.mp4",
	}
	captions := []string{
		"Shared by the archive team",
		"",
		"High quality scan",
		"Community upload",
		"",
	}

	records := make([]domain.FileRecord, 0, count)
	for i := 0; i < count; i++ {
		name := fmt.Sprintf(names[i%len(names)], i+1)
		records = append(records, domain.FileRecord{
			FileName: name,
			FileSize: int64(1<<20 + i*4096),
			Caption:  captions[i%len(captions)],
			Year:     2018 + i%8,
		})
	}
	return records
}
