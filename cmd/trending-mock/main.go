package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

type trendingEntry struct {
	Title       string          `json:"title"`
	Rating      json.RawMessage `json:"rating"`
	Source      *string         `json:"source"`
	LastUpdated *string         `json:"lastUpdated"`
}

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "trending-mock", ReportTimestamp: true})

	app := &cli.Command{
		Name:  "trending-mock",
		Usage: "Serve canned trending ratings for local development",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on",
				Value:   "9099",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "path to mock data file",
				Value:   "mock-trending.json",
			},
			&cli.StringFlag{
				Name:  "api-key",
				Usage: "required X-API-Key value (empty accepts any)",
			},
			&cli.BoolFlag{
				Name:  "log",
				Usage: "enable request logging",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, logger)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		logger.Fatal("trending-mock failed", "err", err)
	}
}

func run(ctx context.Context, cmd *cli.Command, logger *log.Logger) error {
	file, err := os.ReadFile(cmd.String("data"))
	if err != nil {
		return fmt.Errorf("read mock data: %w", err)
	}

	var payload map[string]trendingEntry
	if err := json.Unmarshal(file, &payload); err != nil {
		return fmt.Errorf("parse mock data: %w", err)
	}

	apiKey := cmd.String("api-key")
	logRequests := cmd.Bool("log")

	mux := http.NewServeMux()
	mux.HandleFunc("/trending", func(w http.ResponseWriter, r *http.Request) {
		if apiKey != "" && r.Header.Get("X-API-Key") != apiKey {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		title := r.URL.Query().Get("title")
		if logRequests {
			logger.Info("trending lookup", "title", title)
		}
		entry, ok := payload[title]
		if !ok {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(entry); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	srv := &http.Server{Addr: ":" + cmd.String("port"), Handler: mux}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	logger.Info("mock trending listening", "addr", srv.Addr, "entries", len(payload))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
