// cmd/resetdata/main.go — wipes every supplier, buyer, deal, delivery and id counter
// in the configured store.
// Usage: go run ./cmd/resetdata -confirm "DELETE ALL DATA"
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"brokerbook/internal/config"
	"brokerbook/internal/service"
	"brokerbook/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	confirm := flag.String("confirm", "", `confirmation phrase; must be "DELETE ALL DATA"`)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	kv, err := store.Open(store.Options{
		Driver:      cfg.StoreDriver,
		BadgerPath:  cfg.BadgerPath,
		DatabaseURL: cfg.DatabaseURL,
		RedisURL:    cfg.RedisURL,
	})
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("failed to open store")
	}
	st := store.New(kv)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resetErr := service.NewDataService(st).ResetAllData(ctx, *confirm)
	// Close flushes the write-back cache, so it must run before reporting success.
	if err := st.Close(); err != nil {
		log.Fatal().Err(err).Msg("failed to close store")
	}
	if resetErr != nil {
		log.Fatal().Err(resetErr).Msg("reset aborted")
	}
	log.Info().Str("driver", cfg.StoreDriver).Msg("all data deleted")
}
