// cmd/exportreport/main.go — writes the deal report spreadsheet to EXPORT_PATH.
// Usage: go run ./cmd/exportreport -from 2024-01-01 -to 2024-03-31 -status Pending
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"brokerbook/internal/config"
	"brokerbook/internal/dto"
	"brokerbook/internal/infra"
	"brokerbook/internal/repository"
	"brokerbook/internal/service"
	"brokerbook/internal/store"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var filter dto.ReportFilter
	flag.StringVar(&filter.StartDate, "from", "", "first confirmation date, YYYY-MM-DD")
	flag.StringVar(&filter.EndDate, "to", "", "last confirmation date, YYYY-MM-DD")
	flag.StringVar(&filter.Supplier, "supplier", "", "supplier name substring")
	flag.StringVar(&filter.Buyer, "buyer", "", "buyer name substring")
	flag.StringVar(&filter.Status, "status", "", "Pending | Delivered | Paid")
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
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	reports := service.NewReportService(
		repository.NewDealRepository(st),
		repository.NewSupplierRepository(st),
		repository.NewBuyerRepository(st),
	)
	report, err := reports.DealReport(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to build report")
		return
	}

	name := fmt.Sprintf("deals_report_%s.xlsx", time.Now().Format(dto.DateLayout))
	path, err := infra.SaveDealReportXLSX(cfg.ExportPath, name, report)
	if err != nil {
		log.Error().Err(err).Msg("failed to write report")
		return
	}
	log.Info().Str("path", path).Int("deals", report.Totals.TotalDeals).Msg("report exported")
}
