package main

import (
	"context"
	"net/http"

	"calouros-backend/lib/callstore"
	callstoredb "calouros-backend/lib/callstore/db"
	"calouros-backend/lib/configutil"
	configlibsql "calouros-backend/lib/configutil/libsql"
	"calouros-backend/lib/lookup"
	"calouros-backend/lib/mirror"
	"calouros-backend/lib/scrapers/comvest"
	"calouros-backend/lib/serviceutil"
	"calouros-backend/lib/telemetry"
	"calouros-backend/services/ingest"
)

type Config struct {
	Port     int                 `json:"port"`
	Verbose  bool                `json:"verbose"`
	Database configlibsql.Struct `json:"database"`
	Lookup   lookup.Config       `json:"lookup"`
	Mirror   mirror.Config       `json:"mirror"`
}

func main() {
	ctx := serviceutil.SignalContext()

	config, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if config.Port == 0 {
		config.Port = 8447
	}
	if config.Database.File == "" {
		config.Database.File = "calouros.db"
	}
	telemetry.InitSlog(config.Verbose)

	t, err := telemetry.SetupFromEnv(ctx, "calouros")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	defer t.Shutdown(context.Background())
	telemetry.InstrumentPerfStats(ctx)

	db, err := config.Database.OpenDB(callstoredb.Schema)
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	tables, err := lookup.Load(config.Lookup.Dir)
	if err != nil {
		serviceutil.Fatal("failed to load lookup tables", err)
	}

	fetcher, err := comvest.NewClient()
	if err != nil {
		serviceutil.Fatal("failed to initialize listing fetcher", err)
	}

	var remote ingest.Mirror
	if config.Mirror.Url != "" {
		client, err := mirror.NewClient(config.Mirror)
		if err != nil {
			serviceutil.Fatal("failed to initialize mirror client", err)
		}
		remote = client
	}

	service := ingest.NewService(ingest.Options{
		Store:   callstore.NewStore(db),
		Tables:  tables,
		Fetcher: fetcher,
		Mirror:  remote,
	})

	mux := http.NewServeMux()
	registerRoutes(mux, service)
	go serviceutil.StartHttpServer(config.Port, mux)

	<-ctx.Done()
}
