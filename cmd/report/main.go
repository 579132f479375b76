package main

import (
	"context"
	"log"
	"os"

	"github.com/project-tktt/go-jobstats/internal/config"
	"github.com/project-tktt/go-jobstats/internal/indexer"
	"github.com/project-tktt/go-jobstats/internal/report"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg := config.Load()
	ctx := context.Background()

	pg, err := indexer.NewPostgresIndexer(cfg.Postgres.ConnectionString, cfg.Postgres.TableName)
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	defer pg.Close()

	jobs, err := pg.FetchAll(ctx)
	if err != nil {
		log.Fatalf("Load listings failed: %v", err)
	}
	log.Printf("Loaded %d listings", len(jobs))

	rep := report.Build(jobs)

	out := os.Stdout
	if cfg.Report.OutputPath != "" && cfg.Report.OutputPath != "-" {
		f, err := os.Create(cfg.Report.OutputPath)
		if err != nil {
			log.Fatalf("Create output file failed: %v", err)
		}
		defer f.Close()
		out = f
	}

	if err := rep.Write(out); err != nil {
		log.Fatalf("Write report failed: %v", err)
	}
}
