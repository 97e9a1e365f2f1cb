package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	"github.com/coursegraph/coursegraph/config"
	"github.com/coursegraph/coursegraph/db"
	"github.com/coursegraph/coursegraph/graph"
	"github.com/coursegraph/coursegraph/requirement"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseConnectionString)
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()
	database := db.Database{Pool: pool}

	documents, err := database.ListParsedDocuments()
	if err != nil {
		log.Fatal(err)
	}

	var records []graph.Record
	for _, document := range documents {
		var candidate any
		if err := json.Unmarshal(document.Document, &candidate); err != nil {
			log.Fatal(err)
		}

		// Only validated documents are ever stored, so a decode failure here
		// is a contract violation, not a recoverable condition.
		parsed, err := requirement.DecodeRecord(candidate)
		if err != nil {
			log.Fatal(err)
		}

		records = append(records, graph.Record{Requirements: *parsed, Title: document.Title})
	}

	assembled := graph.Assemble(records)

	nodesFile, err := os.Create("nodes.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer nodesFile.Close()
	if err := graph.WriteNodesCSV(nodesFile, assembled.Nodes); err != nil {
		log.Fatal(err)
	}

	linksFile, err := os.Create("links.csv")
	if err != nil {
		log.Fatal(err)
	}
	defer linksFile.Close()
	if err := graph.WriteLinksCSV(linksFile, assembled.Links); err != nil {
		log.Fatal(err)
	}

	log.Printf("%v nodes, %v links", len(assembled.Nodes), len(assembled.Links))
}
