package main

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/coursegraph/coursegraph/config"
	"github.com/coursegraph/coursegraph/db"
	"github.com/coursegraph/coursegraph/oracle"
	"github.com/coursegraph/coursegraph/requirement"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Keeps the fan-out polite toward the completion endpoint.
const maxInFlight = 4

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

	stale, err := database.ListStaleCourses(requirement.SchemaVersion)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("%v stale courses", len(stale))

	client := oracle.NewOpenAIClient(cfg.OracleURL, cfg.OracleAPIKey, cfg.OracleModel)
	translator := oracle.NewTranslator(client)

	var records []db.ParsedRecord
	var recordsMutex sync.Mutex

	semaphore := make(chan struct{}, maxInFlight)
	var wg sync.WaitGroup
	for _, course := range stale {
		wg.Add(1)

		go func(c db.Course) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			parsed, err := translator.Translate(context.Background(), oracle.CourseText{
				Department:   c.Department,
				Number:       c.Number,
				Title:        c.Title,
				Prerequisite: c.PrerequisiteText,
				Corequisite:  c.CorequisiteText,
				Notes:        c.NotesText,
			})
			if err != nil {
				log.Println(err)
				return
			}

			document, err := json.Marshal(parsed)
			if err != nil {
				log.Println(err)
				return
			}

			recordsMutex.Lock()
			records = append(records, db.ParsedRecord{
				Department:         c.Department,
				Number:             c.Number,
				SchemaVersion:      parsed.SchemaVersion,
				Document:           document,
				SourceTitle:        c.Title,
				SourcePrerequisite: c.PrerequisiteText,
				SourceCorequisite:  c.CorequisiteText,
				SourceNotes:        c.NotesText,
			})
			recordsMutex.Unlock()
		}(course)
	}
	wg.Wait()

	if err := database.UpsertParsedRecords(records); err != nil {
		log.Fatal(err)
	}
	log.Printf("%v of %v courses translated", len(records), len(stale))
}
