// Command ingest bulk-loads media items from a JSON manifest, registering the
// owning account first if it is not present yet.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"

	"keepsake-backend/application/commands"
	"keepsake-backend/infrastructure/config"
	"keepsake-backend/infrastructure/di"
	pkgerrors "keepsake-backend/pkg/errors"
)

// manifestEntry is one media item in the manifest file
type manifestEntry struct {
	Path       string   `json:"path"`
	Mimetype   string   `json:"mimetype"`
	Collection string   `json:"collection"`
	Tags       []string `json:"tags,omitempty"`
	People     []string `json:"people,omitempty"`
	Places     []string `json:"places,omitempty"`
	Times      []string `json:"times,omitempty"`
}

func main() {
	accountID := flag.String("account", "", "account uuid that will own the media")
	manifestPath := flag.String("manifest", "", "path to the JSON manifest file")
	flag.Parse()

	if *accountID == "" || *manifestPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Client.Close(ctx)

	raw, err := os.ReadFile(*manifestPath)
	if err != nil {
		log.Fatalf("Failed to read manifest: %v", err)
	}

	var entries []manifestEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("Failed to parse manifest: %v", err)
	}

	logger := container.Logger

	if _, err := container.Accounts.Create(ctx, commands.CreateAccountCommand{UUID: *accountID}); err != nil {
		if !pkgerrors.IsConflict(err) {
			logger.Fatal("Failed to register account", zap.Error(err))
		}
	}

	ingested := 0
	for _, entry := range entries {
		view, err := container.Media.Ingest(ctx, commands.IngestMediaCommand{
			AccountID:  *accountID,
			Path:       entry.Path,
			Mimetype:   entry.Mimetype,
			Collection: entry.Collection,
			Tags:       entry.Tags,
			People:     entry.People,
			Places:     entry.Places,
			Times:      entry.Times,
		})
		if err != nil {
			logger.Error("Ingest failed",
				zap.String("path", entry.Path),
				zap.Error(err),
			)
			continue
		}
		ingested++
		logger.Info("Ingested",
			zap.String("mediaID", view.ID),
			zap.String("path", entry.Path),
			zap.String("collection", entry.Collection),
		)
	}

	logger.Info("Manifest processed",
		zap.Int("total", len(entries)),
		zap.Int("ingested", ingested),
	)
}
