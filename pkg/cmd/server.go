package cmd

import (
	"context"
	"fmt"

	"github.com/findexhq/findex/internal/searchcore"
	"github.com/findexhq/findex/pkg/api"
	"github.com/findexhq/findex/pkg/core"
	"github.com/findexhq/findex/pkg/prov/markdown"
	"github.com/findexhq/findex/pkg/prov/openapi"
	"github.com/findexhq/findex/pkg/repo/docstore"
	"github.com/findexhq/findex/pkg/repo/search"
	"github.com/findexhq/findex/pkg/views"
)

// RunCommand initializes the logger, loads configuration, creates the core and API services,
// and starts the API service. It returns an error if any step fails.
func RunCommand(ctx context.Context, flags *cmdFlags) error {
	if err := initLogger(flags); err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize document storage.
	store, err := docstore.New(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("failed to create document store: %w", err)
	}

	// Initialize search engine.
	searchEngine, err := search.NewBleve(cfg.Search.IndexPath)
	if err != nil {
		return fmt.Errorf("failed to create search engine: %w", err)
	}

	defer searchEngine.Close()

	// Initialize markdown renderer.
	renderer := markdown.New()

	// Initialize OpenAPI processor.
	openapiProcessor := openapi.New()

	// Initialize core service with content processors.
	processors := map[core.ContentType]core.ContentProcessor{
		core.ContentTypeMarkdown: renderer,
		core.ContentTypeOpenAPI:  openapiProcessor,
	}

	svc := core.New(store, searchEngine, processors)

	// Initialize view renderer.
	viewRenderer := views.New()

	// Initialize and run API server.
	apiSvc, err := api.New(cfg.API, svc, viewRenderer)
	if err != nil {
		return fmt.Errorf("failed to create API service: %w", err)
	}

	apiSvc.SetOrchestrator(searchcore.NewOrchestrator(search.NewSearchCoreIndex(searchEngine)))

	err = apiSvc.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to run API service: %w", err)
	}

	return nil
}
