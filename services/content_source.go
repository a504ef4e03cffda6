package services

import (
	"context"
	"fmt"
	"log"

	"file_bridge_app_go/config"
	"file_bridge_app_go/services/content"
)

// LoadContentCatalog loads the page content from the configured source.
// DEFAULT_VARIANT is applied by the content store so that it also holds
// across reloads.
func LoadContentCatalog(ctx context.Context, cfg *config.Config, storage StorageProvider) (*content.Catalog, error) {
	var (
		catalog *content.Catalog
		err     error
	)

	switch cfg.ContentSource {
	case config.ContentSourceFile:
		catalog, err = content.LoadFile(cfg.ContentPath)
	case config.ContentSourceStorage:
		if storage == nil {
			return nil, fmt.Errorf("content source %q requires a storage provider", cfg.ContentSource)
		}
		catalog, err = content.LoadObject(ctx, storage, cfg.ContentPath)
	default:
		catalog, err = content.LoadEmbedded()
	}
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Content loaded from %s source: variants %v (default %q)", cfg.ContentSource, catalog.Keys(), catalog.DefaultVariant)
	return catalog, nil
}
