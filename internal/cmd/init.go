package cmd

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/tahaky/uymbot-docservice/core/config"
	"github.com/tahaky/uymbot-docservice/internal/logic/document"
	"github.com/tahaky/uymbot-docservice/internal/service"
)

// init initializes all components of the application.
func init() {
	ctx := context.Background()

	// Validate configuration before initializing components
	g.Log().Info(ctx, "Validating application configuration...")
	err := config.ValidateConfiguration(ctx)
	if err != nil {
		g.Log().Fatalf(ctx, "Configuration validation failed:\n%v", err)
	}

	// Initialize vector database client. The collection itself is
	// created lazily on first use.
	_, err = service.GetVectorStore()
	if err != nil {
		g.Log().Fatalf(ctx, "Vector store initialization failed: %v", err)
	}

	// Initialize embedder
	_, err = service.GetEmbedder()
	if err != nil {
		g.Log().Fatalf(ctx, "Embedder initialization failed: %v", err)
	}

	// Initialize document pipeline
	err = document.InitDocumentService(ctx)
	if err != nil {
		g.Log().Fatalf(ctx, "Document service initialization failed: %v", err)
	}

	g.Log().Info(ctx, "✓ All components initialized successfully")
}
