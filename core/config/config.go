package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/gogf/gf/v2/frame/g"
	"github.com/tahaky/uymbot-docservice/core/chunker"
)

const (
	// DefaultTokenBudget is the target chunk size in tokens.
	DefaultTokenBudget = 1000

	// DefaultCollectionName is the vector store collection name.
	DefaultCollectionName = "documents"
)

// ValidateConfiguration validates all required configuration items.
func ValidateConfiguration(ctx context.Context) error {
	var missingConfigs []string
	var warnings []string

	storeType := g.Cfg().MustGet(ctx, "vectorStore.type", "chroma").String()
	if storeType == "chroma" {
		chromaHost := g.Cfg().MustGet(ctx, "chromadb.host", "").String()
		if chromaHost == "" {
			missingConfigs = append(missingConfigs, "chromadb.host")
		}
	}

	provider := g.Cfg().MustGet(ctx, "embedding.provider", "hash").String()
	if provider == "openai" {
		if g.Cfg().MustGet(ctx, "embedding.apiKey", "").String() == "" {
			missingConfigs = append(missingConfigs, "embedding.apiKey")
		}
		if g.Cfg().MustGet(ctx, "embedding.baseURL", "").String() == "" {
			missingConfigs = append(missingConfigs, "embedding.baseURL")
		}
		if g.Cfg().MustGet(ctx, "embedding.model", "").String() == "" {
			missingConfigs = append(missingConfigs, "embedding.model")
		}
	}

	if g.Cfg().MustGet(ctx, "rag.baseURL", "").String() == "" {
		warnings = append(warnings, "rag.baseURL is not set, RAG import is disabled")
	}

	if len(warnings) > 0 {
		g.Log().Warningf(ctx, "Configuration warnings:\n- %s", strings.Join(warnings, "\n- "))
	}

	if len(missingConfigs) > 0 {
		return fmt.Errorf("missing required configuration items:\n- %s\n\nPlease check your config.yaml file and ensure all required settings are properly configured", strings.Join(missingConfigs, "\n- "))
	}

	g.Log().Info(ctx, "✓ All required configuration items are present")
	return nil
}

// Config carries the document pipeline settings.
type Config struct {
	// Vector store settings
	VectorStoreType string
	ChromaHost      string
	CollectionName  string

	// Embedding settings
	EmbeddingProvider string
	APIKey            string
	BaseURL           string
	EmbeddingModel    string

	// Chunking settings
	TokenBudget int

	// RAG import service
	RagBaseURL string
}

// Load reads the pipeline configuration from g.Cfg().
func Load(ctx context.Context) *Config {
	return &Config{
		VectorStoreType:   g.Cfg().MustGet(ctx, "vectorStore.type", "chroma").String(),
		ChromaHost:        g.Cfg().MustGet(ctx, "chromadb.host", "").String(),
		CollectionName:    g.Cfg().MustGet(ctx, "chromadb.collectionName", DefaultCollectionName).String(),
		EmbeddingProvider: g.Cfg().MustGet(ctx, "embedding.provider", "hash").String(),
		APIKey:            g.Cfg().MustGet(ctx, "embedding.apiKey", "").String(),
		BaseURL:           g.Cfg().MustGet(ctx, "embedding.baseURL", "").String(),
		EmbeddingModel:    g.Cfg().MustGet(ctx, "embedding.model", "").String(),
		TokenBudget:       g.Cfg().MustGet(ctx, "chunking.tokenBudget", DefaultTokenBudget).Int(),
		RagBaseURL:        g.Cfg().MustGet(ctx, "rag.baseURL", "").String(),
	}
}

// MaxChunkChars converts the token budget to a character budget.
func (c *Config) MaxChunkChars() int {
	return c.TokenBudget * chunker.CharsPerToken
}

// Config implements the embedding config interface.
func (c *Config) GetAPIKey() string         { return c.APIKey }
func (c *Config) GetBaseURL() string        { return c.BaseURL }
func (c *Config) GetEmbeddingModel() string { return c.EmbeddingModel }
