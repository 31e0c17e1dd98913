// Package rag_client is the HTTP client for the external RAG
// chunking/parser service.
package rag_client

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/tahaky/uymbot-docservice/core/errors"
)

// DocumentMeta is the RAG service's document metadata. Unknown fields
// in the upstream payload are tolerated.
type DocumentMeta struct {
	ID         string `json:"id"`
	Filename   string `json:"filename"`
	Format     string `json:"format"`
	Status     string `json:"status"`
	ChunkCount int    `json:"chunkCount"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

// Chunk is one chunk record from the RAG service, in document order.
type Chunk struct {
	ChunkID    string                 `json:"chunkId"`
	DocumentID string                 `json:"documentId"`
	StableID   string                 `json:"stableId"`
	Text       string                 `json:"text"`
	ChunkType  string                 `json:"chunkType"`
	Hash       string                 `json:"hash"`
	Metadata   map[string]interface{} `json:"metadata"`
	WordCount  int                    `json:"wordCount"`
	CharCount  int                    `json:"charCount"`
	CreatedAt  string                 `json:"createdAt"`
	UpdatedAt  string                 `json:"updatedAt"`
}

// Client fetches document metadata and ordered chunk records from the
// RAG chunking/parser service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a RAG service client.
func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		return nil, errors.Newf(errors.ErrInvalidParameter, "rag service baseURL is required")
	}
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
			Transport: &http.Transport{
				Dial: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).Dial,
				IdleConnTimeout:     90 * time.Second,
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
			},
		},
	}, nil
}

// GetDocument fetches document metadata for ragDocumentID.
func (c *Client) GetDocument(ctx context.Context, ragDocumentID string) (*DocumentMeta, error) {
	url := fmt.Sprintf("%s/api/documents/%s", c.baseURL, ragDocumentID)
	g.Log().Debugf(ctx, "Fetching RAG document metadata from %s", url)

	var meta DocumentMeta
	if err := c.getJSON(ctx, url, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// GetChunks fetches the ordered chunk list for ragDocumentID.
func (c *Client) GetChunks(ctx context.Context, ragDocumentID string) ([]Chunk, error) {
	url := fmt.Sprintf("%s/api/documents/%s/chunks", c.baseURL, ragDocumentID)
	g.Log().Debugf(ctx, "Fetching RAG document chunks from %s", url)

	var chunks []Chunk
	if err := c.getJSON(ctx, url, &chunks); err != nil {
		return nil, err
	}
	return chunks, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Newf(errors.ErrRagServiceCall, "failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Newf(errors.ErrRagServiceCall, "rag service request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Newf(errors.ErrRagServiceCall, "failed to read rag service response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return errors.Newf(errors.ErrRagServiceCall, "rag service returned HTTP %d: %s", resp.StatusCode, string(data))
	}
	if err := sonic.Unmarshal(data, out); err != nil {
		return errors.Newf(errors.ErrRagServiceDecode, "failed to decode rag service response: %v", err)
	}
	return nil
}
