package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"storefront/configs"
	"storefront/internal/domain"
	"storefront/internal/ports/output"
)

const defaultEmbeddingModel = "text-embedding-004"

var _ output.Embedder = (*Embedder)(nil)

// Embedder struct - Output adapter for Gemini text embeddings
type Embedder struct {
	client    *genai.Client
	modelName string
}

// NewEmbedder func - opens a Gemini client; extra options are appended after the api key
func NewEmbedder(ctx context.Context, config configs.Gemini, opts ...option.ClientOption) (*Embedder, error) {
	if config.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}
	modelName := config.EmbeddingModel
	if modelName == "" {
		modelName = defaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(config.APIKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logrus.Infof("Gemini embedder initialized with model: %s", modelName)

	return &Embedder{
		client:    client,
		modelName: modelName,
	}, nil
}

// Embed returns the embedding of text; it must have domain.EmbeddingDimensions values
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", domain.ErrInvalidRequest)
	}

	model := e.client.EmbeddingModel(e.modelName)
	model.TaskType = genai.TaskTypeRetrievalDocument

	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		logrus.Errorf("gemini embed content: %v", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrEndpointUnavailable, err)
	}
	if resp == nil || resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding", domain.ErrEndpointUnavailable)
	}
	if len(resp.Embedding.Values) != domain.EmbeddingDimensions {
		return nil, fmt.Errorf("%w: expected %d dimensions, got %d", domain.ErrEndpointUnavailable, domain.EmbeddingDimensions, len(resp.Embedding.Values))
	}
	return resp.Embedding.Values, nil
}

// Close func
func (e *Embedder) Close() error {
	return e.client.Close()
}
