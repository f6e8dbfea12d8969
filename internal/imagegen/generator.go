package imagegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"brochure/internal/config"
	"brochure/internal/logger"
	"brochure/internal/models"
)

// ErrNoImageData is returned when the model response carries no image part.
var ErrNoImageData = errors.New("response contains no image data")

// imageModel is the slice of the genai API the generator needs.
type imageModel interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Generator calls Gemini to render product scenes, throttled to stay inside
// the API rate limits.
type Generator struct {
	client      *genai.Client
	model       imageModel
	retryPolicy *config.RetryPolicy
	log         *logger.Logger
	outputDir   string

	sem   chan struct{}
	mu    sync.Mutex
	last  time.Time
	delay time.Duration
}

// NewGenerator creates a generator writing images into outputDir.
func NewGenerator(ctx context.Context, apiKey, modelName, outputDir string, retryPolicy *config.RetryPolicy, log *logger.Logger) (*Generator, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Generator{
		client:      client,
		model:       client.GenerativeModel(modelName),
		retryPolicy: retryPolicy,
		log:         log,
		outputDir:   outputDir,
		sem:         make(chan struct{}, 3),
		delay:       350 * time.Millisecond,
	}, nil
}

// Close releases the underlying client.
func (g *Generator) Close() error {
	if g.client == nil {
		return nil
	}

	return g.client.Close()
}

// GenerateAll renders one image per product that lacks one, keyed by model
// number. Products whose generation fails are logged and skipped; the
// returned map covers the written files.
func (g *Generator) GenerateAll(ctx context.Context, products []*models.Product) (map[string]string, error) {
	if err := os.MkdirAll(g.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make(map[string]string)

	for _, product := range products {
		if product.Image != "" {
			continue
		}

		path, err := g.Generate(ctx, product)
		if err != nil {
			if ctx.Err() != nil {
				return results, ctx.Err()
			}

			g.log.Warn("image generation failed", "model", product.Model, "error", err)

			continue
		}

		results[product.Model] = path

		g.log.Info("generated product image", "model", product.Model, "path", path)
	}

	return results, nil
}

// Generate renders a single product scene and writes <model>.png.
func (g *Generator) Generate(ctx context.Context, product *models.Product) (string, error) {
	prompt := BuildPrompt(product)

	var lastErr error

	for attempt := 1; attempt <= g.retryPolicy.MaxAttempts; attempt++ {
		data, err := g.call(ctx, prompt)
		if err == nil {
			path := filepath.Join(g.outputDir, product.Model+".png")
			if err := os.WriteFile(path, data, 0644); err != nil {
				return "", fmt.Errorf("failed to write image: %w", err)
			}

			return path, nil
		}

		lastErr = fmt.Errorf("generation failed (attempt %d/%d): %w", attempt, g.retryPolicy.MaxAttempts, err)

		if errors.Is(err, ErrNoImageData) || ctx.Err() != nil {
			break
		}

		if attempt < g.retryPolicy.MaxAttempts {
			time.Sleep(g.retryPolicy.GetRetryDelay(attempt))
		}
	}

	return "", lastErr
}

func (g *Generator) call(ctx context.Context, prompt string) ([]byte, error) {
	release := g.acquire()
	defer release()

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, err
	}

	return extractImage(resp)
}

// extractImage pulls the first inline image blob out of the response.
func extractImage(resp *genai.GenerateContentResponse) ([]byte, error) {
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if blob, ok := part.(genai.Blob); ok && len(blob.Data) > 0 {
				return blob.Data, nil
			}
		}
	}

	return nil, ErrNoImageData
}

// acquire throttles concurrent calls and enforces a minimum interval
// between request starts.
func (g *Generator) acquire() func() {
	g.sem <- struct{}{}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := time.Now()
	if !g.last.IsZero() {
		if sleep := g.delay - now.Sub(g.last); sleep > 0 {
			time.Sleep(sleep)
			now = time.Now()
		}
	}

	g.last = now

	return func() {
		<-g.sem
	}
}
