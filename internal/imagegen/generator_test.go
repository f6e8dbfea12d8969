package imagegen

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"

	"brochure/internal/config"
	"brochure/internal/logger"
	"brochure/internal/models"
)

// fakeModel scripts GenerateContent responses.
type fakeModel struct {
	calls     atomic.Int32
	failUntil int32
	data      []byte
	err       error
}

func (f *fakeModel) GenerateContent(_ context.Context, _ ...genai.Part) (*genai.GenerateContentResponse, error) {
	call := f.calls.Add(1)

	if f.err != nil && call <= f.failUntil {
		return nil, f.err
	}

	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Parts: []genai.Part{genai.Blob{MIMEType: "image/png", Data: f.data}},
				},
			},
		},
	}, nil
}

func testGenerator(t *testing.T, model imageModel) *Generator {
	t.Helper()

	return &Generator{
		model: model,
		retryPolicy: &config.RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    1,
			MaxDelayMs:        5,
			BackoffMultiplier: 2.0,
			TimeoutSec:        5,
		},
		log:       logger.New("error"),
		outputDir: t.TempDir(),
		sem:       make(chan struct{}, 3),
		delay:     time.Millisecond,
	}
}

func TestGenerateWritesModelPNG(t *testing.T) {
	generator := testGenerator(t, &fakeModel{data: []byte("pngdata")})

	product := &models.Product{Name: "Doorbell Cam", Model: "DB-100", Category: "Video Door Bell"}

	path, err := generator.Generate(context.Background(), product)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if filepath.Base(path) != "DB-100.png" {
		t.Errorf("image named %s, want DB-100.png", filepath.Base(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if string(data) != "pngdata" {
		t.Error("written image content mismatch")
	}
}

func TestGenerateRetriesTransientErrors(t *testing.T) {
	model := &fakeModel{data: []byte("pngdata"), err: errors.New("rate limited"), failUntil: 2}
	generator := testGenerator(t, model)

	product := &models.Product{Name: "Hub", Model: "H-1"}

	if _, err := generator.Generate(context.Background(), product); err != nil {
		t.Fatalf("Generate failed after retries: %v", err)
	}

	if got := model.calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestGenerateAllSkipsProductsWithImages(t *testing.T) {
	model := &fakeModel{data: []byte("pngdata")}
	generator := testGenerator(t, model)

	products := []*models.Product{
		{Name: "Cam", Model: "C-1", Image: "https://cdn.example.com/c1.jpg"},
		{Name: "Lock", Model: "L-1"},
	}

	results, err := generator.GenerateAll(context.Background(), products)
	if err != nil {
		t.Fatalf("GenerateAll failed: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 generated image, got %d", len(results))
	}

	if _, ok := results["L-1"]; !ok {
		t.Error("L-1 missing from results")
	}
}

func TestBuildPromptDeterministic(t *testing.T) {
	product := &models.Product{
		Name:     "Sentinel Cam",
		Model:    "SC-200",
		Category: "Security Camera",
		Features: []string{"Night vision", "Motion alerts", "Siren", "Two-way audio"},
	}

	first := BuildPrompt(product)
	second := BuildPrompt(product)

	if first != second {
		t.Error("prompt should be stable for the same product")
	}

	if !strings.Contains(first, "Sentinel Cam") {
		t.Error("prompt missing product name")
	}

	// Only the top three features are emphasized.
	if !strings.Contains(first, "emphasizing Night vision, Motion alerts, Siren") {
		t.Errorf("prompt features wrong: %s", first)
	}

	if strings.Contains(first, "Two-way audio") {
		t.Error("prompt should cap emphasized features at three")
	}

	if !strings.Contains(first, "professional product photography") {
		t.Error("prompt missing style suffix")
	}
}

func TestBuildPromptGenericCategory(t *testing.T) {
	product := &models.Product{Name: "Mystery Box", Model: "MB-1", Category: "Gadgets"}

	prompt := BuildPrompt(product)

	if !strings.Contains(prompt, "Mystery Box") {
		t.Error("generic prompt missing product name")
	}

	if strings.Contains(prompt, "emphasizing") {
		t.Error("featureless product should not emphasize anything")
	}
}
