package vision

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ObjectReader loads the uploaded image bytes.
type ObjectReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

const extractPrompt = `You are reading a photo of a driver's licence.
Return every line of printed text as JSON only, no prose:
{"blocks":[{"id":"1","parent_id":"","text":"..."}]}
Use one block per visual line, in reading order, top to bottom.`

const detectPrompt = `Identify the main objects in this photo.
Return JSON only, no prose: {"labels":[{"name":"Car","confidence":97.5}]}
Confidence is a percentage between 0 and 100. Prefer these label names when they apply: %s.`

// Gemini implements TextExtractor and ObjectDetector with a multimodal model.
type Gemini struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	objects ObjectReader
	logger  *slog.Logger
}

func NewGemini(ctx context.Context, apiKey, modelName string, objects ObjectReader, logger *slog.Logger) (*Gemini, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("genai client init failed: %w", err)
	}
	model := client.GenerativeModel(modelName)
	model.ResponseMIMEType = "application/json"
	model.SetTemperature(0)
	return &Gemini{client: client, model: model, objects: objects, logger: logger}, nil
}

func (g *Gemini) Close() error {
	return g.client.Close()
}

func (g *Gemini) ExtractDocumentText(ctx context.Context, key string) ([]TextBlock, error) {
	var out struct {
		Blocks []TextBlock `json:"blocks"`
	}
	if err := g.ask(ctx, key, extractPrompt, &out); err != nil {
		return nil, err
	}
	return out.Blocks, nil
}

func (g *Gemini) DetectLabels(ctx context.Context, key string, candidates []string) ([]Label, error) {
	var out struct {
		Labels []Label `json:"labels"`
	}
	if err := g.ask(ctx, key, fmt.Sprintf(detectPrompt, strings.Join(candidates, ", ")), &out); err != nil {
		return nil, err
	}
	return out.Labels, nil
}

func (g *Gemini) ask(ctx context.Context, key, prompt string, dst any) error {
	data, err := g.objects.Get(ctx, key)
	if err != nil {
		return err
	}
	resp, err := g.model.GenerateContent(ctx,
		genai.Text(prompt),
		genai.Blob{MIMEType: http.DetectContentType(data), Data: data},
	)
	if err != nil {
		return fmt.Errorf("generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return errors.New("no content returned from model")
	}
	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return fmt.Errorf("response part is not text, received %T", resp.Candidates[0].Content.Parts[0])
	}
	if err := decodeModelJSON(string(text), dst); err != nil {
		if g.logger != nil {
			g.logger.WarnContext(ctx, "unparseable model response", "key", key, "error", err)
		}
		return err
	}
	return nil
}

// decodeModelJSON tolerates the ```json fences models sometimes add.
func decodeModelJSON(raw string, dst any) error {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if err := json.Unmarshal([]byte(s), dst); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}
