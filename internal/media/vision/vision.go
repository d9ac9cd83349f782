// Package vision extracts text from identity documents and detects objects in
// vehicle photos.
package vision

import "context"

// TextBlock is one detected run of text. ParentID links words to their line.
type TextBlock struct {
	ID       string `json:"id"`
	ParentID string `json:"parent_id,omitempty"`
	Text     string `json:"text"`
}

// Label is a detected object with confidence in percent (0-100).
type Label struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

type TextExtractor interface {
	ExtractDocumentText(ctx context.Context, key string) ([]TextBlock, error)
}

type ObjectDetector interface {
	DetectLabels(ctx context.Context, key string, candidates []string) ([]Label, error)
}

// Static returns canned results; used in tests and when no model is configured.
type Static struct {
	Blocks []TextBlock
	Labels []Label
	Err    error
}

func (s *Static) ExtractDocumentText(context.Context, string) ([]TextBlock, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Blocks, nil
}

func (s *Static) DetectLabels(context.Context, string, []string) ([]Label, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Labels, nil
}
