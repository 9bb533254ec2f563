package extract

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	vision "cloud.google.com/go/vision/v2/apiv1"
	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"github.com/tmc/langchaingo/documentloaders"

	"snapquiz/models"
)

// Service extracts plain text from uploaded documents, either directly from
// the PDF text layer or via OCR for scanned material.
type Service struct {
	visionClient *vision.ImageAnnotatorClient
	languages    []string
}

func NewService(ctx context.Context, ocrLanguages []string) (*Service, error) {
	client, err := vision.NewImageAnnotatorClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create vision client: %w", err)
	}

	return &Service{
		visionClient: client,
		languages:    ocrLanguages,
	}, nil
}

// ExtractPDFText pulls the embedded text layer out of a PDF, page by page.
func (s *Service) ExtractPDFText(ctx context.Context, data []byte) (string, error) {
	loader := documentloaders.NewPDF(bytes.NewReader(data), int64(len(data)))

	docs, err := loader.Load(ctx)
	if err != nil {
		log.Printf("[ERROR] PDF text extraction failed: %v", err)
		return "", fmt.Errorf("%w: %v", models.ErrExtractionFailure, err)
	}

	var pages []string
	for _, doc := range docs {
		if page := strings.TrimSpace(doc.PageContent); page != "" {
			pages = append(pages, page)
		}
	}

	text := strings.Join(pages, "\n")
	if text == "" {
		return "", fmt.Errorf("%w: document contains no extractable text", models.ErrExtractionFailure)
	}

	log.Printf("[INFO] Extracted %d chars of text from %d pages", len(text), len(docs))
	return text, nil
}

// OCRText runs document text detection over an uploaded image or scanned
// page, with the configured language hints.
func (s *Service) OCRText(ctx context.Context, data []byte) (string, error) {
	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: data},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
				ImageContext: &visionpb.ImageContext{LanguageHints: s.languages},
			},
		},
	}

	resp, err := s.visionClient.BatchAnnotateImages(ctx, req)
	if err != nil {
		log.Printf("[ERROR] OCR request failed: %v", err)
		return "", fmt.Errorf("%w: %v", models.ErrExtractionFailure, err)
	}
	if len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", fmt.Errorf("%w: empty OCR response", models.ErrExtractionFailure)
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		return "", fmt.Errorf("%w: %s", models.ErrExtractionFailure, r0.Error.Message)
	}

	annotation := r0.FullTextAnnotation
	if annotation == nil || strings.TrimSpace(annotation.Text) == "" {
		return "", fmt.Errorf("%w: OCR produced no usable text", models.ErrExtractionFailure)
	}

	log.Printf("[INFO] OCR produced %d chars of text", len(annotation.Text))
	return annotation.Text, nil
}

func (s *Service) Close() error {
	return s.visionClient.Close()
}
