package quiz

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"snapquiz/db"
	"snapquiz/models"
	"snapquiz/services"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// Service runs the quiz synthesis pipeline: normalize -> prompt (against the
// cached taxonomy) -> model call -> parse -> derive -> conditional persist.
type Service struct {
	taxonomyService *services.TaxonomyService
	repo            db.QuizRepository
	llm             llms.Model
	now             func() time.Time
}

type GenerateResult struct {
	Quizzes []*models.Quiz
	Payload *models.GenerationPayload
}

func NewService(ctx context.Context, taxonomyService *services.TaxonomyService, repo db.QuizRepository, apiKey string) (*Service, error) {
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel("gemini-2.0-flash"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Service{
		taxonomyService: taxonomyService,
		repo:            repo,
		llm:             llm,
		now:             time.Now,
	}, nil
}

// GenerateFromText turns already-extracted text into derived quiz records.
// The batch is persisted only when a user is present and derivation produced
// records; anonymous callers still get the transient result back.
func (s *Service) GenerateFromText(ctx context.Context, rawText, userID string) (*GenerateResult, error) {
	text := Normalize(rawText)
	if text == "" {
		return nil, fmt.Errorf("%w: no text provided", models.ErrInvalidInput)
	}

	taxonomy, err := s.taxonomyService.GetTaxonomy()
	if err != nil {
		return nil, err
	}

	prompt := BuildPrompt(text, taxonomy, s.now())

	log.Printf("[INFO] Calling model for quiz generation (%d chars of text)", len(text))
	completion, err := llms.GenerateFromSinglePrompt(ctx, s.llm, prompt, llms.WithTemperature(0.7))
	if err != nil {
		log.Printf("[ERROR] Model call failed: %v", err)
		return nil, fmt.Errorf("failed to generate model response: %w", err)
	}

	payload, err := ParseResponse(completion)
	if err != nil {
		log.Printf("[ERROR] Failed to parse model response: %v", err)
		return nil, err
	}

	quizzes, err := Derive(payload, userID)
	if err != nil {
		log.Printf("[ERROR] Failed to derive quiz records: %v", err)
		return nil, err
	}

	warnUnknownPrefixes(payload, taxonomy)

	if userID != "" && len(quizzes) > 0 {
		if err := s.repo.InsertBatch(quizzes); err != nil {
			log.Printf("[ERROR] Failed to persist quiz batch: %v", err)
			return nil, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
		}
		log.Printf("[INFO] Persisted %d quiz records for user %s", len(quizzes), userID)
	} else {
		log.Printf("[INFO] Skipping persistence (anonymous or empty batch, %d records)", len(quizzes))
	}

	return &GenerateResult{Quizzes: quizzes, Payload: payload}, nil
}

// warnUnknownPrefixes flags topic ids whose category token is not in the
// taxonomy vocabulary. The model occasionally drifts off the provided list;
// that is logged with the closest known prefix but does not fail the batch.
func warnUnknownPrefixes(payload *models.GenerationPayload, taxonomy *services.Taxonomy) {
	for _, topic := range payload.Topics {
		prefix := strings.SplitN(topic.TopicID, "-", 2)[0]
		if lo.Contains(taxonomy.Prefixes, prefix) {
			continue
		}

		ranks := fuzzy.RankFindFold(prefix, taxonomy.Prefixes)
		if len(ranks) > 0 {
			sort.Sort(ranks)
			log.Printf("[INFO] Topic %s uses unknown category prefix %q (closest known: %q)",
				topic.TopicID, prefix, ranks[0].Target)
		} else {
			log.Printf("[INFO] Topic %s uses unknown category prefix %q", topic.TopicID, prefix)
		}
	}
}
