package quiz

import (
	"encoding/json"
	"fmt"
	"strings"

	"snapquiz/models"
)

// responseEnvelope mirrors GenerationPayload with a pointer so a missing
// top-level "topics" key can be told apart from an empty list.
type responseEnvelope struct {
	Topics *[]models.TopicPayload `json:"topics"`
}

// ParseResponse strips a leading/trailing code fence from the model's raw
// output and decodes it into a generation payload. This is the trust
// boundary for model output: any structural problem, missing topics list or
// missing required field fails with ErrMalformedResponse.
func ParseResponse(raw string) (*models.GenerationPayload, error) {
	text := stripCodeFence(strings.TrimSpace(raw))

	var envelope responseEnvelope
	if err := json.Unmarshal([]byte(text), &envelope); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrMalformedResponse, err)
	}
	if envelope.Topics == nil {
		return nil, fmt.Errorf("%w: response has no topics list", models.ErrMalformedResponse)
	}

	payload := &models.GenerationPayload{Topics: *envelope.Topics}
	if err := validatePayload(payload); err != nil {
		return nil, err
	}

	return payload, nil
}

// stripCodeFence removes a triple-backtick wrapper, with or without a
// language tag, from around the document. Unfenced input passes through
// untouched.
func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	if i := strings.Index(text, "\n"); i >= 0 {
		text = text[i+1:]
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

func validatePayload(payload *models.GenerationPayload) error {
	for i, topic := range payload.Topics {
		if topic.TopicID == "" {
			return fmt.Errorf("%w: topic %d has no topic_id", models.ErrMalformedResponse, i)
		}
		if topic.Category == "" {
			return fmt.Errorf("%w: topic %q has no category", models.ErrMalformedResponse, topic.TopicID)
		}
		if len(topic.Questions) == 0 {
			return fmt.Errorf("%w: topic %q has no questions", models.ErrMalformedResponse, topic.TopicID)
		}

		for j, question := range topic.Questions {
			if err := validateQuestion(topic.TopicID, j, &question); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateQuestion(topicID string, index int, question *models.QuestionPayload) error {
	switch {
	case question.QuizID == "":
		return fmt.Errorf("%w: question %d of topic %q has no quiz_id", models.ErrMalformedResponse, index, topicID)
	case question.Type == "":
		return fmt.Errorf("%w: question %q has no type", models.ErrMalformedResponse, question.QuizID)
	case question.Question == "":
		return fmt.Errorf("%w: question %q has no question text", models.ErrMalformedResponse, question.QuizID)
	case len(question.Options) == 0:
		return fmt.Errorf("%w: question %q has no options", models.ErrMalformedResponse, question.QuizID)
	case question.CorrectAnswer == nil:
		return fmt.Errorf("%w: question %q has no correct_answer", models.ErrMalformedResponse, question.QuizID)
	case question.Explanation == "":
		return fmt.Errorf("%w: question %q has no explanation", models.ErrMalformedResponse, question.QuizID)
	}

	return nil
}
