package quiz

import (
	"fmt"
	"log"

	"snapquiz/models"

	"github.com/google/uuid"
)

// Derive flattens a generation payload into persistable quiz records: one
// record per question, in topic order then question order. Topic id and
// category are denormalized onto each record, the user is stamped, and both
// status fields start out pending. Shape violations (wrong option count,
// answer index out of range) fail the whole batch with ErrMalformedResponse.
func Derive(payload *models.GenerationPayload, userID string) ([]*models.Quiz, error) {
	quizzes := make([]*models.Quiz, 0, 2*len(payload.Topics))
	seen := make(map[string]bool)

	for _, topic := range payload.Topics {
		for _, question := range topic.Questions {
			quizType := models.QuizTypeOX
			if question.Type == "multiple" {
				quizType = models.QuizTypeMultipleChoice
			}

			if err := validateShape(quizType, &question); err != nil {
				return nil, err
			}

			quizID := question.QuizID
			if seen[quizID] {
				// The model builds ids from a per-second timestamp, so two
				// questions generated in the same second can collide.
				quizID = fmt.Sprintf("%s-%s", quizID, uuid.NewString()[:8])
				log.Printf("[INFO] Disambiguated duplicate quiz_id %s as %s", question.QuizID, quizID)
			}
			seen[quizID] = true

			quizzes = append(quizzes, &models.Quiz{
				QuizID:        quizID,
				TopicID:       topic.TopicID,
				UserID:        userID,
				Category:      topic.Category,
				QuizType:      quizType,
				Question:      question.Question,
				Options:       question.Options,
				CorrectAnswer: *question.CorrectAnswer,
				Explanation:   question.Explanation,
				QuizStatus:    models.StatusPending,
				TopicStatus:   models.StatusPending,
			})
		}
	}

	return quizzes, nil
}

func validateShape(quizType models.QuizType, question *models.QuestionPayload) error {
	answer := *question.CorrectAnswer

	switch quizType {
	case models.QuizTypeMultipleChoice:
		if len(question.Options) != 4 {
			return fmt.Errorf("%w: multiple choice question %q has %d options, want 4",
				models.ErrMalformedResponse, question.QuizID, len(question.Options))
		}
		if answer < 0 || answer > 3 {
			return fmt.Errorf("%w: multiple choice question %q has correct_answer %d outside [0,3]",
				models.ErrMalformedResponse, question.QuizID, answer)
		}
	case models.QuizTypeOX:
		if len(question.Options) != 2 || question.Options[0] != "O" || question.Options[1] != "X" {
			return fmt.Errorf("%w: ox question %q must have options [\"O\",\"X\"]",
				models.ErrMalformedResponse, question.QuizID)
		}
		if answer < 0 || answer > 1 {
			return fmt.Errorf("%w: ox question %q has correct_answer %d outside [0,1]",
				models.ErrMalformedResponse, question.QuizID, answer)
		}
	}

	return nil
}
