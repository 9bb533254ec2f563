package quiz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"snapquiz/models"
)

func intPtr(v int) *int { return &v }

func makeTopic(n int) models.TopicPayload {
	return models.TopicPayload{
		TopicID:  fmt.Sprintf("topic%d-240702-19315%d", n, n),
		Category: fmt.Sprintf("Category %d", n),
		Questions: []models.QuestionPayload{
			{
				QuizID:        fmt.Sprintf("topic%d-mc-240702-19315%d", n, n),
				Type:          "multiple",
				Question:      "Which one?",
				Options:       []string{"a", "b", "c", "d"},
				CorrectAnswer: intPtr(2),
				Explanation:   "Because.",
			},
			{
				QuizID:        fmt.Sprintf("topic%d-ox-240702-19315%d", n, n),
				Type:          "ox",
				Question:      "Is it true?",
				Options:       []string{"O", "X"},
				CorrectAnswer: intPtr(0),
				Explanation:   "It is.",
			},
		},
	}
}

func TestDeriveProducesTwoRecordsPerTopic(t *testing.T) {
	for _, topicCount := range []int{1, 3, 6} {
		payload := &models.GenerationPayload{}
		for i := 0; i < topicCount; i++ {
			payload.Topics = append(payload.Topics, makeTopic(i))
		}

		quizzes, err := Derive(payload, "user-1")
		if err != nil {
			t.Fatalf("Derive failed for %d topics: %v", topicCount, err)
		}

		if len(quizzes) != 2*topicCount {
			t.Errorf("Derive produced %d records for %d topics, expected %d", len(quizzes), topicCount, 2*topicCount)
		}

		for _, quiz := range quizzes {
			if quiz.QuizStatus != models.StatusPending {
				t.Errorf("quiz %s has quiz_status %q, expected pending", quiz.QuizID, quiz.QuizStatus)
			}
			if quiz.TopicStatus != models.StatusPending {
				t.Errorf("quiz %s has topic_status %q, expected pending", quiz.QuizID, quiz.TopicStatus)
			}
			if quiz.UserID != "user-1" {
				t.Errorf("quiz %s has user_id %q, expected user-1", quiz.QuizID, quiz.UserID)
			}
		}
	}
}

func TestDerivePreservesOrder(t *testing.T) {
	payload := &models.GenerationPayload{
		Topics: []models.TopicPayload{makeTopic(0), makeTopic(1)},
	}

	quizzes, err := Derive(payload, "user-1")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	expected := []string{
		"topic0-mc-240702-193150",
		"topic0-ox-240702-193150",
		"topic1-mc-240702-193151",
		"topic1-ox-240702-193151",
	}

	for i, quizID := range expected {
		if quizzes[i].QuizID != quizID {
			t.Errorf("record %d is %s, expected %s", i, quizzes[i].QuizID, quizID)
		}
	}
}

func TestDeriveDenormalizesTopicFields(t *testing.T) {
	payload := &models.GenerationPayload{Topics: []models.TopicPayload{makeTopic(0)}}

	quizzes, err := Derive(payload, "user-1")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	for _, quiz := range quizzes {
		if quiz.TopicID != "topic0-240702-193150" {
			t.Errorf("quiz %s has topic_id %q", quiz.QuizID, quiz.TopicID)
		}
		if quiz.Category != "Category 0" {
			t.Errorf("quiz %s has category %q", quiz.QuizID, quiz.Category)
		}
	}

	if quizzes[0].QuizType != models.QuizTypeMultipleChoice {
		t.Errorf("first record is %q, expected multiple_choice", quizzes[0].QuizType)
	}
	if quizzes[1].QuizType != models.QuizTypeOX {
		t.Errorf("second record is %q, expected ox", quizzes[1].QuizType)
	}
}

func TestDeriveRejectsBadShapes(t *testing.T) {
	tests := []struct {
		name     string
		question models.QuestionPayload
	}{
		{
			name: "multiple choice with three options and out of range answer",
			question: models.QuestionPayload{
				QuizID: "bad-mc", Type: "multiple", Question: "?",
				Options: []string{"a", "b", "c"}, CorrectAnswer: intPtr(5), Explanation: "e",
			},
		},
		{
			name: "multiple choice answer out of range",
			question: models.QuestionPayload{
				QuizID: "bad-mc2", Type: "multiple", Question: "?",
				Options: []string{"a", "b", "c", "d"}, CorrectAnswer: intPtr(4), Explanation: "e",
			},
		},
		{
			name: "ox with wrong options",
			question: models.QuestionPayload{
				QuizID: "bad-ox", Type: "ox", Question: "?",
				Options: []string{"yes", "no"}, CorrectAnswer: intPtr(0), Explanation: "e",
			},
		},
		{
			name: "ox answer out of range",
			question: models.QuestionPayload{
				QuizID: "bad-ox2", Type: "ox", Question: "?",
				Options: []string{"O", "X"}, CorrectAnswer: intPtr(2), Explanation: "e",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := &models.GenerationPayload{
				Topics: []models.TopicPayload{
					{
						TopicID:   "bad-240702-193150",
						Category:  "Bad",
						Questions: []models.QuestionPayload{tt.question},
					},
				},
			}

			_, err := Derive(payload, "user-1")
			if !errors.Is(err, models.ErrMalformedResponse) {
				t.Errorf("Derive error = %v, expected ErrMalformedResponse", err)
			}
		})
	}
}

func TestDeriveDisambiguatesDuplicateIDs(t *testing.T) {
	topic := makeTopic(0)
	topic.Questions[1].QuizID = topic.Questions[0].QuizID
	topic.Questions[1].Type = "multiple"
	topic.Questions[1].Options = []string{"a", "b", "c", "d"}
	topic.Questions[1].CorrectAnswer = intPtr(0)
	payload := &models.GenerationPayload{Topics: []models.TopicPayload{topic}}

	quizzes, err := Derive(payload, "user-1")
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}

	if quizzes[0].QuizID == quizzes[1].QuizID {
		t.Errorf("duplicate quiz_id %q survived derivation", quizzes[0].QuizID)
	}
	if !strings.HasPrefix(quizzes[1].QuizID, quizzes[0].QuizID) {
		t.Errorf("disambiguated id %q does not extend the original %q", quizzes[1].QuizID, quizzes[0].QuizID)
	}
}
