package services

import (
	"fmt"
	"log"
	"time"

	"snapquiz/db"
	"snapquiz/models"
)

// maxIdentifierLength guards quiz/topic IDs before any store round-trip.
const maxIdentifierLength = 50

type SubmissionService struct {
	repo db.QuizRepository
	now  func() time.Time
}

func NewSubmissionService(repo db.QuizRepository) *SubmissionService {
	return &SubmissionService{
		repo: repo,
		now:  time.Now,
	}
}

// Submit records a learner's answer: the quiz itself moves to done with the
// choice, result and exam date, and every quiz of the same topic gets its
// topic_status set to done when the answered question was the topic's last
// one, pending otherwise. Both updates are scoped to the submitting user.
func (s *SubmissionService) Submit(userID string, req *models.SubmitRequest) error {
	if err := s.validateSubmitRequest(req); err != nil {
		log.Printf("[ERROR] Submission validation failed: %v", err)
		return err
	}

	if err := s.repo.UpdateQuizResult(userID, req.QuizID, req.UserChoice, req.Result, s.now()); err != nil {
		log.Printf("[ERROR] Failed to update quiz %s: %v", req.QuizID, err)
		return fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}

	topicStatus := models.StatusPending
	if req.QuestionIndex == req.TotalIndex {
		topicStatus = models.StatusDone
	}

	if err := s.repo.UpdateTopicStatus(userID, req.TopicID, topicStatus); err != nil {
		log.Printf("[ERROR] Failed to update topic %s: %v", req.TopicID, err)
		return fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}

	log.Printf("[INFO] Recorded submission for quiz %s (topic %s -> %s)", req.QuizID, req.TopicID, topicStatus)
	return nil
}

func (s *SubmissionService) validateSubmitRequest(req *models.SubmitRequest) error {
	if req == nil {
		return fmt.Errorf("%w: no data provided", models.ErrInvalidInput)
	}
	if req.QuizID == "" || len(req.QuizID) > maxIdentifierLength {
		return fmt.Errorf("%w: invalid quiz_id", models.ErrInvalidInput)
	}
	if req.TopicID == "" || len(req.TopicID) > maxIdentifierLength {
		return fmt.Errorf("%w: invalid topic_id", models.ErrInvalidInput)
	}
	return nil
}
