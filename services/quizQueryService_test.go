package services

import (
	"errors"
	"testing"

	"snapquiz/models"
)

func storedQuiz(quizID, topicID, category string) *models.Quiz {
	return &models.Quiz{
		QuizID:      quizID,
		TopicID:     topicID,
		Category:    category,
		QuizType:    models.QuizTypeOX,
		QuizStatus:  models.StatusPending,
		TopicStatus: models.StatusPending,
	}
}

func TestPendingByCategoryGroupsInFirstSeenOrder(t *testing.T) {
	repo := &fakeQuizRepo{
		quizzes: []*models.Quiz{
			storedQuiz("tech-mc-1", "tech-1", "Technology"),
			storedQuiz("tech-ox-1", "tech-1", "Technology"),
			storedQuiz("hist-mc-1", "hist-1", "History"),
			storedQuiz("hist-ox-1", "hist-1", "History"),
		},
	}
	service := NewQuizQueryService(repo)

	groups, count, err := service.PendingByCategory("user-1")
	if err != nil {
		t.Fatalf("PendingByCategory failed: %v", err)
	}

	if count != 4 {
		t.Errorf("count = %d, expected 4", count)
	}
	if len(groups) != 2 {
		t.Fatalf("got %d groups, expected 2", len(groups))
	}
	if groups[0].Category != "Technology" || groups[1].Category != "History" {
		t.Errorf("group order = [%s, %s], expected [Technology, History]", groups[0].Category, groups[1].Category)
	}
	if len(groups[0].Questions) != 2 {
		t.Errorf("Technology group has %d questions, expected 2", len(groups[0].Questions))
	}
	if groups[0].TopicID != "tech-1" {
		t.Errorf("Technology group topic_id = %q, expected tech-1", groups[0].TopicID)
	}
}

func TestPendingByCategoryEmptyResult(t *testing.T) {
	service := NewQuizQueryService(&fakeQuizRepo{})

	groups, count, err := service.PendingByCategory("user-1")
	if err != nil {
		t.Fatalf("PendingByCategory failed: %v", err)
	}
	if count != 0 || len(groups) != 0 {
		t.Errorf("expected empty result, got %d groups and count %d", len(groups), count)
	}
}

func TestQueryServiceWrapsStoreFailure(t *testing.T) {
	service := NewQuizQueryService(&fakeQuizRepo{err: errors.New("connection reset")})

	if _, _, err := service.IncorrectByCategory("user-1"); !errors.Is(err, models.ErrStoreFailure) {
		t.Errorf("IncorrectByCategory error = %v, expected ErrStoreFailure", err)
	}
	if _, err := service.CountPending("user-1"); !errors.Is(err, models.ErrStoreFailure) {
		t.Errorf("CountPending error = %v, expected ErrStoreFailure", err)
	}
}
