package services

import (
	"fmt"
	"log"

	"snapquiz/db"
	"snapquiz/models"

	"github.com/samber/lo"
)

type QuizQueryService struct {
	repo db.QuizRepository
}

func NewQuizQueryService(repo db.QuizRepository) *QuizQueryService {
	return &QuizQueryService{repo: repo}
}

// PendingByCategory returns the user's unanswered quizzes grouped by
// category, plus the flat count.
func (s *QuizQueryService) PendingByCategory(userID string) ([]*models.CategoryGroup, int, error) {
	quizzes, err := s.repo.QueryByUser(userID, db.QuizFilter{QuizStatus: models.StatusPending})
	if err != nil {
		log.Printf("[ERROR] Failed to query pending quizzes: %v", err)
		return nil, 0, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}

	return groupByCategory(quizzes), len(quizzes), nil
}

// IncorrectByCategory returns the user's failed quizzes grouped by category,
// plus the flat count.
func (s *QuizQueryService) IncorrectByCategory(userID string) ([]*models.CategoryGroup, int, error) {
	quizzes, err := s.repo.QueryByUser(userID, db.QuizFilter{Result: models.ResultFail})
	if err != nil {
		log.Printf("[ERROR] Failed to query incorrect quizzes: %v", err)
		return nil, 0, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}

	return groupByCategory(quizzes), len(quizzes), nil
}

func (s *QuizQueryService) CountPending(userID string) (int, error) {
	count, err := s.repo.CountByUser(userID, db.QuizFilter{QuizStatus: models.StatusPending})
	if err != nil {
		log.Printf("[ERROR] Failed to count pending quizzes: %v", err)
		return 0, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return count, nil
}

func (s *QuizQueryService) CountIncorrect(userID string) (int, error) {
	count, err := s.repo.CountByUser(userID, db.QuizFilter{Result: models.ResultFail})
	if err != nil {
		log.Printf("[ERROR] Failed to count incorrect quizzes: %v", err)
		return 0, fmt.Errorf("%w: %v", models.ErrStoreFailure, err)
	}
	return count, nil
}

// groupByCategory bundles quizzes under their category, preserving first-seen
// category order so consumers get a stable arrangement.
func groupByCategory(quizzes []*models.Quiz) []*models.CategoryGroup {
	categories := lo.Uniq(lo.Map(quizzes, func(q *models.Quiz, _ int) string {
		return q.Category
	}))

	groups := make([]*models.CategoryGroup, 0, len(categories))
	for _, category := range categories {
		questions := lo.Filter(quizzes, func(q *models.Quiz, _ int) bool {
			return q.Category == category
		})
		groups = append(groups, &models.CategoryGroup{
			Category:  category,
			TopicID:   questions[0].TopicID,
			Questions: questions,
		})
	}

	return groups
}
