package db

import (
	"database/sql"
	"fmt"
	"time"

	"snapquiz/models"

	"github.com/lib/pq"
)

// QuizFilter narrows QueryByUser/CountByUser. Zero values mean "no
// constraint" on that column.
type QuizFilter struct {
	QuizStatus models.Status
	Result     string
}

type QuizRepository interface {
	InsertBatch(quizzes []*models.Quiz) error
	QueryByUser(userID string, filter QuizFilter) ([]*models.Quiz, error)
	CountByUser(userID string, filter QuizFilter) (int, error)
	UpdateQuizResult(userID, quizID, yourChoice, result string, examDate time.Time) error
	UpdateTopicStatus(userID, topicID string, status models.Status) error
	Close() error
}

type PostgresQuizRepository struct {
	db *sql.DB
}

func NewPostgresQuizRepository(databaseURL string) (*PostgresQuizRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresQuizRepository{db: db}, nil
}

func (r *PostgresQuizRepository) InsertBatch(quizzes []*models.Quiz) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO quizzes
			(quiz_id, topic_id, user_id, category, quiz_type, question,
			 options, correct_answer, explanation, quiz_status, topic_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, quiz := range quizzes {
		_, err := stmt.Exec(
			quiz.QuizID, quiz.TopicID, quiz.UserID, quiz.Category,
			string(quiz.QuizType), quiz.Question, pq.Array(quiz.Options),
			quiz.CorrectAnswer, quiz.Explanation,
			string(quiz.QuizStatus), string(quiz.TopicStatus),
		)
		if err != nil {
			return fmt.Errorf("failed to insert quiz %s: %w", quiz.QuizID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit quiz batch: %w", err)
	}

	return nil
}

func (r *PostgresQuizRepository) QueryByUser(userID string, filter QuizFilter) ([]*models.Quiz, error) {
	query := `
		SELECT quiz_id, topic_id, user_id, category, quiz_type, question,
		       options, correct_answer, explanation, quiz_status, topic_status,
		       your_choice, result, exam_date
		FROM quizzes
		WHERE user_id = $1`
	args := []any{userID}

	if filter.QuizStatus != "" {
		args = append(args, string(filter.QuizStatus))
		query += fmt.Sprintf(" AND quiz_status = $%d", len(args))
	}
	if filter.Result != "" {
		args = append(args, filter.Result)
		query += fmt.Sprintf(" AND result = $%d", len(args))
	}
	query += " ORDER BY topic_id, quiz_id"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]*models.Quiz, 0)
	for rows.Next() {
		quiz := &models.Quiz{}
		var quizType, quizStatus, topicStatus string
		err := rows.Scan(
			&quiz.QuizID, &quiz.TopicID, &quiz.UserID, &quiz.Category,
			&quizType, &quiz.Question, pq.Array(&quiz.Options),
			&quiz.CorrectAnswer, &quiz.Explanation, &quizStatus, &topicStatus,
			&quiz.YourChoice, &quiz.Result, &quiz.ExamDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quiz: %w", err)
		}
		quiz.QuizType = models.QuizType(quizType)
		quiz.QuizStatus = models.Status(quizStatus)
		quiz.TopicStatus = models.Status(topicStatus)
		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over quizzes: %w", err)
	}

	return quizzes, nil
}

func (r *PostgresQuizRepository) CountByUser(userID string, filter QuizFilter) (int, error) {
	query := "SELECT COUNT(*) FROM quizzes WHERE user_id = $1"
	args := []any{userID}

	if filter.QuizStatus != "" {
		args = append(args, string(filter.QuizStatus))
		query += fmt.Sprintf(" AND quiz_status = $%d", len(args))
	}
	if filter.Result != "" {
		args = append(args, filter.Result)
		query += fmt.Sprintf(" AND result = $%d", len(args))
	}

	var count int
	if err := r.db.QueryRow(query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count quizzes: %w", err)
	}

	return count, nil
}

func (r *PostgresQuizRepository) UpdateQuizResult(userID, quizID, yourChoice, result string, examDate time.Time) error {
	query := `
		UPDATE quizzes
		SET your_choice = $1, result = $2, quiz_status = $3, exam_date = $4
		WHERE user_id = $5 AND quiz_id = $6`

	_, err := r.db.Exec(query, yourChoice, result, string(models.StatusDone), examDate, userID, quizID)
	if err != nil {
		return fmt.Errorf("failed to update quiz result: %w", err)
	}

	return nil
}

func (r *PostgresQuizRepository) UpdateTopicStatus(userID, topicID string, status models.Status) error {
	query := `
		UPDATE quizzes
		SET topic_status = $1
		WHERE user_id = $2 AND topic_id = $3`

	_, err := r.db.Exec(query, string(status), userID, topicID)
	if err != nil {
		return fmt.Errorf("failed to update topic status: %w", err)
	}

	return nil
}

func (r *PostgresQuizRepository) Close() error {
	return r.db.Close()
}
