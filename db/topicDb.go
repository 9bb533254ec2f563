package db

import (
	"database/sql"
	"fmt"

	"snapquiz/models"

	_ "github.com/lib/pq"
)

type TopicRepository interface {
	FetchTopics() ([]*models.TopicRef, error)
	Close() error
}

type PostgresTopicRepository struct {
	db *sql.DB
}

func NewPostgresTopicRepository(databaseURL string) (*PostgresTopicRepository, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresTopicRepository{db: db}, nil
}

func (r *PostgresTopicRepository) FetchTopics() ([]*models.TopicRef, error) {
	query := `
		SELECT id, topic, description
		FROM topics
		ORDER BY id`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query topics: %w", err)
	}
	defer rows.Close()

	topics := make([]*models.TopicRef, 0)
	for rows.Next() {
		topic := &models.TopicRef{}
		if err := rows.Scan(&topic.ID, &topic.Topic, &topic.Description); err != nil {
			return nil, fmt.Errorf("failed to scan topic: %w", err)
		}
		topics = append(topics, topic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over topics: %w", err)
	}

	return topics, nil
}

func (r *PostgresTopicRepository) Close() error {
	return r.db.Close()
}
