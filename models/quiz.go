package models

import "time"

type QuizType string

const (
	QuizTypeMultipleChoice QuizType = "multiple_choice"
	QuizTypeOX             QuizType = "ox"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusDone    Status = "done"
)

const (
	ResultPass = "pass"
	ResultFail = "fail"
)

// Quiz is the persisted question record. The JSON keys double as the column
// names of the quizzes table, so existing stored data stays readable.
type Quiz struct {
	QuizID        string     `json:"quiz_id"`
	TopicID       string     `json:"topic_id"`
	UserID        string     `json:"user_id"`
	Category      string     `json:"category"`
	QuizType      QuizType   `json:"quiz_type"`
	Question      string     `json:"question"`
	Options       []string   `json:"options"`
	CorrectAnswer int        `json:"correct_answer"`
	Explanation   string     `json:"explanation"`
	QuizStatus    Status     `json:"quiz_status"`
	TopicStatus   Status     `json:"topic_status"`
	YourChoice    *string    `json:"your_choice,omitempty"`
	Result        *string    `json:"result,omitempty"`
	ExamDate      *time.Time `json:"exam_date,omitempty"`
}

// TopicRef is one row of the reference taxonomy used to steer AI
// categorization.
type TopicRef struct {
	ID          string `json:"id"`
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// CategoryGroup is the shape returned by the pending/incorrect listing
// endpoints: quizzes of one category bundled together.
type CategoryGroup struct {
	Category  string  `json:"category"`
	TopicID   string  `json:"topic_id"`
	Questions []*Quiz `json:"questions"`
}
