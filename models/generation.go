package models

// GenerationPayload is the document the generative model is asked to return.
// It is untrusted input: every field the pipeline relies on is re-checked
// after decoding.
type GenerationPayload struct {
	Topics []TopicPayload `json:"topics"`
}

type TopicPayload struct {
	TopicID     string            `json:"topic_id"`
	Category    string            `json:"category"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []QuestionPayload `json:"questions"`
}

type QuestionPayload struct {
	QuizID        string   `json:"quiz_id"`
	Type          string   `json:"type"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}
