package models

type AnalyzeTextRequest struct {
	Text string `json:"text"`
}

type SubmitRequest struct {
	QuizID        string `json:"quizId"`
	TopicID       string `json:"topicId"`
	UserChoice    string `json:"userChoice"`
	Result        string `json:"result"`
	QuestionIndex int    `json:"questionIndex"`
	TotalIndex    int    `json:"totalIndex"`
}

type AnalyzeResponse struct {
	Success       bool               `json:"success"`
	Result        *GenerationPayload `json:"result"`
	TotalQuestion int                `json:"total_question"`
}

type PendingListResponse struct {
	Success      bool             `json:"success"`
	Result       []*CategoryGroup `json:"result"`
	PendingCount int              `json:"pending_count"`
}

type IncorrectListResponse struct {
	Success        bool             `json:"success"`
	Result         []*CategoryGroup `json:"result"`
	IncorrectCount int              `json:"incorrect_count"`
}

type PendingCountResponse struct {
	Success      bool `json:"success"`
	PendingCount int  `json:"pending_count"`
}

type IncorrectCountResponse struct {
	Success        bool `json:"success"`
	IncorrectCount int  `json:"incorrect_count"`
}

type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
