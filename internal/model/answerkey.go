package model

import "time"

// AnswerKeyQuestion is one question's correct answer. Choice questions
// carry CorrectChoice; short-answer questions carry CorrectText.
type AnswerKeyQuestion struct {
	Number        int               `json:"number" bson:"number"`
	CorrectChoice string            `json:"correctChoice,omitempty" bson:"correctChoice,omitempty"`
	CorrectText   string            `json:"correctText,omitempty" bson:"correctText,omitempty"`
	Points        float64           `json:"points,omitempty" bson:"points,omitempty"`
	Metadata      map[string]string `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// AnswerKey is a stored answer key, looked up by exam metadata
// (year, round, subject and so on) or searched by subject code.
type AnswerKey struct {
	ID          string              `json:"id" bson:"_id,omitempty"`
	Name        string              `json:"name" bson:"name"`
	SubjectCode string              `json:"subjectCode,omitempty" bson:"subjectCode,omitempty"`
	Metadata    map[string]string   `json:"metadata,omitempty" bson:"metadata,omitempty"`
	Questions   []AnswerKeyQuestion `json:"questions" bson:"questions"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}
