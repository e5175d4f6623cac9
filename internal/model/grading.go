package model

import (
	"encoding/json"
	"time"
)

// GradeRequest is the payload sent to the grading engine. Threshold and
// Tie are bubble-detection tuning values passed through opaquely.
type GradeRequest struct {
	SessionID  string          `json:"session_id"`
	FileName   string          `json:"file_name"`
	AnswerName string          `json:"answer_name"`
	Threshold  float64         `json:"T"`
	Tie        float64         `json:"tie"`
	AnswerKey  json.RawMessage `json:"answer_key"`
}

// GradeResponse is the engine's grading result. Produced once per attempt,
// never mutated, only superseded by the next attempt.
type GradeResponse struct {
	Log           string         `json:"log"`
	CSVURL        string         `json:"csv_url,omitempty"`
	JSONURL       string         `json:"json_url,omitempty"`
	ZipURL        string         `json:"zip_url,omitempty"`
	NameIssues    *NameIssues    `json:"name_issues,omitempty"`
	GradingReport *GradingReport `json:"grading_report,omitempty"`
}

// NameIssues lists OCR name-recognition ambiguities that need a human
// correction before final results are released.
type NameIssues struct {
	IssuesFound int         `json:"issues_found"`
	Issues      []NameIssue `json:"issues,omitempty"`
}

// NameIssue is one file whose recognized student name looked wrong.
type NameIssue struct {
	FileName       string   `json:"file_name"`
	RecognizedName string   `json:"recognized_name"`
	Candidates     []string `json:"candidates,omitempty"`
}

// NameCorrection is a human-confirmed replacement for a recognized name.
// RecognizedName is kept so unchanged entries can be filtered out before
// submission.
type NameCorrection struct {
	FileName       string `json:"file_name"`
	RecognizedName string `json:"recognized_name,omitempty"`
	CorrectedName  string `json:"corrected_name"`
}

// GradingReport is the engine's page coverage summary.
type GradingReport struct {
	TotalPages   int `json:"total_pages"`
	GradedPages  int `json:"graded_pages"`
	SkippedPages int `json:"skipped_pages,omitempty"`
}

// GradeRecord is one stored grading attempt for a session.
type GradeRecord struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	SessionID string        `json:"sessionId" bson:"sessionId"`
	FileName  string        `json:"fileName" bson:"fileName"`
	Response  GradeResponse `json:"response" bson:"response"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
}
