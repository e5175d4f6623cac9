package model

import "time"

// Session is the server-side handle for one uploaded document. The engine
// issues the id on upload; it is immutable for the document's lifetime. A
// new upload always creates a new session rather than mutating the old one,
// so stale in-flight requests against the old id are naturally ignored.
type Session struct {
	SessionID      string    `json:"sessionId" bson:"_id"`
	FileName       string    `json:"fileName" bson:"fileName"`
	TemplateName   string    `json:"templateName,omitempty" bson:"templateName,omitempty"`
	UserID         string    `json:"userId,omitempty" bson:"userId,omitempty"`
	PreviewURL     string    `json:"previewUrl,omitempty" bson:"previewUrl,omitempty"`
	CurrentPageNum int       `json:"currentPageNum" bson:"currentPageNum"`
	TotalPages     int       `json:"totalPages" bson:"totalPages"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// EmptySession is the no-session default state: page 1 of 1, nothing loaded.
func EmptySession() *Session {
	return &Session{CurrentPageNum: 1, TotalPages: 1}
}

// Active reports whether the session refers to an uploaded document.
func (s *Session) Active() bool {
	return s != nil && s.SessionID != ""
}
