package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/seokkiyoon07-sys/omrsheet/internal/cache"
	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// LayoutStore is the slice of layout persistence the session orchestrator
// needs.
type LayoutStore interface {
	Adopt(ctx context.Context, sessionID string, page int, layout *model.Layout) error
	Load(ctx context.Context, sessionID string, page int) (*model.Layout, error)
	Purge(ctx context.Context, sessionID string) error
}

// SessionService owns the upload lifecycle: one session per uploaded
// document, created on successful ingestion and replaced wholesale by the
// next upload.
type SessionService struct {
	engine   Engine
	sessions cache.SessionCache
	layouts  LayoutStore
}

func NewSessionService(engine Engine, sessions cache.SessionCache, layouts LayoutStore) *SessionService {
	return &SessionService{
		engine:   engine,
		sessions: sessions,
		layouts:  layouts,
	}
}

// HandleFileUpload forwards the document to the engine and builds the
// session around the ingestion result. The page-1 preview is warmed in
// the background; its failure never fails the upload.
func (s *SessionService) HandleFileUpload(ctx context.Context, fileName string, file io.Reader, templatePath, userID string) (*model.Session, *model.Layout, error) {
	result, err := s.engine.Upload(ctx, fileName, file, templatePath, userID)
	if err != nil {
		return nil, nil, err
	}
	if result.SessionID == "" {
		return nil, nil, emptyResponse("업로드 응답에 세션 정보가 없습니다")
	}

	if result.FileName != "" {
		fileName = result.FileName
	}
	totalPages := result.NumPages
	if totalPages < 1 {
		totalPages = 1
	}

	session := &model.Session{
		SessionID:      result.SessionID,
		FileName:       fileName,
		TemplateName:   result.TemplateName,
		UserID:         userID,
		PreviewURL:     previewURL(result.SessionID, 1),
		CurrentPageNum: 1,
		TotalPages:     totalPages,
		CreatedAt:      time.Now(),
	}
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to store session: %w", err)
	}

	layout := model.DefaultLayout()
	if result.Layout != nil {
		layout = result.Layout.Clone()
		layout.Blocks = model.NormalizeBlocks(layout.Blocks)
		if err := s.layouts.Adopt(ctx, session.SessionID, 1, layout); err != nil {
			log.Printf("[Session] failed to adopt initial layout for %s: %v", session.SessionID, err)
		}
	}

	go s.warmPreview(session.SessionID)

	log.Printf("[Session] %s created for %s (%d pages)", session.SessionID, session.FileName, session.TotalPages)
	return session, layout, nil
}

func (s *SessionService) warmPreview(sessionID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if _, _, err := s.engine.Preview(ctx, sessionID, 1); err != nil {
		log.Printf("[Session] preview warm-up failed for %s: %v", sessionID, err)
	}
}

// GetSession returns the session for an id, nil when none exists.
func (s *SessionService) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	return s.sessions.Get(ctx, sessionID)
}

// NavigateToPage moves a session to another page. The preview and the
// page layout are fetched concurrently and the page number only advances
// once both resolved, so the committed state is never torn. Invalid input
// and fetch failures leave the prior page intact and report ok=false.
func (s *SessionService) NavigateToPage(ctx context.Context, sessionID string, pageNum int) (*model.Session, *model.Layout, bool, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, nil, false, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Active() {
		return nil, nil, false, nil
	}
	if pageNum < 1 || pageNum > session.TotalPages {
		return session, nil, false, nil
	}

	var (
		wg         sync.WaitGroup
		previewErr error
		layout     *model.Layout
		layoutErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _, previewErr = s.engine.Preview(ctx, sessionID, pageNum)
	}()
	go func() {
		defer wg.Done()
		layout, layoutErr = s.layouts.Load(ctx, sessionID, pageNum)
	}()
	wg.Wait()

	if previewErr != nil || layoutErr != nil {
		log.Printf("[Session] page %d fetch failed for %s (preview: %v, layout: %v)", pageNum, sessionID, previewErr, layoutErr)
		return session, nil, false, nil
	}

	session.CurrentPageNum = pageNum
	session.PreviewURL = previewURL(sessionID, pageNum)
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, nil, false, fmt.Errorf("failed to store session: %w", err)
	}
	return session, layout, true, nil
}

// Reset destroys a session and its stored layouts, returning the
// no-session defaults.
func (s *SessionService) Reset(ctx context.Context, sessionID string) (*model.Session, error) {
	if sessionID != "" {
		if err := s.sessions.Delete(ctx, sessionID); err != nil {
			return nil, fmt.Errorf("failed to delete session: %w", err)
		}
		if err := s.layouts.Purge(ctx, sessionID); err != nil {
			log.Printf("[Session] layout purge failed for %s: %v", sessionID, err)
		}
	}
	return model.EmptySession(), nil
}

func previewURL(sessionID string, page int) string {
	return fmt.Sprintf("/api/preview?session_id=%s&page=%d", sessionID, page)
}
