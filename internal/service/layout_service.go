package service

import (
	"context"
	"fmt"
	"log"
	"regexp"

	"github.com/seokkiyoon07-sys/omrsheet/internal/cache"
	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
	"github.com/seokkiyoon07-sys/omrsheet/internal/repository"
)

// LayoutService owns layout persistence: Mongo is the local authority,
// Redis fronts it for page navigation, and saves are pushed to the engine
// so grading observes the same layout the user edited.
type LayoutService struct {
	repo   repository.LayoutRepo
	cache  cache.LayoutCache
	engine Engine
}

func NewLayoutService(repo repository.LayoutRepo, layoutCache cache.LayoutCache, engine Engine) *LayoutService {
	return &LayoutService{
		repo:   repo,
		cache:  layoutCache,
		engine: engine,
	}
}

// Save validates, normalizes and persists a layout for one session page.
// The engine push comes first: a layout the engine never saw must not look
// saved. Fails with a validation error before any network call when the
// required identifiers are missing.
func (s *LayoutService) Save(ctx context.Context, sessionID string, page int, layout *model.Layout, fileName string) error {
	if sessionID == "" {
		return validationError("세션 정보가 없습니다. 파일을 먼저 업로드해주세요.")
	}
	if layout == nil {
		return validationError("저장할 레이아웃이 없습니다.")
	}
	if page < 1 {
		page = 1
	}

	normalized := layout.Clone()
	normalized.Blocks = model.NormalizeBlocks(normalized.Blocks)
	if normalized.DPI == 0 {
		normalized.DPI = model.DefaultDPI
	}

	if err := s.engine.PushLayout(ctx, sessionID, fileName, normalized); err != nil {
		return err
	}
	if err := s.repo.Upsert(ctx, sessionID, page, normalized); err != nil {
		return fmt.Errorf("failed to store layout: %w", err)
	}
	if err := s.cache.Set(ctx, sessionID, page, normalized); err != nil {
		// Cache is best-effort; Mongo already has the layout.
		log.Printf("[Layout] cache set failed for %s page %d: %v", sessionID, page, err)
	}
	return nil
}

// Adopt persists an engine-supplied layout locally without pushing it
// back to the engine it came from.
func (s *LayoutService) Adopt(ctx context.Context, sessionID string, page int, layout *model.Layout) error {
	normalized := layout.Clone()
	normalized.Blocks = model.NormalizeBlocks(normalized.Blocks)
	if err := s.repo.Upsert(ctx, sessionID, page, normalized); err != nil {
		return fmt.Errorf("failed to store layout: %w", err)
	}
	if err := s.cache.Set(ctx, sessionID, page, normalized); err != nil {
		log.Printf("[Layout] cache set failed for %s page %d: %v", sessionID, page, err)
	}
	return nil
}

// Load returns the layout for a session page, an empty default when the
// page has never been saved.
func (s *LayoutService) Load(ctx context.Context, sessionID string, page int) (*model.Layout, error) {
	if sessionID == "" {
		return nil, validationError("세션 정보가 없습니다.")
	}
	if page < 1 {
		page = 1
	}

	if cached, err := s.cache.Get(ctx, sessionID, page); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		log.Printf("[Layout] cache get failed for %s page %d: %v", sessionID, page, err)
	}

	layout, err := s.repo.Get(ctx, sessionID, page)
	if err != nil {
		return nil, fmt.Errorf("failed to load layout: %w", err)
	}
	if layout == nil {
		return model.DefaultLayout(), nil
	}

	if err := s.cache.Set(ctx, sessionID, page, layout); err != nil {
		log.Printf("[Layout] cache fill failed for %s page %d: %v", sessionID, page, err)
	}
	return layout, nil
}

// Purge drops every stored layout of a session. Cache entries are left to
// expire; keyed by the dead session id they are unreachable anyway.
func (s *LayoutService) Purge(ctx context.Context, sessionID string) error {
	return s.repo.DeleteBySession(ctx, sessionID)
}

// ExportFile renders a layout as a downloadable JSON file named
// layout_{fileName|unnamed}.json. Does nothing for an empty block list.
func (s *LayoutService) ExportFile(layout *model.Layout, fileName string) (string, []byte, bool) {
	if layout == nil || len(layout.Blocks) == 0 {
		return "", nil, false
	}

	normalized := layout.Clone()
	normalized.Blocks = model.NormalizeBlocks(normalized.Blocks)

	data, err := normalized.MarshalFile()
	if err != nil {
		return "", nil, false
	}

	if fileName == "" {
		fileName = "unnamed"
	}
	return "layout_" + fileName + ".json", data, true
}

var sessionIDPattern = regexp.MustCompile(`session_id=([^&\s]+)`)

// ExtractSessionID pulls a session id out of a query-string-like
// fragment. Returns "" when absent.
func ExtractSessionID(source string) string {
	m := sessionIDPattern.FindStringSubmatch(source)
	if m == nil {
		return ""
	}
	return m[1]
}
