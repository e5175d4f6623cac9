package service

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// fakeEngine implements Engine with per-method function hooks. Calls are
// counted under a mutex because the session service warms previews from a
// goroutine.
type fakeEngine struct {
	mu sync.Mutex

	uploadFn       func(ctx context.Context, fileName string, file io.Reader, templatePath, userID string) (*UploadResult, error)
	previewFn      func(ctx context.Context, sessionID string, page int) ([]byte, string, error)
	pushLayoutFn   func(ctx context.Context, sessionID, fileName string, layout *model.Layout) error
	gradeFn        func(ctx context.Context, req *model.GradeRequest) (*model.GradeResponse, error)
	correctNamesFn func(ctx context.Context, sessionID string, corrections []model.NameCorrection) (int, error)

	gradeCalls      int
	pushLayoutCalls int
	previewCalls    int
}

func (f *fakeEngine) Upload(ctx context.Context, fileName string, file io.Reader, templatePath, userID string) (*UploadResult, error) {
	if f.uploadFn == nil {
		return nil, nil
	}
	return f.uploadFn(ctx, fileName, file, templatePath, userID)
}

func (f *fakeEngine) Preview(ctx context.Context, sessionID string, page int) ([]byte, string, error) {
	f.mu.Lock()
	f.previewCalls++
	f.mu.Unlock()
	if f.previewFn == nil {
		return []byte("png"), "image/png", nil
	}
	return f.previewFn(ctx, sessionID, page)
}

func (f *fakeEngine) PushLayout(ctx context.Context, sessionID, fileName string, layout *model.Layout) error {
	f.mu.Lock()
	f.pushLayoutCalls++
	f.mu.Unlock()
	if f.pushLayoutFn == nil {
		return nil
	}
	return f.pushLayoutFn(ctx, sessionID, fileName, layout)
}

func (f *fakeEngine) Grade(ctx context.Context, req *model.GradeRequest) (*model.GradeResponse, error) {
	f.mu.Lock()
	f.gradeCalls++
	f.mu.Unlock()
	if f.gradeFn == nil {
		return &model.GradeResponse{Log: "done"}, nil
	}
	return f.gradeFn(ctx, req)
}

func (f *fakeEngine) CorrectNames(ctx context.Context, sessionID string, corrections []model.NameCorrection) (int, error) {
	if f.correctNamesFn == nil {
		return len(corrections), nil
	}
	return f.correctNamesFn(ctx, sessionID, corrections)
}

func (f *fakeEngine) FetchFile(ctx context.Context, path string) ([]byte, string, error) {
	return nil, "", nil
}

func (f *fakeEngine) gradeCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gradeCalls
}

func (f *fakeEngine) previewCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.previewCalls
}

// fakeSessionCache is an in-memory cache.SessionCache.
type fakeSessionCache struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	setErr   error
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{sessions: map[string]*model.Session{}}
}

func (f *fakeSessionCache) Set(ctx context.Context, session *model.Session) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *session
	f.sessions[session.SessionID] = &copied
	return nil
}

func (f *fakeSessionCache) Get(ctx context.Context, id string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionCache) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, id)
	return nil
}

// fakeLayoutStore is an in-memory LayoutStore keyed by session and page.
type fakeLayoutStore struct {
	mu      sync.Mutex
	layouts map[string]map[int]*model.Layout
	loadErr error
	purged  []string
}

func newFakeLayoutStore() *fakeLayoutStore {
	return &fakeLayoutStore{layouts: map[string]map[int]*model.Layout{}}
}

func (f *fakeLayoutStore) Adopt(ctx context.Context, sessionID string, page int, layout *model.Layout) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.layouts[sessionID] == nil {
		f.layouts[sessionID] = map[int]*model.Layout{}
	}
	f.layouts[sessionID][page] = layout.Clone()
	return nil
}

func (f *fakeLayoutStore) Load(ctx context.Context, sessionID string, page int) (*model.Layout, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if layout := f.layouts[sessionID][page]; layout != nil {
		return layout.Clone(), nil
	}
	return model.DefaultLayout(), nil
}

func (f *fakeLayoutStore) Purge(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.layouts, sessionID)
	f.purged = append(f.purged, sessionID)
	return nil
}

// fakeLayoutRepo is an in-memory repository.LayoutRepo.
type fakeLayoutRepo struct {
	mu        sync.Mutex
	layouts   map[string]map[int]*model.Layout
	upsertErr error
	gets      int
}

func newFakeLayoutRepo() *fakeLayoutRepo {
	return &fakeLayoutRepo{layouts: map[string]map[int]*model.Layout{}}
}

func (f *fakeLayoutRepo) Upsert(ctx context.Context, sessionID string, page int, layout *model.Layout) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.layouts[sessionID] == nil {
		f.layouts[sessionID] = map[int]*model.Layout{}
	}
	f.layouts[sessionID][page] = layout.Clone()
	return nil
}

func (f *fakeLayoutRepo) Get(ctx context.Context, sessionID string, page int) (*model.Layout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if layout := f.layouts[sessionID][page]; layout != nil {
		return layout.Clone(), nil
	}
	return nil, nil
}

func (f *fakeLayoutRepo) DeleteBySession(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.layouts, sessionID)
	return nil
}

// fakeLayoutCache is an in-memory cache.LayoutCache.
type fakeLayoutCache struct {
	mu      sync.Mutex
	entries map[string]*model.Layout
	setErr  error
	getErr  error
}

func newFakeLayoutCache() *fakeLayoutCache {
	return &fakeLayoutCache{entries: map[string]*model.Layout{}}
}

func cacheKey(sessionID string, page int) string {
	return fmt.Sprintf("%s:%d", sessionID, page)
}

func (f *fakeLayoutCache) Set(ctx context.Context, sessionID string, page int, layout *model.Layout) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[cacheKey(sessionID, page)] = layout.Clone()
	return nil
}

func (f *fakeLayoutCache) Get(ctx context.Context, sessionID string, page int) (*model.Layout, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if layout := f.entries[cacheKey(sessionID, page)]; layout != nil {
		return layout.Clone(), nil
	}
	return nil, nil
}

func (f *fakeLayoutCache) Delete(ctx context.Context, sessionID string, page int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.entries, cacheKey(sessionID, page))
	return nil
}

// fakeSaver records Save calls for the grading flow.
type fakeSaver struct {
	err   error
	calls int
}

func (f *fakeSaver) Save(ctx context.Context, sessionID string, page int, layout *model.Layout, fileName string) error {
	f.calls++
	return f.err
}

// fakeReports is an in-memory repository.ReportRepo.
type fakeReports struct {
	records []*model.GradeRecord
}

func (f *fakeReports) Create(ctx context.Context, record *model.GradeRecord) error {
	f.records = append(f.records, record)
	return nil
}

func (f *fakeReports) GetBySession(ctx context.Context, sessionID string) ([]*model.GradeRecord, error) {
	var out []*model.GradeRecord
	for i := len(f.records) - 1; i >= 0; i-- {
		if f.records[i].SessionID == sessionID {
			out = append(out, f.records[i])
		}
	}
	return out, nil
}
