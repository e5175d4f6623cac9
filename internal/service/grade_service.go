package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/seokkiyoon07-sys/omrsheet/internal/config"
	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
	"github.com/seokkiyoon07-sys/omrsheet/internal/repository"
)

// LayoutSaver is the slice of layout persistence the grading flow needs.
type LayoutSaver interface {
	Save(ctx context.Context, sessionID string, page int, layout *model.Layout, fileName string) error
}

// GradeInput is one grading attempt as assembled by the caller. Threshold
// and Tie fall back to the deployment defaults when nil. AnswerKeyText is
// the raw answer-key JSON; it is parsed locally before anything is sent.
type GradeInput struct {
	SessionID     string
	FileName      string
	AnswerName    string
	Threshold     *float64
	Tie           *float64
	AnswerKeyText string
	Page          int
	Layout        *model.Layout
}

// GradeService runs the grading protocol: validate locally, save the
// layout, then submit to the engine under the long-request bound.
type GradeService struct {
	saver    LayoutSaver
	engine   Engine
	reports  repository.ReportRepo
	defaults *config.GradingConfig
	timeout  time.Duration
}

func NewGradeService(saver LayoutSaver, engine Engine, reports repository.ReportRepo, defaults *config.GradingConfig, timeout time.Duration) *GradeService {
	return &GradeService{
		saver:    saver,
		engine:   engine,
		reports:  reports,
		defaults: defaults,
		timeout:  timeout,
	}
}

// StartGrading validates the input, saves the layout and submits the
// grade request. The layout save strictly precedes the submit: a failed
// save means the engine is never called. The submit itself is bounded by
// the configured timeout (600 s by default) because grading a large scan
// batch is OCR-bound on the engine.
func (s *GradeService) StartGrading(ctx context.Context, in GradeInput) (*model.GradeResponse, error) {
	if in.SessionID == "" {
		return nil, validationError("세션이 없습니다. 파일을 먼저 업로드해주세요.")
	}
	if in.Layout == nil {
		return nil, validationError("저장할 레이아웃이 없습니다.")
	}

	answerKey, err := parseAnswerKey(in.AnswerKeyText)
	if err != nil {
		return nil, err
	}

	if err := s.saver.Save(ctx, in.SessionID, in.Page, in.Layout, in.FileName); err != nil {
		return nil, err
	}

	req := &model.GradeRequest{
		SessionID:  in.SessionID,
		FileName:   in.FileName,
		AnswerName: in.AnswerName,
		Threshold:  s.defaults.Threshold,
		Tie:        s.defaults.Tie,
		AnswerKey:  answerKey,
	}
	if in.Threshold != nil {
		req.Threshold = *in.Threshold
	}
	if in.Tie != nil {
		req.Tie = *in.Tie
	}

	gradeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	resp, err := s.engine.Grade(gradeCtx, req)
	if err != nil {
		if IsKind(err, ErrTimeout) {
			return nil, timeoutError("채점 시간이 10분을 초과했습니다. 더 적은 분량으로 나누어 다시 시도해주세요.", err)
		}
		return nil, err
	}

	record := &model.GradeRecord{
		SessionID: in.SessionID,
		FileName:  in.FileName,
		Response:  *resp,
	}
	if err := s.reports.Create(ctx, record); err != nil {
		log.Printf("[Grade] failed to store grade record for %s: %v", in.SessionID, err)
	}

	if resp.NameIssues != nil && resp.NameIssues.IssuesFound > 0 {
		log.Printf("[Grade] session %s has %d name issues awaiting correction", in.SessionID, resp.NameIssues.IssuesFound)
	}
	return resp, nil
}

// SubmitNameCorrections forwards only the corrections that actually
// changed from the recognized value. An empty effective list is a local
// validation failure, not a network call.
func (s *GradeService) SubmitNameCorrections(ctx context.Context, sessionID string, corrections []model.NameCorrection) (int, error) {
	if sessionID == "" {
		return 0, validationError("세션이 없습니다.")
	}

	changed := make([]model.NameCorrection, 0, len(corrections))
	for _, c := range corrections {
		if c.CorrectedName == "" || c.CorrectedName == c.RecognizedName {
			continue
		}
		changed = append(changed, model.NameCorrection{
			FileName:      c.FileName,
			CorrectedName: c.CorrectedName,
		})
	}
	if len(changed) == 0 {
		return 0, validationError("변경된 이름이 없습니다.")
	}

	return s.engine.CorrectNames(ctx, sessionID, changed)
}

// History lists a session's stored grading attempts, newest first.
func (s *GradeService) History(ctx context.Context, sessionID string) ([]*model.GradeRecord, error) {
	return s.reports.GetBySession(ctx, sessionID)
}

func parseAnswerKey(text string) (json.RawMessage, error) {
	if text == "" {
		return nil, validationError("정답 정보가 없습니다.")
	}
	var probe map[string]any
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return nil, validationError("정답 JSON 형식이 올바르지 않습니다.")
	}
	return json.RawMessage(text), nil
}
