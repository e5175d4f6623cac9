package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/seokkiyoon07-sys/omrsheet/internal/config"
	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
)

// Engine is the remote OCR/grading backend as seen by the services.
type Engine interface {
	Upload(ctx context.Context, fileName string, file io.Reader, templatePath, userID string) (*UploadResult, error)
	Preview(ctx context.Context, sessionID string, page int) ([]byte, string, error)
	PushLayout(ctx context.Context, sessionID, fileName string, layout *model.Layout) error
	Grade(ctx context.Context, req *model.GradeRequest) (*model.GradeResponse, error)
	CorrectNames(ctx context.Context, sessionID string, corrections []model.NameCorrection) (int, error)
	FetchFile(ctx context.Context, path string) ([]byte, string, error)
}

// UploadResult is the engine's answer to a document ingestion.
type UploadResult struct {
	SessionID    string        `json:"session_id"`
	FileName     string        `json:"filename"`
	NumPages     int           `json:"num_pages,omitempty"`
	Layout       *model.Layout `json:"layout,omitempty"`
	TemplateName string        `json:"template_name,omitempty"`
}

// EngineClient wraps the OCR engine's HTTP API.
type EngineClient struct {
	baseURL    string
	httpClient *http.Client
	// gradeClient has no transport timeout; grading runs for minutes and
	// is bounded by the caller's context instead.
	gradeClient *http.Client
}

// NewEngineClient creates a client for the configured engine.
func NewEngineClient(cfg *config.Config) *EngineClient {
	return &EngineClient{
		baseURL:     cfg.EngineURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		gradeClient: &http.Client{},
	}
}

// Upload sends the document as multipart form data for ingestion.
func (c *EngineClient) Upload(ctx context.Context, fileName string, file io.Reader, templatePath, userID string) (*UploadResult, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		return nil, networkError("업로드 요청을 구성하지 못했습니다", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, networkError("업로드 파일을 읽지 못했습니다", err)
	}
	if err := mw.WriteField("template_path", templatePath); err != nil {
		return nil, networkError("업로드 요청을 구성하지 못했습니다", err)
	}
	if err := mw.WriteField("user_id", userID); err != nil {
		return nil, networkError("업로드 요청을 구성하지 못했습니다", err)
	}
	if err := mw.Close(); err != nil {
		return nil, networkError("업로드 요청을 구성하지 못했습니다", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload", &buf)
	if err != nil {
		return nil, networkError("업로드 요청을 구성하지 못했습니다", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.send(c.httpClient, req)
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if len(body) == 0 || json.Unmarshal(body, &result) != nil {
		return nil, emptyResponse("업로드 응답을 해석하지 못했습니다")
	}
	return &result, nil
}

// Preview fetches the raster image for one page of a session.
func (c *EngineClient) Preview(ctx context.Context, sessionID string, page int) ([]byte, string, error) {
	url := fmt.Sprintf("%s/api/preview?session_id=%s&page=%d", c.baseURL, sessionID, page)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", networkError("미리보기 요청을 구성하지 못했습니다", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", classifyTransport("미리보기를 불러오지 못했습니다", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", networkError("미리보기 응답을 읽지 못했습니다", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", requestFailed(resp.StatusCode, serverMessage(body, resp))
	}
	return body, resp.Header.Get("Content-Type"), nil
}

// PushLayout persists a layout on the engine side so grading observes it.
func (c *EngineClient) PushLayout(ctx context.Context, sessionID, fileName string, layout *model.Layout) error {
	payload := map[string]any{
		"session_id": sessionID,
		"layout":     layout,
	}
	if fileName != "" {
		payload["file_name"] = fileName
	}

	body, err := c.postJSON(ctx, c.httpClient, "/api/layout", payload)
	if err != nil {
		return err
	}
	if len(body) == 0 {
		return emptyResponse("레이아웃 저장 응답이 비어 있습니다")
	}
	var ack struct {
		OK bool `json:"ok"`
	}
	if json.Unmarshal(body, &ack) != nil {
		return emptyResponse("레이아웃 저장 응답을 해석하지 못했습니다")
	}
	return nil
}

// Grade submits a grading request. Grading a large batch is OCR-bound on
// the engine and routinely runs for minutes; the caller's context carries
// the cancellation bound.
func (c *EngineClient) Grade(ctx context.Context, gradeReq *model.GradeRequest) (*model.GradeResponse, error) {
	log.Printf("[Engine] grading session %s (%s)", gradeReq.SessionID, gradeReq.FileName)

	body, err := c.postJSON(ctx, c.gradeClient, "/api/grade", gradeReq)
	if err != nil {
		return nil, err
	}

	var result model.GradeResponse
	if len(body) == 0 || json.Unmarshal(body, &result) != nil {
		return nil, emptyResponse("채점 응답을 해석하지 못했습니다")
	}
	log.Printf("[Engine] grading finished for session %s", gradeReq.SessionID)
	return &result, nil
}

// CorrectNames submits human-confirmed name fixes and returns how many
// result rows the engine updated.
func (c *EngineClient) CorrectNames(ctx context.Context, sessionID string, corrections []model.NameCorrection) (int, error) {
	payload := map[string]any{
		"session_id":  sessionID,
		"corrections": corrections,
	}

	body, err := c.postJSON(ctx, c.httpClient, "/api/grade/correct-names", payload)
	if err != nil {
		return 0, err
	}

	var result struct {
		UpdatedCount int `json:"updated_count"`
	}
	if len(body) == 0 || json.Unmarshal(body, &result) != nil {
		return 0, emptyResponse("이름 수정 응답을 해석하지 못했습니다")
	}
	return result.UpdatedCount, nil
}

// FetchFile proxies a diagnostic artifact (per-block crop images and the
// like) from the engine.
func (c *EngineClient) FetchFile(ctx context.Context, path string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/files/"+path, nil)
	if err != nil {
		return nil, "", networkError("파일 요청을 구성하지 못했습니다", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", classifyTransport("파일을 불러오지 못했습니다", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", networkError("파일 응답을 읽지 못했습니다", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", requestFailed(resp.StatusCode, serverMessage(body, resp))
	}
	return body, resp.Header.Get("Content-Type"), nil
}

func (c *EngineClient) postJSON(ctx context.Context, client *http.Client, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, networkError("요청을 직렬화하지 못했습니다", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, networkError("요청을 구성하지 못했습니다", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.send(client, req)
}

func (c *EngineClient) send(client *http.Client, req *http.Request) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, classifyTransport("엔진 서버에 연결하지 못했습니다", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classifyTransport("엔진 응답을 읽지 못했습니다", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := serverMessage(body, resp)
		log.Printf("[Engine] %s %s failed: %d %s", req.Method, req.URL.Path, resp.StatusCode, msg)
		return nil, requestFailed(resp.StatusCode, msg)
	}
	return body, nil
}

// serverMessage pulls the engine's own error text out of a response body,
// falling back to the HTTP status line.
func serverMessage(body []byte, resp *http.Response) string {
	var payload struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Detail != "" {
			return payload.Detail
		}
		if payload.Message != "" {
			return payload.Message
		}
	}
	return resp.Status
}

func classifyTransport(msg string, err error) *APIError {
	if errors.Is(err, context.DeadlineExceeded) {
		return timeoutError(msg, err)
	}
	return networkError(msg, err)
}
