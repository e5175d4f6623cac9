package service

import (
	"context"
	"fmt"

	"github.com/seokkiyoon07-sys/omrsheet/internal/model"
	"github.com/seokkiyoon07-sys/omrsheet/internal/repository"
)

// AnswerKeyService looks up stored answer keys by exam metadata and
// lets teachers register new ones.
type AnswerKeyService struct {
	repo repository.AnswerKeyRepo
}

func NewAnswerKeyService(repo repository.AnswerKeyRepo) *AnswerKeyService {
	return &AnswerKeyService{repo: repo}
}

// Fetch returns the answer key matching the exam metadata, nil when none
// is registered.
func (s *AnswerKeyService) Fetch(ctx context.Context, metadata map[string]string) (*model.AnswerKey, error) {
	if len(metadata) == 0 {
		return nil, validationError("시험 정보가 없습니다.")
	}
	key, err := s.repo.FindByMetadata(ctx, metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch answer key: %w", err)
	}
	return key, nil
}

// List searches answer keys by subject code and/or name fragment.
func (s *AnswerKeyService) List(ctx context.Context, subjectCode, query string) ([]*model.AnswerKey, error) {
	keys, err := s.repo.Search(ctx, subjectCode, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search answer keys: %w", err)
	}
	return keys, nil
}

// Create registers a new answer key.
func (s *AnswerKeyService) Create(ctx context.Context, key *model.AnswerKey) error {
	if key.Name == "" {
		return validationError("정답 이름이 없습니다.")
	}
	if len(key.Questions) == 0 {
		return validationError("정답 문항이 없습니다.")
	}
	if err := s.repo.Create(ctx, key); err != nil {
		return fmt.Errorf("failed to create answer key: %w", err)
	}
	return nil
}
