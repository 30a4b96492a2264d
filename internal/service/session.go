package service

import (
	"context"

	"github.com/deppfellow/attendance-bot/internal/model"
)

type LectureStore interface {
	AddLecture(ctx context.Context, name, moduleCode string) (*model.Lecture, error)
	ListLectures(ctx context.Context, moduleCode string) ([]model.Lecture, error)
	RemoveLecture(ctx context.Context, moduleCode, name string) error
}

type SeminarStore interface {
	AddSeminar(ctx context.Context, name, moduleCode string) (*model.Seminar, error)
	ListSeminars(ctx context.Context, moduleCode string) ([]model.Seminar, error)
	RemoveSeminar(ctx context.Context, name string) error
}

type LectureService struct {
	lectures LectureStore
}

func NewLectureService(lectures LectureStore) *LectureService {
	return &LectureService{lectures: lectures}
}

func (s *LectureService) AddLecture(ctx context.Context, moduleCode, name string) (*model.Lecture, error) {
	moduleCode, name, err := normalizeSession(moduleCode, "lecture", name)
	if err != nil {
		return nil, err
	}
	return s.lectures.AddLecture(ctx, name, moduleCode)
}

func (s *LectureService) ListLectures(ctx context.Context, moduleCode string) ([]model.Lecture, error) {
	moduleCode, err := NormalizeModuleCode(moduleCode)
	if err != nil {
		return nil, err
	}
	return s.lectures.ListLectures(ctx, moduleCode)
}

// RemoveLecture removes a lecture and its codes. moduleCode may be
// empty when the lecture name is unique across modules.
func (s *LectureService) RemoveLecture(ctx context.Context, moduleCode, name string) error {
	name, err := NormalizeName("lecture", name)
	if err != nil {
		return err
	}

	if moduleCode != "" {
		if moduleCode, err = NormalizeModuleCode(moduleCode); err != nil {
			return err
		}
	}

	return s.lectures.RemoveLecture(ctx, moduleCode, name)
}

type SeminarService struct {
	seminars SeminarStore
}

func NewSeminarService(seminars SeminarStore) *SeminarService {
	return &SeminarService{seminars: seminars}
}

func (s *SeminarService) AddSeminar(ctx context.Context, moduleCode, name string) (*model.Seminar, error) {
	moduleCode, name, err := normalizeSession(moduleCode, "seminar", name)
	if err != nil {
		return nil, err
	}
	return s.seminars.AddSeminar(ctx, name, moduleCode)
}

func (s *SeminarService) ListSeminars(ctx context.Context, moduleCode string) ([]model.Seminar, error) {
	moduleCode, err := NormalizeModuleCode(moduleCode)
	if err != nil {
		return nil, err
	}
	return s.seminars.ListSeminars(ctx, moduleCode)
}

func (s *SeminarService) RemoveSeminar(ctx context.Context, name string) error {
	name, err := NormalizeName("seminar", name)
	if err != nil {
		return err
	}
	return s.seminars.RemoveSeminar(ctx, name)
}

func normalizeSession(moduleCode, field, name string) (string, string, error) {
	moduleCode, err := NormalizeModuleCode(moduleCode)
	if err != nil {
		return "", "", err
	}

	name, err = NormalizeName(field, name)
	if err != nil {
		return "", "", err
	}

	return moduleCode, name, nil
}
