package service

import (
	"context"
	"strings"

	"anoa.com/schoolmanagement/internal/entity"
	"anoa.com/schoolmanagement/internal/modules/timetable/dto"
	"anoa.com/schoolmanagement/internal/modules/timetable/repository"
	"anoa.com/schoolmanagement/pkg/sanitize"
	"github.com/google/uuid"
)

type TimetableService interface {
	Create(ctx context.Context, input dto.CreateEntryInput) (*dto.CreateEntryResponse, error)
	GetByClass(ctx context.Context, class string) ([]*entity.TimetableEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type timetableService struct {
	repo repository.TimetableRepository
}

func NewTimetableService(repo repository.TimetableRepository) TimetableService {
	return &timetableService{repo: repo}
}

func (s *timetableService) Create(ctx context.Context, input dto.CreateEntryInput) (*dto.CreateEntryResponse, error) {
	entry := &entity.TimetableEntry{
		Class:   strings.TrimSpace(input.Class),
		Day:     sanitize.Text(input.Day),
		Period:  input.Period,
		Subject: sanitize.Text(input.Subject),
		Teacher: sanitize.Text(input.Teacher),
		Time:    sanitize.Text(input.Time),
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return &dto.CreateEntryResponse{
		Message:   "Timetable entry added successfully",
		Timetable: entry,
	}, nil
}

func (s *timetableService) GetByClass(ctx context.Context, class string) ([]*entity.TimetableEntry, error) {
	entries, err := s.repo.FindByClass(ctx, class)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []*entity.TimetableEntry{}
	}
	return entries, nil
}

// Delete succeeds whether or not the entry exists.
func (s *timetableService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
