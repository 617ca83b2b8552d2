package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/schoolmanagement/internal/entity"
	"anoa.com/schoolmanagement/internal/modules/library/dto"
	"anoa.com/schoolmanagement/internal/modules/library/repository"
	studentRepo "anoa.com/schoolmanagement/internal/modules/student/repository"
	"anoa.com/schoolmanagement/pkg/apperror"
)

// CardValidityYears is how long a freshly issued card stays active.
const CardValidityYears = 1

var (
	errStudentNotFound = apperror.New(http.StatusNotFound, "Student not found", apperror.ErrNotFound)
	errCardNotFound    = apperror.New(http.StatusNotFound, "Library card not found", apperror.ErrNotFound)
	errCardIssued      = apperror.New(http.StatusBadRequest, "Library card already issued to this student", apperror.ErrDuplicate)
	errCardNumberTaken = apperror.New(http.StatusBadRequest, "Library card number already in use, please retry", apperror.ErrDuplicate)
)

type LibraryService interface {
	IssueCard(ctx context.Context, input dto.IssueCardInput) (*dto.IssueCardResponse, error)
	GetAll(ctx context.Context) ([]*entity.LibraryCard, error)
	GetByStudentID(ctx context.Context, studentID string) (*entity.LibraryCard, error)
	ExpireOverdue(ctx context.Context) (int64, error)
}

type libraryService struct {
	cards    repository.LibraryCardRepository
	students studentRepo.StudentRepository
	now      func() time.Time
}

func NewLibraryService(cards repository.LibraryCardRepository, students studentRepo.StudentRepository) LibraryService {
	return &libraryService{
		cards:    cards,
		students: students,
		now:      time.Now,
	}
}

func (s *libraryService) IssueCard(ctx context.Context, input dto.IssueCardInput) (*dto.IssueCardResponse, error) {
	studentID := strings.TrimSpace(input.StudentID)

	student, err := s.students.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
			return nil, errStudentNotFound
		}
		return nil, err
	}

	if _, err := s.cards.FindByStudentID(ctx, studentID); err == nil {
		return nil, errCardIssued
	} else if !errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
		return nil, err
	}

	issued := s.now()
	card := &entity.LibraryCard{
		CardNumber:  fmt.Sprintf("LIB%d", issued.UnixMilli()),
		StudentID:   student.StudentID,
		StudentName: student.Name,
		Class:       student.Class,
		IssueDate:   issued,
		ExpiryDate:  issued.AddDate(CardValidityYears, 0, 0),
		Status:      entity.CardActive,
	}

	// The unique index on student_id decides concurrent issues.
	if err := s.cards.Create(ctx, card); err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrDuplicate) {
			if _, ferr := s.cards.FindByStudentID(ctx, studentID); ferr == nil {
				return nil, errCardIssued
			}
			return nil, errCardNumberTaken
		}
		return nil, err
	}

	log.Printf("✅ Library card %s issued to %s", card.CardNumber, card.StudentID)
	return &dto.IssueCardResponse{
		Message:     "Library card issued successfully",
		LibraryCard: card,
	}, nil
}

func (s *libraryService) GetAll(ctx context.Context) ([]*entity.LibraryCard, error) {
	cards, err := s.cards.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if cards == nil {
		cards = []*entity.LibraryCard{}
	}
	return cards, nil
}

func (s *libraryService) GetByStudentID(ctx context.Context, studentID string) (*entity.LibraryCard, error) {
	card, err := s.cards.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
			return nil, errCardNotFound
		}
		return nil, err
	}
	return card, nil
}

// ExpireOverdue flips active cards past their expiry date to expired.
func (s *libraryService) ExpireOverdue(ctx context.Context) (int64, error) {
	return s.cards.ExpireOverdue(ctx, s.now())
}
