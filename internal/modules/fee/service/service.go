package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"anoa.com/schoolmanagement/internal/entity"
	"anoa.com/schoolmanagement/internal/modules/fee/dto"
	"anoa.com/schoolmanagement/internal/modules/fee/repository"
	"anoa.com/schoolmanagement/pkg/apperror"
)

var errFeeNotFound = apperror.New(http.StatusNotFound, "Fee structure not found for this class", apperror.ErrNotFound)

type FeeService interface {
	// Upsert reports created=true when no structure existed for the class.
	Upsert(ctx context.Context, input dto.UpsertFeeInput) (res *dto.UpsertFeeResponse, created bool, err error)
	GetAll(ctx context.Context) ([]*entity.FeeStructure, error)
	GetByClass(ctx context.Context, class string) (*entity.FeeStructure, error)
}

type feeService struct {
	repo repository.FeeRepository
}

func NewFeeService(repo repository.FeeRepository) FeeService {
	return &feeService{repo: repo}
}

func (s *feeService) Upsert(ctx context.Context, input dto.UpsertFeeInput) (*dto.UpsertFeeResponse, bool, error) {
	class := strings.TrimSpace(input.Class)

	created := false
	if _, err := s.repo.FindByClass(ctx, class); err != nil {
		if !errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
			return nil, false, err
		}
		created = true
	}

	fee := &entity.FeeStructure{
		Class:      class,
		TuitionFee: deref(input.TuitionFee),
		LibraryFee: deref(input.LibraryFee),
		SportsFee:  deref(input.SportsFee),
		LabFee:     deref(input.LabFee),
		ExamFee:    deref(input.ExamFee),
	}
	fee.ComputeTotal()

	if err := s.repo.Upsert(ctx, fee); err != nil {
		return nil, false, err
	}

	// Reload so an update returns the existing row's id.
	stored, err := s.repo.FindByClass(ctx, class)
	if err != nil {
		return nil, false, err
	}

	message := "Fee structure updated successfully"
	if created {
		message = "Fee structure added successfully"
	}
	log.Printf("✅ Fee structure for class %s saved (total %.2f)", class, stored.TotalFee)

	return &dto.UpsertFeeResponse{
		Message:      message,
		FeeStructure: stored,
	}, created, nil
}

func (s *feeService) GetAll(ctx context.Context) ([]*entity.FeeStructure, error) {
	fees, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if fees == nil {
		fees = []*entity.FeeStructure{}
	}
	return fees, nil
}

func (s *feeService) GetByClass(ctx context.Context, class string) (*entity.FeeStructure, error) {
	fee, err := s.repo.FindByClass(ctx, class)
	if err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
			return nil, errFeeNotFound
		}
		return nil, err
	}
	return fee, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
