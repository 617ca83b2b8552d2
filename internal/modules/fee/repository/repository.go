package repository

import (
	"context"

	"anoa.com/schoolmanagement/internal/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FeeRepository interface {
	Upsert(ctx context.Context, fee *entity.FeeStructure) error
	FindByClass(ctx context.Context, class string) (*entity.FeeStructure, error)
	FindAll(ctx context.Context) ([]*entity.FeeStructure, error)
}

type feeRepository struct {
	db *gorm.DB
}

func NewFeeRepository(db *gorm.DB) FeeRepository {
	return &feeRepository{db: db}
}

// Upsert inserts fee or, when its class already has a structure, overwrites
// that row's components and total in a single statement.
func (r *feeRepository) Upsert(ctx context.Context, fee *entity.FeeStructure) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "class"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"tuition_fee", "library_fee", "sports_fee", "lab_fee", "exam_fee", "total_fee",
		}),
	}).Create(fee).Error
}

func (r *feeRepository) FindByClass(ctx context.Context, class string) (*entity.FeeStructure, error) {
	var fee entity.FeeStructure
	if err := r.db.WithContext(ctx).Where("class = ?", class).First(&fee).Error; err != nil {
		return nil, err
	}
	return &fee, nil
}

func (r *feeRepository) FindAll(ctx context.Context) ([]*entity.FeeStructure, error) {
	var fees []*entity.FeeStructure
	if err := r.db.WithContext(ctx).Order("class ASC").Find(&fees).Error; err != nil {
		return nil, err
	}
	return fees, nil
}
