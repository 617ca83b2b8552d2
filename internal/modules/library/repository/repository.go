package repository

import (
	"context"
	"time"

	"anoa.com/schoolmanagement/internal/entity"
	"gorm.io/gorm"
)

type LibraryCardRepository interface {
	Create(ctx context.Context, card *entity.LibraryCard) error
	FindByStudentID(ctx context.Context, studentID string) (*entity.LibraryCard, error)
	FindAll(ctx context.Context) ([]*entity.LibraryCard, error)
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

type libraryCardRepository struct {
	db *gorm.DB
}

func NewLibraryCardRepository(db *gorm.DB) LibraryCardRepository {
	return &libraryCardRepository{db: db}
}

func (r *libraryCardRepository) Create(ctx context.Context, card *entity.LibraryCard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

func (r *libraryCardRepository) FindByStudentID(ctx context.Context, studentID string) (*entity.LibraryCard, error) {
	var card entity.LibraryCard
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

func (r *libraryCardRepository) FindAll(ctx context.Context) ([]*entity.LibraryCard, error) {
	var cards []*entity.LibraryCard
	if err := r.db.WithContext(ctx).Order("issue_date DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// ExpireOverdue marks active cards whose expiry date has passed as expired.
// Suspended cards keep their status.
func (r *libraryCardRepository) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.LibraryCard{}).
		Where("status = ? AND expiry_date <= ?", entity.CardActive, now).
		Update("status", entity.CardExpired)
	return res.RowsAffected, res.Error
}
