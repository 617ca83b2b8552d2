package repository

import (
	"context"

	"anoa.com/schoolmanagement/internal/entity"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimetableRepository interface {
	Create(ctx context.Context, entry *entity.TimetableEntry) error
	FindByClass(ctx context.Context, class string) ([]*entity.TimetableEntry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type timetableRepository struct {
	db *gorm.DB
}

func NewTimetableRepository(db *gorm.DB) TimetableRepository {
	return &timetableRepository{db: db}
}

const weekdayOrder = `CASE LOWER(day)
	WHEN 'monday' THEN 1 WHEN 'tuesday' THEN 2 WHEN 'wednesday' THEN 3
	WHEN 'thursday' THEN 4 WHEN 'friday' THEN 5 WHEN 'saturday' THEN 6
	WHEN 'sunday' THEN 7 ELSE 8 END`

func (r *timetableRepository) Create(ctx context.Context, entry *entity.TimetableEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *timetableRepository) FindByClass(ctx context.Context, class string) ([]*entity.TimetableEntry, error) {
	var entries []*entity.TimetableEntry
	if err := r.db.WithContext(ctx).
		Where("class = ?", class).
		Order(weekdayOrder).
		Order("day ASC, period ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes the entry if present; a missing id is not an error.
func (r *timetableRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TimetableEntry{}, "id = ?", id).Error
}
