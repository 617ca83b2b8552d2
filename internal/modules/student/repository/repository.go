package repository

import (
	"context"

	"anoa.com/schoolmanagement/internal/entity"
	"gorm.io/gorm"
)

type StudentRepository interface {
	Create(ctx context.Context, student *entity.Student) error
	FindByStudentID(ctx context.Context, studentID string) (*entity.Student, error)
	FindByClassAndRoll(ctx context.Context, class string, rollNumber int) (*entity.Student, error)
	FindByStudentIDs(ctx context.Context, studentIDs []string) ([]*entity.Student, error)
	FindAll(ctx context.Context) ([]*entity.Student, error)
	Search(ctx context.Context, query string, limit int) ([]*entity.Student, error)
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (r *studentRepository) Create(ctx context.Context, student *entity.Student) error {
	return r.db.WithContext(ctx).Create(student).Error
}

func (r *studentRepository) FindByStudentID(ctx context.Context, studentID string) (*entity.Student, error) {
	var student entity.Student
	if err := r.db.WithContext(ctx).Where("student_id = ?", studentID).First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByClassAndRoll(ctx context.Context, class string, rollNumber int) (*entity.Student, error) {
	var student entity.Student
	if err := r.db.WithContext(ctx).
		Where("class = ? AND roll_number = ?", class, rollNumber).
		First(&student).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (r *studentRepository) FindByStudentIDs(ctx context.Context, studentIDs []string) ([]*entity.Student, error) {
	var students []*entity.Student
	if len(studentIDs) == 0 {
		return students, nil
	}
	if err := r.db.WithContext(ctx).
		Where("student_id IN ?", studentIDs).
		Order("class ASC, roll_number ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) FindAll(ctx context.Context) ([]*entity.Student, error) {
	var students []*entity.Student
	if err := r.db.WithContext(ctx).
		Order("class ASC, roll_number ASC").
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}

func (r *studentRepository) Search(ctx context.Context, query string, limit int) ([]*entity.Student, error) {
	var students []*entity.Student
	pattern := "%" + query + "%"
	if err := r.db.WithContext(ctx).
		Where("name ILIKE ? OR student_id ILIKE ? OR email ILIKE ?", pattern, pattern, pattern).
		Order("class ASC, roll_number ASC").
		Limit(limit).
		Find(&students).Error; err != nil {
		return nil, err
	}
	return students, nil
}
