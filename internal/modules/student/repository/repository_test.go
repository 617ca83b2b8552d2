package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"anoa.com/schoolmanagement/internal/entity"
	"anoa.com/schoolmanagement/internal/testutil"
	"gorm.io/gorm"
)

func newStudent(id, class string, roll int) *entity.Student {
	return &entity.Student{
		StudentID: id, PasswordHash: "x", Name: "Name " + id, Email: id + "@example.com",
		Class: class, RollNumber: roll, Address: "a", PhoneNumber: "1",
		DOB: time.Date(2010, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRollNumberUniquePerClass(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	if err := repo.Create(ctx, newStudent("A1", "10A", 1)); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := repo.Create(ctx, newStudent("B1", "10B", 1)); err != nil {
		t.Fatalf("same roll in another class should be allowed: %v", err)
	}
	if err := repo.Create(ctx, newStudent("A1-dup", "10A", 1)); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
}

func TestFindAllOrderAndSearch(t *testing.T) {
	db := testutil.OpenTestDB(t)
	repo := NewStudentRepository(db)
	ctx := context.Background()

	for _, s := range []*entity.Student{newStudent("B2", "10B", 2), newStudent("A2", "10A", 2), newStudent("A1", "10A", 1)} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := repo.FindAll(ctx)
	if err != nil {
		t.Fatalf("find all: %v", err)
	}
	if len(all) != 3 || all[0].StudentID != "A1" || all[2].StudentID != "B2" {
		t.Fatalf("unexpected order %v", all)
	}

	hits, err := repo.Search(ctx, "name a", 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("expected 2 hits, got %d", len(hits))
	}

	if _, err := repo.FindByStudentID(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
