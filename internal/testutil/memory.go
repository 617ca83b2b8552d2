// Package testutil provides in-memory repositories and a recording mailer.
// Storage errors mirror what gorm returns with TranslateError enabled.
package testutil

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"anoa.com/schoolmanagement/internal/entity"
	"anoa.com/schoolmanagement/pkg/mailer"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdminStore struct {
	mu     sync.Mutex
	admins []*entity.Admin
}

func NewAdminStore() *AdminStore { return &AdminStore{} }

func (s *AdminStore) Create(ctx context.Context, admin *entity.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == admin.Email || a.Username == admin.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	if admin.ID == uuid.Nil {
		admin.ID = uuid.New()
	}
	admin.CreatedAt = time.Now()
	cp := *admin
	s.admins = append(s.admins, &cp)
	return nil
}

func (s *AdminStore) FindByEmail(ctx context.Context, email string) (*entity.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == email {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *AdminStore) FindByEmailOrUsername(ctx context.Context, email, username string) (*entity.Admin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.admins {
		if a.Email == email || a.Username == username {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type StudentStore struct {
	mu       sync.Mutex
	students []*entity.Student
}

func NewStudentStore() *StudentStore { return &StudentStore{} }

func (s *StudentStore) Create(ctx context.Context, student *entity.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.StudentID == student.StudentID || (st.Class == student.Class && st.RollNumber == student.RollNumber) {
			return gorm.ErrDuplicatedKey
		}
	}
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	student.RegistrationDate = time.Now()
	cp := *student
	s.students = append(s.students, &cp)
	return nil
}

func (s *StudentStore) FindByStudentID(ctx context.Context, studentID string) (*entity.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.StudentID == studentID {
			cp := *st
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *StudentStore) FindByClassAndRoll(ctx context.Context, class string, rollNumber int) (*entity.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, st := range s.students {
		if st.Class == class && st.RollNumber == rollNumber {
			cp := *st
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *StudentStore) FindByStudentIDs(ctx context.Context, studentIDs []string) ([]*entity.Student, error) {
	want := make(map[string]bool, len(studentIDs))
	for _, id := range studentIDs {
		want[id] = true
	}
	return s.filter(func(st *entity.Student) bool { return want[st.StudentID] }, 0), nil
}

func (s *StudentStore) FindAll(ctx context.Context) ([]*entity.Student, error) {
	return s.filter(func(*entity.Student) bool { return true }, 0), nil
}

func (s *StudentStore) Search(ctx context.Context, query string, limit int) ([]*entity.Student, error) {
	q := strings.ToLower(query)
	return s.filter(func(st *entity.Student) bool {
		return strings.Contains(strings.ToLower(st.Name), q) ||
			strings.Contains(strings.ToLower(st.StudentID), q) ||
			strings.Contains(strings.ToLower(st.Email), q)
	}, limit), nil
}

func (s *StudentStore) filter(keep func(*entity.Student) bool, limit int) []*entity.Student {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.Student{}
	for _, st := range s.students {
		if keep(st) {
			cp := *st
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Class != out[j].Class {
			return out[i].Class < out[j].Class
		}
		return out[i].RollNumber < out[j].RollNumber
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

type LibraryCardStore struct {
	mu    sync.Mutex
	cards []*entity.LibraryCard
}

func NewLibraryCardStore() *LibraryCardStore { return &LibraryCardStore{} }

func (s *LibraryCardStore) Create(ctx context.Context, card *entity.LibraryCard) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.StudentID == card.StudentID || c.CardNumber == card.CardNumber {
			return gorm.ErrDuplicatedKey
		}
	}
	if card.ID == uuid.Nil {
		card.ID = uuid.New()
	}
	if card.Status == "" {
		card.Status = entity.CardActive
	}
	cp := *card
	s.cards = append(s.cards, &cp)
	return nil
}

func (s *LibraryCardStore) FindByStudentID(ctx context.Context, studentID string) (*entity.LibraryCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.cards {
		if c.StudentID == studentID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *LibraryCardStore) FindAll(ctx context.Context) ([]*entity.LibraryCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.LibraryCard{}
	for _, c := range s.cards {
		cp := *c
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssueDate.After(out[j].IssueDate) })
	return out, nil
}

func (s *LibraryCardStore) ExpireOverdue(ctx context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, c := range s.cards {
		if c.Status == entity.CardActive && !c.ExpiryDate.After(now) {
			c.Status = entity.CardExpired
			n++
		}
	}
	return n, nil
}

type TimetableStore struct {
	mu      sync.Mutex
	entries []*entity.TimetableEntry
}

func NewTimetableStore() *TimetableStore { return &TimetableStore{} }

func (s *TimetableStore) Create(ctx context.Context, entry *entity.TimetableEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	cp := *entry
	s.entries = append(s.entries, &cp)
	return nil
}

var weekdays = map[string]int{
	"monday": 1, "tuesday": 2, "wednesday": 3, "thursday": 4,
	"friday": 5, "saturday": 6, "sunday": 7,
}

func (s *TimetableStore) FindByClass(ctx context.Context, class string) ([]*entity.TimetableEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.TimetableEntry{}
	for _, e := range s.entries {
		if e.Class == class {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dayRank(out[i].Day), dayRank(out[j].Day)
		if di != dj {
			return di < dj
		}
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].Period < out[j].Period
	})
	return out, nil
}

func dayRank(day string) int {
	if r, ok := weekdays[strings.ToLower(day)]; ok {
		return r
	}
	return 8
}

func (s *TimetableStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return nil
		}
	}
	return nil
}

type FeeStore struct {
	mu   sync.Mutex
	fees []*entity.FeeStructure
}

func NewFeeStore() *FeeStore { return &FeeStore{} }

func (s *FeeStore) Upsert(ctx context.Context, fee *entity.FeeStructure) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.fees {
		if f.Class == fee.Class {
			id := f.ID
			*f = *fee
			f.ID = id
			return nil
		}
	}
	if fee.ID == uuid.Nil {
		fee.ID = uuid.New()
	}
	cp := *fee
	s.fees = append(s.fees, &cp)
	return nil
}

func (s *FeeStore) FindByClass(ctx context.Context, class string) (*entity.FeeStructure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, f := range s.fees {
		if f.Class == class {
			cp := *f
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *FeeStore) FindAll(ctx context.Context) ([]*entity.FeeStructure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*entity.FeeStructure{}
	for _, f := range s.fees {
		cp := *f
		out = append(out, &cp)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Class < out[j].Class })
	return out, nil
}

// Mailer records every message and fails when Err is set.
type Mailer struct {
	mu   sync.Mutex
	Sent []mailer.StudentCredentials
	Err  error
}

func (m *Mailer) SendStudentCredentials(ctx context.Context, msg mailer.StudentCredentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, msg)
	return nil
}

func (m *Mailer) Last() (mailer.StudentCredentials, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return mailer.StudentCredentials{}, false
	}
	return m.Sent[len(m.Sent)-1], true
}
