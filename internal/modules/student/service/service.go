package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/schoolmanagement/internal/entity"
	search "anoa.com/schoolmanagement/internal/modules/search/service"
	"anoa.com/schoolmanagement/internal/modules/student/dto"
	"anoa.com/schoolmanagement/internal/modules/student/repository"
	"anoa.com/schoolmanagement/pkg/apperror"
	"anoa.com/schoolmanagement/pkg/credential"
	"anoa.com/schoolmanagement/pkg/mailer"
	"anoa.com/schoolmanagement/pkg/sanitize"
)

const defaultSearchLimit = 20

var (
	errRollTaken       = apperror.New(http.StatusBadRequest, "Student with this roll number already exists in this class", apperror.ErrDuplicate)
	errStudentIDTaken  = apperror.New(http.StatusBadRequest, "A student with the generated student ID already exists", apperror.ErrDuplicate)
	errRollRange       = apperror.New(http.StatusBadRequest, "Roll number must be between 1 and 999", apperror.ErrInvalidInput)
	errStudentNotFound = apperror.New(http.StatusNotFound, "Student not found", apperror.ErrNotFound)
	errInvalidDOB      = apperror.New(http.StatusBadRequest, "Date of birth must be a date (YYYY-MM-DD)", apperror.ErrInvalidInput)
)

var dobLayouts = []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"}

type StudentService interface {
	Register(ctx context.Context, input dto.RegisterStudentInput) (*dto.RegisterStudentResponse, error)
	GetAll(ctx context.Context) ([]*entity.Student, error)
	GetByStudentID(ctx context.Context, studentID string) (*entity.Student, error)
	Search(ctx context.Context, query dto.SearchStudentsQuery) ([]*entity.Student, error)
}

type studentService struct {
	repo   repository.StudentRepository
	mailer mailer.Mailer
	index  search.StudentIndex
	now    func() time.Time
}

// NewStudentService wires the student use cases. index may be nil, in which
// case search falls back to the database.
func NewStudentService(repo repository.StudentRepository, m mailer.Mailer, index search.StudentIndex) StudentService {
	return &studentService{
		repo:   repo,
		mailer: m,
		index:  index,
		now:    time.Now,
	}
}

func (s *studentService) Register(ctx context.Context, input dto.RegisterStudentInput) (*dto.RegisterStudentResponse, error) {
	dob, err := parseDOB(input.DOB)
	if err != nil {
		return nil, err
	}

	class := strings.TrimSpace(input.Class)
	studentID, err := credential.GenerateStudentID(class, input.RollNumber, s.now())
	if err != nil {
		return nil, errRollRange
	}

	if _, err := s.repo.FindByClassAndRoll(ctx, class, input.RollNumber); err == nil {
		return nil, errRollTaken
	} else if !errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
		return nil, err
	}

	// Classes differing only in case or spacing map to the same id.
	if _, err := s.repo.FindByStudentID(ctx, studentID); err == nil {
		return nil, errStudentIDTaken
	} else if !errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
		return nil, err
	}

	password, err := credential.GeneratePassword()
	if err != nil {
		return nil, err
	}
	hashed, err := credential.HashPassword(password)
	if err != nil {
		return nil, err
	}

	student := &entity.Student{
		StudentID:    studentID,
		PasswordHash: hashed,
		Name:         sanitize.Text(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Class:        class,
		RollNumber:   input.RollNumber,
		Address:      sanitize.Text(input.Address),
		PhoneNumber:  strings.TrimSpace(input.PhoneNumber),
		DOB:          dob,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrDuplicate) {
			return nil, s.duplicateCause(ctx, student)
		}
		return nil, err
	}
	log.Printf("✅ Student registered: %s", studentID)

	if s.index != nil {
		if err := s.index.IndexStudent(student); err != nil {
			log.Printf("⚠️ Failed to index student %s: %v", studentID, err)
		}
	}

	emailSent := true
	if err := s.mailer.SendStudentCredentials(ctx, mailer.StudentCredentials{
		To:        student.Email,
		Name:      student.Name,
		StudentID: student.StudentID,
		Password:  password,
	}); err != nil {
		emailSent = false
		log.Printf("❌ Email send error for %s: %v", studentID, err)
	} else {
		log.Printf("✅ Email sent to: %s", student.Email)
	}

	return &dto.RegisterStudentResponse{
		Message: "Student registered successfully",
		Student: dto.StudentSummary{
			StudentID:  student.StudentID,
			Name:       student.Name,
			Email:      student.Email,
			Class:      student.Class,
			RollNumber: student.RollNumber,
		},
		EmailSent: emailSent,
	}, nil
}

// duplicateCause tells a lost class/roll race apart from a student id clash.
func (s *studentService) duplicateCause(ctx context.Context, student *entity.Student) error {
	if _, err := s.repo.FindByClassAndRoll(ctx, student.Class, student.RollNumber); err == nil {
		return errRollTaken
	}
	return errStudentIDTaken
}

func (s *studentService) GetAll(ctx context.Context) ([]*entity.Student, error) {
	students, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []*entity.Student{}
	}
	return students, nil
}

func (s *studentService) GetByStudentID(ctx context.Context, studentID string) (*entity.Student, error) {
	student, err := s.repo.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
			return nil, errStudentNotFound
		}
		return nil, err
	}
	return student, nil
}

func (s *studentService) Search(ctx context.Context, query dto.SearchStudentsQuery) ([]*entity.Student, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	q := strings.TrimSpace(query.Query)

	var (
		students []*entity.Student
		err      error
	)
	if s.index != nil {
		students, err = s.searchIndex(ctx, q, limit)
		if err != nil {
			log.Printf("⚠️ Student index search failed, falling back to database: %v", err)
			students, err = s.repo.Search(ctx, q, limit)
		}
	} else {
		students, err = s.repo.Search(ctx, q, limit)
	}
	if err != nil {
		return nil, err
	}
	if students == nil {
		students = []*entity.Student{}
	}
	return students, nil
}

// searchIndex resolves index hits against the database and keeps the
// index's relevance order.
func (s *studentService) searchIndex(ctx context.Context, q string, limit int) ([]*entity.Student, error) {
	ids, err := s.index.SearchStudents(q, limit)
	if err != nil {
		return nil, err
	}

	found, err := s.repo.FindByStudentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*entity.Student, len(found))
	for _, st := range found {
		byID[st.StudentID] = st
	}

	ordered := make([]*entity.Student, 0, len(ids))
	for _, id := range ids {
		if st, ok := byID[id]; ok {
			ordered = append(ordered, st)
		}
	}
	return ordered, nil
}

func parseDOB(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dobLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errInvalidDOB
}
