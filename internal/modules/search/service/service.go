package service

import (
	"encoding/json"
	"fmt"
	"log"

	"anoa.com/schoolmanagement/internal/entity"
	"github.com/meilisearch/meilisearch-go"
)

const studentsIndex = "students"

// StudentIndex keeps a searchable directory of students. Implementations
// never store password hashes.
type StudentIndex interface {
	IndexStudent(student *entity.Student) error
	SearchStudents(query string, limit int) ([]string, error)
}

type meiliStudentIndex struct {
	client meilisearch.ServiceManager
}

func NewMeiliStudentIndex(client meilisearch.ServiceManager) StudentIndex {
	s := &meiliStudentIndex{client: client}
	s.initIndex()
	return s
}

func (s *meiliStudentIndex) initIndex() {
	searchable := []string{"name", "studentId", "email", "class"}
	if _, err := s.client.Index(studentsIndex).UpdateSearchableAttributes(&searchable); err != nil {
		log.Printf("Failed to update students searchable attributes: %v", err)
	}

	sortable := []string{"class", "rollNumber"}
	if _, err := s.client.Index(studentsIndex).UpdateSortableAttributes(&sortable); err != nil {
		log.Printf("Failed to update students sortable attributes: %v", err)
	}

	log.Println("Meilisearch students index initialized")
}

type meiliStudentDoc struct {
	ID         string `json:"id"`
	StudentID  string `json:"studentId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Class      string `json:"class"`
	RollNumber int    `json:"rollNumber"`
}

func (s *meiliStudentIndex) IndexStudent(student *entity.Student) error {
	doc := meiliStudentDoc{
		ID:         student.ID.String(),
		StudentID:  student.StudentID,
		Name:       student.Name,
		Email:      student.Email,
		Class:      student.Class,
		RollNumber: student.RollNumber,
	}

	task, err := s.client.Index(studentsIndex).AddDocuments([]meiliStudentDoc{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed student %s, task id: %d", student.StudentID, task.TaskUID)
	return nil
}

type searchHits struct {
	Hits []struct {
		StudentID string `json:"studentId"`
	} `json:"hits"`
}

// SearchStudents returns matching student identifiers in relevance order.
func (s *meiliStudentIndex) SearchStudents(query string, limit int) ([]string, error) {
	raw, err := s.client.Index(studentsIndex).SearchRaw(query, &meilisearch.SearchRequest{
		Limit:                int64(limit),
		AttributesToRetrieve: []string{"studentId"},
	})
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}

	var res searchHits
	if err := json.Unmarshal(*raw, &res); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		ids = append(ids, hit.StudentID)
	}
	return ids, nil
}

func strPtr(s string) *string {
	return &s
}
