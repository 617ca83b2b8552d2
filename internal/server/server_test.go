package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"anoa.com/schoolmanagement/internal/middleware"
	"anoa.com/schoolmanagement/internal/testutil"
	"anoa.com/schoolmanagement/pkg/token"
	"github.com/gin-gonic/gin"

	authHttp "anoa.com/schoolmanagement/internal/modules/auth/delivery/http"
	authService "anoa.com/schoolmanagement/internal/modules/auth/service"
	feeHttp "anoa.com/schoolmanagement/internal/modules/fee/delivery/http"
	feeService "anoa.com/schoolmanagement/internal/modules/fee/service"
	libraryHttp "anoa.com/schoolmanagement/internal/modules/library/delivery/http"
	libraryService "anoa.com/schoolmanagement/internal/modules/library/service"
	studentHttp "anoa.com/schoolmanagement/internal/modules/student/delivery/http"
	studentService "anoa.com/schoolmanagement/internal/modules/student/service"
	timetableHttp "anoa.com/schoolmanagement/internal/modules/timetable/delivery/http"
	timetableService "anoa.com/schoolmanagement/internal/modules/timetable/service"
)

type testApp struct {
	t      *testing.T
	router *gin.Engine
	mail   *testutil.Mailer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := token.NewManager("test-secret", "school", time.Hour)
	students := testutil.NewStudentStore()
	mail := &testutil.Mailer{}

	router := NewRouter("*", middleware.NewAuthMiddleware(tokens), Handlers{
		Auth:      authHttp.NewAuthHandler(authService.NewAuthService(testutil.NewAdminStore(), students, tokens, nil)),
		Student:   studentHttp.NewStudentHandler(studentService.NewStudentService(students, mail, nil)),
		Library:   libraryHttp.NewLibraryHandler(libraryService.NewLibraryService(testutil.NewLibraryCardStore(), students)),
		Timetable: timetableHttp.NewTimetableHandler(timetableService.NewTimetableService(testutil.NewTimetableStore())),
		Fee:       feeHttp.NewFeeHandler(feeService.NewFeeService(testutil.NewFeeStore())),
	})

	return &testApp{t: t, router: router, mail: mail}
}

func (a *testApp) do(method, path, tok string, body any) (int, map[string]any, string) {
	a.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w.Code, out, w.Body.String()
}

func (a *testApp) adminToken() string {
	a.t.Helper()
	code, body, raw := a.do(http.MethodPost, "/api/auth/admin/signup", "", map[string]any{
		"username": "principal",
		"email":    "principal@school.org",
		"password": "s3cret!",
	})
	if code != http.StatusCreated {
		a.t.Fatalf("admin sign-up: %d %s", code, raw)
	}

	code, body, raw = a.do(http.MethodPost, "/api/auth/admin/signin", "", map[string]any{
		"email":    "principal@school.org",
		"password": "s3cret!",
	})
	if code != http.StatusOK {
		a.t.Fatalf("admin sign-in: %d %s", code, raw)
	}
	if body["tokenType"] != "Bearer" {
		a.t.Fatalf("expected tokenType Bearer, got %s", raw)
	}
	if _, ok := body["expiresAt"].(float64); !ok {
		a.t.Fatalf("expected numeric expiresAt, got %s", raw)
	}
	return body["token"].(string)
}

// registerStudent returns the new student's id and a signed-in token.
func (a *testApp) registerStudent(admin, class string, roll int) (string, string) {
	a.t.Helper()
	code, body, raw := a.do(http.MethodPost, "/api/students", admin, map[string]any{
		"name":        "Student " + class,
		"email":       "s@example.com",
		"class":       class,
		"rollNumber":  roll,
		"address":     "1 Main St",
		"phoneNumber": "555-0100",
		"dob":         "2010-01-01",
	})
	if code != http.StatusCreated {
		a.t.Fatalf("register student: %d %s", code, raw)
	}
	studentID := body["student"].(map[string]any)["studentId"].(string)

	sent, ok := a.mail.Last()
	if !ok {
		a.t.Fatalf("expected credentials email")
	}

	code, body, raw = a.do(http.MethodPost, "/api/auth/student/signin", "", map[string]any{
		"studentId": studentID,
		"password":  sent.Password,
	})
	if code != http.StatusOK {
		a.t.Fatalf("student sign-in: %d %s", code, raw)
	}
	return studentID, body["token"].(string)
}

func TestHealthAndNotFound(t *testing.T) {
	app := newTestApp(t)

	code, body, _ := app.do(http.MethodGet, "/api/test", "", nil)
	if code != http.StatusOK || body["message"] != "School Management System API is working!" {
		t.Fatalf("unexpected health response %d %v", code, body)
	}

	code, body, _ = app.do(http.MethodGet, "/api/nope", "", nil)
	if code != http.StatusNotFound || body["message"] != "Route not found" {
		t.Fatalf("expected 404 Route not found, got %d %v", code, body)
	}
}

func TestAuthGates(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken()
	_, student := app.registerStudent(admin, "10A", 1)

	if code, _, _ := app.do(http.MethodGet, "/api/students", "", nil); code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", code)
	}
	if code, _, _ := app.do(http.MethodGet, "/api/students", "not-a-token", nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 with bad token, got %d", code)
	}

	adminOnly := []struct{ method, path string }{
		{http.MethodPost, "/api/students"},
		{http.MethodGet, "/api/students"},
		{http.MethodGet, "/api/students/search?q=a"},
		{http.MethodPost, "/api/library/cards"},
		{http.MethodGet, "/api/library/cards"},
		{http.MethodPost, "/api/timetable"},
		{http.MethodDelete, "/api/timetable/0190a6a4-0000-7000-8000-000000000000"},
		{http.MethodPost, "/api/fees"},
		{http.MethodGet, "/api/fees"},
	}
	for _, r := range adminOnly {
		code, body, _ := app.do(r.method, r.path, student, map[string]any{})
		if code != http.StatusForbidden || body["message"] != "Admin access required" {
			t.Fatalf("%s %s: expected 403, got %d %v", r.method, r.path, code, body)
		}
	}
}

func TestDuplicateAdminSignUp(t *testing.T) {
	app := newTestApp(t)
	app.adminToken()

	code, body, _ := app.do(http.MethodPost, "/api/auth/admin/signup", "", map[string]any{
		"username": "principal",
		"email":    "principal@school.org",
		"password": "s3cret!",
	})
	if code != http.StatusBadRequest || body["message"] != "Admin already exists" {
		t.Fatalf("expected 400 Admin already exists, got %d %v", code, body)
	}
}

func TestBadCredentials(t *testing.T) {
	app := newTestApp(t)
	app.adminToken()

	code, body, _ := app.do(http.MethodPost, "/api/auth/admin/signin", "", map[string]any{
		"email":    "principal@school.org",
		"password": "wrong",
	})
	if code != http.StatusBadRequest || body["message"] != "Invalid credentials" {
		t.Fatalf("expected 400 Invalid credentials, got %d %v", code, body)
	}
}

func TestValidationErrors(t *testing.T) {
	app := newTestApp(t)

	code, body, _ := app.do(http.MethodPost, "/api/auth/admin/signup", "", map[string]any{"username": "ab"})
	if code != http.StatusBadRequest || body["message"] == "" {
		t.Fatalf("expected 400 with a message, got %d %v", code, body)
	}
}

func TestStudentListingAndOwnership(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken()
	ownID, own := app.registerStudent(admin, "10A", 1)
	otherID, _ := app.registerStudent(admin, "10A", 2)

	code, _, raw := app.do(http.MethodGet, "/api/students", admin, nil)
	if code != http.StatusOK {
		t.Fatalf("list students: %d %s", code, raw)
	}
	if strings.Contains(raw, "password") {
		t.Fatalf("listing leaks password field: %s", raw)
	}

	if code, _, _ := app.do(http.MethodGet, "/api/students/"+ownID, own, nil); code != http.StatusOK {
		t.Fatalf("expected student to read own record, got %d", code)
	}
	code, body, _ := app.do(http.MethodGet, "/api/students/"+otherID, own, nil)
	if code != http.StatusForbidden || body["message"] != "Access denied" {
		t.Fatalf("expected 403 Access denied, got %d %v", code, body)
	}
	if code, _, _ := app.do(http.MethodGet, "/api/students/"+otherID, admin, nil); code != http.StatusOK {
		t.Fatalf("expected admin to read any record, got %d", code)
	}

	code, _, raw = app.do(http.MethodPost, "/api/students", admin, map[string]any{
		"name": "Dup", "email": "d@example.com", "class": "10A", "rollNumber": 1,
		"address": "x", "phoneNumber": "1", "dob": "2010-01-01",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for taken roll number, got %d %s", code, raw)
	}
}

func TestStudentIDClashes(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken()
	app.registerStudent(admin, "11", 1)

	student := func(class string, roll int) map[string]any {
		return map[string]any{
			"name": "Clash", "email": "c@example.com", "class": class, "rollNumber": roll,
			"address": "x", "phoneNumber": "1", "dob": "2010-01-01",
		}
	}

	code, body, _ := app.do(http.MethodPost, "/api/students", admin, student("1", 1001))
	if code != http.StatusBadRequest || body["message"] != "Roll number must be at most 999" {
		t.Fatalf("expected 400 for roll 1001, got %d %v", code, body)
	}

	app.registerStudent(admin, "10a", 4)
	code, body, _ = app.do(http.MethodPost, "/api/students", admin, student("10A", 4))
	if code != http.StatusBadRequest || body["message"] != "A student with the generated student ID already exists" {
		t.Fatalf("expected 400 student id clash, got %d %v", code, body)
	}
}

func TestStudentSearch(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken()
	app.registerStudent(admin, "10A", 1)

	code, _, raw := app.do(http.MethodGet, "/api/students/search?q=student", admin, nil)
	if code != http.StatusOK || !strings.Contains(raw, "10A") {
		t.Fatalf("unexpected search response %d %s", code, raw)
	}

	if code, _, _ := app.do(http.MethodGet, "/api/students/search", admin, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 without q, got %d", code)
	}
}

func TestLibraryCardFlow(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken()
	studentID, student := app.registerStudent(admin, "10A", 1)

	code, body, raw := app.do(http.MethodPost, "/api/library/cards", admin, map[string]any{"studentId": studentID})
	if code != http.StatusCreated || body["message"] != "Library card issued successfully" {
		t.Fatalf("first issue: %d %s", code, raw)
	}
	card := body["libraryCard"].(map[string]any)
	if card["status"] != "active" || !strings.HasPrefix(card["cardNumber"].(string), "LIB") {
		t.Fatalf("unexpected card %v", card)
	}

	code, body, _ = app.do(http.MethodPost, "/api/library/cards", admin, map[string]any{"studentId": studentID})
	if code != http.StatusBadRequest || body["message"] != "Library card already issued to this student" {
		t.Fatalf("second issue: expected 400, got %d %v", code, body)
	}

	if code, _, _ := app.do(http.MethodGet, "/api/library/cards/"+studentID, student, nil); code != http.StatusOK {
		t.Fatalf("expected student to read own card, got %d", code)
	}
	if code, _, _ := app.do(http.MethodGet, "/api/library/cards/someone-else", student, nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 for another student's card, got %d", code)
	}
	if code, _, _ := app.do(http.MethodGet, "/api/library/cards/nobody", admin, nil); code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing card, got %d", code)
	}

	code, body, _ = app.do(http.MethodPost, "/api/library/cards", admin, map[string]any{"studentId": "nobody"})
	if code != http.StatusNotFound || body["message"] != "Student not found" {
		t.Fatalf("expected 404 Student not found, got %d %v", code, body)
	}
}

func TestTimetableClassScoping(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken()
	_, student := app.registerStudent(admin, "10A", 1)

	code, body, raw := app.do(http.MethodPost, "/api/timetable", admin, map[string]any{
		"class": "10A", "day": "Monday", "period": 1, "subject": "Math", "teacher": "Mr. Rao", "time": "09:00",
	})
	if code != http.StatusCreated || body["message"] != "Timetable entry added successfully" {
		t.Fatalf("create entry: %d %s", code, raw)
	}
	entryID := body["timetable"].(map[string]any)["id"].(string)

	if code, _, _ := app.do(http.MethodGet, "/api/timetable/10B", student, nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 for other class, got %d", code)
	}

	code, _, raw = app.do(http.MethodGet, "/api/timetable/10A", student, nil)
	if code != http.StatusOK || !strings.Contains(raw, "Math") {
		t.Fatalf("expected own class timetable, got %d %s", code, raw)
	}

	code, body, _ = app.do(http.MethodDelete, "/api/timetable/"+entryID, admin, nil)
	if code != http.StatusOK || body["message"] != "Timetable entry deleted successfully" {
		t.Fatalf("delete entry: %d %v", code, body)
	}
	if code, _, _ := app.do(http.MethodDelete, "/api/timetable/"+entryID, admin, nil); code != http.StatusOK {
		t.Fatalf("expected repeat delete to succeed, got %d", code)
	}
	if code, _, _ := app.do(http.MethodDelete, "/api/timetable/not-a-uuid", admin, nil); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", code)
	}
}

func TestFeeUpsert(t *testing.T) {
	app := newTestApp(t)
	admin := app.adminToken()
	_, student := app.registerStudent(admin, "9", 1)

	fee := map[string]any{"class": "9", "tuitionFee": 100, "libraryFee": 10, "sportsFee": 5, "labFee": 5, "examFee": 10}
	code, body, raw := app.do(http.MethodPost, "/api/fees", admin, fee)
	if code != http.StatusCreated {
		t.Fatalf("create fee: %d %s", code, raw)
	}
	first := body["feeStructure"].(map[string]any)
	if first["totalFee"].(float64) != 130 {
		t.Fatalf("expected total 130, got %v", first["totalFee"])
	}

	fee["tuitionFee"] = 200
	code, body, raw = app.do(http.MethodPost, "/api/fees", admin, fee)
	if code != http.StatusOK || body["message"] != "Fee structure updated successfully" {
		t.Fatalf("update fee: %d %s", code, raw)
	}
	second := body["feeStructure"].(map[string]any)
	if second["totalFee"].(float64) != 230 || second["id"] != first["id"] {
		t.Fatalf("expected same record with total 230, got %v", second)
	}

	code, body, _ = app.do(http.MethodGet, "/api/fees/9", student, nil)
	if code != http.StatusOK || body["totalFee"].(float64) != 230 {
		t.Fatalf("student fee read: %d %v", code, body)
	}
	if code, _, _ := app.do(http.MethodGet, "/api/fees/10", student, nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 for other class fee, got %d", code)
	}
	code, body, _ = app.do(http.MethodGet, "/api/fees/10", admin, nil)
	if code != http.StatusNotFound || body["message"] != "Fee structure not found for this class" {
		t.Fatalf("expected 404, got %d %v", code, body)
	}

	delete(fee, "examFee")
	if code, _, _ := app.do(http.MethodPost, "/api/fees", admin, fee); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing component, got %d", code)
	}
}
