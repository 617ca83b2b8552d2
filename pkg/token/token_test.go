package token

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("secret", "school", time.Hour)

	signed, expiresAt, err := m.Issue(Identity{
		UserID:    "user-1",
		Role:      RoleStudent,
		StudentID: "202610A001",
		Name:      "Asha",
		Class:     "10A",
	})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Fatalf("expected expiry in the future")
	}

	claims, err := m.Verify(signed)
	if err != nil {
		t.Fatalf("verify error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != RoleStudent || claims.StudentID != "202610A001" || claims.Class != "10A" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	m := NewManager("secret", "school", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	signed, _, err := m.Issue(Identity{UserID: "a", Role: RoleAdmin, Username: "root"})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	m.now = time.Now
	if _, err := m.Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsWrongSecretAndGarbage(t *testing.T) {
	signed, _, err := NewManager("one", "", time.Hour).Issue(Identity{UserID: "a", Role: RoleAdmin})
	if err != nil {
		t.Fatalf("issue error: %v", err)
	}

	m := NewManager("two", "", time.Hour)
	for _, tok := range []string{signed, "", "not.a.token"} {
		if _, err := m.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestVerifyRejectsUnknownRole(t *testing.T) {
	claims := Claims{
		UserID: "x",
		Role:   Role("teacher"),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := NewManager("secret", "", time.Hour).Verify(signed); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestIssueRejectsUnknownRole(t *testing.T) {
	if _, _, err := NewManager("secret", "", time.Hour).Issue(Identity{UserID: "x", Role: "guest"}); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestCapabilities(t *testing.T) {
	admin := &Claims{Role: RoleAdmin}
	student := &Claims{Role: RoleStudent, StudentID: "202610A001", Class: "10A"}

	if !admin.CanViewStudent("anything") || !admin.CanViewClass("10B") {
		t.Fatalf("admin should see everything")
	}
	if !student.CanViewStudent("202610A001") || student.CanViewStudent("202610A002") {
		t.Fatalf("student should only see own record")
	}
	if !student.CanViewClass("10A") || student.CanViewClass("10B") {
		t.Fatalf("student should only see own class")
	}
	if student.IsAdmin() {
		t.Fatalf("student is not admin")
	}

	var none *Claims
	if none.IsAdmin() || none.CanViewClass("10A") || none.CanViewStudent("x") {
		t.Fatalf("nil claims must grant nothing")
	}
}
