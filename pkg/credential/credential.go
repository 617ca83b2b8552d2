package credential

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	// HashCost is the bcrypt cost used for admin and student passwords.
	HashCost = 10

	PasswordLength   = 10
	passwordAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

	// MaxRollNumber keeps the roll part of a student id at exactly three digits.
	MaxRollNumber = 999
)

var ErrRollNumberRange = fmt.Errorf("roll number must be between 1 and %d", MaxRollNumber)

// GenerateStudentID builds <year><CLASS><roll>, e.g. 2026 + "10 a" + 7 -> "202610A007".
// The roll part is fixed-width, so rolls outside 1..MaxRollNumber are rejected.
func GenerateStudentID(className string, rollNumber int, now time.Time) (string, error) {
	if rollNumber < 1 || rollNumber > MaxRollNumber {
		return "", ErrRollNumberRange
	}

	classCode := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, className)

	return fmt.Sprintf("%d%s%03d", now.Year(), strings.ToUpper(classCode), rollNumber), nil
}

// GeneratePassword returns a random alphanumeric password of PasswordLength chars.
func GeneratePassword() (string, error) {
	limit := big.NewInt(int64(len(passwordAlphabet)))
	buf := make([]byte, PasswordLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to generate password: %w", err)
		}
		buf[i] = passwordAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
