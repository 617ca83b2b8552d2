package service

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"anoa.com/schoolmanagement/internal/entity"
	"anoa.com/schoolmanagement/internal/modules/auth/dto"
	adminRepo "anoa.com/schoolmanagement/internal/modules/auth/repository"
	studentRepo "anoa.com/schoolmanagement/internal/modules/student/repository"
	"anoa.com/schoolmanagement/pkg/apperror"
	"anoa.com/schoolmanagement/pkg/credential"
	"anoa.com/schoolmanagement/pkg/ratelimiter"
	"anoa.com/schoolmanagement/pkg/token"
)

const (
	scopeAdmin   = "admin"
	scopeStudent = "student"
)

var errAdminExists = apperror.New(http.StatusBadRequest, "Admin already exists", apperror.ErrDuplicate)

type AuthService interface {
	AdminSignUp(ctx context.Context, input dto.AdminSignUpInput) (*dto.AuthResponse, error)
	AdminSignIn(ctx context.Context, input dto.AdminSignInInput) (*dto.AuthResponse, error)
	StudentSignIn(ctx context.Context, input dto.StudentSignInInput) (*dto.AuthResponse, error)
}

type authService struct {
	admins   adminRepo.AdminRepository
	students studentRepo.StudentRepository
	tokens   *token.Manager
	limiter  *ratelimiter.SignInLimiter
}

func NewAuthService(admins adminRepo.AdminRepository, students studentRepo.StudentRepository, tokens *token.Manager, limiter *ratelimiter.SignInLimiter) AuthService {
	return &authService{
		admins:   admins,
		students: students,
		tokens:   tokens,
		limiter:  limiter,
	}
}

func (s *authService) AdminSignUp(ctx context.Context, input dto.AdminSignUpInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.TrimSpace(input.Username)

	if _, err := s.admins.FindByEmailOrUsername(ctx, email, username); err == nil {
		return nil, errAdminExists
	} else if !errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
		return nil, err
	}

	hashed, err := credential.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	admin := &entity.Admin{
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		Role:         token.RoleAdmin.String(),
	}

	// Unique indexes on email and username catch concurrent sign-ups.
	if err := s.admins.Create(ctx, admin); err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrDuplicate) {
			return nil, errAdminExists
		}
		return nil, err
	}

	log.Printf("✅ Admin created: %s", admin.Username)
	return s.adminResponse(admin, "Admin created successfully")
}

func (s *authService) AdminSignIn(ctx context.Context, input dto.AdminSignInInput) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if err := s.checkLimit(ctx, scopeAdmin, email); err != nil {
		return nil, err
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
			return nil, s.failSignIn(ctx, scopeAdmin, email)
		}
		return nil, err
	}

	if !credential.CheckPassword(admin.PasswordHash, input.Password) {
		return nil, s.failSignIn(ctx, scopeAdmin, email)
	}

	s.resetLimit(ctx, scopeAdmin, email)
	log.Printf("✅ Admin logged in: %s", admin.Username)
	return s.adminResponse(admin, "Login successful")
}

func (s *authService) StudentSignIn(ctx context.Context, input dto.StudentSignInInput) (*dto.AuthResponse, error) {
	studentID := strings.TrimSpace(input.StudentID)

	if err := s.checkLimit(ctx, scopeStudent, studentID); err != nil {
		return nil, err
	}

	student, err := s.students.FindByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(apperror.FromStorage(err), apperror.ErrNotFound) {
			return nil, s.failSignIn(ctx, scopeStudent, studentID)
		}
		return nil, err
	}

	if !credential.CheckPassword(student.PasswordHash, input.Password) {
		return nil, s.failSignIn(ctx, scopeStudent, studentID)
	}

	s.resetLimit(ctx, scopeStudent, studentID)

	signed, expiresAt, err := s.tokens.Issue(token.Identity{
		UserID:    student.ID.String(),
		Role:      token.RoleStudent,
		StudentID: student.StudentID,
		Name:      student.Name,
		Class:     student.Class,
	})
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Student logged in: %s", student.StudentID)
	return &dto.AuthResponse{
		Message:   "Login successful",
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.Unix(),
		User: dto.StudentUser{
			ID:        student.ID.String(),
			StudentID: student.StudentID,
			Name:      student.Name,
			Email:     student.Email,
			Class:     student.Class,
			Role:      token.RoleStudent.String(),
		},
	}, nil
}

func (s *authService) adminResponse(admin *entity.Admin, message string) (*dto.AuthResponse, error) {
	signed, expiresAt, err := s.tokens.Issue(token.Identity{
		UserID:   admin.ID.String(),
		Role:     token.RoleAdmin,
		Username: admin.Username,
	})
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		Message:   message,
		Token:     signed,
		TokenType: "Bearer",
		ExpiresAt: expiresAt.Unix(),
		User: dto.AdminUser{
			ID:       admin.ID.String(),
			Username: admin.Username,
			Email:    admin.Email,
			Role:     token.RoleAdmin.String(),
		},
	}, nil
}

// Throttling fails open: a Redis outage must not lock everyone out.
func (s *authService) checkLimit(ctx context.Context, scope, identity string) error {
	allowed, err := s.limiter.Allow(ctx, scope, identity)
	if err != nil {
		log.Printf("⚠️ sign-in rate limit check failed: %v", err)
		return nil
	}
	if !allowed {
		return s.limitError(ctx, scope, identity)
	}
	return nil
}

func (s *authService) limitError(ctx context.Context, scope, identity string) error {
	appErr := apperror.New(http.StatusTooManyRequests, "Too many sign-in attempts, try again later", apperror.ErrRateLimitExceeded)
	if ttl, err := s.limiter.TTL(ctx, scope, identity); err == nil && ttl > 0 {
		appErr.RetryAfter = ttl
	}
	return appErr
}

func (s *authService) failSignIn(ctx context.Context, scope, identity string) error {
	if err := s.limiter.RegisterFailure(ctx, scope, identity); err != nil {
		log.Printf("⚠️ failed to record sign-in failure: %v", err)
	}
	return apperror.ErrInvalidCredentials
}

func (s *authService) resetLimit(ctx context.Context, scope, identity string) {
	if err := s.limiter.Reset(ctx, scope, identity); err != nil {
		log.Printf("⚠️ failed to reset sign-in limit: %v", err)
	}
}
