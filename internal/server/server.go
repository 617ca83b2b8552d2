package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"anoa.com/schoolmanagement/internal/config"
	"anoa.com/schoolmanagement/internal/jobs"
	"anoa.com/schoolmanagement/internal/middleware"
	"anoa.com/schoolmanagement/pkg/mailer"
	"anoa.com/schoolmanagement/pkg/ratelimiter"
	"anoa.com/schoolmanagement/pkg/response"
	"anoa.com/schoolmanagement/pkg/token"

	authHttp "anoa.com/schoolmanagement/internal/modules/auth/delivery/http"
	authRepo "anoa.com/schoolmanagement/internal/modules/auth/repository"
	authService "anoa.com/schoolmanagement/internal/modules/auth/service"

	feeHttp "anoa.com/schoolmanagement/internal/modules/fee/delivery/http"
	feeRepo "anoa.com/schoolmanagement/internal/modules/fee/repository"
	feeService "anoa.com/schoolmanagement/internal/modules/fee/service"

	libraryHttp "anoa.com/schoolmanagement/internal/modules/library/delivery/http"
	libraryRepo "anoa.com/schoolmanagement/internal/modules/library/repository"
	libraryService "anoa.com/schoolmanagement/internal/modules/library/service"

	searchService "anoa.com/schoolmanagement/internal/modules/search/service"

	studentHttp "anoa.com/schoolmanagement/internal/modules/student/delivery/http"
	studentRepo "anoa.com/schoolmanagement/internal/modules/student/repository"
	studentService "anoa.com/schoolmanagement/internal/modules/student/service"

	timetableHttp "anoa.com/schoolmanagement/internal/modules/timetable/delivery/http"
	timetableRepo "anoa.com/schoolmanagement/internal/modules/timetable/repository"
	timetableService "anoa.com/schoolmanagement/internal/modules/timetable/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Handlers groups the per-resource HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth      *authHttp.AuthHandler
	Student   *studentHttp.StudentHandler
	Library   *libraryHttp.LibraryHandler
	Timetable *timetableHttp.TimetableHandler
	Fee       *feeHttp.FeeHandler
}

type Server struct {
	engine      *gin.Engine
	httpServer  *http.Server
	scheduler   *jobs.Scheduler
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	tokens := token.NewManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	limiter := ratelimiter.NewSignInLimiter(redisClient, cfg.SignInMaxAttempts, cfg.SignInLockWindow)

	mail := mailer.NewSMTPMailer(mailer.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	})

	var studentIndex searchService.StudentIndex
	if cfg.MeiliSearchHost != "" {
		meiliHost := cfg.MeiliSearchHost
		if !strings.HasPrefix(meiliHost, "http") {
			meiliHost = "http://" + meiliHost + ":7700"
		}
		meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
		studentIndex = searchService.NewMeiliStudentIndex(meiliClient)
	} else {
		log.Println("MEILISEARCH_HOST not set, student search uses the database")
	}

	adminRepository := authRepo.NewAdminRepository(db)
	studentRepository := studentRepo.NewStudentRepository(db)
	cardRepository := libraryRepo.NewLibraryCardRepository(db)
	timetableRepository := timetableRepo.NewTimetableRepository(db)
	feeRepository := feeRepo.NewFeeRepository(db)

	authSvc := authService.NewAuthService(adminRepository, studentRepository, tokens, limiter)
	studentSvc := studentService.NewStudentService(studentRepository, mail, studentIndex)
	librarySvc := libraryService.NewLibraryService(cardRepository, studentRepository)
	timetableSvc := timetableService.NewTimetableService(timetableRepository)
	feeSvc := feeService.NewFeeService(feeRepository)

	scheduler := jobs.NewScheduler(time.Minute)
	if err := scheduler.Register(jobs.NewCardExpiryJob(librarySvc, cfg.CardExpirySchedule)); err != nil {
		return nil, err
	}

	router := NewRouter(cfg.AllowedOrigins, middleware.NewAuthMiddleware(tokens), Handlers{
		Auth:      authHttp.NewAuthHandler(authSvc),
		Student:   studentHttp.NewStudentHandler(studentSvc),
		Library:   libraryHttp.NewLibraryHandler(librarySvc),
		Timetable: timetableHttp.NewTimetableHandler(timetableSvc),
		Fee:       feeHttp.NewFeeHandler(feeSvc),
	})

	return &Server{
		engine: router,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		scheduler:   scheduler,
		db:          db,
		redisClient: redisClient,
	}, nil
}

// NewRouter builds the gin engine with middleware and the full route table.
func NewRouter(allowedOrigins string, authMiddleware *middleware.AuthMiddleware, h Handlers) *gin.Engine {
	router := gin.New()

	setupCORS(router, allowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		SkipPaths: []string{"/api/test"},
	}))

	api := router.Group("/api")

	api.GET("/test", func(c *gin.Context) {
		response.Message(c, http.StatusOK, "School Management System API is working!")
	})

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/admin/signup", h.Auth.AdminSignUp)
		auth.POST("/admin/signin", h.Auth.AdminSignIn)
		auth.POST("/student/signin", h.Auth.StudentSignIn)
	}

	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		// Admin or owning student; ownership is checked in the handler
		protected.GET("/students/:id", h.Student.GetStudent)
		protected.GET("/library/cards/:studentId", h.Library.GetStudentCard)
		protected.GET("/timetable/:class", h.Timetable.GetClassTimetable)
		protected.GET("/fees/:class", h.Fee.GetClassFee)

		admin := protected.Group("")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.POST("/students", h.Student.RegisterStudent)
			admin.GET("/students", h.Student.GetAllStudents)
			admin.GET("/students/search", h.Student.SearchStudents)

			admin.POST("/library/cards", h.Library.IssueCard)
			admin.GET("/library/cards", h.Library.GetAllCards)

			admin.POST("/timetable", h.Timetable.CreateEntry)
			admin.DELETE("/timetable/:id", h.Timetable.DeleteEntry)

			admin.POST("/fees", h.Fee.UpsertFee)
			admin.GET("/fees", h.Fee.GetAllFees)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		response.Message(c, http.StatusNotFound, "Route not found")
	})

	return router
}

// Handler exposes the engine for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run starts background jobs and serves until Shutdown is called.
func (s *Server) Run() error {
	s.scheduler.Start()

	log.Printf("🚀 Server listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, stops jobs and closes Redis.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)

	s.scheduler.Stop(ctx)

	if s.redisClient != nil {
		if cerr := s.redisClient.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	if allowedOrigins == "" || allowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		for _, origin := range strings.Split(allowedOrigins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
			}
		}
		corsConfig.AllowCredentials = true
	}

	router.Use(cors.New(corsConfig))
}
