package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/d9647/EduDirectory-sub000/internal/db"
	"github.com/d9647/EduDirectory-sub000/internal/handler"
	"github.com/d9647/EduDirectory-sub000/internal/middleware"
	edumongo "github.com/d9647/EduDirectory-sub000/internal/mongo"
	"github.com/d9647/EduDirectory-sub000/internal/repository"
	"github.com/d9647/EduDirectory-sub000/internal/service"
)

func main() {
	_ = godotenv.Load()

	logger, err := newLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		sugar.Fatal("DATABASE_URL is required")
	}
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		sugar.Fatal("JWT_SECRET is required")
	}

	conn, err := db.Connect(databaseURL, sugar)
	if err != nil {
		sugar.Fatalw("database connect failed", "error", err)
	}
	defer conn.Close()

	if err := db.EnsureSchema(conn); err != nil {
		sugar.Fatalw("schema migration failed", "error", err)
	}

	// Repositories.
	tutoring := repository.NewTutoringProviderRepository(conn)
	camps := repository.NewSummerCampRepository(conn)
	internships := repository.NewInternshipRepository(conn)
	jobs := repository.NewJobRepository(conn)
	services := repository.NewServiceRepository(conn)
	events := repository.NewEventRepository(conn)
	registry := repository.NewRegistry(tutoring, camps, internships, jobs, services, events)

	users := repository.NewUserRepository(conn)
	reviews := repository.NewReviewRepository(conn)
	engagement := repository.NewEngagementRepository(conn)
	reports := repository.NewReportRepository(conn)
	viewRepo := repository.NewViewRepository(conn)

	// Services.
	reviewSvc := service.NewReviewService(reviews, users)
	viewSvc := service.NewViewService(viewRepo, sugar)

	// Photo storage is optional: without MONGO_URL the upload routes are
	// simply not registered.
	var photos *repository.PhotoRepository
	if mongoURL := os.Getenv("MONGO_URL"); mongoURL != "" {
		client, err := edumongo.NewClient(mongoURL)
		if err != nil {
			sugar.Fatalw("mongo connect failed", "error", err)
		}
		dbName := os.Getenv("MONGO_DB")
		if dbName == "" {
			dbName = "edudirectory"
		}
		photos = repository.NewPhotoRepository(client, dbName)
	} else {
		sugar.Info("MONGO_URL not set, photo upload disabled")
	}

	auth := middleware.NewAuth(jwtSecret)
	handler.RegisterValidators()

	r := gin.Default()

	// Public routes. OptionalAuth lets submissions and view tracking pick up
	// the caller identity when a token is present.
	api := r.Group("/api", auth.OptionalAuth())
	protected := r.Group("/api", auth.RequireAuth())
	admin := r.Group("/api/admin", auth.RequireAuth(), auth.RequireAdmin())

	(&handler.TutoringHandler{Repo: tutoring, Users: users, Views: viewSvc, Log: sugar}).RegisterRoutes(api)
	(&handler.CampHandler{Repo: camps, Users: users, Views: viewSvc, Log: sugar}).RegisterRoutes(api)
	(&handler.InternshipHandler{Repo: internships, Users: users, Views: viewSvc, Log: sugar}).RegisterRoutes(api)
	(&handler.JobHandler{Repo: jobs, Users: users, Views: viewSvc, Log: sugar}).RegisterRoutes(api)
	(&handler.ServiceHandler{Repo: services, Users: users, Views: viewSvc, Log: sugar}).RegisterRoutes(api)
	(&handler.EventHandler{Repo: events, Users: users, Views: viewSvc, Log: sugar}).RegisterRoutes(api)

	reviewHandler := &handler.ReviewHandler{Reviews: reviewSvc, Log: sugar}
	reviewHandler.RegisterPublicRoutes(api)
	reviewHandler.RegisterProtectedRoutes(protected)

	(&handler.EngagementHandler{Repo: engagement, Log: sugar}).RegisterRoutes(protected)
	(&handler.ReportHandler{Repo: reports, Log: sugar}).RegisterRoutes(protected)
	(&handler.ProfileHandler{Users: users, Log: sugar}).RegisterRoutes(protected)

	if photos != nil {
		uploadHandler := &handler.UploadHandler{Photos: photos, Log: sugar}
		uploadHandler.RegisterPublicRoutes(api)
		uploadHandler.RegisterProtectedRoutes(protected)
	}

	(&handler.AdminHandler{Registry: registry, Reports: reports, Log: sugar}).RegisterRoutes(admin)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	sugar.Infow("starting server", "port", port)
	if err := r.Run(":" + port); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
