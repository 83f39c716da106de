package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/face-attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/face-attendance-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/face-attendance-backend-go/internal/service/auth"
	identityService "github.com/cmlabs-hris/face-attendance-backend-go/internal/service/identity"
	reportService "github.com/cmlabs-hris/face-attendance-backend-go/internal/service/report"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	location, err := cfg.Location()
	if err != nil {
		fmt.Println("Error loading timezone:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.RunMigrations(dsn); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	identityRepo := postgresql.NewIdentityRepository(db)
	eventRepo := postgresql.NewAttendanceEventRepository(db)

	registry := prometheus.NewRegistry()
	recorder := metrics.NewCollector(registry)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	identitySvc := identityService.NewIdentityService(identityRepo, recorder)
	attendanceSvc := attendanceService.NewAttendanceService(db, eventRepo, identityRepo, recorder, location)
	reportSvc := reportService.NewReportService(eventRepo, identityRepo, location)
	authSvc := authService.NewAuthService(identityRepo, JWTService)

	// Kiosks can emit several frames per second; cap the recognition
	// endpoints per station and sweep idle station state periodically.
	kioskLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)
	scheduler := cron.NewScheduler()
	scheduler.AddJob("ratelimiter-sweep", 10*time.Minute, func(ctx context.Context) error {
		kioskLimiter.SweepIdle(30 * time.Minute)
		return nil
	})
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authSvc)
	identityHandler := appHTTP.NewIdentityHandler(identitySvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		cfg,
		JWTService,
		registry,
		kioskLimiter,
		authHandler,
		identityHandler,
		attendanceHandler,
		reportHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
