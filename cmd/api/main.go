package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shiftpoint/attendance-backend-go/internal/config"
	appHTTP "github.com/shiftpoint/attendance-backend-go/internal/handler/http"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/cron"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/database"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/email"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/jwt"
	"github.com/shiftpoint/attendance-backend-go/internal/pkg/oauth"
	"github.com/shiftpoint/attendance-backend-go/internal/repository/postgresql"
	authService "github.com/shiftpoint/attendance-backend-go/internal/service/auth"
	campaignService "github.com/shiftpoint/attendance-backend-go/internal/service/campaign"
	leaveService "github.com/shiftpoint/attendance-backend-go/internal/service/leave"
	masterService "github.com/shiftpoint/attendance-backend-go/internal/service/master"
	reportService "github.com/shiftpoint/attendance-backend-go/internal/service/report"
	timeEventService "github.com/shiftpoint/attendance-backend-go/internal/service/timeevent"
	userService "github.com/shiftpoint/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	campaignRepo := postgresql.NewCampaignRepository(db)
	eventTypeRepo := postgresql.NewEventTypeRepository(db)
	timeEventRepo := postgresql.NewTimeEventRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	txManager := postgresql.NewTxManager(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	var googleService oauth.GoogleService
	if cfg.GoogleOAuthEnabled() {
		googleService = oauth.NewGoogleService(
			cfg.OAuth2Google.ClientID,
			cfg.OAuth2Google.ClientSecret,
			cfg.OAuth2Google.RedirectURL,
			cfg.OAuth2Google.Scopes,
		)
	}

	sender, err := email.NewSender(cfg.SMTP)
	if err != nil {
		fmt.Println("Error initializing email sender:", err)
		os.Exit(1)
	}

	authSvc := authService.NewService(userRepo, refreshTokenRepo, jwtService, googleService)
	userSvc := userService.NewService(userRepo, campaignRepo, sender)
	campaignSvc := campaignService.NewService(campaignRepo)
	masterSvc := masterService.NewService(eventTypeRepo, leaveTypeRepo, campaignRepo)
	timeEventSvc := timeEventService.NewService(timeEventRepo, eventTypeRepo, userRepo, campaignRepo)
	leaveSvc := leaveService.NewService(
		txManager,
		leaveTypeRepo,
		leaveRequestRepo,
		leaveBalanceRepo,
		userRepo,
		campaignRepo,
		sender,
	)
	reportSvc := reportService.NewService(campaignRepo, userRepo, timeEventRepo, leaveRequestRepo)

	scheduler := cron.NewScheduler()
	lateArrivalJob := cron.NewLateArrivalJob(
		cfg.Monitor,
		campaignRepo,
		userRepo,
		timeEventRepo,
		settingsRepo,
		sender,
	)
	lateArrivalJob.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(jwtService, authSvc, cfg.App.FrontendURL),
		User:      appHTTP.NewUserHandler(userSvc),
		Campaign:  appHTTP.NewCampaignHandler(campaignSvc),
		Master:    appHTTP.NewMasterHandler(masterSvc),
		TimeEvent: appHTTP.NewTimeEventHandler(timeEventSvc),
		Leave:     appHTTP.NewLeaveHandler(leaveSvc),
		Report:    appHTTP.NewReportHandler(reportSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("Server started", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
