package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mukeshvis/vista-hr-portal-sub001/internal/config"
	appHTTP "github.com/mukeshvis/vista-hr-portal-sub001/internal/handler/http"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/cron"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/database"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/email"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/gateway"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/jwt"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/pkg/token"
	"github.com/mukeshvis/vista-hr-portal-sub001/internal/repository/postgresql"
	approvalService "github.com/mukeshvis/vista-hr-portal-sub001/internal/service/approval"
	attendanceService "github.com/mukeshvis/vista-hr-portal-sub001/internal/service/attendance"
	leaveService "github.com/mukeshvis/vista-hr-portal-sub001/internal/service/leave"
	remoteService "github.com/mukeshvis/vista-hr-portal-sub001/internal/service/remote"
	reportService "github.com/mukeshvis/vista-hr-portal-sub001/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	punchEventRepo := postgresql.NewPunchEventRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveApplicationRepository(db)
	remoteRepo := postgresql.NewRemoteWorkRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	approvalCodec := token.NewCodec(cfg.Approval.TokenSecret, cfg.Approval.TokenTTLHours)
	gatewayClient := gateway.NewClient(cfg.Gateway)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	syncService := attendanceService.NewSyncService(gatewayClient, punchEventRepo, employeeRepo)
	reportSvc := reportService.NewReportService(punchEventRepo, holidayRepo, employeeRepo, cfg.OfficeHours)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo, emailService, approvalCodec, cfg.App, cfg.Approval)
	remoteSvc := remoteService.NewRemoteWorkService(remoteRepo, employeeRepo, emailService, approvalCodec, cfg.App, cfg.Approval)
	approvalSvc := approvalService.NewApprovalService(approvalCodec, leaveRepo, remoteRepo, employeeRepo, emailService)

	scheduler := cron.NewAttendanceScheduler(syncService, time.Hour)
	scheduler.Start()
	defer scheduler.Stop()

	attendanceHandler := appHTTP.NewAttendanceHandler(syncService, reportSvc, scheduler)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	remoteHandler := appHTTP.NewRemoteWorkHandler(remoteSvc)
	approvalHandler := appHTTP.NewApprovalHandler(approvalSvc, cfg.App.FrontendURL)

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		attendanceHandler,
		leaveHandler,
		remoteHandler,
		approvalHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
