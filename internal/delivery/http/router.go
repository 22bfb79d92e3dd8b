package http

import (
	"net/http"

	"github.com/yashsaxena18/curesight-server/internal/delivery/http/handler"
	"github.com/yashsaxena18/curesight-server/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	doctorHandler      *handler.DoctorHandler
	scheduleHandler    *handler.DoctorScheduleHandler
	appointmentHandler *handler.AppointmentHandler
	messageHandler     *handler.MessageHandler
	healthHandler      *handler.HealthHandler
	screeningHandler   *handler.ScreeningHandler
	auditLogHandler    *handler.AuditLogHandler
	wsHandler          *handler.WSHandler
	authMiddleware     *middleware.AuthMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	doctorHandler *handler.DoctorHandler,
	scheduleHandler *handler.DoctorScheduleHandler,
	appointmentHandler *handler.AppointmentHandler,
	messageHandler *handler.MessageHandler,
	healthHandler *handler.HealthHandler,
	screeningHandler *handler.ScreeningHandler,
	auditLogHandler *handler.AuditLogHandler,
	wsHandler *handler.WSHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		doctorHandler:      doctorHandler,
		scheduleHandler:    scheduleHandler,
		appointmentHandler: appointmentHandler,
		messageHandler:     messageHandler,
		healthHandler:      healthHandler,
		screeningHandler:   screeningHandler,
		auditLogHandler:    auditLogHandler,
		wsHandler:          wsHandler,
		authMiddleware:     authMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Liveness check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/doctor", r.authHandler.RegisterDoctor).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Admin login shares the same credential flow
	api.HandleFunc("/admin/login", r.authHandler.Login).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Doctor directory (public)
	api.HandleFunc("/doctors", r.doctorHandler.ListVerified).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.GetByID).Methods(http.MethodGet)

	// Available schedules (public)
	api.HandleFunc("/schedules", r.scheduleHandler.GetAvailable).Methods(http.MethodGet)

	// Schedule management (doctor only)
	doctorSchedules := api.PathPrefix("/schedules").Subrouter()
	doctorSchedules.Use(r.authMiddleware.Authenticate)
	doctorSchedules.Use(middleware.RequireDoctor)
	doctorSchedules.HandleFunc("", r.scheduleHandler.Create).Methods(http.MethodPost)
	doctorSchedules.HandleFunc("/mine", r.scheduleHandler.GetMine).Methods(http.MethodGet)
	doctorSchedules.HandleFunc("/{id:[0-9]+}", r.scheduleHandler.Update).Methods(http.MethodPut)
	doctorSchedules.HandleFunc("/{id:[0-9]+}", r.scheduleHandler.Delete).Methods(http.MethodDelete)

	// Single schedule (public, after the doctor-only literal routes)
	api.HandleFunc("/schedules/{id:[0-9]+}", r.scheduleHandler.GetByID).Methods(http.MethodGet)

	// Appointments (doctor and patient)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Use(middleware.RequireDoctorOrPatient)
	appointments.HandleFunc("", r.appointmentHandler.GetMine).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetByID).Methods(http.MethodGet)

	patientAppointments := api.PathPrefix("/appointments").Subrouter()
	patientAppointments.Use(r.authMiddleware.Authenticate)
	patientAppointments.Use(middleware.RequirePatient)
	patientAppointments.HandleFunc("", r.appointmentHandler.Create).Methods(http.MethodPost)
	patientAppointments.HandleFunc("/{id}/cancel", r.appointmentHandler.Cancel).Methods(http.MethodPost)

	doctorAppointments := api.PathPrefix("/appointments").Subrouter()
	doctorAppointments.Use(r.authMiddleware.Authenticate)
	doctorAppointments.Use(middleware.RequireDoctor)
	doctorAppointments.HandleFunc("/{id}/consultation", r.appointmentHandler.RecordConsultation).Methods(http.MethodPost)

	// Messages (doctor and patient)
	messages := api.PathPrefix("/messages").Subrouter()
	messages.Use(r.authMiddleware.Authenticate)
	messages.Use(middleware.RequireDoctorOrPatient)
	messages.HandleFunc("", r.messageHandler.Send).Methods(http.MethodPost)
	messages.HandleFunc("/unread/count", r.messageHandler.GetUnreadCount).Methods(http.MethodGet)
	messages.HandleFunc("/{peer_id}", r.messageHandler.GetConversation).Methods(http.MethodGet)

	// Health logging (patient only)
	health := api.PathPrefix("/health").Subrouter()
	health.Use(r.authMiddleware.Authenticate)
	health.Use(middleware.RequirePatient)
	health.HandleFunc("/daily-log", r.healthHandler.SubmitDailyLog).Methods(http.MethodPost)
	health.HandleFunc("/daily-log", r.healthHandler.GetDailyLogs).Methods(http.MethodGet)
	health.HandleFunc("/metrics", r.healthHandler.GetMetrics).Methods(http.MethodGet)
	health.HandleFunc("/records", r.healthHandler.CreateRecord).Methods(http.MethodPost)
	health.HandleFunc("/records", r.healthHandler.ListRecords).Methods(http.MethodGet)

	// Mammogram screening (patient only)
	cancer := api.PathPrefix("/cancer").Subrouter()
	cancer.Use(r.authMiddleware.Authenticate)
	cancer.Use(middleware.RequirePatient)
	cancer.HandleFunc("/analyze", r.screeningHandler.Analyze).Methods(http.MethodPost)
	cancer.HandleFunc("/analyses", r.screeningHandler.ListMine).Methods(http.MethodGet)
	cancer.HandleFunc("/analysis/{id}", r.screeningHandler.GetStatus).Methods(http.MethodGet)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/doctors/pending", r.doctorHandler.GetPending).Methods(http.MethodGet)
	admin.HandleFunc("/doctors/{id}/approve", r.doctorHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/reject", r.doctorHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/request-documents", r.doctorHandler.RequestDocuments).Methods(http.MethodPost)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.GetPage).Methods(http.MethodGet)

	// Realtime socket (chat + call signaling)
	wsRoute := api.PathPrefix("/ws").Subrouter()
	wsRoute.Use(r.authMiddleware.Authenticate)
	wsRoute.HandleFunc("", r.wsHandler.Connect).Methods(http.MethodGet)

	r.router.Use(r.corsMiddleware.Handle)

	// Router middleware only runs on matched routes, so cross-origin
	// preflights to method-restricted paths need the CORS headers here too.
	r.router.MethodNotAllowedHandler = r.corsMiddleware.Handle(http.HandlerFunc(
		func(w http.ResponseWriter, req *http.Request) {
			http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		}))

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
