package http

import (
	"net/http"

	"smart-clinic-backend/internal/delivery/http/handler"
	"smart-clinic-backend/internal/delivery/http/middleware"
	"smart-clinic-backend/internal/usecase"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	adminHandler        *handler.AdminHandler
	doctorHandler       *handler.DoctorHandler
	patientHandler      *handler.PatientHandler
	appointmentHandler  *handler.AppointmentHandler
	prescriptionHandler *handler.PrescriptionHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
}

func NewRouter(
	adminHandler *handler.AdminHandler,
	doctorHandler *handler.DoctorHandler,
	patientHandler *handler.PatientHandler,
	appointmentHandler *handler.AppointmentHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		adminHandler:        adminHandler,
		doctorHandler:       doctorHandler,
		patientHandler:      patientHandler,
		appointmentHandler:  appointmentHandler,
		prescriptionHandler: prescriptionHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Logins (public)
	api.HandleFunc("/admin/login", r.adminHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/doctor/login", r.doctorHandler.Login).Methods(http.MethodPost)
	api.HandleFunc("/patient/login", r.patientHandler.Login).Methods(http.MethodPost)

	// Patient signup (public)
	api.HandleFunc("/patient", r.patientHandler.Register).Methods(http.MethodPost)

	// Public doctor directory
	api.HandleFunc("/doctor", r.doctorHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/doctor/filter", r.doctorHandler.Filter).Methods(http.MethodGet)

	// Slot-grid availability (patient or doctor)
	availability := api.PathPrefix("/doctor/availability").Subrouter()
	availability.Use(r.authMiddleware.RequireRole(usecase.RolePatient, usecase.RoleDoctor))
	availability.HandleFunc("/{doctorId}/{date}", r.doctorHandler.GetAvailability).Methods(http.MethodGet)

	// Doctor management (admin)
	adminOnly := api.NewRoute().Subrouter()
	adminOnly.Use(r.authMiddleware.RequireRole(usecase.RoleAdmin))
	adminOnly.HandleFunc("/doctor", r.doctorHandler.Save).Methods(http.MethodPost)
	adminOnly.HandleFunc("/doctor", r.doctorHandler.Update).Methods(http.MethodPut)
	adminOnly.HandleFunc("/doctor/{id}", r.doctorHandler.Delete).Methods(http.MethodDelete)

	// Patient self-service
	patientOnly := api.NewRoute().Subrouter()
	patientOnly.Use(r.authMiddleware.RequireRole(usecase.RolePatient))
	patientOnly.HandleFunc("/patient", r.patientHandler.Details).Methods(http.MethodGet)
	patientOnly.HandleFunc("/patient/appointments", r.patientHandler.Appointments).Methods(http.MethodGet)
	patientOnly.HandleFunc("/patient/appointments/filter", r.patientHandler.FilterAppointments).Methods(http.MethodGet)
	patientOnly.HandleFunc("/appointments", r.appointmentHandler.Book).Methods(http.MethodPost)
	patientOnly.HandleFunc("/appointments", r.appointmentHandler.Update).Methods(http.MethodPut)
	patientOnly.HandleFunc("/appointments/{id}", r.appointmentHandler.Cancel).Methods(http.MethodDelete)

	// Doctor workspace
	doctorOnly := api.NewRoute().Subrouter()
	doctorOnly.Use(r.authMiddleware.RequireRole(usecase.RoleDoctor))
	doctorOnly.HandleFunc("/appointments", r.appointmentHandler.ListForDoctor).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/prescription", r.prescriptionHandler.Save).Methods(http.MethodPost)
	doctorOnly.HandleFunc("/prescription/{appointmentId}", r.prescriptionHandler.Get).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
