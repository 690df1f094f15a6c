package http

import (
	"net/http"
	"time"

	"clinic-booking-service/internal/delivery/http/handler"
	"clinic-booking-service/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

const uuidPattern = "[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}"

type Handlers struct {
	Auth         *handler.AuthHandler
	Patient      *handler.PatientHandler
	Practitioner *handler.PractitionerHandler
	Appointment  *handler.AppointmentHandler
	Availability *handler.AvailabilityHandler
	Kyc          *handler.KycHandler
	Service      *handler.ServiceHandler
	Health       *handler.HealthHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
	adminKey          string
	requestTimeout    time.Duration
	metricsHandler    http.Handler
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	adminKey string,
	requestTimeout time.Duration,
	metricsHandler http.Handler,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
		adminKey:          adminKey,
		requestTimeout:    requestTimeout,
		metricsHandler:    metricsHandler,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	r.router.Handle("/metrics", r.metricsHandler).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", h.Health.Liveness).Methods(http.MethodGet)
	api.HandleFunc("/health/ready", h.Health.Readiness).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", h.Auth.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/me", h.Auth.DeleteAccount).Methods(http.MethodDelete)
	authProtected.HandleFunc("/me/activity", h.Auth.GetActivity).Methods(http.MethodGet)

	// Patient self-service
	patient := api.PathPrefix("/patients/me").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("", h.Patient.CreateProfile).Methods(http.MethodPost)
	patient.HandleFunc("", h.Patient.GetProfile).Methods(http.MethodGet)
	patient.HandleFunc("", h.Patient.UpdateProfile).Methods(http.MethodPut)
	patient.HandleFunc("/location", h.Patient.UpsertLocation).Methods(http.MethodPut)
	patient.HandleFunc("/picture", h.Patient.UpsertPicture).Methods(http.MethodPut)
	patient.HandleFunc("/picture/upload", h.Patient.UploadPicture).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", h.Appointment.ListForPatient).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", h.Appointment.Book).Methods(http.MethodPost)

	// Practitioner self-service
	practitioner := api.PathPrefix("/practitioners/me").Subrouter()
	practitioner.Use(r.authMiddleware.Authenticate)
	practitioner.Use(middleware.RequirePractitioner)
	practitioner.HandleFunc("", h.Practitioner.CreateProfile).Methods(http.MethodPost)
	practitioner.HandleFunc("", h.Practitioner.GetProfile).Methods(http.MethodGet)
	practitioner.HandleFunc("", h.Practitioner.UpdateProfile).Methods(http.MethodPut)
	practitioner.HandleFunc("/location", h.Practitioner.UpsertLocation).Methods(http.MethodPut)
	practitioner.HandleFunc("/picture", h.Practitioner.UpsertPicture).Methods(http.MethodPut)
	practitioner.HandleFunc("/picture/upload", h.Practitioner.UploadPicture).Methods(http.MethodPost)
	practitioner.HandleFunc("/services/{serviceId:"+uuidPattern+"}", h.Practitioner.AttachService).Methods(http.MethodPost)
	practitioner.HandleFunc("/services/{serviceId:"+uuidPattern+"}", h.Practitioner.DetachService).Methods(http.MethodDelete)
	practitioner.HandleFunc("/availabilities", h.Availability.ListMine).Methods(http.MethodGet)
	practitioner.HandleFunc("/availabilities", h.Availability.Create).Methods(http.MethodPost)
	practitioner.HandleFunc("/availabilities/{id:"+uuidPattern+"}", h.Availability.Delete).Methods(http.MethodDelete)
	practitioner.HandleFunc("/kyc", h.Kyc.Submit).Methods(http.MethodPost)
	practitioner.HandleFunc("/kyc", h.Kyc.GetMine).Methods(http.MethodGet)
	practitioner.HandleFunc("/appointments", h.Appointment.ListForPractitioner).Methods(http.MethodGet)
	practitioner.HandleFunc("/appointments/{id:"+uuidPattern+"}/accept", h.Appointment.Accept).Methods(http.MethodPost)
	practitioner.HandleFunc("/appointments/{id:"+uuidPattern+"}/reject", h.Appointment.Reject).Methods(http.MethodPost)
	practitioner.HandleFunc("/appointments/{id:"+uuidPattern+"}/complete", h.Appointment.Complete).Methods(http.MethodPost)

	// Any signed-in user
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)
	protected.HandleFunc("/practitioners/{id:"+uuidPattern+"}", h.Practitioner.GetPublic).Methods(http.MethodGet)
	protected.HandleFunc("/practitioners/{id:"+uuidPattern+"}/availabilities", h.Availability.ListForPractitioner).Methods(http.MethodGet)
	protected.HandleFunc("/services", h.Service.List).Methods(http.MethodGet)

	// Back office (admin key)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdminKey(r.adminKey))
	admin.HandleFunc("/services", h.Service.Create).Methods(http.MethodPost)
	admin.HandleFunc("/kyc", h.Kyc.ListByStatus).Methods(http.MethodGet)
	admin.HandleFunc("/kyc/{practitionerId:"+uuidPattern+"}/approve", h.Kyc.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/kyc/{practitionerId:"+uuidPattern+"}/reject", h.Kyc.Reject).Methods(http.MethodPost)

	// Preflight requests match no API route; the CORS middleware answers them.
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(middleware.RequestTimeout(r.requestTimeout))

	return r.router
}
