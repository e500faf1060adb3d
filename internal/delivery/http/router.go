package http

import (
	"net/http"

	"swasthya-portal/internal/delivery/http/handler"
	"swasthya-portal/internal/delivery/http/middleware"
	"swasthya-portal/internal/domain/entity"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Auth         *handler.AuthHandler
	Admin        *handler.AdminHandler
	AuditLog     *handler.AuditLogHandler
	Doctor       *handler.DoctorHandler
	Patient      *handler.PatientHandler
	Care         *handler.CareHandler
	Prescription *handler.PrescriptionHandler
	Pharmacy     *handler.PharmacyHandler
	Consultation *handler.ConsultationHandler
	HealthID     *handler.HealthIDHandler
	Message      *handler.MessageHandler
	Offline      *handler.OfflineHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

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
	authProtected.HandleFunc("/profile", h.Auth.UpdateProfile).Methods(http.MethodPut)

	// Admin routes
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(r.authMiddleware.RequireAdmin)
	admin.HandleFunc("/users", h.Admin.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.Admin.GetUser).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", h.Admin.UpdateUser).Methods(http.MethodPut)
	admin.HandleFunc("/users/{id}/toggle-status", h.Admin.ToggleUserStatus).Methods(http.MethodPatch)
	admin.HandleFunc("/statistics", h.Admin.Statistics).Methods(http.MethodGet)
	admin.HandleFunc("/feedback/stats", h.Admin.FeedbackStats).Methods(http.MethodGet)
	admin.HandleFunc("/feedback/{id}/sentiment", h.Admin.AnalyzeSentiment).Methods(http.MethodPost)
	admin.HandleFunc("/sentiments", h.Admin.ListSentiments).Methods(http.MethodGet)
	admin.HandleFunc("/activity-log", h.AuditLog.GetActivityLog).Methods(http.MethodGet)
	admin.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	// Doctor routes
	doctor := api.PathPrefix("/doctor").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(r.authMiddleware.RequireDoctor)
	doctor.HandleFunc("/appointments", h.Doctor.Appointments).Methods(http.MethodGet)
	doctor.HandleFunc("/appointments", h.Doctor.AddAppointment).Methods(http.MethodPost)
	doctor.HandleFunc("/appointments/{id}/complete", h.Doctor.CompleteAppointment).Methods(http.MethodPatch)
	doctor.HandleFunc("/patients", h.Doctor.Patients).Methods(http.MethodGet)
	doctor.HandleFunc("/analytics", h.Doctor.Analytics).Methods(http.MethodGet)
	doctor.HandleFunc("/notes/summarize", h.Doctor.SummarizeNotes).Methods(http.MethodPost)
	doctor.HandleFunc("/prescriptions", h.Prescription.DoctorPrescriptions).Methods(http.MethodGet)
	doctor.HandleFunc("/prescriptions", h.Prescription.Issue).Methods(http.MethodPost)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(r.authMiddleware.RequirePatient)
	patient.HandleFunc("/appointments", h.Patient.Appointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", h.Patient.ScheduleAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}/cancel", h.Patient.CancelAppointment).Methods(http.MethodPatch)
	patient.HandleFunc("/doctors", h.Patient.Doctors).Methods(http.MethodGet)
	patient.HandleFunc("/prescriptions", h.Prescription.PatientPrescriptions).Methods(http.MethodGet)
	patient.HandleFunc("/prescriptions/{id}/safety-check", h.Prescription.SafetyCheck).Methods(http.MethodPost)
	patient.HandleFunc("/feedback", h.Patient.MyFeedback).Methods(http.MethodGet)
	patient.HandleFunc("/feedback", h.Patient.SubmitFeedback).Methods(http.MethodPost)
	patient.HandleFunc("/documents", h.Patient.Documents).Methods(http.MethodGet)
	patient.HandleFunc("/documents", h.Patient.UploadDocument).Methods(http.MethodPost)
	patient.HandleFunc("/documents/{id}", h.Patient.DeleteDocument).Methods(http.MethodDelete)
	patient.HandleFunc("/health-reports", h.Care.HealthReports).Methods(http.MethodGet)
	patient.HandleFunc("/health-reports", h.Care.GenerateHealthReport).Methods(http.MethodPost)
	patient.HandleFunc("/health-reports/{id}/download", h.Care.DownloadHealthReport).Methods(http.MethodGet)
	patient.HandleFunc("/notes", h.Care.Notes).Methods(http.MethodGet)
	patient.HandleFunc("/notes", h.Care.AddNote).Methods(http.MethodPost)
	patient.HandleFunc("/symptom-check", h.Care.CheckSymptoms).Methods(http.MethodPost)
	patient.HandleFunc("/analytics", h.Patient.Analytics).Methods(http.MethodGet)
	patient.HandleFunc("/medicines", h.Pharmacy.Inventory).Methods(http.MethodGet)
	patient.HandleFunc("/orders", h.Pharmacy.MyOrders).Methods(http.MethodGet)
	patient.HandleFunc("/orders", h.Pharmacy.PlaceOrder).Methods(http.MethodPost)
	patient.HandleFunc("/emergency", h.HealthID.Emergency).Methods(http.MethodGet)

	// Pharmacist routes
	pharmacist := api.PathPrefix("/pharmacist").Subrouter()
	pharmacist.Use(r.authMiddleware.Authenticate)
	pharmacist.Use(r.authMiddleware.RequirePharmacist)
	pharmacist.HandleFunc("/inventory", h.Pharmacy.Inventory).Methods(http.MethodGet)
	pharmacist.HandleFunc("/inventory", h.Pharmacy.AddMedicine).Methods(http.MethodPost)
	pharmacist.HandleFunc("/inventory/{id}", h.Pharmacy.UpdateMedicine).Methods(http.MethodPut)
	pharmacist.HandleFunc("/inventory/{id}", h.Pharmacy.DeleteMedicine).Methods(http.MethodDelete)
	pharmacist.HandleFunc("/orders", h.Pharmacy.Orders).Methods(http.MethodGet)
	pharmacist.HandleFunc("/orders", h.Pharmacy.CreateOrder).Methods(http.MethodPost)
	pharmacist.HandleFunc("/orders/{id}/complete", h.Pharmacy.CompleteOrder).Methods(http.MethodPatch)
	pharmacist.HandleFunc("/orders/{id}/cancel", h.Pharmacy.CancelOrder).Methods(http.MethodPatch)
	pharmacist.HandleFunc("/patients", h.Pharmacy.Patients).Methods(http.MethodGet)
	pharmacist.HandleFunc("/feedback", h.Pharmacy.Feedback).Methods(http.MethodGet)
	pharmacist.HandleFunc("/analytics", h.Pharmacy.Analytics).Methods(http.MethodGet)
	pharmacist.HandleFunc("/prescriptions", h.Prescription.All).Methods(http.MethodGet)
	pharmacist.HandleFunc("/prescriptions/{id}/verify", h.Prescription.Verify).Methods(http.MethodGet)

	// Video consultations (doctor or patient)
	consultations := api.PathPrefix("/consultations").Subrouter()
	consultations.Use(r.authMiddleware.Authenticate)
	consultations.Use(r.authMiddleware.RequireRole(entity.RoleDoctor, entity.RolePatient))
	consultations.HandleFunc("/config", h.Consultation.Config).Methods(http.MethodGet)
	consultations.HandleFunc("", h.Consultation.History).Methods(http.MethodGet)
	consultations.HandleFunc("", h.Consultation.Start).Methods(http.MethodPost)
	consultations.HandleFunc("/{id}/media", h.Consultation.ReportMedia).Methods(http.MethodPost)
	consultations.HandleFunc("/{id}/controls", h.Consultation.SetControls).Methods(http.MethodPatch)
	consultations.HandleFunc("/{id}/end", h.Consultation.End).Methods(http.MethodPost)

	// Any logged in user
	shared := api.NewRoute().Subrouter()
	shared.Use(r.authMiddleware.Authenticate)
	shared.HandleFunc("/health-id", h.HealthID.GetOrCreate).Methods(http.MethodGet)
	shared.HandleFunc("/health-id/scan", h.HealthID.Scan).Methods(http.MethodPost)
	shared.HandleFunc("/messages", h.Message.Inbox).Methods(http.MethodGet)
	shared.HandleFunc("/messages", h.Message.Send).Methods(http.MethodPost)

	// Preflight requests match no API route; this lets the CORS middleware answer them
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	// Offline support (public)
	r.router.HandleFunc("/offline/manifest", h.Offline.Manifest).Methods(http.MethodGet)
	r.router.PathPrefix("/").Handler(h.Offline.Assets()).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
