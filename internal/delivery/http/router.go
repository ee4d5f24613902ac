package http

import (
	"net/http"

	"hepatotrack/internal/delivery/http/handler"
	"hepatotrack/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	patientHandler      *handler.PatientHandler
	consultationHandler *handler.ConsultationHandler
	researchHandler     *handler.ResearchHandler
	analysisHandler     *handler.AnalysisHandler
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	consultationHandler *handler.ConsultationHandler,
	researchHandler *handler.ResearchHandler,
	analysisHandler *handler.AnalysisHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		patientHandler:      patientHandler,
		consultationHandler: consultationHandler,
		researchHandler:     researchHandler,
		analysisHandler:     analysisHandler,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
	}
}

// Setup registers the routes. CORS wraps the whole router so preflight
// requests are answered even though no route declares OPTIONS.
func (r *Router) Setup() http.Handler {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patients
	api.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients", r.patientHandler.RegisterPatient).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)

	// Consultations and derived views
	api.HandleFunc("/patients/{id}/consultations", r.consultationHandler.GetConsultations).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}/consultations", r.consultationHandler.CreateConsultation).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}/calculations", r.consultationHandler.Calculate).Methods(http.MethodPost)
	api.HandleFunc("/patients/{id}/charts", r.consultationHandler.GetCharts).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}/analysis", r.analysisHandler.AnalyzeEvolution).Methods(http.MethodPost)

	// Research
	research := api.PathPrefix("/research").Subrouter()
	research.HandleFunc("/stats", r.researchHandler.GetStats).Methods(http.MethodGet)
	research.HandleFunc("/export", r.researchHandler.ExportCSV).Methods(http.MethodGet)

	r.router.Use(r.loggingMiddleware.Handle)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
