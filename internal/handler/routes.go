package handler

import (
	"github.com/gorilla/mux"
)

// NewRouter wires the public and authenticated routes
func NewRouter(h *Handler, auth mux.MiddlewareFunc, logging mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(logging)

	// Public routes
	r.HandleFunc("/register", h.Register).Methods("POST")
	r.HandleFunc("/login", h.Login).Methods("POST")
	r.HandleFunc("/health-check", h.HealthCheck).Methods("POST")
	r.HandleFunc("/tax/compare", h.CompareTax).Methods("POST")
	r.HandleFunc("/benchmark-rate", h.BenchmarkRate).Methods("GET")

	// Protected routes
	plans := r.PathPrefix("/plans").Subrouter()
	plans.Use(auth)
	plans.HandleFunc("", h.CreatePlan).Methods("POST")
	plans.HandleFunc("/{id}", h.GetPlan).Methods("GET")
	plans.HandleFunc("/{id}/steps/{step}", h.SaveStep).Methods("PUT")
	plans.HandleFunc("/{id}/generate", h.GeneratePlan).Methods("POST")
	plans.HandleFunc("/{id}/analysis", h.GetAnalysis).Methods("GET")
	plans.HandleFunc("/{id}/email", h.EmailReport).Methods("POST")

	return r
}
