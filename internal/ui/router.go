package ui

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

// NewRouter wires the portal's pages. HTML forms can only POST, so PUT and
// DELETE arrive as POST with a "_method" field and are rewritten before routing.
func NewRouter(h *Handler) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/", h.List).Methods("GET")
	r.HandleFunc("/add", h.NewStudent).Methods("GET")
	r.HandleFunc("/add", h.CreateStudent).Methods("POST")
	r.HandleFunc("/edit/{id:[0-9]+}", h.EditStudent).Methods("GET")
	r.HandleFunc("/edit/{id:[0-9]+}", h.UpdateStudent).Methods("PUT")
	r.HandleFunc("/delete/{id:[0-9]+}", h.ConfirmDelete).Methods("GET")
	r.HandleFunc("/students/{id:[0-9]+}", h.Delete).Methods("DELETE")
	r.HandleFunc("/healthz", h.Health).Methods("GET")

	return handlers.HTTPMethodOverrideHandler(r)
}
