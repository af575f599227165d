package main

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"studentportal/internal/config"
	"studentportal/internal/database"
	"studentportal/internal/handler"
	"studentportal/internal/logger"
	"studentportal/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load configuration: %v", err)
	}
	logger.Init(cfg)

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal(err)
	}

	studentService := service.NewStudentService(db)
	studentHandler := handler.NewStudentHandler(studentService)

	r := mux.NewRouter()
	studentHandler.Register(r)

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{cfg.CORSOrigin}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)
	var h http.Handler = cors(r)
	h = handlers.LoggingHandler(logger.Log.Writer(), h)
	h = handlers.RecoveryHandler(handlers.RecoveryLogger(logger.Log), handlers.PrintRecoveryStack(true))(h)

	logger.Log.Infof("Student API running on %s", cfg.APIAddr)
	if err := http.ListenAndServe(cfg.APIAddr, h); err != nil {
		logger.Log.Fatal(err)
	}
}
