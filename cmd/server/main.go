// @title           DatViz AI Backend
// @version         1.0
// @host            localhost:8080
// @schemes         http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"log"
	"net/http"

	"datviz-backend/internal/api"
	"datviz-backend/internal/config"
	"datviz-backend/internal/cryptox"
	"datviz-backend/internal/database"
	"datviz-backend/internal/llm"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	_ "datviz-backend/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("CRITICAL: Cannot load configuration: %v", err)
	}

	dbpool, err := pgxpool.New(context.Background(), cfg.DB.ConnString())
	if err != nil {
		log.Fatalf("CRITICAL: Cannot connect to the database: %v", err)
	}
	defer dbpool.Close()

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("CRITICAL: Cannot ping the database: %v", err)
	}
	log.Println("Connected to the database")

	cipher, err := cryptox.New(cfg.Encryption.Key)
	if err != nil {
		log.Fatalf("CRITICAL: Cannot initialize the email cipher: %v", err)
	}

	gateway, err := llm.NewOpenAIGateway(cfg.OpenAI.APIKey, cfg.OpenAI.OrganizationID, cfg.OpenAI.Model)
	if err != nil {
		log.Fatalf("CRITICAL: Cannot initialize the OpenAI gateway: %v", err)
	}
	log.Printf("OpenAI gateway ready, model: %s", cfg.OpenAI.Model)

	store := database.NewStore(dbpool)
	server := api.NewServer(cfg, store, cipher, gateway)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(api.RequestIDMiddleware)
	r.Use(api.MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"),
	))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("DatViz AI backend is running. Documentation available at /swagger/index.html"))
	})

	r.Get("/health", server.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(server.AuthMiddleware)
		r.Post("/upload", server.UploadHandler)
		r.Post("/user/register", server.RegisterUserHandler)
		r.Post("/user/check", server.CheckUserHandler)
		r.Post("/generate_graph", server.GenerateGraphHandler)
	})

	log.Println("Starting the server on port :8080")
	if err := http.ListenAndServe(":8080", r); err != nil {
		log.Fatalf("CRITICAL: Cannot start the server: %v", err)
	}
}
