package api

import (
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/popcornroulette/api/internal/config"
	"github.com/popcornroulette/api/internal/repository"
)

// Server represents the API server
type Server struct {
	router *gin.Engine
	repo   *repository.MovieRepository
}

// NewServer creates a new API server instance
func NewServer(repo *repository.MovieRepository) *Server {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(requestIDMiddleware())
	router.Use(errorHandlerMiddleware())
	router.Use(corsMiddleware())

	s := &Server{
		router: router,
		repo:   repo,
	}

	s.setupRoutes()

	return s
}

// Run starts the API server on the specified port
func (s *Server) Run(port int) error {
	return s.router.Run(fmt.Sprintf(":%d", port))
}

// Router exposes the underlying gin engine, primarily for tests
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.serviceInfo)
	s.router.GET("/health", s.healthCheck)

	movies := s.router.Group("/movies")
	movies.Use(authMiddleware())
	{
		movies.GET("/roulette", s.roulette)
		movies.GET("/available-movies", s.countMovies)
		movies.GET("", s.listMovies)
		movies.GET("/:id", s.getMovie)
		movies.PATCH("/:id", s.updateMovie)
		movies.DELETE("/:id", s.deleteMovie)
	}
}

func corsMiddleware() gin.HandlerFunc {
	cfg := config.Get()

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
	if cfg.API.CORSOrigin == "" || cfg.API.CORSOrigin == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{cfg.API.CORSOrigin}
	}

	return cors.New(corsCfg)
}
