// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/Mitrevichin/Job-Tracking-App/internal/auth"
	"github.com/Mitrevichin/Job-Tracking-App/internal/config"
	"github.com/Mitrevichin/Job-Tracking-App/internal/objectstore"
	jobservice "github.com/Mitrevichin/Job-Tracking-App/internal/service/job"
	"github.com/Mitrevichin/Job-Tracking-App/internal/store"
)

// MyServer holds everything the route handlers depend on
type MyServer struct {
	Config     *config.Config
	Logger     *slog.Logger
	Health     store.HealthChecker
	Users      store.UserStore
	Jobs       store.JobStore
	JobService *jobservice.Service
	Tokens     *auth.TokenManager
	Blacklist  auth.JwtBlacklistStore
	// Avatars is nil when no object storage is configured.
	Avatars objectstore.Store
}

// NewHTTPServer wraps the routes of s in an http.Server using the configured timeouts.
func NewHTTPServer(s *MyServer) *http.Server {
	cfg := s.Config.Server
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		ErrorLog:     slog.NewLogLogger(s.Logger.Handler(), slog.LevelError),
	}
}
