package main

import (
	"debttracker/internal/config"
	"debttracker/internal/logger"
	"debttracker/internal/mysql"
	"debttracker/internal/routing"
	"debttracker/pkg/middleware"
	"debttracker/pkg/session"

	"github.com/gorilla/mux"
)

func main() {
	config.Load() // load env var from .env

	db := mysql.LoadDB()
	defer db.Close()

	logger := logger.Load()

	// process-wide session registry; logins register entries, logout and
	// lazy expiry remove them
	sessions := session.NewCacheStore()

	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.Panic(logger))
	api.Use(middleware.AccessLog(logger))
	api.Use(middleware.Auth(sessions, logger))

	routing.InitRoutes(api, db, sessions, logger)
	routing.ServeStaticFiles(r)
	routing.ServeFallback(r, logger)
	routing.StartServer(r)
}
