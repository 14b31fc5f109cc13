// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/last-player-standing/cliparse"
	"github.com/danielhkuo/last-player-standing/handlers"
	"github.com/danielhkuo/last-player-standing/ledger"
	"github.com/danielhkuo/last-player-standing/middleware"
)

func NewRouter(svc *ledger.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	competitionHandler := handlers.NewCompetitionHandler(svc)
	entryHandler := handlers.NewEntryHandler(svc)
	pickHandler := handlers.NewPickHandler(svc)
	matchweekHandler := handlers.NewMatchweekHandler(svc)

	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireAdmin(cfg.AdminKey, h))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Competition setup (admin operations)
	mux.HandleFunc("POST /competitions", admin(competitionHandler.CreateCompetition))
	mux.HandleFunc("POST /competitions/{id}/matchweeks", admin(competitionHandler.CreateMatchweek))
	mux.HandleFunc("POST /matchweeks/{id}/fixtures", admin(matchweekHandler.AddFixture))
	mux.HandleFunc("POST /matchweeks/{id}/status", admin(matchweekHandler.AdvanceStatus))
	mux.HandleFunc("POST /matchweeks/{id}/resolve", admin(matchweekHandler.Resolve))
	mux.HandleFunc("POST /entries/{id}/payment", admin(entryHandler.UpdatePayment))

	// Competition browsing (public)
	mux.HandleFunc("GET /competitions/{id}/matchweeks", middleware.WithLogging(competitionHandler.ListMatchweeks))
	mux.HandleFunc("GET /competitions/{id}/standings", middleware.WithLogging(competitionHandler.GetStandings))
	mux.HandleFunc("GET /matchweeks/{id}/fixtures", middleware.WithLogging(matchweekHandler.GetFixtures))

	// Entries and picks (X-User-ID)
	mux.HandleFunc("POST /competitions/{id}/entries", middleware.WithLogging(competitionHandler.CreateEntry))
	mux.HandleFunc("GET /me/entries", middleware.WithLogging(entryHandler.ListMyEntries))
	mux.HandleFunc("GET /entries/{id}", middleware.WithLogging(entryHandler.GetEntry))
	mux.HandleFunc("GET /entries/{id}/team-usage", middleware.WithLogging(entryHandler.GetTeamUsage))
	mux.HandleFunc("GET /entries/{id}/picks", middleware.WithLogging(entryHandler.ListPicks))
	mux.HandleFunc("POST /entries/{id}/picks", middleware.WithLogging(pickHandler.SubmitPick))
	mux.HandleFunc("GET /entries/{id}/matchweeks/{mw}/pick", middleware.WithLogging(entryHandler.GetMatchweekPick))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("last-player-standing API v1"))
	})

	return mux
}
