// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/croquetbond/portal/internal/middleware"
	"github.com/croquetbond/portal/internal/model"
)

// Routes mounts every API route with its access gate. The principal is
// resolved once for the whole subtree; role checks sit on the write
// routes that need them.
func (h *Handler) Routes(throttle *middleware.LoginThrottle) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.LoadPrincipal(h.auth, h.secureCookies))

	r.Get("/status", h.Status)

	r.Route("/auth", func(r chi.Router) {
		r.With(throttle.Middleware()).Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	r.Route("/clubs", func(r chi.Router) {
		r.Get("/", h.ListClubs)
		r.Get("/{id}", h.GetClub)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Post("/", h.CreateClub)
			r.Put("/{id}", h.UpdateClub)
			r.Delete("/{id}", h.DeleteClub)
		})
	})

	r.Route("/members", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleMember))
			r.Get("/", h.ListMembers)
			r.Get("/{id}", h.GetMember)
		})
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Post("/", h.CreateMember)
			r.Put("/{id}", h.UpdateMember)
			r.Delete("/{id}", h.DeleteMember)
		})
	})

	r.Route("/tournaments", func(r chi.Router) {
		r.Get("/", h.ListTournaments)
		r.Get("/{id}", h.GetTournament)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Post("/", h.CreateTournament)
			r.Put("/{id}", h.UpdateTournament)
			r.Delete("/{id}", h.DeleteTournament)
		})
	})

	r.Route("/rules", func(r chi.Router) {
		r.Get("/", h.ListRules)
		r.Get("/{id}", h.GetRule)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAnyRole(model.RoleAdmin, model.RoleRulesCommittee))
			r.Post("/", h.CreateRule)
			r.Put("/{id}", h.UpdateRule)
			r.Delete("/{id}", h.DeleteRule)
		})
	})

	r.Route("/news", func(r chi.Router) {
		r.Get("/", h.ListNews)
		r.Get("/{id}", h.GetNewsItem)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Post("/", h.CreateNewsItem)
			r.Put("/{id}", h.UpdateNewsItem)
			r.Delete("/{id}", h.DeleteNewsItem)
		})
	})

	r.Route("/rankings", func(r chi.Router) {
		r.Get("/", h.ListRankings)
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))
			r.Post("/", h.CreateRanking)
			r.Put("/{id}", h.UpdateRanking)
			r.Delete("/{id}", h.DeleteRanking)
		})
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin))
		r.Get("/", h.ListUsers)
		r.Post("/", h.CreateUser)
		r.Put("/{id}/role", h.UpdateUserRole)
	})

	return r
}
