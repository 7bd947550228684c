package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"memberquery/pkg/api/handler"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	DB              handler.DBPinger
	Members         handler.MemberSearcher
	DefaultPageSize int
	MaxPageSize     int
}

// NewRouter creates a Chi router with middleware, the health check and the member search routes.
func NewRouter(deps RouterDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Logger)

	r.Get("/health", handler.NewHealthHandler(deps.DB).ServeHTTP)

	members := handler.NewMemberHandler(deps.Members, deps.DefaultPageSize, deps.MaxPageSize)
	r.Get("/v1/members", members.List)
	r.Get("/v2/members", members.PageSimple)
	r.Get("/v3/members", members.PageComplex)

	return r
}
