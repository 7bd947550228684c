package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"memberquery/pkg/api/response"
	"memberquery/pkg/member"
	"memberquery/pkg/repository"
)

// MemberSearcher runs member searches. member.MemberRepository satisfies it.
type MemberSearcher interface {
	Search(ctx context.Context, cond member.SearchCondition) ([]*member.MemberTeamView, error)
	SearchPage(ctx context.Context, strategy repository.CountStrategy, cond member.SearchCondition, page repository.PageRequest) (*repository.PaginatedResult[member.MemberTeamView], error)
}

// MemberHandler serves the member search endpoints.
type MemberHandler struct {
	searcher        MemberSearcher
	defaultPageSize int
	maxPageSize     int
}

func NewMemberHandler(searcher MemberSearcher, defaultPageSize, maxPageSize int) *MemberHandler {
	return &MemberHandler{
		searcher:        searcher,
		defaultPageSize: defaultPageSize,
		maxPageSize:     maxPageSize,
	}
}

// List handles GET /v1/members.
func (h *MemberHandler) List(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	cond, err := member.ConditionFromValues(r.URL.Query())
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_QUERY", err.Error(), requestID)
		return
	}

	views, err := h.searcher.Search(r.Context(), cond)
	if err != nil {
		slog.Error("failed to search members", "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search members", requestID)
		return
	}

	response.Success(w, http.StatusOK, views, requestID)
}

// PageSimple handles GET /v2/members. Every call runs a count query.
func (h *MemberHandler) PageSimple(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, repository.AlwaysCount)
}

// PageComplex handles GET /v3/members. The count query is skipped when the page settles the total.
func (h *MemberHandler) PageComplex(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, repository.DeferredCount)
}

func (h *MemberHandler) page(w http.ResponseWriter, r *http.Request, strategy repository.CountStrategy) {
	requestID := chimiddleware.GetReqID(r.Context())
	params := r.URL.Query()

	cond, err := member.ConditionFromValues(params)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_QUERY", err.Error(), requestID)
		return
	}
	page, err := h.pageRequest(params)
	if err != nil {
		response.Err(w, http.StatusBadRequest, "INVALID_QUERY", err.Error(), requestID)
		return
	}

	result, err := h.searcher.SearchPage(r.Context(), strategy, cond, page)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidPage) {
			response.Err(w, http.StatusBadRequest, "INVALID_PAGE", err.Error(), requestID)
			return
		}
		slog.Error("failed to page members", "strategy", strategy.String(), "error", err)
		response.Err(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to search members", requestID)
		return
	}

	response.SuccessList(w, http.StatusOK, result.Results, result.TotalCount, page.Number, page.Size, requestID)
}

// pageRequest reads page and size. Sizes above the maximum are capped; range checks are left to
// PageRequest.Validate.
func (h *MemberHandler) pageRequest(params url.Values) (repository.PageRequest, error) {
	page := repository.PageRequest{Number: 0, Size: h.defaultPageSize}

	if raw := params.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("page must be an integer, got %q", raw)
		}
		page.Number = n
	}
	if raw := params.Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return page, fmt.Errorf("size must be an integer, got %q", raw)
		}
		page.Size = min(n, h.maxPageSize)
	}
	return page, nil
}
