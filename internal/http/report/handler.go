package report

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/aacdash/internal/category"
	"github.com/MrJamesThe3rd/aacdash/internal/report"
)

// SnapshotHeader names the response header carrying the snapshot id.
const SnapshotHeader = "X-Snapshot-ID"

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/pages", h.listPages)
	r.Get("/pages/{slug}", h.getPage)
	r.Get("/categories", h.listCategories)
	r.Get("/spending/by-type", h.spendingByType)
	r.Get("/spending/by-category", h.spendingByCategory)
	r.Get("/spending/monthly", h.monthlySpending)
	r.Get("/clusters", h.listClusters)
	r.Get("/clusters/{id}", h.getCluster)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(SnapshotHeader, h.svc.Snapshot().ID.String())

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) listPages(w http.ResponseWriter, _ *http.Request) {
	pages := report.Pages()

	resp := make([]pageResponse, len(pages))
	for i, p := range pages {
		resp[i] = pageResponse{Slug: p, Title: p.Title()}
	}

	h.writeJSON(w, resp)
}

func (h *Handler) getPage(w http.ResponseWriter, r *http.Request) {
	page, err := report.ParsePage(chi.URLParam(r, "slug"))
	if err != nil {
		http.Error(w, "page not found", http.StatusNotFound)
		return
	}

	content, err := h.svc.Page(page)
	if err != nil {
		slog.Error("failed to render page", "page", page, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.writeJSON(w, content)
}

func (h *Handler) listCategories(w http.ResponseWriter, _ *http.Request) {
	codes := category.Codes()
	resp := make([]categoryResponse, 0, len(codes))

	for _, code := range codes {
		label, err := category.Label(code)
		if err != nil {
			slog.Error("category without label", "code", code, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)

			return
		}

		resp = append(resp, categoryResponse{
			Code:     code,
			Label:    label,
			Type:     category.Classify(code),
			Position: category.Position(code),
		})
	}

	h.writeJSON(w, resp)
}

func (h *Handler) spendingByType(w http.ResponseWriter, _ *http.Request) {
	resp, err := toPivotResponse(h.svc.SpendingByType(), func(r string) (string, error) {
		return r, nil
	})
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, resp)
}

func (h *Handler) spendingByCategory(w http.ResponseWriter, _ *http.Request) {
	resp, err := toPivotResponse(h.svc.SpendingByCategory(), category.Label)
	if err != nil {
		if errors.Is(err, category.ErrMissingCategoryLabel) {
			slog.Error("pivot row without label", "error", err)
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.writeJSON(w, resp)
}

func (h *Handler) monthlySpending(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, toMonthlyResponse(h.svc.MonthlySpending()))
}

func (h *Handler) listClusters(w http.ResponseWriter, _ *http.Request) {
	clusters := h.svc.Clusters()

	resp := make([]clusterResponse, len(clusters))
	for i, c := range clusters {
		resp[i] = toClusterResponse(c)
	}

	h.writeJSON(w, resp)
}

func (h *Handler) getCluster(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	section, err := h.svc.Cluster(id)
	if err != nil {
		if errors.Is(err, report.ErrClusterNotFound) {
			http.Error(w, "cluster not found", http.StatusNotFound)
			return
		}

		slog.Error("failed to render cluster", "cluster", id, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	h.writeJSON(w, section)
}
