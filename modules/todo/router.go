package todo

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// OwnerHeader carries the authenticated owner id, injected by the auth
// layer in front of this service.
const OwnerHeader = "X-Owner-ID"

// Router mounts the task CRUD endpoints. The handlers are deliberately
// thin: all telemetry lives in the service's instrumentation envelope and
// auth stays with the gateway.
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Get("/", listTasks(svc))
	r.Post("/", addTask(svc))
	r.Patch("/{taskID}", updateTask(svc))
	r.Delete("/{taskID}", removeTask(svc))

	return r
}

type taskRequest struct {
	Title string `json:"title"`
	Notes string `json:"notes"`
	Done  *bool  `json:"done"`
}

func listTasks(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			http.Error(w, "missing owner", http.StatusUnauthorized)
			return
		}

		tasks, err := svc.List(r.Context(), owner)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, tasks)
	}
}

func addTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			http.Error(w, "missing owner", http.StatusUnauthorized)
			return
		}

		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		task, err := svc.Add(r.Context(), owner, req.Title, req.Notes)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, task)
	}
}

func updateTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			http.Error(w, "missing owner", http.StatusUnauthorized)
			return
		}

		var req taskRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}

		upd := TaskUpdate{Done: req.Done}
		if req.Title != "" {
			upd.Title = &req.Title
		}
		if req.Notes != "" {
			upd.Notes = &req.Notes
		}

		task, err := svc.Update(r.Context(), owner, chi.URLParam(r, "taskID"), upd)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, task)
	}
}

func removeTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner := r.Header.Get(OwnerHeader)
		if owner == "" {
			http.Error(w, "missing owner", http.StatusUnauthorized)
			return
		}

		if err := svc.Remove(r.Context(), owner, chi.URLParam(r, "taskID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrEmptyTitle):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
