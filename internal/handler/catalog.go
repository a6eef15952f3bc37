package handler

import (
	"net/http"

	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/store"
)

type CatalogHandler struct {
	catalogStore *store.CatalogStore
}

func NewCatalogHandler(cs *store.CatalogStore) *CatalogHandler {
	return &CatalogHandler{catalogStore: cs}
}

func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.catalogStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []model.CatalogTask{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	task, err := h.catalogStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}
	if task == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "task not found"})
		return
	}
	writeJSON(w, http.StatusOK, task)
}
