package handler

import (
	"net/http"
	"strconv"

	"github.com/duetapp/duet/internal/auth"
	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/store"
)

type HistoryHandler struct {
	historyStore *store.HistoryStore
}

func NewHistoryHandler(hs *store.HistoryStore) *HistoryHandler {
	return &HistoryHandler{historyStore: hs}
}

func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	entries, err := h.historyStore.ListByCouple(coupleID, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list history"})
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
