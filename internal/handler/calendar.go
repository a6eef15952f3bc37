package handler

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/duetapp/duet/internal/auth"
	"github.com/duetapp/duet/internal/metrics"
	"github.com/duetapp/duet/internal/model"
	"github.com/duetapp/duet/internal/push"
	"github.com/duetapp/duet/internal/schedule"
	"github.com/duetapp/duet/internal/store"
	"github.com/duetapp/duet/internal/websocket"
)

type CalendarHandler struct {
	entryStore     *store.EntryStore
	ownershipStore *store.OwnershipStore
	catalogStore   *store.CatalogStore
	coupleStore    *store.CoupleStore
	historyStore   *store.HistoryStore
	userStore      *store.UserStore
	hub            *websocket.Hub
	notifier       *push.Notifier
}

func NewCalendarHandler(
	es *store.EntryStore,
	os *store.OwnershipStore,
	cs *store.CatalogStore,
	couples *store.CoupleStore,
	hs *store.HistoryStore,
	us *store.UserStore,
	hub *websocket.Hub,
	notifier *push.Notifier,
) *CalendarHandler {
	return &CalendarHandler{
		entryStore:     es,
		ownershipStore: os,
		catalogStore:   cs,
		coupleStore:    couples,
		historyStore:   hs,
		userStore:      us,
		hub:            hub,
		notifier:       notifier,
	}
}

func (h *CalendarHandler) broadcast(coupleID int64, msg websocket.Message) {
	if h.hub != nil {
		h.hub.Broadcast(coupleID, msg)
	}
}

type taskView struct {
	OwnershipID      int64           `json:"ownership_id"`
	TaskID           int64           `json:"task_id"`
	OwnerID          int64           `json:"owner_id"`
	Name             string          `json:"name"`
	Icon             string          `json:"icon"`
	Category         model.Category  `json:"category"`
	Frequency        model.Frequency `json:"frequency"`
	PreferredDay     *int            `json:"preferred_day,omitempty"`
	BasePoints       int             `json:"base_points"`
	EstimatedMinutes int             `json:"estimated_minutes"`
}

type dayView struct {
	Date     string                `json:"date"`
	DayIndex int                   `json:"day_index"`
	Tasks    []taskView            `json:"tasks"`
	Entries  []model.CalendarEntry `json:"entries"`
}

type weekView struct {
	WeekStart       string     `json:"week_start"`
	CalendarEnabled bool       `json:"calendar_enabled"`
	Days            []dayView  `json:"days"`
	FlexibleTasks   []taskView `json:"flexible_tasks"`
}

// Week returns the Monday-anchored week containing the requested date, with
// each day's recurring tasks and the completions already logged.
func (h *CalendarHandler) Week(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	anchor := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		parsed, err := time.ParseInLocation(schedule.DateKeyFormat, dateStr, time.Local)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			return
		}
		anchor = parsed
	}

	couple, err := h.coupleStore.GetByID(coupleID)
	if err != nil || couple == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to load couple"})
		return
	}

	ownerships, err := h.ownershipStore.ListActive(coupleID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list ownerships"})
		return
	}

	tasks, err := h.catalogStore.List()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list tasks"})
		return
	}
	taskByID := make(map[int64]model.CatalogTask, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	weekStart := schedule.WeekStart(anchor)
	dates := schedule.WeekDates(weekStart)

	entries, err := h.entryStore.ListByDateRange(coupleID, schedule.DateKey(dates[0]), schedule.DateKey(dates[6]))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list entries"})
		return
	}
	entriesByDate := make(map[string][]model.CalendarEntry)
	for _, e := range entries {
		entriesByDate[e.ScheduledDate] = append(entriesByDate[e.ScheduledDate], e)
	}

	view := weekView{
		WeekStart:       schedule.DateKey(weekStart),
		CalendarEnabled: couple.CalendarEnabled,
		Days:            make([]dayView, 0, len(dates)),
		FlexibleTasks:   toTaskViews(schedule.FlexibleTasks(ownerships), taskByID),
	}
	for i, date := range dates {
		key := schedule.DateKey(date)
		day := dayView{
			Date:     key,
			DayIndex: i,
			Tasks:    toTaskViews(schedule.TasksForDay(i, ownerships), taskByID),
			Entries:  entriesByDate[key],
		}
		if day.Entries == nil {
			day.Entries = []model.CalendarEntry{}
		}
		view.Days = append(view.Days, day)
	}

	writeJSON(w, http.StatusOK, view)
}

func toTaskViews(ownerships []model.TaskOwnership, taskByID map[int64]model.CatalogTask) []taskView {
	views := make([]taskView, 0, len(ownerships))
	for _, o := range ownerships {
		task, ok := taskByID[o.TaskID]
		if !ok {
			continue
		}
		views = append(views, taskView{
			OwnershipID:      o.ID,
			TaskID:           o.TaskID,
			OwnerID:          o.OwnerID,
			Name:             task.Name,
			Icon:             task.Icon,
			Category:         task.Category,
			Frequency:        o.Frequency,
			PreferredDay:     o.PreferredDay,
			BasePoints:       task.BasePoints,
			EstimatedMinutes: task.EstimatedMinutes,
		})
	}
	return views
}

type completeRequest struct {
	TaskID int64  `json:"task_id"`
	Date   string `json:"date"`
}

// Complete logs a task as done on the given date, credits the couple's point
// pool, and notifies the partner.
func (h *CalendarHandler) Complete(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())
	userID := auth.UserID(r.Context())

	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if _, err := time.Parse(schedule.DateKeyFormat, req.Date); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
		return
	}

	ownership, err := h.ownershipStore.GetByTask(coupleID, req.TaskID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get ownership"})
		return
	}
	if ownership == nil || !ownership.Active {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "task is not assigned"})
		return
	}

	task, err := h.catalogStore.GetByID(req.TaskID)
	if err != nil || task == nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get task"})
		return
	}

	entry, err := h.entryStore.Create(coupleID, req.TaskID, userID, task.Name, req.Date, task.BasePoints)
	if err != nil {
		log.Printf("failed to create entry: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to record completion"})
		return
	}

	if _, err := h.historyStore.Add(coupleID, userID, task.BasePoints, model.HistoryGain, "Completed "+task.Name); err != nil {
		log.Printf("failed to record history: %v", err)
	}
	if err := h.coupleStore.AddPoints(coupleID, task.BasePoints); err != nil {
		log.Printf("failed to add points: %v", err)
	}

	metrics.TasksCompleted.Inc()
	h.broadcast(coupleID, websocket.NewMessage("calendar_entry", "completed", entry.ID, map[string]any{
		"points": task.BasePoints,
		"date":   req.Date,
	}))

	if h.notifier != nil {
		user, err := h.userStore.GetByID(userID)
		if err == nil && user != nil {
			payload := push.TaskCompleted(user.Name, task.Name, task.BasePoints)
			go h.notifier.NotifyPartner(context.Background(), coupleID, userID, payload)
		}
	}

	writeJSON(w, http.StatusCreated, entry)
}

// Uncomplete removes a logged completion and takes back its points.
func (h *CalendarHandler) Uncomplete(w http.ResponseWriter, r *http.Request) {
	coupleID := auth.CoupleID(r.Context())

	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	entry, err := h.entryStore.GetByID(id)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get entry"})
		return
	}
	if entry == nil || entry.CoupleID != coupleID {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "entry not found"})
		return
	}

	if err := h.entryStore.Delete(id); err != nil {
		log.Printf("failed to delete entry: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete entry"})
		return
	}
	if err := h.coupleStore.AddPoints(coupleID, -entry.PointsEarned); err != nil {
		log.Printf("failed to deduct points: %v", err)
	}

	h.broadcast(coupleID, websocket.NewMessage("calendar_entry", "uncompleted", id, nil))

	w.WriteHeader(http.StatusNoContent)
}
