package httpapp

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cesargomez89/praiseteam/internal/app"
	"github.com/cesargomez89/praiseteam/internal/auth"
	"github.com/cesargomez89/praiseteam/internal/constants"
	"github.com/cesargomez89/praiseteam/internal/http/dto"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.ok(w, http.StatusOK, map[string]any{
		"status": "ok",
		"uptime": time.Since(h.StartedAt).Round(time.Second).String(),
	}, "")
}

// ListWeeks serves GET /api/songs.
func (h *Handler) ListWeeks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := app.WeekFilter{
		Month:         q.Get("month"),
		WorshipLeader: q.Get("worship_leader"),
		Search:        q.Get("search"),
	}

	weeks, err := h.Weeks.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch weeks")
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	p := dto.NewPagination(page, limit, len(weeks))
	start, end := p.Bounds()

	writeJSON(w, http.StatusOK, Response{Success: true, Data: weeks[start:end], Pagination: p})
}

func (h *Handler) GetWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.Weeks.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err, "Failed to fetch week")
		return
	}
	h.ok(w, http.StatusOK, week, "")
}

func (h *Handler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	week, err := h.Weeks.Current(r.Context())
	if err != nil {
		h.fail(w, r, err, "Failed to fetch current week")
		return
	}
	h.ok(w, http.StatusOK, week, "")
}

func (h *Handler) UpcomingWeeks(w http.ResponseWriter, r *http.Request) {
	count := constants.DefaultUpcomingWeeks
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > constants.MaxUpcomingWeeks {
			h.validationFailed(w, []dto.ValidationError{{Field: "count", Message: "must be between 1 and " + strconv.Itoa(constants.MaxUpcomingWeeks)}})
			return
		}
		count = n
	}

	weeks, err := h.Weeks.Upcoming(r.Context(), count)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch upcoming weeks")
		return
	}
	h.ok(w, http.StatusOK, weeks, "")
}

func (h *Handler) CreateWeek(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateWeekRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid JSON body"})
		return
	}
	fields, errs := req.Validate()
	if len(errs) > 0 {
		h.validationFailed(w, errs)
		return
	}

	week, err := h.Weeks.Create(r.Context(), fields)
	if err != nil {
		h.fail(w, r, err, "Failed to create week")
		return
	}
	h.logAdminAction(r, "Week created", week.ID)
	h.ok(w, http.StatusCreated, week, "Week created successfully")
}

func (h *Handler) UpdateWeek(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateWeekRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid JSON body"})
		return
	}
	fields, errs := req.Validate()
	if len(errs) > 0 {
		h.validationFailed(w, errs)
		return
	}

	week, err := h.Weeks.Update(r.Context(), chi.URLParam(r, "id"), fields)
	if err != nil {
		h.fail(w, r, err, "Failed to update week")
		return
	}
	h.logAdminAction(r, "Week updated", week.ID)
	h.ok(w, http.StatusOK, week, "Week updated successfully")
}

func (h *Handler) DeleteWeek(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Weeks.Delete(r.Context(), id); err != nil {
		h.fail(w, r, err, "Failed to delete week")
		return
	}
	h.logAdminAction(r, "Week deleted", id)
	h.ok(w, http.StatusOK, nil, "Week deleted successfully")
}

// logAdminAction records which admin changed a week.
func (h *Handler) logAdminAction(r *http.Request, msg, weekID string) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok {
		return
	}
	h.Logger.WithWeek(weekID).Info(msg, "admin", user.Username)
}

// VideoMetadata serves POST /api/youtube/metadata.
func (h *Handler) VideoMetadata(w http.ResponseWriter, r *http.Request) {
	var req dto.MetadataRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid JSON body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.validationFailed(w, errs)
		return
	}

	meta, err := h.Metadata.Enrich(r.Context(), req.YouTubeURL)
	if err != nil {
		h.fail(w, r, err, "Failed to fetch video metadata")
		return
	}
	h.ok(w, http.StatusOK, meta, "")
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: "Invalid JSON body"})
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		h.validationFailed(w, errs)
		return
	}

	token, user, err := h.Auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.Logger.Warn("Rejected admin login", "username", req.Username)
			writeJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Invalid credentials"})
			return
		}
		h.fail(w, r, err, "Login failed")
		return
	}

	http.SetCookie(w, auth.SessionCookie(token, h.SecureCookies))
	h.ok(w, http.StatusOK, map[string]any{"user": user, "token": token}, "Login successful")
}

func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	user, err := h.Auth.Verify(auth.TokenFromRequest(r))
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, Response{Success: false, Error: "Unauthorized"})
		return
	}
	h.ok(w, http.StatusOK, map[string]any{"user": user}, "")
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, auth.SessionCookie("", h.SecureCookies))
	h.ok(w, http.StatusOK, nil, "Logged out")
}
