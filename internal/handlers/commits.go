package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Request DTO for appending a journal entry.
type createCommitRequest struct {
	Message string `json:"message" binding:"required"`
}

// @Summary      List the caller's journal entries
// @Tags         journal
// @Produce      json
// @Success      200  {array}   models.Commit
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /journal [get]
// @Security     BearerAuth
func (h *Handler) listCommits(c *gin.Context) {
	commits, err := h.services.Journal.List(c.Request.Context(), userID(c))
	if err != nil {
		h.respondServiceError(c, err, "journal_list_failed")
		return
	}
	c.JSON(http.StatusOK, commits)
}

// @Summary      Append a journal entry
// @Description  Entries are immutable; there is no update or delete.
// @Tags         journal
// @Accept       json
// @Produce      json
// @Param        body  body      createCommitRequest  true  "Entry payload"
// @Success      200   {object}  models.Commit
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /journal [post]
// @Security     BearerAuth
func (h *Handler) createCommit(c *gin.Context) {
	var req createCommitRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	commit, err := h.services.Journal.Create(c.Request.Context(), userID(c), req.Message)
	if err != nil {
		h.respondServiceError(c, err, "journal_create_failed")
		return
	}
	c.JSON(http.StatusOK, commit)
}

// @Summary      Contribution calendar
// @Description  Per-day entry counts with color-intensity levels for the trailing window.
// @Tags         journal
// @Produce      json
// @Param        days  query     int  false  "Window size in days (1..366, default 365)"
// @Success      200   {object}  map[string]interface{}  "days"
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /journal/calendar [get]
// @Security     BearerAuth
func (h *Handler) commitCalendar(c *gin.Context) {
	days := 0
	if qs := c.Query("days"); qs != "" {
		v, err := strconv.Atoi(qs)
		if err != nil || v <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "'days' must be a positive integer"})
			return
		}
		days = v
	}

	cal, err := h.services.Journal.Calendar(c.Request.Context(), userID(c), days)
	if err != nil {
		h.respondServiceError(c, err, "journal_calendar_failed")
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": cal})
}
