package handlers

import (
	"net/http"

	"habit_tracker/internal/metrics"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// LogRequest names the calendar day a completion applies to.
type LogRequest struct {
	Date string `json:"date" binding:"required" example:"2024-02-29"`
}

// LogResponse reports the state of a day after a change.
type LogResponse struct {
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// @Summary      List completions
// @Description  Completed days of the habit, ascending. 'from' and 'to' are inclusive YYYY-MM-DD bounds.
// @Tags         logs
// @Produce      json
// @Param        id    path   int     true   "habit id"
// @Param        from  query  string  false  "first day"  example(2024-02-01)
// @Param        to    query  string  false  "last day"   example(2024-02-29)
// @Success      200   {array}   string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /habits/{id}/logs [get]
// @Security     BearerAuth
func (h *Handler) listLogs(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	f := service.LogFilter{From: c.Query("from"), To: c.Query("to")}

	dates, err := h.services.ListCompletions(c.Request.Context(), p.UserID, id, f)
	if err != nil {
		h.writeError(c, "logs_list_failed", err, "habit_id", id, "from", f.From, "to", f.To)
		return
	}
	c.JSON(http.StatusOK, dates)
}

// @Summary      Toggle completion
// @Description  Marks the day complete if it was not, otherwise clears it.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "habit id"
// @Param        body  body      LogRequest  true  "day"
// @Success      200   {object}  LogResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /habits/{id}/logs [post]
// @Security     BearerAuth
func (h *Handler) toggleLog(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	var req LogRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}

	done, err := h.services.ToggleCompletion(c.Request.Context(), p.UserID, id, req.Date)
	if err != nil {
		h.writeError(c, "log_toggle_failed", err, "habit_id", id, "date", req.Date)
		return
	}
	if done {
		metrics.IncrementCompletionChange("add")
	} else {
		metrics.IncrementCompletionChange("remove")
	}
	c.JSON(http.StatusOK, LogResponse{Date: req.Date, Completed: done})
}

// @Summary      Add completion
// @Description  Idempotent: an already completed day stays completed.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "habit id"
// @Param        body  body      LogRequest  true  "day"
// @Success      200   {object}  LogResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /habits/{id}/logs [put]
// @Security     BearerAuth
func (h *Handler) addLog(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	var req LogRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}

	added, err := h.services.AddCompletion(c.Request.Context(), p.UserID, id, req.Date)
	if err != nil {
		h.writeError(c, "log_add_failed", err, "habit_id", id, "date", req.Date)
		return
	}
	if added {
		metrics.IncrementCompletionChange("add")
	}
	c.JSON(http.StatusOK, LogResponse{Date: req.Date, Completed: true})
}

// @Summary      Remove completion
// @Description  Idempotent: clearing a day that is not completed succeeds.
// @Tags         logs
// @Accept       json
// @Produce      json
// @Param        id    path      int         true  "habit id"
// @Param        body  body      LogRequest  true  "day"
// @Success      200   {object}  LogResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /habits/{id}/logs [delete]
// @Security     BearerAuth
func (h *Handler) removeLog(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	var req LogRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}

	removed, err := h.services.RemoveCompletion(c.Request.Context(), p.UserID, id, req.Date)
	if err != nil {
		h.writeError(c, "log_remove_failed", err, "habit_id", id, "date", req.Date)
		return
	}
	if removed {
		metrics.IncrementCompletionChange("remove")
	}
	c.JSON(http.StatusOK, LogResponse{Date: req.Date, Completed: false})
}
