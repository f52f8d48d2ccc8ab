package handlers

import (
	"net/http"
	"strconv"

	"habit_tracker/internal/models"
	"habit_tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateHabitRequest is the body of POST /habits.
type CreateHabitRequest struct {
	Name        string  `json:"name" binding:"required" example:"Read"`
	Color       string  `json:"color,omitempty" example:"#0066cc"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty" example:"daily"`
}

// UpdateHabitRequest is the body of PATCH /habits/{id}; absent fields are kept.
type UpdateHabitRequest struct {
	Name        *string `json:"name,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
}

// ColorRequest is the body of PATCH /habits/{id}/color.
type ColorRequest struct {
	Color string `json:"color" binding:"required" example:"#ff8800"`
}

// habitScope resolves the caller and the :id path param.
// It writes the error response itself and returns false on failure.
func (h *Handler) habitScope(c *gin.Context) (models.Principal, int, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return p, 0, false
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidID})
		return p, 0, false
	}
	return p, id, true
}

// @Summary      List habits
// @Tags         habits
// @Produce      json
// @Success      200  {array}   models.Habit
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /habits [get]
// @Security     BearerAuth
func (h *Handler) listHabits(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	habits, err := h.services.ListHabits(c.Request.Context(), p.UserID)
	if err != nil {
		h.writeError(c, "habits_list_failed", err, "user_id", p.UserID)
		return
	}
	c.JSON(http.StatusOK, habits)
}

// @Summary      Create habit
// @Description  Color defaults to #0066cc.
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        body  body      CreateHabitRequest  true  "habit"
// @Success      201   {object}  models.Habit
// @Failure      400   {object}  map[string]string
// @Router       /habits [post]
// @Security     BearerAuth
func (h *Handler) createHabit(c *gin.Context) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	var req CreateHabitRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}

	habit, err := h.services.CreateHabit(c.Request.Context(), p.UserID, service.CreateHabitParams{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
		Frequency:   req.Frequency,
	})
	if err != nil {
		h.writeError(c, "habit_create_failed", err, "user_id", p.UserID)
		return
	}
	c.JSON(http.StatusCreated, habit)
}

// @Summary      Get habit
// @Tags         habits
// @Produce      json
// @Param        id   path      int  true  "habit id"
// @Success      200  {object}  models.Habit
// @Failure      404  {object}  map[string]string
// @Router       /habits/{id} [get]
// @Security     BearerAuth
func (h *Handler) getHabit(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	habit, err := h.services.GetHabit(c.Request.Context(), p.UserID, id)
	if err != nil {
		h.writeError(c, "habit_get_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// @Summary      Update habit
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id    path      int                 true  "habit id"
// @Param        body  body      UpdateHabitRequest  true  "fields to change"
// @Success      200   {object}  models.Habit
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /habits/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateHabit(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	var req UpdateHabitRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}

	habit, err := h.services.UpdateHabit(c.Request.Context(), p.UserID, id, service.UpdateHabitParams{
		Name:        req.Name,
		Color:       req.Color,
		Description: req.Description,
		Frequency:   req.Frequency,
	})
	if err != nil {
		h.writeError(c, "habit_update_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, habit)
}

// @Summary      Change habit color
// @Tags         habits
// @Accept       json
// @Produce      json
// @Param        id    path      int           true  "habit id"
// @Param        body  body      ColorRequest  true  "#rrggbb"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /habits/{id}/color [patch]
// @Security     BearerAuth
func (h *Handler) updateHabitColor(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	var req ColorRequest
	if !h.bindJSONOrBadRequest(c, &req) {
		return
	}

	if err := h.services.UpdateHabitColor(c.Request.Context(), p.UserID, id, req.Color); err != nil {
		h.writeError(c, "habit_color_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "color updated", "color": req.Color})
}

// @Summary      Delete habit
// @Description  Removes the habit and all of its completions.
// @Tags         habits
// @Produce      json
// @Param        id   path      int  true  "habit id"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /habits/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteHabit(c *gin.Context) {
	p, id, ok := h.habitScope(c)
	if !ok {
		return
	}
	if err := h.services.DeleteHabit(c.Request.Context(), p.UserID, id); err != nil {
		h.writeError(c, "habit_delete_failed", err, "habit_id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "habit deleted"})
}
