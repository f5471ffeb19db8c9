package handlers

import (
	"net/http"

	"github.com/Kyoronginus/Grasshaeru/internal/service"

	"github.com/gin-gonic/gin"
)

// Request DTO for creating a todo.
type createTodoRequest struct {
	Content string `json:"content" binding:"required"`
}

// Request DTO for patching a todo. Pointers distinguish "absent" from
// zero values.
type updateTodoRequest struct {
	Content     *string `json:"content"`
	IsCompleted *bool   `json:"isCompleted"`
}

// @Summary      List the caller's todos
// @Tags         todos
// @Produce      json
// @Success      200  {array}   models.Todo
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /todos [get]
// @Security     BearerAuth
func (h *Handler) listTodos(c *gin.Context) {
	todos, err := h.services.Todos.List(c.Request.Context(), userID(c))
	if err != nil {
		h.respondServiceError(c, err, "todos_list_failed")
		return
	}
	c.JSON(http.StatusOK, todos)
}

// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        body  body      createTodoRequest  true  "Todo payload"
// @Success      200   {object}  models.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /todos [post]
// @Security     BearerAuth
func (h *Handler) createTodo(c *gin.Context) {
	var req createTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	todo, err := h.services.Todos.Create(c.Request.Context(), userID(c), req.Content)
	if err != nil {
		h.respondServiceError(c, err, "todos_create_failed")
		return
	}
	c.JSON(http.StatusOK, todo)
}

// @Summary      Patch a todo
// @Description  Updates content and/or completion flag; only the owner may patch.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Param        id    path      string             true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "Patch payload"
// @Success      200   {object}  models.Todo
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /todos/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateTodo(c *gin.Context) {
	var req updateTodoRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}

	patch := service.TodoPatch{Content: req.Content, IsCompleted: req.IsCompleted}
	todo, err := h.services.Todos.Update(c.Request.Context(), userID(c), c.Param("id"), patch)
	if err != nil {
		h.respondServiceError(c, err, "todos_update_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, todo)
}

// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Param        id  path  string  true  "Todo id"
// @Success      200  {object}  map[string]bool  "success"
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteTodo(c *gin.Context) {
	if err := h.services.Todos.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.respondServiceError(c, err, "todos_delete_failed", "id", c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
