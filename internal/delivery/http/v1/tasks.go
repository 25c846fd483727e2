package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-api/internal/models"
	"github.com/adanyl0v/go-todo-api/internal/services"
)

type taskResponse struct {
	Message string       `json:"message"`
	Task    *models.Task `json:"list,omitempty"`
}

type addTaskRequest struct {
	Title       string  `json:"title" binding:"required,notblank,max=255"`
	Description string  `json:"description" binding:"required,notblank"`
	Type        string  `json:"type" binding:"required,notblank"`
	Status      string  `json:"status" binding:"omitempty,task_status"`
	Priority    string  `json:"priority" binding:"omitempty,task_priority"`
	ExpireDate  *string `json:"expireDate" binding:"omitempty,iso8601"`
	Time        *string `json:"time"`
}

func (h *handlerImpl) HandleAddTask(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	var req addTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	params := services.CreateTaskParams{
		UserID:      identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Priority:    req.Priority,
		Time:        req.Time,
	}
	if req.ExpireDate != nil {
		expireDate, err := parseDate(*req.ExpireDate)
		if err != nil {
			abortWithFieldErrors(c, []fieldError{{
				Field:   "expireDate",
				Message: validationMessage("expireDate", "iso8601"),
			}})
			return
		}
		params.ExpireDate = &expireDate
	}

	task, err := h.tasks.CreateTask(c.Request.Context(), params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to create task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, taskResponse{
		Message: "List item added successfully",
		Task:    task,
	})
}

// updateTaskRequest holds a partial update. Absent and null fields are
// kept; an empty description, expireDate or time clears the field.
type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description"`
	Type        *string `json:"type" binding:"omitempty,notblank"`
	Status      *string `json:"status" binding:"omitempty,task_status"`
	Priority    *string `json:"priority" binding:"omitempty,task_priority"`
	ExpireDate  *string `json:"expireDate" binding:"omitempty,iso8601|len=0"`
	Time        *string `json:"time"`
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	if !h.bindJSON(c, &req) {
		return
	}

	params := services.UpdateTaskParams{
		ID:          c.Param("id"),
		UserID:      identity.UserID,
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Status:      req.Status,
		Priority:    req.Priority,
		Time:        req.Time,
	}
	if req.ExpireDate != nil {
		if *req.ExpireDate == "" {
			params.ClearExpireDate = true
		} else {
			expireDate, err := parseDate(*req.ExpireDate)
			if err != nil {
				abortWithFieldErrors(c, []fieldError{{
					Field:   "expireDate",
					Message: validationMessage("expireDate", "iso8601"),
				}})
				return
			}
			params.ExpireDate = &expireDate
		}
	}

	task, err := h.tasks.UpdateTask(c.Request.Context(), params)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", params.ID).
			Msg("failed to update task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse{
		Message: "List item updated successfully",
		Task:    task,
	})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	err := h.tasks.DeleteTask(c.Request.Context(), services.DeleteTaskParams{
		ID:     taskID,
		UserID: identity.UserID,
	})
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to delete task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, taskResponse{
		Message: "List item deleted successfully",
	})
}

func (h *handlerImpl) HandleGetTasks(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.GetTasksByUserID(c.Request.Context(), identity.UserID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to get tasks")
		abort(c, newInternalServerError())
		return
	}
	if tasks == nil {
		tasks = []*models.Task{}
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	identity, ok := h.mustIdentity(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	task, err := h.tasks.GetTask(c.Request.Context(), identity.UserID, taskID)
	if err != nil {
		h.logger.Error().
			Err(err).
			Str("task_id", taskID).
			Msg("failed to get task")
		h.abortTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *handlerImpl) mustIdentity(c *gin.Context) (services.Identity, bool) {
	identity, ok := identityFromContext(c)
	if !ok {
		h.logger.Error().Msg("no user id found in context")
		abort(c, newUnauthorizedError(msgNoToken))
	}
	return identity, ok
}

func (h *handlerImpl) abortTaskError(c *gin.Context, err error) {
	var fieldErr *services.FieldError
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		abort(c, newNotFoundError(msgTaskNotFound))
	case errors.Is(err, services.ErrTaskTitleTaken):
		abort(c, newBadRequestError(msgTaskTitleTaken))
	case errors.As(err, &fieldErr):
		abortWithFieldErrors(c, []fieldError{{
			Field:   fieldErr.Field,
			Message: validationMessage(fieldErr.Field, "required"),
		}})
	default:
		abort(c, newInternalServerError())
	}
}
