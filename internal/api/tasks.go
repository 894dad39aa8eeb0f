package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universo/internal/service"
)

func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.svc.Tasks.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *Handler) getTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	task, err := h.svc.Tasks.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *Handler) createTask(c *gin.Context) {
	var input service.CreateTaskInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	task, err := h.svc.Tasks.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("task.created", task.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Tarea creada correctamente", "task": task})
}

func (h *Handler) updateTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input service.UpdateTaskInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	task, err := h.svc.Tasks.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("task.updated", task.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Tarea actualizada", "results": task})
}

// setTaskStatus is the board's drag-and-drop endpoint.
func (h *Handler) setTaskStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input struct {
		Status string `json:"status"`
	}
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	task, err := h.svc.Tasks.SetStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("task.updated", task.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Tarea actualizada", "results": task})
}

func (h *Handler) deleteTask(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Tasks.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.publish("task.deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "La tarea ha sido eliminada"})
}
