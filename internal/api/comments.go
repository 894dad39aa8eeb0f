package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universo/internal/service"
)

func (h *Handler) listComments(c *gin.Context) {
	taskID, err := parseID(c.Query("taskId"), "taskId")
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeThread(c, taskID)
}

func (h *Handler) listTaskComments(c *gin.Context) {
	taskID, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.writeThread(c, taskID)
}

func (h *Handler) writeThread(c *gin.Context, taskID uint) {
	comments, err := h.svc.Comments.ListByTask(c.Request.Context(), taskID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

func (h *Handler) createComment(c *gin.Context) {
	var input service.CreateCommentInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	comment, err := h.svc.Comments.Create(c.Request.Context(), caller(c).UserID, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	// Keyed by task so open threads know to reload.
	h.publish("comment.created", comment.TaskID)
	c.JSON(http.StatusCreated, comment)
}
