package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universo/internal/service"
)

func (h *Handler) listMeetings(c *gin.Context) {
	meetings, err := h.svc.Meetings.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meetings)
}

func (h *Handler) getMeeting(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	meeting, err := h.svc.Meetings.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, meeting)
}

func (h *Handler) createMeeting(c *gin.Context) {
	var input service.CreateMeetingInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	meeting, err := h.svc.Meetings.Create(c.Request.Context(), caller(c).UserID, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("meeting.created", meeting.ID)
	c.JSON(http.StatusCreated, meeting)
}

func (h *Handler) updateMeeting(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input service.UpdateMeetingInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	meeting, err := h.svc.Meetings.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("meeting.updated", meeting.ID)
	c.JSON(http.StatusOK, meeting)
}

func (h *Handler) deleteMeeting(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Meetings.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.publish("meeting.deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Reunión eliminada"})
}
