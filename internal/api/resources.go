package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universo/internal/service"
)

func (h *Handler) listResources(c *gin.Context) {
	resources, err := h.svc.Resources.List(c.Request.Context(), caller(c).IsAdmin())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resources)
}

func (h *Handler) createResource(c *gin.Context) {
	var input service.ResourceInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	resource, err := h.svc.Resources.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("resource.created", resource.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Recurso creado", "resource": resource})
}

func (h *Handler) updateResource(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input service.ResourceInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	resource, err := h.svc.Resources.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("resource.updated", resource.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Recurso actualizado", "resource": resource})
}

func (h *Handler) deleteResource(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Resources.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.publish("resource.deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Recurso eliminado"})
}
