package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"universo/internal/service"
)

func (h *Handler) listSectors(c *gin.Context) {
	sectors, err := h.svc.Sectors.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sectors)
}

func (h *Handler) getSector(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	sector, err := h.svc.Sectors.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, sector)
}

func (h *Handler) createSector(c *gin.Context) {
	var input service.SectorInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	sector, err := h.svc.Sectors.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("sector.created", sector.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Sector creado", "sector": sector})
}

func (h *Handler) updateSector(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input service.SectorInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	sector, err := h.svc.Sectors.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("sector.updated", sector.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Sector actualizado", "sector": sector})
}

func (h *Handler) deleteSector(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Sectors.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.publish("sector.deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Sector eliminado"})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.svc.Users.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *Handler) getUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.svc.Users.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) createUser(c *gin.Context) {
	var input service.CreateUserInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.svc.Users.Create(c.Request.Context(), input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("user.created", user.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Usuario creado", "user": user})
}

func (h *Handler) updateUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	var input service.UpdateUserInput
	if err := bind(c, &input); err != nil {
		h.fail(c, err)
		return
	}
	user, err := h.svc.Users.Update(c.Request.Context(), id, input)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish("user.updated", user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Usuario actualizado", "user": user})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	if err := h.svc.Users.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	h.publish("user.deleted", id)
	c.JSON(http.StatusOK, gin.H{"message": "Usuario eliminado correctamente"})
}
