package handlers

import (
	"github.com/gin-gonic/gin"

	"portfolio-server/internal/services"
	"portfolio-server/internal/utils"
)

// TechnologyHandler handles technology requests.
type TechnologyHandler struct {
	Technologies *services.TechnologyService
}

// NewTechnologyHandler creates a new TechnologyHandler.
func NewTechnologyHandler(technologies *services.TechnologyService) *TechnologyHandler {
	return &TechnologyHandler{Technologies: technologies}
}

type CreateTechnologyRequest struct {
	Name     string  `json:"name" binding:"required,max=100"`
	Slug     string  `json:"slug" binding:"omitempty,max=100"`
	Category *string `json:"category" binding:"omitempty,max=100"`
	Icon     *string `json:"icon" binding:"omitempty,max=255"`
}

type UpdateTechnologyRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug     *string `json:"slug" binding:"omitempty,max=100"`
	Category *string `json:"category" binding:"omitempty,max=100"`
	Icon     *string `json:"icon" binding:"omitempty,max=255"`
}

func (h *TechnologyHandler) List(c *gin.Context) {
	technologies, err := h.Technologies.List(c.Request.Context())
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.List(c, technologies, len(technologies))
}

func (h *TechnologyHandler) Get(c *gin.Context) {
	technology, err := h.Technologies.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, technology)
}

func (h *TechnologyHandler) Create(c *gin.Context) {
	var req CreateTechnologyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	technology, err := h.Technologies.Create(c.Request.Context(), services.TechnologyInput{
		Name:     req.Name,
		Slug:     req.Slug,
		Category: req.Category,
		Icon:     req.Icon,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Created(c, technology)
}

func (h *TechnologyHandler) Update(c *gin.Context) {
	var req UpdateTechnologyRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	technology, err := h.Technologies.Update(c.Request.Context(), c.Param("id"), services.TechnologyPatch{
		Name:     req.Name,
		Slug:     req.Slug,
		Category: req.Category,
		Icon:     req.Icon,
	})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, technology)
}

// Delete refuses to remove a technology still attached to content.
func (h *TechnologyHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.Technologies.Delete(c.Request.Context(), id); err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.Success(c, gin.H{"id": id})
}
