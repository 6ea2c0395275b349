package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/pos/backend/internal/application/identity"
)

// BranchHandler handles branch endpoints
type BranchHandler struct {
	BaseHandler
	branchService *appidentity.BranchService
}

// NewBranchHandler creates a new BranchHandler
func NewBranchHandler(branchService *appidentity.BranchService) *BranchHandler {
	return &BranchHandler{branchService: branchService}
}

// Create godoc
// @Summary      Create a branch
// @Description  An administrator without a branch is assigned the new branch.
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        request body appidentity.BranchRequest true "Branch"
// @Success      201 {object} APIResponse[appidentity.BranchResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /branches [post]
func (h *BranchHandler) Create(c *gin.Context) {
	var req appidentity.BranchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.branchService.Create(c.Request.Context(), h.actor(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, branch)
}

// Update godoc
// @Summary      Update a branch
// @Tags         branches
// @Accept       json
// @Produce      json
// @Param        id path string true "Branch ID"
// @Param        request body appidentity.BranchRequest true "Branch"
// @Success      200 {object} APIResponse[appidentity.BranchResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /branches/{id} [put]
func (h *BranchHandler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appidentity.BranchRequest
	if !h.bindJSON(c, &req) {
		return
	}
	branch, err := h.branchService.Update(c.Request.Context(), h.actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branch)
}

// Delete godoc
// @Summary      Delete a branch
// @Description  Refused while users or sales reference the branch.
// @Tags         branches
// @Param        id path string true "Branch ID"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /branches/{id} [delete]
func (h *BranchHandler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.branchService.Delete(c.Request.Context(), h.actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetByID godoc
// @Summary      Get a branch
// @Tags         branches
// @Produce      json
// @Param        id path string true "Branch ID"
// @Success      200 {object} APIResponse[appidentity.BranchResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /branches/{id} [get]
func (h *BranchHandler) GetByID(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	branch, err := h.branchService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branch)
}

// List godoc
// @Summary      List branches
// @Tags         branches
// @Produce      json
// @Success      200 {object} APIResponse[[]appidentity.BranchResponse]
// @Security     BearerAuth
// @Router       /branches [get]
func (h *BranchHandler) List(c *gin.Context) {
	branches, err := h.branchService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, branches)
}
