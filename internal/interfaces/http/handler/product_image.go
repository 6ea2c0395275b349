package handler

import (
	"github.com/gin-gonic/gin"
	appcatalog "github.com/pos/backend/internal/application/catalog"
)

// ProductImageHandler handles product image uploads
type ProductImageHandler struct {
	BaseHandler
	imageService *appcatalog.ProductImageService
}

// NewProductImageHandler creates a new ProductImageHandler
func NewProductImageHandler(imageService *appcatalog.ProductImageService) *ProductImageHandler {
	return &ProductImageHandler{imageService: imageService}
}

// RequestUpload godoc
// @Summary      Request an image upload URL
// @Description  Returns a presigned URL the client PUTs the image to. Confirm the upload afterwards.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body appcatalog.ImageUploadRequest true "Image content type"
// @Success      200 {object} APIResponse[appcatalog.ImageUploadResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id}/image/upload-url [post]
func (h *ProductImageHandler) RequestUpload(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appcatalog.ImageUploadRequest
	if !h.bindJSON(c, &req) {
		return
	}
	resp, err := h.imageService.RequestUpload(c.Request.Context(), h.actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// ConfirmUpload godoc
// @Summary      Confirm an image upload
// @Description  Sets the uploaded object as the product image
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id path string true "Product ID"
// @Param        request body appcatalog.ConfirmImageRequest true "Uploaded object"
// @Success      200 {object} APIResponse[appcatalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id}/image [put]
func (h *ProductImageHandler) ConfirmUpload(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	var req appcatalog.ConfirmImageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.imageService.ConfirmUpload(c.Request.Context(), h.actor(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Remove godoc
// @Summary      Remove the product image
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id}/image [delete]
func (h *ProductImageHandler) Remove(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	if err := h.imageService.RemoveImage(c.Request.Context(), h.actor(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
