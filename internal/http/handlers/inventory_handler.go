package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mymove-backend/internal/dto"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/usecase/inventory"
)

// InventoryHandler обслуживает инвентарную опись заявки.
type InventoryHandler struct {
	createUC  *inventory.CreateFromDetectedUseCase
	modifyUC  *inventory.ModifyInventoryUseCase
	confirmUC *inventory.ConfirmInventoryUseCase
	getUC     *inventory.GetInventoryUseCase
}

func NewInventoryHandler(
	createUC *inventory.CreateFromDetectedUseCase,
	modifyUC *inventory.ModifyInventoryUseCase,
	confirmUC *inventory.ConfirmInventoryUseCase,
	getUC *inventory.GetInventoryUseCase,
) *InventoryHandler {
	return &InventoryHandler{createUC: createUC, modifyUC: modifyUC, confirmUC: confirmUC, getUC: getUC}
}

// Create POST /api/move-requests/:id/inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	items := make([]inventory.DetectedItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, inventory.DetectedItemInput{
			Name:       item.Name,
			Quantity:   item.Quantity,
			Confidence: item.Confidence,
			Category:   item.Category,
			Volume:     item.Volume,
		})
	}

	inv, err := h.createUC.Execute(c.Request.Context(), paramUUID(c, "id"), items)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewInventoryResponse(inv))
}

// Get GET /api/move-requests/:id/inventory
func (h *InventoryHandler) Get(c *gin.Context) {
	inv, err := h.getUC.ByMoveRequestID(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryResponse(inv))
}

// AddItem POST /api/move-requests/:id/inventory/items
func (h *InventoryHandler) AddItem(c *gin.Context) {
	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	inv, err := h.modifyUC.AddItem(c.Request.Context(), paramUUID(c, "id"), itemInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryResponse(inv))
}

// UpdateItem PUT /api/move-requests/:id/inventory/items/:index
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		fail(c, apperror.New(apperror.ErrCodeBadRequest, "индекс позиции должен быть числом"))
		return
	}

	var req dto.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	inv, err := h.modifyUC.UpdateItem(c.Request.Context(), paramUUID(c, "id"), index, itemInput(req))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryResponse(inv))
}

// RemoveItem DELETE /api/move-requests/:id/inventory/items/:index
func (h *InventoryHandler) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		fail(c, apperror.New(apperror.ErrCodeBadRequest, "индекс позиции должен быть числом"))
		return
	}

	inv, err := h.modifyUC.RemoveItem(c.Request.Context(), paramUUID(c, "id"), index)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryResponse(inv))
}

// ReplaceItems PUT /api/move-requests/:id/inventory/items
func (h *InventoryHandler) ReplaceItems(c *gin.Context) {
	var req dto.ReplaceItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	inputs := make([]inventory.ItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		inputs = append(inputs, itemInput(item))
	}

	inv, err := h.modifyUC.ReplaceItems(c.Request.Context(), paramUUID(c, "id"), inputs)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryResponse(inv))
}

// Confirm POST /api/move-requests/:id/inventory/confirm
func (h *InventoryHandler) Confirm(c *gin.Context) {
	inv, err := h.confirmUC.Execute(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewInventoryResponse(inv))
}

func itemInput(req dto.ItemRequest) inventory.ItemInput {
	return inventory.ItemInput{
		Name:       req.Name,
		Quantity:   req.Quantity,
		Confidence: req.Confidence,
		Source:     req.Source,
		Category:   req.Category,
		Volume:     req.Volume,
	}
}
