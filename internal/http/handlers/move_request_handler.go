package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/dto"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/usecase/moverequest"
)

// MoveRequestHandler обслуживает жизненный цикл заявки на переезд.
type MoveRequestHandler struct {
	createUC *moverequest.CreateMoveRequestUseCase
	getUC    *moverequest.GetMoveRequestUseCase
	assignUC *moverequest.AssignProviderUseCase
	expireUC *moverequest.ExpireMoveRequestUseCase
}

func NewMoveRequestHandler(
	createUC *moverequest.CreateMoveRequestUseCase,
	getUC *moverequest.GetMoveRequestUseCase,
	assignUC *moverequest.AssignProviderUseCase,
	expireUC *moverequest.ExpireMoveRequestUseCase,
) *MoveRequestHandler {
	return &MoveRequestHandler{createUC: createUC, getUC: getUC, assignUC: assignUC, expireUC: expireUC}
}

// Create POST /api/move-requests
func (h *MoveRequestHandler) Create(c *gin.Context) {
	var req dto.CreateMoveRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	request, err := h.createUC.Execute(c.Request.Context(), moverequest.CreateMoveRequestInput{
		VideoID:    req.VideoID,
		From:       addressInput(req.From),
		To:         addressInput(req.To),
		FromFloor:  floorInput(req.FromFloor),
		ToFloor:    floorInput(req.ToFloor),
		NeedsBoxes: req.NeedsBoxes,
		BoxesCount: req.BoxesCount,
		MoveDate:   req.MoveDate,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewMoveRequestResponse(request))
}

// Get GET /api/move-requests/:id
func (h *MoveRequestHandler) Get(c *gin.Context) {
	request, err := h.getUC.Execute(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMoveRequestResponse(request))
}

// List GET /api/move-requests
func (h *MoveRequestHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	filter := repository.MoveRequestFilter{
		Status: c.Query("status"),
		Limit:  limit,
		Offset: offset,
	}

	requests, total, err := h.getUC.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}

	items := make([]dto.MoveRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, dto.NewMoveRequestResponse(request))
	}

	c.JSON(http.StatusOK, dto.MoveRequestListResponse{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// AssignProvider POST /api/move-requests/:id/assign
func (h *MoveRequestHandler) AssignProvider(c *gin.Context) {
	var req dto.AssignProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	request, err := h.assignUC.Execute(c.Request.Context(), paramUUID(c, "id"), req.ProviderID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMoveRequestResponse(request))
}

// Expire POST /api/move-requests/:id/expire
func (h *MoveRequestHandler) Expire(c *gin.Context) {
	request, err := h.expireUC.Execute(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewMoveRequestResponse(request))
}

func addressInput(a dto.AddressRequest) moverequest.AddressInput {
	return moverequest.AddressInput{
		Street:         a.Street,
		HouseNumber:    a.HouseNumber,
		PostalCode:     a.PostalCode,
		City:           a.City,
		Country:        a.Country,
		AdditionalInfo: a.AdditionalInfo,
	}
}

func floorInput(f dto.FloorRequest) moverequest.FloorInput {
	return moverequest.FloorInput{
		Floor:                 f.Floor,
		HasElevator:           f.HasElevator,
		NeedsNoParkingZone:    f.NeedsNoParkingZone,
		WalkingDistanceMeters: f.WalkingDistanceMeters,
		NarrowStairs:          f.NarrowStairs,
		CarryOverThresholds:   f.CarryOverThresholds,
	}
}
