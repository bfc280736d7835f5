package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mymove-backend/internal/dto"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/usecase/bid"
)

// BidHandler обслуживает переговоры по офертам.
type BidHandler struct {
	submitUC   *bid.SubmitBidUseCase
	acceptUC   *bid.AcceptBidUseCase
	rejectUC   *bid.RejectBidUseCase
	findBestUC *bid.FindBestBidUseCase
	listUC     *bid.ListBidsUseCase
}

func NewBidHandler(
	submitUC *bid.SubmitBidUseCase,
	acceptUC *bid.AcceptBidUseCase,
	rejectUC *bid.RejectBidUseCase,
	findBestUC *bid.FindBestBidUseCase,
	listUC *bid.ListBidsUseCase,
) *BidHandler {
	return &BidHandler{submitUC: submitUC, acceptUC: acceptUC, rejectUC: rejectUC, findBestUC: findBestUC, listUC: listUC}
}

// Submit POST /api/bids
func (h *BidHandler) Submit(c *gin.Context) {
	var req dto.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	submitted, err := h.submitUC.Execute(c.Request.Context(), bid.SubmitBidInput{
		ProviderID:    req.ProviderID,
		MoveRequestID: req.MoveRequestID,
		AdjustedPrice: req.AdjustedPrice,
		ValidityDays:  req.ValidityDays,
		Notes:         req.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewBidResponse(submitted))
}

// Accept POST /api/bids/:id/accept
func (h *BidHandler) Accept(c *gin.Context) {
	accepted, outcomes, err := h.acceptUC.Execute(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	resp := dto.AcceptBidResponse{
		Bid:         dto.NewBidResponse(accepted),
		Competitors: make([]dto.CompetitorOutcome, 0, len(outcomes)),
	}
	for _, outcome := range outcomes {
		co := dto.CompetitorOutcome{BidID: outcome.BidID, Rejected: outcome.Rejected}
		if outcome.Err != nil {
			co.Error = outcome.Err.Error()
		}
		resp.Competitors = append(resp.Competitors, co)
	}

	c.JSON(http.StatusOK, resp)
}

// Reject POST /api/bids/:id/reject
func (h *BidHandler) Reject(c *gin.Context) {
	var req dto.RejectBidRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	rejected, err := h.rejectUC.Execute(c.Request.Context(), paramUUID(c, "id"), req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBidResponse(rejected))
}

// Best GET /api/move-requests/:id/bids/best
func (h *BidHandler) Best(c *gin.Context) {
	best, err := h.findBestUC.Execute(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBidResponse(best))
}

// ListByMoveRequest GET /api/move-requests/:id/bids
func (h *BidHandler) ListByMoveRequest(c *gin.Context) {
	bids, err := h.listUC.ByMoveRequestID(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	resp := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, dto.NewBidResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}

// ListByProvider GET /api/providers/:id/bids
func (h *BidHandler) ListByProvider(c *gin.Context) {
	bids, err := h.listUC.ByProviderID(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	resp := make([]dto.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, dto.NewBidResponse(b))
	}

	c.JSON(http.StatusOK, resp)
}
