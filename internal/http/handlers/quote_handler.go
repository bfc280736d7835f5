package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mymove-backend/internal/dto"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/usecase/quote"
)

// QuoteHandler обслуживает предварительные оценки стоимости.
type QuoteHandler struct {
	calcUC *quote.CalculateQuoteUseCase
	getUC  *quote.GetQuotesUseCase
}

func NewQuoteHandler(calcUC *quote.CalculateQuoteUseCase, getUC *quote.GetQuotesUseCase) *QuoteHandler {
	return &QuoteHandler{calcUC: calcUC, getUC: getUC}
}

// CalculateAll POST /api/move-requests/:id/quotes/calculate
// Считает оценки всех одобренных компаний. Сбои отдельных компаний
// не прерывают расчёт и возвращаются в секции failed.
func (h *QuoteHandler) CalculateAll(c *gin.Context) {
	outcomes, err := h.calcUC.ExecuteForAllApproved(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	resp := dto.QuoteCalculationResponse{Quotes: make([]dto.QuoteResponse, 0, len(outcomes))}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			resp.Failed = append(resp.Failed, dto.ProviderErrorSummary{
				ProviderID: outcome.ProviderID,
				Error:      outcome.Err.Error(),
			})
			continue
		}
		resp.Quotes = append(resp.Quotes, dto.NewQuoteResponse(outcome.Quote))
	}

	c.JSON(http.StatusOK, resp)
}

// CalculateForProvider POST /api/providers/:id/quotes
func (h *QuoteHandler) CalculateForProvider(c *gin.Context) {
	var req dto.CalculateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apperror.Wrap(err, apperror.ErrCodeBadRequest, "некорректное тело запроса"))
		return
	}

	q, err := h.calcUC.Execute(c.Request.Context(), paramUUID(c, "id"), req.MoveRequestID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuoteResponse(q))
}

// ListByMoveRequest GET /api/move-requests/:id/quotes
func (h *QuoteHandler) ListByMoveRequest(c *gin.Context) {
	quotes, err := h.getUC.ByMoveRequestID(c.Request.Context(), paramUUID(c, "id"))
	if err != nil {
		fail(c, err)
		return
	}

	resp := make([]dto.QuoteResponse, 0, len(quotes))
	for _, q := range quotes {
		resp = append(resp, dto.NewQuoteResponse(q))
	}

	c.JSON(http.StatusOK, resp)
}
