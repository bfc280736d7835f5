package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
)

// SeedHandler наполняет базу демонстрационными компаниями.
// Доступен только в development: регистрация компаний живёт
// во внешнем контуре, здесь только заготовка для локальной разработки.
type SeedHandler struct {
	providerRepo repository.ProviderRepository
	clk          clock.Clock
}

func NewSeedHandler(providerRepo repository.ProviderRepository, clk clock.Clock) *SeedHandler {
	return &SeedHandler{providerRepo: providerRepo, clk: clk}
}

type seedProvider struct {
	name               string
	hourlyRate         float64
	travelFee          float64
	baseFee            *float64
	extraChargePercent *float64
	minimumPrice       *float64
}

func ptr(v float64) *float64 { return &v }

// Seed POST /api/seed
func (h *SeedHandler) Seed(c *gin.Context) {
	seeds := []seedProvider{
		{name: "Blitz Umzug GmbH", hourlyRate: 65, travelFee: 45, baseFee: ptr(25)},
		{name: "CityMove Express", hourlyRate: 55, travelFee: 60, minimumPrice: ptr(250)},
		{name: "TransAlpin Logistik", hourlyRate: 80, travelFee: 30, baseFee: ptr(40), extraChargePercent: ptr(10)},
	}

	created := make([]gin.H, 0, len(seeds))
	for _, seed := range seeds {
		conditions, err := valueobject.NewPricingConditions(seed.hourlyRate, seed.travelFee, seed.baseFee, seed.extraChargePercent, seed.minimumPrice, "EUR")
		if err != nil {
			fail(c, err)
			return
		}

		provider, err := entity.NewProvider(seed.name, conditions, h.clk.Now())
		if err != nil {
			fail(c, err)
			return
		}
		provider.Approved = true

		if err := h.providerRepo.Create(c.Request.Context(), provider); err != nil {
			fail(c, apperror.Wrap(err, apperror.ErrCodeDatabaseError, "не удалось сохранить компанию"))
			return
		}

		created = append(created, gin.H{"id": provider.ID, "name": provider.Name})
	}

	c.JSON(http.StatusCreated, gin.H{"providers": created})
}
