package bid_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/mymove-backend/internal/domain/entity"
	"github.com/ignatzorin/mymove-backend/internal/domain/repository"
	"github.com/ignatzorin/mymove-backend/internal/domain/valueobject"
	"github.com/ignatzorin/mymove-backend/internal/pkg/apperror"
	"github.com/ignatzorin/mymove-backend/internal/pkg/clock"
	"github.com/ignatzorin/mymove-backend/internal/usecase/bid"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// mockBidRepository хранит записи по значению и возвращает копии,
// как это делает настоящая база: мутация сущности в use case не
// меняет сохранённое состояние до явного Update.
type mockBidRepository struct {
	bids map[uuid.UUID]entity.Bid
	// findHook выполняется после чтения, до возврата копии.
	// Позволяет имитировать конкурентную запись между чтением и сохранением.
	findHook func()
	// failUpdateFor подменяет результат UpdateFromSubmitted для конкретных оферт.
	failUpdateFor map[uuid.UUID]error
}

func newMockBidRepository() *mockBidRepository {
	return &mockBidRepository{bids: make(map[uuid.UUID]entity.Bid), failUpdateFor: make(map[uuid.UUID]error)}
}

func (m *mockBidRepository) put(b *entity.Bid) {
	m.bids[b.ID] = *b
}

func (m *mockBidRepository) Create(ctx context.Context, b *entity.Bid) error {
	m.put(b)
	return nil
}

func (m *mockBidRepository) Update(ctx context.Context, b *entity.Bid) error {
	m.put(b)
	return nil
}

func (m *mockBidRepository) UpdateFromSubmitted(ctx context.Context, b *entity.Bid) error {
	if err, ok := m.failUpdateFor[b.ID]; ok {
		return err
	}
	stored, ok := m.bids[b.ID]
	if !ok || stored.Status != valueobject.BidStatusSubmitted {
		return apperror.New(apperror.ErrCodeConflict, "оферта уже обработана")
	}
	m.put(b)
	return nil
}

func (m *mockBidRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(m.bids, id)
	return nil
}

func (m *mockBidRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Bid, error) {
	stored, ok := m.bids[id]
	if !ok {
		return nil, nil
	}
	if m.findHook != nil {
		m.findHook()
	}
	return &stored, nil
}

func (m *mockBidRepository) FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Bid, error) {
	var result []*entity.Bid
	for id := range m.bids {
		stored := m.bids[id]
		if stored.MoveRequestID == moveRequestID {
			result = append(result, &stored)
		}
	}
	return result, nil
}

func (m *mockBidRepository) FindByProviderID(ctx context.Context, providerID uuid.UUID) ([]*entity.Bid, error) {
	var result []*entity.Bid
	for id := range m.bids {
		stored := m.bids[id]
		if stored.ProviderID == providerID {
			result = append(result, &stored)
		}
	}
	return result, nil
}

func (m *mockBidRepository) FindByProviderAndMoveRequest(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Bid, error) {
	for id := range m.bids {
		stored := m.bids[id]
		if stored.ProviderID == providerID && stored.MoveRequestID == moveRequestID {
			return &stored, nil
		}
	}
	return nil, nil
}

type mockMoveRequestRepository struct {
	requests map[uuid.UUID]entity.MoveRequest
}

func newMockMoveRequestRepository() *mockMoveRequestRepository {
	return &mockMoveRequestRepository{requests: make(map[uuid.UUID]entity.MoveRequest)}
}

func (m *mockMoveRequestRepository) Create(ctx context.Context, r *entity.MoveRequest) error {
	m.requests[r.ID] = *r
	return nil
}

func (m *mockMoveRequestRepository) Update(ctx context.Context, r *entity.MoveRequest) error {
	m.requests[r.ID] = *r
	return nil
}

func (m *mockMoveRequestRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.MoveRequest, error) {
	stored, ok := m.requests[id]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (m *mockMoveRequestRepository) List(ctx context.Context, filter repository.MoveRequestFilter) ([]*entity.MoveRequest, int, error) {
	return nil, 0, nil
}

type mockQuoteRepository struct {
	quotes map[uuid.UUID]entity.Quote
}

func newMockQuoteRepository() *mockQuoteRepository {
	return &mockQuoteRepository{quotes: make(map[uuid.UUID]entity.Quote)}
}

func (m *mockQuoteRepository) Create(ctx context.Context, q *entity.Quote) error {
	m.quotes[q.ID] = *q
	return nil
}

func (m *mockQuoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	stored, ok := m.quotes[id]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (m *mockQuoteRepository) FindByMoveRequestID(ctx context.Context, moveRequestID uuid.UUID) ([]*entity.Quote, error) {
	var result []*entity.Quote
	for id := range m.quotes {
		stored := m.quotes[id]
		if stored.MoveRequestID == moveRequestID {
			result = append(result, &stored)
		}
	}
	return result, nil
}

func (m *mockQuoteRepository) FindLatestByProviderAndMoveRequest(ctx context.Context, providerID, moveRequestID uuid.UUID) (*entity.Quote, error) {
	var latest *entity.Quote
	for id := range m.quotes {
		stored := m.quotes[id]
		if stored.ProviderID != providerID || stored.MoveRequestID != moveRequestID {
			continue
		}
		if latest == nil || stored.CalculatedAt.After(latest.CalculatedAt) {
			latest = &stored
		}
	}
	return latest, nil
}

type mockProviderRepository struct {
	providers map[uuid.UUID]entity.Provider
}

func newMockProviderRepository() *mockProviderRepository {
	return &mockProviderRepository{providers: make(map[uuid.UUID]entity.Provider)}
}

func (m *mockProviderRepository) Create(ctx context.Context, p *entity.Provider) error {
	m.providers[p.ID] = *p
	return nil
}

func (m *mockProviderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Provider, error) {
	stored, ok := m.providers[id]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

func (m *mockProviderRepository) FindApproved(ctx context.Context) ([]*entity.Provider, error) {
	var result []*entity.Provider
	for id := range m.providers {
		stored := m.providers[id]
		if stored.Approved {
			result = append(result, &stored)
		}
	}
	return result, nil
}

func negotiatingRequest(t *testing.T) *entity.MoveRequest {
	t.Helper()
	inventoryID := uuid.New()
	return &entity.MoveRequest{
		ID:          uuid.New(),
		Status:      valueobject.MoveRequestStatusFinalOfferSubmitted,
		VideoID:     uuid.New(),
		InventoryID: &inventoryID,
		CreatedAt:   testNow,
		UpdatedAt:   testNow,
	}
}

func submittedBid(t *testing.T, moveRequestID uuid.UUID, price float64, submittedAt time.Time) *entity.Bid {
	t.Helper()
	b, err := entity.NewAdjustedBid(moveRequestID, uuid.New(), nil, price, valueobject.CostBreakdown{}, 7, "", submittedAt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.Submit(submittedAt); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return b
}

func TestAcceptBidUseCase_Success(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewAcceptBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	requestRepo.requests[request.ID] = *request

	// Клиент принимает не самую дешёвую оферту: выбор за ним.
	winner := submittedBid(t, request.ID, 900, testNow.Add(-time.Hour))
	competitor := submittedBid(t, request.ID, 850, testNow.Add(-time.Hour))
	bidRepo.put(winner)
	bidRepo.put(competitor)

	accepted, outcomes, err := uc.Execute(context.Background(), winner.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != valueobject.BidStatusAccepted {
		t.Errorf("expected accepted status, got %s", accepted.Status)
	}

	if len(outcomes) != 1 {
		t.Fatalf("expected 1 competitor outcome, got %d", len(outcomes))
	}
	if outcomes[0].BidID != competitor.ID || !outcomes[0].Rejected {
		t.Errorf("expected competitor %s to be rejected, got %+v", competitor.ID, outcomes[0])
	}

	storedCompetitor := bidRepo.bids[competitor.ID]
	if storedCompetitor.Status != valueobject.BidStatusRejected {
		t.Errorf("expected stored competitor to be rejected, got %s", storedCompetitor.Status)
	}
	if storedCompetitor.RejectionReason != "принята конкурирующая оферта" {
		t.Errorf("unexpected rejection reason: %q", storedCompetitor.RejectionReason)
	}

	storedRequest := requestRepo.requests[request.ID]
	if storedRequest.Status != valueobject.MoveRequestStatusAccepted {
		t.Errorf("expected request to be accepted, got %s", storedRequest.Status)
	}
}

func TestAcceptBidUseCase_ExactlyOneAccepted(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewAcceptBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	requestRepo.requests[request.ID] = *request

	bids := []*entity.Bid{
		submittedBid(t, request.ID, 700, testNow.Add(-3*time.Hour)),
		submittedBid(t, request.ID, 800, testNow.Add(-2*time.Hour)),
		submittedBid(t, request.ID, 900, testNow.Add(-time.Hour)),
	}
	for _, b := range bids {
		bidRepo.put(b)
	}

	if _, _, err := uc.Execute(context.Background(), bids[1].ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	acceptedCount := 0
	rejectedCount := 0
	for _, stored := range bidRepo.bids {
		switch stored.Status {
		case valueobject.BidStatusAccepted:
			acceptedCount++
		case valueobject.BidStatusRejected:
			rejectedCount++
		}
	}
	if acceptedCount != 1 {
		t.Errorf("expected exactly one accepted bid, got %d", acceptedCount)
	}
	if rejectedCount != 2 {
		t.Errorf("expected two rejected bids, got %d", rejectedCount)
	}
}

func TestAcceptBidUseCase_NotFound(t *testing.T) {
	uc := bid.NewAcceptBidUseCase(newMockBidRepository(), newMockMoveRequestRepository(), clock.Fixed{Time: testNow})

	_, _, err := uc.Execute(context.Background(), uuid.New())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestAcceptBidUseCase_DraftNotAcceptable(t *testing.T) {
	bidRepo := newMockBidRepository()
	uc := bid.NewAcceptBidUseCase(bidRepo, newMockMoveRequestRepository(), clock.Fixed{Time: testNow})

	draft, err := entity.NewAdjustedBid(uuid.New(), uuid.New(), nil, 500, valueobject.CostBreakdown{}, 7, "", testNow)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bidRepo.put(draft)

	_, _, err = uc.Execute(context.Background(), draft.ID)
	if !apperror.IsInvalidState(err) {
		t.Fatalf("expected invalid state error, got %v", err)
	}
}

func TestAcceptBidUseCase_ExpiredBidMarkedAndRefused(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewAcceptBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	requestRepo.requests[request.ID] = *request

	// Подана 8 дней назад при сроке действия 7 дней.
	stale := submittedBid(t, request.ID, 600, testNow.Add(-8*24*time.Hour))
	bidRepo.put(stale)

	_, _, err := uc.Execute(context.Background(), stale.ID)
	if !apperror.IsExpired(err) {
		t.Fatalf("expected expired error, got %v", err)
	}

	stored := bidRepo.bids[stale.ID]
	if stored.Status != valueobject.BidStatusExpired {
		t.Errorf("expected stored bid to be expired, got %s", stored.Status)
	}

	storedRequest := requestRepo.requests[request.ID]
	if storedRequest.Status != valueobject.MoveRequestStatusFinalOfferSubmitted {
		t.Errorf("request must stay in negotiation, got %s", storedRequest.Status)
	}
}

func TestAcceptBidUseCase_ConcurrentAcceptConflict(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewAcceptBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	requestRepo.requests[request.ID] = *request
	contested := submittedBid(t, request.ID, 750, testNow.Add(-time.Hour))
	bidRepo.put(contested)

	// Конкурирующее принятие успевает сохраниться между чтением и записью.
	bidRepo.findHook = func() {
		stored := bidRepo.bids[contested.ID]
		stored.Status = valueobject.BidStatusAccepted
		acceptedAt := testNow
		stored.AcceptedAt = &acceptedAt
		bidRepo.bids[contested.ID] = stored
	}

	_, _, err := uc.Execute(context.Background(), contested.ID)
	if !apperror.IsConflict(err) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestAcceptBidUseCase_CompetitorFailureIsNotFatal(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewAcceptBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	requestRepo.requests[request.ID] = *request

	winner := submittedBid(t, request.ID, 700, testNow.Add(-time.Hour))
	healthy := submittedBid(t, request.ID, 800, testNow.Add(-time.Hour))
	broken := submittedBid(t, request.ID, 900, testNow.Add(-time.Hour))
	bidRepo.put(winner)
	bidRepo.put(healthy)
	bidRepo.put(broken)
	bidRepo.failUpdateFor[broken.ID] = errors.New("connection reset")

	accepted, outcomes, err := uc.Execute(context.Background(), winner.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accepted.Status != valueobject.BidStatusAccepted {
		t.Errorf("expected accepted status, got %s", accepted.Status)
	}

	if len(outcomes) != 2 {
		t.Fatalf("expected 2 competitor outcomes, got %d", len(outcomes))
	}
	byID := make(map[uuid.UUID]bid.CompetitorOutcome, len(outcomes))
	for _, o := range outcomes {
		byID[o.BidID] = o
	}
	if o := byID[healthy.ID]; !o.Rejected || o.Err != nil {
		t.Errorf("expected healthy competitor to be rejected, got %+v", o)
	}
	if o := byID[broken.ID]; o.Rejected || o.Err == nil {
		t.Errorf("expected broken competitor to fail, got %+v", o)
	}

	// Сбой конкурента не мешает завершить заявку.
	storedRequest := requestRepo.requests[request.ID]
	if storedRequest.Status != valueobject.MoveRequestStatusAccepted {
		t.Errorf("expected request to be accepted, got %s", storedRequest.Status)
	}
}

func TestRejectBidUseCase_DefaultReasonAndRequestStaysOpen(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewRejectBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	requestRepo.requests[request.ID] = *request

	first := submittedBid(t, request.ID, 700, testNow.Add(-time.Hour))
	second := submittedBid(t, request.ID, 800, testNow.Add(-time.Hour))
	bidRepo.put(first)
	bidRepo.put(second)

	rejected, err := uc.Execute(context.Background(), first.ID, "  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.RejectionReason != "клиент отклонил оферту" {
		t.Errorf("expected default reason, got %q", rejected.RejectionReason)
	}

	// Осталась живая оферта, заявка не завершается.
	storedRequest := requestRepo.requests[request.ID]
	if storedRequest.Status != valueobject.MoveRequestStatusFinalOfferSubmitted {
		t.Errorf("request must stay open, got %s", storedRequest.Status)
	}
}

func TestRejectBidUseCase_LastBidFinalizesRequest(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewRejectBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	requestRepo.requests[request.ID] = *request
	only := submittedBid(t, request.ID, 700, testNow.Add(-time.Hour))
	bidRepo.put(only)

	if _, err := uc.Execute(context.Background(), only.ID, "слишком дорого"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	storedRequest := requestRepo.requests[request.ID]
	if storedRequest.Status != valueobject.MoveRequestStatusRejected {
		t.Errorf("expected request to be rejected, got %s", storedRequest.Status)
	}
}

func TestRejectBidUseCase_FinishedRequestTolerated(t *testing.T) {
	bidRepo := newMockBidRepository()
	requestRepo := newMockMoveRequestRepository()
	uc := bid.NewRejectBidUseCase(bidRepo, requestRepo, clock.Fixed{Time: testNow})

	request := negotiatingRequest(t)
	request.Status = valueobject.MoveRequestStatusAccepted
	requestRepo.requests[request.ID] = *request
	leftover := submittedBid(t, request.ID, 700, testNow.Add(-time.Hour))
	bidRepo.put(leftover)

	rejected, err := uc.Execute(context.Background(), leftover.ID, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rejected.Status != valueobject.BidStatusRejected {
		t.Errorf("expected rejected bid, got %s", rejected.Status)
	}

	storedRequest := requestRepo.requests[request.ID]
	if storedRequest.Status != valueobject.MoveRequestStatusAccepted {
		t.Errorf("finished request must not change, got %s", storedRequest.Status)
	}
}

func TestFindBestBidUseCase_CheapestWins(t *testing.T) {
	bidRepo := newMockBidRepository()
	uc := bid.NewFindBestBidUseCase(bidRepo, clock.Fixed{Time: testNow})

	moveRequestID := uuid.New()
	cheap := submittedBid(t, moveRequestID, 650, testNow.Add(-time.Hour))
	pricey := submittedBid(t, moveRequestID, 900, testNow.Add(-2*time.Hour))
	bidRepo.put(cheap)
	bidRepo.put(pricey)

	best, err := uc.Execute(context.Background(), moveRequestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.ID != cheap.ID {
		t.Errorf("expected cheapest bid %s, got %s", cheap.ID, best.ID)
	}
}

func TestFindBestBidUseCase_TieBrokenBySubmissionTime(t *testing.T) {
	bidRepo := newMockBidRepository()
	uc := bid.NewFindBestBidUseCase(bidRepo, clock.Fixed{Time: testNow})

	moveRequestID := uuid.New()
	earlier := submittedBid(t, moveRequestID, 700, testNow.Add(-3*time.Hour))
	later := submittedBid(t, moveRequestID, 700, testNow.Add(-time.Hour))
	bidRepo.put(earlier)
	bidRepo.put(later)

	best, err := uc.Execute(context.Background(), moveRequestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.ID != earlier.ID {
		t.Errorf("expected earlier bid %s, got %s", earlier.ID, best.ID)
	}
}

func TestFindBestBidUseCase_ExpiredAndDecidedExcluded(t *testing.T) {
	bidRepo := newMockBidRepository()
	uc := bid.NewFindBestBidUseCase(bidRepo, clock.Fixed{Time: testNow})

	moveRequestID := uuid.New()
	stale := submittedBid(t, moveRequestID, 500, testNow.Add(-8*24*time.Hour))
	alive := submittedBid(t, moveRequestID, 800, testNow.Add(-time.Hour))
	decided := submittedBid(t, moveRequestID, 400, testNow.Add(-time.Hour))
	if err := decided.Reject(testNow, "дорого"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bidRepo.put(stale)
	bidRepo.put(alive)
	bidRepo.put(decided)

	best, err := uc.Execute(context.Background(), moveRequestID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.ID != alive.ID {
		t.Errorf("expected alive bid %s, got %s", alive.ID, best.ID)
	}
}

func TestFindBestBidUseCase_NoneAlive(t *testing.T) {
	uc := bid.NewFindBestBidUseCase(newMockBidRepository(), clock.Fixed{Time: testNow})

	_, err := uc.Execute(context.Background(), uuid.New())
	if !apperror.IsNotFound(err) {
		t.Fatalf("expected not found error, got %v", err)
	}
}
