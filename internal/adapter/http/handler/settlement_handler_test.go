package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/tctpro/clubledger/internal/adapter/http/dto"
	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

type stubSettlementService struct {
	settleFn func(ctx context.Context, input usecase.SettleInput) (*domain.SaleSettlement, error)
	getFn    func(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.SaleSettlement, error)
	listFn   func(ctx context.Context, input usecase.ListSettlementsInput) ([]*domain.SaleSettlement, error)
}

func (s *stubSettlementService) Settle(ctx context.Context, input usecase.SettleInput) (*domain.SaleSettlement, error) {
	return s.settleFn(ctx, input)
}

func (s *stubSettlementService) GetSettlement(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.SaleSettlement, error) {
	return s.getFn(ctx, id, actorID, actorRole)
}

func (s *stubSettlementService) ListSettlements(ctx context.Context, input usecase.ListSettlementsInput) ([]*domain.SaleSettlement, error) {
	return s.listFn(ctx, input)
}

func authedRequest(req *http.Request, member *domain.Member) *http.Request {
	return req.WithContext(domain.ContextWithMember(req.Context(), member))
}

func settlementRouter(h *SettlementHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/vehicles/{id}/sale", h.Settle)
	r.Get("/settlements", h.List)
	r.Get("/settlements/{id}", h.Get)
	return r
}

func TestSettlementHandler_Settle(t *testing.T) {
	member := &domain.Member{ID: "mem-1", Role: domain.RoleMember}

	svc := &stubSettlementService{
		settleFn: func(ctx context.Context, input usecase.SettleInput) (*domain.SaleSettlement, error) {
			if input.VehicleID != "veh-1" {
				t.Fatalf("expected vehicle ID from path, got %s", input.VehicleID)
			}
			if input.ActorID != "mem-1" || input.ActorRole != domain.RoleMember {
				t.Fatalf("expected actor to propagate, got %+v", input)
			}
			if !input.SoldPrice.Equal(decimal.RequireFromString("13000")) {
				t.Fatalf("expected sold price 13000, got %s", input.SoldPrice)
			}
			return &domain.SaleSettlement{
				ID:        "stl-1",
				VehicleID: input.VehicleID,
				MemberID:  input.ActorID,
				SoldPrice: input.SoldPrice,
				NetProfit: decimal.RequireFromString("2250"),
			}, nil
		},
	}

	router := settlementRouter(NewSettlementHandler(svc))

	body := `{"sold_price":"13000"}`
	req := httptest.NewRequest(http.MethodPost, "/vehicles/veh-1/sale", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(req, member))

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.SettlementResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ID != "stl-1" || !resp.NetProfit.Equal(decimal.RequireFromString("2250")) {
		t.Fatalf("unexpected settlement response: %+v", resp)
	}
}

func TestSettlementHandler_SettleAlreadySold(t *testing.T) {
	member := &domain.Member{ID: "mem-1", Role: domain.RoleMember}

	svc := &stubSettlementService{
		settleFn: func(ctx context.Context, input usecase.SettleInput) (*domain.SaleSettlement, error) {
			return nil, domain.ErrVehicleAlreadySold
		},
	}

	router := settlementRouter(NewSettlementHandler(svc))

	req := httptest.NewRequest(http.MethodPost, "/vehicles/veh-1/sale", strings.NewReader(`{"sold_price":"13000"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(req, member))

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for already sold vehicle, got %d", rec.Code)
	}
}

func TestSettlementHandler_SettleUnauthenticated(t *testing.T) {
	router := settlementRouter(NewSettlementHandler(&stubSettlementService{}))

	req := httptest.NewRequest(http.MethodPost, "/vehicles/veh-1/sale", strings.NewReader(`{"sold_price":"13000"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without actor, got %d", rec.Code)
	}
}

func TestSettlementHandler_List(t *testing.T) {
	member := &domain.Member{ID: "mem-1", Role: domain.RoleMember}

	svc := &stubSettlementService{
		listFn: func(ctx context.Context, input usecase.ListSettlementsInput) ([]*domain.SaleSettlement, error) {
			if input.Limit != 10 || input.Offset != 5 {
				t.Fatalf("expected pagination to propagate, got %+v", input)
			}
			return []*domain.SaleSettlement{{ID: "stl-1", MemberID: "mem-1"}}, nil
		},
	}

	router := settlementRouter(NewSettlementHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/settlements?limit=10&offset=5", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(req, member))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListSettlementsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 || resp.Settlements[0].ID != "stl-1" {
		t.Fatalf("unexpected list response: %+v", resp)
	}
}

func TestSettlementHandler_GetNotFound(t *testing.T) {
	member := &domain.Member{ID: "mem-1", Role: domain.RoleMember}

	svc := &stubSettlementService{
		getFn: func(ctx context.Context, id, actorID string, actorRole domain.Role) (*domain.SaleSettlement, error) {
			return nil, domain.ErrSettlementNotFound
		},
	}

	router := settlementRouter(NewSettlementHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/settlements/ghost", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(req, member))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
