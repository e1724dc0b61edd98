package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tctpro/clubledger/internal/adapter/http/dto"
	"github.com/tctpro/clubledger/internal/domain"
	"github.com/tctpro/clubledger/internal/usecase"
)

// ExpenseService defines the behavior needed by ExpenseHandler.
type ExpenseService interface {
	AddExpense(ctx context.Context, input usecase.AddExpenseInput) (*domain.AdditionalExpense, error)
	UpdateExpense(ctx context.Context, input usecase.UpdateExpenseInput) (*domain.AdditionalExpense, error)
	DeleteExpense(ctx context.Context, id, actorID string, actorRole domain.Role) error
	ListExpenses(ctx context.Context, vehicleID, actorID string, actorRole domain.Role) ([]*domain.AdditionalExpense, error)
}

// ExpenseHandler handles additional expense requests.
type ExpenseHandler struct {
	expenseUC ExpenseService
}

// NewExpenseHandler creates a new ExpenseHandler.
func NewExpenseHandler(expenseUC ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseUC: expenseUC}
}

// Add records an expense against an in-stock vehicle.
func (h *ExpenseHandler) Add(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.AddExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	input := usecase.AddExpenseInput{
		VehicleID:   chi.URLParam(r, "id"),
		Description: req.Description,
		Amount:      req.Amount,
		ActorID:     act.ID,
		ActorRole:   act.Role,
	}
	if req.IncurredAt != nil {
		input.IncurredAt = *req.IncurredAt
	}

	expense, err := h.expenseUC.AddExpense(r.Context(), input)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add expense", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ExpenseFromDomain(expense))
}

// Update edits an expense while the vehicle is still in stock.
func (h *ExpenseHandler) Update(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	var req dto.UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	expense, err := h.expenseUC.UpdateExpense(r.Context(), usecase.UpdateExpenseInput{
		ID:          chi.URLParam(r, "id"),
		ActorID:     act.ID,
		ActorRole:   act.Role,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update expense", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ExpenseFromDomain(expense))
}

// Delete removes an expense while the vehicle is still in stock.
func (h *ExpenseHandler) Delete(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	if err := h.expenseUC.DeleteExpense(r.Context(), chi.URLParam(r, "id"), act.ID, act.Role); err != nil {
		writeError(w, mapDomainError(err), "failed to delete expense", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListByVehicle lists a vehicle's expenses with their total.
func (h *ExpenseHandler) ListByVehicle(w http.ResponseWriter, r *http.Request) {
	act, ok := actor(w, r)
	if !ok {
		return
	}

	vehicleID := chi.URLParam(r, "id")
	expenses, err := h.expenseUC.ListExpenses(r.Context(), vehicleID, act.ID, act.Role)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list expenses", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListExpensesResponse{
		Expenses: dto.ExpensesFromDomain(expenses),
		Total:    domain.SumExpenses(expenses),
	})
}
