package handlers

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"debttracker/pkg/claims"
	"debttracker/pkg/debt"
	"debttracker/pkg/session"
)

const (
	typeError      string = "error"
	typeMessage    string = "message"
	muxVarDebtID   string = "debt_id"
	queryVarIsPaid string = "is_paid"
)

type DebtForm struct {
	Description *string  `json:"description"`
	Amount      *float64 `json:"amount"`
}

type DebtHandler struct {
	Service debt.ServiceInterface
	Logger  *slog.Logger
}

func NewDebtHandler(service debt.ServiceInterface, logger *slog.Logger) *DebtHandler {
	return &DebtHandler{
		Service: service,
		Logger:  logger,
	}
}

func (h *DebtHandler) CreateDebt(w http.ResponseWriter, r *http.Request) {
	var req DebtForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	if req.Description == nil || *req.Description == "" || req.Amount == nil {
		writeError(w, http.StatusBadRequest, typeError, "description and amount are required")
		return
	}

	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	newDebt, err := h.Service.Create(identity.UserID, *req.Description, *req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, typeError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(newDebt); err != nil {
		h.Logger.Error("failed to write JSON response", "error", err)
		return
	}
	h.Logger.Info("new debt created", "user", identity.UserID, "debt", newDebt.ID)
}

func (h *DebtHandler) GetDebts(w http.ResponseWriter, r *http.Request) {
	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	isPaid, ok := parseIsPaidFilter(w, r)
	if !ok {
		return
	}

	debts, err := h.Service.List(identity.UserID, isPaid)
	if err != nil {
		h.Logger.Error("list debts", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed to fetch debts")
		return
	}

	writeJSON(w, h.Logger, debts)
}

func (h *DebtHandler) GetDebtByID(w http.ResponseWriter, r *http.Request) {
	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	debtID, ok := parseDebtID(w, r)
	if !ok {
		return
	}

	found, err := h.Service.GetByID(identity.UserID, debtID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	writeJSON(w, h.Logger, found)
}

func (h *DebtHandler) UpdateDebt(w http.ResponseWriter, r *http.Request) {
	var req DebtForm
	if ok := DecodeJSONBody(w, r, &req); !ok {
		return
	}

	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	debtID, ok := parseDebtID(w, r)
	if !ok {
		return
	}

	updated, err := h.Service.Update(identity.UserID, debtID, req.Description, req.Amount)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if ok := writeJSON(w, h.Logger, updated); ok {
		h.Logger.Info("debt updated", "user", identity.UserID, "debt", debtID)
	}
}

func (h *DebtHandler) DeleteDebt(w http.ResponseWriter, r *http.Request) {
	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	debtID, ok := parseDebtID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Delete(identity.UserID, debtID); err != nil {
		h.writeServiceError(w, err)
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{"message": "debt deleted"}, http.StatusOK); ok {
		h.Logger.Info("debt deleted", "user", identity.UserID, "debt", debtID)
	}
}

func (h *DebtHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	debtID, ok := parseDebtID(w, r)
	if !ok {
		return
	}

	paid, err := h.Service.MarkPaid(identity.UserID, debtID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if ok := WriteResp(w, h.Logger, map[string]any{
		"message": "debt marked as paid",
		"debt":    paid,
	}, http.StatusOK); ok {
		h.Logger.Info("debt paid", "user", identity.UserID, "debt", debtID)
	}
}

func (h *DebtHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	summary, err := h.Service.Summary(identity.UserID)
	if err != nil {
		h.Logger.Error("debts summary", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed to fetch summary")
		return
	}

	writeJSON(w, h.Logger, summary)
}

func (h *DebtHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	var identity session.Identity
	if ok := getIdentityFromContext(w, r, &identity); !ok {
		return
	}

	debts, err := h.Service.List(identity.UserID, nil)
	if err != nil {
		h.Logger.Error("export debts", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed to fetch debts")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="debts.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"id", "description", "amount", "is_paid", "created_at"})
	for _, d := range debts {
		_ = cw.Write([]string{
			strconv.FormatInt(d.ID, 10),
			d.Description,
			fmt.Sprintf("%.2f", d.Amount),
			strconv.FormatBool(d.IsPaid),
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	cw.Flush()

	if err := cw.Error(); err != nil {
		h.Logger.Error("failed to write CSV response", "error", err)
	}
}

func (h *DebtHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, debt.ErrNotFound):
		writeError(w, http.StatusNotFound, typeError, err.Error())
	case errors.Is(err, debt.ErrPaid), errors.Is(err, debt.ErrAmount):
		writeError(w, http.StatusBadRequest, typeError, err.Error())
	default:
		h.Logger.Error("debt handler", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "internal error")
	}
}

func parseDebtID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	vars := mux.Vars(r)

	raw, ok := vars[muxVarDebtID]
	if !ok {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid debt id")
		return 0, false
	}

	debtID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || debtID <= 0 {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid debt id")
		return 0, false
	}

	return debtID, true
}

func parseIsPaidFilter(w http.ResponseWriter, r *http.Request) (*bool, bool) {
	raw := r.URL.Query().Get(queryVarIsPaid)
	if raw == "" {
		return nil, true
	}

	isPaid, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, typeMessage, "invalid is_paid filter")
		return nil, false
	}

	return &isPaid, true
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, data any) bool {
	resp, err := json.Marshal(data)
	if err != nil {
		logger.Error("Failed to serialize JSON response", "error", err)
		writeError(w, http.StatusInternalServerError, typeError, "failed json marshal")
		return false
	}

	w.Header().Set("Content-Type", "application/json")

	if _, err := w.Write(resp); err != nil {
		logger.Error("Failed to write response to client", "error", err)
		return false
	}
	return true
}

func getIdentityFromContext(w http.ResponseWriter, r *http.Request, identity *session.Identity) bool {
	val, ok := r.Context().Value(claims.IdentityContextKey).(session.Identity)
	if !ok || val.UserID == 0 {
		writeError(w, http.StatusUnauthorized, typeMessage, "unauthorized")
		return false
	}
	*identity = val
	return true
}

func writeError(w http.ResponseWriter, status int, field, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(map[string]string{field: msg}); err != nil {
		return
	}
}
