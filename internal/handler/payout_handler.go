package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"newsdesk/internal/model"
	"newsdesk/internal/payout"
	"newsdesk/internal/store"
)

type PayoutLedger interface {
	State() model.PayoutState
	History() []model.PayoutRecord
	Persistent() bool
	SetInputs(ctx context.Context, rate float64, articles int) error
	Calculate(ctx context.Context, rate float64, articles int) (float64, error)
	Save(ctx context.Context) (model.PayoutRecord, error)
	ExportCSV(w io.Writer) error
	ExportPDF(w io.Writer) error
}

type PayoutHandler struct {
	ledger PayoutLedger
}

func NewPayoutHandler(ledger PayoutLedger) *PayoutHandler {
	return &PayoutHandler{ledger: ledger}
}

func toPayoutRecordResponse(r model.PayoutRecord) PayoutRecordResponse {
	return PayoutRecordResponse{
		ID:          r.ID,
		Rate:        r.Rate,
		Articles:    r.Articles,
		TotalPayout: r.TotalPayout,
		Date:        r.Date,
	}
}

func (h *PayoutHandler) stateResponse() PayoutStateResponse {
	s := h.ledger.State()
	return PayoutStateResponse{
		Rate:       s.Rate,
		Articles:   s.Articles,
		Total:      payout.FormatAmount(s.Total),
		Persistent: h.ledger.Persistent(),
	}
}

func (h *PayoutHandler) GetPayout(c *gin.Context) {
	c.JSON(http.StatusOK, h.stateResponse())
}

func (h *PayoutHandler) PutInputs(c *gin.Context) {
	var req PayoutInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payout input"})
		return
	}

	err := h.ledger.SetInputs(c.Request.Context(), *req.Rate, *req.Articles)
	if !h.handleLedgerError(c, err) {
		return
	}

	c.JSON(http.StatusOK, h.stateResponse())
}

func (h *PayoutHandler) Calculate(c *gin.Context) {
	var req PayoutInputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payout input"})
		return
	}

	_, err := h.ledger.Calculate(c.Request.Context(), *req.Rate, *req.Articles)
	if !h.handleLedgerError(c, err) {
		return
	}

	c.JSON(http.StatusOK, h.stateResponse())
}

func (h *PayoutHandler) Save(c *gin.Context) {
	record, err := h.ledger.Save(c.Request.Context())
	if !h.handleLedgerError(c, err) {
		return
	}

	c.JSON(http.StatusCreated, SavePayoutResponse{
		Record:     toPayoutRecordResponse(record),
		Persistent: h.ledger.Persistent(),
	})
}

func (h *PayoutHandler) GetHistory(c *gin.Context) {
	history := h.ledger.History()
	res := PayoutHistoryResponse{
		History:    make([]PayoutRecordResponse, 0, len(history)),
		Persistent: h.ledger.Persistent(),
	}
	for _, r := range history {
		res.History = append(res.History, toPayoutRecordResponse(r))
	}

	c.JSON(http.StatusOK, res)
}

func (h *PayoutHandler) ExportCSV(c *gin.Context) {
	h.export(c, "payout_history.csv", "text/csv; charset=utf-8", h.ledger.ExportCSV)
}

func (h *PayoutHandler) ExportPDF(c *gin.Context) {
	h.export(c, "payout_history.pdf", "application/pdf", h.ledger.ExportPDF)
}

func (h *PayoutHandler) export(c *gin.Context, filename, contentType string, write func(io.Writer) error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		slog.Error("error exporting payout history", "file", filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Export failed"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

// GetHealth reports whether payout state currently reaches durable storage.
func (h *PayoutHandler) GetHealth(c *gin.Context) {
	storage := "persistent"
	if !h.ledger.Persistent() {
		storage = "session-only"
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"store":  storage,
	})
}

// handleLedgerError writes a response for validation failures and reports
// whether the caller should continue. Storage failures are logged by the
// ledger and surface as persistent=false instead of failing the request.
func (h *PayoutHandler) handleLedgerError(c *gin.Context, err error) bool {
	switch {
	case err == nil:
		return true
	case errors.Is(err, payout.ErrInvalidRate):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid rate"})
		return false
	case errors.Is(err, payout.ErrInvalidArticles):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid article count"})
		return false
	case errors.Is(err, store.ErrUnavailable):
		return true
	default:
		slog.Error("error updating payout ledger", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Payout ledger error"})
		return false
	}
}
