package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"

	"newsdesk/internal/config"
	"newsdesk/internal/payout"
	"newsdesk/internal/store"
)

type downStore struct{}

var errDown = errors.New("disk full")

func (downStore) Get(ctx context.Context, key string) (string, error) { return "", errDown }
func (downStore) Set(ctx context.Context, key, value string) error    { return errDown }
func (downStore) Remove(ctx context.Context, key string) error        { return errDown }
func (downStore) Ping(ctx context.Context) error                      { return errDown }

func newTestLedger(t *testing.T, s store.KeyValueStore) *payout.Ledger {
	t.Helper()
	ledger := payout.NewLedger(s,
		payout.WithIDGenerator(func() string { return "INV-1" }),
		payout.WithClock(func() time.Time { return time.Date(2024, 12, 6, 9, 0, 0, 0, time.UTC) }),
	)
	if err := ledger.Load(context.Background()); err != nil {
		t.Fatalf("load ledger: %v", err)
	}
	return ledger
}

func newBoltStore(t *testing.T) *store.BoltStore {
	t.Helper()
	s, err := store.NewBoltStore(filepath.Join(t.TempDir(), "payout.db"))
	if err != nil {
		t.Fatalf("open bolt: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestPayoutRouter(ledger PayoutLedger) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewPayoutHandler(ledger)
	r.GET("/health", h.GetHealth)
	r.GET("/payout", h.GetPayout)
	r.PUT("/payout/inputs", h.PutInputs)
	r.POST("/payout/calculate", h.Calculate)
	r.POST("/payout/save", h.Save)
	r.GET("/payout/history", h.GetHistory)
	r.GET("/payout/export.csv", h.ExportCSV)
	r.GET("/payout/export.pdf", h.ExportPDF)
	return r
}

func doJSON(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	r.ServeHTTP(w, req)
	return w
}

func TestCalculateAndSave(t *testing.T) {
	ledger := newTestLedger(t, newBoltStore(t))
	r := newTestPayoutRouter(ledger)

	w := doJSON(r, "POST", "/payout/calculate", `{"rate":12.5,"articles":4}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var state PayoutStateResponse
	json.Unmarshal(w.Body.Bytes(), &state)
	assert.Equal(t, "50.00", state.Total)
	assert.Equal(t, true, state.Persistent)

	w = doJSON(r, "POST", "/payout/save", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var saved SavePayoutResponse
	json.Unmarshal(w.Body.Bytes(), &saved)
	assert.Equal(t, PayoutRecordResponse{
		ID:          "INV-1",
		Rate:        12.5,
		Articles:    4,
		TotalPayout: "50.00",
		Date:        "12/6/2024",
	}, saved.Record)

	w = doJSON(r, "GET", "/payout", "")
	json.Unmarshal(w.Body.Bytes(), &state)
	assert.Equal(t, 0.0, state.Rate)
	assert.Equal(t, 0, state.Articles)
	assert.Equal(t, "0.00", state.Total)

	w = doJSON(r, "GET", "/payout/history", "")
	var history PayoutHistoryResponse
	json.Unmarshal(w.Body.Bytes(), &history)
	assert.Equal(t, 1, len(history.History))
}

func TestPutInputs_KeepsTotal(t *testing.T) {
	ledger := newTestLedger(t, store.NewMemoryStore())
	r := newTestPayoutRouter(ledger)

	doJSON(r, "POST", "/payout/calculate", `{"rate":10,"articles":3}`)
	w := doJSON(r, "PUT", "/payout/inputs", `{"rate":20,"articles":3}`)
	assert.Equal(t, http.StatusOK, w.Code)

	var state PayoutStateResponse
	json.Unmarshal(w.Body.Bytes(), &state)
	assert.Equal(t, 20.0, state.Rate)
	assert.Equal(t, "30.00", state.Total)
}

func TestPayoutInputValidation(t *testing.T) {
	r := newTestPayoutRouter(newTestLedger(t, store.NewMemoryStore()))

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing articles", body: `{"rate":1}`, want: `{"error":"Invalid payout input"}`},
		{name: "not json", body: `rate=1`, want: `{"error":"Invalid payout input"}`},
		{name: "fractional articles", body: `{"rate":1,"articles":1.5}`, want: `{"error":"Invalid payout input"}`},
		{name: "negative rate", body: `{"rate":-1,"articles":2}`, want: `{"error":"Invalid rate"}`},
		{name: "negative articles", body: `{"rate":1,"articles":-2}`, want: `{"error":"Invalid article count"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(r, "POST", "/payout/calculate", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestPayout_SessionOnlyWhenStoreDown(t *testing.T) {
	ledger := newTestLedger(t, downStore{})
	r := newTestPayoutRouter(ledger)

	w := doJSON(r, "GET", "/health", "")
	assert.Equal(t, `{"status":"healthy","store":"session-only"}`, w.Body.String())

	w = doJSON(r, "POST", "/payout/calculate", `{"rate":2,"articles":5}`)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, "POST", "/payout/save", "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var saved SavePayoutResponse
	json.Unmarshal(w.Body.Bytes(), &saved)
	assert.Equal(t, "10.00", saved.Record.TotalPayout)
	assert.Equal(t, false, saved.Persistent)

	w = doJSON(r, "GET", "/payout/history", "")
	var history PayoutHistoryResponse
	json.Unmarshal(w.Body.Bytes(), &history)
	assert.Equal(t, 1, len(history.History))
	assert.Equal(t, false, history.Persistent)
}

func TestHealth(t *testing.T) {
	w := doJSON(newTestPayoutRouter(newTestLedger(t, newBoltStore(t))), "GET", "/health", "")
	assert.Equal(t, `{"status":"healthy","store":"persistent"}`, w.Body.String())

	w = doJSON(newTestPayoutRouter(newTestLedger(t, store.NewMemoryStore())), "GET", "/health", "")
	assert.Equal(t, `{"status":"healthy","store":"session-only"}`, w.Body.String())
}

func TestHealth_FailedStoreOpen(t *testing.T) {
	kv, closeFn, err := store.Open(context.Background(), config.StoreConfig{
		Driver:   config.StoreBolt,
		BoltPath: filepath.Join(t.TempDir(), "missing-dir", "payout.db"),
	})
	defer closeFn()
	assert.Equal(t, true, errors.Is(err, store.ErrUnavailable))

	r := newTestPayoutRouter(newTestLedger(t, kv))

	w := doJSON(r, "POST", "/payout/calculate", `{"rate":2,"articles":5}`)
	var state PayoutStateResponse
	json.Unmarshal(w.Body.Bytes(), &state)
	assert.Equal(t, false, state.Persistent)

	doJSON(r, "POST", "/payout/save", "")

	w = doJSON(r, "GET", "/health", "")
	assert.Equal(t, `{"status":"healthy","store":"session-only"}`, w.Body.String())
}

func TestExportCSV(t *testing.T) {
	ledger := newTestLedger(t, store.NewMemoryStore())
	r := newTestPayoutRouter(ledger)

	doJSON(r, "POST", "/payout/calculate", `{"rate":12.5,"articles":4}`)
	doJSON(r, "POST", "/payout/save", "")

	w := doJSON(r, "GET", "/payout/export.csv", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="payout_history.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "Invoice,Date,Rate,Articles,Total Payout\nINV-1,12/6/2024,12.5,4,$50.00\n", w.Body.String())
}

func TestExportPDF(t *testing.T) {
	r := newTestPayoutRouter(newTestLedger(t, store.NewMemoryStore()))

	w := doJSON(r, "GET", "/payout/export.pdf", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Equal(t, true, strings.HasPrefix(w.Body.String(), "%PDF"))
}
