package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/storage"
	"github.com/jaymalhar/supplyledger/internal/invoice"
	"github.com/jaymalhar/supplyledger/internal/ledger"
	"github.com/jaymalhar/supplyledger/internal/render"
)

type fakeDeliveryStore struct {
	records []entity.DeliveryRecord
}

func (f *fakeDeliveryStore) Create(_ context.Context, rec *entity.DeliveryRecord) error {
	rec.ID = int64(len(f.records) + 1)
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeDeliveryStore) GetAll(_ context.Context) ([]entity.DeliveryRecord, error) {
	return f.records, nil
}

func (f *fakeDeliveryStore) GetByID(_ context.Context, id int64) (*entity.DeliveryRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeDeliveryStore) Update(_ context.Context, rec *entity.DeliveryRecord) error {
	for i, r := range f.records {
		if r.ID == rec.ID {
			f.records[i] = *rec
			return nil
		}
	}
	return nil
}

func (f *fakeDeliveryStore) Delete(_ context.Context, id int64) error {
	for i, r := range f.records {
		if r.ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakePaymentStore struct {
	payments []entity.SupplierPayment
}

func (f *fakePaymentStore) Create(_ context.Context, p *entity.SupplierPayment) error {
	p.ID = int64(len(f.payments) + 1)
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakePaymentStore) GetAll(_ context.Context) ([]entity.SupplierPayment, error) {
	return f.payments, nil
}

func (f *fakePaymentStore) Update(_ context.Context, p *entity.SupplierPayment) error { return nil }
func (f *fakePaymentStore) Delete(_ context.Context, id int64) error                  { return nil }

// fakeLedgerStore backs both the importer and the handler's read path
type fakeLedgerStore struct {
	rows []entity.LedgerRow
}

func (f *fakeLedgerStore) GetAll(_ context.Context) ([]entity.LedgerRow, error) {
	return f.rows, nil
}

func (f *fakeLedgerStore) DeleteAll(_ context.Context) error {
	f.rows = nil
	return nil
}

func (f *fakeLedgerStore) InsertBatch(_ context.Context, rows []entity.LedgerRow) error {
	f.rows = append(f.rows, rows...)
	return nil
}

func (f *fakeLedgerStore) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeInvoiceStore struct {
	created []entity.GeneratedInvoice
}

func (f *fakeInvoiceStore) Create(_ context.Context, inv *entity.GeneratedInvoice) error {
	inv.ID = int64(len(f.created) + 1)
	f.created = append(f.created, *inv)
	return nil
}

func (f *fakeInvoiceStore) GetAll(_ context.Context) ([]entity.GeneratedInvoice, error) {
	return f.created, nil
}

type fakeChequeStore struct {
	cheques []entity.ChequeEntry
}

func (f *fakeChequeStore) Create(_ context.Context, cheque *entity.ChequeEntry) error {
	cheque.ID = int64(len(f.cheques) + 1)
	f.cheques = append(f.cheques, *cheque)
	return nil
}

func (f *fakeChequeStore) GetAll(_ context.Context) ([]entity.ChequeEntry, error) {
	return f.cheques, nil
}

func (f *fakeChequeStore) UpdateStatus(_ context.Context, id int64, status string) error {
	for i, c := range f.cheques {
		if c.ID == id {
			f.cheques[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("cheque entry %d not found", id)
}

func (f *fakeChequeStore) Delete(_ context.Context, id int64) error {
	for i, c := range f.cheques {
		if c.ID == id {
			f.cheques = append(f.cheques[:i], f.cheques[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("cheque entry %d not found", id)
}

func newTestServer(t *testing.T, deliveries *fakeDeliveryStore, ledgerStore *fakeLedgerStore) (*Server, *fakeInvoiceStore) {
	t.Helper()

	logger := zap.NewNop()
	importer := ledger.NewImporter(ledgerStore, 100, logger)
	compiler := invoice.NewCompiler(logger)
	invoices := &fakeInvoiceStore{}
	artifacts := storage.NewLocalFileStore(t.TempDir(), logger)
	generator := invoice.NewGenerator(compiler, render.NewSpreadsheetRenderer(logger), invoices, artifacts, logger)
	uploads := storage.NewLocalFileStore(t.TempDir(), logger)

	handlers := NewHandlers(deliveries, &fakePaymentStore{}, ledgerStore, invoices, &fakeChequeStore{},
		importer, compiler, generator, uploads, "JME", logger)

	return NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, handlers, logger), invoices
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateEntryAllocatesChallanNumber(t *testing.T) {
	// The handler allocates for the current year, so the fixture must too.
	year := time.Now().Year()
	deliveries := &fakeDeliveryStore{records: []entity.DeliveryRecord{
		{ID: 1, Date: fmt.Sprintf("%d-06-01", year), ChallanNumber: fmt.Sprintf("JME/%d/041", year),
			Material: entity.MaterialWashsand},
	}}
	srv, _ := newTestServer(t, deliveries, &fakeLedgerStore{})

	body, _ := json.Marshal(map[string]interface{}{
		"date":     fmt.Sprintf("%d-06-02", year),
		"material": entity.MaterialWashsand,
		"quantity": 3,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data entity.DeliveryRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, fmt.Sprintf("JME/%d/042", year), resp.Data.ChallanNumber)
}

func TestCreateEntryRejectsNonPositiveQuantity(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	for _, qty := range []float64{-2, 0} {
		body, _ := json.Marshal(map[string]interface{}{
			"date":     "2025-06-02",
			"material": entity.MaterialWashsand,
			"quantity": qty,
		})
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/entries", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		srv.Router().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code, "quantity %v", qty)
	}
}

func TestCompileInvoiceRejectsMalformedMonth(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	body, _ := json.Marshal(CompileInvoiceRequest{Month: "June 2025", Category: entity.CategoryBuildingMaterial})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/compile", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNextChallanNumberForYear(t *testing.T) {
	deliveries := &fakeDeliveryStore{records: []entity.DeliveryRecord{
		{ID: 1, ChallanNumber: "JME/2024/007"},
		{ID: 2, ChallanNumber: "JME/2025/002"},
	}}
	srv, _ := newTestServer(t, deliveries, &fakeLedgerStore{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries/next-number?year=2024", nil)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "JME/2024/008")
}

func ledgerUpload(t *testing.T, csv string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "statement.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestLedgerImportAndConfirm(t *testing.T) {
	ledgerStore := &fakeLedgerStore{rows: []entity.LedgerRow{{ID: 1, Date: "2021-01-01", Particulars: "Old"}}}
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, ledgerStore)

	csv := strings.Join([]string{
		"Date,Particulars,Vch Type,Vch No.,Debit,Credit",
		"15-Dec-22,Sand,Purchase,1326/22-23,,461480.00",
		"Total,,,,,461480.00",
	}, "\n")
	body, contentType := ledgerUpload(t, csv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/import", body)
	req.Header.Set("Content-Type", contentType)
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data ledger.Preview `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data.Rows, 1)
	require.NotEmpty(t, resp.Data.Token)

	// Nothing replaced until confirmation
	assert.Len(t, ledgerStore.rows, 1)
	assert.Equal(t, "Old", ledgerStore.rows[0].Particulars)

	confirmBody, _ := json.Marshal(map[string]string{"token": resp.Data.Token})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/ledger/confirm", bytes.NewReader(confirmBody))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, ledgerStore.rows, 1)
	assert.Equal(t, "Sand", ledgerStore.rows[0].Particulars)
	assert.Equal(t, "2022-12-15", ledgerStore.rows[0].Date)
}

func TestLedgerImportRejectsAllFooterRows(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	csv := "Date,Particulars,Credit\n15-Dec-22,Total,100\n16-Dec-22,Grand Total,200"
	body, contentType := ledgerUpload(t, csv)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/import", body)
	req.Header.Set("Content-Type", contentType)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestConfirmUnknownTokenNotFound(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	body, _ := json.Marshal(map[string]string{"token": "nope"})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/ledger/confirm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateChequeDefaultsToPending(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	body, _ := json.Marshal(map[string]interface{}{
		"date":          "2025-06-10",
		"party_name":    "Sai Traders",
		"cheque_number": "004521",
		"bank_name":     "SBI",
		"amount":        125000,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cheques", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data entity.ChequeEntry `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, entity.ChequeStatusPending, resp.Data.Status)
	assert.NotZero(t, resp.Data.ID)
}

func TestCreateChequeRejectsUnknownStatus(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	body, _ := json.Marshal(map[string]interface{}{
		"date":          "2025-06-10",
		"party_name":    "Sai Traders",
		"cheque_number": "004521",
		"amount":        125000,
		"status":        "Deposited",
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cheques", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadChequeFileReturnsStoredPath(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "cheque.png")
	require.NoError(t, err)
	_, err = fw.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cheques/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data struct {
			FilePath string `json:"file_path"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, strings.HasPrefix(resp.Data.FilePath, "cheques/"))
	assert.True(t, strings.HasSuffix(resp.Data.FilePath, ".png"))
}

func TestUpdateChequeStatusValidatesTransitionTarget(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	body, _ := json.Marshal(map[string]interface{}{
		"date":          "2025-06-10",
		"party_name":    "Sai Traders",
		"cheque_number": "004521",
		"amount":        125000,
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cheques", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	statusBody, _ := json.Marshal(UpdateChequeStatusRequest{Status: entity.ChequeStatusCleared})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/cheques/1/status", bytes.NewReader(statusBody))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/cheques", nil)
	srv.Router().ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), entity.ChequeStatusCleared)

	badBody, _ := json.Marshal(UpdateChequeStatusRequest{Status: "Lost"})
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPut, "/api/v1/cheques/1/status", bytes.NewReader(badBody))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGenerateInvoicePersistsHistory(t *testing.T) {
	deliveries := &fakeDeliveryStore{records: []entity.DeliveryRecord{
		{ID: 1, Date: "2025-06-02", ChallanNumber: "JME/2025/001", Material: entity.MaterialMetal1,
			Quantity: 2, VehicleNumber: "MH46BB8065"},
	}}
	srv, invoices := newTestServer(t, deliveries, &fakeLedgerStore{})

	body, _ := json.Marshal(CompileInvoiceRequest{
		Month:    "2025-06",
		Category: entity.CategoryBuildingMaterial,
		Rates:    map[string]float64{entity.MaterialMetal1: 100},
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, invoices.created, 1)
	assert.Equal(t, "2025-06", invoices.created[0].Month)
	assert.Equal(t, 210.0, invoices.created[0].TotalAmount)
}

func TestGenerateInvoiceEmptyPeriodRejected(t *testing.T) {
	srv, _ := newTestServer(t, &fakeDeliveryStore{}, &fakeLedgerStore{})

	body, _ := json.Marshal(CompileInvoiceRequest{Month: "2025-06", Category: entity.CategoryBuildingMaterial})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/invoices/generate", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
