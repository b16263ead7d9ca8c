// Package http is the HTTP adapter: it translates requests into calls
// on the stores, the ledger importer and the invoice generator.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/storage"
	"github.com/jaymalhar/supplyledger/internal/invoice"
	"github.com/jaymalhar/supplyledger/internal/ledger"
	"github.com/jaymalhar/supplyledger/internal/numbering"
	"github.com/jaymalhar/supplyledger/internal/tabular"
	"github.com/jaymalhar/supplyledger/pkg/utils"
)

// DeliveryStore is the delivery record persistence contract
type DeliveryStore interface {
	Create(ctx context.Context, rec *entity.DeliveryRecord) error
	GetAll(ctx context.Context) ([]entity.DeliveryRecord, error)
	GetByID(ctx context.Context, id int64) (*entity.DeliveryRecord, error)
	Update(ctx context.Context, rec *entity.DeliveryRecord) error
	Delete(ctx context.Context, id int64) error
}

// PaymentStore is the supplier payment persistence contract
type PaymentStore interface {
	Create(ctx context.Context, p *entity.SupplierPayment) error
	GetAll(ctx context.Context) ([]entity.SupplierPayment, error)
	Update(ctx context.Context, p *entity.SupplierPayment) error
	Delete(ctx context.Context, id int64) error
}

// LedgerStore is the read/transaction surface of the ledger dataset
type LedgerStore interface {
	GetAll(ctx context.Context) ([]entity.LedgerRow, error)
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// InvoiceHistoryStore lists previously generated invoice metadata
type InvoiceHistoryStore interface {
	GetAll(ctx context.Context) ([]entity.GeneratedInvoice, error)
}

// ChequeStore is the cheque entry persistence contract
type ChequeStore interface {
	Create(ctx context.Context, cheque *entity.ChequeEntry) error
	GetAll(ctx context.Context) ([]entity.ChequeEntry, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	deliveries DeliveryStore
	payments   PaymentStore
	ledgerRows LedgerStore
	invoices   InvoiceHistoryStore
	cheques    ChequeStore
	importer   *ledger.Importer
	compiler   *invoice.Compiler
	generator  *invoice.Generator
	uploads    storage.FileStore
	scheme     string
	logger     *zap.Logger

	mu       sync.Mutex
	previews map[string][]entity.LedgerRow // import token -> parsed rows awaiting confirm
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	deliveries DeliveryStore,
	payments PaymentStore,
	ledgerRows LedgerStore,
	invoices InvoiceHistoryStore,
	cheques ChequeStore,
	importer *ledger.Importer,
	compiler *invoice.Compiler,
	generator *invoice.Generator,
	uploads storage.FileStore,
	scheme string,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		deliveries: deliveries,
		payments:   payments,
		ledgerRows: ledgerRows,
		invoices:   invoices,
		cheques:    cheques,
		importer:   importer,
		compiler:   compiler,
		generator:  generator,
		uploads:    uploads,
		scheme:     scheme,
		logger:     logger,
		previews:   make(map[string][]entity.LedgerRow),
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		},
	})
}

// ListEntries handles GET /api/v1/entries
func (h *Handlers) ListEntries(c *gin.Context) {
	records, err := h.deliveries.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: records})
}

// CreateEntry handles POST /api/v1/entries. The challan number is
// allocated server-side from the full record set.
func (h *Handlers) CreateEntry(c *gin.Context) {
	var rec entity.DeliveryRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateQuantity(rec.Quantity); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	existing, err := h.deliveries.GetAll(ctx)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	if rec.ChallanNumber == "" {
		rec.ChallanNumber = numbering.NextChallanNumber(h.scheme, time.Now().Year(), existing)
	}

	if err := h.deliveries.Create(ctx, &rec); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: rec})
}

// NextChallanNumber handles GET /api/v1/entries/next-number
func (h *Handlers) NextChallanNumber(c *gin.Context) {
	year := time.Now().Year()
	if raw := c.Query("year"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			h.fail(c, http.StatusBadRequest, errors.New("invalid year"))
			return
		}
		year = parsed
	}

	records, err := h.deliveries.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    gin.H{"challan_number": numbering.NextChallanNumber(h.scheme, year, records)},
	})
}

// UpdateEntry handles PUT /api/v1/entries/:id
func (h *Handlers) UpdateEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("invalid id"))
		return
	}

	var rec entity.DeliveryRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateQuantity(rec.Quantity); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	rec.ID = id

	if err := h.deliveries.Update(c.Request.Context(), &rec); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: rec})
}

// DeleteEntry handles DELETE /api/v1/entries/:id
func (h *Handlers) DeleteEntry(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("invalid id"))
		return
	}
	if err := h.deliveries.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ListPayments handles GET /api/v1/payments
func (h *Handlers) ListPayments(c *gin.Context) {
	payments, err := h.payments.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: payments})
}

// CreatePayment handles POST /api/v1/payments
func (h *Handlers) CreatePayment(c *gin.Context) {
	var p entity.SupplierPayment
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := h.payments.Create(c.Request.Context(), &p); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: p})
}

// UpdatePayment handles PUT /api/v1/payments/:id
func (h *Handlers) UpdatePayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("invalid id"))
		return
	}

	var p entity.SupplierPayment
	if err := c.ShouldBindJSON(&p); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	p.ID = id

	if err := h.payments.Update(c.Request.Context(), &p); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: p})
}

// DeletePayment handles DELETE /api/v1/payments/:id
func (h *Handlers) DeletePayment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("invalid id"))
		return
	}
	if err := h.payments.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ListLedger handles GET /api/v1/ledger
func (h *Handlers) ListLedger(c *gin.Context) {
	rows, err := h.ledgerRows.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	type rowView struct {
		entity.LedgerRow
		Kind     string `json:"kind"`
		BankName string `json:"bank_name,omitempty"`
	}
	views := make([]rowView, len(rows))
	for i, r := range rows {
		views[i] = rowView{LedgerRow: r, Kind: r.Kind(), BankName: r.BankName()}
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: views})
}

// ImportLedger handles POST /api/v1/ledger/import. Parses the uploaded
// statement into an uncommitted preview; nothing is stored until the
// preview token is confirmed.
func (h *Handlers) ImportLedger(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("missing statement file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	table, err := tabular.Read(file, fileHeader.Filename)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	preview, err := h.importer.Parse(table)
	if err != nil {
		if errors.Is(err, ledger.ErrNoUsableRows) {
			h.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	h.mu.Lock()
	h.previews[preview.Token] = preview.Rows
	h.mu.Unlock()

	c.JSON(http.StatusOK, Response{Success: true, Data: preview})
}

// ConfirmImportRequest carries the preview token to commit
type ConfirmImportRequest struct {
	Token string `json:"token" binding:"required"`
}

// ConfirmLedgerImport handles POST /api/v1/ledger/confirm. Replaces
// the stored dataset with the previewed rows inside one transaction.
func (h *Handlers) ConfirmLedgerImport(c *gin.Context) {
	var req ConfirmImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	h.mu.Lock()
	rows, ok := h.previews[req.Token]
	if ok {
		delete(h.previews, req.Token)
	}
	h.mu.Unlock()

	if !ok {
		h.fail(c, http.StatusNotFound, errors.New("unknown or expired import token"))
		return
	}

	err := h.ledgerRows.WithTransaction(c.Request.Context(), func(txCtx context.Context) error {
		return h.importer.Commit(txCtx, rows)
	})
	if err != nil {
		var partial *ledger.PartialCommitError
		if errors.As(err, &partial) {
			h.fail(c, http.StatusInternalServerError, partial)
			return
		}
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusOK, Response{Success: true, Data: gin.H{"rows": len(rows)}})
}

// CompileInvoiceRequest selects the billing period and category
type CompileInvoiceRequest struct {
	Month    string             `json:"month" binding:"required"`
	Category string             `json:"category" binding:"required"`
	Rates    map[string]float64 `json:"rates"`
}

// CompileInvoice handles POST /api/v1/invoices/compile: returns the
// compiled totals without rendering an artifact.
func (h *Handlers) CompileInvoice(c *gin.Context) {
	var req CompileInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	records, err := h.deliveries.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	compiled := h.compiler.Compile(records, req.Month, req.Category, req.Rates, entity.GSTRates[req.Category])
	c.JSON(http.StatusOK, Response{Success: true, Data: compiled})
}

// GenerateInvoice handles POST /api/v1/invoices/generate: compiles,
// renders the artifact to disk and records its metadata.
func (h *Handlers) GenerateInvoice(c *gin.Context) {
	var req CompileInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if err := utils.ValidateMonth(req.Month); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	ctx := c.Request.Context()
	records, err := h.deliveries.GetAll(ctx)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	meta, err := h.generator.GenerateAndSave(ctx, records, req.Month, req.Category, req.Rates)
	if err != nil {
		if errors.Is(err, invoice.ErrNoEntries) {
			h.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: meta})
}

// ListCheques handles GET /api/v1/cheques
func (h *Handlers) ListCheques(c *gin.Context) {
	cheques, err := h.cheques.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: cheques})
}

// CreateCheque handles POST /api/v1/cheques. The file_path, if set,
// should come from a prior upload.
func (h *Handlers) CreateCheque(c *gin.Context) {
	var cheque entity.ChequeEntry
	if err := c.ShouldBindJSON(&cheque); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if cheque.Status == "" {
		cheque.Status = entity.ChequeStatusPending
	}
	if !entity.ValidChequeStatus(cheque.Status) {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("invalid cheque status: %s", cheque.Status))
		return
	}

	if err := h.cheques.Create(c.Request.Context(), &cheque); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, Response{Success: true, Data: cheque})
}

// UploadChequeFile handles POST /api/v1/cheques/upload: stores the
// cheque image under a random name and returns its path for CreateCheque.
func (h *Handlers) UploadChequeFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("missing cheque file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	path := filepath.Join("cheques", uuid.NewString()+filepath.Ext(fileHeader.Filename))
	if err := h.uploads.Save(c.Request.Context(), path, content); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: gin.H{"file_path": path}})
}

// UpdateChequeStatusRequest carries the new cheque status
type UpdateChequeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateChequeStatus handles PUT /api/v1/cheques/:id/status
func (h *Handlers) UpdateChequeStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("invalid id"))
		return
	}

	var req UpdateChequeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	if !entity.ValidChequeStatus(req.Status) {
		h.fail(c, http.StatusBadRequest, fmt.Errorf("invalid cheque status: %s", req.Status))
		return
	}

	if err := h.cheques.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// DeleteCheque handles DELETE /api/v1/cheques/:id. The stored image,
// if any, is kept; only the entry is removed.
func (h *Handlers) DeleteCheque(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		h.fail(c, http.StatusBadRequest, errors.New("invalid id"))
		return
	}
	if err := h.cheques.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true})
}

// ListInvoices handles GET /api/v1/invoices
func (h *Handlers) ListInvoices(c *gin.Context) {
	history, err := h.invoices.GetAll(c.Request.Context())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Data: history})
}

func (h *Handlers) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err))
	}
	c.JSON(status, Response{Success: false, Error: err.Error()})
}
