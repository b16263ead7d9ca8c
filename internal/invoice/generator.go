package invoice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jaymalhar/supplyledger/internal/domain/entity"
	"github.com/jaymalhar/supplyledger/internal/infrastructure/storage"
	"github.com/jaymalhar/supplyledger/internal/render"
	"go.uber.org/zap"
)

// ErrNoEntries is returned when the month/category filter matches nothing.
// The compiler itself produces a zero document; generation rejects it
// before touching the renderer.
var ErrNoEntries = errors.New("no delivery records for the selected month and category")

// MetadataStore persists rendered-artifact metadata
type MetadataStore interface {
	Create(ctx context.Context, inv *entity.GeneratedInvoice) error
}

// Generator compiles invoices and hands them to the rendering collaborator
type Generator struct {
	compiler *Compiler
	renderer render.Renderer
	store    MetadataStore
	files    storage.FileStore
	logger   *zap.Logger
}

// NewGenerator creates a new invoice generator
func NewGenerator(compiler *Compiler, renderer render.Renderer, store MetadataStore, files storage.FileStore, logger *zap.Logger) *Generator {
	return &Generator{
		compiler: compiler,
		renderer: renderer,
		store:    store,
		files:    files,
		logger:   logger,
	}
}

// Generate compiles and renders the invoice, returning the compiled
// document, the binary artifact and its suggested filename.
func (g *Generator) Generate(
	records []entity.DeliveryRecord,
	month, category string,
	rates map[string]float64,
) (*entity.CompiledInvoice, []byte, string, error) {
	taxes := entity.GSTRates[category]
	inv := g.compiler.Compile(records, month, category, rates, taxes)

	if len(inv.Items) == 0 {
		return nil, nil, "", ErrNoEntries
	}

	doc := BuildDocument(inv, time.Now())
	data, filename, err := g.renderer.Render(doc)
	if err != nil {
		return nil, nil, "", fmt.Errorf("failed to render invoice: %w", err)
	}

	g.logger.Info("Invoice generated",
		zap.String("month", month),
		zap.String("category", category),
		zap.Int64("grand_total", inv.GrandTotal),
		zap.Int("flagged_items", len(inv.FlaggedItems)))

	return inv, data, filename, nil
}

// GenerateAndSave renders the invoice, writes the artifact through the
// file store and persists its metadata record.
func (g *Generator) GenerateAndSave(
	ctx context.Context,
	records []entity.DeliveryRecord,
	month, category string,
	rates map[string]float64,
) (*entity.GeneratedInvoice, error) {
	inv, data, filename, err := g.Generate(records, month, category, rates)
	if err != nil {
		return nil, err
	}

	if err := g.files.Save(ctx, filename, data); err != nil {
		return nil, fmt.Errorf("failed to write invoice artifact: %w", err)
	}
	outPath := g.files.FullPath(filename)

	meta := &entity.GeneratedInvoice{
		Month:       month,
		Category:    category,
		TotalAmount: float64(inv.GrandTotal),
		FilePath:    outPath,
	}
	if err := g.store.Create(ctx, meta); err != nil {
		return nil, fmt.Errorf("failed to save invoice metadata: %w", err)
	}

	g.logger.Info("Invoice artifact saved", zap.String("path", outPath))
	return meta, nil
}
