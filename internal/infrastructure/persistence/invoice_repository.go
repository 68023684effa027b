package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements invoicing.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Save upserts the invoice row. Payment rows are owned by the payment
// repository and are not written here.
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *invoicing.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(model).Error
}

// FindByID finds an invoice by ID with its payment records attached.
// Returns (nil, nil) when the invoice does not exist.
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	inv := model.ToDomain()
	payments, err := r.loadPayments(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	inv.Payments = payments[id]
	if inv.Payments == nil {
		inv.Payments = invoicing.Payments{}
	}
	return inv, nil
}

// List lists invoices with filtering and pagination, payments attached
func (r *GormInvoiceRepository) List(ctx context.Context, filter invoicing.InvoiceFilter) (shared.Paginated[invoicing.Invoice], error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})
	query = applyInvoiceFilter(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[invoicing.Invoice]{}, err
	}

	orderBy := ValidateSortField(filter.OrderBy, InvoiceSortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)

	var invoiceModels []models.InvoiceModel
	if err := query.
		Order(fmt.Sprintf("%s %s", orderBy, orderDir)).
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&invoiceModels).Error; err != nil {
		return shared.Paginated[invoicing.Invoice]{}, err
	}

	ids := make([]uuid.UUID, len(invoiceModels))
	for i, m := range invoiceModels {
		ids[i] = m.ID
	}
	paymentsByInvoice, err := r.loadPayments(ctx, ids)
	if err != nil {
		return shared.Paginated[invoicing.Invoice]{}, err
	}

	invoices := make([]invoicing.Invoice, len(invoiceModels))
	for i, m := range invoiceModels {
		inv := m.ToDomain()
		if ps, ok := paymentsByInvoice[m.ID]; ok {
			inv.Payments = ps
		}
		invoices[i] = *inv
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	return shared.NewPaginated(invoices, total, page, filter.Limit()), nil
}

// Delete removes an invoice row
func (r *GormInvoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.InvoiceModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByStatus counts invoices grouped by status
func (r *GormInvoiceRepository) CountByStatus(ctx context.Context) (map[invoicing.InvoiceStatus]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[invoicing.InvoiceStatus]int64, len(rows))
	for _, row := range rows {
		counts[invoicing.InvoiceStatus(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *GormInvoiceRepository) loadPayments(ctx context.Context, invoiceIDs []uuid.UUID) (map[uuid.UUID]invoicing.Payments, error) {
	if len(invoiceIDs) == 0 {
		return map[uuid.UUID]invoicing.Payments{}, nil
	}

	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id IN ?", invoiceIDs).
		Order("date ASC, created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	byInvoice := make(map[uuid.UUID]invoicing.Payments)
	for i := range paymentModels {
		p := paymentModels[i].ToDomain()
		byInvoice[p.InvoiceID] = append(byInvoice[p.InvoiceID], *p)
	}
	return byInvoice, nil
}

func applyInvoiceFilter(query *gorm.DB, filter invoicing.InvoiceFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		query = query.Where("items::text ILIKE ?", "%"+search+"%")
	}
	return query
}
