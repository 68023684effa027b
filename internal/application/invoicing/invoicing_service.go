package invoicing

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/invoicing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// InvoicingService provides application-level invoice and payment operations.
// It owns the lazy overdue refresh: schedule statuses are brought up to date
// before an invoice is returned or mutated, and persisted when they changed.
type InvoicingService struct {
	invoiceRepo invoicing.InvoiceRepository
	paymentRepo invoicing.PaymentRepository
	logger      *zap.Logger
}

// NewInvoicingService creates a new InvoicingService
func NewInvoicingService(invoiceRepo invoicing.InvoiceRepository, paymentRepo invoicing.PaymentRepository, logger *zap.Logger) *InvoicingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoicingService{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// LineItemRequest is one invoice line in a create/update request
type LineItemRequest struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	ProductName string    `json:"product_name"`
	Quantity    int64     `json:"quantity" binding:"required,gt=0"`
	UnitPrice   string    `json:"unit_price" binding:"required"`
}

// ScheduleEntryRequest is one installment in a schedule request
type ScheduleEntryRequest struct {
	Amount      string    `json:"amount" binding:"required"`
	DueDate     time.Time `json:"due_date" binding:"required"`
	Description string    `json:"description"`
}

// CreateInvoiceRequest is the payload for creating an invoice
type CreateInvoiceRequest struct {
	CustomerID uuid.UUID              `json:"customer_id" binding:"required"`
	Items      []LineItemRequest      `json:"items" binding:"required,min=1,dive"`
	Discount   string                 `json:"discount"`
	DueDate    time.Time              `json:"due_date"`
	Schedule   []ScheduleEntryRequest `json:"schedule" binding:"omitempty,dive"`
}

// UpdateInvoiceRequest is the payload for editing an invoice. Omitted fields
// are left unchanged.
type UpdateInvoiceRequest struct {
	Items    []LineItemRequest       `json:"items" binding:"omitempty,min=1,dive"`
	Discount *string                 `json:"discount"`
	DueDate  *time.Time              `json:"due_date"`
	Schedule *[]ScheduleEntryRequest `json:"schedule" binding:"omitempty,dive"`
}

// RecordPaymentRequest is the payload for recording a payment
type RecordPaymentRequest struct {
	Amount        string `json:"amount" binding:"required"`
	Method        string `json:"method"`
	Note          string `json:"note"`
	ScheduleIndex *int   `json:"schedule_index"`
}

// SetScheduleRequest is the payload for replacing a payment schedule
type SetScheduleRequest struct {
	Entries []ScheduleEntryRequest `json:"entries" binding:"required,dive"`
}

// InvoiceListFilter defines filtering options for invoice list queries
type InvoiceListFilter struct {
	Search     string     `form:"search"`
	CustomerID *uuid.UUID `form:"customer_id"`
	Status     string     `form:"status"`
	FromDate   *time.Time `form:"from_date" time_format:"2006-01-02"`
	ToDate     *time.Time `form:"to_date" time_format:"2006-01-02"`
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	SortBy     string     `form:"sort_by"`
	SortOrder  string     `form:"sort_order"`
}

// PaymentListFilter defines filtering options for cross-invoice payment queries
type PaymentListFilter struct {
	Search    string     `form:"search"`
	InvoiceID *uuid.UUID `form:"invoice_id"`
	Method    string     `form:"method"`
	DateFrom  *time.Time `form:"date_from" time_format:"2006-01-02"`
	DateTo    *time.Time `form:"date_to" time_format:"2006-01-02"`
	Page      int        `form:"page"`
	PageSize  int        `form:"page_size"`
	SortBy    string     `form:"sort_by"`
	SortOrder string     `form:"sort_order"`
}

// ScheduleEntryResponse represents a schedule installment in API responses.
// Response field names follow the serialized domain value objects
// (camelCase), while request payloads keep snake_case binding tags.
type ScheduleEntryResponse struct {
	Amount      decimal.Decimal `json:"amount"`
	DueDate     time.Time       `json:"dueDate"`
	Status      string          `json:"status"`
	PaidAmount  decimal.Decimal `json:"paidAmount"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
	Description string          `json:"description,omitempty"`
}

// LineItemResponse represents an invoice line in API responses
type LineItemResponse struct {
	ProductID   uuid.UUID       `json:"productRef"`
	ProductName string          `json:"productName,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// PaymentResponse represents a payment record in API responses
type PaymentResponse struct {
	ID            uuid.UUID       `json:"id"`
	InvoiceID     uuid.UUID       `json:"invoiceRef"`
	Amount        decimal.Decimal `json:"amount"`
	Date          time.Time       `json:"date"`
	Method        string          `json:"method"`
	Note          string          `json:"note,omitempty"`
	ScheduleIndex *int            `json:"scheduleIndex,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
}

// InvoiceResponse represents an invoice in API responses
type InvoiceResponse struct {
	ID              uuid.UUID               `json:"id"`
	CustomerID      uuid.UUID               `json:"customerRef"`
	Items           []LineItemResponse      `json:"items"`
	Discount        decimal.Decimal         `json:"discount"`
	Subtotal        decimal.Decimal         `json:"subtotal"`
	Total           decimal.Decimal         `json:"total"`
	TotalPaid       decimal.Decimal         `json:"totalPaid"`
	Outstanding     decimal.Decimal         `json:"outstanding"`
	Status          string                  `json:"status"`
	DueDate         time.Time               `json:"dueDate"`
	PaymentSchedule []ScheduleEntryResponse `json:"paymentSchedule"`
	Payments        []PaymentResponse       `json:"payments"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
	Version         int                     `json:"version"`
}

func toScheduleEntryResponses(entries invoicing.ScheduleEntries) []ScheduleEntryResponse {
	out := make([]ScheduleEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = ScheduleEntryResponse{
			Amount:      e.Amount,
			DueDate:     e.DueDate,
			Status:      string(e.Status),
			PaidAmount:  e.PaidAmount,
			PaidDate:    e.PaidDate,
			Description: e.Description,
		}
	}
	return out
}

func toPaymentResponse(p *invoicing.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		InvoiceID:     p.InvoiceID,
		Amount:        p.Amount,
		Date:          p.Date,
		Method:        p.Method.String(),
		Note:          p.Note,
		ScheduleIndex: p.ScheduleIndex,
		CreatedAt:     p.CreatedAt,
	}
}

func toInvoiceResponse(inv *invoicing.Invoice) *InvoiceResponse {
	items := make([]LineItemResponse, len(inv.Items))
	for i, item := range inv.Items {
		items[i] = LineItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Subtotal:    item.Subtotal(),
		}
	}
	payments := make([]PaymentResponse, len(inv.Payments))
	for i := range inv.Payments {
		payments[i] = *toPaymentResponse(&inv.Payments[i])
	}
	return &InvoiceResponse{
		ID:              inv.ID,
		CustomerID:      inv.CustomerID,
		Items:           items,
		Discount:        inv.Discount,
		Subtotal:        inv.Subtotal,
		Total:           inv.Total,
		TotalPaid:       inv.TotalPaid(),
		Outstanding:     inv.Outstanding(),
		Status:          inv.Status.String(),
		DueDate:         inv.DueDate,
		PaymentSchedule: toScheduleEntryResponses(inv.PaymentSchedule),
		Payments:        payments,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
		Version:         inv.Version,
	}
}

func parseAmount(raw, field string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewDomainErrorWithDetails("INVALID_INPUT", "Invalid decimal value for "+field, map[string]any{"field": field, "value": raw})
	}
	return d, nil
}

func toLineItems(reqs []LineItemRequest) (invoicing.LineItems, error) {
	items := make(invoicing.LineItems, len(reqs))
	for i, r := range reqs {
		price, err := parseAmount(r.UnitPrice, "unit_price")
		if err != nil {
			return nil, err
		}
		items[i] = invoicing.LineItem{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			UnitPrice:   price,
		}
	}
	return items, nil
}

func toScheduleEntries(reqs []ScheduleEntryRequest) (invoicing.ScheduleEntries, error) {
	entries := make(invoicing.ScheduleEntries, len(reqs))
	for i, r := range reqs {
		amount, err := parseAmount(r.Amount, "amount")
		if err != nil {
			return nil, err
		}
		entries[i] = invoicing.ScheduleEntry{
			Amount:      amount,
			DueDate:     r.DueDate,
			Description: r.Description,
		}
	}
	return entries, nil
}

// CreateInvoice creates a new invoice with computed totals
func (s *InvoicingService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	items, err := toLineItems(req.Items)
	if err != nil {
		return nil, err
	}
	discount, err := parseAmount(req.Discount, "discount")
	if err != nil {
		return nil, err
	}
	var schedule invoicing.ScheduleEntries
	if len(req.Schedule) > 0 {
		schedule, err = toScheduleEntries(req.Schedule)
		if err != nil {
			return nil, err
		}
	}

	inv, err := invoicing.NewInvoice(req.CustomerID, items, discount, req.DueDate, schedule)
	if err != nil {
		return nil, err
	}
	inv.RefreshOverdueStatuses(time.Now())

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("invoice created",
		zap.String("invoice_id", inv.ID.String()),
		zap.String("customer_id", inv.CustomerID.String()),
		zap.String("total", inv.Total.String()),
	)
	return toInvoiceResponse(inv), nil
}

// GetInvoice returns a single invoice, refreshing overdue schedule statuses
// first and persisting the refresh when it changed anything.
func (s *InvoicingService) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.loadRefreshed(ctx, id)
	if err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// ListInvoices lists invoices with filtering, refreshing overdue statuses on
// the returned page.
func (s *InvoicingService) ListInvoices(ctx context.Context, filter InvoiceListFilter) (shared.Paginated[InvoiceResponse], error) {
	domainFilter := invoicing.InvoiceFilter{
		CustomerID: filter.CustomerID,
		FromDate:   filter.FromDate,
		ToDate:     filter.ToDate,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.SortBy
	domainFilter.OrderDir = filter.SortOrder
	if filter.Status != "" {
		status := invoicing.InvoiceStatus(filter.Status)
		if !status.IsValid() {
			return shared.Paginated[InvoiceResponse]{}, shared.NewDomainError("INVALID_INPUT", "Unknown invoice status filter")
		}
		domainFilter.Status = &status
	}

	page, err := s.invoiceRepo.List(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[InvoiceResponse]{}, err
	}

	now := time.Now()
	responses := make([]InvoiceResponse, len(page.Items))
	for i := range page.Items {
		inv := &page.Items[i]
		if inv.RefreshOverdueStatuses(now) {
			if err := s.invoiceRepo.Save(ctx, inv); err != nil {
				s.logger.Warn("failed to persist overdue refresh",
					zap.String("invoice_id", inv.ID.String()), zap.Error(err))
			}
		}
		responses[i] = *toInvoiceResponse(inv)
	}
	return shared.NewPaginated(responses, page.Total, page.Page, page.PageSize), nil
}

// UpdateInvoice applies an item/discount/due-date/schedule edit. When the
// edit shrinks the total below what was already collected the invoice is
// saved anyway and a warning is logged; payments are never rescaled.
func (s *InvoicingService) UpdateInvoice(ctx context.Context, id uuid.UUID, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.loadRefreshed(ctx, id)
	if err != nil {
		return nil, err
	}

	params := invoicing.UpdateParams{DueDate: req.DueDate}
	if req.Items != nil {
		items, err := toLineItems(req.Items)
		if err != nil {
			return nil, err
		}
		params.Items = items
	}
	if req.Discount != nil {
		discount, err := parseAmount(*req.Discount, "discount")
		if err != nil {
			return nil, err
		}
		params.Discount = &discount
	}
	if req.Schedule != nil {
		entries, err := toScheduleEntries(*req.Schedule)
		if err != nil {
			return nil, err
		}
		params.Schedule = &entries
	}

	if err := inv.Update(params); err != nil {
		return nil, err
	}
	if inv.Overpaid() {
		s.logger.Warn("invoice edit left recorded payments above the new total",
			zap.String("invoice_id", inv.ID.String()),
			zap.String("total", inv.Total.String()),
			zap.String("total_paid", inv.TotalPaid().String()),
		)
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// DeleteInvoice removes an invoice and cascades its payment records.
// The invoice row goes first: a failure between the two deletes must never
// leave an invoice whose payments have vanished. The payments table carries
// an ON DELETE CASCADE foreign key, so the explicit cascade is a no-op when
// the database already swept the records.
func (s *InvoicingService) DeleteInvoice(ctx context.Context, id uuid.UUID) error {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if inv == nil {
		return shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}

	if err := s.invoiceRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.paymentRepo.DeleteByInvoiceID(ctx, id); err != nil {
		return err
	}

	s.logger.Info("invoice deleted",
		zap.String("invoice_id", id.String()),
		zap.Int("payments_cascaded", len(inv.Payments)),
	)
	return nil
}

// RecordPayment records a payment against an invoice and returns the updated
// invoice alongside the created payment record.
func (s *InvoicingService) RecordPayment(ctx context.Context, invoiceID uuid.UUID, req RecordPaymentRequest) (*InvoiceResponse, *PaymentResponse, error) {
	inv, err := s.loadRefreshed(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}

	amount, err := parseAmount(req.Amount, "amount")
	if err != nil {
		return nil, nil, err
	}

	payment, err := inv.RecordPayment(amount, invoicing.PaymentMethod(req.Method), req.Note, req.ScheduleIndex)
	if err != nil {
		return nil, nil, err
	}

	if err := s.paymentRepo.Append(ctx, payment); err != nil {
		return nil, nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, nil, err
	}

	s.logger.Info("payment recorded",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()),
		zap.String("status", inv.Status.String()),
	)
	return toInvoiceResponse(inv), toPaymentResponse(payment), nil
}

// SetPaymentSchedule replaces an invoice's payment schedule wholesale
func (s *InvoicingService) SetPaymentSchedule(ctx context.Context, invoiceID uuid.UUID, req SetScheduleRequest) (*InvoiceResponse, error) {
	inv, err := s.loadRefreshed(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	entries, err := toScheduleEntries(req.Entries)
	if err != nil {
		return nil, err
	}
	if err := inv.SetPaymentSchedule(entries); err != nil {
		return nil, err
	}
	inv.RefreshOverdueStatuses(time.Now())

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return toInvoiceResponse(inv), nil
}

// ListPayments lists payment records across invoices with filtering
func (s *InvoicingService) ListPayments(ctx context.Context, filter PaymentListFilter) (shared.Paginated[PaymentResponse], error) {
	domainFilter := invoicing.PaymentFilter{
		InvoiceID: filter.InvoiceID,
		DateFrom:  filter.DateFrom,
		DateTo:    filter.DateTo,
	}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.SortBy
	domainFilter.OrderDir = filter.SortOrder
	if filter.Method != "" {
		method := invoicing.PaymentMethod(filter.Method)
		if !method.IsValid() {
			return shared.Paginated[PaymentResponse]{}, shared.NewDomainError("INVALID_INPUT", "Unknown payment method filter")
		}
		domainFilter.Method = &method
	}

	page, err := s.paymentRepo.List(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[PaymentResponse]{}, err
	}

	responses := make([]PaymentResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *toPaymentResponse(&page.Items[i])
	}
	return shared.NewPaginated(responses, page.Total, page.Page, page.PageSize), nil
}

// loadRefreshed fetches an invoice, applies the lazy overdue refresh and
// persists it when it changed anything.
func (s *InvoicingService) loadRefreshed(ctx context.Context, id uuid.UUID) (*invoicing.Invoice, error) {
	inv, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Invoice not found")
	}
	if inv.RefreshOverdueStatuses(time.Now()) {
		if err := s.invoiceRepo.Save(ctx, inv); err != nil {
			return nil, err
		}
	}
	return inv, nil
}
