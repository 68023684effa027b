package partner

import (
	"context"
	"time"

	"github.com/bizledger/backend/internal/domain/partner"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CustomerService provides application-level customer operations
type CustomerService struct {
	customerRepo partner.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// AddressRequest is the address block of a customer payload
type AddressRequest struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// CreateCustomerRequest is the payload for creating a customer
type CreateCustomerRequest struct {
	Name    string          `json:"name" binding:"required"`
	Email   string          `json:"email" binding:"omitempty,email"`
	Phone   string          `json:"phone"`
	Company string          `json:"company"`
	GSTIN   string          `json:"gstin"`
	Address *AddressRequest `json:"address"`
	Status  string          `json:"status"`
	Notes   string          `json:"notes"`
}

// UpdateCustomerRequest is the payload for editing a customer
type UpdateCustomerRequest struct {
	Name    *string         `json:"name"`
	Email   *string         `json:"email" binding:"omitempty,email"`
	Phone   *string         `json:"phone"`
	Company *string         `json:"company"`
	GSTIN   *string         `json:"gstin"`
	Address *AddressRequest `json:"address"`
	Status  *string         `json:"status"`
	Notes   *string         `json:"notes"`
}

// CustomerListFilter defines filtering options for customer list queries
type CustomerListFilter struct {
	Search    string `form:"search"`
	Status    string `form:"status"`
	Page      int    `form:"page"`
	PageSize  int    `form:"page_size"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}

// CustomerResponse represents a customer in API responses
type CustomerResponse struct {
	ID        uuid.UUID           `json:"id"`
	Name      string              `json:"name"`
	Email     string              `json:"email,omitempty"`
	Phone     string              `json:"phone,omitempty"`
	Company   string              `json:"company,omitempty"`
	GSTIN     string              `json:"gstin,omitempty"`
	Address   valueobject.Address `json:"address"`
	Status    string              `json:"status"`
	Notes     string              `json:"notes,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func toCustomerResponse(c *partner.Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		GSTIN:     c.GSTIN,
		Address:   c.Address,
		Status:    c.Status.String(),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toAddress(req *AddressRequest) valueobject.Address {
	if req == nil {
		return valueobject.Address{}
	}
	return valueobject.Address{
		Street:  req.Street,
		City:    req.City,
		State:   req.State,
		Zip:     req.Zip,
		Country: req.Country,
	}
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*CustomerResponse, error) {
	customer, err := partner.NewCustomer(
		req.Name, req.Email, req.Phone, req.Company, req.GSTIN,
		toAddress(req.Address), partner.CustomerStatus(req.Status), req.Notes,
	)
	if err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// GetCustomer returns a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return toCustomerResponse(customer), nil
}

// ListCustomers lists customers with filtering
func (s *CustomerService) ListCustomers(ctx context.Context, filter CustomerListFilter) (shared.Paginated[CustomerResponse], error) {
	domainFilter := partner.CustomerFilter{}
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Search
	domainFilter.OrderBy = filter.SortBy
	domainFilter.OrderDir = filter.SortOrder
	if filter.Status != "" {
		status := partner.CustomerStatus(filter.Status)
		if !status.IsValid() {
			return shared.Paginated[CustomerResponse]{}, shared.NewDomainError("INVALID_INPUT", "Unknown customer status filter")
		}
		domainFilter.Status = &status
	}

	page, err := s.customerRepo.List(ctx, domainFilter)
	if err != nil {
		return shared.Paginated[CustomerResponse]{}, err
	}

	responses := make([]CustomerResponse, len(page.Items))
	for i := range page.Items {
		responses[i] = *toCustomerResponse(&page.Items[i])
	}
	return shared.NewPaginated(responses, page.Total, page.Page, page.PageSize), nil
}

// UpdateCustomer applies a partial edit to a customer
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, req UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
	}

	params := partner.UpdateParams{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Company: req.Company,
		GSTIN:   req.GSTIN,
		Notes:   req.Notes,
	}
	if req.Address != nil {
		addr := toAddress(req.Address)
		params.Address = &addr
	}
	if req.Status != nil {
		status := partner.CustomerStatus(*req.Status)
		params.Status = &status
	}

	if err := customer.Update(params); err != nil {
		return nil, err
	}
	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// DeleteCustomer removes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return shared.NewDomainError("NOT_FOUND", "Customer not found")
	}
	return s.customerRepo.Delete(ctx, id)
}
