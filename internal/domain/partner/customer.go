package partner

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/domain/shared/valueobject"
)

// CustomerStatus tracks where a partner sits in the sales pipeline
type CustomerStatus string

const (
	CustomerStatusLead      CustomerStatus = "lead"
	CustomerStatusContacted CustomerStatus = "contacted"
	CustomerStatusCustomer  CustomerStatus = "customer"
)

// IsValid checks if the status is a valid CustomerStatus
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusLead, CustomerStatusContacted, CustomerStatusCustomer:
		return true
	}
	return false
}

// String returns the string representation of CustomerStatus
func (s CustomerStatus) String() string {
	return string(s)
}

// Customer is the aggregate root of the partner context
type Customer struct {
	shared.BaseAggregateRoot
	Name    string              `json:"name"`
	Email   string              `json:"email,omitempty"`
	Phone   string              `json:"phone,omitempty"`
	Company string              `json:"company,omitempty"`
	GSTIN   string              `json:"gstin,omitempty"`
	Address valueobject.Address `json:"address"`
	Status  CustomerStatus      `json:"status"`
	Notes   string              `json:"notes,omitempty"`
}

// NewCustomer creates a new customer. Name is required; status defaults to lead.
func NewCustomer(name, email, phone, company, gstin string, address valueobject.Address, status CustomerStatus, notes string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
	}
	if status == "" {
		status = CustomerStatusLead
	}
	if !status.IsValid() {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer status is not valid")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Email:             email,
		Phone:             phone,
		Company:           company,
		GSTIN:             gstin,
		Address:           address,
		Status:            status,
		Notes:             notes,
	}, nil
}

// UpdateParams carries the optional fields of a customer edit
type UpdateParams struct {
	Name    *string
	Email   *string
	Phone   *string
	Company *string
	GSTIN   *string
	Address *valueobject.Address
	Status  *CustomerStatus
	Notes   *string
}

// Update applies a partial edit to the customer
func (c *Customer) Update(params UpdateParams) error {
	if params.Name != nil {
		name := strings.TrimSpace(*params.Name)
		if name == "" {
			return shared.NewDomainError("INVALID_CUSTOMER", "Customer name cannot be empty")
		}
		c.Name = name
	}
	if params.Status != nil {
		if !params.Status.IsValid() {
			return shared.NewDomainError("INVALID_CUSTOMER", "Customer status is not valid")
		}
		c.Status = *params.Status
	}
	if params.Email != nil {
		c.Email = *params.Email
	}
	if params.Phone != nil {
		c.Phone = *params.Phone
	}
	if params.Company != nil {
		c.Company = *params.Company
	}
	if params.GSTIN != nil {
		c.GSTIN = *params.GSTIN
	}
	if params.Address != nil {
		c.Address = *params.Address
	}
	if params.Notes != nil {
		c.Notes = *params.Notes
	}
	c.Touch()
	return nil
}

// Promote moves the customer forward in the pipeline, never backward
func (c *Customer) Promote(to CustomerStatus) error {
	if !to.IsValid() {
		return shared.NewDomainError("INVALID_CUSTOMER", "Customer status is not valid")
	}
	if rank(to) < rank(c.Status) {
		return shared.NewDomainError("INVALID_STATE", "Customer status cannot move backward")
	}
	c.Status = to
	c.Touch()
	return nil
}

func rank(s CustomerStatus) int {
	switch s {
	case CustomerStatusLead:
		return 0
	case CustomerStatusContacted:
		return 1
	case CustomerStatusCustomer:
		return 2
	}
	return -1
}
