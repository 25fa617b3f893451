package domain

import (
	"time"

	"github.com/google/uuid"
)

// ErrorResponse is a simple error envelope
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// PaginatedResponse wraps a page of results
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// --- Auth ---

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
}

// --- Responsible persons ---

type CreateResponsiblePersonRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Initial string `json:"initial" validate:"required,min=1,max=5,alpha"`
}

type UpdateResponsiblePersonRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Initial string `json:"initial" validate:"required,min=1,max=5,alpha"`
}

type ResponsiblePersonDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email,omitempty"`
	Phone   string    `json:"phone,omitempty"`
	Initial string    `json:"initial"`
}

// --- Customers ---

type CreateCustomerRequest struct {
	Name                string     `json:"name" validate:"required,max=200"`
	TaxID               string     `json:"taxId" validate:"max=50"`
	Address             string     `json:"address" validate:"max=500"`
	Phone               string     `json:"phone" validate:"max=50"`
	LineID              string     `json:"lineId" validate:"max=100"`
	ResponsiblePersonID *uuid.UUID `json:"responsiblePersonId"`
}

type UpdateCustomerRequest struct {
	Name                string     `json:"name" validate:"required,max=200"`
	TaxID               string     `json:"taxId" validate:"max=50"`
	Address             string     `json:"address" validate:"max=500"`
	Phone               string     `json:"phone" validate:"max=50"`
	LineID              string     `json:"lineId" validate:"max=100"`
	ResponsiblePersonID *uuid.UUID `json:"responsiblePersonId"`
}

type CustomerDTO struct {
	ID                  uuid.UUID             `json:"id"`
	Name                string                `json:"name"`
	TaxID               string                `json:"taxId,omitempty"`
	Address             string                `json:"address,omitempty"`
	Phone               string                `json:"phone,omitempty"`
	LineID              string                `json:"lineId,omitempty"`
	ResponsiblePersonID *uuid.UUID            `json:"responsiblePersonId,omitempty"`
	ResponsiblePerson   *ResponsiblePersonDTO `json:"responsiblePerson,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// CustomerWithDocumentsDTO is the customer detail view
type CustomerWithDocumentsDTO struct {
	CustomerDTO
	Invoices   []InvoiceDTO   `json:"invoices"`
	Quotations []QuotationDTO `json:"quotations"`
}

// --- Products & stock ---

type CreateProductRequest struct {
	Name              string     `json:"name" validate:"required,max=200"`
	Description       string     `json:"description"`
	Price             float64    `json:"price" validate:"gte=0"`
	StockQuantity     int        `json:"stockQuantity" validate:"gte=0"`
	LowStockThreshold int        `json:"lowStockThreshold" validate:"gte=0"`
	Dimensions        string     `json:"dimensions" validate:"max=200"`
	WarehouseID       *uuid.UUID `json:"warehouseId"` // opening stock location, optional
}

type UpdateProductRequest struct {
	Name              string  `json:"name" validate:"required,max=200"`
	Description       string  `json:"description"`
	Price             float64 `json:"price" validate:"gte=0"`
	LowStockThreshold int     `json:"lowStockThreshold" validate:"gte=0"`
	Dimensions        string  `json:"dimensions" validate:"max=200"`
}

type ProductDTO struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Description       string    `json:"description,omitempty"`
	Price             float64   `json:"price"`
	StockQuantity     int       `json:"stockQuantity"`
	LowStockThreshold int       `json:"lowStockThreshold"`
	Dimensions        string    `json:"dimensions,omitempty"`
	LowStock          bool      `json:"lowStock"`
	CreatedAt         time.Time `json:"createdAt"`
}

type CreateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=500"`
}

type UpdateWarehouseRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=500"`
}

type WarehouseDTO struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
}

// WarehouseInventoryDTO is one per-warehouse stock line on the product detail
type WarehouseInventoryDTO struct {
	WarehouseID   uuid.UUID `json:"warehouseId"`
	WarehouseName string    `json:"warehouseName"`
	Quantity      int       `json:"quantity"`
}

type AdjustStockRequest struct {
	WarehouseID    uuid.UUID `json:"warehouseId" validate:"required"`
	Type           string    `json:"type" validate:"required,oneof=receive adjustment"`
	QuantityChange int       `json:"quantityChange"`
	Notes          string    `json:"notes" validate:"max=500"`
}

type TransferStockRequest struct {
	FromWarehouseID uuid.UUID `json:"fromWarehouseId" validate:"required"`
	ToWarehouseID   uuid.UUID `json:"toWarehouseId" validate:"required"`
	Quantity        int       `json:"quantity" validate:"required,gt=0"`
	Notes           string    `json:"notes" validate:"max=500"`
}

type StockMovementDTO struct {
	ID             uuid.UUID  `json:"id"`
	ProductID      uuid.UUID  `json:"productId"`
	WarehouseID    uuid.UUID  `json:"warehouseId"`
	WarehouseName  string     `json:"warehouseName,omitempty"`
	Type           string     `json:"type"`
	QuantityChange int        `json:"quantityChange"`
	Notes          string     `json:"notes,omitempty"`
	InvoiceID      *uuid.UUID `json:"invoiceId,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// --- Invoices ---

type CreateInvoiceRequest struct {
	CustomerID          uuid.UUID      `json:"customerId" validate:"required"`
	ResponsiblePersonID *uuid.UUID     `json:"responsiblePersonId"`
	InvoiceNumber       string         `json:"invoiceNumber" validate:"max=100"` // assembled server-side when empty
	IssueDate           string         `json:"issueDate" validate:"required,datetime=2006-01-02"`
	DueDate             string         `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Items               []DocumentItem `json:"items" validate:"required,min=1,dive"`
	PriceTier           PriceTier      `json:"priceTier" validate:"required,oneof=R W N S"`
}

type UpdateInvoiceRequest struct {
	CustomerID          uuid.UUID      `json:"customerId" validate:"required"`
	ResponsiblePersonID *uuid.UUID     `json:"responsiblePersonId"`
	InvoiceNumber       string         `json:"invoiceNumber" validate:"required,max=100"`
	IssueDate           string         `json:"issueDate" validate:"required,datetime=2006-01-02"`
	DueDate             string         `json:"dueDate" validate:"required,datetime=2006-01-02"`
	Items               []DocumentItem `json:"items" validate:"required,min=1,dive"`
	PriceTier           PriceTier      `json:"priceTier" validate:"required,oneof=R W N S"`
}

type UpdateInvoiceStatusRequest struct {
	Status InvoiceStatus `json:"status" validate:"required,oneof=Draft Sent Paid Overdue"`
}

type InvoiceDTO struct {
	ID                  uuid.UUID             `json:"id"`
	CustomerID          uuid.UUID             `json:"customerId"`
	CustomerName        string                `json:"customerName,omitempty"`
	ResponsiblePersonID *uuid.UUID            `json:"responsiblePersonId,omitempty"`
	ResponsiblePerson   *ResponsiblePersonDTO `json:"responsiblePerson,omitempty"`
	InvoiceNumber       string                `json:"invoiceNumber"`
	IssueDate           string                `json:"issueDate"`
	DueDate             string                `json:"dueDate"`
	Items               []DocumentItem        `json:"items"`
	Total               float64               `json:"total"`
	Status              InvoiceStatus         `json:"status"`
	PriceTier           PriceTier             `json:"priceTier,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// NextNumberResponse previews the next document sequence for the year
type NextNumberResponse struct {
	Sequence int    `json:"sequence"`
	Number   string `json:"number,omitempty"`
}

// ConvertQuotationResponse is returned after quotation -> invoice conversion
type ConvertQuotationResponse struct {
	Success      bool      `json:"success"`
	NewInvoiceID uuid.UUID `json:"newInvoiceId"`
}

// --- Quotations ---

type CreateQuotationRequest struct {
	CustomerID          uuid.UUID      `json:"customerId" validate:"required"`
	ResponsiblePersonID *uuid.UUID     `json:"responsiblePersonId"`
	QuotationNumber     string         `json:"quotationNumber" validate:"max=100"` // assembled server-side when empty
	IssueDate           string         `json:"issueDate" validate:"required,datetime=2006-01-02"`
	ExpiryDate          string         `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	Items               []DocumentItem `json:"items" validate:"required,min=1,dive"`
	PriceTier           PriceTier      `json:"priceTier" validate:"required,oneof=R W N S"`
}

type UpdateQuotationRequest struct {
	CustomerID          uuid.UUID      `json:"customerId" validate:"required"`
	ResponsiblePersonID *uuid.UUID     `json:"responsiblePersonId"`
	QuotationNumber     string         `json:"quotationNumber" validate:"required,max=100"`
	IssueDate           string         `json:"issueDate" validate:"required,datetime=2006-01-02"`
	ExpiryDate          string         `json:"expiryDate" validate:"required,datetime=2006-01-02"`
	Items               []DocumentItem `json:"items" validate:"required,min=1,dive"`
	PriceTier           PriceTier      `json:"priceTier" validate:"required,oneof=R W N S"`
}

type UpdateQuotationStatusRequest struct {
	Status QuotationStatus `json:"status" validate:"required,oneof=Draft Sent Accepted Rejected"`
}

type QuotationDTO struct {
	ID                  uuid.UUID             `json:"id"`
	CustomerID          uuid.UUID             `json:"customerId"`
	CustomerName        string                `json:"customerName,omitempty"`
	ResponsiblePersonID *uuid.UUID            `json:"responsiblePersonId,omitempty"`
	ResponsiblePerson   *ResponsiblePersonDTO `json:"responsiblePerson,omitempty"`
	QuotationNumber     string                `json:"quotationNumber"`
	IssueDate           string                `json:"issueDate"`
	ExpiryDate          string                `json:"expiryDate"`
	Items               []DocumentItem        `json:"items"`
	Total               float64               `json:"total"`
	Status              QuotationStatus       `json:"status"`
	PriceTier           PriceTier             `json:"priceTier,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
}

// --- Employees & leave ---

type CreateEmployeeRequest struct {
	FullName  string `json:"fullName" validate:"required,max=200"`
	Position  string `json:"position" validate:"max=200"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
}

type UpdateEmployeeRequest struct {
	FullName  string `json:"fullName" validate:"required,max=200"`
	Position  string `json:"position" validate:"max=200"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
}

type EmployeeDTO struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"fullName"`
	Position  string    `json:"position,omitempty"`
	StartDate string    `json:"startDate"`
	CreatedAt time.Time `json:"createdAt"`
}

type LeaveBalanceDTO struct {
	LeaveTypeID   int     `json:"leaveTypeId"`
	LeaveTypeName string  `json:"leaveTypeName"`
	Year          int     `json:"year"`
	RemainingDays float64 `json:"remainingDays"`
}

type RecordLeaveRequest struct {
	LeaveTypeID int     `json:"leaveTypeId" validate:"required,gt=0"`
	DaysTaken   float64 `json:"daysTaken" validate:"required,gt=0"`
	LeaveDate   string  `json:"leaveDate" validate:"required,datetime=2006-01-02"`
	Reason      string  `json:"reason" validate:"max=500"`
}

type LeaveRequestDTO struct {
	ID            uuid.UUID `json:"id"`
	EmployeeID    uuid.UUID `json:"employeeId"`
	EmployeeName  string    `json:"employeeName,omitempty"`
	LeaveTypeID   int       `json:"leaveTypeId"`
	LeaveTypeName string    `json:"leaveTypeName,omitempty"`
	LeaveDate     string    `json:"leaveDate"`
	DaysTaken     float64   `json:"daysTaken"`
	Reason        string    `json:"reason,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

type LeaveTypeDTO struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	DefaultDays float64 `json:"defaultDays"`
}

// --- Settings ---

type UpdateSettingsRequest struct {
	CompanyName    string `json:"companyName" validate:"required,max=200"`
	CompanyAddress string `json:"companyAddress" validate:"max=500"`
}

type SettingsDTO struct {
	CompanyName    string    `json:"companyName"`
	CompanyAddress string    `json:"companyAddress,omitempty"`
	LogoPath       string    `json:"logoPath,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// --- Dashboard & reports ---

type DashboardMetricsDTO struct {
	CustomerCount      int            `json:"customerCount"`
	ProductCount       int            `json:"productCount"`
	InvoiceCount       int            `json:"invoiceCount"`
	QuotationCount     int            `json:"quotationCount"`
	OutstandingRevenue float64        `json:"outstandingRevenue"`
	PaidRevenue        float64        `json:"paidRevenue"`
	InvoicesByStatus   map[string]int `json:"invoicesByStatus"`
	RecentInvoices     []InvoiceDTO   `json:"recentInvoices"`
	LowStockProducts   []ProductDTO   `json:"lowStockProducts"`
}

type MonthlyRevenueDTO struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
}

type TopCustomerDTO struct {
	CustomerID   uuid.UUID `json:"customerId"`
	CustomerName string    `json:"customerName"`
	PaidRevenue  float64   `json:"paidRevenue"`
}

type ReportSummaryDTO struct {
	Year             int                 `json:"year"`
	MonthlyRevenue   []MonthlyRevenueDTO `json:"monthlyRevenue"`
	InvoicesByStatus map[string]int      `json:"invoicesByStatus"`
	TopCustomers     []TopCustomerDTO    `json:"topCustomers"`
}
