package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the id client-side, keeping inserts portable across
// database drivers.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// PriceTier represents a customer-segment pricing category, encoded as a
// single-letter code on invoices and quotations.
type PriceTier string

const (
	PriceTierRetail           PriceTier = "R"
	PriceTierWholesale        PriceTier = "W"
	PriceTierNonStockReseller PriceTier = "N"
	PriceTierSpecial          PriceTier = "S"
)

// IsValid checks if the PriceTier is a valid enum value
func (pt PriceTier) IsValid() bool {
	switch pt {
	case PriceTierRetail, PriceTierWholesale, PriceTierNonStockReseller, PriceTierSpecial:
		return true
	}
	return false
}

// ResponsiblePerson is an internal staff member associated with a customer
// or document for accountability tracking. The initial is the single letter
// embedded in document numbers.
type ResponsiblePerson struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Email   string `gorm:"type:varchar(255)"`
	Phone   string `gorm:"type:varchar(50)"`
	Initial string `gorm:"type:varchar(5);not null"`
}

// Customer represents a buying organization
type Customer struct {
	BaseModel
	Name                string             `gorm:"type:varchar(200);not null;index"`
	TaxID               string             `gorm:"type:varchar(50);index;column:tax_id"`
	Address             string             `gorm:"type:varchar(500)"`
	Phone               string             `gorm:"type:varchar(50)"`
	LineID              string             `gorm:"type:varchar(100);column:line_id"`
	ResponsiblePersonID *uuid.UUID         `gorm:"type:uuid;index;column:responsible_person_id"`
	ResponsiblePerson   *ResponsiblePerson `gorm:"foreignKey:ResponsiblePersonID"`
	Invoices            []Invoice          `gorm:"foreignKey:CustomerID"`
	Quotations          []Quotation        `gorm:"foreignKey:CustomerID"`
}

// Product represents a sellable item. StockQuantity is the denormalized
// total across warehouses; per-warehouse rows are authoritative and both
// are only ever changed inside the same transaction.
type Product struct {
	BaseModel
	Name              string             `gorm:"type:varchar(200);not null;index"`
	Description       string             `gorm:"type:text"`
	Price             float64            `gorm:"type:decimal(15,2);not null;default:0"`
	StockQuantity     int                `gorm:"not null;default:0;column:stock_quantity"`
	LowStockThreshold int                `gorm:"not null;default:0;column:low_stock_threshold"`
	Dimensions        string             `gorm:"type:varchar(200)"`
	Inventory         []ProductInventory `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Movements         []StockMovement    `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
}

// IsLowStock reports whether the product is at or under its threshold
func (p *Product) IsLowStock() bool {
	return p.LowStockThreshold > 0 && p.StockQuantity <= p.LowStockThreshold
}

// Warehouse represents a physical stock location
type Warehouse struct {
	BaseModel
	Name    string `gorm:"type:varchar(200);not null"`
	Address string `gorm:"type:varchar(500)"`
}

// ProductInventory is the per-warehouse stock level for a product
type ProductInventory struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	ProductID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_warehouse;column:product_id"`
	Product     *Product   `gorm:"foreignKey:ProductID"`
	WarehouseID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_product_warehouse;column:warehouse_id"`
	Warehouse   *Warehouse `gorm:"foreignKey:WarehouseID"`
	Quantity    int        `gorm:"not null;default:0"`
	UpdatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName overrides the default table name
func (ProductInventory) TableName() string {
	return "product_inventory"
}

func (pi *ProductInventory) BeforeCreate(tx *gorm.DB) error {
	if pi.ID == uuid.Nil {
		pi.ID = uuid.New()
	}
	return nil
}

// MovementType represents the kind of stock movement
type MovementType string

const (
	MovementTypeReceive    MovementType = "receive"
	MovementTypeAdjustment MovementType = "adjustment"
	MovementTypeSale       MovementType = "sale"
	MovementTypeTransfer   MovementType = "transfer"
)

// IsValid checks if the MovementType is a valid enum value
func (mt MovementType) IsValid() bool {
	switch mt {
	case MovementTypeReceive, MovementTypeAdjustment, MovementTypeSale, MovementTypeTransfer:
		return true
	}
	return false
}

// StockMovement is an append-only ledger row recording a quantity change
// for a product in a warehouse. Rows are immutable once written.
type StockMovement struct {
	ID             uuid.UUID    `gorm:"type:uuid;primary_key"`
	ProductID      uuid.UUID    `gorm:"type:uuid;not null;index;column:product_id"`
	Product        *Product     `gorm:"foreignKey:ProductID"`
	WarehouseID    uuid.UUID    `gorm:"type:uuid;not null;index;column:warehouse_id"`
	Warehouse      *Warehouse   `gorm:"foreignKey:WarehouseID"`
	Type           MovementType `gorm:"type:varchar(20);not null;index"`
	QuantityChange int          `gorm:"not null;column:quantity_change"`
	Notes          string       `gorm:"type:text"`
	InvoiceID      *uuid.UUID   `gorm:"type:uuid;index;column:invoice_id"`
	CreatedAt      time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

func (sm *StockMovement) BeforeCreate(tx *gorm.DB) error {
	if sm.ID == uuid.Nil {
		sm.ID = uuid.New()
	}
	return nil
}

// DocumentItem is one line on an invoice or quotation
type DocumentItem struct {
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

// Total returns quantity * unit price for the line
func (it DocumentItem) Total() float64 {
	return it.Quantity * it.UnitPrice
}

// DocumentItems is the embedded item list, stored as a jsonb column
type DocumentItems []DocumentItem

// Value implements driver.Valuer
func (items DocumentItems) Value() (driver.Value, error) {
	if items == nil {
		items = DocumentItems{}
	}
	return json.Marshal(items)
}

// Scan implements sql.Scanner
func (items *DocumentItems) Scan(value interface{}) error {
	if value == nil {
		*items = DocumentItems{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, items)
	case string:
		return json.Unmarshal([]byte(v), items)
	default:
		return fmt.Errorf("unsupported type for DocumentItems: %T", value)
	}
}

// Total sums all line totals
func (items DocumentItems) Total() float64 {
	var total float64
	for _, it := range items {
		total += it.Total()
	}
	return total
}

// InvoiceStatus represents the status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "Draft"
	InvoiceStatusSent    InvoiceStatus = "Sent"
	InvoiceStatusPaid    InvoiceStatus = "Paid"
	InvoiceStatusOverdue InvoiceStatus = "Overdue"
)

// IsValid checks if the InvoiceStatus is a valid enum value
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPaid, InvoiceStatusOverdue:
		return true
	}
	return false
}

// Invoice represents a billing document with embedded line items
type Invoice struct {
	BaseModel
	CustomerID          uuid.UUID          `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer            *Customer          `gorm:"foreignKey:CustomerID"`
	ResponsiblePersonID *uuid.UUID         `gorm:"type:uuid;index;column:responsible_person_id"`
	ResponsiblePerson   *ResponsiblePerson `gorm:"foreignKey:ResponsiblePersonID"`
	InvoiceNumber       string             `gorm:"type:varchar(100);not null;uniqueIndex;column:invoice_number"`
	IssueDate           time.Time          `gorm:"type:date;not null;column:issue_date"`
	DueDate             time.Time          `gorm:"type:date;not null;column:due_date"`
	Items               DocumentItems      `gorm:"type:jsonb;not null"`
	Status              InvoiceStatus      `gorm:"type:varchar(20);not null;default:'Draft';index"`
	PriceTier           PriceTier          `gorm:"type:varchar(5);column:price_tier"`
}

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationStatusDraft    QuotationStatus = "Draft"
	QuotationStatusSent     QuotationStatus = "Sent"
	QuotationStatusAccepted QuotationStatus = "Accepted"
	QuotationStatusRejected QuotationStatus = "Rejected"
)

// IsValid checks if the QuotationStatus is a valid enum value
func (s QuotationStatus) IsValid() bool {
	switch s {
	case QuotationStatusDraft, QuotationStatusSent, QuotationStatusAccepted, QuotationStatusRejected:
		return true
	}
	return false
}

// Quotation represents a sales quotation, convertible to an invoice
type Quotation struct {
	BaseModel
	CustomerID          uuid.UUID          `gorm:"type:uuid;not null;index;column:customer_id"`
	Customer            *Customer          `gorm:"foreignKey:CustomerID"`
	ResponsiblePersonID *uuid.UUID         `gorm:"type:uuid;index;column:responsible_person_id"`
	ResponsiblePerson   *ResponsiblePerson `gorm:"foreignKey:ResponsiblePersonID"`
	QuotationNumber     string             `gorm:"type:varchar(100);not null;uniqueIndex;column:quotation_number"`
	IssueDate           time.Time          `gorm:"type:date;not null;column:issue_date"`
	ExpiryDate          time.Time          `gorm:"type:date;not null;column:expiry_date"`
	Items               DocumentItems      `gorm:"type:jsonb;not null"`
	Status              QuotationStatus    `gorm:"type:varchar(20);not null;default:'Draft';index"`
	PriceTier           PriceTier          `gorm:"type:varchar(5);column:price_tier"`
}

// Employee represents a staff member tracked for leave
type Employee struct {
	BaseModel
	FullName  string         `gorm:"type:varchar(200);not null;column:full_name"`
	Position  string         `gorm:"type:varchar(200)"`
	StartDate time.Time      `gorm:"type:date;not null;column:start_date"`
	Balances  []LeaveBalance `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
	Requests  []LeaveRequest `gorm:"foreignKey:EmployeeID;constraint:OnDelete:CASCADE"`
}

// LeaveType is a category of leave with a yearly default allowance
type LeaveType struct {
	ID          int       `gorm:"primaryKey"`
	Name        string    `gorm:"type:varchar(100);not null"`
	DefaultDays float64   `gorm:"type:decimal(5,1);not null;default:0;column:default_days"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// LeaveBalance is the remaining allowance per employee, leave type and year
type LeaveBalance struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key"`
	EmployeeID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_employee_leave_year;column:employee_id"`
	Employee      *Employee  `gorm:"foreignKey:EmployeeID"`
	LeaveTypeID   int        `gorm:"not null;uniqueIndex:idx_employee_leave_year;column:leave_type_id"`
	LeaveType     *LeaveType `gorm:"foreignKey:LeaveTypeID"`
	Year          int        `gorm:"not null;uniqueIndex:idx_employee_leave_year"`
	RemainingDays float64    `gorm:"type:decimal(5,1);not null;default:0;column:remaining_days"`
	UpdatedAt     time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (lb *LeaveBalance) BeforeCreate(tx *gorm.DB) error {
	if lb.ID == uuid.Nil {
		lb.ID = uuid.New()
	}
	return nil
}

// LeaveRequest is an append-only record of leave taken
type LeaveRequest struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key"`
	EmployeeID  uuid.UUID  `gorm:"type:uuid;not null;index;column:employee_id"`
	Employee    *Employee  `gorm:"foreignKey:EmployeeID"`
	LeaveTypeID int        `gorm:"not null;column:leave_type_id"`
	LeaveType   *LeaveType `gorm:"foreignKey:LeaveTypeID"`
	LeaveDate   time.Time  `gorm:"type:date;not null;column:leave_date"`
	DaysTaken   float64    `gorm:"type:decimal(5,1);not null;column:days_taken"`
	Reason      string     `gorm:"type:text"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP;index"`
}

func (lr *LeaveRequest) BeforeCreate(tx *gorm.DB) error {
	if lr.ID == uuid.Nil {
		lr.ID = uuid.New()
	}
	return nil
}

// Settings is the singleton company configuration row (id = 1)
type Settings struct {
	ID             int       `gorm:"primaryKey"`
	CompanyName    string    `gorm:"type:varchar(200);not null;column:company_name"`
	CompanyAddress string    `gorm:"type:varchar(500);column:company_address"`
	LogoPath       string    `gorm:"type:varchar(500);column:logo_path"`
	UpdatedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// SettingsRowID is the fixed primary key of the settings singleton
const SettingsRowID = 1

// User represents a login account for the application
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;unique"`
	PasswordHash string     `gorm:"type:varchar(255);not null;column:password_hash"`
	DisplayName  string     `gorm:"type:varchar(200);not null;column:display_name"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}
