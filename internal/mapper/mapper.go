package mapper

import (
	"github.com/pwsupply/erp-api/internal/domain"
)

const dateLayout = "2006-01-02"

func ToResponsiblePersonDTO(p *domain.ResponsiblePerson) domain.ResponsiblePersonDTO {
	return domain.ResponsiblePersonDTO{
		ID:      p.ID,
		Name:    p.Name,
		Email:   p.Email,
		Phone:   p.Phone,
		Initial: p.Initial,
	}
}

func ToCustomerDTO(c *domain.Customer) domain.CustomerDTO {
	dto := domain.CustomerDTO{
		ID:                  c.ID,
		Name:                c.Name,
		TaxID:               c.TaxID,
		Address:             c.Address,
		Phone:               c.Phone,
		LineID:              c.LineID,
		ResponsiblePersonID: c.ResponsiblePersonID,
		CreatedAt:           c.CreatedAt,
	}
	if c.ResponsiblePerson != nil {
		rp := ToResponsiblePersonDTO(c.ResponsiblePerson)
		dto.ResponsiblePerson = &rp
	}
	return dto
}

func ToCustomerWithDocumentsDTO(c *domain.Customer) domain.CustomerWithDocumentsDTO {
	dto := domain.CustomerWithDocumentsDTO{
		CustomerDTO: ToCustomerDTO(c),
		Invoices:    make([]domain.InvoiceDTO, len(c.Invoices)),
		Quotations:  make([]domain.QuotationDTO, len(c.Quotations)),
	}
	for i := range c.Invoices {
		dto.Invoices[i] = ToInvoiceDTO(&c.Invoices[i])
	}
	for i := range c.Quotations {
		dto.Quotations[i] = ToQuotationDTO(&c.Quotations[i])
	}
	return dto
}

func ToProductDTO(p *domain.Product) domain.ProductDTO {
	return domain.ProductDTO{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		Dimensions:        p.Dimensions,
		LowStock:          p.IsLowStock(),
		CreatedAt:         p.CreatedAt,
	}
}

func ToWarehouseDTO(w *domain.Warehouse) domain.WarehouseDTO {
	return domain.WarehouseDTO{
		ID:      w.ID,
		Name:    w.Name,
		Address: w.Address,
	}
}

func ToWarehouseInventoryDTO(inv *domain.ProductInventory) domain.WarehouseInventoryDTO {
	dto := domain.WarehouseInventoryDTO{
		WarehouseID: inv.WarehouseID,
		Quantity:    inv.Quantity,
	}
	if inv.Warehouse != nil {
		dto.WarehouseName = inv.Warehouse.Name
	}
	return dto
}

func ToStockMovementDTO(m *domain.StockMovement) domain.StockMovementDTO {
	dto := domain.StockMovementDTO{
		ID:             m.ID,
		ProductID:      m.ProductID,
		WarehouseID:    m.WarehouseID,
		Type:           string(m.Type),
		QuantityChange: m.QuantityChange,
		Notes:          m.Notes,
		InvoiceID:      m.InvoiceID,
		CreatedAt:      m.CreatedAt,
	}
	if m.Warehouse != nil {
		dto.WarehouseName = m.Warehouse.Name
	}
	return dto
}

func ToInvoiceDTO(inv *domain.Invoice) domain.InvoiceDTO {
	dto := domain.InvoiceDTO{
		ID:                  inv.ID,
		CustomerID:          inv.CustomerID,
		ResponsiblePersonID: inv.ResponsiblePersonID,
		InvoiceNumber:       inv.InvoiceNumber,
		IssueDate:           inv.IssueDate.Format(dateLayout),
		DueDate:             inv.DueDate.Format(dateLayout),
		Items:               inv.Items,
		Total:               inv.Items.Total(),
		Status:              inv.Status,
		PriceTier:           inv.PriceTier,
		CreatedAt:           inv.CreatedAt,
	}
	if inv.Customer != nil {
		dto.CustomerName = inv.Customer.Name
	}
	if inv.ResponsiblePerson != nil {
		rp := ToResponsiblePersonDTO(inv.ResponsiblePerson)
		dto.ResponsiblePerson = &rp
	}
	return dto
}

func ToQuotationDTO(q *domain.Quotation) domain.QuotationDTO {
	dto := domain.QuotationDTO{
		ID:                  q.ID,
		CustomerID:          q.CustomerID,
		ResponsiblePersonID: q.ResponsiblePersonID,
		QuotationNumber:     q.QuotationNumber,
		IssueDate:           q.IssueDate.Format(dateLayout),
		ExpiryDate:          q.ExpiryDate.Format(dateLayout),
		Items:               q.Items,
		Total:               q.Items.Total(),
		Status:              q.Status,
		PriceTier:           q.PriceTier,
		CreatedAt:           q.CreatedAt,
	}
	if q.Customer != nil {
		dto.CustomerName = q.Customer.Name
	}
	if q.ResponsiblePerson != nil {
		rp := ToResponsiblePersonDTO(q.ResponsiblePerson)
		dto.ResponsiblePerson = &rp
	}
	return dto
}

func ToEmployeeDTO(e *domain.Employee) domain.EmployeeDTO {
	return domain.EmployeeDTO{
		ID:        e.ID,
		FullName:  e.FullName,
		Position:  e.Position,
		StartDate: e.StartDate.Format(dateLayout),
		CreatedAt: e.CreatedAt,
	}
}

func ToLeaveBalanceDTO(b *domain.LeaveBalance) domain.LeaveBalanceDTO {
	dto := domain.LeaveBalanceDTO{
		LeaveTypeID:   b.LeaveTypeID,
		Year:          b.Year,
		RemainingDays: b.RemainingDays,
	}
	if b.LeaveType != nil {
		dto.LeaveTypeName = b.LeaveType.Name
	}
	return dto
}

func ToLeaveRequestDTO(r *domain.LeaveRequest) domain.LeaveRequestDTO {
	dto := domain.LeaveRequestDTO{
		ID:          r.ID,
		EmployeeID:  r.EmployeeID,
		LeaveTypeID: r.LeaveTypeID,
		LeaveDate:   r.LeaveDate.Format(dateLayout),
		DaysTaken:   r.DaysTaken,
		Reason:      r.Reason,
		CreatedAt:   r.CreatedAt,
	}
	if r.Employee != nil {
		dto.EmployeeName = r.Employee.FullName
	}
	if r.LeaveType != nil {
		dto.LeaveTypeName = r.LeaveType.Name
	}
	return dto
}

func ToLeaveTypeDTO(lt *domain.LeaveType) domain.LeaveTypeDTO {
	return domain.LeaveTypeDTO{
		ID:          lt.ID,
		Name:        lt.Name,
		DefaultDays: lt.DefaultDays,
	}
}

func ToSettingsDTO(s *domain.Settings) domain.SettingsDTO {
	return domain.SettingsDTO{
		CompanyName:    s.CompanyName,
		CompanyAddress: s.CompanyAddress,
		LogoPath:       s.LogoPath,
		UpdatedAt:      s.UpdatedAt,
	}
}

func ToUserDTO(u *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:          u.ID,
		Email:       u.Email,
		DisplayName: u.DisplayName,
	}
}
