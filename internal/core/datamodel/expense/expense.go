package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Soft deletes are explicit deletion timestamps; repositories filter on
// deleted_at IS NULL rather than relying on gorm's implicit scope.

type Expense struct {
	ID             int64           `gorm:"primaryKey"`
	CompanyID      int64           `gorm:"column:company_id;index;not null"`
	VendorID       int64           `gorm:"column:vendor_id;index;not null"`
	CategoryID     int64           `gorm:"column:category_id;index;not null"`
	Description    string          `gorm:"column:description;not null"`
	CompetenceDate time.Time       `gorm:"column:competence_date;type:date;not null"`
	IssueDate      *time.Time      `gorm:"column:issue_date;type:date"`
	TotalNet       decimal.Decimal `gorm:"column:total_net;type:decimal(20,4);not null"`
	Status         string          `gorm:"column:status;default:OPEN"`
	Items          []ExpenseItem   `gorm:"foreignKey:ExpenseID"`
	Installments   []Installment   `gorm:"foreignKey:ExpenseID"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      *time.Time      `gorm:"column:deleted_at;index"`
}

func (Expense) TableName() string {
	return "expenses"
}

type ExpenseItem struct {
	ID        int64           `gorm:"primaryKey"`
	ExpenseID int64           `gorm:"column:expense_id;index;not null"`
	Name      string          `gorm:"column:name;not null"`
	Quantity  decimal.Decimal `gorm:"column:quantity;type:decimal(20,4);not null"`
	UnitPrice decimal.Decimal `gorm:"column:unit_price;type:decimal(20,4);not null"`
	Discount  decimal.Decimal `gorm:"column:discount;type:decimal(20,4);default:0"`
	Total     decimal.Decimal `gorm:"column:total;type:decimal(20,4);not null"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt *time.Time      `gorm:"column:deleted_at;index"`
}

func (ExpenseItem) TableName() string {
	return "expense_items"
}

type Installment struct {
	ID        int64           `gorm:"primaryKey"`
	ExpenseID int64           `gorm:"column:expense_id;index;not null"`
	Number    int             `gorm:"column:number;not null"`
	DueDate   time.Time       `gorm:"column:due_date;type:date;not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null"`
	Status    string          `gorm:"column:status;default:PENDING"`
	Payments  []Payment       `gorm:"foreignKey:InstallmentID"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt *time.Time      `gorm:"column:deleted_at;index"`
}

func (Installment) TableName() string {
	return "installments"
}

type Payment struct {
	ID            int64           `gorm:"primaryKey"`
	InstallmentID int64           `gorm:"column:installment_id;index;not null"`
	AccountID     int64           `gorm:"column:account_id;index;not null"`
	PaidAt        time.Time       `gorm:"column:paid_at;type:date;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(20,4);not null"`
	Method        string          `gorm:"column:method;not null"`
	Note          *string         `gorm:"column:note"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt     *time.Time      `gorm:"column:deleted_at;index"`
}

func (Payment) TableName() string {
	return "payments"
}
