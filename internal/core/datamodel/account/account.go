package account

import "time"

// Account is one node of the company's account tree (banks, wallets, cash
// drawers). ParentID is nil for root accounts.
type Account struct {
	ID        int64      `gorm:"primaryKey"`
	CompanyID int64      `gorm:"column:company_id;index;not null"`
	ParentID  *int64     `gorm:"column:parent_id;index"`
	Name      string     `gorm:"column:name;not null"`
	Kind      string     `gorm:"column:kind;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

func (Account) TableName() string {
	return "accounts"
}
