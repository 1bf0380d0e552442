package category

import "time"

type ExpenseCategory struct {
	ID          int64      `gorm:"primaryKey"`
	CompanyID   int64      `gorm:"column:company_id;index;not null"`
	Name        string     `gorm:"column:name;not null"`
	Description string     `gorm:"column:description"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt   *time.Time `gorm:"column:deleted_at;index"`
}

func (ExpenseCategory) TableName() string {
	return "expense_categories"
}
