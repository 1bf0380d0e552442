package contact

import "time"

type Contact struct {
	ID        int64      `gorm:"primaryKey"`
	CompanyID int64      `gorm:"column:company_id;index;not null"`
	Name      string     `gorm:"column:name;not null"`
	Kind      string     `gorm:"column:kind;default:CUSTOMER"`
	Email     string     `gorm:"column:email"`
	Phone     string     `gorm:"column:phone"`
	Document  string     `gorm:"column:document"`
	Notes     string     `gorm:"column:notes"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt *time.Time `gorm:"column:deleted_at;index"`
}

func (Contact) TableName() string {
	return "contacts"
}
