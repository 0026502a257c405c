package models

import "gorm.io/datatypes"

// Order is a job posted by a customer. CustomerID and ExecutorID hold User
// ids that are not checked on write.
type Order struct {
	ID          int            `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string         `gorm:"size:100" json:"name"`
	Description string         `gorm:"size:255" json:"description"`
	StartDate   datatypes.Date `json:"start_date"`
	EndDate     datatypes.Date `json:"end_date"`
	Address     string         `gorm:"size:100" json:"address"`
	Price       int            `json:"price"`
	CustomerID  int            `gorm:"index" json:"customer_id"`
	ExecutorID  int            `gorm:"index" json:"executor_id"`
}

func (Order) TableName() string { return "orders" }

func (o Order) PrimaryKey() int { return o.ID }
