package models

// Offer is an executor's response to an order.
type Offer struct {
	ID         int `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderID    int `gorm:"index" json:"order_id"`
	ExecutorID int `gorm:"index" json:"executor_id"`
}

func (Offer) TableName() string { return "offers" }

func (o Offer) PrimaryKey() int { return o.ID }
