package models

// User is a marketplace participant: a customer who posts orders or an
// executor who makes offers on them.
type User struct {
	ID        int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	FirstName string `gorm:"size:100" json:"first_name"`
	LastName  string `gorm:"size:100" json:"last_name"`
	Age       int    `json:"age"`
	Email     string `gorm:"size:100" json:"email"`
	Role      string `gorm:"size:100" json:"role"`
	Phone     string `gorm:"size:100" json:"phone"`
}

func (User) TableName() string { return "users" }

func (u User) PrimaryKey() int { return u.ID }
