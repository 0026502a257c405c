package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/offerdesk/app/models"
	"github.com/shashiranjanraj/offerdesk/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260101000001_create_orders_table", &CreateOrdersTable{})
	migration.Register("20260101000002_create_offers_table", &CreateOffersTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.User{})
}

// -------- 0002: orders --------

type CreateOrdersTable struct{}

func (m *CreateOrdersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{})
}

func (m *CreateOrdersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Order{})
}

// -------- 0003: offers --------

type CreateOffersTable struct{}

func (m *CreateOffersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Offer{})
}

func (m *CreateOffersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.Offer{})
}
