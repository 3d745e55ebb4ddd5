package model

import (
	"time"

	"github.com/google/uuid"
)

// Order statuses. pending → {in_progress, completed, cancelled};
// in_progress → {completed, cancelled}; completed and cancelled are terminal.
const (
	OrderPending    = "pending"
	OrderInProgress = "in_progress"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// OrderStatuses returns the recognized status values, in workflow order.
func OrderStatuses() []string {
	return []string{OrderPending, OrderInProgress, OrderCompleted, OrderCancelled}
}

// Order is a bespoke customer order against a product. Its status state
// machine is independent of stock.
type Order struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductID    uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerName string    `gorm:"not null"`
	DesignSpecs  string
	Status       string    `gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedByID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	CreatedBy *User    `gorm:"foreignKey:CreatedByID"`
}
