package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EmployeePermissions lists the shop areas a staff member works in.
type EmployeePermissions struct {
	Inventory bool `bson:"inventory" json:"inventory"`
	Purchases bool `bson:"purchases" json:"purchases"`
	Sales     bool `bson:"sales" json:"sales"`
	Expenses  bool `bson:"expenses" json:"expenses"`
	Reports   bool `bson:"reports" json:"reports"`
}

// Employee is one entry of the staff roster.
type Employee struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	RealName    string              `bson:"realName" json:"realName"`
	Address     string              `bson:"address" json:"address"`
	Salary      float64             `bson:"salary" json:"salary"`
	Phone       string              `bson:"phone" json:"phone"`
	HireDate    *time.Time          `bson:"hireDate,omitempty" json:"hireDate,omitempty"`
	Notes       string              `bson:"notes" json:"notes"`
	Permissions EmployeePermissions `bson:"permissions" json:"permissions"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
