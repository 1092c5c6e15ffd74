package entities

import (
	"fmt"
	"time"
)

type TaskKind string

const (
	TaskKindReceive TaskKind = "Receive" // Pick the book up from the customer
	TaskKindDeliver TaskKind = "Deliver" // Bring the book to the customer
)

// Valid reports whether k is one of the known task kinds.
func (k TaskKind) Valid() bool {
	return k == TaskKindReceive || k == TaskKindDeliver
}

// TaskKey identifies a single receive-or-deliver obligation.
type TaskKey struct {
	Kind           TaskKind `json:"kind"`
	PurchasingDate string   `json:"purchasing_date"`
	ISBN           string   `json:"isbn"`
	CustomerID     uint     `json:"customer_id"`
}

func (k TaskKey) String() string {
	return fmt.Sprintf("%s %s/%s/%d", k.Kind, k.PurchasingDate, k.ISBN, k.CustomerID)
}

// BookTask is one row of either the unassigned or the assigned set.
// Comment is only populated for assigned rows.
type BookTask struct {
	Kind           TaskKind `json:"kind"`
	PurchasingDate string   `json:"purchasing_date"`
	ISBN           string   `json:"isbn"`
	CustomerID     uint     `json:"customer_id"`
	Address        string   `json:"address"`
	Title          string   `json:"title"`
	CustomerName   string   `json:"customer_name"`
	CustomerPhone  string   `json:"customer_phone"`
	Comment        *string  `json:"comment,omitempty"`
}

func (t BookTask) Key() TaskKey {
	return TaskKey{
		Kind:           t.Kind,
		PurchasingDate: t.PurchasingDate,
		ISBN:           t.ISBN,
		CustomerID:     t.CustomerID,
	}
}

// BookToReceive is a purchase whose book must be collected from the customer.
type BookToReceive struct {
	PurchasingDate string `gorm:"column:purchasing_date;primaryKey;size:10"`
	ISBN           string `gorm:"column:isbn;primaryKey;size:20"`
	CustomerID     uint   `gorm:"column:customer_id;primaryKey;autoIncrement:false"`
	Address        string `gorm:"size:512"`
	Comment        string `gorm:"column:commnt;type:text"`
}

func (BookToReceive) TableName() string {
	return "book_to_receive"
}

// BookToDeliver is a purchase whose book must be brought to the customer.
type BookToDeliver struct {
	PurchasingDate string `gorm:"column:purchasing_date;primaryKey;size:10"`
	ISBN           string `gorm:"column:isbn;primaryKey;size:20"`
	CustomerID     uint   `gorm:"column:customer_id;primaryKey;autoIncrement:false"`
	AddressTo      string `gorm:"column:address_to;size:512"`
	Comment        string `gorm:"column:commnt;type:text"`
}

func (BookToDeliver) TableName() string {
	return "book_to_deliver"
}

// TaskLink binds a task to the courier handling it. The composite primary
// key makes a claim a single insert that at most one courier can win.
type TaskLink struct {
	PurchasingDate string     `gorm:"column:purchasing_date;primaryKey;size:10"`
	ISBN           string     `gorm:"column:isbn;primaryKey;size:20"`
	CustomerID     uint       `gorm:"column:customer_id;primaryKey;autoIncrement:false"`
	CourierID      uint       `gorm:"column:courier_id;index"`
	AssignedAt     time.Time  `gorm:"column:assigned_at"`
	CompletedAt    *time.Time `gorm:"column:completed_at"`
}

// Receiving links a BookToReceive to its courier.
type Receiving struct {
	TaskLink `gorm:"embedded"`
}

func (Receiving) TableName() string {
	return "receiving"
}

// Delivery links a BookToDeliver to its courier.
type Delivery struct {
	TaskLink `gorm:"embedded"`
}

func (Delivery) TableName() string {
	return "delivery"
}

// Tables returns the task table and the link table for a kind.
func (k TaskKind) Tables() (task, link string) {
	if k == TaskKindDeliver {
		return BookToDeliver{}.TableName(), Delivery{}.TableName()
	}
	return BookToReceive{}.TableName(), Receiving{}.TableName()
}
