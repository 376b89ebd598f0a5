package models

import "time"

// Operation types recorded on a stock log entry.
const (
	OperationDecrease = "decrease"
	OperationUpdate   = "update"
)

// StockLog is an immutable audit record of a quantity transition on a
// product. The product name is denormalized at write time so the entry
// stays readable after the product is deleted.
type StockLog struct {
	ID               string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID        string    `json:"productId" gorm:"type:varchar(36);index"`
	ProductName      string    `json:"productName"`
	PreviousQuantity int       `json:"previousQuantity"`
	NewQuantity      int       `json:"newQuantity"`
	OperationType    string    `json:"operationType"`
	Timestamp        time.Time `json:"timestamp"`
}

// OperationTypeFor classifies a quantity transition. Only a strict drop
// counts as a decrease; everything else, including an unchanged quantity,
// is a plain update.
func OperationTypeFor(previousQuantity, newQuantity int) string {
	if newQuantity < previousQuantity {
		return OperationDecrease
	}
	return OperationUpdate
}
