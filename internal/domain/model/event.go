package model

// 決済完了時にキューへ流すイベント
type PaymentCompletedEvent struct {
	OrderID       int64  `json:"order_id"`
	PaymentID     int64  `json:"payment_id"`
	CustomerID    int64  `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	Amount        string `json:"amount"`
	TransactionID string `json:"transaction_id"`
	CompletedAt   string `json:"completed_at"`
}
