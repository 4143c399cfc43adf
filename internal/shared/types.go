package shared

// Task types
const (
	TypeSendOrderConfirmation = "order:send_confirmation"
	TypeDailySalesSummary     = "order:daily_sales_summary"
)

// Queues
const (
	QueueHigh    = "high"
	QueueDefault = "default"
	QueueLow     = "low"
)
