package shared

// Asynq task types
const (
	TypeReshuffleProducts = "catalog:reshuffle_products"
)

// Asynq queues
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

// ReshuffleProductsPayload - Payload của TypeReshuffleProducts
type ReshuffleProductsPayload struct {
	RequestedBy string `json:"requested_by"`
}
