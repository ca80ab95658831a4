package schema

const OrderPlacedSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "order_placed",
	"fields": [
		{"name": "order_id", "type": "string"},
		{"name": "cart_id", "type": "string"},
		{"name": "customer_name", "type": "string"},
		{"name": "customer_email", "type": "string"},
		{"name": "customer_phone", "type": "string"},
		{"name": "city", "type": "string"},
		{"name": "state", "type": "string"},
		{"name": "postal_code", "type": "string"},
		{"name": "payment_method", "type": "string"},
		{"name": "installments", "type": "int"},
		{"name": "item_count", "type": "long"},
		{"name": "subtotal", "type": "string"},
		{"name": "discount", "type": "string"},
		{"name": "shipping", "type": "string"},
		{"name": "total", "type": "string"},
		{"name": "placed_at", "type": "long"}
	]
}`

// OrderPlacedV1 is the wire form of a placed order. Money travels as
// decimal strings so no consumer ever re-rounds a float.
type OrderPlacedV1 struct {
	OrderID       string `avro:"order_id"`
	CartID        string `avro:"cart_id"`
	CustomerName  string `avro:"customer_name"`
	CustomerEmail string `avro:"customer_email"`
	CustomerPhone string `avro:"customer_phone"`
	City          string `avro:"city"`
	State         string `avro:"state"`
	PostalCode    string `avro:"postal_code"`
	PaymentMethod string `avro:"payment_method"`
	Installments  int    `avro:"installments"`
	ItemCount     int64  `avro:"item_count"`
	Subtotal      string `avro:"subtotal"`
	Discount      string `avro:"discount"`
	Shipping      string `avro:"shipping"`
	Total         string `avro:"total"`
	PlacedAtMs    int64  `avro:"placed_at"`
}
