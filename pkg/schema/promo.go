package schema

const PromoFlagSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "promo_flag",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "on_sale", "type": "boolean"}
	]
}`

type PromoFlagV1 struct {
	ProductID string `avro:"product_id"`
	OnSale    bool   `avro:"on_sale"`
}
