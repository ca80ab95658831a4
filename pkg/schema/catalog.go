package schema

const CatalogUpsertSchemaTextV1 = `{
	"type": "record",
	"namespace": "storefront",
	"name": "catalog_upsert",
	"fields": [
		{"name": "product_id", "type": "string"},
		{"name": "name", "type": "string"},
		{"name": "category", "type": "string"},
		{"name": "gender", "type": "string"},
		{"name": "subcategory", "type": "string"},
		{"name": "brand", "type": "string"},
		{"name": "material", "type": "string"},
		{"name": "price", "type": "string"},
		{"name": "sale_price", "type": "string"},
		{"name": "rating", "type": "double"},
		{"name": "review_count", "type": "long"},
		{"name": "sizes", "type": {"type": "array", "items": "string"}},
		{"name": "colors", "type": {"type": "array", "items": "string"}},
		{"name": "image", "type": "string"},
		{"name": "is_new", "type": "boolean"},
		{"name": "is_promo", "type": "boolean"},
		{"name": "in_stock", "type": "boolean"},
		{"name": "free_ship", "type": "boolean"}
	]
}`

type CatalogUpsertV1 struct {
	ProductID   string   `avro:"product_id"`
	Name        string   `avro:"name"`
	Category    string   `avro:"category"`
	Gender      string   `avro:"gender"`
	Subcategory string   `avro:"subcategory"`
	Brand       string   `avro:"brand"`
	Material    string   `avro:"material"`
	Price       string   `avro:"price"`
	SalePrice   string   `avro:"sale_price"`
	Rating      float64  `avro:"rating"`
	ReviewCount int64    `avro:"review_count"`
	Sizes       []string `avro:"sizes"`
	Colors      []string `avro:"colors"`
	Image       string   `avro:"image"`
	IsNew       bool     `avro:"is_new"`
	IsPromo     bool     `avro:"is_promo"`
	InStock     bool     `avro:"in_stock"`
	FreeShip    bool     `avro:"free_ship"`
}
