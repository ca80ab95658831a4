package schema_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/finaestampa/storefront/pkg/schema"
)

type MockSchemaIdentifier struct {
	mock.Mock
}

func (c *MockSchemaIdentifier) DetermineID(
	ctx context.Context, subject string, avroSchemaText string,
) (id int, err error) {
	args := c.Called(ctx, subject, avroSchemaText)
	return args.Int(0), args.Error(1)
}

func TestSerdeOrderPlacedV1(t *testing.T) {

	t.Run("NoOpts", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(t.Context())
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("OneOpt", func(t *testing.T) {
		_, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SchemaIdentifierOpt(new(MockSchemaIdentifier)),
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, schema.ErrTooFewOpts)
	})

	t.Run("EncodeDecode", func(t *testing.T) {
		schemaIdentifier := new(MockSchemaIdentifier)
		subject := "orders.placed-value"

		schemaIdentifier.On(
			"DetermineID", t.Context(), subject, schema.OrderPlacedSchemaTextV1,
		).Return(1, nil)

		serde, err := schema.NewSerdeOrderPlacedV1(
			t.Context(),
			schema.SubjectOpt(subject),
			schema.SchemaIdentifierOpt(schemaIdentifier),
		)
		require.NoError(t, err)

		orderValue1 := schema.OrderPlacedV1{
			OrderID:       "ORD-AB12CD34",
			CartID:        "cart-1",
			CustomerName:  "Ana Souza",
			CustomerEmail: "ana@example.com",
			CustomerPhone: "5561999990000",
			City:          "Brasília",
			State:         "DF",
			PostalCode:    "70000-000",
			PaymentMethod: "Pix",
			Installments:  1,
			ItemCount:     3,
			Subtotal:      "250.00",
			Discount:      "25.00",
			Shipping:      "15.00",
			Total:         "240.00",
			PlacedAtMs:    1741977000000,
		}

		encodedData, err := serde.Encode(orderValue1)
		require.NoError(t, err)

		var orderValue2 schema.OrderPlacedV1
		err = serde.Decode(encodedData, &orderValue2)
		require.NoError(t, err)

		assert.Equal(t, orderValue1, orderValue2)
	})

}

func TestSerdeCatalogUpsertV1(t *testing.T) {
	schemaIdentifier := new(MockSchemaIdentifier)
	subject := "catalog.upserts-value"

	schemaIdentifier.On(
		"DetermineID", t.Context(), subject, schema.CatalogUpsertSchemaTextV1,
	).Return(2, nil)

	serde, err := schema.NewSerdeCatalogUpsertV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)

	productValue1 := schema.CatalogUpsertV1{
		ProductID:   "10",
		Name:        "Vestido Midi Preto",
		Category:    "vestidos",
		Gender:      "feminino",
		Subcategory: "midi",
		Brand:       "Atelier Sul",
		Material:    "crepe",
		Price:       "219.90",
		SalePrice:   "169.90",
		Rating:      4.2,
		ReviewCount: 19,
		Sizes:       []string{"P", "M", "G", "GG"},
		Colors:      []string{"Preto"},
		Image:       "https://cdn.example.com/10.jpg",
		IsPromo:     true,
		InStock:     true,
	}

	encodedData, err := serde.Encode(productValue1)
	require.NoError(t, err)

	var productValue2 schema.CatalogUpsertV1
	err = serde.Decode(encodedData, &productValue2)
	require.NoError(t, err)

	assert.Equal(t, productValue1, productValue2)
}

func TestSerdePromoFlagV1(t *testing.T) {
	schemaIdentifier := new(MockSchemaIdentifier)
	subject := "promo.flags-value"

	schemaIdentifier.On(
		"DetermineID", t.Context(), subject, schema.PromoFlagSchemaTextV1,
	).Return(3, nil)

	serde, err := schema.NewSerdePromoFlagV1(
		t.Context(),
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schemaIdentifier),
	)
	require.NoError(t, err)

	flag1 := schema.PromoFlagV1{ProductID: "2", OnSale: true}

	encodedData, err := serde.Encode(flag1)
	require.NoError(t, err)

	var flag2 schema.PromoFlagV1
	err = serde.Decode(encodedData, &flag2)
	require.NoError(t, err)

	assert.Equal(t, flag1, flag2)
}
