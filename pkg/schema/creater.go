package schema

import (
	"context"
	"fmt"

	"github.com/twmb/franz-go/pkg/sr"
)

// SchemaIdentifier resolves the registry ID to frame encoded values with.
type SchemaIdentifier interface {
	DetermineID(ctx context.Context, subject, avroSchemaText string) (int, error)
}

var _ SchemaIdentifier = (*SchemaCreater)(nil)

// SchemaCreater registers the schema under the subject and reuses the
// registry-assigned ID. Creating an already registered schema is
// idempotent on the registry side.
type SchemaCreater struct {
	client *sr.Client
}

func NewSchemaCreater(client *sr.Client) SchemaCreater {
	return SchemaCreater{client}
}

func (c SchemaCreater) DetermineID(
	ctx context.Context, subject, avroSchemaText string,
) (int, error) {
	const op = "SchemaCreater.DetermineID"

	ss, err := c.client.CreateSchema(ctx, subject, sr.Schema{
		Schema: avroSchemaText,
		Type:   sr.TypeAvro,
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return ss.ID, nil
}
