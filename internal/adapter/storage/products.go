package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/finaestampa/storefront/internal/core/domain"
	"github.com/finaestampa/storefront/internal/core/port"
)

var _ port.CatalogRepository = (*ProductsRepository)(nil)

type ProductsRepository struct {
	sqldb sqldb
}

func NewProductsRepository(sqldb sqldb) ProductsRepository {
	return ProductsRepository{sqldb}
}

func (r ProductsRepository) UpsertProducts(
	ctx context.Context, vs []domain.Product,
) (storeErr error) {
	const op = "ProductsRepository.UpsertProducts"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to begin tx: %w", op, err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("%s: failed to commit: %w", op, err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO products (
			product_id, name, category, gender, subcategory,
			brand, material, price, sale_price, rating,
			review_count, sizes, colors, image,
			is_new, is_promo, in_stock, free_ship
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18
		)
		ON CONFLICT (product_id) DO UPDATE SET
			name = EXCLUDED.name,
			category = EXCLUDED.category,
			gender = EXCLUDED.gender,
			subcategory = EXCLUDED.subcategory,
			brand = EXCLUDED.brand,
			material = EXCLUDED.material,
			price = EXCLUDED.price,
			sale_price = EXCLUDED.sale_price,
			rating = EXCLUDED.rating,
			review_count = EXCLUDED.review_count,
			sizes = EXCLUDED.sizes,
			colors = EXCLUDED.colors,
			image = EXCLUDED.image,
			is_new = EXCLUDED.is_new,
			is_promo = EXCLUDED.is_promo,
			in_stock = EXCLUDED.in_stock,
			free_ship = EXCLUDED.free_ship;
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("%s: failed to prepare stmt: %w", op, err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	for _, v := range vs {
		sizesB, _ := json.Marshal(v.Sizes)
		colorsB, _ := json.Marshal(v.Colors)
		_, err := stmt.ExecContext(ctx,
			v.ProductID, v.Name, v.Category, v.Gender, v.Subcategory,
			v.Brand, v.Material, v.Price, v.SalePrice, v.Rating,
			v.ReviewCount, string(sizesB), string(colorsB), v.Image,
			v.IsNew, v.IsPromo, v.InStock, v.FreeShip,
		)
		if err != nil {
			return fmt.Errorf("%s: failed to exec: %w", op, err)
		}
	}

	return nil
}

func (r ProductsRepository) ListProducts(
	ctx context.Context,
) ([]domain.Product, error) {
	const op = "ProductsRepository.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := `
		SELECT
			product_id, name, category, gender, subcategory,
			brand, material, price, sale_price, rating,
			review_count, sizes, colors, image,
			is_new, is_promo, in_stock, free_ship
		FROM products
		ORDER BY product_id ASC;`

	rows, err := r.sqldb.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var vs []domain.Product
	for rows.Next() {
		var v domain.Product
		var sizesS, colorsS string
		err := rows.Scan(
			&v.ProductID, &v.Name, &v.Category, &v.Gender, &v.Subcategory,
			&v.Brand, &v.Material, &v.Price, &v.SalePrice, &v.Rating,
			&v.ReviewCount, &sizesS, &colorsS, &v.Image,
			&v.IsNew, &v.IsPromo, &v.InStock, &v.FreeShip,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}

		if err := json.Unmarshal([]byte(sizesS), &v.Sizes); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if err := json.Unmarshal([]byte(colorsS), &v.Colors); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		vs = append(vs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return vs, nil
}

func (r ProductsRepository) DeleteProduct(
	ctx context.Context, productID string,
) error {
	const op = "ProductsRepository.DeleteProduct"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	res, err := r.sqldb.ExecContext(
		ctx, `DELETE FROM products WHERE product_id = $1;`, productID,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
