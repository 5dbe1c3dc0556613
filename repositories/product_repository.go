package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"reboot-api/models"
)

const productColumns = "id, name, description, price, category, image, stock, condition, review_count, created_at, updated_at"

type ProductRepository struct {
	DB Store
}

func NewProductRepository(db Store) *ProductRepository {
	return &ProductRepository{DB: db}
}

// BuildProductQuery turns the parsed filters into SQL. Filters combine with
// AND; absent ones are omitted entirely rather than defaulted.
func BuildProductQuery(q models.ProductQuery) (string, []any) {
	query := "SELECT " + productColumns + " FROM products"
	conditions := []string{}
	args := []any{}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Category != "" {
		conditions = append(conditions, "category = "+arg(q.Category))
	}
	if q.Search != "" {
		p := arg("%" + q.Search + "%")
		conditions = append(conditions, fmt.Sprintf("(name ILIKE %s OR description ILIKE %s)", p, p))
	}
	if q.MinPrice != nil {
		conditions = append(conditions, "price >= "+arg(*q.MinPrice))
	}
	if q.MaxPrice != nil {
		conditions = append(conditions, "price <= "+arg(*q.MaxPrice))
	}
	if q.Condition != "" {
		conditions = append(conditions, "condition = "+arg(q.Condition))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch q.Sort {
	case "price_low":
		query += " ORDER BY price ASC"
	case "price_high":
		query += " ORDER BY price DESC"
	case "popular":
		query += " ORDER BY review_count DESC"
	default: // newest
		query += " ORDER BY created_at DESC"
	}

	return query, args
}

func (r *ProductRepository) List(ctx context.Context, q models.ProductQuery) ([]models.Product, error) {
	query, args := BuildProductQuery(q)

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	row := r.DB.QueryRow(ctx, "SELECT "+productColumns+" FROM products WHERE id = $1", id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Create(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	stock := 0
	if req.Stock != nil {
		stock = *req.Stock
	}

	now := time.Now()
	row := r.DB.QueryRow(ctx,
		`INSERT INTO products (name, description, price, category, image, stock, condition, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		 RETURNING `+productColumns,
		*req.Name, *req.Description, *req.Price, req.Category, req.Image, stock, req.Condition, now)

	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, req models.UpdateProductRequest) (*models.Product, error) {
	b := &UpdateBuilder{}
	if req.Name != nil {
		b.Set("name", *req.Name)
	}
	if req.Description != nil {
		b.Set("description", *req.Description)
	}
	if req.Price != nil {
		b.Set("price", *req.Price)
	}
	if req.Category != nil {
		b.Set("category", *req.Category)
	}
	if req.Image != nil {
		b.Set("image", *req.Image)
	}
	if req.Stock != nil {
		b.Set("stock", *req.Stock)
	}
	if req.Condition != nil {
		b.Set("condition", *req.Condition)
	}

	query, args := b.SQL("products", "id", id, productColumns)
	p, err := scanProduct(r.DB.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, id string, stock int) (*models.Product, error) {
	row := r.DB.QueryRow(ctx,
		"UPDATE products SET stock = $1, updated_at = $2 WHERE id = $3 RETURNING "+productColumns,
		stock, time.Now(), id)
	p, err := scanProduct(row)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes the product's variants and specifications before the product
// itself; the store does not cascade. All three statements share one
// transaction so a failed parent delete rolls the children back.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM product_variants WHERE product_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM product_specifications WHERE product_id = $1", id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, "DELETE FROM products WHERE id = $1", id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func scanProduct(row pgx.Row) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &p.Image,
		&p.Stock, &p.Condition, &p.ReviewCount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}
