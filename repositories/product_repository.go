package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/softwrapstudio-web/Softwrap-Studio/config"
	"github.com/softwrapstudio-web/Softwrap-Studio/models"
)

var ErrInsufficientStock = errors.New("insufficient stock")

type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

func (r *ProductRepository) GetAllCategories() ([]models.Category, error) {
	query := `SELECT id, name, is_active, created_at FROM categories ORDER BY name`

	rows, err := config.DB.Query(context.Background(), query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var cat models.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, cat)
	}
	return categories, rows.Err()
}

func (r *ProductRepository) GetAllProducts(page, limit int, category string) ([]models.Product, int, error) {
	offset := (page - 1) * limit

	countQuery := `SELECT COUNT(*) FROM products WHERE is_active = true`
	listQuery := `SELECT id, title, description, category, price, stock, image_url, is_active, created_at, updated_at
	              FROM products WHERE is_active = true`

	countArgs := []interface{}{}
	listArgs := []interface{}{}
	if category != "" && category != "All" {
		countQuery += ` AND category = $1`
		listQuery += ` AND category = $1`
		countArgs = append(countArgs, category)
		listArgs = append(listArgs, category)
	}

	var total int
	if err := config.DB.QueryRow(context.Background(), countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	listQuery += fmt.Sprintf(` ORDER BY created_at DESC LIMIT $%d OFFSET $%d`, len(listArgs)+1, len(listArgs)+2)
	listArgs = append(listArgs, limit, offset)

	rows, err := config.DB.Query(context.Background(), listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Category, &p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *ProductRepository) GetProductByID(id int) (*models.Product, error) {
	query := `SELECT id, title, description, category, price, stock, image_url, is_active, created_at, updated_at
	          FROM products WHERE id = $1`

	var p models.Product
	err := config.DB.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Title, &p.Description, &p.Category, &p.Price, &p.Stock, &p.ImageURL, &p.IsActive, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) CreateProduct(product *models.Product) error {
	query := `
		INSERT INTO products (title, description, category, price, stock, image_url, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	return config.DB.QueryRow(context.Background(), query,
		product.Title, product.Description, product.Category, product.Price,
		product.Stock, product.ImageURL, product.IsActive, now, now,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)
}

func (r *ProductRepository) UpdateProduct(product *models.Product) error {
	query := `UPDATE products SET title = $1, description = $2, category = $3, price = $4,
	          stock = $5, image_url = $6, is_active = $7, updated_at = $8 WHERE id = $9`
	_, err := config.DB.Exec(context.Background(), query,
		product.Title, product.Description, product.Category, product.Price,
		product.Stock, product.ImageURL, product.IsActive, time.Now(), product.ID,
	)
	return err
}

func (r *ProductRepository) DeleteProduct(id int) error {
	query := `UPDATE products SET is_active = false WHERE id = $1`
	_, err := config.DB.Exec(context.Background(), query, id)
	return err
}

// DecrementStock reduces stock by quantity, refusing to go negative.
// Each call covers one product only; callers decrementing several lines
// get no transaction across them.
func (r *ProductRepository) DecrementStock(ctx context.Context, productID, quantity int) error {
	tag, err := config.DB.Exec(ctx,
		`UPDATE products SET stock = stock - $1, updated_at = $2 WHERE id = $3 AND stock >= $1`,
		quantity, time.Now(), productID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientStock
	}
	return nil
}
