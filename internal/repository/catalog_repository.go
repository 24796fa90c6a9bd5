package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"pc-park/internal/catalog"
	"pc-park/internal/domain"
)

// CatalogRepository is a Postgres-backed catalog.Source that can be seeded.
type CatalogRepository interface {
	catalog.Source
	Seed(ctx context.Context, products []domain.Product, stubs []domain.BundleStub, rules []domain.DiscountRule) error
}

type catalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a new instance of CatalogRepository
func NewCatalogRepository(db *sql.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

const productColumns = `id, name, description, price, image, emoji, category, subcategory, brand, compatibility, stock`

// ListProducts returns every product in catalog order
func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY position, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a product by ID; found is false when it does not exist
func (r *catalogRepository) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return p, true, nil
}

// ListDiscountRules returns all discount rules
func (r *catalogRepository) ListDiscountRules(ctx context.Context) ([]domain.DiscountRule, error) {
	query := `
		SELECT d.product_id, d.discount_percent, d.expires_at
		FROM discount_rules d
		JOIN products p ON p.id = d.product_id
		ORDER BY p.position
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list discount rules: %w", err)
	}
	defer rows.Close()

	rules := []domain.DiscountRule{}
	for rows.Next() {
		var rule domain.DiscountRule
		if err := rows.Scan(&rule.ProductID, &rule.DiscountPercent, &rule.Expiry); err != nil {
			return nil, fmt.Errorf("failed to scan discount rule: %w", err)
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating discount rules: %w", err)
	}

	return rules, nil
}

// ListBundleStubs returns bundle definitions with their product ids in
// declared order
func (r *catalogRepository) ListBundleStubs(ctx context.Context) ([]domain.BundleStub, error) {
	query := `
		SELECT id, name, description, discounted_price, deal_type, ends_at, featured_image_url, code
		FROM bundles
		ORDER BY position, id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundles: %w", err)
	}
	defer rows.Close()

	stubs := []domain.BundleStub{}
	index := map[string]int{}
	for rows.Next() {
		var (
			stub   domain.BundleStub
			endsAt sql.NullTime
		)
		err := rows.Scan(
			&stub.ID,
			&stub.Name,
			&stub.Description,
			&stub.DiscountedPrice,
			&stub.DealType,
			&endsAt,
			&stub.FeaturedImageURL,
			&stub.Code,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bundle: %w", err)
		}
		if endsAt.Valid {
			stub.EndsAt = endsAt.Time
		}
		stub.ProductIDs = []string{}
		index[stub.ID] = len(stubs)
		stubs = append(stubs, stub)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bundles: %w", err)
	}

	memberRows, err := r.db.QueryContext(ctx, `SELECT bundle_id, product_id FROM bundle_products ORDER BY bundle_id, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list bundle products: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var bundleID, productID string
		if err := memberRows.Scan(&bundleID, &productID); err != nil {
			return nil, fmt.Errorf("failed to scan bundle product: %w", err)
		}
		if i, ok := index[bundleID]; ok {
			stubs[i].ProductIDs = append(stubs[i].ProductIDs, productID)
		}
	}

	if err = memberRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bundle products: %w", err)
	}

	return stubs, nil
}

// Seed upserts the given catalog in a single transaction. Slice order
// becomes catalog order.
func (r *catalogRepository) Seed(ctx context.Context, products []domain.Product, stubs []domain.BundleStub, rules []domain.DiscountRule) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, p := range products {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO products (id, position, name, description, price, image, emoji, category, subcategory, brand, compatibility, stock)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			ON CONFLICT (id) DO UPDATE
			SET position = EXCLUDED.position, name = EXCLUDED.name, description = EXCLUDED.description,
			    price = EXCLUDED.price, image = EXCLUDED.image, emoji = EXCLUDED.emoji,
			    category = EXCLUDED.category, subcategory = EXCLUDED.subcategory, brand = EXCLUDED.brand,
			    compatibility = EXCLUDED.compatibility, stock = EXCLUDED.stock
		`,
			p.ID, i, p.Name, p.Description, p.Price, p.Image, p.Emoji,
			p.Category, p.Subcategory, p.Brand, joinCompatibility(p.Compatibility), p.Stock,
		)
		if err != nil {
			return fmt.Errorf("failed to seed product %s: %w", p.ID, err)
		}
	}

	for _, rule := range rules {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO discount_rules (product_id, discount_percent, expires_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (product_id) DO UPDATE
			SET discount_percent = EXCLUDED.discount_percent, expires_at = EXCLUDED.expires_at
		`, rule.ProductID, rule.DiscountPercent, rule.Expiry)
		if err != nil {
			return fmt.Errorf("failed to seed discount rule for %s: %w", rule.ProductID, err)
		}
	}

	for i, stub := range stubs {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bundles (id, position, name, description, discounted_price, deal_type, ends_at, featured_image_url, code)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (id) DO UPDATE
			SET position = EXCLUDED.position, name = EXCLUDED.name, description = EXCLUDED.description,
			    discounted_price = EXCLUDED.discounted_price, deal_type = EXCLUDED.deal_type,
			    ends_at = EXCLUDED.ends_at, featured_image_url = EXCLUDED.featured_image_url, code = EXCLUDED.code
		`,
			stub.ID, i, stub.Name, stub.Description, stub.DiscountedPrice, string(stub.DealType),
			nullTime(stub.EndsAt), stub.FeaturedImageURL, stub.Code,
		)
		if err != nil {
			return fmt.Errorf("failed to seed bundle %s: %w", stub.ID, err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM bundle_products WHERE bundle_id = $1`, stub.ID); err != nil {
			return fmt.Errorf("failed to reset bundle products for %s: %w", stub.ID, err)
		}

		for pos, productID := range stub.ProductIDs {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO bundle_products (bundle_id, position, product_id) VALUES ($1, $2, $3)`,
				stub.ID, pos, productID,
			)
			if err != nil {
				return fmt.Errorf("failed to seed bundle product %s/%s: %w", stub.ID, productID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var (
		p             domain.Product
		compatibility string
	)
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.Image,
		&p.Emoji,
		&p.Category,
		&p.Subcategory,
		&p.Brand,
		&compatibility,
		&p.Stock,
	)
	if err != nil {
		return domain.Product{}, err
	}

	p.Compatibility = splitCompatibility(compatibility)
	return p, nil
}

func joinCompatibility(tags []string) string {
	return strings.Join(tags, ",")
}

func splitCompatibility(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}

func nullTime(t time.Time) sql.NullTime {
	return sql.NullTime{Time: t, Valid: !t.IsZero()}
}
