package store

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// WishlistItem is a desired item with its picture.
type WishlistItem struct {
	Title     string           `json:"title"`
	ImagePath string           `json:"image_path"`
	Price     *decimal.Decimal `json:"price,omitempty"`
}

// NormalizeImagePath rewrites a client path with forward slashes.
func NormalizeImagePath(p string) string {
	p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
	if p == "" {
		return ""
	}
	return path.Clean(p)
}

// priceLimit is the first value numeric(12,2) cannot hold.
var priceLimit = decimal.New(1, 10)

func priceArg(p *decimal.Decimal) (any, error) {
	if p == nil {
		return nil, nil
	}
	if p.IsNegative() {
		return nil, fmt.Errorf("price cannot be negative: %w", ErrInvalid)
	}
	if p.Round(2).GreaterThanOrEqual(priceLimit) {
		return nil, fmt.Errorf("price %s is too large: %w", p, ErrInvalid)
	}
	return p.StringFixed(2), nil
}

func (s *Store) AddWish(ctx context.Context, item WishlistItem) (int, error) {
	title, err := required("title", item.Title)
	if err != nil {
		return 0, err
	}
	image, err := required("image_path", NormalizeImagePath(item.ImagePath))
	if err != nil {
		return 0, err
	}
	price, err := priceArg(item.Price)
	if err != nil {
		return 0, err
	}

	var id int
	err = s.pool.QueryRow(ctx, `
		INSERT INTO wishlist (title, image_path, price) VALUES ($1, $2, $3::text::numeric)
		RETURNING id`, title, image, price).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("add wishlist item: %w", err)
	}
	return id, nil
}

func (s *Store) ListWishes(ctx context.Context) ([]WishlistItem, error) {
	rows, err := s.pool.Query(ctx, `SELECT title, image_path, price::text FROM wishlist ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list wishlist: %w", err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (WishlistItem, error) {
		var it WishlistItem
		var price *string
		if err := row.Scan(&it.Title, &it.ImagePath, &price); err != nil {
			return it, err
		}
		if price != nil {
			d, err := decimal.NewFromString(*price)
			if err != nil {
				return it, fmt.Errorf("price of %q: %w", it.Title, err)
			}
			it.Price = &d
		}
		return it, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan wishlist: %w", err)
	}
	return items, nil
}

// WishImage returns the stored image path of the item titled title.
func (s *Store) WishImage(ctx context.Context, title string) (string, error) {
	var image string
	err := s.pool.QueryRow(ctx, `SELECT image_path FROM wishlist WHERE title = $1 ORDER BY id LIMIT 1`, title).Scan(&image)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("wishlist item %q: %w", title, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("get wishlist item %q: %w", title, err)
	}
	return image, nil
}

func (s *Store) RemoveWish(ctx context.Context, title string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM wishlist WHERE title = $1`, title)
	if err != nil {
		return fmt.Errorf("remove wishlist item: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("wishlist item %q", title))
}

// UpdateWish replaces title, image and price of the item titled oldTitle.
func (s *Store) UpdateWish(ctx context.Context, oldTitle string, item WishlistItem) error {
	title, err := required("new_title", item.Title)
	if err != nil {
		return err
	}
	image, err := required("new_image_path", NormalizeImagePath(item.ImagePath))
	if err != nil {
		return err
	}
	price, err := priceArg(item.Price)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE wishlist SET title = $1, image_path = $2, price = $3::text::numeric
		WHERE title = $4`, title, image, price, oldTitle)
	if err != nil {
		return fmt.Errorf("update wishlist item: %w", err)
	}
	return expectOne(tag, fmt.Sprintf("wishlist item %q", oldTitle))
}
