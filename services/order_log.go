package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Theo524/Simple-User-based-Restaurant-order-system/db"
	"github.com/Theo524/Simple-User-based-Restaurant-order-system/models"
)

// OrderLog journals placed orders outside the user file.
type OrderLog interface {
	RecordOrder(ctx context.Context, r *models.Receipt) error
	RecentOrders(ctx context.Context, username string, limit int) ([]models.Receipt, error)
}

// NopOrderLog is used when no database is configured.
type NopOrderLog struct{}

func (NopOrderLog) RecordOrder(context.Context, *models.Receipt) error { return nil }

func (NopOrderLog) RecentOrders(context.Context, string, int) ([]models.Receipt, error) {
	return nil, nil
}

// PgOrderLog writes to the orders table through db.Pool.
type PgOrderLog struct{}

func (PgOrderLog) RecordOrder(ctx context.Context, r *models.Receipt) error {
	return RecordOrder(ctx, r)
}

func (PgOrderLog) RecentOrders(ctx context.Context, username string, limit int) ([]models.Receipt, error) {
	return ListRecentOrders(ctx, username, limit)
}

func RecordOrder(ctx context.Context, r *models.Receipt) error {
	itemsJSON, err := json.Marshal(r.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal order items: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
		INSERT INTO orders (id, username, items, total, balance_after, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		r.ID, r.Username, itemsJSON, r.Total, r.Balance, r.PlacedAt,
	)
	return err
}

func ListRecentOrders(ctx context.Context, username string, limit int) ([]models.Receipt, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT id, username, items, total, balance_after, placed_at
		FROM orders
		WHERE username = $1
		ORDER BY placed_at DESC
		LIMIT $2`,
		username, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []models.Receipt
	for rows.Next() {
		var r models.Receipt
		var itemsJSON []byte
		if err := rows.Scan(&r.ID, &r.Username, &itemsJSON, &r.Total, &r.Balance, &r.PlacedAt); err != nil {
			return nil, err
		}
		if len(itemsJSON) > 0 {
			if err := json.Unmarshal(itemsJSON, &r.Items); err != nil {
				return nil, fmt.Errorf("failed to unmarshal order items: %w", err)
			}
		}
		list = append(list, r)
	}
	return list, rows.Err()
}
