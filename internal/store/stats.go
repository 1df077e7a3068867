package store

import (
	"database/sql"
	"fmt"
)

// StatsStore aggregates order history for the dashboard overview and the
// statistics charts. Cancelled orders are excluded from revenue figures.
type StatsStore struct {
	db *sql.DB
}

func NewStatsStore(db *sql.DB) *StatsStore {
	return &StatsStore{db: db}
}

type Overview struct {
	TotalOrders   int     `json:"totalOrders"`
	Revenue       float64 `json:"revenue"`
	ActiveTables  int     `json:"activeTables"`
	TodayOrders   int     `json:"todayOrders"`
	TodayRevenue  float64 `json:"todayRevenue"`
	PendingOrders int     `json:"pendingOrders"`
}

func (s *StatsStore) Overview() (*Overview, error) {
	var o Overview

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status != 'cancelled' THEN total ELSE 0 END), 0) FROM orders`,
	).Scan(&o.TotalOrders, &o.Revenue)
	if err != nil {
		return nil, fmt.Errorf("overview totals: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(CASE WHEN status != 'cancelled' THEN total ELSE 0 END), 0)
		 FROM orders WHERE date(timestamp) = date('now')`,
	).Scan(&o.TodayOrders, &o.TodayRevenue)
	if err != nil {
		return nil, fmt.Errorf("overview today: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM orders WHERE status = 'pending'`).Scan(&o.PendingOrders)
	if err != nil {
		return nil, fmt.Errorf("overview pending: %w", err)
	}

	err = s.db.QueryRow(`SELECT COUNT(*) FROM qr_codes`).Scan(&o.ActiveTables)
	if err != nil {
		return nil, fmt.Errorf("overview tables: %w", err)
	}

	return &o, nil
}

type ItemStat struct {
	Name    string  `json:"name"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// MostOrdered returns the top menu items by units sold across all
// non-cancelled orders.
func (s *StatsStore) MostOrdered(limit int) ([]ItemStat, error) {
	rows, err := s.db.Query(
		`SELECT oi.name, SUM(oi.quantity), SUM(oi.quantity * oi.price)
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.status != 'cancelled'
		 GROUP BY oi.name
		 ORDER BY SUM(oi.quantity) DESC, oi.name ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("most ordered: %w", err)
	}
	defer rows.Close()

	var stats []ItemStat
	for rows.Next() {
		var st ItemStat
		if err := rows.Scan(&st.Name, &st.Orders, &st.Revenue); err != nil {
			return nil, fmt.Errorf("scan item stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

type CategoryStat struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CategoryDistribution returns units sold per category.
func (s *StatsStore) CategoryDistribution() ([]CategoryStat, error) {
	rows, err := s.db.Query(
		`SELECT oi.category, SUM(oi.quantity)
		 FROM order_items oi
		 JOIN orders o ON o.id = oi.order_id
		 WHERE o.status != 'cancelled'
		 GROUP BY oi.category
		 ORDER BY SUM(oi.quantity) DESC, oi.category ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("category distribution: %w", err)
	}
	defer rows.Close()

	var stats []CategoryStat
	for rows.Next() {
		var st CategoryStat
		if err := rows.Scan(&st.Name, &st.Value); err != nil {
			return nil, fmt.Errorf("scan category stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}

type DayStat struct {
	Date    string  `json:"date"` // YYYY-MM-DD
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// DailyTrends returns per-day order counts and revenue for the trailing
// window, oldest day first. Days without orders are omitted.
func (s *StatsStore) DailyTrends(days int) ([]DayStat, error) {
	rows, err := s.db.Query(
		`SELECT date(timestamp), COUNT(*), COALESCE(SUM(CASE WHEN status != 'cancelled' THEN total ELSE 0 END), 0)
		 FROM orders
		 WHERE timestamp >= datetime('now', ?)
		 GROUP BY date(timestamp)
		 ORDER BY date(timestamp) ASC`,
		fmt.Sprintf("-%d days", days),
	)
	if err != nil {
		return nil, fmt.Errorf("daily trends: %w", err)
	}
	defer rows.Close()

	var stats []DayStat
	for rows.Next() {
		var st DayStat
		if err := rows.Scan(&st.Date, &st.Orders, &st.Revenue); err != nil {
			return nil, fmt.Errorf("scan day stat: %w", err)
		}
		stats = append(stats, st)
	}
	return stats, rows.Err()
}
