package postgres

import (
	"context"
	"database/sql"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/repository"
)

const popularLocationLimit = 5

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Dashboard(ctx context.Context) (*domain.DashboardStats, error) {
	stats := &domain.DashboardStats{
		Listings:  domain.ListingStats{ByKind: map[domain.ListingKind]int32{}, PopularLocations: []domain.LocationCount{}},
		Users:     domain.UserStats{ByRole: map[domain.UserRole]int32{}},
		Inquiries: domain.InquiryStats{ByStatus: map[domain.InquiryStatus]int32{}},
	}

	err := r.db.QueryRowContext(ctx,
		`SELECT count(*), count(*) FILTER (WHERE status = 'ACTIVE') FROM listings`,
	).Scan(&stats.Listings.TotalListings, &stats.Listings.ActiveListings)
	if err != nil {
		return nil, mapError("stats.listings", "stats", err)
	}

	err = r.groupCounts(ctx, `SELECT kind, count(*) FROM listings GROUP BY kind`, func(key string, n int32) {
		stats.Listings.ByKind[domain.ListingKind(key)] = n
	})
	if err != nil {
		return nil, err
	}

	err = r.groupCounts(ctx,
		`SELECT COALESCE(NULLIF(city, ''), location), count(*) FROM listings
		 GROUP BY 1 ORDER BY count(*) DESC, 1 LIMIT $1`,
		func(key string, n int32) {
			stats.Listings.PopularLocations = append(stats.Listings.PopularLocations, domain.LocationCount{Name: key, Count: n})
		}, popularLocationLimit)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT count(*), count(*) FILTER (WHERE status = 'BLOCKED') FROM users`,
	).Scan(&stats.Users.TotalUsers, &stats.Users.BlockedUsers)
	if err != nil {
		return nil, mapError("stats.users", "stats", err)
	}

	err = r.groupCounts(ctx, `SELECT role, count(*) FROM users GROUP BY role`, func(key string, n int32) {
		stats.Users.ByRole[domain.UserRole(key)] = n
	})
	if err != nil {
		return nil, err
	}

	err = r.groupCounts(ctx, `SELECT status, count(*) FROM inquiries GROUP BY status`, func(key string, n int32) {
		stats.Inquiries.ByStatus[domain.InquiryStatus(key)] = n
		stats.Inquiries.TotalInquiries += n
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *statsRepository) groupCounts(ctx context.Context, query string, add func(key string, n int32), args ...interface{}) error {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return mapError("stats.group", "stats", err)
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var n int32
		if err := rows.Scan(&key, &n); err != nil {
			return mapError("stats.group", "stats", err)
		}
		add(key, n)
	}
	return mapError("stats.group", "stats", rows.Err())
}

// RecentActivity merges the newest perKind users, listings and inquiries
// into one feed.
func (r *statsRepository) RecentActivity(ctx context.Context, perKind int) ([]domain.Activity, error) {
	query := `SELECT type, title, detail, created_at FROM (
	            (SELECT 'USER' AS type, name AS title, email AS detail, created_at FROM users
	             ORDER BY created_at DESC LIMIT $1)
	            UNION ALL
	            (SELECT 'LISTING', title, kind || ' in ' || location, created_at FROM listings
	             ORDER BY created_at DESC LIMIT $1)
	            UNION ALL
	            (SELECT 'INQUIRY', q.name, l.title, q.created_at FROM inquiries q JOIN listings l ON l.id = q.listing_id
	             ORDER BY q.created_at DESC LIMIT $1)
	          ) feed ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, perKind)
	if err != nil {
		return nil, mapError("stats.recent_activity", "stats", err)
	}
	defer rows.Close()

	feed := []domain.Activity{}
	for rows.Next() {
		var a domain.Activity
		if err := rows.Scan(&a.Type, &a.Title, &a.Detail, &a.CreatedAt); err != nil {
			return nil, mapError("stats.recent_activity", "stats", err)
		}
		feed = append(feed, a)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("stats.recent_activity", "stats", err)
	}
	return feed, nil
}
