package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"

	"github.com/google/uuid"
)

const inquirySelect = `SELECT q.id, q.listing_id, q.seeker_id, q.name, q.email, COALESCE(q.phone, ''), q.message,
	q.visit_date, q.sharing_tier_id, q.status, COALESCE(q.response, ''), q.created_at, q.updated_at,
	l.title, l.kind, l.location, l.owner_id,
	COALESCE((SELECT i.url FROM listing_images i WHERE i.listing_id = l.id ORDER BY i.is_main DESC, i.position LIMIT 1), ''),
	u.name, u.email, COALESCE(u.phone, '')
	FROM inquiries q
	JOIN listings l ON l.id = q.listing_id
	JOIN users u ON u.id = l.owner_id`

type inquiryRepository struct {
	db *sql.DB
}

func NewInquiryRepository(db *sql.DB) repository.InquiryRepository {
	return &inquiryRepository{db: db}
}

func scanInquiry(s rowScanner) (*domain.Inquiry, error) {
	q := &domain.Inquiry{Listing: &domain.InquiryListing{}}
	var seekerID, tierID sql.NullString
	var visit sql.NullTime
	l := q.Listing
	err := s.Scan(&q.ID, &q.ListingID, &seekerID, &q.Name, &q.Email, &q.Phone, &q.Message,
		&visit, &tierID, &q.Status, &q.Response, &q.CreatedAt, &q.UpdatedAt,
		&l.Title, &l.Kind, &l.Location, &l.OwnerID, &l.MainImageURL,
		&l.Owner.Name, &l.Owner.Email, &l.Owner.Phone)
	if err != nil {
		return nil, err
	}
	l.ID = q.ListingID
	if seekerID.Valid {
		q.SeekerID = &seekerID.String
	}
	if tierID.Valid {
		q.SharingTierID = &tierID.String
	}
	if visit.Valid {
		q.VisitDate = &visit.Time
	}
	return q, nil
}

func (r *inquiryRepository) Create(ctx context.Context, q *domain.Inquiry) error {
	logger.EnterMethod("inquiryRepository.Create", "listingID", q.ListingID)

	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now

	query := `INSERT INTO inquiries (id, listing_id, seeker_id, name, email, phone, message, visit_date, sharing_tier_id, status, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.db.ExecContext(ctx, query, q.ID, q.ListingID, q.SeekerID, q.Name, q.Email, q.Phone, q.Message,
		q.VisitDate, q.SharingTierID, q.Status, q.CreatedAt, q.UpdatedAt)
	if err != nil {
		logger.ExitMethodWithError("inquiryRepository.Create", err, "listingID", q.ListingID)
		return mapError("inquiry.create", "listing", err)
	}

	logger.ExitMethod("inquiryRepository.Create", "inquiryID", q.ID)
	return nil
}

func (r *inquiryRepository) GetByID(ctx context.Context, id string) (*domain.Inquiry, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound("inquiry")
	}
	q, err := scanInquiry(r.db.QueryRowContext(ctx, inquirySelect+` WHERE q.id = $1`, id))
	if err != nil {
		return nil, mapError("inquiry.get", "inquiry", err)
	}
	return q, nil
}

func (r *inquiryRepository) Update(ctx context.Context, q *domain.Inquiry) error {
	q.UpdatedAt = time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `UPDATE inquiries SET status = $1, response = $2, updated_at = $3 WHERE id = $4`,
		q.Status, q.Response, q.UpdatedAt, q.ID)
	if err != nil {
		return mapError("inquiry.update", "inquiry", err)
	}
	return expectRows("inquiry.update", "inquiry", res)
}

func (r *inquiryRepository) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.NotFound("inquiry")
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM inquiries WHERE id = $1`, id)
	if err != nil {
		return mapError("inquiry.delete", "inquiry", err)
	}
	return expectRows("inquiry.delete", "inquiry", res)
}

// ListForSeeker matches on seeker id, falling back to the contact email for
// rows that predate seeker ids.
func (r *inquiryRepository) ListForSeeker(ctx context.Context, seekerID, email string, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	p := &predicates{}
	p.and("(q.seeker_id = " + p.arg(seekerID) + " OR (q.seeker_id IS NULL AND LOWER(q.email) = LOWER(" + p.arg(email) + ")))")
	return r.list(ctx, "inquiry.list_seeker", p, f)
}

func (r *inquiryRepository) ListForOwner(ctx context.Context, ownerID string, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	p := &predicates{}
	p.and("l.owner_id = " + p.arg(ownerID))
	return r.list(ctx, "inquiry.list_owner", p, f)
}

func (r *inquiryRepository) ListAll(ctx context.Context, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	return r.list(ctx, "inquiry.list_all", &predicates{}, f)
}

func (r *inquiryRepository) list(ctx context.Context, op string, p *predicates, f domain.InquiryFilter) ([]domain.Inquiry, int32, error) {
	if f.Status != "" {
		p.and("q.status = " + p.arg(string(f.Status)))
	}
	where := p.where()

	var total int32
	countQuery := `SELECT count(*) FROM inquiries q JOIN listings l ON l.id = q.listing_id` + where
	if err := r.db.QueryRowContext(ctx, countQuery, p.args...).Scan(&total); err != nil {
		return nil, 0, mapError(op, "inquiry", err)
	}

	var sb strings.Builder
	sb.WriteString(inquirySelect)
	sb.WriteString(where)
	sb.WriteString(" ORDER BY q.created_at DESC")
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		sb.WriteString(" LIMIT " + p.arg(f.PageSize) + " OFFSET " + p.arg((page-1)*f.PageSize))
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), p.args...)
	if err != nil {
		return nil, 0, mapError(op, "inquiry", err)
	}
	defer rows.Close()

	inquiries := []domain.Inquiry{}
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, 0, mapError(op, "inquiry", err)
		}
		inquiries = append(inquiries, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, mapError(op, "inquiry", err)
	}
	return inquiries, total, nil
}

// PendingByOwner groups PENDING inquiries filed before olderThan by owner.
func (r *inquiryRepository) PendingByOwner(ctx context.Context, olderThan time.Time) ([]domain.OwnerInquiryDigest, error) {
	query := `SELECT u.id, u.name, u.email, count(*)
	          FROM inquiries q
	          JOIN listings l ON l.id = q.listing_id
	          JOIN users u ON u.id = l.owner_id
	          WHERE q.status = 'PENDING' AND q.created_at <= $1
	          GROUP BY u.id, u.name, u.email
	          ORDER BY count(*) DESC`
	rows, err := r.db.QueryContext(ctx, query, olderThan)
	if err != nil {
		return nil, mapError("inquiry.pending_by_owner", "inquiry", err)
	}
	defer rows.Close()

	var digests []domain.OwnerInquiryDigest
	for rows.Next() {
		var d domain.OwnerInquiryDigest
		if err := rows.Scan(&d.OwnerID, &d.OwnerName, &d.OwnerEmail, &d.PendingCount); err != nil {
			return nil, mapError("inquiry.pending_by_owner", "inquiry", err)
		}
		digests = append(digests, d)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("inquiry.pending_by_owner", "inquiry", err)
	}
	return digests, nil
}
