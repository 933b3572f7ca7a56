package postgres

import (
	"context"
	"database/sql"
	"time"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

const listingColumns = `l.id, l.owner_id, l.title, l.description, l.kind, l.status, l.location,
	COALESCE(l.formatted_address, ''), COALESCE(l.street, ''), COALESCE(l.city, ''), COALESCE(l.state, ''), COALESCE(l.postal_code, ''),
	l.latitude, l.longitude, l.furnished, l.rooms, l.bathrooms, l.amenities, l.rules, l.available_from, l.price,
	(SELECT count(*) FROM inquiries q WHERE q.listing_id = l.id), l.created_at, l.updated_at`

type listingRepository struct {
	db *sql.DB
}

func NewListingRepository(db *sql.DB) repository.ListingRepository {
	return &listingRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(s rowScanner) (*domain.Listing, error) {
	l := &domain.Listing{}
	var addr domain.Address
	var lat, lng sql.NullFloat64
	err := s.Scan(&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Kind, &l.Status, &l.Location,
		&l.FormattedAddress, &addr.Street, &addr.City, &addr.State, &addr.PostalCode,
		&lat, &lng, &l.Furnished, &l.Rooms, &l.Bathrooms, pq.Array(&l.Amenities), pq.Array(&l.Rules),
		&l.AvailableFrom, &l.Price, &l.InquiryCount, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if !addr.Empty() {
		l.Address = &addr
	}
	if lat.Valid {
		l.Latitude = &lat.Float64
	}
	if lng.Valid {
		l.Longitude = &lng.Float64
	}
	if l.Amenities == nil {
		l.Amenities = []string{}
	}
	if l.Rules == nil {
		l.Rules = []string{}
	}
	l.Tiers = []domain.SharingTier{}
	l.Images = []domain.Image{}
	return l, nil
}

func addressOf(l *domain.Listing) domain.Address {
	if l.Address == nil {
		return domain.Address{}
	}
	return *l.Address
}

func (r *listingRepository) Create(ctx context.Context, l *domain.Listing) error {
	logger.EnterMethod("listingRepository.Create", "ownerID", l.OwnerID, "kind", l.Kind)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("listing.create", "listing", err)
	}
	defer tx.Rollback()

	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	addr := addressOf(l)

	query := `INSERT INTO listings (id, owner_id, title, description, kind, status, location, formatted_address,
	          street, city, state, postal_code, latitude, longitude, furnished, rooms, bathrooms, amenities, rules,
	          available_from, price, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)`
	_, err = tx.ExecContext(ctx, query, l.ID, l.OwnerID, l.Title, l.Description, l.Kind, l.Status, l.Location, l.FormattedAddress,
		addr.Street, addr.City, addr.State, addr.PostalCode, l.Latitude, l.Longitude, l.Furnished, l.Rooms, l.Bathrooms,
		pq.Array(l.Amenities), pq.Array(l.Rules), l.AvailableFrom, l.Price, l.CreatedAt, l.UpdatedAt)
	if err != nil {
		logger.ExitMethodWithError("listingRepository.Create", err, "ownerID", l.OwnerID)
		return mapError("listing.create", "owner", err)
	}

	if err := insertChildren(ctx, tx, l); err != nil {
		logger.ExitMethodWithError("listingRepository.Create", err, "listingID", l.ID)
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError("listing.create", "listing", err)
	}

	logger.ExitMethod("listingRepository.Create", "listingID", l.ID)
	return nil
}

// insertChildren writes tiers and images for l. Ids are assigned here.
func insertChildren(ctx context.Context, tx *sql.Tx, l *domain.Listing) error {
	for i := range l.Tiers {
		t := &l.Tiers[i]
		t.ID = uuid.NewString()
		t.ListingID = l.ID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO sharing_tiers (id, listing_id, persons_per_room, price_per_person, available_beds, total_beds)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			t.ID, t.ListingID, t.PersonsPerRoom, t.PricePerPerson, t.AvailableBeds, t.TotalBeds)
		if err != nil {
			return mapError("listing.insert_tier", "listing", err)
		}
	}
	for i := range l.Images {
		img := &l.Images[i]
		img.ID = uuid.NewString()
		img.ListingID = l.ID
		_, err := tx.ExecContext(ctx,
			`INSERT INTO listing_images (id, listing_id, url, public_id, is_main, position)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			img.ID, img.ListingID, img.URL, img.PublicID, img.IsMain, img.Position)
		if err != nil {
			return mapError("listing.insert_image", "listing", err)
		}
	}
	return nil
}

func (r *listingRepository) GetByID(ctx context.Context, id string) (*domain.Listing, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound("listing")
	}
	query := `SELECT ` + listingColumns + ` FROM listings l WHERE l.id = $1`
	l, err := scanListing(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, mapError("listing.get", "listing", err)
	}
	listings := []domain.Listing{*l}
	if err := r.attachChildren(ctx, listings); err != nil {
		return nil, err
	}
	return &listings[0], nil
}

// GetByIDs returns the listings that still exist, in the order of ids.
func (r *listingRepository) GetByIDs(ctx context.Context, ids []string) ([]domain.Listing, error) {
	if len(ids) == 0 {
		return []domain.Listing{}, nil
	}
	query := `SELECT ` + listingColumns + ` FROM listings l WHERE l.id = ANY($1)`
	found, err := r.queryListings(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Listing, len(found))
	for _, l := range found {
		byID[l.ID] = l
	}
	ordered := make([]domain.Listing, 0, len(found))
	for _, id := range ids {
		if l, ok := byID[id]; ok {
			ordered = append(ordered, l)
		}
	}
	return ordered, nil
}

// Update rewrites the listing row and replaces its tiers and images wholesale.
func (r *listingRepository) Update(ctx context.Context, l *domain.Listing) error {
	logger.EnterMethod("listingRepository.Update", "listingID", l.ID)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("listing.update", "listing", err)
	}
	defer tx.Rollback()

	l.UpdatedAt = time.Now().UTC()
	addr := addressOf(l)
	query := `UPDATE listings SET title=$1, description=$2, kind=$3, status=$4, location=$5, formatted_address=$6,
	          street=$7, city=$8, state=$9, postal_code=$10, latitude=$11, longitude=$12, furnished=$13, rooms=$14,
	          bathrooms=$15, amenities=$16, rules=$17, available_from=$18, price=$19, updated_at=$20,
	          auto_rented = (auto_rented AND status = $4) WHERE id=$21`
	res, err := tx.ExecContext(ctx, query, l.Title, l.Description, l.Kind, l.Status, l.Location, l.FormattedAddress,
		addr.Street, addr.City, addr.State, addr.PostalCode, l.Latitude, l.Longitude, l.Furnished, l.Rooms,
		l.Bathrooms, pq.Array(l.Amenities), pq.Array(l.Rules), l.AvailableFrom, l.Price, l.UpdatedAt, l.ID)
	if err != nil {
		logger.ExitMethodWithError("listingRepository.Update", err, "listingID", l.ID)
		return mapError("listing.update", "listing", err)
	}
	if err := expectRows("listing.update", "listing", res); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM sharing_tiers WHERE listing_id = $1`, l.ID); err != nil {
		return mapError("listing.clear_tiers", "listing", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM listing_images WHERE listing_id = $1`, l.ID); err != nil {
		return mapError("listing.clear_images", "listing", err)
	}
	if err := insertChildren(ctx, tx, l); err != nil {
		logger.ExitMethodWithError("listingRepository.Update", err, "listingID", l.ID)
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError("listing.update", "listing", err)
	}

	logger.ExitMethod("listingRepository.Update", "listingID", l.ID, "tiers", len(l.Tiers), "images", len(l.Images))
	return nil
}

// Delete removes a listing and everything hanging off it.
func (r *listingRepository) Delete(ctx context.Context, id string) error {
	logger.EnterMethod("listingRepository.Delete", "listingID", id)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return mapError("listing.delete", "listing", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		`DELETE FROM saved_listings WHERE listing_id = $1`,
		`DELETE FROM inquiries WHERE listing_id = $1`,
		`DELETE FROM sharing_tiers WHERE listing_id = $1`,
		`DELETE FROM listing_images WHERE listing_id = $1`,
	} {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			logger.ExitMethodWithError("listingRepository.Delete", err, "listingID", id)
			return mapError("listing.delete", "listing", err)
		}
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM listings WHERE id = $1`, id)
	if err != nil {
		return mapError("listing.delete", "listing", err)
	}
	if err := expectRows("listing.delete", "listing", res); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return mapError("listing.delete", "listing", err)
	}

	logger.ExitMethod("listingRepository.Delete", "listingID", id)
	return nil
}

func (r *listingRepository) SetStatus(ctx context.Context, id string, status domain.ListingStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE listings SET status = $1, auto_rented = false, updated_at = $2 WHERE id = $3`, status, time.Now().UTC(), id)
	if err != nil {
		return mapError("listing.set_status", "listing", err)
	}
	return expectRows("listing.set_status", "listing", res)
}

func (r *listingRepository) Search(ctx context.Context, f domain.ListingFilter) ([]domain.Listing, int32, error) {
	p := buildListingSearch(f)
	where := p.where()

	var total int32
	countQuery := `SELECT count(*) FROM listings l` + where
	logger.DatabaseCall("listing.search_count", countQuery, "args", len(p.args))
	if err := r.db.QueryRowContext(ctx, countQuery, p.args...).Scan(&total); err != nil {
		return nil, 0, mapError("listing.search", "listing", err)
	}

	query := `SELECT ` + listingColumns + ` FROM listings l` + where + listingOrder(f.Sort)
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += ` LIMIT ` + p.arg(f.PageSize) + ` OFFSET ` + p.arg((page-1)*f.PageSize)
	}

	listings, err := r.queryListings(ctx, query, p.args...)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

func (r *listingRepository) queryListings(ctx context.Context, query string, args ...interface{}) ([]domain.Listing, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError("listing.query", "listing", err)
	}
	defer rows.Close()

	listings := []domain.Listing{}
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, mapError("listing.scan", "listing", err)
		}
		listings = append(listings, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError("listing.query", "listing", err)
	}
	if err := r.attachChildren(ctx, listings); err != nil {
		return nil, err
	}
	return listings, nil
}

// attachChildren batch-loads tiers and images for a page of listings.
func (r *listingRepository) attachChildren(ctx context.Context, listings []domain.Listing) error {
	if len(listings) == 0 {
		return nil
	}
	ids := make([]string, len(listings))
	index := make(map[string]int, len(listings))
	for i, l := range listings {
		ids[i] = l.ID
		index[l.ID] = i
	}

	tierRows, err := r.db.QueryContext(ctx,
		`SELECT id, listing_id, persons_per_room, price_per_person, available_beds, total_beds
		 FROM sharing_tiers WHERE listing_id = ANY($1) ORDER BY persons_per_room`, pq.Array(ids))
	if err != nil {
		return mapError("listing.load_tiers", "listing", err)
	}
	defer tierRows.Close()
	for tierRows.Next() {
		var t domain.SharingTier
		if err := tierRows.Scan(&t.ID, &t.ListingID, &t.PersonsPerRoom, &t.PricePerPerson, &t.AvailableBeds, &t.TotalBeds); err != nil {
			return mapError("listing.load_tiers", "listing", err)
		}
		if i, ok := index[t.ListingID]; ok {
			listings[i].Tiers = append(listings[i].Tiers, t)
		}
	}
	if err := tierRows.Err(); err != nil {
		return mapError("listing.load_tiers", "listing", err)
	}

	imageRows, err := r.db.QueryContext(ctx,
		`SELECT id, listing_id, url, COALESCE(public_id, ''), is_main, position
		 FROM listing_images WHERE listing_id = ANY($1) ORDER BY position`, pq.Array(ids))
	if err != nil {
		return mapError("listing.load_images", "listing", err)
	}
	defer imageRows.Close()
	for imageRows.Next() {
		var img domain.Image
		if err := imageRows.Scan(&img.ID, &img.ListingID, &img.URL, &img.PublicID, &img.IsMain, &img.Position); err != nil {
			return mapError("listing.load_images", "listing", err)
		}
		if i, ok := index[img.ListingID]; ok {
			listings[i].Images = append(listings[i].Images, img)
		}
	}
	return mapError("listing.load_images", "listing", imageRows.Err())
}

func (r *listingRepository) TierBelongsTo(ctx context.Context, listingID, tierID string) (bool, error) {
	if _, err := uuid.Parse(tierID); err != nil {
		return false, nil
	}
	var ok bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM sharing_tiers WHERE id = $1 AND listing_id = $2)`, tierID, listingID).Scan(&ok)
	if err != nil {
		return false, mapError("listing.tier_belongs", "sharing tier", err)
	}
	return ok, nil
}

// SyncOccupancyStatus marks full PG listings RENTED and reopens only the
// ones it marked itself. A RENTED status set by an owner or admin stays.
func (r *listingRepository) SyncOccupancyStatus(ctx context.Context) (int64, int64, error) {
	now := time.Now().UTC()

	fill := `UPDATE listings l SET status = 'RENTED', auto_rented = true, updated_at = $1
	         WHERE l.kind = 'PG' AND l.status = 'ACTIVE'
	           AND EXISTS (SELECT 1 FROM sharing_tiers t WHERE t.listing_id = l.id)
	           AND NOT EXISTS (SELECT 1 FROM sharing_tiers t WHERE t.listing_id = l.id AND t.available_beds > 0)`
	res, err := r.db.ExecContext(ctx, fill, now)
	if err != nil {
		return 0, 0, mapError("listing.sync_rented", "listing", err)
	}
	rented, _ := res.RowsAffected()
	logger.DatabaseResult("listing.sync_rented", rented, nil)

	reopen := `UPDATE listings l SET status = 'ACTIVE', auto_rented = false, updated_at = $1
	           WHERE l.kind = 'PG' AND l.status = 'RENTED' AND l.auto_rented
	             AND EXISTS (SELECT 1 FROM sharing_tiers t WHERE t.listing_id = l.id AND t.available_beds > 0)`
	res, err = r.db.ExecContext(ctx, reopen, now)
	if err != nil {
		return rented, 0, mapError("listing.sync_reopened", "listing", err)
	}
	reopened, _ := res.RowsAffected()
	logger.DatabaseResult("listing.sync_reopened", reopened, nil)

	return rented, reopened, nil
}
