package postgres

import (
	"fmt"
	"strings"

	"rentnest-backend/internal/domain"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// predicates accumulates AND-ed WHERE clauses and their positional args.
type predicates struct {
	clauses []string
	args    []interface{}
}

// arg registers a value and returns its $n placeholder.
func (p *predicates) arg(v interface{}) string {
	p.args = append(p.args, v)
	return fmt.Sprintf("$%d", len(p.args))
}

func (p *predicates) and(clause string) {
	p.clauses = append(p.clauses, clause)
}

func (p *predicates) where() string {
	if len(p.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(p.clauses, " AND ")
}

// priceBounds appends "col >= min" / "col <= max" for whichever bound is set.
func (p *predicates) priceBounds(conds []string, col string, min, max *decimal.Decimal) []string {
	if min != nil {
		conds = append(conds, col+" >= "+p.arg(*min))
	}
	if max != nil {
		conds = append(conds, col+" <= "+p.arg(*max))
	}
	return conds
}

// flatPriceBranch matches FLAT listings whose own price is in range.
func (p *predicates) flatPriceBranch(min, max *decimal.Decimal) string {
	conds := []string{"l.kind = 'FLAT'"}
	conds = p.priceBounds(conds, "l.price", min, max)
	return "(" + strings.Join(conds, " AND ") + ")"
}

// pgPriceBranch matches PG listings with at least one tier in range. PG
// listings have no listing-level price, so the bounds go on the tiers.
func (p *predicates) pgPriceBranch(min, max *decimal.Decimal) string {
	conds := []string{"t.listing_id = l.id"}
	conds = p.priceBounds(conds, "t.price_per_person", min, max)
	return "(l.kind = 'PG' AND EXISTS (SELECT 1 FROM sharing_tiers t WHERE " + strings.Join(conds, " AND ") + "))"
}

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// buildListingSearch turns a filter into a WHERE clause over "listings l".
func buildListingSearch(f domain.ListingFilter) *predicates {
	p := &predicates{}

	if f.OwnerID != "" {
		p.and("l.owner_id = " + p.arg(f.OwnerID))
	}
	if f.Status != "" {
		p.and("l.status = " + p.arg(string(f.Status)))
	}
	if f.Kind != "" && f.Kind != domain.ListingKindAll {
		p.and("l.kind = " + p.arg(string(f.Kind)))
	}
	if f.HasPriceBounds() {
		flat := p.flatPriceBranch(f.PriceMin, f.PriceMax)
		pg := p.pgPriceBranch(f.PriceMin, f.PriceMax)
		p.and("(" + flat + " OR " + pg + ")")
	}
	if loc := strings.TrimSpace(f.Location); loc != "" {
		ph := p.arg("%" + escapeLike(loc) + "%")
		p.and(fmt.Sprintf("(l.location ILIKE %[1]s OR l.formatted_address ILIKE %[1]s OR l.city ILIKE %[1]s OR l.state ILIKE %[1]s OR l.postal_code ILIKE %[1]s)", ph))
	}
	if f.FurnishedOnly {
		p.and("l.furnished = TRUE")
	}
	if amenities := domain.NormalizeAmenities(f.Amenities); len(amenities) > 0 {
		p.and("l.amenities @> " + p.arg(pq.Array(amenities)))
	}
	return p
}

const effectivePriceExpr = `COALESCE(l.price, (SELECT MIN(t.price_per_person) FROM sharing_tiers t WHERE t.listing_id = l.id))`

func listingOrder(sort domain.ListingSort) string {
	switch sort {
	case domain.ListingSortPriceAsc:
		return " ORDER BY " + effectivePriceExpr + " ASC NULLS LAST, l.created_at DESC"
	case domain.ListingSortPriceDesc:
		return " ORDER BY " + effectivePriceExpr + " DESC NULLS LAST, l.created_at DESC"
	default:
		return " ORDER BY l.created_at DESC"
	}
}
