package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

// HotelSearchQuery defines filters and pagination for the public hotel
// search.  City matches a substring of the address.  Beds and Adults are
// per-room minimums.  When CheckIn/CheckOut are set, hotels with no
// conflict-free room in that half-open range are excluded.
type HotelSearchQuery struct {
	City     string
	Beds     int
	Adults   int
	CheckIn  *time.Time
	CheckOut *time.Time
	Page     int
	PageSize int
}

// hasRoomFilters reports whether any room-level criterion was supplied.
// Without one, the search is a plain hotel listing and hotels without
// rooms still appear, matching the original marketplace behavior.
func (q HotelSearchQuery) hasRoomFilters() bool {
	return q.Beds > 0 || q.Adults > 0 || (q.CheckIn != nil && q.CheckOut != nil)
}

// HotelSummary is the public search result row.
type HotelSummary struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Stars         uint8    `json:"stars"`
	Address       string   `json:"address"`
	Description   *string  `json:"description"`
	PricePerNight *float64 `json:"price_per_night"`
	GuestScore    *float64 `json:"guest_score"`
}

// Search returns approved hotels matching the query plus the total match
// count for pagination.
func (r *HotelRepo) Search(ctx context.Context, q HotelSearchQuery) ([]HotelSummary, int64, error) {
	where := []string{"h.is_approved = 1"}
	args := []any{}

	if q.City != "" {
		where = append(where, "LOWER(h.address) LIKE ?")
		args = append(args, "%"+strings.ToLower(q.City)+"%")
	}

	if q.hasRoomFilters() {
		roomCond := []string{"r.hotel_id = h.id"}
		if q.Beds > 0 {
			roomCond = append(roomCond, "r.bed_count >= ?")
			args = append(args, q.Beds)
		}
		if q.Adults > 0 {
			roomCond = append(roomCond, "r.max_adults >= ?")
			args = append(args, q.Adults)
		}
		if q.CheckIn != nil && q.CheckOut != nil {
			roomCond = append(roomCond, `NOT EXISTS (
				SELECT 1 FROM bookings b
				WHERE b.room_id = r.id AND b.start_date < ? AND b.end_date > ?)`)
			args = append(args, *q.CheckOut, *q.CheckIn)
		}
		where = append(where, "EXISTS (SELECT 1 FROM rooms r WHERE "+strings.Join(roomCond, " AND ")+")")
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := "SELECT COUNT(*) FROM hotels h WHERE " + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	if limit <= 0 {
		limit = 20
	}
	page := q.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	dataSQL := `SELECT h.id, h.name, h.stars, h.address, h.description, h.price_per_night,
			(SELECT AVG(rv.rating) FROM reviews rv WHERE rv.hotel_id = h.id) AS guest_score
		FROM hotels h
		WHERE ` + cond + `
		ORDER BY h.stars DESC, h.id ASC
		LIMIT ? OFFSET ?`

	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	out := make([]HotelSummary, 0, limit)
	for rows.Next() {
		var (
			d     HotelSummary
			desc  sql.NullString
			price sql.NullFloat64
			score sql.NullFloat64
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Stars, &d.Address, &desc, &price, &score); err != nil {
			return nil, 0, err
		}
		if desc.Valid {
			d.Description = &desc.String
		}
		if price.Valid {
			d.PricePerNight = &price.Float64
		}
		if score.Valid {
			d.GuestScore = &score.Float64
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
