package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// ReviewRepo stores hotel reviews.  Each user may hold one review per
// hotel; Upsert replaces an existing review in place.
type ReviewRepo struct {
	db *sql.DB
}

// NewReviewRepo returns a new ReviewRepo bound to the given database.
func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{db: db} }

// Upsert inserts the user's review for a hotel, or replaces the rating
// and comment of the existing one.  The created flag reports whether a
// new row was inserted.  Relies on the UNIQUE (hotel_id, user_id) key.
func (r *ReviewRepo) Upsert(ctx context.Context, rv *model.Review) (created bool, err error) {
	const q = `INSERT INTO reviews (hotel_id, user_id, rating, comment)
	           VALUES (?, ?, ?, ?)
	           ON DUPLICATE KEY UPDATE rating = VALUES(rating), comment = VALUES(comment)`
	res, err := r.db.ExecContext(ctx, q, rv.HotelID, rv.UserID, rv.Rating, rv.Comment)
	if err != nil {
		return false, err
	}
	// MySQL reports 1 affected row for an insert, 2 for a replaced row.
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	created = n == 1

	const sel = `SELECT id, hotel_id, user_id, rating, comment, created_at, updated_at
	             FROM reviews WHERE hotel_id = ? AND user_id = ?`
	var comment sql.NullString
	if err := r.db.QueryRowContext(ctx, sel, rv.HotelID, rv.UserID).Scan(
		&rv.ID, &rv.HotelID, &rv.UserID, &rv.Rating, &comment, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
		return created, err
	}
	if comment.Valid {
		rv.Comment = &comment.String
	} else {
		rv.Comment = nil
	}
	return created, nil
}

// ReviewDetail is a review joined with its author's display name for
// public hotel pages.
type ReviewDetail struct {
	ID        uint64  `json:"id"`
	UserName  string  `json:"user"`
	Rating    uint8   `json:"rating"`
	Comment   *string `json:"comment"`
	CreatedAt string  `json:"created_at"`
}

// ListByHotel returns all reviews for a hotel, newest first.
func (r *ReviewRepo) ListByHotel(ctx context.Context, hotelID uint64) ([]ReviewDetail, error) {
	const q = `SELECT rv.id, CONCAT(u.first_name, ' ', u.last_name), rv.rating, rv.comment,
	                  DATE_FORMAT(rv.created_at, '%Y-%m-%dT%H:%i:%sZ')
	           FROM reviews rv
	           JOIN users u ON u.id = rv.user_id
	           WHERE rv.hotel_id = ?
	           ORDER BY rv.created_at DESC, rv.id DESC`
	rows, err := r.db.QueryContext(ctx, q, hotelID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]ReviewDetail, 0)
	for rows.Next() {
		var (
			d       ReviewDetail
			comment sql.NullString
		)
		if err := rows.Scan(&d.ID, &d.UserName, &d.Rating, &comment, &d.CreatedAt); err != nil {
			return nil, err
		}
		if comment.Valid {
			d.Comment = &comment.String
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FavoriteRepo stores a user's saved hotels.
type FavoriteRepo struct {
	db *sql.DB
}

// NewFavoriteRepo returns a new FavoriteRepo bound to the given database.
func NewFavoriteRepo(db *sql.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Create saves a hotel to the user's favorites.  ErrConflict is returned
// when the hotel is already favorited (UNIQUE (user_id, hotel_id)).
func (r *FavoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO favorites (user_id, hotel_id) VALUES (?, ?)", f.UserID, f.HotelID)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrConflict
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = uint64(id)

	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM favorites WHERE id = ?", f.ID).Scan(&f.CreatedAt)
}

// FavoriteDetail pairs a favorite row with summary fields of the saved
// hotel.
type FavoriteDetail struct {
	ID            uint64   `json:"id"`
	HotelID       uint64   `json:"hotel_id"`
	HotelName     string   `json:"hotel_name"`
	Stars         uint8    `json:"stars"`
	Address       string   `json:"address"`
	PricePerNight *float64 `json:"price_per_night"`
}

// ListByUser returns the caller's favorites, most recently added first.
func (r *FavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]FavoriteDetail, error) {
	const q = `SELECT f.id, h.id, h.name, h.stars, h.address, h.price_per_night
	           FROM favorites f
	           JOIN hotels h ON h.id = f.hotel_id
	           WHERE f.user_id = ?
	           ORDER BY f.created_at DESC, f.id DESC`
	rows, err := r.db.QueryContext(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]FavoriteDetail, 0)
	for rows.Next() {
		var (
			d     FavoriteDetail
			price sql.NullFloat64
		)
		if err := rows.Scan(&d.ID, &d.HotelID, &d.HotelName, &d.Stars, &d.Address, &price); err != nil {
			return nil, err
		}
		if price.Valid {
			d.PricePerNight = &price.Float64
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a favorite owned by the user.  ErrFavoriteNotFound is
// returned when nothing was deleted.
func (r *FavoriteRepo) Delete(ctx context.Context, id, userID uint64) error {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM favorites WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
