// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for hotels.  A hotel is owned by a
// single HOTEL-role user and carries a derived nightly price kept in sync
// with its rooms by RecomputePricePerNight.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/hotel-room-booking/internal/model"
)

// HotelRepo encapsulates all database queries related to hotels.
type HotelRepo struct {
	db *sql.DB
}

// NewHotelRepo constructs a HotelRepo with the provided DB handle.
func NewHotelRepo(db *sql.DB) *HotelRepo {
	return &HotelRepo{db: db}
}

const hotelColumns = "id, owner_id, name, stars, address, website, description, price_per_night, is_approved, created_at, updated_at"

func scanHotel(row interface{ Scan(...any) error }) (*model.Hotel, error) {
	var (
		h       model.Hotel
		website sql.NullString
		desc    sql.NullString
		price   sql.NullFloat64
	)
	err := row.Scan(&h.ID, &h.OwnerID, &h.Name, &h.Stars, &h.Address,
		&website, &desc, &price, &h.IsApproved, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if website.Valid {
		h.Website = &website.String
	}
	if desc.Valid {
		h.Description = &desc.String
	}
	if price.Valid {
		h.PricePerNight = &price.Float64
	}
	return &h, nil
}

// Create inserts a new hotel.  On success the hotel's ID, timestamps and
// defaults are populated by a follow-up SELECT so callers receive a fully
// populated record.
func (r *HotelRepo) Create(ctx context.Context, h *model.Hotel) error {
	const qInsert = "INSERT INTO hotels (owner_id, name, stars, address, website, description) VALUES (?, ?, ?, ?, ?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, h.OwnerID, h.Name, h.Stars, h.Address, h.Website, h.Description)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = uint64(id)

	got, err := r.GetByID(ctx, h.ID)
	if err != nil {
		return err
	}
	*h = *got
	return nil
}

// GetByID fetches a hotel by its ID regardless of owner.  It returns
// ErrHotelNotFound if no row is found.
func (r *HotelRepo) GetByID(ctx context.Context, id uint64) (*model.Hotel, error) {
	const q = "SELECT " + hotelColumns + " FROM hotels WHERE id = ?"
	h, err := scanHotel(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return h, nil
}

// GetByOwner fetches the hotel belonging to the given user.  Each HOTEL
// account owns at most one hotel.  ErrHotelNotFound is returned when the
// user has none.
func (r *HotelRepo) GetByOwner(ctx context.Context, ownerID uint64) (*model.Hotel, error) {
	const q = "SELECT " + hotelColumns + " FROM hotels WHERE owner_id = ? LIMIT 1"
	h, err := scanHotel(r.db.QueryRowContext(ctx, q, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrHotelNotFound
		}
		return nil, err
	}
	return h, nil
}

// UpdateProfile updates the mutable profile fields of a hotel owned by
// ownerID.  It returns sql.ErrNoRows when no row is affected (not found /
// not owned).  Derived and admin-controlled fields (price_per_night,
// is_approved) are never written here.
func (r *HotelRepo) UpdateProfile(ctx context.Context, id, ownerID uint64, name string, stars uint8, address string, website, description *string) error {
	const q = `UPDATE hotels
	           SET name = ?, stars = ?, address = ?, website = ?, description = ?
	           WHERE id = ? AND owner_id = ?`
	res, err := r.db.ExecContext(ctx, q, name, stars, address, website, description, id, ownerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// The UPDATE may be a no-op when values are unchanged; distinguish
		// from a missing row.
		var exists uint64
		if err := r.db.QueryRowContext(ctx,
			"SELECT id FROM hotels WHERE id = ? AND owner_id = ?", id, ownerID).Scan(&exists); err != nil {
			return sql.ErrNoRows
		}
	}
	return nil
}

// RecomputePricePerNight sets the hotel's derived nightly price to the
// arithmetic mean of its rooms' prices.  AVG over zero rows yields NULL,
// which clears the price when the last room is deleted.  The operation is
// idempotent and must be invoked explicitly after every room write.
func (r *HotelRepo) RecomputePricePerNight(ctx context.Context, hotelID uint64) error {
	const q = `UPDATE hotels
	           SET price_per_night = (SELECT AVG(price) FROM rooms WHERE hotel_id = ?)
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, hotelID, hotelID)
	return err
}
