package model

import "time"

// Hotel represents a property listed on the marketplace.  Each hotel
// belongs to exactly one user with the HOTEL role and owns many rooms.
// This struct corresponds to a row in the `hotels` table.
//
// Fields:
//  ID            – primary key identifier.
//  OwnerID       – user ID of the hotel account.
//  Name          – display name of the hotel.
//  Stars         – star rating (0 when unrated).
//  Address       – free-form postal address; city search matches a substring of it.
//  Website       – optional website URL.
//  Description   – optional long description.
//  PricePerNight – derived nightly price: the arithmetic mean of the hotel's
//                  room prices, nil while the hotel has no rooms.  Kept
//                  consistent by an explicit recompute after every room write.
//  IsApproved    – whether an admin has approved the listing; only approved
//                  hotels appear in public search results.
//  CreatedAt     – creation timestamp.
//  UpdatedAt     – last update timestamp.
type Hotel struct {
	ID            uint64    // hotels.id
	OwnerID       uint64    // hotels.owner_id
	Name          string    // hotels.name
	Stars         uint8     // hotels.stars
	Address       string    // hotels.address
	Website       *string   // hotels.website (nullable)
	Description   *string   // hotels.description (nullable)
	PricePerNight *float64  // hotels.price_per_night (nullable, derived)
	IsApproved    bool      // hotels.is_approved
	CreatedAt     time.Time // hotels.created_at
	UpdatedAt     time.Time // hotels.updated_at
}
