// Package authz decides whether an authenticated user may perform an action on a resource.
// Every decision is made by CanAct from data loaded once per request, so handlers do not
// branch on roles themselves.
package authz

import (
	"slices"

	"hotel-booking-api/internal/models"
)

type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Kind string

const (
	KindBooking  Kind = "booking"
	KindHotel    Kind = "hotel"
	KindRoomType Kind = "room_type"
	KindAccount  Kind = "account"
)

// Actor is the authenticated caller. ManagedHotels is only populated for managers.
type Actor struct {
	ID            uint
	Role          string
	ManagedHotels []uint
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// Manages reports whether the actor is a manager of the given hotel
func (a Actor) Manages(hotelID uint) bool {
	return a.Role == models.RoleManager && slices.Contains(a.ManagedHotels, hotelID)
}

// Resource describes the target of an action. OwnerID is the owning user for bookings and
// the account id for accounts; HotelID is the hotel the resource belongs to.
type Resource struct {
	Kind    Kind
	OwnerID uint
	HotelID uint
}

func Booking(b *models.Booking) Resource {
	return Resource{Kind: KindBooking, OwnerID: b.UserID, HotelID: b.HotelID}
}

func Hotel(hotelID uint) Resource {
	return Resource{Kind: KindHotel, HotelID: hotelID}
}

func RoomType(rt *models.RoomType) Resource {
	return Resource{Kind: KindRoomType, HotelID: rt.HotelID}
}

func Account(userID uint) Resource {
	return Resource{Kind: KindAccount, OwnerID: userID}
}

// CanAct is the single authorization rule table
func CanAct(actor Actor, res Resource, action Action) bool {
	if actor.IsAdmin() {
		return true
	}

	switch res.Kind {
	case KindBooking:
		if res.OwnerID == actor.ID {
			return true
		}
		// managers act on existing bookings of their hotels but never book for someone else
		return action != ActionCreate && actor.Manages(res.HotelID)
	case KindHotel:
		if action == ActionRead {
			return true
		}
		return action == ActionUpdate && actor.Manages(res.HotelID)
	case KindRoomType:
		if action == ActionRead {
			return true
		}
		return actor.Manages(res.HotelID)
	case KindAccount:
		return action == ActionRead && res.OwnerID == actor.ID
	}

	return false
}
