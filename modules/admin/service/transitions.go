package service

import "tnb-api/modules/booking/entity"

// allowedTransitions encodes the booking status machine. Terminal states
// (cancelled, completed, no_show) never transition away; completed
// additionally requires a paid booking, which ChangeBookingStatus checks.
var allowedTransitions = map[entity.BookingStatus][]entity.BookingStatus{
	entity.BookingStatusPending: {
		entity.BookingStatusConfirmed,
		entity.BookingStatusCancelled,
	},
	entity.BookingStatusConfirmed: {
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusNoShow,
	},
}

func canTransition(from, to entity.BookingStatus) bool {
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func isValidStatus(s entity.BookingStatus) bool {
	switch s {
	case entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
		entity.BookingStatusCancelled,
		entity.BookingStatusCompleted,
		entity.BookingStatusNoShow:
		return true
	}
	return false
}
