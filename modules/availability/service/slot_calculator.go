package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tnb-api/core/constants"
	"tnb-api/modules/availability/entity"
)

// SlotCalculator enumerates free fixed-length appointment slots inside a
// working window.
type SlotCalculator struct {
	SlotDurationMinutes int
}

func NewSlotCalculator() *SlotCalculator {
	return &SlotCalculator{
		SlotDurationMinutes: constants.SlotDurationMinutes,
	}
}

// FreeSlots returns the chronological slot start times within [startTime,
// endTime) on the given date whose full slot interval does not overlap any
// booked interval.
func (sc *SlotCalculator) FreeSlots(date time.Time, startTime, endTime string, booked []entity.BookedInterval) ([]time.Time, error) {
	windowStart, err := parseTimeOnDate(date, startTime)
	if err != nil {
		return nil, fmt.Errorf("parse window start: %w", err)
	}

	windowEnd, err := parseTimeOnDate(date, endTime)
	if err != nil {
		return nil, fmt.Errorf("parse window end: %w", err)
	}

	slotDuration := time.Duration(sc.SlotDurationMinutes) * time.Minute
	var slots []time.Time

	for cursor := windowStart; cursor.Before(windowEnd); cursor = cursor.Add(slotDuration) {
		slotStart := cursor
		slotEnd := cursor.Add(slotDuration)

		conflict := false
		for _, b := range booked {
			bookingStart := b.AppointmentDate
			bookingEnd := bookingStart.Add(time.Duration(b.Duration) * time.Minute)
			if overlaps(slotStart, slotEnd, bookingStart, bookingEnd) {
				conflict = true
				break
			}
		}

		if !conflict {
			slots = append(slots, slotStart)
		}
	}

	return slots, nil
}

// overlaps applies the three-way interval overlap test: the slot starts
// inside the booking, ends inside the booking, or fully contains it.
func overlaps(slotStart, slotEnd, bookingStart, bookingEnd time.Time) bool {
	if !slotStart.Before(bookingStart) && slotStart.Before(bookingEnd) {
		return true
	}
	if slotEnd.After(bookingStart) && !slotEnd.After(bookingEnd) {
		return true
	}
	if !slotStart.After(bookingStart) && !slotEnd.Before(bookingEnd) {
		return true
	}
	return false
}

// FormatSlots renders slot start times for display ("9:00 AM").
func FormatSlots(slots []time.Time) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.Format(constants.SlotDisplayFormat)
	}
	return out
}

func parseTimeOnDate(date time.Time, timeStr string) (time.Time, error) {
	parts := strings.Split(timeStr, ":")
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid time format: %s", timeStr)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid hour: %w", err)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid minute: %w", err)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return time.Time{}, fmt.Errorf("time out of range: %s", timeStr)
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, date.Location()), nil
}
