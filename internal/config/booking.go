package config

import (
	"fmt"
	"os"
	"time"
)

// Slots are the bookable consultation times offered on every working day.
// A (date, slot) pair may hold at most one scheduled appointment.
var Slots = []string{
	"09:00 AM",
	"10:00 AM",
	"11:00 AM",
	"12:00 PM",
	"02:00 PM",
	"03:00 PM",
	"04:00 PM",
	"05:00 PM",
}

const (
	DateLayout = "2006-01-02"
	slotLayout = "2006-01-02 03:04 PM"
)

type BookingConfig struct {
	CancellationWindow time.Duration
	VisitPassTTL       time.Duration
}

func LoadBookingConfig() *BookingConfig {
	return &BookingConfig{
		CancellationWindow: getEnvAsDuration("BOOKING_CANCELLATION_WINDOW", 24*time.Hour),
		VisitPassTTL:       getEnvAsDuration("BOOKING_VISIT_PASS_TTL", 48*time.Hour),
	}
}

// IsBookableSlot reports whether t is one of the offered slot times.
func IsBookableSlot(t string) bool {
	for _, s := range Slots {
		if s == t {
			return true
		}
	}
	return false
}

// SlotStart resolves a (date, slot) pair to its wall-clock start in the
// server's local time zone.
func SlotStart(date, slot string) (time.Time, error) {
	start, err := time.ParseInLocation(slotLayout, fmt.Sprintf("%s %s", date, slot), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid appointment slot %q %q: %w", date, slot, err)
	}
	return start, nil
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}
