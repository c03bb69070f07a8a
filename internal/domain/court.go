package domain

import "fmt"

// Venue business rules. Slots run 07:00-21:00, one hour each; pricing is
// flat per slot; a court takes at most three bookings per day.
const (
	SlotOpenHour     = 7
	SlotCount        = 14
	PricePerSlot     = 200000 // IDR
	MaxDailyBookings = 3
)

type Court struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Name         string `json:"name"`
	Label        string `json:"label"`
	Type         string `json:"type"`    // Indoor / Outdoor
	Surface      string `json:"surface"` // e.g. Rumput Sintetis
	Capacity     string `json:"capacity"`
	PricePerSlot int64  `json:"price_per_slot"`
}

// TimeSlots returns the bookable slot starts, "07:00" through "20:00".
func TimeSlots() []string {
	out := make([]string, 0, SlotCount)
	for i := 0; i < SlotCount; i++ {
		out = append(out, fmt.Sprintf("%02d:00", SlotOpenHour+i))
	}
	return out
}

func ValidTimeSlot(slot string) bool {
	for _, s := range TimeSlots() {
		if s == slot {
			return true
		}
	}
	return false
}

// DefaultCourts is the venue catalog seeded on startup.
func DefaultCourts() []Court {
	return []Court{
		{ID: "soccer", Name: "Lapangan Mini Soccer", Label: "Mini Soccer", Type: "Outdoor", Surface: "Rumput Sintetis", Capacity: "14 Pemain", PricePerSlot: PricePerSlot},
		{ID: "voli", Name: "Lapangan Voli", Label: "Voli", Type: "Indoor", Surface: "Lantai Profesional", Capacity: "12 Pemain", PricePerSlot: PricePerSlot},
		{ID: "basket", Name: "Lapangan Basket", Label: "Basket", Type: "Indoor", Surface: "Hardcourt", Capacity: "10 Pemain", PricePerSlot: PricePerSlot},
	}
}
