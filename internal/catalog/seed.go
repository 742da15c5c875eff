package catalog

import (
	"time"

	"github.com/okheya/food-rescue/internal/model"
)

// Seed returns the built-in campus listings used when no durable store
// is configured.  Cafe listings repeat daily surplus windows; event
// listings are one-off leftovers.  Capacities here are the portions
// posted for the current session.
func Seed(now time.Time) []model.Listing {
	return []model.Listing{
		{ID: "1", Title: "Assorted Pastries", Description: "Fresh pastries from Mission Bakery.", Location: "Mission Bakery, Benson Dining Hall", PickupWindow: "2:00 PM - 4:00 PM", Source: "Mission Bakery", Kind: model.KindCafe, TotalCapacity: 10, CreatedAt: now},
		{ID: "2", Title: "Pepperoni Pizza Slices", Description: "Hot pizza slices from The Slice.", Location: "The Slice, Benson Dining Hall", PickupWindow: "1:00 PM - 3:00 PM", Source: "The Slice", Kind: model.KindCafe, TotalCapacity: 12, CreatedAt: now},
		{ID: "3", Title: "Grilled Chicken Sandwiches", Description: "Juicy grilled chicken sandwiches from The Fire Grill.", Location: "The Fire Grill, Benson Dining Hall", PickupWindow: "5:00 PM - 7:00 PM", Source: "The Fire Grill", Kind: model.KindCafe, TotalCapacity: 8, CreatedAt: now},
		{ID: "4", Title: "Vegan Wraps", Description: "Healthy vegan wraps from Simply Oasis.", Location: "Simply Oasis, Benson Dining Hall", PickupWindow: "12:00 PM - 2:00 PM", Source: "Simply Oasis", Kind: model.KindCafe, TotalCapacity: 6, CreatedAt: now},
		{ID: "5", Title: "Freshly Brewed Coffee", Description: "Morning coffee from Sunstream Cafe.", Location: "Sunstream Cafe, Learning Commons", PickupWindow: "8:00 AM - 10:00 AM", Source: "Sunstream Cafe", Kind: model.KindCafe, TotalCapacity: 15, CreatedAt: now},
		{ID: "6", Title: "Breakfast Burritos", Description: "Hearty breakfast burritos from Cadence.", Location: "Cadence, Lucas Hall", PickupWindow: "9:00 AM - 11:00 AM", Source: "Cadence", Kind: model.KindCafe, TotalCapacity: 5, CreatedAt: now},
		{ID: "7", Title: "Smoothie Bowls", Description: "Refreshing smoothie bowls from Fresh Bytes.", Location: "Fresh Bytes, SCDI", PickupWindow: "3:00 PM - 5:00 PM", Source: "Fresh Bytes", Kind: model.KindCafe, TotalCapacity: 7, CreatedAt: now},
		{ID: "8", Title: "Leftover Bagels", Description: "Bagels from Club Fair event.", Location: "Student Union Hall", PickupWindow: "11:00 AM - 1:00 PM", Source: "Club Fair", Kind: model.KindEvent, TotalCapacity: 10, CreatedAt: now},
		{ID: "9", Title: "Sandwich Platters", Description: "Sandwiches from Engineering Conference.", Location: "SCDI Conference Room", PickupWindow: "4:00 PM - 6:00 PM", Source: "Engineering Conference", Kind: model.KindEvent, TotalCapacity: 20, CreatedAt: now},
		{ID: "10", Title: "Assorted Snacks", Description: "Snacks from Career Night.", Location: "Lucas Hall Lobby", PickupWindow: "6:00 PM - 8:00 PM", Source: "Career Night", Kind: model.KindEvent, TotalCapacity: 15, CreatedAt: now},
		{ID: "11", Title: "Popcorn + Drinks", Description: "Movie Night treats.", Location: "Benson Hall", PickupWindow: "7:00 PM - 9:00 PM", Source: "Movie Night", Kind: model.KindEvent, TotalCapacity: 30, CreatedAt: now},
	}
}
