package fees

import (
	"strconv"
	"strings"
)

// Delivery fee tiers and surcharges, in shillings.
const (
	BaseLocalZone     = 79
	BaseSecondaryZone = 99
	BaseDefault       = 150

	SurchargeSupermarket = 20
	SurchargeHeavyItem   = 40
	SurchargeNight       = 30
)

// Surcharge tags stored alongside the order.
const (
	TagSupermarketPickup = "supermarket_pickup"
	TagHeavyItem         = "heavy_item"
	TagNight             = "night"
)

var (
	supermarketKeywords = []string{"supermarket", "shop", "market", "grocery", "groceries"}
	heavyKeywords       = []string{"water", "jerry", "sack", "sacks", "big", "heavy"}
)

// Compute maps an order's pickup, drop, item text and preferred time to a
// delivery fee and the surcharge tags that were applied. It is called exactly
// once, at order creation; the result is stored and never recomputed.
func Compute(pickup, drop, items, preferredTime string) (int, []string) {
	p := normalizeLocation(pickup)
	d := normalizeLocation(drop)
	it := strings.ToLower(items)

	var fee int
	switch {
	case sameZone(p, d, "ebenezer") || sameZone(p, d, "matangi"):
		fee = BaseLocalZone
	case strings.Contains(p, "juja") || strings.Contains(d, "juja") ||
		strings.Contains(p, "jk") || strings.Contains(p, "jkuat"):
		fee = BaseSecondaryZone
	default:
		fee = BaseDefault
	}

	var extras []string
	if containsAny(it, supermarketKeywords) {
		extras = append(extras, TagSupermarketPickup)
		fee += SurchargeSupermarket
	}
	if containsAny(it, heavyKeywords) {
		extras = append(extras, TagHeavyItem)
		fee += SurchargeHeavyItem
	}
	if IsNightTime(preferredTime) {
		extras = append(extras, TagNight)
		fee += SurchargeNight
	}

	return fee, extras
}

// IsNightTime reports whether the free-text preferred time falls in the night
// window [21:00, 06:00). Accepted forms: 12-hour with am/pm suffix, bare
// "HH:MM", or a bare integer hour. Anything unparseable means no surcharge.
func IsNightTime(tstr string) bool {
	if tstr == "" {
		return false
	}
	s := strings.ReplaceAll(strings.ToLower(tstr), " ", "")

	if strings.Contains(s, "pm") {
		h, ok := parseHour(strings.SplitN(s, "pm", 2)[0])
		if !ok {
			return false
		}
		h = h%12 + 12
		return h >= 21 || h < 6
	}
	if strings.Contains(s, "am") {
		h, ok := parseHour(strings.SplitN(s, "am", 2)[0])
		if !ok {
			return false
		}
		return h%24 < 6
	}
	if strings.Contains(s, ":") {
		h, ok := parseHour(s)
		if !ok {
			return false
		}
		return h >= 21 || h < 6
	}
	if h, err := strconv.Atoi(s); err == nil {
		h %= 24
		return h >= 21 || h < 6
	}
	return false
}

func parseHour(s string) (int, bool) {
	h, err := strconv.Atoi(strings.SplitN(s, ":", 2)[0])
	if err != nil {
		return 0, false
	}
	return h, true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

func normalizeLocation(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func sameZone(p, d, zone string) bool {
	return strings.Contains(p, zone) && strings.Contains(d, zone)
}
