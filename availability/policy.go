package availability

// DefaultSlotMinutes applies when a booking query names no service, kept
// for callers that predate per-service durations.
const DefaultSlotMinutes = 60

// SlotDuration resolves the slot duration for a free-slot query. The
// service's configured duration wins; otherwise the documented 60-minute
// fallback applies. Every caller path goes through this one policy instead
// of repeating the literal default.
func SlotDuration(service *ServiceInfo) int {
	if service != nil && service.DurationMinutes > 0 {
		return service.DurationMinutes
	}
	return DefaultSlotMinutes
}
