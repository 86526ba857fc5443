package redis

import (
	"encoding/json"
	"fmt"
	"time"
)

// Free-slot responses are cached per provider, date and duration for a
// short window. The cache is an optimization only: a miss recomputes from
// the database, and every write that can change a provider's day drops the
// affected keys.

const slotCacheTTL = 60 * time.Second

func slotKey(providerID uint, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("slots:%d:%s:%d", providerID, date.Format("2006-01-02"), durationMinutes)
}

// GetCachedSlots returns the cached slot list, or ok=false on a miss.
func GetCachedSlots(providerID uint, date time.Time, durationMinutes int) ([]string, bool) {
	if Client == nil {
		return nil, false
	}
	raw, err := Client.Get(Ctx, slotKey(providerID, date, durationMinutes)).Result()
	if err != nil {
		return nil, false
	}
	var slots []string
	if err := json.Unmarshal([]byte(raw), &slots); err != nil {
		return nil, false
	}
	return slots, true
}

// SetCachedSlots stores a computed slot list. Failures are ignored; the
// next request just recomputes.
func SetCachedSlots(providerID uint, date time.Time, durationMinutes int, slots []string) {
	if Client == nil {
		return
	}
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}
	Client.Set(Ctx, slotKey(providerID, date, durationMinutes), raw, slotCacheTTL)
}

// InvalidateProviderDay drops every cached slot list for a provider on one
// date, regardless of duration.
func InvalidateProviderDay(providerID uint, date time.Time) {
	if Client == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:%s:*", providerID, date.Format("2006-01-02"))
	keys, err := Client.Keys(Ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	Client.Del(Ctx, keys...)
}

// InvalidateProvider drops every cached slot list for a provider, used when
// the weekly template changes and all days are affected.
func InvalidateProvider(providerID uint) {
	if Client == nil {
		return
	}
	pattern := fmt.Sprintf("slots:%d:*", providerID)
	keys, err := Client.Keys(Ctx, pattern).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	Client.Del(Ctx, keys...)
}
