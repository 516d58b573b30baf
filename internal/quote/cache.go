package quote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/palengkeph/palengke-backend/pkg/types"
)

type quoteStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	QuoteKey(fingerprint string) string
}

type missChecker func(error) bool

// Cache memoizes quote sets in Redis. A TTL bounds staleness when merchant
// fee configuration changes out from under a cached entry.
type Cache struct {
	store  quoteStore
	isMiss missChecker
	ttl    time.Duration
}

// NewCache builds a quote cache. isMiss distinguishes a cache miss from a
// Redis failure so callers can fall through on misses and surface errors.
func NewCache(store quoteStore, isMiss missChecker, ttl time.Duration) *Cache {
	return &Cache{store: store, isMiss: isMiss, ttl: ttl}
}

// Fingerprint hashes the quoting inputs: the destination and the ordered
// merchant set. Identical inputs always hash identically.
func Fingerprint(ids []uuid.UUID, dest *types.Destination) string {
	h := sha256.New()
	if dest != nil {
		fmt.Fprintf(h, "dest:%s:%s:%s;",
			dest.PlaceID,
			strconv.FormatFloat(dest.Lat, 'f', -1, 64),
			strconv.FormatFloat(dest.Lng, 'f', -1, 64),
		)
	}
	sorted := make([]string, 0, len(ids))
	for _, id := range ids {
		sorted = append(sorted, id.String())
	}
	sort.Strings(sorted)
	for _, id := range sorted {
		fmt.Fprintf(h, "m:%s;", id)
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Lookup returns the cached quote set for the fingerprint, or (nil, false)
// on a miss.
func (c *Cache) Lookup(ctx context.Context, fingerprint string) ([]DeliveryQuote, bool, error) {
	if c == nil || c.store == nil {
		return nil, false, nil
	}
	raw, err := c.store.Get(ctx, c.store.QuoteKey(fingerprint))
	if err != nil {
		if c.isMiss != nil && c.isMiss(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var quotes []DeliveryQuote
	if err := json.Unmarshal([]byte(raw), &quotes); err != nil {
		// A corrupt entry is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return quotes, true, nil
}

// Store writes the quote set under the fingerprint.
func (c *Cache) Store(ctx context.Context, fingerprint string, quotes []DeliveryQuote) error {
	if c == nil || c.store == nil {
		return nil
	}
	raw, err := json.Marshal(quotes)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, c.store.QuoteKey(fingerprint), string(raw), c.ttl)
}
