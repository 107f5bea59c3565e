package cache

import (
	"github.com/2beens/fitinsights/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var _ Cache = (*ResponseCache)(nil)

// ResponseCache keeps serialized dashboard responses. Record data never
// changes after load, so the TTL only bounds memory held by stale keys.
type ResponseCache struct {
	mainCache      *freecache.Cache
	expireSeconds  int
	metricsManager *metrics.Manager
}

func NewResponseCache(sizeMB, expireSeconds int, metricsManager *metrics.Manager) *ResponseCache {
	// freecache enforces 512KB minimum
	return &ResponseCache{
		mainCache:      freecache.NewCache(sizeMB * 1024 * 1024),
		expireSeconds:  expireSeconds,
		metricsManager: metricsManager,
	}
}

func (rc *ResponseCache) Get(key string) ([]byte, bool) {
	val, err := rc.mainCache.Get([]byte(key))
	if err != nil {
		if rc.metricsManager != nil {
			rc.metricsManager.CounterCacheMisses.Inc()
		}
		return nil, false
	}
	if rc.metricsManager != nil {
		rc.metricsManager.CounterCacheHits.Inc()
	}
	return val, true
}

func (rc *ResponseCache) Set(key string, value []byte) bool {
	if err := rc.mainCache.Set([]byte(key), value, rc.expireSeconds); err != nil {
		// entries over 1/1024 of the cache size are rejected
		log.Debugf("response cache set [%s]: %s", key, err)
		return false
	}
	return true
}

func (rc *ResponseCache) Clear() {
	rc.mainCache.Clear()
}

func (rc *ResponseCache) EntryCount() int64 {
	return rc.mainCache.EntryCount()
}
