package registry

import (
	"strconv"
	"sync"
	"time"

	"github.com/arthur-debert/chartify/pkg/types"
)

// DefaultKeyPrefix prefixes generated instance keys
const DefaultKeyPrefix = "chart-"

// Instances maps instance keys to live chart handles.
//
// Put expects any handle previously stored under the key to be destroyed by
// the caller already; the registry never destroys handles itself.
type Instances struct {
	handles *Registry[types.Handle]

	keyMu  sync.Mutex
	now    func() time.Time
	prefix string
	last   int64
}

// InstancesOption configures an Instances registry
type InstancesOption func(*Instances)

// WithClock sets the time source used for key generation
func WithClock(now func() time.Time) InstancesOption {
	return func(r *Instances) {
		r.now = now
	}
}

// WithKeyPrefix sets the prefix of generated keys
func WithKeyPrefix(prefix string) InstancesOption {
	return func(r *Instances) {
		r.prefix = prefix
	}
}

// NewInstances creates an empty instance registry
func NewInstances(opts ...InstancesOption) *Instances {
	r := &Instances{
		handles: New[types.Handle](),
		now:     time.Now,
		prefix:  DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the live handle for key
func (r *Instances) Get(key string) (types.Handle, bool) {
	return r.handles.Lookup(key)
}

// Put stores handle under key, overwriting any entry
func (r *Instances) Put(key string, handle types.Handle) {
	r.handles.Put(key, handle)
}

// Remove deletes the entry for key; absent keys are ignored
func (r *Instances) Remove(key string) {
	r.handles.Delete(key)
}

// All returns a snapshot of every live handle by key
func (r *Instances) All() map[string]types.Handle {
	return r.handles.Snapshot()
}

// Keys returns the live keys in sorted order
func (r *Instances) Keys() []string {
	return r.handles.List()
}

// Len returns the number of live handles
func (r *Instances) Len() int {
	return r.handles.Count()
}

// GenerateKey returns a key that does not collide with any live entry at
// the time of the call. Candidates derive from the clock in milliseconds and
// never repeat: when the clock has not moved past the previous candidate the
// next integer is used instead. Collisions with existing keys are retried
// until a free candidate is found.
func (r *Instances) GenerateKey() string {
	r.keyMu.Lock()
	defer r.keyMu.Unlock()

	for {
		stamp := r.now().UnixMilli()
		if stamp <= r.last {
			stamp = r.last + 1
		}
		r.last = stamp

		key := r.prefix + strconv.FormatInt(stamp, 10)
		if !r.handles.Has(key) {
			return key
		}
	}
}
