package qhack

import (
	"sync"
	"time"
)

// QuantumValue wraps a value with metadata
type QuantumValue struct {
	Value     any
	Error     error
	CreatedAt time.Time
	TTL       time.Duration
}

// BroadcastGroup handles pub/sub
type BroadcastGroup struct {
	mu       sync.Mutex
	ID       string
	channels []chan QuantumValue
	TTL      time.Duration
	LastUsed time.Time
}

/*
Send delivers the value to each subscriber that has room for it. A slow
subscriber misses values rather than stalling the sender.
*/
func (bg *BroadcastGroup) Send(qv QuantumValue) {
	bg.mu.Lock()
	defer bg.mu.Unlock()

	bg.LastUsed = time.Now()
	for _, ch := range bg.channels {
		select {
		case ch <- qv:
		default:
		}
	}
}

func (bg *BroadcastGroup) close() {
	bg.mu.Lock()
	defer bg.mu.Unlock()

	for _, ch := range bg.channels {
		close(ch)
	}
	bg.channels = nil
}

/*
QuantumSpace holds job results until they are claimed. Every result has a
single consumer: whichever of Store and Await comes second hands the value
over, and the space forgets it.
*/
type QuantumSpace struct {
	mu      sync.Mutex
	values  map[string]QuantumValue
	waiting map[string][]chan QuantumValue
	groups  map[string]*BroadcastGroup

	cleanupInterval time.Duration
	done            chan struct{}
	closeOnce       sync.Once
	wg              sync.WaitGroup
}

func newQuantumSpace() *QuantumSpace {
	qs := &QuantumSpace{
		values:          make(map[string]QuantumValue),
		waiting:         make(map[string][]chan QuantumValue),
		groups:          make(map[string]*BroadcastGroup),
		cleanupInterval: time.Minute,
		done:            make(chan struct{}),
	}

	qs.wg.Add(1)
	go func() {
		defer qs.wg.Done()
		qs.cleanup()
	}()

	return qs
}

// Store stores a value with its metadata
func (qs *QuantumSpace) Store(id string, value any, err error, ttl time.Duration) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	qv := QuantumValue{
		Value:     value,
		Error:     err,
		CreatedAt: time.Now(),
		TTL:       ttl,
	}

	if channels, ok := qs.waiting[id]; ok {
		for _, ch := range channels {
			ch <- qv
			close(ch)
		}
		delete(qs.waiting, id)
		return
	}

	qs.values[id] = qv
}

// Await returns a channel that will receive the value when it's available
func (qs *QuantumSpace) Await(id string) chan QuantumValue {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	ch := make(chan QuantumValue, 1)

	if qv, ok := qs.values[id]; ok {
		delete(qs.values, id)
		ch <- qv
		close(ch)
		return ch
	}

	qs.waiting[id] = append(qs.waiting[id], ch)
	return ch
}

// Pending reports how many results are stored but not yet claimed.
func (qs *QuantumSpace) Pending() int {
	qs.mu.Lock()
	defer qs.mu.Unlock()
	return len(qs.values)
}

func (qs *QuantumSpace) cleanup() {
	ticker := time.NewTicker(qs.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-qs.done:
			return
		case <-ticker.C:
			qs.mu.Lock()
			qs.cleanupExpiredValues(time.Now())
			qs.cleanupExpiredGroups(time.Now())
			qs.mu.Unlock()
		}
	}
}

func (qs *QuantumSpace) cleanupExpiredValues(now time.Time) {
	for id, qv := range qs.values {
		if qv.TTL > 0 && now.Sub(qv.CreatedAt) > qv.TTL {
			delete(qs.values, id)
		}
	}
}

func (qs *QuantumSpace) cleanupExpiredGroups(now time.Time) {
	for id, group := range qs.groups {
		group.mu.Lock()
		expired := group.TTL > 0 && now.Sub(group.LastUsed) > group.TTL
		group.mu.Unlock()

		if expired {
			group.close()
			delete(qs.groups, id)
		}
	}
}

func (qs *QuantumSpace) CreateBroadcastGroup(id string, ttl time.Duration) *BroadcastGroup {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if group, ok := qs.groups[id]; ok {
		return group
	}

	group := &BroadcastGroup{
		ID:       id,
		channels: make([]chan QuantumValue, 0),
		TTL:      ttl,
		LastUsed: time.Now(),
	}
	qs.groups[id] = group
	return group
}

/*
Subscribe returns a channel fed by the named group. The channel is closed
when the group expires or the space is closed. Subscribing to an unknown
group yields a channel that never receives.
*/
func (qs *QuantumSpace) Subscribe(groupID string) chan QuantumValue {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	ch := make(chan QuantumValue, 10)
	if group, ok := qs.groups[groupID]; ok {
		group.mu.Lock()
		group.channels = append(group.channels, ch)
		group.mu.Unlock()
	}
	return ch
}

func (qs *QuantumSpace) Close() {
	qs.closeOnce.Do(func() {
		close(qs.done)
		qs.wg.Wait()

		qs.mu.Lock()
		defer qs.mu.Unlock()
		for id, group := range qs.groups {
			group.close()
			delete(qs.groups, id)
		}
		qs.values = make(map[string]QuantumValue)
	})
}
