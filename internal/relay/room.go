package relay

import (
	"sync"
	"sync/atomic"
)

// message is one opaque, never-mutated entry in a Room's append log.
type message struct {
	idx  uint32
	body []byte
}

// Room is an ordered, append-only in-memory message log plus a monotonic
// index counter, identified by a string key the caller derives from the
// ceremony kind and a stable id (spec.md section 6.1: "{kind}_{id}").
// Rooms are created on first reference and never garbage-collected
// during process lifetime (spec.md section 3, a known limitation carried
// forward deliberately).
type Room struct {
	mu       sync.RWMutex
	messages []message
	waiters  []chan struct{}

	subscribers int32
	nextIdx     uint32 // only ever touched via atomic ops; relaxed ordering is fine, it has no dependents
}

func newRoom() *Room {
	return &Room{}
}

// Broadcast appends body verbatim and wakes every waiter exactly once.
// The assigned index is the log's prior length.
func (r *Room) Broadcast(body []byte) uint32 {
	r.mu.Lock()
	idx := uint32(len(r.messages))
	r.messages = append(r.messages, message{idx: idx, body: body})
	waiters := r.waiters
	r.waiters = nil
	r.mu.Unlock()

	for _, w := range waiters {
		close(w)
	}
	return idx
}

// messagesFrom returns every message with index >= from currently in the
// log, plus a channel that closes when the next message is appended (nil
// if at least one message was already returned, since the caller should
// re-check the log rather than wait).
func (r *Room) messagesFrom(from uint32) ([]message, <-chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if int(from) < len(r.messages) {
		out := make([]message, len(r.messages)-int(from))
		copy(out, r.messages[from:])
		return out, nil
	}

	ch := make(chan struct{})
	r.waiters = append(r.waiters, ch)
	return nil, ch
}

// IssueUniqueIdx atomically post-increments the room's counter and
// returns the prior value (spec.md section 6.1's issue_unique_idx). The
// counter is u32 internally; callers that need the spec's documented
// u16 wire type truncate and must not exceed 2^16 issuances per room
// (spec.md section 9's open question on widening this).
func (r *Room) IssueUniqueIdx() uint32 {
	return atomic.AddUint32(&r.nextIdx, 1) - 1
}

func (r *Room) incSubscribers() {
	atomic.AddInt32(&r.subscribers, 1)
}

func (r *Room) decSubscribers() {
	atomic.AddInt32(&r.subscribers, -1)
}

// SubscriberCount reports the room's live subscriber count, exposed for
// the operator CLI's room-inspection command.
func (r *Room) SubscriberCount() int32 {
	return atomic.LoadInt32(&r.subscribers)
}

// Len reports the number of messages published so far.
func (r *Room) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.messages)
}

// Registry is the process-wide mapping from room id to Room. First
// reference to a room id materializes it; concurrent first references
// yield the same Room via double-checked locking (spec.md section
// 4.3 "Room creation").
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]*Room)}
}

// GetOrCreate returns the named room, creating it if this is the first
// reference. Mirrors the double-checked-locking shape of a concurrent
// room registry: a read-lock probe first, and only on a miss does it
// take the write lock and re-probe before inserting.
func (reg *Registry) GetOrCreate(id string) *Room {
	reg.mu.RLock()
	room, ok := reg.rooms[id]
	reg.mu.RUnlock()
	if ok {
		return room
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	if room, ok := reg.rooms[id]; ok {
		return room
	}
	room = newRoom()
	reg.rooms[id] = room
	return room
}

// RoomIDs returns every room id currently registered, for the operator
// CLI's inspection command. No ordering is guaranteed.
func (reg *Registry) RoomIDs() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	ids := make([]string, 0, len(reg.rooms))
	for id := range reg.rooms {
		ids = append(ids, id)
	}
	return ids
}

// Lookup returns the room if it already exists, without creating it.
func (reg *Registry) Lookup(id string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	r, ok := reg.rooms[id]
	return r, ok
}

// Subscription is a live cursor into a Room pointing at the next
// message index to deliver (spec.md section 3). Close decrements the
// room's subscriber count; callers must always Close once done.
type Subscription struct {
	room *Room
	next uint32
}

// Subscribe opens a cursor starting at `from` (0 if the caller had no
// Last-Event-ID).
func (r *Room) Subscribe(from uint32) *Subscription {
	r.incSubscribers()
	return &Subscription{room: r, next: from}
}

// Close drops the subscription's hold on the room.
func (s *Subscription) Close() {
	s.room.decSubscribers()
}

// Next blocks until at least one message with index >= the cursor is
// available, or done fires, then returns every such message in
// index order and advances the cursor past them.
func (s *Subscription) Next(done <-chan struct{}) ([]uint32, [][]byte, error) {
	for {
		msgs, wait := s.room.messagesFrom(s.next)
		if len(msgs) > 0 {
			ids := make([]uint32, len(msgs))
			bodies := make([][]byte, len(msgs))
			for i, m := range msgs {
				ids[i] = m.idx
				bodies[i] = m.body
			}
			s.next = msgs[len(msgs)-1].idx + 1
			return ids, bodies, nil
		}
		select {
		case <-wait:
			continue
		case <-done:
			return nil, nil, errSubscriptionClosed
		}
	}
}
