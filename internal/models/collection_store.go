package models

import (
	"sync"
	"time"
)

// UserRecord is one user's owned state: cards in acquisition order plus the
// unopened pack balance. LastSeen drives cold-storage eviction of inactive
// users.
type UserRecord struct {
	Cards    []Card    `json:"cards"`
	Balance  int       `json:"balance"`
	LastSeen time.Time `json:"last_seen"`
}

// CollectionStore owns every user's collection and pack balance. All reads
// return copies; the store is the only holder of mutable state and every
// compound game action (open, trade-in) runs under one lock so balances and
// card lists can never drift apart.
type CollectionStore struct {
	mu    sync.RWMutex
	users map[string]*UserRecord
	now   func() time.Time
}

func NewCollectionStore() *CollectionStore {
	return &CollectionStore{
		users: make(map[string]*UserRecord),
		now:   time.Now,
	}
}

func (cs *CollectionStore) touch(rec *UserRecord) {
	rec.LastSeen = cs.now()
}

// Ensure creates the user's record if missing, crediting startingPacks to
// first-time users, and marks the user active.
func (cs *CollectionStore) Ensure(userId string, startingPacks int) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	rec, ok := cs.users[userId]
	if !ok {
		rec = &UserRecord{Balance: startingPacks}
		cs.users[userId] = rec
	}
	cs.touch(rec)
}

// Has reports whether the user exists in the hot store.
func (cs *CollectionStore) Has(userId string) bool {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	_, ok := cs.users[userId]
	return ok
}

// Cards returns a copy of the user's collection in acquisition order.
func (cs *CollectionStore) Cards(userId string) []Card {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	rec, ok := cs.users[userId]
	if !ok {
		return nil
	}
	out := make([]Card, len(rec.Cards))
	copy(out, rec.Cards)
	return out
}

func (cs *CollectionStore) Balance(userId string) int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	if rec, ok := cs.users[userId]; ok {
		return rec.Balance
	}
	return 0
}

// AddPacks credits n unopened packs, creating the record if needed.
func (cs *CollectionStore) AddPacks(userId string, n int) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	rec, ok := cs.users[userId]
	if !ok {
		rec = &UserRecord{}
		cs.users[userId] = rec
	}
	rec.Balance += n
	cs.touch(rec)
	return rec.Balance
}

// Append adds newly minted cards to the end of the user's collection.
func (cs *CollectionStore) Append(userId string, cards []Card) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	rec, ok := cs.users[userId]
	if !ok {
		rec = &UserRecord{}
		cs.users[userId] = rec
	}
	rec.Cards = append(rec.Cards, cards...)
	cs.touch(rec)
}

// SpendAndAppend atomically spends one pack and appends the cards produced
// by mint. Returns false without calling mint when the balance is zero.
func (cs *CollectionStore) SpendAndAppend(userId string, mint func() []Card) ([]Card, int, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	rec, ok := cs.users[userId]
	if !ok || rec.Balance <= 0 {
		return nil, 0, false
	}
	rec.Balance--
	cards := mint()
	rec.Cards = append(rec.Cards, cards...)
	cs.touch(rec)
	return cards, rec.Balance, true
}

// RemoveAndCredit atomically removes the given card ids and credits packs.
// If any id is not owned by the user, nothing is removed and ok is false.
func (cs *CollectionStore) RemoveAndCredit(userId string, cardIds []string, packs int) (int, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	rec, ok := cs.users[userId]
	if !ok {
		return 0, false
	}

	wanted := make(map[string]bool, len(cardIds))
	for _, id := range cardIds {
		wanted[id] = true
	}
	found := 0
	for i := range rec.Cards {
		if wanted[rec.Cards[i].Id] {
			found++
		}
	}
	if found != len(wanted) {
		return rec.Balance, false
	}

	kept := rec.Cards[:0]
	for _, c := range rec.Cards {
		if !wanted[c.Id] {
			kept = append(kept, c)
		}
	}
	rec.Cards = kept
	rec.Balance += packs
	cs.touch(rec)
	return rec.Balance, true
}

func (cs *CollectionStore) Users() []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make([]string, 0, len(cs.users))
	for id := range cs.users {
		out = append(out, id)
	}
	return out
}

// TotalCards counts cards across all hot users.
func (cs *CollectionStore) TotalCards() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	total := 0
	for _, rec := range cs.users {
		total += len(rec.Cards)
	}
	return total
}

// InactiveSince returns users whose last activity is older than ttl.
func (cs *CollectionStore) InactiveSince(ttl time.Duration) []string {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	cutoff := cs.now().Add(-ttl)
	var out []string
	for id, rec := range cs.users {
		if rec.LastSeen.Before(cutoff) {
			out = append(out, id)
		}
	}
	return out
}

// Evict removes a user from the hot store and returns the record for cold
// storage.
func (cs *CollectionStore) Evict(userId string) (*UserRecord, bool) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	rec, ok := cs.users[userId]
	if !ok {
		return nil, false
	}
	delete(cs.users, userId)
	return rec, true
}

// Admit places a previously evicted record back into the hot store.
func (cs *CollectionStore) Admit(userId string, rec *UserRecord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.users[userId] = rec
	cs.touch(rec)
}

// Snapshot returns a deep copy of all user records for persistence.
func (cs *CollectionStore) Snapshot() map[string]*UserRecord {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]*UserRecord, len(cs.users))
	for id, rec := range cs.users {
		cards := make([]Card, len(rec.Cards))
		copy(cards, rec.Cards)
		out[id] = &UserRecord{Cards: cards, Balance: rec.Balance, LastSeen: rec.LastSeen}
	}
	return out
}

// Restore replaces the store contents with a persisted snapshot.
func (cs *CollectionStore) Restore(users map[string]*UserRecord) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.users = make(map[string]*UserRecord, len(users))
	for id, rec := range users {
		if rec == nil {
			continue
		}
		cs.users[id] = rec
	}
}
