package models

import (
	"sync"
	"time"
)

// PackCode is a single-use redemption code. Plain codes credit packs to the
// redeemer's balance; codes carrying rarity guarantees mint their packs at
// redemption time so the guarantee can be honored.
type PackCode struct {
	Code         string         `json:"code"`
	PackCount    int            `json:"packCount"`
	CardsPerPack int            `json:"cardsPerPack"`
	Guarantees   map[Rarity]int `json:"guarantees,omitempty"`
	CreatedBy    string         `json:"createdBy"`
	CreatedAt    time.Time      `json:"createdAt"`
	ExpiresAt    *time.Time     `json:"expiresAt,omitempty"`
	RedeemedBy   string         `json:"redeemedBy,omitempty"`
	RedeemedAt   *time.Time     `json:"redeemedAt,omitempty"`
}

func (pc *PackCode) Redeemed() bool {
	return pc.RedeemedBy != ""
}

func (pc *PackCode) Expired(now time.Time) bool {
	return pc.ExpiresAt != nil && now.After(*pc.ExpiresAt)
}

// CodeStore holds outstanding redemption codes keyed by code string.
type CodeStore struct {
	mu    sync.RWMutex
	codes map[string]*PackCode
	now   func() time.Time
}

func NewCodeStore() *CodeStore {
	return &CodeStore{
		codes: make(map[string]*PackCode),
		now:   time.Now,
	}
}

func (s *CodeStore) Put(code *PackCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[code.Code] = code
}

func (s *CodeStore) Get(code string) (*PackCode, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pc, ok := s.codes[code]
	if !ok {
		return nil, false
	}
	cp := *pc
	return &cp, true
}

// Redeem marks the code redeemed by userId if it is still redeemable.
// The check and the mark happen under one lock so a code can never be
// redeemed twice.
func (s *CodeStore) Redeem(code, userId string) (*PackCode, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pc, ok := s.codes[code]
	if !ok || pc.Redeemed() || pc.Expired(s.now()) {
		return nil, false
	}
	now := s.now()
	pc.RedeemedBy = userId
	pc.RedeemedAt = &now
	cp := *pc
	return &cp, true
}

// Outstanding counts codes that are neither redeemed nor expired.
func (s *CodeStore) Outstanding() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.now()
	count := 0
	for _, pc := range s.codes {
		if !pc.Redeemed() && !pc.Expired(now) {
			count++
		}
	}
	return count
}

func (s *CodeStore) Snapshot() map[string]*PackCode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]*PackCode, len(s.codes))
	for k, pc := range s.codes {
		cp := *pc
		out[k] = &cp
	}
	return out
}

func (s *CodeStore) Restore(codes map[string]*PackCode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes = make(map[string]*PackCode, len(codes))
	for k, pc := range codes {
		if pc == nil || k == "" {
			continue
		}
		s.codes[k] = pc
	}
}
