package service

import (
	"strings"

	"github.com/noah-isme/engagement-dashboard/pkg/config"
)

// OrderingPolicy decides which of several overlapping responses becomes visible.
type OrderingPolicy string

const (
	// OrderingLatestIntent applies a response only when it answers the most recently initiated request.
	OrderingLatestIntent OrderingPolicy = config.OrderingLatestIntent
	// OrderingCompletion applies every response in arrival order, so the last to land wins.
	OrderingCompletion OrderingPolicy = config.OrderingCompletion
)

// ParseOrderingPolicy maps configuration text to a policy, defaulting to latest-intent.
func ParseOrderingPolicy(raw string) OrderingPolicy {
	if strings.EqualFold(strings.TrimSpace(raw), string(OrderingCompletion)) {
		return OrderingCompletion
	}
	return OrderingLatestIntent
}

// sequencer tags requests at initiation and decides at completion whether a response is current.
// It is not safe for concurrent use; owners guard it with their session lock.
type sequencer struct {
	issued  uint64
	floor   uint64
	pending int
}

func (s *sequencer) begin() uint64 {
	s.issued++
	s.pending++
	return s.issued
}

// finish retires seq and reports whether its response may be applied.
// Requests issued before the last reset are always dropped.
func (s *sequencer) finish(seq uint64, policy OrderingPolicy) bool {
	if seq <= s.floor {
		return false
	}
	if s.pending > 0 {
		s.pending--
	}
	if policy == OrderingCompletion {
		return true
	}
	return seq == s.issued
}

func (s *sequencer) inFlight() bool {
	return s.pending > 0
}

func (s *sequencer) reset() {
	s.floor = s.issued
	s.pending = 0
}
