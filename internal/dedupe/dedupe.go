// Package dedupe tracks which text lines have already been seen this session.
package dedupe

import "crypto/sha1"

// Set remembers fingerprints of lines for the lifetime of one session.
// It grows monotonically and is never persisted; restarting the app (or
// building a fresh Set) forgets everything.
//
// The pipeline goroutine is the only writer, so no locking here.
type Set struct {
	seen map[[sha1.Size]byte]struct{}
}

// NewSet returns an empty seen-set.
func NewSet() *Set {
	return &Set{seen: make(map[[sha1.Size]byte]struct{})}
}

// Check reports whether line is new, inserting its fingerprint as a side
// effect. Each distinct line value returns true exactly once per Set,
// no matter how often it reappears on screen across polling cycles.
func (s *Set) Check(line string) bool {
	fp := sha1.Sum([]byte(line))
	if _, ok := s.seen[fp]; ok {
		return false
	}
	s.seen[fp] = struct{}{}
	return true
}

// FilterNew returns the subset of lines not seen before, in input order,
// marking all of them seen.
func (s *Set) FilterNew(lines []string) []string {
	var fresh []string
	for _, ln := range lines {
		if s.Check(ln) {
			fresh = append(fresh, ln)
		}
	}
	return fresh
}

// Len returns the number of distinct lines seen so far.
func (s *Set) Len() int {
	return len(s.seen)
}
