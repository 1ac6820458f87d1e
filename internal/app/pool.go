package app

import (
	"sort"
	"strings"

	"buzzer-board-service/internal/domain"
)

// questionPool partitions each category's point values into available and
// answered sets. A point value lives in exactly one of the two sets; the
// union is always the category's full point-value set.
//
// The pool carries no lock of its own. All access is serialized through the
// owning Session's mutex.
type questionPool struct {
	available map[string]map[int]struct{}
	answered  map[string]map[int]struct{}
}

func newQuestionPool(board domain.Board) *questionPool {
	p := &questionPool{
		available: make(map[string]map[int]struct{}),
		answered:  make(map[string]map[int]struct{}),
	}
	for _, category := range board.Categories {
		key := foldName(category.Name)
		p.available[key] = make(map[int]struct{}, len(category.Questions))
		p.answered[key] = make(map[int]struct{})
		for points := range category.Questions {
			p.available[key][points] = struct{}{}
		}
	}
	return p
}

// tryConsume moves points from available to answered and reports whether it
// did. It returns true at most once per (category, points) pair for the life
// of the session; any later call is a no-op.
func (p *questionPool) tryConsume(category string, points int) bool {
	key := foldName(category)
	set, ok := p.available[key]
	if !ok {
		return false
	}
	if _, ok := set[points]; !ok {
		return false
	}
	delete(set, points)
	p.answered[key][points] = struct{}{}
	return true
}

func (p *questionPool) isAvailable(category string, points int) bool {
	set, ok := p.available[foldName(category)]
	if !ok {
		return false
	}
	_, ok = set[points]
	return ok
}

// hasAnyAvailable reports whether any category still has an unplayed cell.
func (p *questionPool) hasAnyAvailable() bool {
	for _, set := range p.available {
		if len(set) > 0 {
			return true
		}
	}
	return false
}

func (p *questionPool) availablePoints(category string) []int {
	return sortedPoints(p.available[foldName(category)])
}

func sortedPoints(set map[int]struct{}) []int {
	points := make([]int, 0, len(set))
	for value := range set {
		points = append(points, value)
	}
	sort.Ints(points)
	return points
}

// foldName is the canonical form for category and team lookups: names arrive
// over HTTP and are matched case-insensitively, ignoring surrounding space.
func foldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
