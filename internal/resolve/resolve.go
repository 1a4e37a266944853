// Package resolve turns a human-supplied query string into exactly one UI
// element from a snapshot. Matching is exact-only with a fixed precedence;
// ambiguity is settled by screen position, never by heuristic scoring, so
// re-running a script against the same snapshot always picks the same
// element.
package resolve

import (
	"sort"

	"github.com/mj1618/uidrive/internal/model"
)

// Resolve finds the element addressed by query. Precedence, short-circuiting
// at the first tier with any match:
//
//  1. exact match on the element's stable accessibility identifier
//  2. exact match on the element's title or label
//
// Both tiers are case-sensitive full-string matches across the whole element
// list. When several elements tie within a tier, the topmost wins, then the
// leftmost. Returns ok=false when nothing matches.
func Resolve(query string, snap *model.Snapshot) (model.UIElement, bool) {
	if snap == nil || query == "" {
		return model.UIElement{}, false
	}

	var candidates []model.UIElement
	for _, el := range snap.Elements {
		if el.Identifier != "" && el.Identifier == query {
			candidates = append(candidates, el)
		}
	}
	if len(candidates) == 0 {
		for _, el := range snap.Elements {
			if el.Title == query || el.Label == query {
				candidates = append(candidates, el)
			}
		}
	}
	if len(candidates) == 0 {
		return model.UIElement{}, false
	}

	sortByReadingOrder(candidates)
	return candidates[0], true
}

// Lookup returns the element with the given local ID (e.g. "B1"), bypassing
// query resolution entirely.
func Lookup(id string, snap *model.Snapshot) (model.UIElement, bool) {
	if snap == nil {
		return model.UIElement{}, false
	}
	el, ok := snap.Elements[id]
	return el, ok
}

// sortByReadingOrder orders elements the way a human scans a screen:
// top to bottom, then left to right, with the local ID as a final stable key
// for elements sharing the exact same origin.
func sortByReadingOrder(elements []model.UIElement) {
	sort.Slice(elements, func(i, j int) bool {
		a, b := elements[i], elements[j]
		if a.Frame.Y != b.Frame.Y {
			return a.Frame.Y < b.Frame.Y
		}
		if a.Frame.X != b.Frame.X {
			return a.Frame.X < b.Frame.X
		}
		return a.ID < b.ID
	})
}
