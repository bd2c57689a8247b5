package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterText returns the current type-to-filter query.
func (l *RoomList) FilterText() string {
	return l.Filter.Text()
}

// InsertFilterText types text into the filter at its cursor.
func (l *RoomList) InsertFilterText(text string) bool {
	if !l.Filter.InsertText(text) {
		return false
	}
	l.filterChanged()
	return true
}

// DeleteFilterBackward removes the character before the filter cursor.
func (l *RoomList) DeleteFilterBackward() bool {
	if !l.Filter.DeleteBeforeCursor() {
		return false
	}
	l.filterChanged()
	return true
}

// DeleteFilterWordBackward removes the word before the filter cursor.
func (l *RoomList) DeleteFilterWordBackward() bool {
	if !l.Filter.DeleteWordBeforeCursor() {
		return false
	}
	l.filterChanged()
	return true
}

// ClearFilter empties the filter and restores the highlight it replaced.
func (l *RoomList) ClearFilter() bool {
	if l.Filter.Empty() {
		return false
	}
	l.Filter.Reset()
	l.filterChanged()
	return true
}

// filterChanged re-applies the filter. Starting a query remembers the
// highlighted row; clearing it restores that row.
func (l *RoomList) filterChanged() {
	query := strings.TrimSpace(l.Filter.Text())
	prev := l.Cursor
	l.applyFilter()
	if query != "" {
		if l.LastCursor < 0 {
			l.LastCursor = prev
		}
		if idx := BestMatchIndex(l.Items, query); idx >= 0 {
			l.Cursor = idx
		}
		return
	}
	if l.LastCursor >= 0 && l.LastCursor < len(l.Items) {
		l.Cursor = l.LastCursor
	}
	l.LastCursor = -1
}

func (l *RoomList) applyFilter() {
	l.Items = FilterItems(l.Full, l.Filter.Text())
	if len(l.Items) == 0 {
		l.Cursor = 0
		l.ViewportOffset = 0
		return
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
	if l.Cursor >= len(l.Items) {
		l.Cursor = len(l.Items) - 1
	}
	if l.ViewportOffset > len(l.Items)-1 {
		l.ViewportOffset = 0
	}
}

// FilterItems returns rooms whose name or description matches query.
func FilterItems(items []RoomItem, query string) []RoomItem {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	matches := make(map[int]struct{}, len(ranks))
	for _, rank := range ranks {
		matches[rank.OriginalIndex] = struct{}{}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]RoomItem, 0, len(items))
	for idx, item := range items {
		if _, ok := matches[idx]; ok {
			filtered = append(filtered, item)
			continue
		}
		if strings.Contains(strings.ToLower(item.Description), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// BestMatchIndex returns the best index for the query among the provided
// items: exact name, then name prefix, then closest fuzzy match.
func BestMatchIndex(items []RoomItem, query string) int {
	if len(items) == 0 {
		return -1
	}
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return 0
	}
	for i, item := range items {
		if strings.EqualFold(item.Name, trimmed) {
			return i
		}
	}
	lower := strings.ToLower(trimmed)
	for i, item := range items {
		if strings.HasPrefix(strings.ToLower(item.Name), lower) {
			return i
		}
	}
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, names)
	if len(ranks) == 0 {
		return 0
	}
	best := ranks[0]
	for _, rank := range ranks[1:] {
		if rank.Distance < best.Distance ||
			(rank.Distance == best.Distance && rank.OriginalIndex < best.OriginalIndex) {
			best = rank
		}
	}
	return best.OriginalIndex
}
