package table

import (
	"fmt"
	"sort"
)

// LedgerKind names the four annotation ledgers the model maintains.
type LedgerKind int

const (
	LedgerStyles LedgerKind = iota
	LedgerFootnotes
	LedgerFormats
	LedgerSummaries
)

// LedgerEntry is one Location-tagged annotation record. Group, Column
// and Row are situational: only the fields meaningful for the entry's
// location kind are populated (Row is -1 when absent). Format is set
// only on formatting-directive entries.
type LedgerEntry struct {
	Loc        LocationKind
	Precedence int
	Group      string
	Column     string
	Row        int
	Payload    string
	Format     *FormatOptions
}

// key composes the dedup identity of an entry from every field.
func (e LedgerEntry) key() string {
	f := ""
	if e.Format != nil {
		f = e.Format.key()
	}
	return fmt.Sprintf("%d|%s|%s|%d|%s|%s", e.Loc, e.Group, e.Column, e.Row, e.Payload, f)
}

// Ledger is an append-only, deduplicated ordered sequence of entries.
type Ledger struct {
	entries []LedgerEntry
	seen    map[string]bool
}

// Append inserts an entry unless an identical one already exists.
// Returns true when the entry was actually added.
func (l *Ledger) Append(e LedgerEntry) bool {
	if l.seen == nil {
		l.seen = make(map[string]bool)
	}
	e.Precedence = e.Loc.Precedence()
	k := e.key()
	if l.seen[k] {
		return false
	}
	l.seen[k] = true
	l.entries = append(l.entries, e)
	return true
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns the entries in insertion order.
func (l *Ledger) Entries() []LedgerEntry {
	out := make([]LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Ordered returns the entries sorted by location precedence first, then
// by insertion order within equal precedence. This is the footer order
// renderers assign glyphs in.
func (l *Ledger) Ordered() []LedgerEntry {
	out := l.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Precedence < out[j].Precedence
	})
	return out
}
