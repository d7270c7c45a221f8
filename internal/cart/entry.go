package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Entry is a named product line held in the cart.
type Entry struct {
	Name     string          `json:"name" yaml:"name"`
	Price    decimal.Decimal `json:"price" yaml:"price"`
	Quantity int             `json:"quantity" yaml:"quantity"`
	Image    string          `json:"image,omitempty" yaml:"image,omitempty"`
}

// State is an ordered, name-keyed snapshot of cart entries. The zero value is an
// empty cart. Accessors hand out copies so a snapshot cannot be mutated in place.
type State struct {
	entries []Entry
}

// NewState builds a snapshot from entries in the given order.
func NewState(entries ...Entry) State {
	if len(entries) == 0 {
		return State{}
	}
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return State{entries: cp}
}

// Entries returns a copy of the entries in display order.
func (s State) Entries() []Entry {
	cp := make([]Entry, len(s.entries))
	copy(cp, s.entries)
	return cp
}

func (s State) Len() int {
	return len(s.entries)
}

func (s State) IsEmpty() bool {
	return len(s.entries) == 0
}

// Find returns the entry stored under name.
func (s State) Find(name string) (Entry, bool) {
	if i := s.indexOf(name); i >= 0 {
		return s.entries[i], true
	}
	return Entry{}, false
}

func (s State) indexOf(name string) int {
	for i, entry := range s.entries {
		if entry.Name == name {
			return i
		}
	}
	return -1
}

func (s State) MarshalJSON() ([]byte, error) {
	if s.entries == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s.entries)
}

func (s *State) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*s = NewState(entries...)
	return nil
}
