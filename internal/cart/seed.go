package cart

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Entries []Entry `yaml:"entries"`
}

// LoadSeedFile reads demo entries from a YAML document of the form
//
//	entries:
//	  - name: Apple
//	    price: "1.005"
//	    quantity: 3
func LoadSeedFile(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, entry := range doc.Entries {
		if entry.Quantity < 1 {
			doc.Entries[i].Quantity = 1
		}
	}
	return doc.Entries, nil
}

// Seed fills an empty store with entries through the regular intent path. A
// store that already holds entries is left alone.
func Seed(ctx context.Context, store Store, entries []Entry) (int, error) {
	current, err := store.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	if !current.IsEmpty() || len(entries) == 0 {
		return 0, nil
	}
	for _, entry := range entries {
		if err := store.Dispatch(ctx, AddItem(entry.Name, entry.Price, entry.Image)); err != nil {
			return 0, fmt.Errorf("seed entry %q: %w", entry.Name, err)
		}
		if entry.Quantity > 1 {
			if err := store.Dispatch(ctx, UpdateQuantity(entry.Name, entry.Quantity)); err != nil {
				return 0, fmt.Errorf("seed quantity for %q: %w", entry.Name, err)
			}
		}
	}
	return len(entries), nil
}
