package cart

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/cartview/pkg/db/models"
	pkgerrors "github.com/angelmondragon/cartview/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Repository is a gorm-backed Store. Each Dispatch loads the cart, applies the
// intent and writes the difference inside one transaction.
type Repository struct {
	db *gorm.DB
	tx txRunner
}

// NewRepository binds the repository to the provided DB handle and transaction runner.
func NewRepository(db *gorm.DB, tx txRunner) (*Repository, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &Repository{db: db, tx: tx}, nil
}

// WithTx scopes the repository to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx, tx: r.tx}
}

func (r *Repository) Snapshot(ctx context.Context) (State, error) {
	rows, err := r.list(ctx)
	if err != nil {
		return State{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart entries")
	}
	return stateFromRows(rows), nil
}

func (r *Repository) Dispatch(ctx context.Context, intent Intent) error {
	return r.tx.WithTx(ctx, func(tx *gorm.DB) error {
		scoped := r.WithTx(tx)
		rows, err := scoped.list(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart entries")
		}
		next, err := Apply(stateFromRows(rows), intent)
		if err != nil {
			return err
		}
		if err := scoped.persist(ctx, rows, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart entries")
		}
		return nil
	})
}

// Ping verifies the database is reachable.
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) list(ctx context.Context) ([]models.CartEntry, error) {
	var rows []models.CartEntry
	err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&rows).Error
	return rows, err
}

// persist reconciles stored rows with the next state.
func (r *Repository) persist(ctx context.Context, rows []models.CartEntry, next State) error {
	db := r.db.WithContext(ctx)

	existing := make(map[string]models.CartEntry, len(rows))
	var maxPosition int64
	for _, row := range rows {
		existing[row.Name] = row
		if row.Position > maxPosition {
			maxPosition = row.Position
		}
	}

	kept := make(map[string]struct{}, next.Len())
	for _, entry := range next.entries {
		kept[entry.Name] = struct{}{}
		row, ok := existing[entry.Name]
		if !ok {
			maxPosition++
			if err := db.Create(rowFromEntry(entry, maxPosition)).Error; err != nil {
				return err
			}
			continue
		}
		if row.Quantity == entry.Quantity && row.Price.Equal(entry.Price) && imageOf(row) == entry.Image {
			continue
		}
		updates := map[string]any{
			"quantity": entry.Quantity,
			"price":    entry.Price,
			"image":    optionalString(entry.Image),
		}
		if err := db.Model(&models.CartEntry{}).Where("name = ?", entry.Name).Updates(updates).Error; err != nil {
			return err
		}
	}

	var removed []string
	for _, row := range rows {
		if _, ok := kept[row.Name]; !ok {
			removed = append(removed, row.Name)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	return db.Where("name IN ?", removed).Delete(&models.CartEntry{}).Error
}

func stateFromRows(rows []models.CartEntry) State {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			Name:     row.Name,
			Price:    row.Price,
			Quantity: row.Quantity,
			Image:    imageOf(row),
		})
	}
	return State{entries: entries}
}

func rowFromEntry(entry Entry, position int64) *models.CartEntry {
	return &models.CartEntry{
		Name:     entry.Name,
		Price:    entry.Price,
		Quantity: entry.Quantity,
		Image:    optionalString(entry.Image),
		Position: position,
	}
}

func imageOf(row models.CartEntry) string {
	if row.Image == nil {
		return ""
	}
	return *row.Image
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}
