package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"museum/entity"
	"museum/pubsub/bus"
	"museum/pubsub/outbox"
)

const (
	itemKindTicketType = "ticket_type"
	itemKindExtra      = "extra"
)

type catalogItemRow struct {
	Name        string `db:"name"`
	Description string `db:"description"`
}

type priceRow struct {
	ItemKind     string       `db:"item_kind"`
	ItemName     string       `db:"item_name"`
	EntrantType  string       `db:"entrant_type"`
	PriceInCents entity.Cents `db:"price_in_cents"`
}

type CatalogPostgresRepository struct {
	db *sqlx.DB
}

func NewCatalogPostgresRepository(db *sqlx.DB) *CatalogPostgresRepository {
	return &CatalogPostgresRepository{db: db}
}

// Get returns entity.ErrNotFound when no catalog was stored yet. All tables
// are read from one snapshot, so a concurrent Store is never seen half done.
func (r *CatalogPostgresRepository) Get(ctx context.Context) (entity.Catalog, error) {
	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelRepeatableRead,
		ReadOnly:  true,
	})
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not begin transaction: %w", err)
	}
	// read only, nothing to commit
	defer func() { _ = tx.Rollback() }()

	var ticketTypes []catalogItemRow
	err = tx.SelectContext(ctx, &ticketTypes, `SELECT name, description FROM ticket_types`)
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not select ticket types: %w", err)
	}

	if len(ticketTypes) == 0 {
		return entity.Catalog{}, entity.ErrNotFound
	}

	var extras []catalogItemRow
	err = tx.SelectContext(ctx, &extras, `SELECT name, description FROM extras`)
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not select extras: %w", err)
	}

	var prices []priceRow
	err = tx.SelectContext(ctx, &prices, `
		SELECT item_kind, item_name, entrant_type, price_in_cents
		FROM prices
	`)
	if err != nil {
		return entity.Catalog{}, fmt.Errorf("could not select prices: %w", err)
	}

	catalog := entity.Catalog{
		TicketTypes: make(map[string]entity.TicketCategory, len(ticketTypes)),
		Extras:      make(map[string]entity.ExtraItem, len(extras)),
	}

	for _, row := range ticketTypes {
		catalog.TicketTypes[row.Name] = entity.TicketCategory{
			Description:  row.Description,
			PriceInCents: map[string]entity.Cents{},
		}
	}
	for _, row := range extras {
		catalog.Extras[row.Name] = entity.ExtraItem{
			Description:  row.Description,
			PriceInCents: map[string]entity.Cents{},
		}
	}

	for _, row := range prices {
		switch row.ItemKind {
		case itemKindTicketType:
			if category, ok := catalog.TicketTypes[row.ItemName]; ok {
				category.PriceInCents[row.EntrantType] = row.PriceInCents
			}
		case itemKindExtra:
			if extra, ok := catalog.Extras[row.ItemName]; ok {
				extra.PriceInCents[row.EntrantType] = row.PriceInCents
			}
		}
	}

	return catalog, nil
}

// Store replaces the whole catalog and publishes entity.CatalogUpdated in the
// same transaction.
func (r *CatalogPostgresRepository) Store(ctx context.Context, catalog entity.Catalog) (err error) {
	if err := catalog.Validate(); err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			err = errors.Join(err, tx.Rollback())
			return
		}
		err = tx.Commit()
	}()

	for _, table := range []string{"prices", "ticket_types", "extras"} {
		if _, err = tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("could not clear %s: %w", table, err)
		}
	}

	for name, category := range catalog.TicketTypes {
		if err = insertItem(ctx, tx, itemKindTicketType, "ticket_types", name, category.Description, category.PriceInCents); err != nil {
			return err
		}
	}

	for name, extra := range catalog.Extras {
		if err = insertItem(ctx, tx, itemKindExtra, "extras", name, extra.Description, extra.PriceInCents); err != nil {
			return err
		}
	}

	outboxPublisher, err := outbox.NewPublisherForTx(ctx, tx)
	if err != nil {
		return fmt.Errorf("could not create outbox publisher: %w", err)
	}

	eventBus, err := bus.NewEventBus(outboxPublisher)
	if err != nil {
		return fmt.Errorf("could not create event bus: %w", err)
	}

	err = eventBus.Publish(ctx, entity.CatalogUpdated{
		Header:      entity.NewEventHeader(),
		TicketTypes: catalog.TicketTypeNames(),
		Extras:      catalog.ExtraNames(),
	})
	if err != nil {
		return fmt.Errorf("could not publish catalog updated event: %w", err)
	}

	return nil
}

func insertItem(
	ctx context.Context,
	tx *sqlx.Tx,
	kind string,
	table string,
	name string,
	description string,
	prices map[string]entity.Cents,
) error {
	_, err := tx.NamedExecContext(ctx, `
		INSERT INTO `+table+` (name, description)
		VALUES (:name, :description)
	`, catalogItemRow{Name: name, Description: description})
	if err != nil {
		return fmt.Errorf("could not insert %s %q: %w", kind, name, err)
	}

	for entrantType, price := range prices {
		_, err := tx.NamedExecContext(ctx, `
			INSERT INTO prices (item_kind, item_name, entrant_type, price_in_cents)
			VALUES (:item_kind, :item_name, :entrant_type, :price_in_cents)
		`, priceRow{
			ItemKind:     kind,
			ItemName:     name,
			EntrantType:  entrantType,
			PriceInCents: price,
		})
		if err != nil {
			return fmt.Errorf("could not insert %s %q price for %q: %w", kind, name, entrantType, err)
		}
	}

	return nil
}
