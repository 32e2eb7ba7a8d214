package templates

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/de-tools/audit-atlas/pkg/models/domain"
	templatestore "github.com/de-tools/audit-atlas/pkg/store/duckdb/template"
)

// Catalog manages the questionnaire templates available to audits.
type Catalog interface {
	Import(ctx context.Context, definition io.Reader) (*domain.Template, error)
	Install(ctx context.Context, t domain.Template) (*domain.Template, error)
	Get(ctx context.Context, id string) (*domain.Template, error)
	List(ctx context.Context) ([]domain.Template, error)
}

type defaultCatalog struct {
	store templatestore.Store
}

func NewCatalog(store templatestore.Store) Catalog {
	return &defaultCatalog{store: store}
}

func (c *defaultCatalog) Import(ctx context.Context, definition io.Reader) (*domain.Template, error) {
	t, err := Parse(definition)
	if err != nil {
		return nil, err
	}
	return c.Install(ctx, *t)
}

// Install persists a template, rejecting duplicate codes.
func (c *defaultCatalog) Install(ctx context.Context, t domain.Template) (*domain.Template, error) {
	existing, err := c.store.GetByCode(ctx, t.Code)
	if err != nil && !errors.Is(err, domain.ErrTemplateNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("template with code %s already exists", t.Code)
	}

	if err := c.store.Create(ctx, t); err != nil {
		return nil, err
	}
	return c.store.Get(ctx, t.ID)
}

func (c *defaultCatalog) Get(ctx context.Context, id string) (*domain.Template, error) {
	return c.store.Get(ctx, id)
}

func (c *defaultCatalog) List(ctx context.Context) ([]domain.Template, error) {
	return c.store.List(ctx)
}
