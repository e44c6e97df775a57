package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/stagehire/catalog-backend/internal/modules/catalog/specs"
	"github.com/stagehire/catalog-backend/internal/observability"
	"github.com/stagehire/catalog-backend/internal/platform/dbctx"
)

const (
	SpecFormatEmpty      = "empty"
	SpecFormatStructured = "structured"
	SpecFormatLegacy     = "legacy"
)

var tracer = otel.Tracer("github.com/stagehire/catalog-backend/internal/services")

// SpecificationEditor is what the admin form loads and gets back after a save.
type SpecificationEditor struct {
	ProductID uuid.UUID          `json:"product_id"`
	Format    string             `json:"format"`
	Sections  []specs.Section    `json:"sections"`
	KeySpecs  []specs.KeySpecRef `json:"key_specs"`
	// Legacy holds the raw free-form map when Format is legacy.
	Legacy     specs.FlatMap     `json:"legacy,omitempty"`
	Collisions []specs.Collision `json:"collisions,omitempty"`
}

// SpecificationPreview shows the editor what a save would store.
type SpecificationPreview struct {
	Flat       specs.FlatMap     `json:"flat"`
	Sections   []specs.Section   `json:"sections"`
	Collisions []specs.Collision `json:"collisions,omitempty"`
}

type SpecificationService interface {
	SpecificationEditor(ctx context.Context, productID uuid.UUID) (*SpecificationEditor, error)
	// SaveSpecifications replaces the stored map and key specs wholesale.
	SaveSpecifications(ctx context.Context, productID uuid.UUID, sections []specs.Section, keySpecs []specs.KeySpecRef) (*SpecificationEditor, error)
	PreviewSpecifications(sections []specs.Section) SpecificationPreview
}

func (ps *productService) SpecificationEditor(ctx context.Context, productID uuid.UUID) (*SpecificationEditor, error) {
	p, err := ps.load(dbctx.Background(ctx), productID)
	if err != nil {
		return nil, err
	}
	flat := specs.FlatMapFromJSON(p.Specifications)
	ed := &SpecificationEditor{
		ProductID: p.ID,
		KeySpecs:  keySpecRefsFromJSON(p.KeySpecs),
	}
	switch {
	case len(flat) == 0:
		ed.Format = SpecFormatEmpty
		ed.Sections = []specs.Section{}
	case specs.IsStructuredFormat(flat):
		ed.Format = SpecFormatStructured
		ed.Sections = specs.Decode(flat)
	default:
		ed.Format = SpecFormatLegacy
		ed.Sections = specs.LegacySections(flat)
		ed.Legacy = flat
	}
	return ed, nil
}

func (ps *productService) SaveSpecifications(ctx context.Context, productID uuid.UUID, sections []specs.Section, keySpecs []specs.KeySpecRef) (*SpecificationEditor, error) {
	ctx, span := tracer.Start(ctx, "ProductService.SaveSpecifications")
	defer span.End()

	var (
		ed   *SpecificationEditor
		slug string
	)
	err := ps.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		p, err := ps.load(dbc, productID)
		if err != nil {
			return err
		}
		slug = p.Slug
		ed, err = ps.writeSpecifications(dbc, productID, sections, keySpecs)
		return err
	})
	metrics := observability.Current()
	if err != nil {
		span.RecordError(err)
		metrics.IncSpecSave("error")
		return nil, err
	}
	metrics.IncSpecSave("ok")
	recordCollisions(metrics, ed.Collisions)
	ps.display.invalidate(ctx, slug)
	if len(ed.Collisions) > 0 {
		ps.log.Warn("Specification labels merged on save", "product_id", productID, "collisions", len(ed.Collisions))
	}
	ps.log.Info("Specifications saved", "product_id", productID, "sections", len(ed.Sections), "key_specs", len(ed.KeySpecs))
	return ed, nil
}

func (ps *productService) writeSpecifications(dbc dbctx.Context, productID uuid.UUID, sections []specs.Section, keySpecs []specs.KeySpecRef) (*SpecificationEditor, error) {
	flat := specs.EncodeOrdered(sections)
	decoded := specs.Decode(flat)
	refs := specs.PruneKeySpecRefs(decoded, keySpecs)

	rawSpecs, err := specs.MarshalFlatMap(flat)
	if err != nil {
		return nil, fmt.Errorf("marshal specifications: %w", err)
	}
	rawRefs, err := json.Marshal(refs)
	if err != nil {
		return nil, fmt.Errorf("marshal key specs: %w", err)
	}
	if err := ps.productRepo.UpdateSpecifications(dbc, productID, datatypes.JSON(rawSpecs), datatypes.JSON(rawRefs)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound()
		}
		return nil, fmt.Errorf("save specifications: %w", err)
	}

	format := SpecFormatStructured
	if len(flat) == 0 {
		format = SpecFormatEmpty
	}
	return &SpecificationEditor{
		ProductID:  productID,
		Format:     format,
		Sections:   decoded,
		KeySpecs:   refs,
		Collisions: specs.FindCollisions(sections),
	}, nil
}

func (ps *productService) PreviewSpecifications(sections []specs.Section) SpecificationPreview {
	flat := specs.EncodeOrdered(sections)
	return SpecificationPreview{
		Flat:       flat,
		Sections:   specs.Decode(flat),
		Collisions: specs.FindCollisions(sections),
	}
}

func recordCollisions(m *observability.Metrics, collisions []specs.Collision) {
	var sections, rows int
	for _, c := range collisions {
		if c.Section == "" {
			sections++
		} else {
			rows++
		}
	}
	m.AddSpecCollisions("section", sections)
	m.AddSpecCollisions("row", rows)
}

// keySpecRefsFromJSON tolerates anything stored in the key_specs column.
func keySpecRefsFromJSON(raw []byte) []specs.KeySpecRef {
	out := []specs.KeySpecRef{}
	if len(raw) == 0 {
		return out
	}
	var refs []specs.KeySpecRef
	if err := json.Unmarshal(raw, &refs); err != nil {
		return out
	}
	for _, r := range refs {
		if r.Section == "" && r.Label == "" {
			continue
		}
		out = append(out, r)
	}
	return out
}

func emptyObject() datatypes.JSON { return datatypes.JSON([]byte("{}")) }
func emptyArray() datatypes.JSON  { return datatypes.JSON([]byte("[]")) }
