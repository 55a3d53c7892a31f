package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	cueyaml "cuelang.org/go/encoding/yaml"

	"github.com/hammamikhairi/ottoorder/internal/domain"
)

//go:embed schema.cue
var schemaSource string

// Format identifies the encoding of a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFromPath picks the document format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported catalog extension %q", filepath.Ext(path))
	}
}

// Load reads and validates the catalog document at path.
func Load(path string) (*domain.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return Parse(filepath.Base(path), data, format)
}

// Parse validates a catalog document against the embedded schema and
// decodes it. Menu categories keep the order in which the document
// declares them. Every failure wraps domain.ErrInvalidCatalog.
func Parse(name string, data []byte, format Format) (*domain.Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling catalog schema: %w", err)
	}

	var doc cue.Value
	switch format {
	case FormatYAML:
		f, err := cueyaml.Extract(name, data)
		if err != nil {
			return nil, invalid(err)
		}
		doc = ctx.BuildFile(f)
	default:
		doc = ctx.CompileBytes(data, cue.Filename(name))
	}
	if err := doc.Err(); err != nil {
		return nil, invalid(err)
	}

	value := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(doc)
	if err := value.Validate(cue.Concrete(true)); err != nil {
		return nil, invalid(err)
	}

	var cat domain.Catalog
	if err := value.Decode(&cat); err != nil {
		return nil, invalid(err)
	}

	menu := value.LookupPath(cue.ParsePath("menu"))
	if menu.Exists() {
		iter, err := menu.Fields()
		if err != nil {
			return nil, invalid(err)
		}
		for iter.Next() {
			var items []domain.MenuItem
			if err := iter.Value().Decode(&items); err != nil {
				return nil, invalid(err)
			}
			cat.Categories = append(cat.Categories, domain.Category{
				Name:  iter.Selector().Unquoted(),
				Items: items,
			})
		}
	}

	if err := checkUniqueIDs(&cat); err != nil {
		return nil, err
	}
	return &cat, nil
}

// checkUniqueIDs enforces that item ids are unique across categories.
func checkUniqueIDs(c *domain.Catalog) error {
	seen := make(map[string]string)
	var errs []error
	for _, cat := range c.Categories {
		for _, item := range cat.Items {
			if prev, ok := seen[item.ID]; ok {
				errs = append(errs, fmt.Errorf("%w: item id %q appears in %q and %q",
					domain.ErrInvalidCatalog, item.ID, prev, cat.Name))
				continue
			}
			seen[item.ID] = cat.Name
		}
	}
	return errors.Join(errs...)
}

func invalid(err error) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidCatalog, strings.TrimSpace(cueerrors.Details(err, nil)))
}
