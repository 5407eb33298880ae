package hcl_adapter

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sweepkit/internal/config"
	"github.com/specialistvlad/sweepkit/internal/ctxlog"
	"github.com/specialistvlad/sweepkit/internal/hclutil"
	"github.com/zclconf/go-cty/cty"
)

const sectionBlockType = "sweep"

var rootSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: sectionBlockType, LabelNames: []string{"name"}},
	},
}

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the file and translates every `sweep` block into a config.Section.
func (l *Loader) Load(ctx context.Context, path string) (*config.File, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(src, path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	content, diags := hclFile.Body.Content(rootSchema)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	blocks, diags := hclutil.IndexBlocksByLabel(content.Blocks, sectionBlockType)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	file := &config.File{Path: path, Sections: make(map[string]*config.Section, len(blocks))}
	for name, block := range blocks {
		section, err := l.translateSection(ctx, name, block, src)
		if err != nil {
			return nil, err
		}
		file.Sections[name] = section
	}

	logger.Debug("HCL loading complete.", "sections", file.SectionNames())
	return file, nil
}

// translateSection converts one `sweep` block into the format-agnostic model.
func (l *Loader) translateSection(ctx context.Context, name string, block *hcl.Block, src []byte) (*config.Section, error) {
	logger := ctxlog.FromContext(ctx).With("section", name)

	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("in section '%s': %w", name, diags)
	}

	section := config.NewSection(name, block.DefRange.Filename)
	for _, attr := range sortedAttributes(attrs) {
		attrDiags := l.translateAttribute(section, attr, src)
		diags = append(diags, attrDiags...)
	}
	if diags.HasErrors() {
		return nil, fmt.Errorf("in section '%s': %w", name, diags)
	}

	if err := section.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("Section translated.", "module", section.Module, "func", section.Func, "entries", len(section.Entries))
	return section, nil
}

func (l *Loader) translateAttribute(section *config.Section, attr *hcl.Attribute, src []byte) hcl.Diagnostics {
	var diags hcl.Diagnostics

	if role, ok := config.RoleForKey(attr.Name); ok {
		section.Roles[role], diags = hclutil.KeywordOrString(attr.Expr)
		return diags
	}

	switch attr.Name {
	case config.KeyModule:
		section.Module, diags = hclutil.KeywordOrString(attr.Expr)
	case config.KeyFunc:
		section.Func, diags = hclutil.KeywordOrString(attr.Expr)
	case config.KeyTitle:
		section.Title, diags = stringValue(attr.Expr)
	case config.KeyOuterVars:
		section.OuterVars, diags = nameList(attr.Expr)
	case config.KeyLabelSuppressVars:
		section.LabelSuppressVars, diags = nameList(attr.Expr)
	default:
		section.Entries = append(section.Entries, &config.Entry{
			Name:    attr.Name,
			Expr:    attr.Expr,
			Literal: hclutil.SourceText(attr.Expr, src),
		})
	}
	return diags
}

// sortedAttributes returns attributes in the order they appear in the source.
func sortedAttributes(attrs hcl.Attributes) []*hcl.Attribute {
	list := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		list = append(list, attr)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Range.Start.Byte < list[j].Range.Start.Byte
	})
	return list
}

// nameList accepts either a list of names or a single name.
func nameList(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	if _, diags := hcl.ExprList(expr); !diags.HasErrors() {
		return hclutil.KeywordList(expr)
	}
	name, diags := hclutil.KeywordOrString(expr)
	if diags.HasErrors() {
		return nil, diags
	}
	return []string{name}, nil
}

func stringValue(expr hcl.Expression) (string, hcl.Diagnostics) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	if val.IsNull() || val.Type() != cty.String {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid title",
			Detail:   "The title must be a string.",
			Subject:  expr.Range().Ptr(),
		}}
	}
	return val.AsString(), nil
}
