// Package toolbar describes the anchors shown in the file browser toolbar and
// loads them from YAML files.
package toolbar

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/files-tooltip/internal/tooltip"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	KindButton     = "button"
	KindBreadcrumb = "breadcrumb"
)

// Button is a single toolbar entry. Breadcrumb entries take their caption
// from the directory being browsed.
type Button struct {
	ID      string `yaml:"id" validate:"required"`
	Kind    string `yaml:"kind" default:"button" validate:"oneof=button breadcrumb"`
	Caption string `yaml:"caption"`
	Label   string `yaml:"label"`
	Tooltip *bool  `yaml:"tooltip" default:"true"`
}

// SetDefaults fills the caption from the label when none is configured.
func (b *Button) SetDefaults() {
	if b.Caption == "" && b.Kind != KindBreadcrumb {
		b.Caption = strings.ToLower(b.Label)
	}
}

// HasTooltip reports whether the button declares a tooltip.
func (b Button) HasTooltip() bool {
	return b.Tooltip != nil && *b.Tooltip
}

// File is the on-disk toolbar definition.
type File struct {
	Buttons []Button `yaml:"buttons" validate:"required,min=1,unique=ID,dive"`
}

var validate = validator.New()

// Default returns the stock file browser toolbar.
func Default() []Button {
	return []Button{
		{ID: "breadcrumb-path-0", Kind: KindBreadcrumb, Tooltip: boolPtr(false)},
		{ID: "search-button", Kind: KindButton, Caption: "search", Label: "Search", Tooltip: boolPtr(true)},
		{ID: "view-button", Kind: KindButton, Caption: "view", Label: "Switch to thumbnail view", Tooltip: boolPtr(true)},
		{ID: "sort-button", Kind: KindButton, Caption: "sort", Label: "Sort options", Tooltip: boolPtr(true)},
		{ID: "gear-button", Kind: KindButton, Caption: "more", Label: "Settings", Tooltip: boolPtr(true)},
	}
}

// Load reads a toolbar definition from path on fs.
func Load(fs afero.Fs, path string) ([]Button, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read toolbar %s: %w", path, err)
	}
	buttons, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("toolbar %s: %w", path, err)
	}
	return buttons, nil
}

// Parse decodes, defaults and validates a toolbar definition.
func Parse(data []byte) ([]Button, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := Normalize(f.Buttons); err != nil {
		return nil, err
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return f.Buttons, nil
}

// Normalize applies defaults to buttons in place and checks that every
// tooltip has label text.
func Normalize(buttons []Button) error {
	var errs []error
	for i := range buttons {
		if err := defaults.Set(&buttons[i]); err != nil {
			return fmt.Errorf("defaults for button %d: %w", i, err)
		}
		b := buttons[i]
		if strings.ContainsAny(b.ID, " \t\n") {
			errs = append(errs, fmt.Errorf("button %q: id must not contain whitespace", b.ID))
		}
		if b.HasTooltip() && strings.TrimSpace(b.Label) == "" {
			errs = append(errs, fmt.Errorf("button %q: tooltip enabled without label", b.ID))
		}
	}
	return errors.Join(errs...)
}

// Register registers every button as an anchor on c.
func Register(c *tooltip.Controller, buttons []Button) error {
	for _, b := range buttons {
		if err := c.RegisterAnchor(b.ID, b.HasTooltip(), b.Label); err != nil {
			return fmt.Errorf("register %q: %w", b.ID, err)
		}
	}
	return nil
}

func boolPtr(v bool) *bool {
	return &v
}
