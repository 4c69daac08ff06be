// Package script replays scripted input events against a tooltip controller
// running on a backend loop and checks the surface along the way.
package script

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/atomicstack/files-tooltip/internal/toolbar"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultDelay is the hover delay used when a script does not set one.
const DefaultDelay = 500 * time.Millisecond

// File is a parsed event script.
type File struct {
	Delay   *time.Duration   `yaml:"delay"`
	Buttons []toolbar.Button `yaml:"buttons" validate:"unique=ID,dive"`
	Steps   []Step           `yaml:"steps" validate:"required,min=1,dive"`
}

// Step is one line of a script: an event, a pause or an expectation.
type Step struct {
	Event  string        `yaml:"event" validate:"omitempty,oneof=focus blur pointerEnter pointerLeave globalClick dismiss"`
	Target string        `yaml:"target"`
	Wait   time.Duration `yaml:"wait" validate:"gte=0"`
	Expect *Expect       `yaml:"expect"`
}

// Expect checks the surface. Unset fields are not checked.
type Expect struct {
	Visible *bool   `yaml:"visible"`
	Label   *string `yaml:"label"`
	Anchor  *string `yaml:"anchor"`
}

var validate = validator.New()

// HoverDelay returns the configured delay or DefaultDelay.
func (f *File) HoverDelay() time.Duration {
	if f.Delay == nil {
		return DefaultDelay
	}
	return *f.Delay
}

// Load reads a script from path on fs.
func Load(fs afero.Fs, path string) (*File, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read script %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return f, nil
}

// Parse decodes and validates a script.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if len(f.Buttons) == 0 {
		f.Buttons = toolbar.Default()
	} else if err := toolbar.Normalize(f.Buttons); err != nil {
		return nil, err
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	var errs []error
	if f.Delay != nil && *f.Delay < 0 {
		errs = append(errs, fmt.Errorf("delay must be >= 0 (got %s)", *f.Delay))
	}
	for i, s := range f.Steps {
		if err := s.check(); err != nil {
			errs = append(errs, fmt.Errorf("step %d: %w", i+1, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s Step) check() error {
	set := 0
	if s.Event != "" {
		set++
	}
	if s.Wait > 0 {
		set++
	}
	if s.Expect != nil {
		set++
	}
	switch {
	case set == 0:
		return errors.New("needs one of event, wait or expect")
	case set > 1:
		return errors.New("event, wait and expect are mutually exclusive")
	}
	if s.Event == "" || s.Target != "" {
		return nil
	}
	switch s.Event {
	case "globalClick", "dismiss":
		return nil
	}
	return fmt.Errorf("%s needs a target", s.Event)
}

// String describes the step for reports.
func (s Step) String() string {
	switch {
	case s.Event != "" && s.Target != "":
		return s.Event + " " + s.Target
	case s.Event != "":
		return s.Event
	case s.Wait > 0:
		return "wait " + s.Wait.String()
	case s.Expect != nil:
		return "expect " + s.Expect.String()
	}
	return ""
}

func (e Expect) String() string {
	var parts []string
	if e.Visible != nil {
		parts = append(parts, fmt.Sprintf("visible=%t", *e.Visible))
	}
	if e.Label != nil {
		parts = append(parts, fmt.Sprintf("label=%q", *e.Label))
	}
	if e.Anchor != nil {
		parts = append(parts, fmt.Sprintf("anchor=%s", *e.Anchor))
	}
	return strings.Join(parts, " ")
}
