package docname

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/iancoleman/strcase"
)

// StagingPrefix is prepended to a target name to build its staging name.
const StagingPrefix = ".sprintctl~"

// ErrNotConforming is returned when a filename does not follow the
// naming convention.
var ErrNotConforming = errors.New("name does not match naming convention")

var (
	prefixPattern = regexp.MustCompile(`^[a-z][a-z0-9]*$`)
	slugPattern   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
	digitsPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Convention describes how document names are built.
type Convention struct {
	// Prefix is the fixed leading component, e.g. "sprint".
	Prefix string

	// Extension includes the leading dot, e.g. ".md".
	Extension string

	// Width is the zero-padded width of the id component.
	Width int

	// Label is the word used in document headers ("# Sprint 3: ...").
	// Defaults to the camel-cased prefix.
	Label string
}

// DefaultConvention returns the convention used for sprint planning documents.
func DefaultConvention() Convention {
	return Convention{
		Prefix:    "sprint",
		Extension: ".md",
		Width:     2,
	}
}

// Validate checks that the convention itself is usable.
func (c Convention) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Prefix,
			validation.Required,
			validation.Match(prefixPattern).Error("must be lowercase alphanumeric starting with a letter"),
		),
		validation.Field(&c.Extension,
			validation.Required,
			validation.By(func(value interface{}) error {
				ext, _ := value.(string)
				if !strings.HasPrefix(ext, ".") || strings.ContainsAny(ext, "~/") || len(ext) < 2 {
					return errors.New("must start with a dot")
				}
				return nil
			}),
		),
		validation.Field(&c.Width, validation.Required, validation.Min(1), validation.Max(9)),
	)
}

// HeaderLabel returns the label used in document header lines.
func (c Convention) HeaderLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return strcase.ToCamel(c.Prefix)
}

// Name is a parsed document name.
type Name struct {
	Prefix    string
	ID        int
	Slug      string
	Extension string

	width int
}

// String renders the name using the convention's zero padding.
func (n Name) String() string {
	return fmt.Sprintf("%s-%0*d-%s%s", n.Prefix, n.width, n.ID, n.Slug, n.Extension)
}

// Parse splits a filename into its components. The id token must be
// rendered with exactly the convention's padding so that String()
// reproduces the input byte for byte.
func (c Convention) Parse(filename string) (Name, error) {
	rest, ok := strings.CutPrefix(filename, c.Prefix+"-")
	if !ok {
		return Name{}, fmt.Errorf("%w: %q: missing %q prefix", ErrNotConforming, filename, c.Prefix+"-")
	}
	rest, ok = strings.CutSuffix(rest, c.Extension)
	if !ok {
		return Name{}, fmt.Errorf("%w: %q: missing %q extension", ErrNotConforming, filename, c.Extension)
	}

	token, slug, ok := strings.Cut(rest, "-")
	if !ok {
		return Name{}, fmt.Errorf("%w: %q: missing slug", ErrNotConforming, filename)
	}
	if !digitsPattern.MatchString(token) {
		return Name{}, fmt.Errorf("%w: %q: id %q is not numeric", ErrNotConforming, filename, token)
	}
	if len(token) < c.Width || (len(token) > c.Width && token[0] == '0') {
		return Name{}, fmt.Errorf("%w: %q: id %q is not padded to width %d", ErrNotConforming, filename, token, c.Width)
	}
	if !slugPattern.MatchString(slug) {
		return Name{}, fmt.Errorf("%w: %q: invalid slug %q", ErrNotConforming, filename, slug)
	}

	id, err := strconv.Atoi(token)
	if err != nil {
		return Name{}, fmt.Errorf("%w: %q: %v", ErrNotConforming, filename, err)
	}

	return Name{
		Prefix:    c.Prefix,
		ID:        id,
		Slug:      slug,
		Extension: c.Extension,
		width:     c.Width,
	}, nil
}

// Matches reports whether filename follows the convention.
func (c Convention) Matches(filename string) bool {
	_, err := c.Parse(filename)
	return err == nil
}

// Format builds a document name from an id and slug.
func (c Convention) Format(id int, slug string) string {
	return Name{Prefix: c.Prefix, ID: id, Slug: slug, Extension: c.Extension, width: c.Width}.String()
}

// StagingName returns the transient name used for target between the two
// rename phases.
func StagingName(target string) string {
	return StagingPrefix + target
}

// IsStaging reports whether name lives in the staging namespace.
func IsStaging(name string) bool {
	return strings.HasPrefix(name, StagingPrefix)
}

// FromStaging returns the target name encoded in a staging name.
func FromStaging(name string) (string, bool) {
	return strings.CutPrefix(name, StagingPrefix)
}
