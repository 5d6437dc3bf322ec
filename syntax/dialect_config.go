package syntax

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// DialectManifest is the on-disk TOML shape for a project's dialect
// configuration, the same toml-struct-tag idiom the teacher uses for its
// package manifest: a literal struct with one field per setting, decoded
// in one call rather than hand-rolled key-by-key parsing.
type DialectManifest struct {
	Dialect string `toml:"dialect"`

	// Overrides lets a project start from a named base dialect and flip
	// individual flags without needing a from-scratch dialect name, e.g.
	// a Lua 5.1 project that also wants hex floats.
	Overrides *DialectOverrides `toml:"overrides"`
}

// DialectOverrides mirrors DialectOptions' boolean flags as pointers so a
// manifest can distinguish "not mentioned" from "explicitly false".
type DialectOverrides struct {
	Goto               *bool `toml:"goto"`
	BitwiseOperators   *bool `toml:"bitwise_operators"`
	IntegerDivision    *bool `toml:"integer_division"`
	Continue           *bool `toml:"continue"`
	CStyleOperators    *bool `toml:"c_style_operators"`
	CompoundAssignment *bool `toml:"compound_assignment"`
	HexFloats          *bool `toml:"hex_floats"`
}

// namedDialects resolves a manifest's dialect string to its base
// DialectOptions constructor, the same name-to-constructor lookup
// dialect.go's String method runs in reverse.
var namedDialects = map[string]func() DialectOptions{
	"lua5.1": Lua51,
	"lua5.2": Lua52,
	"lua5.3": Lua53,
	"lua5.4": Lua54,
	"luajit": LuaJIT,
	"glua":   GLua,
	"fivem":  FiveM,
}

// LoadDialectManifest decodes a TOML dialect manifest from text and
// resolves it to a DialectOptions value. An unknown dialect name or a
// malformed document is reported as an error rather than silently
// falling back to a default, the same "fail loudly on a bad manifest"
// stance as the teacher's PackageManifest.Validate.
func LoadDialectManifest(text string) (DialectOptions, error) {
	var manifest DialectManifest
	if _, err := toml.Decode(text, &manifest); err != nil {
		return DialectOptions{}, fmt.Errorf("dialect manifest: %w", err)
	}
	return manifest.Resolve()
}

// Resolve turns a decoded manifest into concrete DialectOptions, applying
// any overrides on top of the named base dialect.
func (m *DialectManifest) Resolve() (DialectOptions, error) {
	ctor, ok := namedDialects[m.Dialect]
	if !ok {
		return DialectOptions{}, fmt.Errorf("dialect manifest: unknown dialect %q", m.Dialect)
	}
	opts := ctor()
	if m.Overrides != nil {
		m.Overrides.applyTo(&opts)
	}
	return opts, nil
}

func (o *DialectOverrides) applyTo(opts *DialectOptions) {
	if o.Goto != nil {
		opts.Goto = *o.Goto
	}
	if o.BitwiseOperators != nil {
		opts.BitwiseOperators = *o.BitwiseOperators
	}
	if o.IntegerDivision != nil {
		opts.IntegerDivision = *o.IntegerDivision
	}
	if o.Continue != nil {
		opts.Continue = *o.Continue
	}
	if o.CStyleOperators != nil {
		opts.CStyleOperators = *o.CStyleOperators
	}
	if o.CompoundAssignment != nil {
		opts.CompoundAssignment = *o.CompoundAssignment
	}
	if o.HexFloats != nil {
		opts.HexFloats = *o.HexFloats
	}
}
