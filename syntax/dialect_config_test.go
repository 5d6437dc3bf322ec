package syntax

import "testing"

func TestLoadDialectManifestNamedDialect(t *testing.T) {
	opts, err := LoadDialectManifest(`dialect = "lua5.3"`)
	if err != nil {
		t.Fatalf("LoadDialectManifest failed: %v", err)
	}
	if opts.Dialect != DialectLua53 {
		t.Errorf("Dialect = %v, want DialectLua53", opts.Dialect)
	}
	if !opts.BitwiseOperators {
		t.Error("expected BitwiseOperators from the lua5.3 base")
	}
}

func TestLoadDialectManifestWithOverrides(t *testing.T) {
	text := `
dialect = "lua5.1"

[overrides]
hex_floats = true
goto = true
`
	opts, err := LoadDialectManifest(text)
	if err != nil {
		t.Fatalf("LoadDialectManifest failed: %v", err)
	}
	if !opts.HexFloats {
		t.Error("expected HexFloats override to apply")
	}
	if !opts.Goto {
		t.Error("expected Goto override to apply")
	}
	if opts.BitwiseOperators {
		t.Error("unrelated flags should stay at the base dialect's value")
	}
}

func TestLoadDialectManifestOverrideCanDisable(t *testing.T) {
	text := `
dialect = "lua5.4"

[overrides]
bitwise_operators = false
`
	opts, err := LoadDialectManifest(text)
	if err != nil {
		t.Fatalf("LoadDialectManifest failed: %v", err)
	}
	if opts.BitwiseOperators {
		t.Error("explicit false override should disable a flag the base dialect sets")
	}
	if !opts.HexFloats {
		t.Error("flags untouched by overrides should keep the base dialect's value")
	}
}

func TestLoadDialectManifestUnknownDialect(t *testing.T) {
	if _, err := LoadDialectManifest(`dialect = "lua9000"`); err == nil {
		t.Error("expected an error for an unrecognized dialect name")
	}
}

func TestLoadDialectManifestMalformedTOML(t *testing.T) {
	if _, err := LoadDialectManifest(`not valid toml =`); err == nil {
		t.Error("expected an error for malformed TOML")
	}
}

func TestDialectManifestResolveAllNamedDialects(t *testing.T) {
	names := map[string]Dialect{
		"lua5.1": DialectLua51,
		"lua5.2": DialectLua52,
		"lua5.3": DialectLua53,
		"lua5.4": DialectLua54,
		"luajit": DialectLuaJIT,
		"glua":   DialectGLua,
		"fivem":  DialectFiveM,
	}
	for name, want := range names {
		m := DialectManifest{Dialect: name}
		opts, err := m.Resolve()
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", name, err)
		}
		if opts.Dialect != want {
			t.Errorf("Resolve(%q).Dialect = %v, want %v", name, opts.Dialect, want)
		}
	}
}
