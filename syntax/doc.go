// Package syntax lexes and parses Lua source across several dialects
// (Lua 5.1 through 5.4, LuaJIT, GLua, FiveM) into an immutable, Roslyn-style
// syntax tree: a shared, position-free green tree plus a lazily-built red
// tree facade that carries absolute offsets and parent links.
package syntax
