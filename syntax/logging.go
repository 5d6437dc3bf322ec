package syntax

import "log/slog"

// Option configures a Parser at construction time, the functional-option
// style the pack's text-report parser (playbymail-ottomap's cmd/parser)
// uses for its own lexer/parser pipeline rather than a bare options
// struct, since most callers only ever set one or two of these.
type Option func(*Parser)

// WithLogger attaches a logger the parser uses at Debug level when it
// recovers from malformed input: a lexer error becoming an error node, or
// the parser synthesizing a missing token or skipping to a recovery
// point. Nothing above Debug is ever logged from this package — it's a
// library, not a service, and has no business deciding what a host
// program's users should see. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) { p.logger = logger }
}

func (p *Parser) logRecovery(msg string, args ...any) {
	p.logger.Debug(msg, args...)
}
