package syntax

import "testing"

func TestIsNewline(t *testing.T) {
	for _, c := range []rune{'\n', '\x0B', '\x0C', '\r', '\u0085', '\u2028', '\u2029'} {
		if !IsNewline(c) {
			t.Errorf("IsNewline(%q) = false, want true", c)
		}
	}
	for _, c := range []rune{'a', ' ', '\t', 0} {
		if IsNewline(c) {
			t.Errorf("IsNewline(%q) = true, want false", c)
		}
	}
}

func TestIsSpace(t *testing.T) {
	for _, c := range []rune{' ', '\t', '\n', '\r'} {
		if !IsSpace(c) {
			t.Errorf("IsSpace(%q) = false, want true", c)
		}
	}
	if IsSpace('a') {
		t.Error("IsSpace('a') = true, want false")
	}
}

func TestIsIDStartAndContinue(t *testing.T) {
	for _, c := range []rune{'a', 'Z', '_'} {
		if !IsIDStart(c) {
			t.Errorf("IsIDStart(%q) = false, want true", c)
		}
	}
	if IsIDStart('5') {
		t.Error("IsIDStart('5') = true, want false (digits can't start an identifier)")
	}
	if !IsIDContinue('5') {
		t.Error("IsIDContinue('5') = false, want true")
	}
	if IsIDContinue('-') {
		t.Error("IsIDContinue('-') = true, want false")
	}
}

func TestIsIdent(t *testing.T) {
	tests := []struct {
		s    string
		want bool
	}{
		{"foo", true},
		{"_foo123", true},
		{"", false},
		{"1foo", false},
		{"foo-bar", false},
		{"foo bar", false},
	}
	for _, tt := range tests {
		if got := IsIdent(tt.s); got != tt.want {
			t.Errorf("IsIdent(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestRuneName(t *testing.T) {
	if got := RuneName('a'); got == "" || got == "unknown character" {
		t.Errorf("RuneName('a') = %q, want a known name", got)
	}
}

func TestCountGraphemes(t *testing.T) {
	tests := []struct {
		name string
		s    string
		want int
	}{
		{"ascii", "abc", 3},
		{"empty", "", 0},
		{"emoji", "a\U0001F600b", 3},
		// A regional-indicator pair (a flag) collapses to one grapheme
		// cluster even though it's multiple runes.
		{"flag sequence", "\U0001F1FA\U0001F1F8", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountGraphemes(tt.s); got != tt.want {
				t.Errorf("CountGraphemes(%q) = %d, want %d", tt.s, got, tt.want)
			}
		})
	}
}
