package pattern

import (
	"errors"
	"testing"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name    string
		sig     string
		want    int
		wantErr bool
	}{
		{"simple", "AA BB CC", 3, false},
		{"wildcards", "AA ?? BB ?", 4, false},
		{"lowercase", "aa bb", 2, false},
		{"mixed case", "Aa bB", 2, false},
		{"extra whitespace", "  AA   BB  ", 2, false},
		{"tabs", "AA\tBB", 2, false},
		{"invalid hex", "AA ZZ", 0, true},
		{"three digit token", "AAA", 0, true},
		{"single digit token", "A", 0, true},
		{"empty", "", 0, true},
		{"whitespace only", "   ", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Compile(tt.sig)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedPattern) {
					t.Fatalf("Compile(%q) error = %v, want ErrMalformedPattern", tt.sig, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Compile(%q) unexpected error: %v", tt.sig, err)
			}
			if len(p) != tt.want {
				t.Fatalf("Compile(%q) produced %d tokens, want %d", tt.sig, len(p), tt.want)
			}
		})
	}
}

func TestCompileTokens(t *testing.T) {
	p, err := Compile("89 0d ? FF")
	if err != nil {
		t.Fatal(err)
	}

	want := Pattern{
		{Value: 0x89},
		{Value: 0x0D},
		{Wildcard: true},
		{Value: 0xFF},
	}
	if len(p) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(p), len(want))
	}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("token %d = %+v, want %+v", i, p[i], want[i])
		}
	}
}

func TestPatternString(t *testing.T) {
	const sig = "89 0D ? FF"
	p, err := Compile(sig)
	if err != nil {
		t.Fatal(err)
	}
	if got := p.String(); got != sig {
		t.Errorf("String() = %q, want %q", got, sig)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on a malformed signature")
		}
	}()
	MustCompile("AA ZZ")
}
