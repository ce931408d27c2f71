package nfsiostat

import (
	"reflect"
	"testing"
)

func TestNormalize(t *testing.T) {
	text := "a mounted on /m:\r\n\n   \n  1 (0.0%) 2\n\tx\n"
	got := Normalize(text)
	want := []string{"a mounted on /m:", "  1 0.0 2", "\tx"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(""); len(got) != 0 {
		t.Errorf("expected no lines, got %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	text := block("srv:/a", "/mnt/a", 8) + block("srv:/b", "/mnt/b", 2)
	once := Normalize(text)
	twice := Normalize(joinLines(once))
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second pass changed content:\n%q\n%q", once, twice)
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"srv:/a mounted on /mnt/a:", []string{"srv:/a", "mounted", "on", "/mnt/a:"}},
		{"   10.0   0.0", []string{"", "10.0", "0.0"}},
		{"\t1 2", []string{"", "1", "2"}},
		{"read:  ops/s", []string{"read:", "ops/s"}},
		{"", []string{}},
	}
	for _, tt := range tests {
		got := Tokenize(tt.line)
		if len(got) == 0 && len(tt.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func joinLines(lines []string) string {
	var s string
	for _, l := range lines {
		s += l + "\n"
	}
	return s
}
