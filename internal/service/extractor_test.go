package service

import (
	"math/rand"
	"strings"
	"testing"
)

// isCodeOracle is the plain reading of the identifier shape used to
// cross-check the regular expression.
func isCodeOracle(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
				return false
			}
		}
	}
	return true
}

// tagOracle scans for the first run of two or more ASCII uppercase letters
func tagOracle(s string) (string, bool) {
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] < 'A' || runes[i] > 'Z' {
			i++
			continue
		}
		j := i
		for j < len(runes) && runes[j] >= 'A' && runes[j] <= 'Z' {
			j++
		}
		if j-i >= 2 {
			return string(runes[i:j]), true
		}
		i = j
	}
	return "", false
}

func TestIsCode(t *testing.T) {
	tests := []struct {
		token string
		want  bool
	}{
		{"AB12-CD34-EF56-GH78", true},
		{"XY99-ZZ11-QQ22-RR33", true},
		{"a-b-c-d", true},
		{"1234-5678-9012-3456", true},
		{"ab12-cd34-ef56", false},
		{"AB12-CD34-EF56-GH78-IJ90", false},
		{"AB12--CD34-EF56", false},
		{"-AB12-CD34-EF56-GH78", false},
		{"AB12-CD34-EF56-GH78-", false},
		{"AB12-CD34-EF56-GH_8", false},
		{"(AB12-CD34-EF56-GH78)", false},
		{"AB12-CD34-EF56-GH78.", false},
		{"ÅB12-CD34-EF56-GH78", false},
		{"", false},
		{"hello", false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			if got := IsCode(tt.token); got != tt.want {
				t.Fatalf("IsCode(%q) = %v, want %v", tt.token, got, tt.want)
			}
		})
	}
}

// TestIsCode_GeneratedStrings checks the pattern against the oracle over
// strings built from segment-ish pieces with varying hyphen counts.
func TestIsCode_GeneratedStrings(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabet := []rune("aZ09-_. xQ-")

	for i := 0; i < 5000; i++ {
		var b strings.Builder
		if i%2 == 0 {
			// mostly well-formed: random number of alnum segments
			segments := rng.Intn(6) + 1
			for s := 0; s < segments; s++ {
				if s > 0 {
					b.WriteByte('-')
				}
				for n := rng.Intn(4); n >= 0; n-- {
					b.WriteRune([]rune("AZaz09QX")[rng.Intn(8)])
				}
			}
		} else {
			for n := rng.Intn(20); n > 0; n-- {
				b.WriteRune(alphabet[rng.Intn(len(alphabet))])
			}
		}
		s := b.String()
		if got, want := IsCode(s), isCodeOracle(s); got != want {
			t.Fatalf("IsCode(%q) = %v, oracle says %v", s, got, want)
		}
	}
}

func FuzzIsCode(f *testing.F) {
	for _, seed := range []string{"AB12-CD34-EF56-GH78", "a-b-c", "a-b-c-d-e", "--", "A1-B2-C3-D4\n"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if got, want := IsCode(s), isCodeOracle(s); got != want {
			t.Fatalf("IsCode(%q) = %v, oracle says %v", s, got, want)
		}
		if IsCode(s) {
			tag, ok := DeriveTag(s)
			wantTag, wantOK := tagOracle(s)
			if tag != wantTag || ok != wantOK {
				t.Fatalf("DeriveTag(%q) = (%q,%v), oracle (%q,%v)", s, tag, ok, wantTag, wantOK)
			}
		}
	})
}

func TestDeriveTag(t *testing.T) {
	tests := []struct {
		code    string
		wantTag string
		wantOK  bool
	}{
		{"AB12-CD34-EF56-GH78", "AB", true},
		{"XY99-ZZ11-QQ22-RR33", "XY", true},
		// first run wins even when a later run is longer
		{"a1AB-CDEF-1234-5678", "AB", true},
		// the whole maximal run is the tag
		{"ABCD-12-34-56", "ABCD", true},
		// single capitals are not a run
		{"A1B2-C3D4-E5F6-G7H8", "", false},
		{"ab12-cd34-ef56-gh78", "", false},
		{"1234-5678-9012-3456", "", false},
		// hyphens break a run
		{"A-B-C-DE", "DE", true},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			tag, ok := DeriveTag(tt.code)
			if tag != tt.wantTag || ok != tt.wantOK {
				t.Fatalf("DeriveTag(%q) = (%q,%v), want (%q,%v)", tt.code, tag, ok, tt.wantTag, tt.wantOK)
			}
			again, _ := DeriveTag(tt.code)
			if again != tag {
				t.Fatalf("DeriveTag not deterministic: %q then %q", tag, again)
			}
		})
	}
}

func TestExtractRecords(t *testing.T) {
	words := []string{
		"Invoice", "AB12-CD34-EF56-GH78", "total:", "ab12-cd34-ef56-gh78",
		"AB12-CD34-EF56-GH78", "12-34", "XY99-ZZ11-QQ22-RR33,",
	}

	records := ExtractRecords(3, words)

	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d: %+v", len(records), records)
	}
	if records[0].Code != "AB12-CD34-EF56-GH78" || records[0].TagValue() != "AB" {
		t.Fatalf("unexpected first record %+v", records[0])
	}
	if records[1].Code != "ab12-cd34-ef56-gh78" || records[1].HasTag() {
		t.Fatalf("expected lowercase code without tag, got %+v", records[1])
	}
	// duplicates are preserved
	if records[2].Code != records[0].Code {
		t.Fatalf("expected duplicate code to be kept, got %+v", records[2])
	}
	for _, rec := range records {
		if rec.Page != 3 {
			t.Fatalf("expected page 3, got %d", rec.Page)
		}
		if rec.Code == "" || !IsCode(rec.Code) {
			t.Fatalf("record code does not match pattern: %q", rec.Code)
		}
		if !rec.HasTag() {
			if _, ok := tagOracle(rec.Code); ok {
				t.Fatalf("tag missing for %q", rec.Code)
			}
		}
	}
}

func TestExtractRecords_NoWords(t *testing.T) {
	if got := ExtractRecords(1, nil); len(got) != 0 {
		t.Fatalf("expected no records, got %v", got)
	}
}
