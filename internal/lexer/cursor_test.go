package lexer

import (
	"testing"

	"displaystr/internal/source"
)

func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.rs", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte("a\nb") {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("expected zero bytes past EOF")
	}
}

func TestPeekAtAndPrefix(t *testing.T) {
	cursor := NewCursor(createFile("r#\"x\"#"))
	if cursor.PeekAt(1) != '#' || cursor.PeekAt(2) != '"' {
		t.Fatalf("PeekAt mismatch")
	}
	if cursor.PeekAt(100) != 0 {
		t.Fatalf("PeekAt past the end must be 0")
	}
	if !cursor.HasPrefix("r#") || cursor.HasPrefix("r#\"y") || cursor.HasPrefix("") {
		t.Fatalf("HasPrefix mismatch")
	}
}

func TestMarkResetSpan(t *testing.T) {
	cursor := NewCursor(createFile("hello world"))
	m := cursor.Mark()
	cursor.Advance(5)
	sp := cursor.SpanFrom(m)
	if sp.Start != 0 || sp.End != 5 {
		t.Fatalf("span = %v, want 0..5", sp)
	}
	cursor.Reset(m)
	if cursor.Off != 0 {
		t.Fatalf("Reset did not rewind: %d", cursor.Off)
	}
	if !cursor.Eat('h') || cursor.Eat('x') {
		t.Fatalf("Eat mismatch")
	}
	cursor.Advance(1000)
	if !cursor.EOF() {
		t.Fatalf("Advance must stop at limit")
	}
}
