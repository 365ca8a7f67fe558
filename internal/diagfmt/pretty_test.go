package diagfmt

import (
	"bytes"
	"strings"
	"testing"

	"displaystr/internal/diag"
	"displaystr/internal/source"
)

// TestPathModes проверяет различные режимы форматирования путей
func TestPathModes(t *testing.T) {
	fs := source.NewFileSet()
	content := []byte("let x = \"unterminated string\n")
	fileID := fs.AddVirtual("/home/user/project/src/test.rs", content)
	fs.SetBaseDir("/home/user/project")

	bag := diag.NewBag(10)
	bag.Add(diag.New(diag.SevError, diag.LexUnterminatedString, source.Span{File: fileID, Start: 8, End: 28}, "Unterminated string literal"))

	tests := []struct {
		name     string
		mode     PathMode
		contains string
	}{
		{"Absolute path", PathModeAbsolute, "/home/user/project/src/test.rs"},
		{"Relative path", PathModeRelative, "src/test.rs"},
		{"Basename only", PathModeBasename, "test.rs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: tt.mode})
			output := buf.String()

			if !strings.Contains(output, tt.contains) {
				t.Errorf("Expected output to contain %q, got:\n%s", tt.contains, output)
			}
			for _, want := range []string{"ERROR", "LEX1002", "Unterminated string"} {
				if !strings.Contains(output, want) {
					t.Errorf("Expected %q in output:\n%s", want, output)
				}
			}
		})
	}
}

func TestPrettyCaret(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("color.rs", []byte(enumSource))
	bag := diag.NewBag(10)
	bag.Add(missingDiscriminant(fileID))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	want := "color.rs:3:5: ERROR EXP3003: expected this variant to have a string discriminant\n" +
		" 3 |     Green(u8),\n" +
		"   |     ^~~~~\n"
	if got := buf.String(); got != want {
		t.Errorf("unexpected output:\n got: %q\nwant: %q", got, want)
	}
}

func TestPrettyContextAndWideRunes(t *testing.T) {
	fs := source.NewFileSet()
	src := "enum Цвет {\n    Красный = 5,\n}\n"
	fileID := fs.AddVirtual("wide.rs", []byte(src))
	start := uint32(strings.Index(src, "5"))
	bag := diag.NewBag(10)
	bag.Add(diag.NewError(diag.ExpExpectStringLiteral, source.Span{File: fileID, Start: start, End: start + 1}, "expected string literal"))

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{Context: 1, PathMode: PathModeBasename})
	lines := strings.Split(buf.String(), "\n")
	if len(lines) < 5 {
		t.Fatalf("expected header, three context lines and a caret, got:\n%s", buf.String())
	}
	if !strings.HasPrefix(lines[1], " 1 | enum") || !strings.HasPrefix(lines[4], " 3 | }") {
		t.Errorf("context lines missing:\n%s", buf.String())
	}
	// "    Красный = " занимает 14 колонок
	if want := "   | " + strings.Repeat(" ", 14) + "^"; lines[3] != want {
		t.Errorf("caret misaligned: %q", lines[3])
	}
}

func TestPrettyNotesAndFixes(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("color.rs", []byte(enumSource))

	d := missingDiscriminant(fileID).WithNote(source.Span{File: fileID, Start: 0, End: 4}, "in this enum")
	bag := diag.NewBag(4)
	bag.Add(d)

	var buf bytes.Buffer
	Pretty(&buf, bag, fs, PrettyOpts{
		PathMode:    PathModeBasename,
		ShowNotes:   true,
		ShowFixes:   true,
		ShowPreview: true,
	})
	output := buf.String()

	for _, want := range []string{
		"note: color.rs:1:1: in this enum",
		"fix #1: add a display string",
		`apply=" = \"\""`,
		"preview:",
		"- " + "    Green(u8),",
		"+ " + `    Green(u8) = "",`,
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestPrettyColor(t *testing.T) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("color.rs", []byte(enumSource))
	bag := diag.NewBag(4)
	bag.Add(missingDiscriminant(fileID))

	var plain, colored bytes.Buffer
	Pretty(&plain, bag, fs, PrettyOpts{PathMode: PathModeBasename})
	Pretty(&colored, bag, fs, PrettyOpts{PathMode: PathModeBasename, Color: true})
	if strings.Contains(plain.String(), "\x1b[") {
		t.Errorf("plain output contains escape codes")
	}
	if !strings.Contains(colored.String(), "\x1b[") {
		t.Errorf("colored output has no escape codes")
	}
}
