package csvio

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	path := writeFixture(t, "a,b,c\n1,2,3\n4,5,6\n")

	header, rows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := []string{"a", "b", "c"}; !reflect.DeepEqual(header, want) {
		t.Errorf("header = %v, want %v", header, want)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Line != 2 || rows[1].Line != 3 {
		t.Errorf("line numbers = %d, %d, want 2, 3", rows[0].Line, rows[1].Line)
	}
	if want := []string{"4", "5", "6"}; !reflect.DeepEqual(rows[1].Fields, want) {
		t.Errorf("row 2 fields = %v, want %v", rows[1].Fields, want)
	}
}

func TestReadFileHeaderOnly(t *testing.T) {
	header, rows, err := ReadFile(writeFixture(t, "a,b,c\n"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if header == nil {
		t.Error("header = nil, want parsed header")
	}
	if len(rows) != 0 {
		t.Errorf("got %d rows, want 0", len(rows))
	}
}

func TestReadFileEmpty(t *testing.T) {
	header, rows, err := ReadFile(writeFixture(t, ""))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if header != nil {
		t.Errorf("header = %v, want nil for empty file", header)
	}
	if rows != nil {
		t.Errorf("rows = %v, want nil", rows)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, _, err := ReadFile(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestReadFileUnevenRows(t *testing.T) {
	// Short and long rows are passed through; the caller decides their fate.
	_, rows, err := ReadFile(writeFixture(t, "a,b,c\n1,2\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if len(rows[0].Fields) != 2 || len(rows[1].Fields) != 4 {
		t.Errorf("field counts = %d, %d, want 2, 4", len(rows[0].Fields), len(rows[1].Fields))
	}
}

func TestReadFileQuotedFields(t *testing.T) {
	_, rows, err := ReadFile(writeFixture(t, "a,b\n\"one, two\",three\n"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := "one, two"; rows[0].Fields[0] != want {
		t.Errorf("quoted field = %q, want %q", rows[0].Fields[0], want)
	}
}

func TestWriteFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "nested", "data.csv")
	header := []string{"id", "note"}
	rows := [][]string{{"1", "plain"}, {"2", "with, comma"}}

	if err := WriteFile(path, header, rows); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	gotHeader, gotRows, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !reflect.DeepEqual(gotHeader, header) {
		t.Errorf("header = %v, want %v", gotHeader, header)
	}
	if len(gotRows) != len(rows) {
		t.Fatalf("got %d rows, want %d", len(gotRows), len(rows))
	}
	for i, row := range rows {
		if !reflect.DeepEqual(gotRows[i].Fields, row) {
			t.Errorf("row %d = %v, want %v", i, gotRows[i].Fields, row)
		}
	}
}

func TestWriteFileTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := WriteFile(path, []string{"a"}, [][]string{{"1"}, {"2"}}); err != nil {
		t.Fatal(err)
	}
	if err := WriteFile(path, []string{"a"}, [][]string{{"9"}}); err != nil {
		t.Fatal(err)
	}

	_, rows, err := ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Fields[0] != "9" {
		t.Errorf("rows = %v, want single row 9", rows)
	}
}
