package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileModifiedTracksChangesSinceSave(t *testing.T) {
	f := NewFile("")
	if f.Modified() {
		t.Fatal("a fresh file should not be modified")
	}
	if err := f.Insert(0, "hi"); err != nil {
		t.Fatal(err)
	}
	if !f.Modified() {
		t.Fatal("an inserting edit should mark the file modified")
	}
}

func TestFileSaveClearsModifiedAndSetsName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.txt")

	f := NewFile("")
	f.Insert(0, "content")
	if err := f.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if f.Modified() {
		t.Fatal("Save should clear the modified flag")
	}
	if f.Name != path {
		t.Fatalf("Name = %q, want %q", f.Name, path)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "content" {
		t.Fatalf("saved content = %q, want %q", got, "content")
	}
}

func TestFileMarksShiftWithAdjacentEdits(t *testing.T) {
	f := NewFileFromString("", "abcdef")
	id := f.NewMark(3)

	if err := f.Insert(0, "XY"); err != nil {
		t.Fatal(err)
	}
	if pos, _ := f.MarkPos(id); pos != 5 {
		t.Fatalf("mark after leading insert = %d, want 5", pos)
	}

	if err := f.Delete(0, 2); err != nil {
		t.Fatal(err)
	}
	if pos, _ := f.MarkPos(id); pos != 3 {
		t.Fatalf("mark after leading delete = %d, want 3", pos)
	}
}

func TestFileNamedMarkRoundTrips(t *testing.T) {
	f := NewFileFromString("", "abcdef")
	f.SetNamedMark('a', 4)
	pos, ok := f.NamedMarkPos('a')
	if !ok || pos != 4 {
		t.Fatalf("NamedMarkPos('a') = %d, %v, want 4, true", pos, ok)
	}

	f.SetNamedMark('a', 1)
	pos, ok = f.NamedMarkPos('a')
	if !ok || pos != 1 {
		t.Fatalf("re-set NamedMarkPos('a') = %d, %v, want 1, true", pos, ok)
	}
}

func TestFileChangeLogRecordsEditPositions(t *testing.T) {
	f := NewFileFromString("", "hello world")
	f.Insert(0, "X")
	f.Delete(1, 2)

	if f.ChangeCount() != 2 {
		t.Fatalf("ChangeCount() = %d, want 2", f.ChangeCount())
	}
	if pos, ok := f.ChangeAt(0); !ok || pos != 0 {
		t.Fatalf("ChangeAt(0) = %d, %v, want 0, true", pos, ok)
	}
	if _, ok := f.ChangeAt(5); ok {
		t.Fatal("ChangeAt out of range should report ok=false")
	}
}

func TestFileChangedOnDiskAcknowledge(t *testing.T) {
	f := NewFile("x")
	if f.ChangedOnDisk() {
		t.Fatal("a fresh file should not be flagged as changed on disk")
	}
	f.MarkChangedOnDisk()
	if !f.ChangedOnDisk() {
		t.Fatal("MarkChangedOnDisk should set the flag")
	}
	f.AcknowledgeDisk()
	if f.ChangedOnDisk() {
		t.Fatal("AcknowledgeDisk should clear the flag")
	}
}
