package fileutil

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.ttl")

	err := WriteFileAtomic(dst, 0o644, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello world\n")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hello world\n" {
		t.Fatalf("content mismatch: got %q", got)
	}
	assertOnlyEntry(t, dir, "out.ttl")
}

func TestWriteFileAtomicReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.ttl")
	if err := os.WriteFile(dst, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := WriteBytesAtomic(dst, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "new" {
		t.Fatalf("expected replaced content, got %q", got)
	}
}

func TestWriteFileAtomicFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.ttl")
	boom := errors.New("boom")

	err := WriteFileAtomic(dst, 0o644, func(w io.Writer) error {
		if _, err := io.WriteString(w, "partial"); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
	if _, err := os.Stat(dst); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no destination file, stat err = %v", err)
	}
	assertOnlyEntry(t, dir)
}

func TestWriteFileAtomicFailureKeepsPreviousContent(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out.ttl")
	if err := os.WriteFile(dst, []byte("previous"), 0o644); err != nil {
		t.Fatal(err)
	}
	err := WriteFileAtomic(dst, 0o644, func(io.Writer) error { return errors.New("fail") })
	if err == nil {
		t.Fatal("expected error")
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "previous" {
		t.Fatalf("expected previous content preserved, got %q", got)
	}
}

func TestWriteFileAtomicMissingDirectory(t *testing.T) {
	dst := filepath.Join(t.TempDir(), "missing", "out.ttl")
	if err := WriteBytesAtomic(dst, []byte("x"), 0o644); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func assertOnlyEntry(t *testing.T, dir string, names ...string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != len(names) {
		t.Fatalf("expected entries %v, got %d entries", names, len(entries))
	}
	for i, entry := range entries {
		if entry.Name() != names[i] {
			t.Fatalf("unexpected entry %q", entry.Name())
		}
	}
}
