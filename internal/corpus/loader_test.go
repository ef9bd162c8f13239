package corpus

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func testLog() *logrus.Entry {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logrus.NewEntry(logger)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.txt", "second document")
	writeFile(t, dir, "a.txt", "first document")
	writeFile(t, dir, "c.txt", "third document")

	docs, skipped, err := NewLoader(dir, testLog()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(skipped) != 0 {
		t.Errorf("skipped = %v, want none", skipped)
	}
	if len(docs) != 3 {
		t.Fatalf("got %d documents, want 3", len(docs))
	}
	// Documents come back in file-name order.
	wantIDs := []string{"a.txt", "b.txt", "c.txt"}
	for i, want := range wantIDs {
		if docs[i].ID != want {
			t.Errorf("docs[%d].ID = %s, want %s", i, docs[i].ID, want)
		}
	}
	if docs[0].Text != "first document" {
		t.Errorf("docs[0].Text = %q, want %q", docs[0].Text, "first document")
	}
}

func TestLoadSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.txt", "content")
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	docs, _, err := NewLoader(dir, testLog()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "a.txt" {
		t.Errorf("docs = %v, want only a.txt", docs)
	}
}

func TestLoadMissingDirectory(t *testing.T) {
	_, _, err := NewLoader(filepath.Join(t.TempDir(), "missing"), testLog()).Load()
	if err == nil {
		t.Error("missing corpus directory should be an error")
	}
}

func TestLoadUnreadableDocumentIsSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, "ok.txt", "content")
	writeFile(t, dir, "locked.txt", "secret")
	if err := os.Chmod(filepath.Join(dir, "locked.txt"), 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	docs, skipped, err := NewLoader(dir, testLog()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != "ok.txt" {
		t.Errorf("docs = %v, want only ok.txt", docs)
	}
	if len(skipped) != 1 || skipped[0].ID != "locked.txt" {
		t.Errorf("skipped = %v, want locked.txt", skipped)
	}
}

func TestLoadEmptyDirectory(t *testing.T) {
	docs, skipped, err := NewLoader(t.TempDir(), testLog()).Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(docs) != 0 || len(skipped) != 0 {
		t.Errorf("empty dir: docs %v, skipped %v", docs, skipped)
	}
}
