package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileWriter_Write(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	fw, err := NewFileWriter(FileConfig{Path: path, MaxSize: 1024, MaxFiles: 3})
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	for _, line := range []string{"hello world\n", "second line\n"} {
		if _, err := fw.Write([]byte(line)); err != nil {
			t.Fatal(err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello world\nsecond line\n" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestFileWriter_Rotation(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")

	fw, err := NewFileWriter(FileConfig{Path: path, MaxSize: 50, MaxFiles: 3})
	if err != nil {
		t.Fatal(err)
	}
	defer fw.Close()

	for i := 0; i < 10; i++ {
		fw.Write([]byte("rotation test message\n"))
	}

	if _, err := os.Stat(path + ".1"); os.IsNotExist(err) {
		t.Error("expected rotated file .1 to exist")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() >= 50 {
		t.Errorf("current file size %d should be below max", info.Size())
	}
	if _, err := os.Stat(path + ".4"); !os.IsNotExist(err) {
		t.Error("file .4 should have been removed (maxFiles=3)")
	}
}

func TestFileWriter_AppendsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.log")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	fw, err := NewFileWriter(FileConfig{Path: path})
	if err != nil {
		t.Fatal(err)
	}
	fw.Write([]byte("new\n"))
	fw.Close()

	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "old\n") {
		t.Errorf("existing content lost: %q", data)
	}
}

func TestFileWriter_Closed(t *testing.T) {
	fw, err := NewFileWriter(FileConfig{Path: filepath.Join(t.TempDir(), "x.log")})
	if err != nil {
		t.Fatal(err)
	}
	fw.Close()
	if _, err := fw.Write([]byte("x")); err == nil {
		t.Error("write after close should fail")
	}
	if err := fw.Close(); err != nil {
		t.Errorf("second close: %v", err)
	}
}
