package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ramvarra/nfsiostatlog/pkg/nfsiostat"
)

func TestFileRotatesWhenOverThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfsiostat.log")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 2048), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path+BackupSuffix, []byte("old backup"), 0644); err != nil {
		t.Fatal(err)
	}

	f := NewFile(path, nil)
	f.MaxSize = 1024

	w, err := f.Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := w.Write([]byte("fresh\n")); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}

	bak, err := os.ReadFile(path + BackupSuffix)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if len(bak) != 2048 {
		t.Errorf("backup size = %d, want 2048", len(bak))
	}
	cur, _ := os.ReadFile(path)
	if string(cur) != "fresh\n" {
		t.Errorf("current file = %q", cur)
	}
}

func TestFileRotatesAtDefaultThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfsiostat.log")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), int(DefaultMaxSize)+1), 0644); err != nil {
		t.Fatal(err)
	}
	w, err := NewFile(path, nil).Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	w.Close()

	if _, err := os.Stat(path + BackupSuffix); err != nil {
		t.Errorf("expected backup file: %v", err)
	}
}

func TestFileAppendsBelowThreshold(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nfsiostat.log")
	f := NewFile(path, nil)

	for _, line := range []string{"one\n", "two\n"} {
		w, err := f.Open()
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		w.Write([]byte(line))
		w.Close()
	}

	got, _ := os.ReadFile(path)
	if string(got) != "one\ntwo\n" {
		t.Errorf("file = %q", got)
	}
	if _, err := os.Stat(path + BackupSuffix); !os.IsNotExist(err) {
		t.Error("unexpected backup file")
	}
}

func TestStdoutCloseKeepsWriter(t *testing.T) {
	var buf bytes.Buffer
	w, _ := Stdout{W: &buf}.Open()
	w.Write([]byte("a"))
	w.Close()
	w.Write([]byte("b"))
	if buf.String() != "ab" {
		t.Errorf("buffer = %q", buf.String())
	}
}

func TestWriteRecords(t *testing.T) {
	ts := time.Date(2024, 3, 1, 9, 0, 15, 0, time.Local)
	recs := []nfsiostat.Record{
		{Volume: "srv:/a", Mount: "/mnt/a:", Metrics: map[string]float64{"ops_sec": 1}, Timestamp: ts},
		{Volume: "srv:/b", Mount: "/mnt/b:", Metrics: map[string]float64{"ops_sec": 2}, Timestamp: ts},
	}
	var buf bytes.Buffer
	if err := WriteRecords(&buf, recs); err != nil {
		t.Fatalf("WriteRecords: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Error("output should end with a newline")
	}

	sc := bufio.NewScanner(&buf)
	n := 0
	for sc.Scan() {
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("line %d not JSON: %v", n, err)
		}
		if m["ts"] != "2024-03-01T09:00:15" {
			t.Errorf("line %d ts = %v", n, m["ts"])
		}
		n++
	}
	if n != 2 {
		t.Errorf("expected 2 lines, got %d", n)
	}
}

func TestDirUsage(t *testing.T) {
	u, err := DirUsage(filepath.Join(t.TempDir(), "nfsiostat.log"))
	if err != nil {
		t.Fatalf("DirUsage: %v", err)
	}
	if u.Total == 0 {
		t.Error("expected non-zero capacity")
	}
	if u.LowSpace(0) {
		t.Error("zero requirement can never be low")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[uint64]string{
		512:             "512 B",
		4 * 1024 * 1024: "4.0 MB",
		1536:            "1.5 KB",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %s, want %s", in, got, want)
		}
	}
}
