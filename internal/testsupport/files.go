package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteRunCSV writes a run file under root/<pilot>/<name> and returns its
// path.
func WriteRunCSV(t testing.TB, root, pilot, name, content string) string {
	t.Helper()

	dir := filepath.Join(root, pilot)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir pilot dir: %v", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write run csv: %v", err)
	}
	return path
}

// SimpleRunCSV is a three-row well-formed run: constant 10 mph, 100 W.
const SimpleRunCSV = `timestamp,speed,power
2024-05-01 10:00:00,10,100
2024-05-01 10:00:01,10,100
2024-05-01 10:00:02,10,100
`
