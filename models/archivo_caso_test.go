package models

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAfterDeleteRemovesStoredObject(t *testing.T) {
	stored := filepath.Join(t.TempDir(), "acta.pdf")
	if err := os.WriteFile(stored, []byte("contenido"), 0o644); err != nil {
		t.Fatalf("failed to write stored object: %v", err)
	}

	archivo := ArchivoCaso{RutaAlmacenada: stored}
	if err := archivo.AfterDelete(nil); err != nil {
		t.Fatalf("AfterDelete failed: %v", err)
	}

	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Errorf("stored object must be removed with the row, stat err: %v", err)
	}
}

func TestAfterDeleteMissingObjectIsNotAnError(t *testing.T) {
	archivo := ArchivoCaso{RutaAlmacenada: filepath.Join(t.TempDir(), "no-existe.pdf")}
	if err := archivo.AfterDelete(nil); err != nil {
		t.Errorf("missing stored object must not fail the delete: %v", err)
	}
}

func TestAfterDeleteEmptyPathIsNoOp(t *testing.T) {
	archivo := ArchivoCaso{}
	if err := archivo.AfterDelete(nil); err != nil {
		t.Errorf("empty path must be a no-op: %v", err)
	}
}
