package genesis

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/nodecore/powchain/foundation/blockchain/block"
)

func TestDefaultMatchesConstants(t *testing.T) {
	g := Default()

	if g.DifficultyBits != DefaultDifficultyBits {
		t.Fatalf("DifficultyBits = %d, want %d", g.DifficultyBits, DefaultDifficultyBits)
	}
	if g.PoolSizeLimit != DefaultPoolSizeLimit {
		t.Fatalf("PoolSizeLimit = %d, want %d", g.PoolSizeLimit, DefaultPoolSizeLimit)
	}
	if g.Difficulty() != block.DifficultyFromBits(DefaultDifficultyBits) {
		t.Fatal("Difficulty() does not match DifficultyFromBits(DifficultyBits)")
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "genesis.json")

	override := struct {
		DifficultyBits int `json:"difficulty_bits"`
	}{DifficultyBits: 12}

	data, err := json.Marshal(override)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write genesis file: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if g.DifficultyBits != 12 {
		t.Fatalf("DifficultyBits = %d, want 12", g.DifficultyBits)
	}
	// Fields not present in the file fall back to Default()'s values.
	if g.PoolSizeLimit != DefaultPoolSizeLimit {
		t.Fatalf("PoolSizeLimit = %d, want the default %d", g.PoolSizeLimit, DefaultPoolSizeLimit)
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load("/nonexistent/genesis.json"); err == nil {
		t.Fatal("expected an error loading a nonexistent genesis file")
	}
}
