package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func testManifest(root string) Manifest {
	return Manifest{
		Root: root,
		Models: []ModelEntry{
			{Path: "model/player.mv1", Clips: []Clip{{Name: "idle", Total: 60}, {Name: "walk", Total: 30}}},
			{Path: "model/missile.mv1"},
		},
		Textures: []string{"texture/ground.png", "texture/tree.png"},
	}
}

func TestCatalogLoadModel(t *testing.T) {
	c := NewCatalog(testManifest(""))

	m, err := c.LoadModel("model/player.mv1")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if m.Handle == 0 {
		t.Error("handle should be non-zero")
	}
	if len(m.Clips) != 2 || m.Clips[1].Name != "walk" {
		t.Errorf("clips = %v", m.Clips)
	}

	again, err := c.LoadModel("model/player.mv1")
	if err != nil {
		t.Fatal(err)
	}
	if again.Handle != m.Handle {
		t.Errorf("second load should reuse handle %d, got %d", m.Handle, again.Handle)
	}
	if hits, misses := c.Stats(); hits != 1 || misses != 1 {
		t.Errorf("stats = %d hits, %d misses", hits, misses)
	}

	missile, err := c.LoadModel("model/missile.mv1")
	if err != nil {
		t.Fatal(err)
	}
	if missile.Handle == m.Handle {
		t.Error("different paths should get different handles")
	}
}

func TestCatalogNotFound(t *testing.T) {
	c := NewCatalog(testManifest(""))

	if _, err := c.LoadModel("model/unknown.mv1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown model: expected ErrNotFound, got %v", err)
	}
	if _, err := c.LoadTexture("texture/unknown.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown texture: expected ErrNotFound, got %v", err)
	}
}

func TestCatalogChecksDisk(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "texture"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "texture", "ground.png"), []byte("png"), 0644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog(testManifest(root))
	if _, err := c.LoadTexture("texture/ground.png"); err != nil {
		t.Errorf("texture on disk should load: %v", err)
	}
	if _, err := c.LoadTexture("texture/tree.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("registered texture missing on disk: expected ErrNotFound, got %v", err)
	}
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assets.yaml")
	content := `root: data
models:
  - path: model/player.mv1
    clips:
      - name: idle
        total: 60
      - name: attack
        total: 40
textures:
  - texture/ground.png
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if m.Root != "data" {
		t.Errorf("root = %q", m.Root)
	}
	if len(m.Models) != 1 || len(m.Models[0].Clips) != 2 || m.Models[0].Clips[1].Total != 40 {
		t.Errorf("models = %+v", m.Models)
	}
	if len(m.Textures) != 1 {
		t.Errorf("textures = %v", m.Textures)
	}

	if _, err := LoadManifest(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing manifest should fail")
	}
}
