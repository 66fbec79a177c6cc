package tilemap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/elektrokombinacija/gridpath/internal/core"
)

const sample = `{
  "tilesets": [{"name": "base", "tilewidth": 4, "tileheight": 3}],
  "layers": [{"name": "ground", "data": [
     0, -1, -1, -1,
     3,  3, -1,  3,
    -1, -1, -1,  8
  ]}]
}`

func TestDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	if m.TileWidth != 4 || m.TileHeight != 3 {
		t.Errorf("size = %d x %d, want 4 x 3", m.TileWidth, m.TileHeight)
	}
	if m.Start != (core.Coordinate{X: 0, Y: 0}) {
		t.Errorf("Start = %v, want (0,0)", m.Start)
	}
	if m.Target != (core.Coordinate{X: 3, Y: 2}) {
		t.Errorf("Target = %v, want (3,2)", m.Target)
	}
	if got := m.Grid.CountBlocked(); got != 3 {
		t.Errorf("CountBlocked = %d, want 3", got)
	}
}

func TestDecodeLastWins(t *testing.T) {
	doc := `{
	  "tilesets": [{"tilewidth": 9, "tileheight": 9}, {"tilewidth": 2, "tileheight": 1}],
	  "layers": [{"data": [3, 3, 3]}, {"data": [0, 8]}]
	}`
	m, err := Decode(strings.NewReader(doc))
	if err != nil {
		t.Fatal(err)
	}
	if m.Grid.Width() != 2 || m.Grid.Height() != 1 {
		t.Errorf("grid = %dx%d, want 2x1", m.Grid.Width(), m.Grid.Height())
	}
	if m.Target != (core.Coordinate{X: 1, Y: 0}) {
		t.Errorf("Target = %v, want (1,0)", m.Target)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"bad json", `{"tilesets": [`, ErrParse},
		{"no tileset", `{"layers": [{"data": [0, 8]}]}`, ErrTileSize},
		{"zero width", `{"tilesets": [{"tilewidth": 0, "tileheight": 2}], "layers": [{"data": [0, 8]}]}`, ErrTileSize},
		{"no layers", `{"tilesets": [{"tilewidth": 2, "tileheight": 1}]}`, ErrNoLayerData},
		{"layer without data", `{"tilesets": [{"tilewidth": 2, "tileheight": 1}], "layers": [{"name": "objects"}]}`, ErrNoLayerData},
		{"length mismatch", `{"tilesets": [{"tilewidth": 2, "tileheight": 2}], "layers": [{"data": [0, 8]}]}`, core.ErrConfiguration},
		{"no start", `{"tilesets": [{"tilewidth": 2, "tileheight": 1}], "layers": [{"data": [-1, 8]}]}`, ErrMissingStart},
		{"no target", `{"tilesets": [{"tilewidth": 2, "tileheight": 1}], "layers": [{"data": [0, -1]}]}`, ErrMissingTarget},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			if !errors.Is(err, tt.want) {
				t.Errorf("Decode error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	if !errors.Is(err, ErrOpen) {
		t.Errorf("Load error = %v, want ErrOpen", err)
	}
}

func TestEncodeDecode(t *testing.T) {
	m, err := Decode(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "map.json")
	if err := Save(path, m); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	back, err := Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decoding saved map: %v", err)
	}
	if back.Start != m.Start || back.Target != m.Target {
		t.Errorf("markers = %v %v, want %v %v", back.Start, back.Target, m.Start, m.Target)
	}
	got, want := back.Grid.Cells(), m.Grid.Cells()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("cell %d = %d, want %d", i, got[i], want[i])
		}
	}
}
