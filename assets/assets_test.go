package assets

import (
	"testing"

	"github.com/automoto/platcollide/shared/leveldata"
)

func TestDemoLevelLoads(t *testing.T) {
	levels, names, err := leveldata.LoadAllLevels(FS(), LevelsDir)
	if err != nil {
		t.Fatalf("LoadAllLevels: %v", err)
	}
	demo := levels["demo"]
	if demo == nil {
		t.Fatalf("no demo level in %v", names)
	}
	if demo.MapWidth != 1280 || demo.MapHeight != 640 {
		t.Errorf("demo is %dx%d", demo.MapWidth, demo.MapHeight)
	}
	if len(demo.Layers) != 2 || !demo.Layers[1].Moving {
		t.Errorf("want the solid layer and one moving layer, got %d", len(demo.Layers))
	}
	if len(demo.Spawns) != 1 || len(demo.Platforms) != 2 || len(demo.Crates) != 2 || len(demo.DeadZones) != 1 {
		t.Errorf("objects: %d spawns, %d platforms, %d crates, %d dead zones",
			len(demo.Spawns), len(demo.Platforms), len(demo.Crates), len(demo.DeadZones))
	}
	water := demo.SolidLayer().At(33, 16)
	if water.Kind != leveldata.TileEmpty || len(water.Attributes) != 1 || water.Attributes[0] != "water" {
		t.Errorf("water tile = %+v", water)
	}
}
