package leveldata

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/automoto/platcollide/shared/gamemath"
	"github.com/lafriks/go-tiled"
)

// LoadLevel parses a TMX file. It takes an fs.FS so callers can pass
// embed.FS (viewer) or os.DirFS (sim).
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name:      strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		MapWidth:  levelMap.Width * levelMap.TileWidth,
		MapHeight: levelMap.Height * levelMap.TileHeight,
		TileW:     levelMap.TileWidth,
		TileH:     levelMap.TileHeight,
	}

	var moving []TileLayer
	for _, layer := range levelMap.Layers {
		switch {
		case layer.Name == SolidLayerName:
			if level.SolidLayer() != nil {
				log.Printf("Warning: %s has more than one %s layer, ignoring %q", tmxPath, SolidLayerName, layer.Name)
				continue
			}
			level.Layers = append(level.Layers, parseLayer(levelMap, layer))
		case strings.HasPrefix(layer.Name, MovingLayerPrefix):
			tl := parseLayer(levelMap, layer)
			tl.Moving = true
			tl.DX = layer.Properties.GetFloat("dx")
			tl.DY = layer.Properties.GetFloat("dy")
			tl.Duration = layer.Properties.GetFloat("duration")
			moving = append(moving, tl)
		}
	}
	if level.SolidLayer() == nil {
		return nil, fmt.Errorf("load TMX %s: no %s layer", tmxPath, SolidLayerName)
	}
	level.Layers = append(level.Layers, moving...)

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case "PlayerSpawn":
			for _, o := range og.Objects {
				level.Spawns = append(level.Spawns, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case "Crates":
			for i, o := range og.Objects {
				level.Crates = append(level.Crates, SpawnPoint{X: o.X, Y: o.Y, Index: i})
			}
		case "Platforms":
			for _, o := range og.Objects {
				level.Platforms = append(level.Platforms, PlatformSpawn{
					X:        o.X,
					Y:        o.Y,
					W:        o.Width,
					H:        o.Height,
					DX:       o.Properties.GetFloat("dx"),
					DY:       o.Properties.GetFloat("dy"),
					Duration: o.Properties.GetFloat("duration"),
					Floating: o.Properties.GetBool("floating"),
				})
			}
		case "DeadZones":
			for _, o := range og.Objects {
				level.DeadZones = append(level.DeadZones, Area{
					X: o.X,
					Y: o.Y,
					W: o.Width,
					H: o.Height,
				})
			}
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(level.Spawns, func(i, j int) bool {
		return level.Spawns[i].X < level.Spawns[j].X
	})

	return level, nil
}

func parseLayer(levelMap *tiled.Map, layer *tiled.Layer) TileLayer {
	tl := TileLayer{
		Name:    layer.Name,
		Cols:    levelMap.Width,
		Rows:    levelMap.Height,
		Tiles:   make([]TileInfo, levelMap.Width*levelMap.Height),
		OffsetX: float64(layer.OffsetX),
		OffsetY: float64(layer.OffsetY),
		Flip:    layer.Properties.GetBool("flip"),
	}
	for i, tile := range layer.Tiles {
		if i >= len(tl.Tiles) {
			break
		}
		if tile.IsNil() {
			continue
		}
		info := TileInfo{Kind: TileSolid}
		if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
			info = tileInfo(tilesetTile)
		}
		if info.Kind == TileSlope && tile.VerticalFlip {
			info.Slope = gamemath.VerticalFlip(info.Slope)
		}
		tl.Tiles[i] = info
	}
	return tl
}

// tileInfo reads the collision properties of a tileset tile. A tile without
// properties is solid.
func tileInfo(tt *tiled.TilesetTile) TileInfo {
	props := tt.Properties
	info := TileInfo{Kind: TileSolid}
	if props.GetBool("unisolid") {
		info.Kind = TileUnisolid
	}
	// Passable tiles only carry attributes, water for example.
	if props.GetBool("passable") {
		info.Kind = TileEmpty
	}
	if name := props.GetString("slope"); name != "" {
		if data, ok := ParseSlope(name); ok {
			info.Kind = TileSlope
			info.Slope = data
		} else {
			log.Printf("Warning: unknown slope type %q, treating tile as solid", name)
		}
	}
	if attrs := props.GetString("attributes"); attrs != "" {
		for _, a := range strings.Split(attrs, ",") {
			if a = strings.TrimSpace(a); a != "" {
				info.Attributes = append(info.Attributes, a)
			}
		}
	}
	return info
}

// ParseSlope accepts the named ramps used by the level editor or raw
// triangle data written as an integer ("0x12" or "18").
func ParseSlope(name string) (int, bool) {
	if data, ok := gamemath.SlopeData(name); ok {
		return data, true
	}
	n, err := strconv.ParseInt(name, 0, 32)
	if err != nil || n < 0 {
		return 0, false
	}
	return int(n), true
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each
// one, and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		data, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[data.Name] = data
		names = append(names, data.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
