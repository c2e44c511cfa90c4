package core

import (
	"fmt"
	"os"

	"github.com/automoto/platcollide/assets"
	"github.com/automoto/platcollide/shared/leveldata"
)

// LevelSet is every level found in a levels directory.
type LevelSet struct {
	Levels map[string]*leveldata.Level
	Names  []string
}

// LoadLevelSet loads all .tmx levels from dir on disk, or from the embedded
// assets when dir is empty.
func LoadLevelSet(dir string) (*LevelSet, error) {
	fsys, levelsDir := assets.FS(), assets.LevelsDir
	if dir != "" {
		fsys, levelsDir = os.DirFS(dir), "."
	}
	levels, names, err := leveldata.LoadAllLevels(fsys, levelsDir)
	if err != nil {
		return nil, fmt.Errorf("load all levels: %w", err)
	}
	return &LevelSet{Levels: levels, Names: names}, nil
}

// Index returns the position of the named level, or an error listing the
// known levels. An empty name selects the first level.
func (s *LevelSet) Index(name string) (int, error) {
	if name == "" {
		return 0, nil
	}
	for i, n := range s.Names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown level %q, have %v", name, s.Names)
}
