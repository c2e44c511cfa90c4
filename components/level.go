package components

import (
	"github.com/automoto/platcollide/shared/leveldata"
	"github.com/yohamta/donburi"
)

type LevelData struct {
	CurrentLevel *leveldata.Level
	LevelIndex   int
	Names        []string
	Levels       map[string]*leveldata.Level
}

var Level = donburi.NewComponentType[LevelData]()
