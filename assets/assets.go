package assets

import (
	"embed"
	"io/fs"
)

// LevelsDir is the directory holding .tmx files inside FS.
const LevelsDir = "levels"

//go:embed all:levels
var assetFS embed.FS

// FS returns the embedded assets.
func FS() fs.FS {
	return assetFS
}
