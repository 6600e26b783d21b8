package statepaths

import (
	"path/filepath"

	"github.com/SeagCha/Nelegal/internal/pathutil"
	"github.com/spf13/viper"
)

const sessionsFilename = "sessions.json"

func FileStateDir() string {
	return pathutil.ResolveStateDir(viper.GetString("file_state_dir"), "~/.nelegal")
}

func SessionsPath() string {
	return filepath.Join(FileStateDir(), sessionsFilename)
}
