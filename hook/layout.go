package hook

import (
	"os"
	"path/filepath"
)

// Layout locates the hook's inputs. The binary is expected to live in
// <project>/hooks/before_build, next to hooks/platforms.json.
type Layout struct {
	ManifestFN string
	ConfigFN   string
	SourceFN   string
}

func DefaultLayout(installDir string) Layout {
	return ProjectLayout(filepath.Dir(filepath.Dir(installDir)))
}

// ProjectLayout locates the inputs from the Cordova project root, which is
// what Cordova passes to hooks on the command line.
func ProjectLayout(projectDir string) Layout {
	return Layout{
		ManifestFN: filepath.Join(projectDir, "hooks", "platforms.json"),
		ConfigFN:   filepath.Join(projectDir, "config.xml"),
		SourceFN:   filepath.Join(projectDir, "res", "icon.png"),
	}
}

// InstallDir returns the directory holding the running binary.
func InstallDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}
