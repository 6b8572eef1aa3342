package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

// DiskDir is checked before the embedded copies so specs can be tuned
// without rebuilding.
const DiskDir = "prefabs"

//go:embed *.yaml
var PrefabsFS embed.FS

// Load returns the named prefab from DiskDir when present, otherwise the
// embedded copy.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, DiskDir+"/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(DiskDir, filepath.FromSlash(clean))
}
