package testutil

import (
	"testing"

	"github.com/spf13/afero"
)

// DownloadsDir is the directory served by DownloadsFs.
const DownloadsDir = "/home/user/Downloads"

// WriteTree creates files on fs, including parent directories.
func WriteTree(t *testing.T, fs afero.Fs, files map[string]string) {
	t.Helper()
	for name, body := range files {
		if err := afero.WriteFile(fs, name, []byte(body), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
}

// DownloadsFs returns an in-memory filesystem holding a small downloads
// folder: one subdirectory, two visible files and a dotfile.
func DownloadsFs(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	WriteTree(t, fs, map[string]string{
		DownloadsDir + "/beautiful.jpg": string(make([]byte, 2048)),
		DownloadsDir + "/notes.txt":     "hello",
		DownloadsDir + "/.hidden":       "",
		DownloadsDir + "/photos/a.png":  "",
	})
	return fs
}
