// Package ingest wires FileScanner, BlockCodec, ChainLinker, and
// SnapshotEngine into the single read-files-to-snapshot pipeline described
// in spec.md §6 and SPEC_FULL.md's CLI surface: "two configurations of one
// pipeline" selected by cobra subcommand (file output vs. a Redis sink).
package ingest

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileEnumerator opens blkNNNNN.dat files from a data directory
// sequentially until one fails to open, per spec.md §6. At least
// blk00000.dat must exist.
type FileEnumerator struct {
	DataDir string
}

// Files returns the ordered list of existing block files.
func (e FileEnumerator) Files() ([]string, error) {
	var files []string
	for n := 0; ; n++ {
		path := filepath.Join(e.DataDir, "blocks", fmt.Sprintf("blk%05d.dat", n))
		if _, err := os.Stat(path); err != nil {
			if n == 0 {
				return nil, fmt.Errorf("ingest: %s does not exist", path)
			}
			break
		}
		files = append(files, path)
	}
	return files, nil
}
