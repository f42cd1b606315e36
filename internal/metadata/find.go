package metadata

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/inodb/vibe-anno/internal/fsutil"
)

// ErrNotFound reports that no installed file with the requested basename
// exists anywhere in the sample metadata. This is a configuration authoring
// error: a fragment references a file the sample does not carry.
var ErrNotFound = errors.New("annotation input file not found in sample metadata")

// FindFile searches the raw metadata tree depth-first for an existing file
// path whose basename equals target. Map values are visited in sorted key
// order so the traversal is deterministic.
func (r *SampleRecord) FindFile(target string) (string, error) {
	if found := findFile(r.Raw, target); found != "" {
		return found, nil
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, target)
}

func findFile(tree interface{}, target string) string {
	switch node := tree.(type) {
	case map[string]interface{}:
		keys := make([]string, 0, len(node))
		for k := range node {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := findFile(node[k], target); found != "" {
				return found
			}
		}
	case []interface{}:
		for _, v := range node {
			if found := findFile(v, target); found != "" {
				return found
			}
		}
	case string:
		if strings.HasSuffix(node, "/"+target) && fsutil.Exists(node) {
			return node
		}
	}
	return ""
}
