package depgraph

import (
	"github.com/LegacyCodeHQ/includedeps/depgraph/fileset"
)

// materialize lists the files of every expanded package root, leaving out
// each package's own node_modules. Nested packages were resolved as roots of
// their own.
func (res *resolution) materialize() ([]string, error) {
	var files []string
	for _, pkg := range res.packages {
		pkgFiles, err := res.glob(pkg.Root, fileset.NestedModulesPattern)
		if err != nil {
			return nil, &ResolveError{Kind: KindFilesystem, Name: pkg.Root, Err: err}
		}
		files = append(files, pkgFiles...)
	}
	return files, nil
}
