package depgraph

import (
	"errors"
	"path/filepath"

	"github.com/LegacyCodeHQ/includedeps/depgraph/npm"
)

// walk drains the pending local files. Relative specifiers resolve against
// the importing file's directory; package specifiers are handed to the
// package resolver immediately, from the service root.
func (res *resolution) walk() error {
	for len(res.pendingLocal) > 0 {
		last := len(res.pendingLocal) - 1
		current := res.pendingLocal[last]
		res.pendingLocal = res.pendingLocal[:last]

		if res.localFiles[current] {
			continue
		}
		res.localFiles[current] = true
		res.localOrder = append(res.localOrder, current)
		res.addFileVertex(current)

		specifiers, err := res.extractor.Specifiers(current)
		if err != nil {
			return &ResolveError{Kind: KindFilesystem, Name: current, Err: err}
		}

		for _, specifier := range specifiers {
			if npm.IsRelative(specifier) {
				if err := res.followLocal(current, specifier); err != nil {
					return err
				}
				continue
			}

			if err := res.handle(specifier, res.opts.ServicePath, current, nil, nil); err != nil {
				return err
			}
		}
	}
	return nil
}

func (res *resolution) followLocal(current, specifier string) error {
	resolved, err := res.modules.Resolve(specifier, filepath.Dir(current))
	if err != nil {
		kind := KindFilesystem
		if errors.Is(err, npm.ErrModuleNotFound) {
			kind = KindUnresolvableLocalImport
		}
		return &ResolveError{Kind: kind, Name: specifier, From: current, Err: err}
	}

	res.pendingLocal = append(res.pendingLocal, resolved)
	res.addFileVertex(resolved)
	res.addEdge(current, resolved)
	return nil
}
