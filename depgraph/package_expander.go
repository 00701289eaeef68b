package depgraph

import "sort"

// expand drains the pending packages. Each root is expanded at most once;
// its dependencies, peerDependencies and optionalDependencies are resolved
// from the root with this package's own optional declarations as tolerance.
func (res *resolution) expand() error {
	for len(res.pendingPackages) > 0 {
		last := len(res.pendingPackages) - 1
		current := res.pendingPackages[last]
		res.pendingPackages = res.pendingPackages[:last]

		if res.visitedRoots[current.Root] {
			continue
		}
		res.visitedRoots[current.Root] = true
		res.packages = append(res.packages, current)

		manifest := current.Manifest
		if manifest == nil {
			continue
		}

		for _, name := range declaredNames(manifest.DependencySections()) {
			err := res.handle(name, current.Root, current.Root, manifest.OptionalDependencies, manifest.PeerDependenciesMeta)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// declaredNames lists each name once, section by section, sorted within a
// section since decoded JSON objects lose their order. npm lists optional
// dependencies under dependencies too.
func declaredNames(sections []map[string]string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, section := range sections {
		keys := make([]string, 0, len(section))
		for key := range section {
			if !seen[key] {
				seen[key] = true
				keys = append(keys, key)
			}
		}
		sort.Strings(keys)
		names = append(names, keys...)
	}
	return names
}
