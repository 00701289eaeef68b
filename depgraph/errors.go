package depgraph

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the fatal conditions that abort a resolution.
type ErrorKind int

const (
	// KindUnresolvableLocalImport: a relative import inside a local file
	// does not resolve to a file.
	KindUnresolvableLocalImport ErrorKind = iota + 1
	// KindUnresolvablePackage: a package specifier resolves through no
	// strategy and is not declared optional by its requester.
	KindUnresolvablePackage
	// KindMisconfiguredIgnore: package.json dependencies are trusted but
	// the package is not declared in the service manifest.
	KindMisconfiguredIgnore
	// KindHostMisconfiguration: the configuration is missing or unusable.
	KindHostMisconfiguration
	// KindFilesystem: a read failed for a reason other than a resolution miss.
	KindFilesystem
)

func (k ErrorKind) String() string {
	switch k {
	case KindUnresolvableLocalImport:
		return "unresolvable local import"
	case KindUnresolvablePackage:
		return "unresolvable package"
	case KindMisconfiguredIgnore:
		return "misconfigured ignore"
	case KindHostMisconfiguration:
		return "host misconfiguration"
	case KindFilesystem:
		return "filesystem"
	default:
		return "unknown"
	}
}

// ResolveError is returned for every fatal condition. Name is the package
// or module the condition concerns; From is the file or package root that
// requested it, when known.
type ResolveError struct {
	Kind ErrorKind
	Name string
	From string
	Err  error
}

func (e *ResolveError) Error() string {
	var msg string
	switch e.Kind {
	case KindUnresolvableLocalImport:
		msg = fmt.Sprintf("could not resolve local import %s", e.Name)
	case KindUnresolvablePackage:
		msg = fmt.Sprintf("could not find %s", e.Name)
	case KindMisconfiguredIgnore:
		msg = fmt.Sprintf("module %s should be ignored, but could not be found in package.json", e.Name)
	case KindHostMisconfiguration:
		msg = fmt.Sprintf("invalid configuration: %s", e.Name)
	default:
		msg = fmt.Sprintf("failed to read %s", e.Name)
	}

	if e.From != "" {
		msg += fmt.Sprintf(" (required from %s)", e.From)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ResolveError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err carries a *ResolveError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var resolveErr *ResolveError
	return errors.As(err, &resolveErr) && resolveErr.Kind == kind
}
