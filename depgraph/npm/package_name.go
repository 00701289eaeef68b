package npm

import "strings"

// PackageName returns the installable package portion of a specifier:
// "lodash/fp" -> "lodash", "@aws-sdk/client-s3/dist" -> "@aws-sdk/client-s3".
func PackageName(specifier string) string {
	normalized := strings.ReplaceAll(specifier, `\`, "/")
	parts := strings.Split(normalized, "/")

	if strings.HasPrefix(normalized, "@") && len(parts) > 1 {
		return parts[0] + "/" + parts[1]
	}
	return parts[0]
}

// IsRelative reports whether a specifier addresses a local file.
func IsRelative(specifier string) bool {
	return strings.HasPrefix(specifier, ".")
}
