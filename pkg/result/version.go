package result

import "strings"

// VersionResolver extracts the application version from one result
// entry. Families with custom version encodings register a resolver;
// everything else reads app_version directly.
type VersionResolver func(entry *ResultEntry) string

var versionResolvers = map[string]VersionResolver{
	// perfbench encodes the version as the trailing hyphen segment of
	// its identifier instead of an app_version field.
	"perfbench": identifierVersion,
}

// RegisterVersionResolver installs a custom resolver for a benchmark
// family, replacing any existing one.
func RegisterVersionResolver(family string, r VersionResolver) {
	versionResolvers[family] = r
}

func resolveVersion(family string, entry *ResultEntry) string {
	if r, ok := versionResolvers[family]; ok {
		return r(entry)
	}

	return entry.AppVersion
}

func identifierVersion(entry *ResultEntry) string {
	segments := strings.Split(entry.Identifier, "-")

	return segments[len(segments)-1]
}
