package domain

import "strings"

// Platform identifies one of the supported DAO governance platforms.
type Platform string

const (
	PlatformAragon   Platform = "aragon"
	PlatformDAOhaus  Platform = "daohaus"
	PlatformDAOstack Platform = "daostack"
)

// Platforms lists the supported platforms in display order.
var Platforms = []Platform{PlatformAragon, PlatformDAOhaus, PlatformDAOstack}

// platformAliases maps accepted spellings to platforms.
var platformAliases = map[string]Platform{
	"aragon":     PlatformAragon,
	"a":          PlatformAragon,
	"platform-a": PlatformAragon,
	"daohaus":    PlatformDAOhaus,
	"b":          PlatformDAOhaus,
	"platform-b": PlatformDAOhaus,
	"daostack":   PlatformDAOstack,
	"c":          PlatformDAOstack,
	"platform-c": PlatformDAOstack,
}

// ParsePlatform resolves a user-supplied platform name (case-insensitive).
// Returns *UnsupportedPlatformError for anything outside the supported set.
func ParsePlatform(name string) (Platform, error) {
	p, ok := platformAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", &UnsupportedPlatformError{Name: name}
	}
	return p, nil
}

// String returns the string representation of Platform.
func (p Platform) String() string {
	return string(p)
}

// IsValid checks if the platform is one of the supported values.
func (p Platform) IsValid() bool {
	return p == PlatformAragon || p == PlatformDAOhaus || p == PlatformDAOstack
}
