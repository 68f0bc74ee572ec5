// Package ident classifies post identifiers.
//
// Remote ids are the short base36 ids the content API hands out. Local ids are
// minted in-session for authored posts and carry LocalPrefix. Both can be
// navigated to, only remote ids may be sent to the API.
package ident

import (
	"regexp"
	"strings"
)

const LocalPrefix = "local-"

var remoteIDRegex = regexp.MustCompile(`^[A-Za-z0-9]{3,}$`)

func IsRemote(id string) bool {
	return remoteIDRegex.MatchString(id)
}

func IsLocal(id string) bool {
	return strings.HasPrefix(id, LocalPrefix) && len(id) > len(LocalPrefix)
}

// IsAddressable reports whether id refers to something a detail view can show.
func IsAddressable(id string) bool {
	return IsRemote(id) || IsLocal(id)
}

// IsNavigable controls link rendering.
func IsNavigable(id string) bool {
	return IsAddressable(id)
}

// IsRemotelyFetchable controls whether a detail fetch may hit the network.
func IsRemotelyFetchable(id string) bool {
	return IsRemote(id) && !IsLocal(id)
}
