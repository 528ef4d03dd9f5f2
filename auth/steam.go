package auth

import (
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/yohcop/openid-go"
)

const steamOpenIDEndpoint = "https://steamcommunity.com/openid"

var steamIDPattern = regexp.MustCompile(`^https?://steamcommunity\.com/openid/id/(\d{17})$`)

// SteamAuth handles Steam OpenID authentication
type SteamAuth struct {
	callbackURL string
	nonceStore  openid.NonceStore
	discovery   openid.DiscoveryCache
}

// NewSteamAuth creates a new SteamAuth instance
func NewSteamAuth(backendURL string) *SteamAuth {
	return &SteamAuth{
		callbackURL: strings.TrimSuffix(backendURL, "/") + "/api/v1/auth/steam/callback",
		nonceStore:  openid.NewSimpleNonceStore(),
		discovery:   openid.NewSimpleDiscoveryCache(),
	}
}

// GetAuthURL returns the Steam OpenID login URL
func (s *SteamAuth) GetAuthURL() (string, error) {
	return openid.RedirectURL(steamOpenIDEndpoint, s.callbackURL, "")
}

// ValidateCallback verifies the OpenID callback and returns the Steam ID
func (s *SteamAuth) ValidateCallback(fullURL string) (string, error) {
	id, err := openid.Verify(fullURL, s.discovery, s.nonceStore)
	if err != nil {
		return "", fmt.Errorf("failed to verify OpenID response: %w", err)
	}
	return extractSteamID(id)
}

// BuildCallbackURL reconstructs the callback URL from the incoming
// request using the configured backend URL, which stays correct behind
// a reverse proxy
func (s *SteamAuth) BuildCallbackURL(r *http.Request) string {
	return s.callbackURL + "?" + r.URL.RawQuery
}

// extractSteamID pulls the 64-bit Steam ID out of the OpenID claimed
// identity (https://steamcommunity.com/openid/id/76561198012345678)
func extractSteamID(openIDIdentity string) (string, error) {
	matches := steamIDPattern.FindStringSubmatch(openIDIdentity)
	if len(matches) != 2 {
		return "", fmt.Errorf("invalid Steam OpenID identity: %s", openIDIdentity)
	}
	return matches[1], nil
}

// ParseSteamID64 validates that a string is a valid 17-digit Steam ID
func ParseSteamID64(steamID string) (string, error) {
	steamID = strings.TrimSpace(steamID)
	if len(steamID) != 17 {
		return "", fmt.Errorf("invalid Steam ID length: %d", len(steamID))
	}
	for _, c := range steamID {
		if c < '0' || c > '9' {
			return "", fmt.Errorf("invalid Steam ID format")
		}
	}
	return steamID, nil
}
