// Package redirect implements transparent redirect following as a
// fetch pipeline stage: it inspects each response, rewrites the next
// request (method, body, headers, cookies, url) and resends until a
// terminal response or the hop budget runs out.
package redirect

import "net/http"

// Action is what the interceptor should do with a response.
type Action int

const (
	// NoRedirect: return the response to the caller unchanged.
	NoRedirect Action = iota
	// FollowAsGet: demote the next request to a bodyless GET.
	FollowAsGet
	// FollowAsReplay: resend the original method and the original
	// body to the new location.
	FollowAsReplay
)

func (a Action) String() string {
	switch a {
	case FollowAsGet:
		return "follow_as_get"
	case FollowAsReplay:
		return "follow_as_replay"
	default:
		return "no_redirect"
	}
}

var followableMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodPatch:  true,
	http.MethodDelete: true,
}

// Decide maps a request method and response status to an Action.
// standardsCompliant selects the RFC-faithful handling of 302 (replay
// the request) over the common browser behavior (demote to GET).
func Decide(method string, status int, standardsCompliant bool) Action {
	if !followableMethods[method] {
		return NoRedirect
	}
	switch status {
	case http.StatusTemporaryRedirect:
		return FollowAsReplay
	case http.StatusFound:
		if standardsCompliant {
			return FollowAsReplay
		}
		return FollowAsGet
	case http.StatusMovedPermanently, http.StatusSeeOther:
		return FollowAsGet
	default:
		return NoRedirect
	}
}
