package service

import "github.com/ronnaro/ata-academica-plus/internal/model"

// AuthState is the externally-driven authentication state the gate decides
// over. Role is meaningful only when the state is StateAuthenticated.
type AuthState struct {
	State string // StateLoading | StateUnauthenticated | StateAuthenticated
	Role  string
}

// Authentication states.
const (
	StateLoading         = "loading"
	StateUnauthenticated = "unauthenticated"
	StateAuthenticated   = "authenticated"
)

// GateDecision is the outcome of the access gate.
type GateDecision int

const (
	// DecisionLoading: authentication state not yet known, show a loading
	// indicator.
	DecisionLoading GateDecision = iota
	// DecisionRedirectLogin: no session, send the caller to the login entry.
	DecisionRedirectLogin
	// DecisionRedirectDashboard: authenticated but the required coordinator
	// role is not held; send to the default landing area.
	DecisionRedirectDashboard
	// DecisionRender: all checks pass, render the protected content.
	DecisionRender
)

// Decide is the access-gate predicate. The role must come from the directory
// lookup; callers never special-case an identity.
func Decide(state AuthState, requireCoordinator bool) GateDecision {
	switch state.State {
	case StateLoading:
		return DecisionLoading
	case StateAuthenticated:
		if requireCoordinator && state.Role != model.RoleCoordenador {
			return DecisionRedirectDashboard
		}
		return DecisionRender
	default:
		return DecisionRedirectLogin
	}
}
