package access

import "sync"

// RoutePolicy is the per-endpoint access policy, attached at registration
// time and read-only afterwards. The zero value means "authenticated, any
// role", which is the safe default for an unregistered route.
type RoutePolicy struct {
	// Public allows the route without inspecting any credential. A public
	// route stays public even when the request carries an invalid token.
	Public bool
	// Roles restricts the route to callers holding one of these roles.
	// Empty means any authenticated caller.
	Roles []Role
}

// PublicRoute is the policy for unrestricted endpoints.
func PublicRoute() RoutePolicy {
	return RoutePolicy{Public: true}
}

// AuthenticatedRoute requires a valid token with any role.
func AuthenticatedRoute() RoutePolicy {
	return RoutePolicy{}
}

// RestrictedRoute requires a valid token carrying one of the given roles.
func RestrictedRoute(roles ...Role) RoutePolicy {
	return RoutePolicy{Roles: roles}
}

// PolicyRegistry maps route identifiers to their policies. It replaces
// annotation/reflection lookups with an explicit registry populated while
// routes are declared, then consulted by value on every dispatch.
//
// Registration happens during wiring; the mutex only guards against sloppy
// init ordering, lookups during request handling are read-only.
type PolicyRegistry struct {
	mu       sync.RWMutex
	policies map[string]RoutePolicy
}

func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{
		policies: map[string]RoutePolicy{},
	}
}

// Register records the policy for a route identifier, replacing any previous
// entry.
func (r *PolicyRegistry) Register(routeID string, policy RoutePolicy) *PolicyRegistry {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.policies[routeID] = policy
	return r
}

// Lookup returns the policy for a route. Unregistered routes fall back to
// "authenticated, any role" rather than open access.
func (r *PolicyRegistry) Lookup(routeID string) RoutePolicy {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if policy, ok := r.policies[routeID]; ok {
		return policy
	}
	return AuthenticatedRoute()
}

// Routes returns the registered identifiers, useful for wiring-time audits.
func (r *PolicyRegistry) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.policies))
	for id := range r.policies {
		ids = append(ids, id)
	}
	return ids
}
