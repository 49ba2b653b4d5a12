package access

import "context"

// DenyReason tells the boundary layer which response to emit for a denial.
type DenyReason int

const (
	// DenyNone accompanies an allowed decision.
	DenyNone DenyReason = iota
	// DenyUnauthenticated means no usable credential was presented.
	DenyUnauthenticated
	// DenyForbidden means the caller authenticated but lacks a required role.
	DenyForbidden
)

func (r DenyReason) String() string {
	switch r {
	case DenyNone:
		return "none"
	case DenyUnauthenticated:
		return "unauthenticated"
	case DenyForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Decision is the verdict for one request. It is produced exactly once and
// never mutates any record; Principal is nil for public-route allows and for
// every denial.
type Decision struct {
	Allowed   bool
	Principal *Claims
	Reason    DenyReason
}

// Err maps a denial to its externally visible error. Token-level detail
// (malformed vs bad signature vs expired) is deliberately not exposed.
func (d Decision) Err() error {
	switch d.Reason {
	case DenyUnauthenticated:
		return ErrUnauthenticated
	case DenyForbidden:
		return ErrForbidden
	default:
		return nil
	}
}

// Engine combines a route policy with an optional bearer token into an
// allow/deny verdict. It holds no mutable state beyond its collaborators and
// is safe under unbounded concurrent invocation; the context is used only by
// the optional foreign-token store read.
type Engine struct {
	verifier TokenVerifier
	foreign  PrincipalResolver
	logger   Logger
}

func NewEngine(verifier TokenVerifier) *Engine {
	return &Engine{
		verifier: verifier,
		logger:   defLogger{},
	}
}

// WithForeignResolver enables recognition of tokens minted by a cooperating
// issuer when self-issued verification fails.
func (e *Engine) WithForeignResolver(resolver PrincipalResolver) *Engine {
	e.foreign = resolver
	return e
}

func (e *Engine) WithLogger(logger Logger) *Engine {
	if logger != nil {
		e.logger = logger
	}
	return e
}

// Decide evaluates the policy checks in their fixed order:
//
//  1. Public short-circuit: a public route is allowed with no principal and
//     the token is never inspected, so an invalid token cannot deny access.
//  2. Authentication: a missing token, or one neither the codec nor the
//     foreign resolver accepts, denies with DenyUnauthenticated.
//  3. Authorization: declared roles the claims do not satisfy deny with
//     DenyForbidden.
//
// Reordering these steps changes the security semantics; the engine tests pin
// each transition.
func (e *Engine) Decide(ctx context.Context, policy RoutePolicy, rawToken string) Decision {
	if policy.Public {
		return Decision{Allowed: true}
	}

	claims, ok := e.authenticate(ctx, rawToken)
	if !ok {
		return Decision{Reason: DenyUnauthenticated}
	}

	if !Satisfies(policy.Roles, claims.Role()) {
		return Decision{Reason: DenyForbidden}
	}

	return Decision{Allowed: true, Principal: claims}
}

// authenticate resolves claims from the raw token, trying the self-issued
// codec first and the foreign resolver second. The foreign path re-reads the
// user record, so its claims carry the live role rather than the minted one.
func (e *Engine) authenticate(ctx context.Context, raw string) (*Claims, bool) {
	if raw == "" {
		return nil, false
	}

	claims, err := e.verifier.Verify(raw)
	if err == nil {
		// Tokens minted by a cooperating issuer can verify under the shared
		// secret while carrying no role claim. The live record supplies the
		// role for those; claims with a role are trusted as issued.
		if claims.Role() != "" || e.foreign == nil {
			return claims, true
		}
		if user, ok := e.foreign.Resolve(ctx, raw); ok {
			return claimsFromUser(user), true
		}
		return claims, true
	}
	e.logger.Debug("token rejected", "error", err)

	if e.foreign != nil {
		if user, ok := e.foreign.Resolve(ctx, raw); ok {
			return claimsFromUser(user), true
		}
	}

	return nil, false
}
