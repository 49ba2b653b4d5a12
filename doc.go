// Package access gates the protected operations of an HTTP resource API:
// credential verification, signed bearer-token issuance and validation, and
// the per-request allow/deny decision that combines route policy with the
// caller's role.
//
// Decision flow:
//   - Every route is registered against a RoutePolicy (public, role-restricted,
//     or plain authenticated). Policies live in an explicit PolicyRegistry that
//     is populated at wiring time and read by value at dispatch time.
//   - Engine evaluates the policy in a fixed order: public short-circuit first,
//     then token authentication, then role authorization. The order is the
//     security contract and is covered by unit tests; rearranging it changes
//     the semantics of public routes carrying stale tokens.
//   - Tokens minted by a cooperating issuer that shares the signing secret are
//     recognized best-effort through ForeignTokenAdapter: a failed decode
//     degrades to "no principal" and never interrupts the request pipeline.
//
// Credential flows:
//   - Service.Login and Service.Register wrap the user store, the bcrypt
//     hasher, and the TokenCodec. Login reports the same failure for an
//     unknown email and a wrong password so callers cannot enumerate accounts.
package access
