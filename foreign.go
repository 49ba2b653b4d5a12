package access

import "context"

// ForeignTokenAdapter recognizes bearer tokens minted by a cooperating issuer
// that shares the signing secret. The path is advisory: it never returns an
// error, whatever bytes the caller presents. A token that decodes is still
// only trusted as a pointer at the store; the user record is re-read on every
// call so role and profile are current, unlike the self-issued path.
type ForeignTokenAdapter struct {
	verifier TokenVerifier
	store    UserStore
	logger   Logger
}

var _ PrincipalResolver = (*ForeignTokenAdapter)(nil)

func NewForeignTokenAdapter(verifier TokenVerifier, store UserStore) *ForeignTokenAdapter {
	return &ForeignTokenAdapter{
		verifier: verifier,
		store:    store,
		logger:   defLogger{},
	}
}

func (f *ForeignTokenAdapter) WithLogger(logger Logger) *ForeignTokenAdapter {
	if logger != nil {
		f.logger = logger
	}
	return f
}

// Resolve attempts to map a foreign token to a live user record. Malformed
// input, a bad signature, an expired token, a claim shape without a usable
// subject, or a subject that no longer resolves all degrade to (nil, false).
func (f *ForeignTokenAdapter) Resolve(ctx context.Context, raw string) (*User, bool) {
	if raw == "" {
		return nil, false
	}

	claims, err := f.verifier.Verify(raw)
	if err != nil {
		return nil, false
	}

	subject := claims.Subject()
	if subject == "" {
		return nil, false
	}

	user, err := f.store.GetByID(ctx, subject)
	if err != nil {
		if !IsNotFoundError(err) {
			f.logger.Error("foreign token store lookup failed", "error", err)
		}
		return nil, false
	}

	return user, true
}
