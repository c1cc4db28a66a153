package authflow

// entryPoint identifies which login surface dispatched the exchange, for
// post-authentication authorization. Authorization runs after
// authentication and is distinct from it.
type entryPoint int

const (
	entryGeneric entryPoint = iota
	entryRegistrar
)

// resolveIdentity classifies a successful exchange's identity claim.
//
// Priority order is fixed: a pending-setup claim wins unconditionally over
// any role. Otherwise the wire role must canonicalize to one of the four
// known roles; anything else fails with ErrIdentityIncomplete rather than
// being silently defaulted. Restricted entry points then apply their
// allowed-role check on the already-authenticated identity.
func (e *Engine) resolveIdentity(claim *UserClaim, entry entryPoint) (ResolvedState, error) {
	if claim == nil {
		return ResolvedState{}, ErrIdentityIncomplete
	}

	if claim.RequiresPasswordSet {
		return ResolvedState{PendingSetup: true, IsVerified: claim.IsVerified}, nil
	}

	role, ok := ParseRole(string(claim.Role))
	if !ok {
		return ResolvedState{}, ErrIdentityIncomplete
	}

	if entry == entryRegistrar && !e.registrarEntryAllows(role) {
		return ResolvedState{}, &AccessRestrictedError{Role: role}
	}

	return ResolvedState{Role: role, IsVerified: claim.IsVerified}, nil
}

func (e *Engine) registrarEntryAllows(role Role) bool {
	for _, allowed := range e.config.Entry.RegistrarAllowedRoles {
		if role == allowed {
			return true
		}
	}
	return false
}
