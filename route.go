package authflow

// routeFor maps a resolved state to its destination. Pure function; first
// match wins, and pending-setup beats every role so the priority order is
// enforced at exactly one place.
//
// The fallback branch is defensive only: the resolver already rejects an
// identity it cannot classify, so normal control flow never reaches it.
func (e *Engine) routeFor(state ResolvedState) RouteTarget {
	routes := e.config.Routes

	if state.PendingSetup {
		return routes.SetPasswordDestination
	}

	switch state.Role {
	case RoleStudent:
		return routes.StudentDestination
	case RoleEmployer:
		return routes.EmployerDestination
	case RoleRegistrar:
		return routes.RegistrarDestination
	case RoleAdmin:
		return routes.AdminDestination
	default:
		return routes.FallbackDestination
	}
}
