package sdk

// CanImpersonate applies the impersonation scope rules:
//
//	prime_admin -> rider      allowed
//	prime_admin -> sub_admin  allowed
//	sub_admin   -> rider      allowed only when target.ManagerID == actor.ID
//	sub_admin   -> sub_admin  denied
//	any         -> admin, prime_admin  denied
//
// The backend enforces the same matrix; this check keeps a permissive
// backend from widening an admin's reach on this client.
func CanImpersonate(actor, target *Principal) error {
	if actor == nil {
		return &ScopeError{Reason: "impersonation requires a logged in prime or sub admin"}
	}
	switch actor.Role {
	case RolePrimeAdmin:
		if target.Role == RoleRider || target.Role == RoleSubAdmin {
			return nil
		}
		return &ScopeError{
			ActorRole:  actor.Role,
			TargetRole: target.Role,
			Reason:     "prime admin may only impersonate sub admins or riders",
		}
	case RoleSubAdmin:
		if target.Role != RoleRider {
			return &ScopeError{
				ActorRole:  actor.Role,
				TargetRole: target.Role,
				Reason:     "sub admin may only impersonate riders",
			}
		}
		if target.ManagerID != actor.ID {
			return &ScopeError{
				ActorRole:  actor.Role,
				TargetRole: target.Role,
				Reason:     "sub admin may only impersonate riders they manage",
			}
		}
		return nil
	default:
		return &ScopeError{
			ActorRole:  actor.Role,
			TargetRole: target.Role,
			Reason:     "only prime or sub admins may impersonate",
		}
	}
}
