// Package audit implements the append-only audit trail. Every mutating
// business operation records exactly one row in the same unit of work as
// the mutation itself.
package audit

// Action identifies one kind of state-changing operation. The catalog is
// closed: actions are the package-level values below, each carrying its
// fixed code, target entity name, and human description.
type Action struct {
	Code        string
	Entity      string
	Description string
}

var (
	TransactionCreate = Action{
		Code:        "TRANSACTION_CREATE",
		Entity:      "Transaction",
		Description: "cash transaction registered",
	}
	ReversalRequestCreate = Action{
		Code:        "REVERSAL_REQUEST_CREATE",
		Entity:      "ReversalRequest",
		Description: "reversal request filed",
	}
	ReversalRequestResolve = Action{
		Code:        "REVERSAL_REQUEST_RESOLVE",
		Entity:      "ReversalRequest",
		Description: "reversal request resolved",
	}
	UserCreate = Action{
		Code:        "USER_CREATE",
		Entity:      "User",
		Description: "user account created",
	}
	UserDeactivate = Action{
		Code:        "USER_DEACTIVATE",
		Entity:      "User",
		Description: "user account deactivated",
	}
	BankCreate = Action{
		Code:        "BANK_CREATE",
		Entity:      "Bank",
		Description: "bank created",
	}
	BankUpdate = Action{
		Code:        "BANK_UPDATE",
		Entity:      "Bank",
		Description: "bank updated",
	}
	ConceptCreate = Action{
		Code:        "CONCEPT_CREATE",
		Entity:      "Concept",
		Description: "commission concept created",
	}
	ConceptUpdate = Action{
		Code:        "CONCEPT_UPDATE",
		Entity:      "Concept",
		Description: "commission concept updated",
	}
	ConfigUpdate = Action{
		Code:        "CONFIG_UPDATE",
		Entity:      "GlobalConfig",
		Description: "global configuration updated",
	}
)
