package repository

import "github.com/iliyamo/pet-hostel/internal/model"

// Scope restricts booking queries to one customer's rows. The zero
// value is unrestricted. customer_id is the canonical scoping key for
// every booking operation: it names the account the stay is for, which
// is the record's actual subject even when staff created it.
type Scope struct {
	CustomerID uint64
}

// ScopeFor derives the row filter for a caller. Customers are pinned
// to their own customer_id; staff and admin see the full set.
func ScopeFor(role string, subjectID uint64) Scope {
	if role == model.RoleCustomer {
		return Scope{CustomerID: subjectID}
	}
	return Scope{}
}

// restricted reports whether the scope filters rows.
func (s Scope) restricted() bool { return s.CustomerID != 0 }
