package rbac

import "spincraft-tracker/internal/session"

const (
	RoleViewer = "viewer"

	ActionRead  = "read"
	ActionWrite = "write"
)

// Resources guarded by RBACAuthorize.
var Resources = []string{"employee", "worklog", "attendance", "payroll", "report", "audit"}

type Rule struct {
	Role     string
	Resource string
	Action   string
}

// Inherit makes Role hold every permission of Parent.
type Inherit struct {
	Role   string
	Parent string
}

// DefaultRules lets viewers read everything and admins also write. There is no stored
// role table: the dashboard has a single configured admin.
func DefaultRules() ([]Rule, []Inherit) {
	rules := make([]Rule, 0, len(Resources)*2)
	for _, res := range Resources {
		rules = append(rules,
			Rule{Role: RoleViewer, Resource: res, Action: ActionRead},
			Rule{Role: session.RoleAdmin, Resource: res, Action: ActionWrite},
		)
	}
	return rules, []Inherit{{Role: session.RoleAdmin, Parent: RoleViewer}}
}
