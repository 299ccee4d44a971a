package approval

// Status is the per-stage approval state shared by the leave and remote-work
// workflows. The numeric values are persisted as-is.
type Status int

const (
	StatusPending  Status = 0
	StatusApproved Status = 1
	StatusRejected Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	default:
		return "pending"
	}
}

// Role identifies which approval stage a token is valid for.
type Role string

const (
	RoleManager Role = "manager"
	RoleHR      Role = "hr"
)

func ValidRole(r string) bool {
	return r == string(RoleManager) || r == string(RoleHR)
}

// ApplicationType distinguishes the two approval workflows.
type ApplicationType string

const (
	TypeLeave  ApplicationType = "leave"
	TypeRemote ApplicationType = "remote"
)

// Action is what the clicked email link asks for.
type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

func ValidAction(a string) bool {
	return a == string(ActionApprove) || a == string(ActionReject)
}

// RedirectIntent is the outcome carried back to the human-facing page after
// an email-approval click. It is rendered as query parameters on a redirect,
// never as a JSON body.
type RedirectIntent struct {
	Success bool
	Message string
}
