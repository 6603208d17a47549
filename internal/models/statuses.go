package models

type UserRole string
type UserStatus string
type ApprovalStatus string
type RequestStatus string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleOwner    UserRole = "owner"
	UserRoleObserver UserRole = "observer"

	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"

	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"

	RequestStatusPending    RequestStatus = "pending"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusCompleted  RequestStatus = "completed"
)

// ValidUserRole reports whether role is one of the closed set of roles.
// Role gating sites must go through this instead of comparing raw strings.
func ValidUserRole(role UserRole) bool {
	switch role {
	case UserRoleAdmin, UserRoleOwner, UserRoleObserver:
		return true
	}
	return false
}

// ValidRequestTransition reports whether a request may move from one
// lifecycle state to another. The lifecycle is pending -> in_progress ->
// completed; moving backwards to pending is allowed so a request can be
// re-queued, but a completed request stays completed.
func ValidRequestTransition(from, to RequestStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case RequestStatusPending:
		return to == RequestStatusInProgress || to == RequestStatusCompleted
	case RequestStatusInProgress:
		return to == RequestStatusCompleted || to == RequestStatusPending
	case RequestStatusCompleted:
		return false
	}
	return false
}
