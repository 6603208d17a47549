package dto

// DashboardMetrics backs the metrics cards on the dashboard landing view.
type DashboardMetrics struct {
	RequestsByStatus    map[string]int64 `json:"requests_by_status"`
	ToolsByApproval     map[string]int64 `json:"tools_by_approval"`
	UsersByRole         map[string]int64 `json:"users_by_role"`
	UnreadNotifications int64            `json:"unread_notifications"`
}
