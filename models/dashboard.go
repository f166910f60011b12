package models

type DashboardStats struct {
	UsersTotal       int `json:"users_total"`
	PendingApprovals int `json:"pending_approvals"`
	DefensesTotal    int `json:"defenses_total"`
	CountersTotal    int `json:"counters_total"`
	BuildsTotal      int `json:"builds_total"`
}
