// Package reports derives per-obra summaries from overtime requests. Every
// function is pure over its input slice and safe to recompute on each read.
package reports

import (
	"horasextras/models"
)

// ProjectSummary mirrors the reporting screen's per-obra row. Rejected
// requests contribute zero hours to every column but their requesters still
// count toward EmployeeCount.
type ProjectSummary struct {
	Project       string `json:"project"`
	TotalHours    int    `json:"total_hours"`
	ApprovedHours int    `json:"approved_hours"`
	PendingHours  int    `json:"pending_hours"`
	EmployeeCount int    `json:"employee_count"`
}

// Summarize groups requests by obra, in order of first appearance so repeated
// runs over the same listing yield identical output.
func Summarize(requests []models.OvertimeRequest) []ProjectSummary {
	var order []string
	totals := make(map[string]*ProjectSummary)
	employees := make(map[string]map[string]struct{})

	for _, req := range requests {
		summary, ok := totals[req.Project]
		if !ok {
			summary = &ProjectSummary{Project: req.Project}
			totals[req.Project] = summary
			employees[req.Project] = make(map[string]struct{})
			order = append(order, req.Project)
		}

		employees[req.Project][req.Requester] = struct{}{}

		switch req.Status {
		case models.StatusApproved:
			summary.ApprovedHours += req.Hours
			summary.TotalHours += req.Hours
		case models.StatusPending:
			summary.PendingHours += req.Hours
			summary.TotalHours += req.Hours
		case models.StatusRejected:
			// excluded from all hour totals
		}
	}

	out := make([]ProjectSummary, 0, len(order))
	for _, project := range order {
		summary := totals[project]
		summary.EmployeeCount = len(employees[project])
		out = append(out, *summary)
	}
	return out
}

// Totals folds the per-obra rows into the report's header cards.
func Totals(summaries []ProjectSummary) ProjectSummary {
	var total ProjectSummary
	for _, s := range summaries {
		total.TotalHours += s.TotalHours
		total.ApprovedHours += s.ApprovedHours
		total.PendingHours += s.PendingHours
		total.EmployeeCount += s.EmployeeCount
	}
	return total
}
