package models

// StatusMeta is the single status-to-presentation mapping every view consumes.
// Clients must not hardcode their own label/color tables.
type StatusMeta struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

var statusMeta = map[RequestStatus]StatusMeta{
	StatusPending:  {Label: "Pendente", Color: "yellow"},
	StatusApproved: {Label: "Aprovado", Color: "green"},
	StatusRejected: {Label: "Reprovado", Color: "red"},
}

// MetaFor returns the presentation metadata for a status. Unknown statuses
// fall back to the raw value with no color.
func MetaFor(s RequestStatus) StatusMeta {
	if m, ok := statusMeta[s]; ok {
		return m
	}
	return StatusMeta{Label: string(s)}
}

// AllStatusMeta returns the full mapping keyed by status value.
func AllStatusMeta() map[RequestStatus]StatusMeta {
	out := make(map[RequestStatus]StatusMeta, len(statusMeta))
	for k, v := range statusMeta {
		out[k] = v
	}
	return out
}
