package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

const MailTypeRosterAssignment = "roster_assignment"

type RosterAssignmentMailData struct {
	RosterName string   `json:"rosterName"`
	PersonID   string   `json:"personID"`
	Days       []string `json:"days"`
}
