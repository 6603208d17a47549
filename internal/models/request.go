package models

type Request struct {
	BaseModel
	ToolName      string        `gorm:"not null" json:"tool_name"`
	Justification string        `json:"justification"`
	RequesterID   string        `gorm:"not null;index" json:"requester_id"`
	AssigneeID    string        `gorm:"index" json:"assignee_id,omitempty"`
	Status        RequestStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
}
