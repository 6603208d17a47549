package models

type Tool struct {
	BaseModel
	Name           string         `gorm:"not null;index" json:"name"`
	Description    string         `json:"description"`
	URL            string         `json:"url"`
	OwnerID        string         `gorm:"not null;index" json:"owner_id"`
	CreatedBy      string         `gorm:"not null" json:"created_by"`
	ApprovalStatus ApprovalStatus `gorm:"type:varchar(20);default:'pending';index" json:"approval_status"`
}
