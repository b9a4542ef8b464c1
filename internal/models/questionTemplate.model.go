package models

// QuestionTemplate is one checklist question for a machine common type. The
// template set is shared by every machine of that type; individual machines do
// not own questions. Inactive templates are excluded from new report
// generation, but historical responses keep referencing them.
type QuestionTemplate struct {
	BaseModel
	MachineCommonType string `gorm:"type:text;not null;uniqueIndex:idx_question_templates_type_order,priority:1" json:"machineCommonType" validate:"required"`
	Order             int    `gorm:"column:display_order;not null;uniqueIndex:idx_question_templates_type_order,priority:2" json:"order" validate:"required,min=1"`
	Question          string `gorm:"type:text;not null"      json:"question" validate:"required"`
	IsActive          bool   `gorm:"type:bool;default:true"  json:"isActive"`
}
