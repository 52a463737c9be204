package request

type DepartmentRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=255"`
	Roles       []string `json:"roles" validate:"required,min=1,dive,required,max=100"`
	Description string   `json:"description" validate:"max=2000"`
}
