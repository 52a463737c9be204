package request

type UpdateLogoRequest struct {
	LogoData string `json:"logoData" validate:"required"`
}
