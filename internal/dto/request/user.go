package request

type UpdateUserRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=2000"`
	AvatarURL  *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	Role       *string `json:"role,omitempty" validate:"omitempty,max=100"`
	Department *string `json:"department,omitempty" validate:"omitempty,max=255"`
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active blocked"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,max=72"`
}
