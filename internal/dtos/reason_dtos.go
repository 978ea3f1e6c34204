package dtos

type CreateReasonRequest struct {
	Text string `json:"text" validate:"required,max=255"`
}

type UpdateReasonRequest struct {
	Text string `json:"text" validate:"required,max=255"`
}
