package models

// ClassificationRequest carries one image as a data-URL ("data:<mime>;base64,<payload>")
type ClassificationRequest struct {
	Image string `json:"image" binding:"required"`
}

// Label is one entry of the classifier's output distribution
type Label struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type ClassificationResponse struct {
	Result []Label `json:"result"`
}
