package mood

type FaceDetectionDTO struct {
	Image string `json:"image" validate:"required"`
}

// Inference is the classifier's answer.
type Inference struct {
	Prediction string `json:"prediction"`
}
