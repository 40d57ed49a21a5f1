// internal/workers/document/verify-video-face/models.go
package verifyvideoface

type Input struct {
	UserID       int64  `json:"userId" validate:"required,gt=0"`
	QuestionID   int64  `json:"questionId" validate:"required,gt=0"`
	VideoPath    string `json:"videoPath" validate:"required"`
	ResponseText string `json:"responseText,omitempty"`
}

type Output struct {
	VideoInteractionID int64 `json:"videoInteractionId"`
	FaceVerified       bool  `json:"faceVerified"`
}
