package dto

type TranscribeRequest struct {
	AudioBase64 string `json:"audio_base64"`
	UserID      string `json:"user_id"`
}

type SpeakRequest struct {
	Text     string `json:"text"`
	Language string `json:"language,omitempty"`
}

type SpeakResponse struct {
	AudioURL *string `json:"audio_url"`
	Text     string  `json:"text"`
	Language string  `json:"language"`
	Message  string  `json:"message"`
}
