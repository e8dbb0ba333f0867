package models

type UploadResponse struct {
	Filename   string    `json:"filename"`
	MediaType  MediaType `json:"media_type"`
	TextLength int       `json:"text_length"`
	HasContent bool      `json:"has_content"`
}

type JobMatchPayload struct {
	JobText string `json:"job_text"`
}

type SkillPathPayload struct {
	CurrentSkills string `json:"current_skills"`
	TargetRole    string `json:"target_role"`
}

// TaskState is the read-only view of a controller returned by the API.
type TaskState struct {
	Kind        TaskKind      `json:"kind"`
	Status      RequestStatus `json:"status"`
	HasDocument bool          `json:"has_document"`
	Filename    string        `json:"filename,omitempty"`
	TextLength  int           `json:"text_length"`
	Message     string        `json:"message,omitempty"`
	Result      TaskResult    `json:"result,omitempty"`
}
