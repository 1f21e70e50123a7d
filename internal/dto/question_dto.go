package dto

// UpdateFormRequest patches the flat form fields. Nil fields are left
// untouched.
type UpdateFormRequest struct {
	Question  *string   `json:"question"`
	AgentName *string   `json:"agent_name"`
	Tags      *[]string `json:"tags"`
	NewTag    *string   `json:"new_tag"`
}

type UpdateAnswerRequest struct {
	Answer string `json:"answer"`
}

type UpdateReferenceRequest struct {
	Document string `json:"document"`
	Pages    string `json:"pages"`
}

type SubmitResponse struct {
	ID string `json:"id"`
}
