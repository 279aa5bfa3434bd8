package services

// Result is the uniform envelope every service operation returns. The
// handler layer maps ErrorCode onto the HTTP status of the response.
type Result struct {
	Success        bool        `json:"success"`
	Message        string      `json:"message,omitempty"`
	Data           interface{} `json:"data,omitempty"`
	Count          *int        `json:"count,omitempty"`
	Total          *int        `json:"total,omitempty"`
	UploadedImages *int        `json:"uploaded_images,omitempty"`
	ErrorCode      int         `json:"error_code,omitempty"`
}

func ok(message string, data interface{}) *Result {
	return &Result{Success: true, Message: message, Data: data}
}

func fail(code int, message string) *Result {
	return &Result{Success: false, Message: message, ErrorCode: code}
}

func intPtr(v int) *int {
	return &v
}
