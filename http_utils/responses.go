package http_utils

type BaseResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type ValidationErrorResponse struct {
	BaseResponse
	Errors []string `json:"errors"`
}

func NewBaseResponse(status, msg string) BaseResponse {
	return BaseResponse{
		Status:  status,
		Message: msg,
	}
}
