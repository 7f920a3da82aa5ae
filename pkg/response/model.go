package response

// Pagination mirrors the list metadata the admin endpoints attach to
// enveloped responses.
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

type Body struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func Success(data interface{}) Body {
	return Body{
		Success: true,
		Data:    data,
	}
}

func Paginated(data interface{}, pagination *Pagination) Body {
	return Body{
		Success:    true,
		Data:       data,
		Pagination: pagination,
	}
}
