package dto

type CreatePostDTO struct {
	Title    string `json:"title"   validate:"required"`
	Content  string `json:"content" validate:"required"`
	Category string `json:"category,omitempty"`
}

// UpdatePostDTO fields are both optional; an empty value keeps whatever the
// post already has. There is deliberately no way to clear a field.
type UpdatePostDTO struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type RatePostDTO struct {
	Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
}

type CommentDTO struct {
	Content string `json:"content" validate:"required"`
}
