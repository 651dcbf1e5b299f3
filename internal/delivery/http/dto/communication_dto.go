package dto

type MessageRequest struct {
	StudentID    string `json:"student_id"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	StudentName  string `json:"student_name" validate:"max=255"`
	Message      string `json:"message" validate:"required,max=5000"`
	SenderID     string `json:"sender_id"`
}

type InterviewRequest struct {
	StudentID    string `json:"student_id"`
	StudentEmail string `json:"student_email" validate:"required,email"`
	Date         string `json:"date" validate:"required"`
	Time         string `json:"time" validate:"required"`
	Type         string `json:"type"`
	Notes        string `json:"notes" validate:"max=2000"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
