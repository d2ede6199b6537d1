package validation

// VerifyPaymentRequest is the payload for POST /verifyPayment. The field set
// is fixed; unknown fields are rejected at bind time.
type VerifyPaymentRequest struct {
	OrderID   string `json:"order_id" validate:"required"`
	PaymentID string `json:"payment_id" validate:"required"`
	Signature string `json:"signature" validate:"required"`
}

// RegisterRequest is the payload for POST /register and POST /register-admin.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the payload for POST /login and POST /admin/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// CreateNoteForm is the multipart form for POST /notes. The file part
// (streamfile) is handled separately by the handler.
type CreateNoteForm struct {
	Title       string `form:"title" validate:"required"`
	Owner       string `form:"owner" validate:"required"`
	Description string `form:"desc" validate:"required"`
}
