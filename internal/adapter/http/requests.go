package http

// amountReq is the body of every amount-based contract action.
type amountReq struct {
	Amount string `json:"amount" form:"amount" validate:"required,amount"`
}

type loanIDReq struct {
	LoanID string `json:"loan_id" form:"loan_id" param:"loan_id" validate:"required,loanid"`
}

// Presence and password checks stay in the session usecase so the form
// shows its own messages; only shape is checked here.
type loginReq struct {
	Username string `json:"username" form:"username" validate:"max=64"`
	Password string `json:"password" form:"password" validate:"max=128"`
}

type registerReq struct {
	FullName        string `json:"fullname"         form:"fullname"         validate:"max=128"`
	Username        string `json:"username"         form:"username"         validate:"max=64"`
	Email           string `json:"email"            form:"email"            validate:"omitempty,email"`
	Password        string `json:"password"         form:"password"         validate:"max=128"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password" validate:"max=128"`
	Terms           bool   `json:"terms"            form:"terms"`
}
