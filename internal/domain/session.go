package domain

// User identifies the logged-in customer.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
}

// Session is the authenticated state persisted between requests. Token is the
// raw bearer token as issued by the users service.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// TokenClaims is the identity carried inside a bearer token. The users
// service issues tokens whose claims use XML-SOAP claim URIs; the decoder
// maps them onto these fields.
type TokenClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

// Credentials is the login request payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
