package models

// Farmer is the identity record returned by the backend on signup/login.
type Farmer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// UserType says which side of the marketplace the session belongs to.
type UserType string

const (
	UserTypeFarmer   UserType = "farmer"
	UserTypeCustomer UserType = "customer"
)

// AuthState is the persisted session record: who is logged in, if anyone.
// Exactly one record exists per installation, under the "authState" key.
type AuthState struct {
	IsAuthenticated bool     `json:"isAuthenticated"`
	User            *Farmer  `json:"user"`
	UserType        UserType `json:"userType,omitempty"`
}

// LoggedOut is the default unauthenticated state. Corrupt or missing
// session records degrade to this rather than erroring.
func LoggedOut() AuthState {
	return AuthState{IsAuthenticated: false}
}

// FarmerSignupData is the payload for the signup endpoint.
type FarmerSignupData struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Phone    string `json:"phone" validate:"required"`
}

// FarmerLoginData is the payload for the login endpoint.
type FarmerLoginData struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
