package user

// Principal is the authenticated caller as reported by the account service.
type Principal struct {
	UserID   string
	FullName string
	Email    string
}
