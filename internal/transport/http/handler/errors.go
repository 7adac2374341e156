package handler

const (
	errInternalServer     = "Internal server error"
	errInvalidCredentials = "Invalid credentials"
	errEmailTaken         = "Email already in use"
	errUserNotFound       = "User not found"
	errTaskNotFound       = "Task not found"
	errNoFieldsToUpdate   = "No fields to update"
	errEmptyName          = "Name is required"
	errEmptyTitle         = "Title is required"
)
