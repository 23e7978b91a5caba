package models

// Notification is a user-visible message plus where the client goes next.
// An empty Redirect means "return to the previous view".
type Notification struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
	Back     bool   `json:"back,omitempty"`
}

// NotifyAndRedirect builds a notification that navigates to target
func NotifyAndRedirect(message, target string) Notification {
	return Notification{Message: message, Redirect: target}
}

// NotifyAndGoBack builds a notification that returns to the prior view
func NotifyAndGoBack(message string) Notification {
	return Notification{Message: message, Back: true}
}

// SessionUser is the dashboard's view of the logged-in user
type SessionUser struct {
	UserID   int64  `json:"user_id"`
	Fullname string `json:"fullname"`
}
