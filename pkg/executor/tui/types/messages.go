package types

// ToastMsg is a message type for showing toast notifications
type ToastMsg struct {
	Message string
	Details string
	Icon    string
	IsError bool
}
