package mailer

// NotifyRequest notification payload sent to the mail service
type NotifyRequest struct {
	PanelName   string   `json:"panelName"`
	Subject     string   `json:"subject"`
	Recipients  []string `json:"recipients"`
}

// NotifyResult per-recipient delivery counts reported by the mail service
type NotifyResult struct {
	Delivered int `json:"delivered"`
	Failed    int `json:"failed"`
}

// Logger logging interface consumed by the client
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
