package mark_completed

// Request completion request
type Request struct {
	StudentID int64
}

// Response completion result. Released reports whether a binding was
// actually cleared; marking an unbound student is a no-op.
type Response struct {
	StudentID int64 `json:"studentId"`
	Released  bool  `json:"released"`
}
