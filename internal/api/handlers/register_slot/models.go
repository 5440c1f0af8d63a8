package register_slot

// RegisterRequest registration request body
type RegisterRequest struct {
	PanelID int64 `json:"panelId"`
	SlotID  int64 `json:"slotId"`
}
