package types

// Outbound message types (core -> renderer).
const (
	MsgUpdate         = "update"
	MsgDestroy        = "destroy"
	MsgPickBegin      = "pick_begin"
	MsgPickItems      = "pick_items"
	MsgPickError      = "pick_error"
	MsgInputBegin     = "input_begin"
	MsgValidateResult = "validate_result"
)

// Inbound message types (renderer -> core).
const (
	MsgValueChanged     = "value_changed"
	MsgAccept           = "accept"
	MsgActiveChanged    = "active_changed"
	MsgSelectionChanged = "selection_changed"
	MsgButtonClick      = "button_click"
	MsgHidden           = "hidden"
	MsgPickResult       = "pick_result"
	MsgPickActive       = "pick_active"
	MsgInputResult      = "input_result"
	MsgValidate         = "validate"
)

// UpdateMessage carries a sparse patch for one session. Keys absent
// from Set are unchanged remotely; a key present with a JSON null
// clears the field.
type UpdateMessage struct {
	Type string         `json:"type"`
	ID   int            `json:"id"`
	Set  map[string]any `json:"set"`
}

// NewUpdateMessage builds an update message for a session patch.
func NewUpdateMessage(id int, set map[string]any) UpdateMessage {
	return UpdateMessage{Type: MsgUpdate, ID: id, Set: set}
}

// DestroyMessage releases the remote resource backing a session.
type DestroyMessage struct {
	Type string `json:"type"`
	ID   int    `json:"id"`
}

// NewDestroyMessage builds a destroy message for a session id.
func NewDestroyMessage(id int) DestroyMessage {
	return DestroyMessage{Type: MsgDestroy, ID: id}
}

// PickBeginMessage opens a one-shot picker. Items follow separately
// once the item source resolves.
type PickBeginMessage struct {
	Type      string      `json:"type"`
	RequestID string      `json:"request_id"`
	Options   PickOptions `json:"options"`
}

// PickItemsMessage pushes the resolved item list for a pending
// one-shot pick request.
type PickItemsMessage struct {
	Type      string         `json:"type"`
	RequestID string         `json:"request_id"`
	Items     []TransferItem `json:"items"`
}

// PickErrorMessage reports an item-source failure so the renderer can
// show an error state.
type PickErrorMessage struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
}

// InputBeginMessage opens a one-shot text prompt. HasValidator tells
// the renderer whether to issue validate calls on input changes.
type InputBeginMessage struct {
	Type         string       `json:"type"`
	RequestID    string       `json:"request_id"`
	Options      InputOptions `json:"options"`
	HasValidator bool         `json:"has_validator"`
}

// ValidateResultMessage answers an inbound validate call. An empty
// message means the input is valid.
type ValidateResultMessage struct {
	Type    string `json:"type"`
	CallID  string `json:"call_id"`
	Message string `json:"message"`
}

// Inbound is the envelope for all renderer -> core messages. Fields
// are populated per Type; unused fields stay at their zero value.
type Inbound struct {
	Type      string `json:"type"`
	SessionID int    `json:"session_id,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	CallID    string `json:"call_id,omitempty"`
	Value     string `json:"value,omitempty"`
	Handle    *int   `json:"handle,omitempty"`
	Handles   []int  `json:"handles,omitempty"`
	Cancelled bool   `json:"cancelled,omitempty"`
}
