package types

// Item is a single entry in a picker list.
type Item struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
	Detail      string `json:"detail,omitempty"`
	Picked      bool   `json:"picked,omitempty"`
}

// Button is a widget button descriptor. Icons are either a light/dark
// pair of asset references or a theme-defined icon id; resolving the
// referenced assets is the renderer's job.
type Button struct {
	IconLight string `json:"icon_light,omitempty"`
	IconDark  string `json:"icon_dark,omitempty"`
	ThemeIcon string `json:"theme_icon,omitempty"`
	Tooltip   string `json:"tooltip,omitempty"`
}

// TransferItem is an Item annotated with its positional handle for
// cross-process reference. Handles are only valid until the owning
// list is reassigned.
type TransferItem struct {
	Handle int `json:"handle"`
	Item
}

// TransferButton is a Button annotated with its positional handle.
type TransferButton struct {
	Handle int `json:"handle"`
	Button
}

// TransferItems assigns positional handles to a list of items.
func TransferItems(items []Item) []TransferItem {
	out := make([]TransferItem, len(items))
	for i, item := range items {
		out[i] = TransferItem{Handle: i, Item: item}
	}
	return out
}

// TransferButtons assigns positional handles to a list of buttons.
func TransferButtons(buttons []Button) []TransferButton {
	out := make([]TransferButton, len(buttons))
	for i, b := range buttons {
		out[i] = TransferButton{Handle: i, Button: b}
	}
	return out
}

// PickOptions configures a one-shot picker request.
type PickOptions struct {
	Placeholder        string `json:"placeholder,omitempty"`
	MatchOnDescription bool   `json:"match_on_description"`
	MatchOnDetail      bool   `json:"match_on_detail"`
	IgnoreFocusOut     bool   `json:"ignore_focus_out"`
	CanSelectMany      bool   `json:"can_select_many"`
}

// InputOptions configures a one-shot text prompt request.
type InputOptions struct {
	Prompt         string `json:"prompt,omitempty"`
	Placeholder    string `json:"placeholder,omitempty"`
	Value          string `json:"value,omitempty"`
	Password       bool   `json:"password"`
	IgnoreFocusOut bool   `json:"ignore_focus_out"`
}

// PickOutcome is the tagged result of a one-shot pick. Cancelled and
// Handles are mutually exclusive; an untagged integer sentinel is
// deliberately not used so a real handle can never collide with the
// cancel marker.
type PickOutcome struct {
	Cancelled bool
	Handles   []int
}

// InputOutcome is the tagged result of a one-shot text prompt.
type InputOutcome struct {
	Cancelled bool
	Value     string
}
