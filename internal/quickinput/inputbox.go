package quickinput

// InputBox is the single-line text entry variant.
type InputBox struct {
	*Session

	password          bool
	prompt            *string
	validationMessage *string
}

func newInputBox(ctrl *Controller) *InputBox {
	return &InputBox{Session: newSession(ctrl)}
}

// SetPassword toggles masked input.
func (b *InputBox) SetPassword(v bool) {
	b.set("password", v, func() { b.password = v })
}

// SetPrompt sets the prompt text shown under the input; nil clears it.
func (b *InputBox) SetPrompt(p *string) {
	if p == nil {
		b.set("prompt", nil, func() { b.prompt = nil })
		return
	}
	v := *p
	b.set("prompt", v, func() { b.prompt = &v })
}

// SetValidationMessage sets the inline validation error; nil clears it.
func (b *InputBox) SetValidationMessage(msg *string) {
	if msg == nil {
		b.set("validationMessage", nil, func() { b.validationMessage = nil })
		return
	}
	v := *msg
	b.set("validationMessage", v, func() { b.validationMessage = &v })
}
