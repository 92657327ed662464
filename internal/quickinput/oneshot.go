package quickinput

import (
	"context"

	"go.uber.org/zap"

	"github.com/lumenos/quickinput/internal/id"
	"github.com/lumenos/quickinput/internal/types"
)

// ItemSource is the tagged union of ways to supply picker items: plain
// labels, rich items, or a lazy producer. The shape is decided once at
// this boundary and never re-checked downstream.
type ItemSource struct {
	labels []string
	items  []types.Item
	lazy   func(context.Context) ([]types.Item, error)
}

// Labels wraps a list of plain strings as picker items.
func Labels(labels ...string) ItemSource {
	return ItemSource{labels: labels}
}

// Items wraps a list of rich items.
func Items(items ...types.Item) ItemSource {
	return ItemSource{items: items}
}

// Lazy wraps an asynchronous item producer. Its error, if any,
// propagates to the overall pick operation.
func Lazy(fn func(context.Context) ([]types.Item, error)) ItemSource {
	return ItemSource{lazy: fn}
}

func (s ItemSource) resolve(ctx context.Context) ([]types.Item, error) {
	switch {
	case s.lazy != nil:
		return s.lazy(ctx)
	case s.labels != nil:
		items := make([]types.Item, len(s.labels))
		for i, label := range s.labels {
			items[i] = types.Item{Label: label}
		}
		return items, nil
	default:
		return s.items, nil
	}
}

// PickConfig configures a one-shot pick flow.
type PickConfig struct {
	Options types.PickOptions

	// OnActive, if set, is invoked locally whenever the renderer
	// reports an item highlight, with the original item resolved from
	// the reported handle.
	OnActive func(types.Item)
}

// PickResult is the outcome of a one-shot pick. Cancelled means the
// user dismissed the picker or the caller's context fired; it is not
// an error.
type PickResult struct {
	Cancelled bool
	Items     []types.Item
}

// pickState tracks one in-flight one-shot pick.
type pickState struct {
	done     chan types.PickOutcome
	items    []types.Item
	onActive func(types.Item)
}

// Pick runs the legacy one-shot flow: open the picker with its
// configuration, resolve the item source concurrently, push the items,
// and wait for the renderer's resolution or cancellation. Whichever
// comes first wins; the loser's eventual resolution is ignored.
func (c *Controller) Pick(ctx context.Context, source ItemSource, cfg PickConfig) (PickResult, error) {
	reqID := id.NewPickRequest()

	st := &pickState{
		done:     make(chan types.PickOutcome, 1),
		onActive: cfg.OnActive,
	}
	c.mu.Lock()
	c.picks[reqID] = st
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.picks, reqID)
		c.mu.Unlock()
	}()

	c.post(types.PickBeginMessage{
		Type:      types.MsgPickBegin,
		RequestID: reqID,
		Options:   cfg.Options,
	}, "pick_begin")

	items, err := source.resolve(ctx)
	if err != nil {
		// Report to the renderer so it can show an error state, then
		// re-raise to the caller.
		c.post(types.PickErrorMessage{
			Type:      types.MsgPickError,
			RequestID: reqID,
			Message:   err.Error(),
		}, "pick_error")
		c.countPick("error")
		return PickResult{}, err
	}

	c.mu.Lock()
	st.items = items
	c.mu.Unlock()

	c.post(types.PickItemsMessage{
		Type:      types.MsgPickItems,
		RequestID: reqID,
		Items:     types.TransferItems(items),
	}, "pick_items")

	select {
	case out := <-st.done:
		if out.Cancelled {
			c.countPick("cancelled")
			return PickResult{Cancelled: true}, nil
		}
		picked := make([]types.Item, 0, len(out.Handles))
		for _, h := range out.Handles {
			if h >= 0 && h < len(items) {
				picked = append(picked, items[h])
			}
		}
		c.countPick("selected")
		return PickResult{Items: picked}, nil
	case <-ctx.Done():
		c.countPick("cancelled")
		return PickResult{Cancelled: true}, nil
	}
}

// PickOne is Pick restricted to single selection; it returns nil when
// the user cancelled or the renderer resolved no item.
func (c *Controller) PickOne(ctx context.Context, source ItemSource, cfg PickConfig) (*types.Item, error) {
	cfg.Options.CanSelectMany = false
	res, err := c.Pick(ctx, source, cfg)
	if err != nil || res.Cancelled || len(res.Items) == 0 {
		return nil, err
	}
	item := res.Items[0]
	return &item, nil
}

// InputConfig configures a one-shot text prompt.
type InputConfig struct {
	Options types.InputOptions

	// Validate, if set, runs locally on renderer-triggered validate
	// calls; it returns a validation message, empty meaning valid.
	Validate func(string) string
}

// InputResult is the outcome of a one-shot text prompt.
type InputResult struct {
	Cancelled bool
	Value     string
}

type inputState struct {
	done     chan types.InputOutcome
	validate func(string) string
}

// Input runs the one-shot text prompt flow.
func (c *Controller) Input(ctx context.Context, cfg InputConfig) (InputResult, error) {
	reqID := id.NewInputRequest()

	st := &inputState{
		done:     make(chan types.InputOutcome, 1),
		validate: cfg.Validate,
	}
	c.mu.Lock()
	c.inputs[reqID] = st
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.inputs, reqID)
		c.mu.Unlock()
	}()

	c.post(types.InputBeginMessage{
		Type:         types.MsgInputBegin,
		RequestID:    reqID,
		Options:      cfg.Options,
		HasValidator: cfg.Validate != nil,
	}, "input_begin")

	select {
	case out := <-st.done:
		if out.Cancelled {
			c.countInput("cancelled")
			return InputResult{Cancelled: true}, nil
		}
		c.countInput("accepted")
		return InputResult{Value: out.Value}, nil
	case <-ctx.Done():
		c.countInput("cancelled")
		return InputResult{Cancelled: true}, nil
	}
}

// dispatchPick handles inbound messages for pending pick flows. Runs
// on the scheduler loop.
func (c *Controller) dispatchPick(msg types.Inbound) {
	c.mu.Lock()
	st := c.picks[msg.RequestID]
	c.mu.Unlock()
	if st == nil {
		c.dropped(msg)
		return
	}

	switch msg.Type {
	case types.MsgPickResult:
		out := types.PickOutcome{Cancelled: msg.Cancelled}
		if !msg.Cancelled {
			if msg.Handles != nil {
				out.Handles = msg.Handles
			} else if msg.Handle != nil {
				out.Handles = []int{*msg.Handle}
			}
		}
		select {
		case st.done <- out:
		default: // already resolved; duplicate results are ignored
		}
	case types.MsgPickActive:
		if st.onActive == nil || msg.Handle == nil {
			return
		}
		c.mu.Lock()
		items := st.items
		c.mu.Unlock()
		if h := *msg.Handle; h >= 0 && h < len(items) {
			st.onActive(items[h])
		}
	}
}

// dispatchInput handles inbound messages for pending input flows,
// including renderer-triggered validation calls, which are executed
// locally and answered with a validate_result message.
func (c *Controller) dispatchInput(msg types.Inbound) {
	c.mu.Lock()
	st := c.inputs[msg.RequestID]
	c.mu.Unlock()

	switch msg.Type {
	case types.MsgInputResult:
		if st == nil {
			c.dropped(msg)
			return
		}
		out := types.InputOutcome{Cancelled: msg.Cancelled, Value: msg.Value}
		select {
		case st.done <- out:
		default:
		}
	case types.MsgValidate:
		// Answer even when the flow is gone or has no validator, so
		// the renderer's pending call always resolves.
		result := ""
		if st != nil && st.validate != nil {
			result = st.validate(msg.Value)
		}
		c.sendNow(types.ValidateResultMessage{
			Type:    types.MsgValidateResult,
			CallID:  msg.CallID,
			Message: result,
		}, "validate_result")
		c.log.Debug("validated input", zap.String("request_id", msg.RequestID))
	}
}

func (c *Controller) countPick(outcome string) {
	if c.metrics != nil {
		c.metrics.Picks.WithLabelValues(outcome).Inc()
	}
}

func (c *Controller) countInput(outcome string) {
	if c.metrics != nil {
		c.metrics.Inputs.WithLabelValues(outcome).Inc()
	}
}
