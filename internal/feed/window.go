package feed

import "newsdesk/internal/model"

// Window is the visible prefix of a filtered, sorted feed.
type Window struct {
	Step    int
	Visible int
}

func NewWindow(step int) Window {
	if step < 1 {
		step = model.DefaultVisibleWindow
	}
	return Window{Step: step, Visible: step}
}

// At restores a window from a client-held visible count, clamped to at least
// one step.
func At(step, visible int) Window {
	w := NewWindow(step)
	if visible > w.Step {
		w.Visible = visible
	}
	return w
}

func (w *Window) LoadMore() {
	w.Visible += w.Step
}

func (w *Window) SeeLess() {
	w.Visible = w.Step
}

func (w Window) Slice(items []model.Headline) []model.Headline {
	if len(items) <= w.Visible {
		return items
	}
	return items[:w.Visible]
}

// HasMore reports whether "load more" would reveal anything for a result of n items.
func (w Window) HasMore(n int) bool {
	return n > w.Visible
}

func (w Window) CanSeeLess(n int) bool {
	return n > w.Step && w.Visible > w.Step
}
