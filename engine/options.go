package engine

// optionList holds select state; selected is -1 only when there are no options
type optionList struct {
	options  []string
	selected int
	offset   int // First visible option
}

func newOptionList(opts []string) *optionList {
	l := &optionList{selected: -1}
	l.setOptions(opts)
	return l
}

// setOptions replaces the options, keeping the selection when still in range
func (l *optionList) setOptions(opts []string) {
	l.options = append([]string(nil), opts...)
	switch {
	case len(l.options) == 0:
		l.selected = -1
	case l.selected < 0:
		l.selected = 0
	case l.selected >= len(l.options):
		l.selected = len(l.options) - 1
	}
	l.offset = 0
}

func (l *optionList) selectIndex(idx int) bool {
	if len(l.options) == 0 {
		return false
	}
	idx = max(0, min(idx, len(l.options)-1))
	if idx == l.selected {
		return false
	}
	l.selected = idx
	return true
}

// ensureVisible scrolls so the selection is inside visible rows
func (l *optionList) ensureVisible(visible int) {
	if visible <= 0 || l.selected < 0 {
		l.offset = 0
		return
	}
	if l.selected < l.offset {
		l.offset = l.selected
	} else if l.selected >= l.offset+visible {
		l.offset = l.selected - visible + 1
	}
	l.offset = max(0, min(l.offset, len(l.options)-visible))
}

func (l *optionList) handleKey(code KeyCode, page int) fieldResult {
	step := func(ok bool) fieldResult { return fieldResult{changed: ok} }
	page = max(1, page)

	switch code {
	case KeyUp:
		return step(l.selectIndex(l.selected - 1))
	case KeyDown:
		return step(l.selectIndex(l.selected + 1))
	case KeyHome:
		return step(l.selectIndex(0))
	case KeyEnd:
		return step(l.selectIndex(len(l.options) - 1))
	case KeyPageUp:
		return step(l.selectIndex(l.selected - page))
	case KeyPageDown:
		return step(l.selectIndex(l.selected + page))
	case KeyEnter:
		if l.selected < 0 {
			return fieldResult{rejected: true}
		}
		return fieldResult{submit: true}
	}
	return fieldResult{}
}
