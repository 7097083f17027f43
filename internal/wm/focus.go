package wm

// focus gives input focus to c, or to the most recently focused visible
// client when c is nil or invisible. Always redraws every bar, since
// tag indicators depend on focus state.
func (wm *WM) focus(c *Client) {
	if c == nil || !c.Visible() {
		c = wm.selMon.firstVisibleOnStack()
	}
	if wm.selMon.Sel != nil && wm.selMon.Sel != c {
		wm.unfocus(wm.selMon.Sel, false)
	}
	if c != nil {
		if c.Mon != wm.selMon {
			wm.selMon = c.Mon
		}
		if c.Urgent {
			wm.setUrgent(c, false)
		}
		c.Mon.detachStack(c)
		c.Mon.attachStack(c)
		wm.backend.GrabButtons(c.Win, true, wm.clientButtons())
		wm.backend.SetBorderColor(c.Win, wm.cfg.SelScheme.Border)
		wm.setFocus(c)
	} else {
		wm.backend.FocusRoot()
		wm.backend.ClearActiveWindow()
	}
	wm.selMon.Sel = c
	wm.drawBars()
}

// unfocus reverts c's border and button grabs. With setFocus, input
// focus falls back to the root.
func (wm *WM) unfocus(c *Client, setFocus bool) {
	if c == nil {
		return
	}
	wm.backend.GrabButtons(c.Win, false, wm.clientButtons())
	wm.backend.SetBorderColor(c.Win, wm.cfg.NormScheme.Border)
	if setFocus {
		wm.backend.FocusRoot()
		wm.backend.ClearActiveWindow()
	}
}

// setFocus issues the input-focus request, honoring clients that refuse
// focus, and always offers WM_TAKE_FOCUS.
func (wm *WM) setFocus(c *Client) {
	if !c.NeverFocus {
		wm.backend.SetInputFocus(c.Win)
		wm.backend.SetActiveWindow(c.Win)
	}
	wm.backend.SendWMProtocol(c.Win, wmTakeFocus)
}

// restack raises the selected client when it floats, then re-stacks
// every visible tiled client below the bar in focus order, keeping
// tiled windows beneath floating ones without disturbing their relative
// order.
func (wm *WM) restack(m *Monitor) {
	wm.drawBar(m)
	if m.Sel == nil {
		return
	}
	if m.Sel.Floating || !m.Tiling() {
		wm.backend.Raise(m.Sel.Win)
	}
	if m.Tiling() {
		sibling := m.BarWin
		for _, c := range m.stack {
			if !c.Floating && c.Visible() {
				wm.backend.StackBelow(c.Win, sibling)
				sibling = c.Win
			}
		}
	}
	wm.backend.Flush()
	wm.drainEnterNotify()
}

// nextVisible finds the next visible client after the selection in
// manage order, wrapping to the list head.
func (m *Monitor) nextVisible() *Client {
	sel := -1
	for i, c := range m.clients {
		if c == m.Sel {
			sel = i
			break
		}
	}
	for _, c := range m.clients[sel+1:] {
		if c.Visible() {
			return c
		}
	}
	for _, c := range m.clients {
		if c.Visible() {
			return c
		}
	}
	return nil
}

// prevVisible finds the last visible client before the selection in
// manage order, wrapping to the last visible client overall.
func (m *Monitor) prevVisible() *Client {
	var prev *Client
	i := 0
	for ; i < len(m.clients); i++ {
		if m.clients[i] == m.Sel {
			break
		}
		if m.clients[i].Visible() {
			prev = m.clients[i]
		}
	}
	if prev != nil {
		return prev
	}
	for ; i < len(m.clients); i++ {
		if m.clients[i].Visible() {
			prev = m.clients[i]
		}
	}
	return prev
}
