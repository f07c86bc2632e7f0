package tui

// screenLayout holds calculated widths for the View
type screenLayout struct {
	listWidth      int
	inspectorWidth int // 0 if not shown
	searchWidth    int
}

// calculateLayout splits the width between list and inspector. The
// inspector is dropped when the window is too narrow to fit both.
func (m Model) calculateLayout() screenLayout {
	layout := screenLayout{
		listWidth:   m.Width,
		searchWidth: max(m.Width/3, 10),
	}

	if !m.ShowInspector || m.Width < 2*MinColumnWidth {
		return layout
	}

	layout.listWidth = max(m.Width*ListColumnPercent/100, MinColumnWidth)
	layout.inspectorWidth = m.Width - layout.listWidth
	return layout
}
