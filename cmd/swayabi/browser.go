package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wippyai/sway-abi/logs"
	"github.com/wippyai/sway-abi/value"
)

const listHeight = 12

// logBrowser lists decoded logs and shows the selected one in detail.
type logBrowser struct {
	res      *logs.Result
	detail   viewport.Model
	selected int
	offset   int
}

func newLogBrowser(res *logs.Result) *logBrowser {
	b := &logBrowser{res: res, detail: viewport.New(80, 12)}
	b.refresh()
	return b
}

func (b *logBrowser) Init() tea.Cmd { return nil }

func (b *logBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return b, tea.Quit
		case "up", "k":
			if b.selected > 0 {
				b.selected--
				b.refresh()
			}
			return b, nil
		case "down", "j":
			if b.selected < len(b.res.Entries)-1 {
				b.selected++
				b.refresh()
			}
			return b, nil
		}

	case tea.WindowSizeMsg:
		b.detail.Width = msg.Width
		b.detail.Height = max(msg.Height-listHeight-6, 4)
	}

	var cmd tea.Cmd
	b.detail, cmd = b.detail.Update(msg)
	return b, cmd
}

func (b *logBrowser) refresh() {
	if b.selected < b.offset {
		b.offset = b.selected
	}
	if b.selected >= b.offset+listHeight {
		b.offset = b.selected - listHeight + 1
	}
	if len(b.res.Entries) == 0 {
		b.detail.SetContent("")
		return
	}
	e := b.res.Entries[b.selected]

	var out strings.Builder
	fmt.Fprintf(&out, "receipt:  %d\n", e.Index)
	fmt.Fprintf(&out, "contract: %s\n", idStyle.Render(e.Contract.String()))
	fmt.Fprintf(&out, "log id:   %d\n", e.LogID)
	fmt.Fprintf(&out, "payload:  %s\n\n", hexutil.Encode(e.Payload))
	out.WriteString(resultStyle.Render(indentJSON(value.Render(e.Value))))
	b.detail.SetContent(out.String())
	b.detail.GotoTop()
}

func indentJSON(s string) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(s), "", "  "); err != nil {
		return s
	}
	return buf.String()
}

func (b *logBrowser) View() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("Logs"))
	fmt.Fprintf(&s, " %d decoded, %d failed\n\n", len(b.res.Entries), len(b.res.Failures))

	if len(b.res.Entries) == 0 {
		s.WriteString("No logs decoded.\n\n")
		s.WriteString(helpStyle.Render("q quit"))
		return s.String()
	}

	end := min(b.offset+listHeight, len(b.res.Entries))
	for i := b.offset; i < end; i++ {
		e := b.res.Entries[i]
		line := fmt.Sprintf("%3d %s %s", e.Index, shortID(e.Contract), truncate(value.Render(e.Value), 60))
		if i == b.selected {
			s.WriteString(selectedStyle.Render("> " + line))
		} else {
			s.WriteString("  " + line)
		}
		s.WriteString("\n")
	}
	s.WriteString("\n")
	s.WriteString(b.detail.View())
	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("↑/↓ select • pgup/pgdn scroll • q quit"))
	return s.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func runLogBrowser(res *logs.Result) error {
	_, err := tea.NewProgram(newLogBrowser(res), tea.WithAltScreen()).Run()
	return err
}
