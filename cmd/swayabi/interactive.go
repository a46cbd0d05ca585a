package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/wippyai/sway-abi/invoke"
	"github.com/wippyai/sway-abi/transcoder"
	"github.com/wippyai/sway-abi/types"
)

// encodeModel picks a function, reads one argument per input and shows the
// encoded call data.
type encodeModel struct {
	err      error
	program  *types.Program
	encoder  *transcoder.Encoder
	filename string
	result   string
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectFunc modelState = iota
	stateInputArgs
	stateShowResult
)

type encodedMsg struct {
	err    error
	result string
}

func newEncodeModel(filename string, prog *types.Program, enc *transcoder.Encoder) *encodeModel {
	return &encodeModel{
		program:  prog,
		encoder:  enc,
		filename: filename,
		state:    stateSelectFunc,
	}
}

func (m *encodeModel) Init() tea.Cmd { return nil }

func (m *encodeModel) function() *types.Function { return m.program.Functions[m.selected] }

func (m *encodeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectFunc && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectFunc && m.selected < len(m.program.Functions)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectFunc:
				if len(m.program.Functions) == 0 {
					return m, nil
				}
				m.prepareInputs()
				if len(m.inputs) == 0 {
					return m, m.encode
				}
				m.state = stateInputArgs
				return m, nil

			case stateInputArgs:
				return m, m.encode

			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}

		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}

		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectFunc
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectFunc
				m.result = ""
				m.err = nil
			}
		}

	case encodedMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}

	return m, nil
}

func (m *encodeModel) prepareInputs() {
	f := m.function()
	m.inputs = make([]textinput.Model, len(f.Inputs))
	for i, in := range f.Inputs {
		ti := textinput.New()
		ti.Placeholder = "JSON " + in.Type.String()
		ti.Prompt = in.Name + ": "
		ti.Width = 48
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *encodeModel) encode() tea.Msg {
	f := m.function()
	args := make([]any, len(m.inputs))
	for i, input := range m.inputs {
		args[i] = parseArg(input.Value())
	}
	data, err := invoke.EncodeCall(m.encoder, m.program, f.Name, args...)
	if err != nil {
		return encodedMsg{err: err}
	}
	return encodedMsg{result: hexutil.Encode(data)}
}

// parseArg reads s as JSON. Anything that is not valid JSON is passed on as
// raw text, so strings and hex can be typed without quotes.
func parseArg(s string) any {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return s
	}
	return v
}

func (m *encodeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sway ABI"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	if len(m.program.Functions) == 0 {
		b.WriteString("The program has no functions.\n\n")
		b.WriteString(helpStyle.Render("q quit"))
		return b.String()
	}

	switch m.state {
	case stateSelectFunc:
		b.WriteString("Select a function to encode:\n\n")
		for i, f := range m.program.Functions {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + f.Signature()))
			} else {
				b.WriteString("  " + formatFunc(f))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter encode • q quit"))

	case stateInputArgs:
		f := m.function()
		b.WriteString(fmt.Sprintf("Encoding %s\n\n", funcStyle.Render(f.Name)))
		for i, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString(" ")
			b.WriteString(typeStyle.Render(f.Inputs[i].Type.String()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next field • enter encode • esc back"))

	case stateShowResult:
		f := m.function()
		b.WriteString(fmt.Sprintf("Call data for %s:\n\n", funcStyle.Render(f.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter continue • q quit"))
	}

	return b.String()
}

func runInteractive(filename string, prog *types.Program, enc *transcoder.Encoder) error {
	p := tea.NewProgram(newEncodeModel(filename, prog, enc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
