package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/countx/stream"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#80a0ff"))
	labelStyle = lipgloss.NewStyle().Width(16).Foreground(lipgloss.Color("#808080"))
	helpStyle  = lipgloss.NewStyle().Faint(true)
)

type frameMsg stream.Frame

type model struct {
	order  []string
	frames map[string]stream.Frame
}

func newModel() model {
	return model{frames: make(map[string]stream.Frame)}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case frameMsg:
		f := stream.Frame(msg)
		if _, ok := m.frames[f.ID]; !ok {
			m.order = append(m.order, f.ID)
			sort.Strings(m.order)
		}
		m.frames[f.ID] = f
	}
	return m, nil
}

// renderStrips draws a digit roll as one window row per column, with
// the digit currently visible at each column's offset.
func renderStrips(f stream.Frame) string {
	var b strings.Builder
	for i := range f.Offsets {
		visible := int(f.Offsets[i] + 0.5)
		if visible > 9 {
			visible = 9
		}
		b.WriteString(fmt.Sprintf("[%d]", visible))
	}
	return b.String()
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("countx") + "\n\n")
	for _, id := range m.order {
		f := m.frames[id]
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(f.Color)).Bold(f.Done)
		text := f.Text
		if len(f.Offsets) > 0 {
			text = renderStrips(f)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", labelStyle.Render(id), style.Render(text)))
	}
	b.WriteString(helpStyle.Render("\nq: quit") + "\n")
	return b.String()
}

func main() {
	broker := flag.String("broker", "tcp://localhost:1883", "MQTT broker URL.")
	topic := flag.String("topic", "home/countx/stream", "Frame topic root.")
	flag.Parse()

	p := tea.NewProgram(newModel())

	options := mqtt.NewClientOptions().
		AddBroker(*broker).
		SetClientID("countxview").
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(func(client mqtt.Client) {
			token := client.Subscribe(*topic+"/#", 0, func(client mqtt.Client, msg mqtt.Message) {
				var f stream.Frame
				if err := json.Unmarshal(msg.Payload(), &f); err != nil {
					return
				}
				p.Send(frameMsg(f))
			})
			token.Wait()
		})
	client := mqtt.NewClient(options)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.Fatal(token.Error())
	}

	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}
