package stream

import (
	"encoding/json"
	"log"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Streamer that publishes widget frames to a countrx display device.
type Streamer struct {
	config   Config
	client   mqtt.Client
	widgets  []*Widget
	gradient GradientTable
	interval time.Duration
}

// NewStreamer creates an instance of a Streamer.
func NewStreamer(config Config, client mqtt.Client, widgets []*Widget) *Streamer {
	s := new(Streamer)
	s.config = config
	s.client = client
	s.widgets = widgets
	s.gradient = ProgressGradient()

	frameRate := config.FrameRate
	if frameRate <= 0 {
		frameRate = 30.0
	}
	s.interval = time.Duration(float64(time.Second) / frameRate)

	return s
}

// Widgets returns the widgets in declaration order.
func (s *Streamer) Widgets() []*Widget {
	return s.widgets
}

// Widget looks a widget up by id.
func (s *Streamer) Widget(id string) (*Widget, bool) {
	for _, w := range s.widgets {
		if w.ID == id {
			return w, true
		}
	}
	return nil, false
}

// SendFrames publishes the current frame of every widget.
func (s *Streamer) SendFrames() {
	for _, w := range s.widgets {
		f := w.Frame(s.gradient)
		b, err := json.Marshal(f)
		if err != nil {
			log.Printf("stream: marshal frame for %s: %v", w.ID, err)
			continue
		}
		token := s.client.Publish(s.config.Mqtt.Topics.Stream+"/"+w.ID, 0, false, b)
		token.Wait()
	}
}

// Run causes the Streamer to send frames continuously.
func (s *Streamer) Run() {
	publishTimer := time.NewTicker(s.interval)
	for {
		<-publishTimer.C
		s.SendFrames()
	}
}
