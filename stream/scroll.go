package stream

import (
	"encoding/json"
	"log"
	"os"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/matt-g-everett/countx/anim"
)

// ScrollReport is the JSON payload a display device publishes as its
// viewport scrolls: the viewport height plus the top offset of every
// widget region it is showing.
type ScrollReport struct {
	ViewportHeight float64            `json:"viewportHeight"`
	Regions        map[string]float64 `json:"regions"`
}

// A ScrollRouter subscribes to the device's scroll-report topic and
// fans events out to the scroll triggers tracking each widget region.
type ScrollRouter struct {
	config Config
	client mqtt.Client

	mu      sync.Mutex
	last    map[string]anim.ScrollEvent
	subs    map[string]map[int]func(anim.ScrollEvent)
	nextSub int
}

// NewScrollRouter creates an instance of a ScrollRouter.
func NewScrollRouter(config Config, client mqtt.Client) *ScrollRouter {
	s := new(ScrollRouter)
	s.config = config
	s.client = client
	s.last = make(map[string]anim.ScrollEvent)
	s.subs = make(map[string]map[int]func(anim.ScrollEvent))
	return s
}

// Subscribe attaches the router to the scroll-report topic.
func (s *ScrollRouter) Subscribe() {
	if token := s.client.Subscribe(s.config.Mqtt.Topics.Scroll, 0, s.handleMessage); token.Wait() && token.Error() != nil {
		log.Println(token.Error())
		os.Exit(1)
	}
}

func (s *ScrollRouter) handleMessage(client mqtt.Client, msg mqtt.Message) {
	var report ScrollReport
	if err := json.Unmarshal(msg.Payload(), &report); err != nil {
		log.Printf("stream: bad scroll report on %s: %v", msg.Topic(), err)
		return
	}
	s.Dispatch(report)
}

// Dispatch records a report and notifies the subscribers of every
// region it mentions.
func (s *ScrollRouter) Dispatch(report ScrollReport) {
	for id, top := range report.Regions {
		ev := anim.ScrollEvent{Top: top, ViewportHeight: report.ViewportHeight}

		s.mu.Lock()
		s.last[id] = ev
		fns := make([]func(anim.ScrollEvent), 0, len(s.subs[id]))
		for _, fn := range s.subs[id] {
			fns = append(fns, fn)
		}
		s.mu.Unlock()

		for _, fn := range fns {
			fn(ev)
		}
	}
}

// Source returns the per-widget scroll source consumed by an
// activation trigger.
func (s *ScrollRouter) Source(id string) anim.ScrollSource {
	return &scrollView{router: s, id: id}
}

type scrollView struct {
	router *ScrollRouter
	id     string
}

func (v *scrollView) Current() (anim.ScrollEvent, bool) {
	v.router.mu.Lock()
	defer v.router.mu.Unlock()
	ev, ok := v.router.last[v.id]
	return ev, ok
}

func (v *scrollView) Subscribe(fn func(anim.ScrollEvent)) func() {
	v.router.mu.Lock()
	defer v.router.mu.Unlock()
	if v.router.subs[v.id] == nil {
		v.router.subs[v.id] = make(map[int]func(anim.ScrollEvent))
	}
	v.router.nextSub++
	key := v.router.nextSub
	v.router.subs[v.id][key] = fn

	return func() {
		v.router.mu.Lock()
		defer v.router.mu.Unlock()
		delete(v.router.subs[v.id], key)
	}
}
