package stream

// Config is the yaml service configuration. Widget attrs carry the
// declarative key/value configuration parsed by the anim package.
type Config struct {
	Mqtt struct {
		URL      string `yaml:"url"`
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		Topics   struct {
			Stream string `yaml:"stream"`
			Scroll string `yaml:"scroll"`
		} `yaml:"topics"`
	} `yaml:"mqtt"`
	FrameRate float64        `yaml:"frameRate"`
	Widgets   []WidgetConfig `yaml:"widgets"`
}

// WidgetConfig declares one display widget.
type WidgetConfig struct {
	ID    string            `yaml:"id"`
	Type  string            `yaml:"type"`
	Attrs map[string]string `yaml:"attrs"`
}
