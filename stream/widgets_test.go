package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matt-g-everett/countx/anim"
)

func testConfig() Config {
	var config Config
	config.Widgets = []WidgetConfig{
		{ID: "visitors", Type: "counter", Attrs: map[string]string{"from": "0", "to": "1000", "speed": "2000"}},
		{ID: "jackpot", Type: "roll", Attrs: map[string]string{"to": "4562"}},
		{ID: "broken", Type: "roll", Attrs: map[string]string{"duration": "2"}},
		{ID: "odd", Type: "blink"},
	}
	return config
}

func TestBuildWidgetsSkipsMisconfigured(t *testing.T) {
	widgets := BuildWidgets(testConfig(), anim.NewMockClock(time.Unix(0, 0)))

	require.Len(t, widgets, 2)
	assert.Equal(t, "visitors", widgets[0].ID)
	assert.Equal(t, "jackpot", widgets[1].ID)
}

func TestBuildWidgetsRollGetsDefaultDelayTrigger(t *testing.T) {
	widgets := BuildWidgets(testConfig(), anim.NewMockClock(time.Unix(0, 0)))

	require.Nil(t, widgets[0].trigger)
	require.NotNil(t, widgets[1].trigger)
}

func TestWidgetArmWithoutTriggerStartsImmediately(t *testing.T) {
	clock := anim.NewMockClock(time.Unix(0, 0))
	widgets := BuildWidgets(testConfig(), clock)

	counter := widgets[0]
	counter.Arm(nil, nil)
	assert.True(t, counter.Running())
}

func TestWidgetRollArmStartsAfterDelay(t *testing.T) {
	clock := anim.NewMockClock(time.Unix(0, 0))
	widgets := BuildWidgets(testConfig(), clock)

	roll := widgets[1]
	roll.Arm(nil, nil)
	assert.False(t, roll.Running())

	clock.Advance(defaultRollDelay)
	assert.True(t, roll.Running())
}

func TestWidgetScrollTriggerArmsAgainstRouter(t *testing.T) {
	clock := anim.NewMockClock(time.Unix(0, 0))
	var config Config
	config.Widgets = []WidgetConfig{
		{ID: "gated", Type: "counter", Attrs: map[string]string{
			"to": "100", "trigger": "scroll", "threshold": "0.8",
		}},
	}
	widgets := BuildWidgets(config, clock)
	require.Len(t, widgets, 1)

	router := NewScrollRouter(Config{}, nil)
	ArmWidgets(widgets, router, nil)
	assert.False(t, widgets[0].Running())

	router.Dispatch(ScrollReport{ViewportHeight: 1000, Regions: map[string]float64{"gated": 750}})
	assert.True(t, widgets[0].Running())
}

func TestWidgetFrameForCounter(t *testing.T) {
	clock := anim.NewMockClock(time.Unix(0, 0))
	widgets := BuildWidgets(testConfig(), clock)

	f := widgets[0].Frame(ProgressGradient())
	assert.Equal(t, "visitors", f.ID)
	assert.Equal(t, "0", f.Text)
	assert.False(t, f.Done)
	assert.NotEmpty(t, f.Color)
	assert.Nil(t, f.Offsets)
}

func TestWidgetFrameForRoll(t *testing.T) {
	clock := anim.NewMockClock(time.Unix(0, 0))
	widgets := BuildWidgets(testConfig(), clock)

	f := widgets[1].Frame(ProgressGradient())
	assert.Equal(t, "jackpot", f.ID)
	assert.Equal(t, []int{4, 5, 6, 2}, f.Digits)
	assert.Equal(t, []float64{0, 0, 0, 0}, f.Offsets)
	assert.False(t, f.Done)
}

func TestWidgetOperations(t *testing.T) {
	clock := anim.NewMockClock(time.Unix(0, 0))
	widgets := BuildWidgets(testConfig(), clock)
	counter := widgets[0]

	counter.Start()
	assert.True(t, counter.Running())
	counter.Toggle()
	assert.False(t, counter.Running())
	counter.Toggle()
	assert.True(t, counter.Running())
	counter.Stop()
	assert.False(t, counter.Running())
	counter.Restart()
	assert.True(t, counter.Running())
	counter.Reset()
	assert.False(t, counter.Running())
}
