package style

import (
	"strings"
	"time"
)

// Wrap breaks text into lines no wider than width, measured with measure. Words wider than width
// get a line of their own. Explicit newlines are kept.
func Wrap(text string, width float32, measure func(string) float32) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			candidate := line + " " + w
			if width > 0 && measure(candidate) > width {
				lines = append(lines, line)
				line = w
				continue
			}
			line = candidate
		}
		lines = append(lines, line)
	}
	return lines
}

// Fade moves a value linearly toward a target over Duration; a full 0-1 swing takes Duration.
type Fade struct {
	Value    float32
	Target   float32
	Duration time.Duration
}

// Step advances the fade by dt. A zero Duration jumps to the target.
func (f *Fade) Step(dt time.Duration) {
	if f.Duration <= 0 {
		f.Value = f.Target
		return
	}
	step := float32(dt.Seconds() / f.Duration.Seconds())
	switch {
	case f.Value < f.Target:
		f.Value = min(f.Value+step, f.Target)
	case f.Value > f.Target:
		f.Value = max(f.Value-step, f.Target)
	}
}

// Settled reports whether the value reached the target.
func (f *Fade) Settled() bool {
	return f.Value == f.Target
}
