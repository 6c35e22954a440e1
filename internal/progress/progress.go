package progress

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Indicator reports the stages of a goapctl run (loading, validating,
// searching) to stdout.
type Indicator struct {
	enabled bool
	mu      sync.Mutex
	phase   string
	start   time.Time
}

// NewIndicator creates a new progress indicator.
func NewIndicator(enabled bool) *Indicator {
	return &Indicator{
		enabled: enabled,
		start:   time.Now(),
	}
}

// Phase sets the current phase.
func (p *Indicator) Phase(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.phase = name
	fmt.Printf("\n%s\n", name)
}

// Step reports a step within the current phase.
func (p *Indicator) Step(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  - %s\n", name)
}

// Success marks a step as successful.
func (p *Indicator) Success(name string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  ok %s\n", name)
}

// Error reports a step failure.
func (p *Indicator) Error(name string, err error) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  fail %s: %v\n", name, err)
}

// Info prints an informational message.
func (p *Indicator) Info(msg string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  %s\n", msg)
}

// Expansion reports periodic search progress: expansions so far and the
// current open-set size.
func (p *Indicator) Expansion(expansions, openSize int) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Printf("  expansions=%s open=%d\n", formatNumber(expansions), openSize)
}

// Elapsed returns time since the indicator was created.
func (p *Indicator) Elapsed() time.Duration {
	return time.Since(p.start)
}

// Summary prints a final summary line.
func (p *Indicator) Summary(success bool, details string) {
	if !p.enabled {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	word := "done"
	if !success {
		word = "failed"
	}

	elapsed := time.Since(p.start)
	fmt.Printf("\n%s in %s\n", word, formatDuration(elapsed))
	if details != "" {
		fmt.Printf("  %s\n", details)
	}
}

func formatNumber(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for i := len(s); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		parts = append([]string{s[start:i]}, parts...)
	}
	return strings.Join(parts, ",")
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", minutes, seconds)
}
