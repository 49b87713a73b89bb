package headless

import "sync"

// AboutPanel records About displays. It is built on the first show and
// reused afterwards, the same policy the GUI backends follow.
type AboutPanel struct {
	mu     sync.Mutex
	built  int
	title  string
	text   string
	shows  int
	hidden bool
}

func (p *AboutPanel) ShowAbout(title, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.built == 0 {
		p.built++
		p.title = title
	}
	p.text = text
	p.shows++
	p.hidden = false
	return nil
}

// Dismiss hides the panel the way the OK button does.
func (p *AboutPanel) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hidden = true
}

// Snapshot returns title, last text, number of shows and number of
// constructions.
func (p *AboutPanel) Snapshot() (title, text string, shows, built int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.title, p.text, p.shows, p.built
}

func (p *AboutPanel) Visible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shows > 0 && !p.hidden
}
