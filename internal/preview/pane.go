package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrMounted is returned when Mount is called on a pane that is already listening
var ErrMounted = errors.New("preview pane already mounted")

// Pane is the state of one mounted preview: the frame's srcdoc, the captured
// console and the viewport controls. It is safe for concurrent use.
type Pane struct {
	mu sync.Mutex

	doc     Document
	autoRun bool

	srcdoc     string
	generation int

	consoleOutput  string
	scrollLine     int
	screenSize     ScreenSize
	consoleVisible bool

	mounted bool
	stop    context.CancelFunc
	done    chan struct{}
}

// NewPane creates a pane for the given inputs with the initial document already rendered
func NewPane(doc Document, autoRun bool) *Pane {
	p := &Pane{doc: doc, autoRun: autoRun}
	p.reset()
	p.render()
	return p
}

func (p *Pane) reset() {
	p.consoleOutput = ""
	p.scrollLine = 0
	p.screenSize = ScreenDesktop
	p.consoleVisible = true
}

// render assigns a fresh srcdoc; callers hold mu
func (p *Pane) render() string {
	p.generation++
	p.srcdoc = p.doc.Render(p.generation)
	return p.srcdoc
}

// Mount starts reading raw frame payloads from in until Unmount is called,
// ctx ends or in is closed. Mounting again after Unmount resets the console
// and viewport state.
func (p *Pane) Mount(ctx context.Context, in <-chan []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.mounted {
		return ErrMounted
	}
	if p.done != nil {
		p.reset()
	}

	ctx, cancel := context.WithCancel(ctx)
	p.mounted = true
	p.stop = cancel
	p.done = make(chan struct{})

	if p.autoRun {
		p.render()
	}

	go p.listen(ctx, in, p.done)
	return nil
}

func (p *Pane) listen(ctx context.Context, in <-chan []byte, done chan struct{}) {
	defer func() {
		p.mu.Lock()
		// A listener that ends on its own leaves the pane free to mount again.
		if p.done == done {
			p.mounted = false
		}
		p.mu.Unlock()
		close(done)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-in:
			if !ok {
				return
			}
			if msg, ok := ParseMessage(raw); ok {
				p.handleMessage(msg)
			}
		}
	}
}

// Unmount releases the message listener and waits for it to exit. No message
// is appended once Unmount returns.
func (p *Pane) Unmount() {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = false
	stop, done := p.stop, p.done
	p.mu.Unlock()

	stop()
	<-done
}

func (p *Pane) handleMessage(msg Message) {
	if msg.Type != MessageTypeConsole {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.mounted {
		return
	}
	// Late messages from a document that has since been reloaded.
	if msg.Generation != 0 && msg.Generation < p.generation {
		return
	}

	p.consoleOutput = fmt.Sprintf("%s\n[Console] %s", p.consoleOutput, msg.Message)
	p.scrollLine = strings.Count(p.consoleOutput, "\n")
}

// Update replaces the editor inputs; with autoRun set the frame is re-rendered
func (p *Pane) Update(doc Document, autoRun bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.doc = doc
	p.autoRun = autoRun
	if autoRun {
		p.render()
	}
}

// Refresh re-renders the frame from the current inputs and returns the new srcdoc
func (p *Pane) Refresh() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.render()
}

// RunConsole re-runs the snippet so its console output is captured again
func (p *Pane) RunConsole() string {
	return p.Refresh()
}

// SrcDoc returns the document currently loaded in the frame
func (p *Pane) SrcDoc() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.srcdoc
}

// Generation returns the render count of the current frame document
func (p *Pane) Generation() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// ConsoleOutput returns the captured console log
func (p *Pane) ConsoleOutput() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consoleOutput
}

// ScrollLine is the console line the view is scrolled to, always the newest entry
func (p *Pane) ScrollLine() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.scrollLine
}

// ScreenSize returns the selected viewport
func (p *Pane) ScreenSize() ScreenSize {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.screenSize
}

// SetScreenSize switches the simulated viewport
func (p *Pane) SetScreenSize(s ScreenSize) error {
	if !s.Valid() {
		return fmt.Errorf("unknown screen size %q", s)
	}

	p.mu.Lock()
	p.screenSize = s
	p.mu.Unlock()
	return nil
}

// FrameStyle returns the iframe style for the selected viewport
func (p *Pane) FrameStyle() FrameStyle {
	return p.ScreenSize().Style()
}

// ConsoleVisible reports whether the console view is shown
func (p *Pane) ConsoleVisible() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.consoleVisible
}

// ToggleConsole shows or hides the console and returns the new visibility
func (p *Pane) ToggleConsole() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.consoleVisible = !p.consoleVisible
	return p.consoleVisible
}

// ConsoleToggleLabel is the text of the visibility button
func (p *Pane) ConsoleToggleLabel() string {
	if p.ConsoleVisible() {
		return "Hide Console"
	}
	return "Show Console"
}

// Export places the document synthesized from the current inputs in store
// as index.html and returns its object URL id.
func (p *Pane) Export(store *BlobStore) string {
	p.mu.Lock()
	document := p.doc.Render(p.generation)
	p.mu.Unlock()

	return store.CreateObjectURL(NewHTMLBlob(document))
}
