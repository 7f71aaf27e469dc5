package viewer

import (
	"fmt"

	"github.com/Faultbox/gsexplode/internal/engine/clock"
	"github.com/Faultbox/gsexplode/internal/engine/input"
	"github.com/Faultbox/gsexplode/internal/engine/renderer"
	"github.com/Faultbox/gsexplode/internal/engine/ui"
)

// Loop ties a viewer to the window that presents it.
type Loop struct {
	Backend  *ui.Backend
	Renderer *renderer.Renderer
	Title    string
	FPS      int
}

// Run blocks until the window closes, Escape is pressed or a frame fails.
// The backend presents after each callback returns, so throttling happens at
// the start of the next callback.
func (l *Loop) Run(v *Viewer) error {
	poller := input.NewPoller()
	pacer := clock.NewPacer(l.FPS)
	shownFPS := -1

	var runErr error
	l.Backend.Run(func() {
		if runErr != nil || v.Terminating() {
			return
		}
		dt := pacer.Tick()

		w, h := l.Backend.DisplaySize()
		in := poller.Poll(w, h)
		ui.DrawScene(l.Renderer.SceneTexture())

		if err := v.Step(in, dt); err != nil {
			runErr = err
			l.Backend.Close()
			return
		}
		if v.Terminating() {
			l.Backend.Close()
			return
		}

		if fps := int(v.FPS() + 0.5); fps != shownFPS {
			shownFPS = fps
			l.Backend.SetWindowTitle(fmt.Sprintf("%s - %d fps", l.Title, fps))
		}
	})
	return runErr
}
