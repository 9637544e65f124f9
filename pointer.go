package hotloop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// PointerHandler consumes normalized single-pointer events in screen space.
// Scene implements it.
type PointerHandler interface {
	PressStart(x, y float64)
	PressMove(x, y float64)
	PressEnd()
}

// pointerSource turns ebiten mouse and touch state into press events for a
// single pointer. The first touch wins; further fingers are ignored until it
// lifts. The mouse is treated as a one-finger touch while its left button is
// down.
type pointerSource struct {
	down     bool
	touching bool
	touchID  ebiten.TouchID
	lastX    float64
	lastY    float64
	touchBuf []ebiten.TouchID
}

// poll reads this tick's input and emits at most one press transition plus
// movement.
func (p *pointerSource) poll(h PointerHandler) {
	if p.touching || !p.down {
		if p.pollTouch(h) {
			return
		}
	}
	p.pollMouse(h)
}

// pollTouch handles the tracked touch. It returns true when touch input owns
// the pointer this tick.
func (p *pointerSource) pollTouch(h PointerHandler) bool {
	if p.touching {
		if inpututil.IsTouchJustReleased(p.touchID) {
			p.touching = false
			p.down = false
			h.PressEnd()
			return true
		}
		tx, ty := ebiten.TouchPosition(p.touchID)
		p.move(h, float64(tx), float64(ty))
		return true
	}

	p.touchBuf = inpututil.AppendJustPressedTouchIDs(p.touchBuf[:0])
	if len(p.touchBuf) == 0 {
		return false
	}
	p.touchID = p.touchBuf[0]
	p.touching = true
	tx, ty := ebiten.TouchPosition(p.touchID)
	p.press(h, float64(tx), float64(ty))
	return true
}

func (p *pointerSource) pollMouse(h PointerHandler) {
	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !p.down:
		p.press(h, x, y)
	case !pressed && p.down:
		p.down = false
		h.PressEnd()
	case pressed && p.down:
		p.move(h, x, y)
	}
}

func (p *pointerSource) press(h PointerHandler, x, y float64) {
	p.down = true
	p.lastX, p.lastY = x, y
	h.PressStart(x, y)
}

// move reports movement only when the position actually changed, so a still
// pointer does not cancel the hold detector.
func (p *pointerSource) move(h PointerHandler, x, y float64) {
	if x == p.lastX && y == p.lastY {
		return
	}
	p.lastX, p.lastY = x, y
	h.PressMove(x, y)
}
