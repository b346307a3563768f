package camera

import (
	"math"

	"github.com/Carmen-Shannon/oxy-orbit/common"
	"go.uber.org/zap"
)

const (
	// wheel delta multipliers for line and page delta modes
	wheelLineScale = 16
	wheelPageScale = 100

	// ctrl+wheel from a trackpad pinch reports much smaller deltas
	wheelPinchScale = 10
)

// --- pointer events ---

func (cc *cameraControllerImpl) HandlePointerDown(ev common.PointerEvent) {
	cc.do(func() {
		if !cc.cfg.Enabled {
			return
		}
		if cc.pointers.len() == 0 {
			cc.capturing = true
		}
		if !cc.pointers.add(ev.PointerID, ev.Position()) {
			return
		}

		if ev.PointerType == common.PointerTouch {
			cc.onTouchStart(ev.PointerID, ev.Position(), true)
		} else {
			cc.onMouseDown(ev)
		}
	})
}

func (cc *cameraControllerImpl) HandlePointerMove(ev common.PointerEvent) {
	cc.do(func() {
		if !cc.cfg.Enabled || !cc.pointers.has(ev.PointerID) {
			return
		}
		if ev.PointerType == common.PointerTouch {
			cc.onTouchMove(ev.PointerID, ev.Position())
		} else {
			cc.onMouseMove(ev.Position())
		}
	})
}

func (cc *cameraControllerImpl) HandlePointerUp(ev common.PointerEvent) {
	cc.do(func() {
		cc.onPointerRelease(ev.PointerID)
	})
}

func (cc *cameraControllerImpl) HandlePointerCancel(ev common.PointerEvent) {
	cc.do(func() {
		cc.onPointerRelease(ev.PointerID)
	})
}

// onPointerRelease drops the pointer and either ends the gesture or hands it to the
// remaining contact.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) onPointerRelease(id common.PointerID) {
	if !cc.pointers.remove(id) {
		return
	}

	switch cc.pointers.len() {
	case 0:
		cc.capturing = false
		cc.logger.Debug("gesture ended", zap.Stringer("state", cc.state))
		cc.pending = append(cc.pending, EventEnd)
		cc.state = StateNone
	case 1:
		remaining, pos, _ := cc.pointers.first()
		cc.onTouchStart(remaining, pos, false)
	}
}

// --- mouse gestures ---

// onMouseDown classifies a mouse or pen press.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) onMouseDown(ev common.PointerEvent) {
	var action MouseAction
	switch ev.Button {
	case common.MouseButtonLeft:
		action = cc.cfg.MouseButtons.Left
	case common.MouseButtonMiddle:
		action = cc.cfg.MouseButtons.Middle
	case common.MouseButtonRight:
		action = cc.cfg.MouseButtons.Right
	default:
		action = MouseActionNone
	}

	pos := ev.Position()
	switch action {
	case MouseActionDolly:
		if !cc.cfg.EnableZoom {
			return
		}
		cc.updateZoomParameters(pos.X, pos.Y)
		cc.dollyStart = pos
		cc.state = StateDolly

	case MouseActionRotate:
		if ev.HasModifier() {
			if !cc.cfg.EnablePan {
				return
			}
			cc.panStart = pos
			cc.state = StatePan
		} else {
			if !cc.cfg.EnableRotate {
				return
			}
			cc.rotateStart = pos
			cc.state = StateRotate
		}

	case MouseActionPan:
		if ev.HasModifier() {
			if !cc.cfg.EnableRotate {
				return
			}
			cc.rotateStart = pos
			cc.state = StateRotate
		} else {
			if !cc.cfg.EnablePan {
				return
			}
			cc.panStart = pos
			cc.state = StatePan
		}

	default:
		cc.state = StateNone
	}

	if cc.state != StateNone {
		cc.logger.Debug("gesture started",
			zap.Stringer("state", cc.state),
			zap.Int64("pointer", int64(ev.PointerID)),
		)
		cc.pending = append(cc.pending, EventStart)
	}
}

// onMouseMove continues the active mouse gesture.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) onMouseMove(pos common.Vec2) {
	switch cc.state {
	case StateRotate:
		if !cc.cfg.EnableRotate {
			return
		}
		cc.rotateBy(pos.Sub(cc.rotateStart))
		cc.rotateStart = pos

	case StateDolly:
		if !cc.cfg.EnableZoom {
			return
		}
		delta := pos.Sub(cc.dollyStart)
		if delta.Y > 0 {
			cc.dollyOut(cc.zoomScale(delta.Y))
		} else if delta.Y < 0 {
			cc.dollyIn(cc.zoomScale(delta.Y))
		}
		cc.dollyStart = pos

	case StatePan:
		if !cc.cfg.EnablePan {
			return
		}
		delta := pos.Sub(cc.panStart).Scale(cc.cfg.PanSpeed)
		cc.pan(delta.X, delta.Y)
		cc.panStart = pos

	default:
		return
	}

	cc.update(0, false)
}

// rotateBy converts a pixel delta to azimuthal and polar deltas. Both axes are normalized
// by the viewport height.
func (cc *cameraControllerImpl) rotateBy(delta common.Vec2) {
	if cc.viewportHeight <= 0 {
		return
	}
	delta = delta.Scale(cc.cfg.RotateSpeed)
	cc.rotateLeft(2 * math.Pi * delta.X / cc.viewportHeight)
	cc.rotateUp(2 * math.Pi * delta.Y / cc.viewportHeight)
}

// --- touch gestures ---

// onTouchStart classifies the gesture from the number of active contacts. emitStart is
// false when the gesture continues with the contact left after a multi-touch release.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) onTouchStart(id common.PointerID, pos common.Vec2, emitStart bool) {
	cc.pointers.track(id, pos)

	switch cc.pointers.len() {
	case 1:
		switch cc.cfg.Touches.One {
		case TouchActionRotate:
			if !cc.cfg.EnableRotate {
				return
			}
			cc.rotateStart = cc.touchAnchor(id, pos)
			cc.state = StateTouchRotate
		case TouchActionPan:
			if !cc.cfg.EnablePan {
				return
			}
			cc.panStart = cc.touchAnchor(id, pos)
			cc.state = StateTouchPan
		default:
			cc.state = StateNone
		}

	case 2:
		switch cc.cfg.Touches.Two {
		case TouchActionDollyPan:
			if !cc.cfg.EnableZoom && !cc.cfg.EnablePan {
				return
			}
			if cc.cfg.EnableZoom {
				cc.touchStartDolly(id, pos)
			}
			if cc.cfg.EnablePan {
				cc.panStart = cc.touchAnchor(id, pos)
			}
			cc.state = StateTouchDollyPan
		case TouchActionDollyRotate:
			if !cc.cfg.EnableZoom && !cc.cfg.EnableRotate {
				return
			}
			if cc.cfg.EnableZoom {
				cc.touchStartDolly(id, pos)
			}
			if cc.cfg.EnableRotate {
				cc.rotateStart = cc.touchAnchor(id, pos)
			}
			cc.state = StateTouchDollyRotate
		default:
			cc.state = StateNone
		}

	default:
		cc.state = StateNone
	}

	if cc.state != StateNone && emitStart {
		cc.logger.Debug("gesture started",
			zap.Stringer("state", cc.state),
			zap.Int("contacts", cc.pointers.len()),
		)
		cc.pending = append(cc.pending, EventStart)
	}
}

// onTouchMove continues the active touch gesture and updates immediately.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) onTouchMove(id common.PointerID, pos common.Vec2) {
	cc.pointers.track(id, pos)

	switch cc.state {
	case StateTouchRotate:
		if !cc.cfg.EnableRotate {
			return
		}
		cc.touchMoveRotate(id, pos)

	case StateTouchPan:
		if !cc.cfg.EnablePan {
			return
		}
		cc.touchMovePan(id, pos)

	case StateTouchDollyPan:
		if !cc.cfg.EnableZoom && !cc.cfg.EnablePan {
			return
		}
		if cc.cfg.EnableZoom {
			cc.touchMoveDolly(id, pos)
		}
		if cc.cfg.EnablePan {
			cc.touchMovePan(id, pos)
		}

	case StateTouchDollyRotate:
		if !cc.cfg.EnableZoom && !cc.cfg.EnableRotate {
			return
		}
		if cc.cfg.EnableZoom {
			cc.touchMoveDolly(id, pos)
		}
		if cc.cfg.EnableRotate {
			cc.touchMoveRotate(id, pos)
		}

	default:
		cc.state = StateNone
		return
	}

	cc.update(0, false)
}

// touchAnchor is the contact position with one pointer, or the midpoint of both with two.
func (cc *cameraControllerImpl) touchAnchor(id common.PointerID, pos common.Vec2) common.Vec2 {
	if cc.pointers.len() == 1 {
		return pos
	}
	if other, ok := cc.pointers.other(id); ok {
		return pos.Mid(other)
	}
	return pos
}

func (cc *cameraControllerImpl) touchStartDolly(id common.PointerID, pos common.Vec2) {
	other, ok := cc.pointers.other(id)
	if !ok {
		return
	}
	cc.dollyStart = common.Vec2{X: 0, Y: pos.Dist(other)}
}

func (cc *cameraControllerImpl) touchMoveRotate(id common.PointerID, pos common.Vec2) {
	end := cc.touchAnchor(id, pos)
	cc.rotateBy(end.Sub(cc.rotateStart))
	cc.rotateStart = end
}

func (cc *cameraControllerImpl) touchMovePan(id common.PointerID, pos common.Vec2) {
	end := cc.touchAnchor(id, pos)
	delta := end.Sub(cc.panStart).Scale(cc.cfg.PanSpeed)
	cc.pan(delta.X, delta.Y)
	cc.panStart = end
}

// touchMoveDolly scales by the ratio of the current to the previous contact separation.
func (cc *cameraControllerImpl) touchMoveDolly(id common.PointerID, pos common.Vec2) {
	other, ok := cc.pointers.other(id)
	if !ok {
		return
	}
	end := common.Vec2{X: 0, Y: pos.Dist(other)}
	if cc.dollyStart.Y > 0 && end.Y > 0 {
		cc.dollyOut(math.Pow(end.Y/cc.dollyStart.Y, cc.cfg.ZoomSpeed))
	}
	cc.dollyStart = end

	center := pos.Mid(other)
	cc.updateZoomParameters(center.X, center.Y)
}

// --- wheel and keyboard ---

func (cc *cameraControllerImpl) HandleWheel(ev common.WheelEvent) bool {
	consumed := false
	cc.do(func() {
		if !cc.cfg.Enabled || !cc.cfg.EnableZoom || cc.state != StateNone {
			return
		}
		consumed = true

		cc.pending = append(cc.pending, EventStart)

		deltaY := cc.normalizeWheelDelta(ev)
		cc.updateZoomParameters(ev.X, ev.Y)
		if deltaY < 0 {
			cc.dollyIn(cc.zoomScale(deltaY))
		} else if deltaY > 0 {
			cc.dollyOut(cc.zoomScale(deltaY))
		}
		cc.update(0, false)

		cc.pending = append(cc.pending, EventEnd)
	})
	return consumed
}

// normalizeWheelDelta converts a wheel delta to pixel units.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) normalizeWheelDelta(ev common.WheelEvent) float64 {
	deltaY := ev.DeltaY
	switch ev.DeltaMode {
	case common.WheelDeltaLine:
		deltaY *= wheelLineScale
	case common.WheelDeltaPage:
		deltaY *= wheelPageScale
	}
	if ev.Ctrl && !cc.controlActive {
		deltaY *= wheelPinchScale
	}
	return deltaY
}

func (cc *cameraControllerImpl) HandleKeyDown(ev common.KeyEvent) bool {
	consumed := false
	cc.do(func() {
		if ev.Code.IsControl() {
			cc.controlActive = true
		}
		if !cc.cfg.Enabled || !cc.cfg.EnablePan {
			return
		}

		var rotateStep float64
		if cc.viewportHeight > 0 {
			rotateStep = 2 * math.Pi * cc.cfg.RotateSpeed / cc.viewportHeight
		}
		keyPan := cc.cfg.KeyPanSpeed
		modified := ev.HasModifier()

		switch ev.Code {
		case common.KeyArrowUp:
			if modified {
				if cc.cfg.EnableRotate {
					cc.rotateUp(rotateStep)
				}
			} else {
				cc.pan(0, keyPan)
			}
		case common.KeyArrowDown:
			if modified {
				if cc.cfg.EnableRotate {
					cc.rotateUp(-rotateStep)
				}
			} else {
				cc.pan(0, -keyPan)
			}
		case common.KeyArrowLeft:
			if modified {
				if cc.cfg.EnableRotate {
					cc.rotateLeft(rotateStep)
				}
			} else {
				cc.pan(keyPan, 0)
			}
		case common.KeyArrowRight:
			if modified {
				if cc.cfg.EnableRotate {
					cc.rotateLeft(-rotateStep)
				}
			} else {
				cc.pan(-keyPan, 0)
			}
		default:
			return
		}

		consumed = true
		cc.update(0, false)
	})
	return consumed
}

func (cc *cameraControllerImpl) HandleKeyUp(ev common.KeyEvent) {
	if !ev.Code.IsControl() {
		return
	}
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.controlActive = false
}

func (cc *cameraControllerImpl) HandleContextMenu() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.cfg.Enabled
}
