package gamepad

import (
	"sync"

	"github.com/jupiterrider/purego-sdl3/sdl"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrNoController is returned by Open when no joystick is connected.
var ErrNoController = errors.New("no controller found")

type joystickInfo struct {
	joystick *sdl.Joystick
	mapping  *DeviceMapping
	name     string
	id       sdl.JoystickID
}

// Info describes the active controller.
type Info struct {
	Connected      bool   `json:"connected"`
	Name           string `json:"name"`
	ControllerType string `json:"controllerType"`
}

// Reader reads controller input from the SDL3 Joystick API and translates it
// into logical Events. All methods except Info must be called from the
// goroutine that called Open, locked to its OS thread.
type Reader struct {
	logger    *zap.SugaredLogger
	joysticks map[sdl.JoystickID]*joystickInfo
	activeID  sdl.JoystickID // the first connected joystick
	hasActive bool
	opened    bool
	pending   []Event
	info      Info
	mu        sync.RWMutex
}

func NewReader(logger *zap.SugaredLogger) *Reader {
	return &Reader{
		logger:    logger,
		joysticks: make(map[sdl.JoystickID]*joystickInfo),
	}
}

// Info returns a snapshot of the active controller description.
func (r *Reader) Info() Info {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.info
}

// Open initializes SDL and opens every connected joystick. It returns
// ErrNoController, with SDL already shut down, when none is present.
func (r *Reader) Open() error {
	// No window of ours ever has focus.
	sdl.SetHint("SDL_JOYSTICK_ALLOW_BACKGROUND_EVENTS", "1")
	if !sdl.Init(sdl.InitJoystick) {
		return errors.Errorf("SDL init failed: %s", sdl.GetError())
	}
	r.opened = true
	r.logger.Debug("SDL3 joystick subsystem initialized")

	var initial []Event
	for _, id := range sdl.GetJoysticks() {
		initial = r.openJoystick(id, initial)
	}
	if !r.hasActive {
		r.closeAll()
		sdl.Quit()
		r.opened = false
		return ErrNoController
	}
	// Axis snapshots of the newly active device are replayed by the first Poll.
	r.pending = initial
	return nil
}

// Poll drains every pending SDL event and appends the resulting logical
// events to dst.
func (r *Reader) Poll(dst []Event) []Event {
	if len(r.pending) > 0 {
		dst = append(dst, r.pending...)
		r.pending = nil
	}

	var event sdl.Event
	for sdl.PollEvent(&event) {
		switch event.Type() {
		case sdl.EventJoystickAdded:
			dst = r.openJoystick(event.JDevice().Which, dst)

		case sdl.EventJoystickRemoved:
			dst = r.removeJoystick(event.JDevice().Which, dst)

		case sdl.EventJoystickButtonDown, sdl.EventJoystickButtonUp:
			be := event.JButton()
			info, ok := r.active(be.Which)
			if !ok {
				continue
			}
			down := event.Type() == sdl.EventJoystickButtonDown
			if a, ok := info.mapping.TriggerButton(int32(be.Button)); ok {
				var v int16
				if down {
					v = 32767
				}
				dst = append(dst, Event{Kind: EventAxis, Axis: a, Value: v})
				continue
			}
			b, ok := info.mapping.Button(int32(be.Button))
			if !ok {
				r.logger.Debugw("unmapped button", "index", be.Button, "controller", info.name)
				continue
			}
			kind := EventButtonUp
			if down {
				kind = EventButtonDown
			}
			dst = append(dst, Event{Kind: kind, Button: b})

		case sdl.EventJoystickAxisMotion:
			ae := event.JAxis()
			info, ok := r.active(ae.Which)
			if !ok {
				continue
			}
			am, ok := info.mapping.Axis(int32(ae.Axis))
			if !ok {
				continue
			}
			a, v := am.Map(ae.Value)
			dst = append(dst, Event{Kind: EventAxis, Axis: a, Value: v})
		}
	}
	return dst
}

// Close closes all joysticks and shuts SDL down. It is safe to call more
// than once.
func (r *Reader) Close() error {
	if !r.opened {
		return nil
	}
	r.closeAll()
	sdl.Quit()
	r.opened = false
	r.logger.Debug("SDL3 joystick subsystem closed")
	return nil
}

func (r *Reader) active(id sdl.JoystickID) (*joystickInfo, bool) {
	if !r.hasActive || id != r.activeID {
		return nil, false
	}
	info, ok := r.joysticks[id]
	return info, ok
}

func (r *Reader) openJoystick(instanceID sdl.JoystickID, dst []Event) []Event {
	if _, exists := r.joysticks[instanceID]; exists {
		return dst
	}

	js := sdl.OpenJoystick(instanceID)
	if js == nil {
		r.logger.Warnw("failed to open joystick", "id", instanceID, "error", sdl.GetError())
		return dst
	}

	jsID := sdl.GetJoystickID(js)
	vendorID := sdl.GetJoystickVendor(js)
	productID := sdl.GetJoystickProduct(js)
	name := sdl.GetJoystickName(js)
	mapping := GetMapping(vendorID, productID)

	info := &joystickInfo{
		joystick: js,
		mapping:  mapping,
		name:     name,
		id:       jsID,
	}
	r.joysticks[jsID] = info

	r.logger.Infow("joystick connected",
		"name", name,
		"vid", vendorID,
		"pid", productID,
		"mapping", mapping.Name,
		"axes", sdl.GetNumJoystickAxes(js),
		"buttons", sdl.GetNumJoystickButtons(js))

	// Use the first connected joystick as active
	if !r.hasActive {
		dst = r.activate(info, dst)
	}
	return dst
}

func (r *Reader) activate(info *joystickInfo, dst []Event) []Event {
	r.activeID = info.id
	r.hasActive = true
	r.logger.Infow("active joystick set", "name", info.name, "id", info.id)

	r.mu.Lock()
	r.info = Info{Connected: true, Name: info.name, ControllerType: info.mapping.Name}
	r.mu.Unlock()

	numAxes := sdl.GetNumJoystickAxes(info.joystick)
	for _, am := range info.mapping.Axes {
		if am.Index >= numAxes {
			continue
		}
		a, v := am.Map(sdl.GetJoystickAxis(info.joystick, am.Index))
		dst = append(dst, Event{Kind: EventAxis, Axis: a, Value: v})
	}
	return dst
}

func (r *Reader) removeJoystick(instanceID sdl.JoystickID, dst []Event) []Event {
	info, exists := r.joysticks[instanceID]
	if !exists {
		return dst
	}

	r.logger.Infow("joystick disconnected", "name", info.name)
	sdl.CloseJoystick(info.joystick)
	delete(r.joysticks, instanceID)

	if !r.hasActive || r.activeID != instanceID {
		return dst
	}
	r.hasActive = false
	dst = append(dst, Event{Kind: EventDisconnected})

	// Promote the next available joystick
	for _, js := range r.joysticks {
		if sdl.JoystickConnected(js.joystick) {
			return r.activate(js, dst)
		}
	}

	r.mu.Lock()
	r.info = Info{}
	r.mu.Unlock()
	return dst
}

func (r *Reader) closeAll() {
	for id, info := range r.joysticks {
		sdl.CloseJoystick(info.joystick)
		delete(r.joysticks, id)
	}
	r.hasActive = false
	r.mu.Lock()
	r.info = Info{}
	r.mu.Unlock()
}
