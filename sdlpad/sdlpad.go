// This file is part of PadPipe.
//
// PadPipe is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// PadPipe is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with PadPipe.  If not, see <https://www.gnu.org/licenses/>.

// Package sdlpad opens the physical controller through SDL and services
// its event queue, translating SDL events into userinput events. All SDL
// specifics are contained in this package.
package sdlpad

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/padpipe/padpipe/curated"
	"github.com/padpipe/padpipe/hardware/controller/coords"
	"github.com/padpipe/padpipe/hardware/controller/event"
	"github.com/padpipe/padpipe/hardware/controller/motion"
	"github.com/padpipe/padpipe/logger"
	"github.com/padpipe/padpipe/userinput"
)

// how long to block in the event loop before checking for ending
// conditions. 10ms gives a 100Hz floor on responsiveness.
const serviceTimeout = 10

// Pad is the connection between the SDL controller device and the
// classification pipeline.
type Pad struct {
	handle userinput.HandleInput

	ctrl  *sdl.GameController
	which sdl.JoystickID

	// an optional tap on the raw userinput stream, used for recording
	tap func(userinput.Event)

	quit bool
}

// NewPad is the preferred method of initialisation for the Pad type. The
// nth recognised game controller is opened and its gyroscope enabled if
// the hardware has one.
func NewPad(handle userinput.HandleInput, nth int) (*Pad, error) {
	if err := sdl.Init(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER | sdl.INIT_SENSOR | sdl.INIT_EVENTS); err != nil {
		return nil, curated.Errorf("sdlpad: %v", err)
	}

	pad := &Pad{handle: handle}

	ct := 0
	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue // for loop
		}
		if ct == nth {
			pad.ctrl = sdl.GameControllerOpen(i)
			break // for loop
		}
		ct++
	}
	if pad.ctrl == nil {
		sdl.Quit()
		return nil, curated.Errorf("sdlpad: game controller %d not found", nth)
	}
	pad.which = pad.ctrl.Joystick().InstanceID()

	if err := pad.ctrl.SetSensorEnabled(sdl.SENSOR_GYRO, true); err != nil {
		// not every pad has a gyroscope
		logger.Logf(logger.Allow, "sdlpad", "gyroscope unavailable: %v", err)
	}

	logger.Logf(logger.Allow, "sdlpad", "opened %s", pad.ctrl.Name())

	return pad, nil
}

// Tap attaches a function that sees every raw userinput event before it
// is forwarded to the pipeline.
func (pad *Pad) Tap(tap func(userinput.Event)) {
	pad.tap = tap
}

// Quit ends the Service loop. Safe to call from any goroutine.
func (pad *Pad) Quit() {
	sdl.PushEvent(&sdl.QuitEvent{Type: sdl.QUIT})
}

// Destroy closes the controller and shuts SDL down.
func (pad *Pad) Destroy() {
	if pad.ctrl != nil {
		pad.ctrl.Close()
		pad.ctrl = nil
	}
	sdl.Quit()
}

// Service runs the SDL event loop until the user quits or the device
// disconnects. It must be called from the main thread on platforms where
// SDL requires it.
func (pad *Pad) Service() {
	for !pad.quit {
		sdlEv := sdl.WaitEventTimeout(serviceTimeout)
		if sdlEv == nil {
			continue
		}
		ev := pad.translate(sdlEv)
		if ev == nil {
			continue
		}
		pad.forward(ev)
	}
}

func (pad *Pad) forward(ev userinput.Event) {
	if pad.tap != nil {
		pad.tap(ev)
	}
	if userinput.HandleUserInput(ev, pad.handle) {
		pad.quit = true
	}
	if _, ok := ev.(userinput.EventDisconnect); ok {
		pad.quit = true
	}
}

// translate converts one SDL event into a userinput event. Returns nil
// for SDL events the pipeline has no interest in.
func (pad *Pad) translate(sdlEv sdl.Event) userinput.Event {
	switch sdlEv := sdlEv.(type) {
	case *sdl.QuitEvent:
		return userinput.EventQuit{}

	case *sdl.ControllerTouchpadEvent:
		return pad.touchpad(sdlEv)

	case *sdl.ControllerButtonEvent:
		return pad.button(sdlEv)

	case *sdl.ControllerSensorEvent:
		if sdlEv.Sensor != int32(sdl.SENSOR_GYRO) {
			return nil
		}
		return userinput.EventGyro{
			Velocity: motion.Velocity{
				Pitch: float64(sdlEv.Data[0]),
				Yaw:   float64(sdlEv.Data[1]),
			},
		}

	case *sdl.ControllerDeviceEvent:
		if sdlEv.GetType() == sdl.CONTROLLERDEVICEREMOVED && sdlEv.Which == pad.which {
			logger.Log(logger.Allow, "sdlpad", "controller removed")
			return userinput.EventDisconnect{}
		}
	}

	return nil
}

func (pad *Pad) touchpad(sdlEv *sdl.ControllerTouchpadEvent) userinput.Event {
	var slot userinput.TouchSlot
	switch sdlEv.Finger {
	case 0:
		slot = userinput.TouchPrimary
	case 1:
		slot = userinput.TouchSecondary
	default:
		return nil
	}

	// a lifted finger reports the deadband position
	if sdlEv.GetType() == sdl.CONTROLLERTOUCHPADUP {
		return userinput.EventTouch{Slot: slot}
	}

	// SDL touchpad coordinates are in the range [0, 1]
	return userinput.EventTouch{
		Slot: slot,
		Pos: coords.Point{
			X: float64(sdlEv.X)*2 - 1,
			Y: float64(sdlEv.Y)*2 - 1,
		},
	}
}

var buttonTable = map[uint8]event.Button{
	uint8(sdl.CONTROLLER_BUTTON_A):             event.ButtonA,
	uint8(sdl.CONTROLLER_BUTTON_B):             event.ButtonB,
	uint8(sdl.CONTROLLER_BUTTON_X):             event.ButtonX,
	uint8(sdl.CONTROLLER_BUTTON_Y):             event.ButtonY,
	uint8(sdl.CONTROLLER_BUTTON_LEFTSHOULDER):  event.LeftBumper,
	uint8(sdl.CONTROLLER_BUTTON_RIGHTSHOULDER): event.RightBumper,
	uint8(sdl.CONTROLLER_BUTTON_BACK):          event.Back,
	uint8(sdl.CONTROLLER_BUTTON_START):         event.Start,
	uint8(sdl.CONTROLLER_BUTTON_GUIDE):         event.Guide,
	uint8(sdl.CONTROLLER_BUTTON_LEFTSTICK):     event.LeftStick,
	uint8(sdl.CONTROLLER_BUTTON_RIGHTSTICK):    event.RightStick,
	uint8(sdl.CONTROLLER_BUTTON_DPAD_UP):       event.DPadUp,
	uint8(sdl.CONTROLLER_BUTTON_DPAD_DOWN):     event.DPadDown,
	uint8(sdl.CONTROLLER_BUTTON_DPAD_LEFT):     event.DPadLeft,
	uint8(sdl.CONTROLLER_BUTTON_DPAD_RIGHT):    event.DPadRight,
	uint8(sdl.CONTROLLER_BUTTON_TOUCHPAD):      event.TouchClick,
}

func (pad *Pad) button(sdlEv *sdl.ControllerButtonEvent) userinput.Event {
	b, ok := buttonTable[sdlEv.Button]
	if !ok {
		return nil
	}

	// the physical touchpad click is routed as a click edge rather than
	// a button edge
	if b == event.TouchClick {
		return userinput.EventTouchClick{Down: sdlEv.State == sdl.PRESSED}
	}

	return userinput.EventButton{
		Button: b,
		Down:   sdlEv.State == sdl.PRESSED,
	}
}
