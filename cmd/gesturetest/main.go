// Command gesturetest replays a scripted gesture sequence against a
// headless viewport host and prints the state after every step. Useful for
// checking transform math against hand-computed values.
//
// Script format, one event per line:
//
//	wheel <x> <y> <dx> <dy> [pan]
//	pinch <x1> <y1> <x2> <y2>
//	release
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"inkboard/internal/gesture"
	"inkboard/internal/viewport"
)

// stubHost is a minimal in-memory gesture host.
type stubHost struct {
	vp viewport.State
}

func (h *stubHost) Viewport() (viewport.State, bool) { return h.vp, true }
func (h *stubHost) SetViewport(vp viewport.State)    { h.vp = vp }

func main() {
	script := flag.String("script", "", "Path to gesture script (default: stdin)")
	flag.Parse()

	in := os.Stdin
	if *script != "" {
		f, err := os.Open(*script)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		in = f
	}

	host := &stubHost{vp: viewport.Default()}
	wheel := gesture.NewWheel(host)
	touch := gesture.NewTouch(host)
	touch.OnTwoFingerTap(func(x, y float64) {
		fmt.Printf("  two-finger tap at %.1f, %.1f\n", x, y)
	})

	fmt.Printf("start: %+v\n", host.vp)

	scanner := bufio.NewScanner(in)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		switch fields[0] {
		case "wheel":
			var x, y, dx, dy float64
			if len(fields) < 5 {
				fmt.Fprintf(os.Stderr, "line %d: wheel needs 4 args\n", line)
				continue
			}
			fmt.Sscanf(fields[1], "%f", &x)
			fmt.Sscanf(fields[2], "%f", &y)
			fmt.Sscanf(fields[3], "%f", &dx)
			fmt.Sscanf(fields[4], "%f", &dy)
			wheel.Handle(gesture.WheelEvent{
				ClientX: x, ClientY: y, DeltaX: dx, DeltaY: dy,
				ModifierPan: len(fields) > 5 && fields[5] == "pan",
				OnSurface:   true,
			})

		case "pinch":
			var x1, y1, x2, y2 float64
			if len(fields) < 5 {
				fmt.Fprintf(os.Stderr, "line %d: pinch needs 4 args\n", line)
				continue
			}
			fmt.Sscanf(fields[1], "%f", &x1)
			fmt.Sscanf(fields[2], "%f", &y1)
			fmt.Sscanf(fields[3], "%f", &x2)
			fmt.Sscanf(fields[4], "%f", &y2)
			touch.Update([]gesture.TouchPoint{
				{ID: 1, X: x1, Y: y1},
				{ID: 2, X: x2, Y: y2},
			})

		case "release":
			touch.Update(nil)

		default:
			fmt.Fprintf(os.Stderr, "line %d: unknown event %q\n", line, fields[0])
			continue
		}

		fmt.Printf("%5d: scroll=%.2f,%.2f zoom=%.4f\n",
			line, host.vp.ScrollX, host.vp.ScrollY, host.vp.Zoom)
	}
}
