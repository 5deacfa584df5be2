//go:build rp2040

package main

import (
	"context"
	"image/color"
	"machine"
	"time"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"
	"tinygo.org/x/drivers/ws2812"

	"buttonkit-go/button"
	"buttonkit-go/provider"
	"buttonkit-go/types"
)

// ---------- Configuration ----------

const (
	buttonPin = 15
	neoPin    = machine.GPIO16

	uartBaud = 115200
	uartTX   = 0
	uartRX   = 1

	flashTime = 150 * time.Millisecond
)

var colours = map[types.Gesture]color.RGBA{
	types.SinglePress:   {G: 0x20},
	types.DoublePress:   {B: 0x20},
	types.LongPress:     {R: 0x20, G: 0x10},
	types.VeryLongPress: {R: 0x20},
	types.HoldPress:     {R: 0x20, B: 0x20},
}

// ---------- Minimal output to console + UART0 ----------

type out struct{ u *uartx.UART }

func (o out) line(s string) {
	println(s)
	_, _ = o.u.Write([]byte(s + "\r\n"))
}

func main() {
	// Allow USB CDC to enumerate before we print.
	time.Sleep(2 * time.Second)
	println("boot")

	u := uartx.UART0
	_ = u.Configure(uartx.UARTConfig{
		BaudRate: uartBaud,
		TX:       machine.Pin(uartTX),
		RX:       machine.Pin(uartRX),
	})
	o := out{u: u}

	neoPin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	led := ws2812.NewWS2812(neoPin)

	m := button.New(button.DefaultConfig())
	m.Start(context.Background())

	if err := m.Create(provider.RP2Pin(buttonPin)); err != nil {
		o.line("FAIL: create: " + err.Error())
		return
	}
	for _, g := range []types.Gesture{
		types.SinglePress, types.DoublePress, types.LongPress,
		types.VeryLongPress, types.HoldPress,
	} {
		name := g.String()
		_ = m.RegisterCallback(buttonPin, g, func(pin int) {
			println("cb:", name, "pin", pin)
		})
	}
	o.line("boardtest: press the button")

	for ev := range m.Events() {
		o.line("gesture: " + ev.Gesture.String())
		c := colours[ev.Gesture]
		_ = led.WriteColors([]color.RGBA{c})
		time.Sleep(flashTime)
		_ = led.WriteColors([]color.RGBA{{}})
	}
}
