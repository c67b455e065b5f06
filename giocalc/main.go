package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"gioui.org/app"
	"gioui.org/font/gofont"
	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"go.uber.org/zap"

	"github.com/fjl/gio-scicalc/internal/calc"
	"github.com/fjl/gio-scicalc/internal/config"
	"github.com/fjl/gio-scicalc/internal/logging"
)

var (
	digitColor       = color.NRGBA{90, 90, 90, 255}
	specialColor     = color.NRGBA{70, 70, 70, 255}
	funcColor        = color.NRGBA{60, 70, 85, 255}
	opColor          = color.NRGBA{122, 90, 90, 255}
	activeOpColor    = color.NRGBA{160, 90, 90, 255}
	backgroundColor  = color.NRGBA{50, 50, 50, 255}
	resultColor      = color.NRGBA{255, 255, 255, 255}
	historyColor     = color.NRGBA{150, 150, 150, 255}
	resultBackground = color.NRGBA{35, 35, 35, 255}

	designWidth  = unit.Dp(320)
	designHeight = unit.Dp(560)
	controlInset = unit.Dp(6)
	cornerRadius = unit.Dp(3.5)
)

// calcUI is the user interface of the calculator.
type calcUI struct {
	calc         *calc.Calculator
	log          *zap.Logger
	theme        *material.Theme
	historyLines int
	funcs        [4][5]*button
	buttons      [5][4]*button

	cornerRadius int
	gridSpacing  int
}

func newUI(theme *material.Theme, c *calc.Calculator, log *zap.Logger, historyLines int) *calcUI {
	ui := &calcUI{calc: c, log: log, theme: theme, historyLines: historyLines}
	reset := ui.special("AC", ui.calc.ClearAll)
	sign := ui.special("±", ui.calc.ToggleSign)
	percent := ui.special("%", ui.calc.InputPercent)
	decimal := ui.special(".", ui.calc.InputDot)
	angle := ui.special("", ui.calc.ToggleAngleMode)
	angle.label = func() string { return ui.calc.AngleMode().String() }
	angle.color = funcColor

	ui.funcs = [4][5]*button{
		{angle, ui.fn("sin", calc.FuncSin), ui.fn("cos", calc.FuncCos), ui.fn("tan", calc.FuncTan), ui.op("xʸ", calc.OpPow)},
		{ui.fn("1/x", calc.FuncRecip), ui.fn("asin", calc.FuncAsin), ui.fn("acos", calc.FuncAcos), ui.fn("atan", calc.FuncAtan), ui.fn("√", calc.FuncSqrt)},
		{ui.fn("x²", calc.FuncSquare), ui.fn("x³", calc.FuncCube), ui.fn("ln", calc.FuncLn), ui.fn("log", calc.FuncLog), ui.fn("n!", calc.FuncFact)},
		{ui.fn("|x|", calc.FuncAbs), ui.fn("10ˣ", calc.FuncExp10), ui.fn("eˣ", calc.FuncExp), ui.fn("π", calc.FuncPi), ui.fn("e", calc.FuncE)},
	}
	ui.buttons = [5][4]*button{
		{reset, sign, percent, ui.op("÷", calc.OpDiv)},
		{ui.digit('7'), ui.digit('8'), ui.digit('9'), ui.op("×", calc.OpMul)},
		{ui.digit('4'), ui.digit('5'), ui.digit('6'), ui.op("−", calc.OpSub)},
		{ui.digit('1'), ui.digit('2'), ui.digit('3'), ui.op("+", calc.OpAdd)},
		{ui.digit('0'), nil, decimal, ui.op("=", calc.OpEq)},
	}
	return ui
}

// digit creates a digit button.
func (ui *calcUI) digit(d rune) *button {
	b := newButton(string(d), digitColor)
	b.action = func() { ui.inputDigit(d) }
	return b
}

// op creates an operation button.
func (ui *calcUI) op(label string, op calc.Operator) *button {
	b := newButton(label, opColor)
	b.action = func() { ui.run(op) }
	if op != calc.OpEq {
		b.active = func() bool {
			st := ui.calc.State()
			return st.Op == op && st.Waiting
		}
	}
	return b
}

// fn creates a function button.
func (ui *calcUI) fn(label string, fn calc.Func) *button {
	b := newButton(label, funcColor)
	b.action = func() { ui.apply(fn) }
	return b
}

// special creates a special operation button.
func (ui *calcUI) special(name string, fn func()) *button {
	b := newButton(name, specialColor)
	b.action = fn
	return b
}

// inputDigit forwards a digit to the calculator.
func (ui *calcUI) inputDigit(d rune) {
	if err := ui.calc.InputDigit(d); err != nil {
		ui.log.Info("digit rejected", zap.String("digit", string(d)), zap.Error(err))
	}
}

// run applies a binary operation and logs the evaluations it produced.
func (ui *calcUI) run(op calc.Operator) {
	n := ui.calc.HistoryLen()
	ui.calc.PerformOperation(op)
	if ui.calc.HistoryLen() > n {
		hist := ui.calc.State().History
		ui.log.Debug("evaluated", zap.String("entry", hist[len(hist)-1]))
	}
	ui.logFault("operation", op.String())
}

// apply applies a unary function.
func (ui *calcUI) apply(fn calc.Func) {
	ui.calc.ApplyFunc(fn)
	ui.logFault("function", fn.String())
}

func (ui *calcUI) logFault(kind, name string) {
	if ui.calc.Faulted() {
		ui.log.Info("calculation fault", zap.String(kind, name), zap.String("angle", ui.calc.AngleMode().String()))
	}
}

// paste reads a number from the clipboard.
func (ui *calcUI) paste(text string) {
	if err := ui.calc.Paste(text); err != nil {
		ui.log.Warn("paste rejected", zap.Error(err))
	}
}

// Layout draws the UI.
func (ui *calcUI) Layout(gtx layout.Context) layout.Dimensions {
	// Adapt design for screen size.
	scaleFactor := float32(gtx.Constraints.Max.X) / float32(gtx.Dp(designWidth))
	ui.cornerRadius = gtx.Dp(cornerRadius * unit.Dp(scaleFactor))
	ui.gridSpacing = gtx.Dp(controlInset * unit.Dp(scaleFactor))

	// Handle key events.
	ui.layoutInput(gtx)

	inset := layout.UniformInset(controlInset)
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		flex := layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceStart}
		return flex.Layout(gtx,
			layout.Flexed(22, func(gtx layout.Context) layout.Dimensions {
				return inset.Layout(gtx, ui.layoutResult)
			}),
			layout.Flexed(30, func(gtx layout.Context) layout.Dimensions {
				return inset.Layout(gtx, ui.layoutFuncs)
			}),
			layout.Flexed(48, func(gtx layout.Context) layout.Dimensions {
				return inset.Layout(gtx, ui.layoutButtons)
			}),
		)
	})
}

func (ui *calcUI) layoutResult(gtx layout.Context) layout.Dimensions {
	rect := image.Rectangle{Max: gtx.Constraints.Max}
	rr := clip.UniformRRect(rect, ui.cornerRadius)
	paint.FillShape(gtx.Ops, resultBackground, rr.Op(gtx.Ops))

	inset := layout.UniformInset(controlInset)
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		flex := layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceStart}
		return flex.Layout(gtx,
			layout.Flexed(40, ui.layoutHistory),
			layout.Flexed(60, ui.layoutResultText),
		)
	})
}

// layoutHistory draws the latest evaluations and the pending operation.
func (ui *calcUI) layoutHistory(gtx layout.Context) layout.Dimensions {
	lines := lastLines(ui.calc.State().History, ui.historyLines)
	status := ui.calc.AngleMode().String()
	if p := ui.calc.Pending(); p != "" {
		status = p + "    " + status
	}
	lines = append(lines, status)

	list := make([]layout.FlexChild, len(lines))
	for i, line := range lines {
		line := line
		list[i] = layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
			fontSizePx := float32(gtx.Constraints.Max.Y) / 1.3
			l := material.Label(ui.theme, unit.Sp(fontSizePx/gtx.Metric.PxPerSp), line)
			l.Color = historyColor
			l.Alignment = text.End
			return shrinkToFit(gtx, l.Layout)
		})
	}
	return layout.Flex{Axis: layout.Vertical}.Layout(gtx, list...)
}

func (ui *calcUI) layoutResultText(gtx layout.Context) layout.Dimensions {
	// Scale font based on height.
	fontSizePx := float32(gtx.Constraints.Max.Y) / 1.1
	fontSizeSp := unit.Sp(fontSizePx / gtx.Metric.PxPerSp)

	l := material.Label(ui.theme, fontSizeSp, ui.calc.Text())
	l.Color = resultColor
	l.Alignment = text.End
	return shrinkToFit(gtx, l.Layout)
}

func (ui *calcUI) layoutFuncs(gtx layout.Context) layout.Dimensions {
	g := grid{
		rows:    len(ui.funcs),
		cols:    len(ui.funcs[0]),
		spacing: ui.gridSpacing,
	}
	return g.layout(gtx, func(row, col int, gtx layout.Context) layout.Dimensions {
		return ui.layoutButton(gtx, ui.funcs[row][col])
	})
}

func (ui *calcUI) layoutButtons(gtx layout.Context) layout.Dimensions {
	g := grid{
		rows:    len(ui.buttons),
		cols:    len(ui.buttons[0]),
		spacing: ui.gridSpacing,
	}
	return g.layout(gtx, func(row, col int, gtx layout.Context) layout.Dimensions {
		if b := ui.buttons[row][col]; b != nil {
			return ui.layoutButton(gtx, b)
		}
		return layout.Dimensions{}
	})
}

func (ui *calcUI) layoutButton(gtx layout.Context, b *button) layout.Dimensions {
	if b.clicker.Clicked(gtx) && b.action != nil {
		b.action()
	}

	return b.clicker.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		textSizePx := float32(gtx.Constraints.Max.Y) / 2.2
		textSizeSp := unit.Sp(textSizePx / gtx.Metric.PxPerSp)

		style := material.Button(ui.theme, &b.clicker, b.text())
		style.Background = b.color
		style.Inset = layout.Inset{}
		style.TextSize = textSizeSp
		style.CornerRadius = unit.Dp(float32(ui.cornerRadius) / gtx.Metric.PxPerDp)
		if b.active != nil && b.active() {
			style.Background = activeOpColor
		}
		return style.Layout(gtx)
	})
}

// layoutInput registers the global key handler.
func (ui *calcUI) layoutInput(gtx layout.Context) {
	// Register handler for key events.
	input := key.InputOp{
		Tag:  ui,
		Hint: key.HintNumeric,
		Keys: "Short-[C,V]|(Shift)-[0,1,2,3,4,5,6,7,8,9,.,+,*,/,^,%,=,⌤,⏎,⌫,⌦,⎋]|(Alt)-(Shift)-[-]",
	}
	input.Add(gtx.Ops)

	// Request keyboard focus. This is required to make the Return key work.
	key.FocusOp{Tag: ui}.Add(gtx.Ops)

	for _, ev := range gtx.Queue.Events(ui) {
		switch ev := ev.(type) {
		case key.Event:
			switch {
			case isCopy(ev):
				op := clipboard.WriteOp{Text: ui.calc.Text()}
				op.Add(gtx.Ops)
			case isPaste(ev):
				op := clipboard.ReadOp{Tag: ui}
				op.Add(gtx.Ops)
			default:
				ui.handleKey(ev)
			}

		case clipboard.Event:
			ui.paste(ev.Text)
		}
	}
}

func isCopy(e key.Event) bool {
	return e.Name == "C" && e.Modifiers.Contain(key.ModShortcut)
}

func isPaste(e key.Event) bool {
	return e.Name == "V" && e.Modifiers.Contain(key.ModShortcut)
}

// handleKey handles a key event.
func (ui *calcUI) handleKey(e key.Event) {
	if e.State == key.Release {
		return
	}

	switch e.Name {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		ui.inputDigit(rune(e.Name[0]))
	case ".":
		ui.calc.InputDot()
	case "-":
		if e.Modifiers.Contain(key.ModAlt) {
			ui.calc.ToggleSign()
		} else {
			ui.run(calc.OpSub)
		}
	case "+":
		ui.run(calc.OpAdd)
	case "*":
		ui.run(calc.OpMul)
	case "/":
		ui.run(calc.OpDiv)
	case "^":
		ui.run(calc.OpPow)
	case "%":
		ui.calc.InputPercent()
	case "=", key.NameEnter, key.NameReturn:
		ui.run(calc.OpEq)
	case key.NameDeleteBackward, key.NameDeleteForward:
		ui.calc.Backspace()
	case key.NameEscape:
		ui.calc.ClearAll()
	}
}

// button is a clickable button.
type button struct {
	label  func() string
	action func()
	active func() bool

	color   color.NRGBA
	clicker widget.Clickable
}

func newButton(text string, color color.NRGBA) *button {
	return &button{label: func() string { return text }, color: color}
}

func (b *button) text() string {
	return b.label()
}

// lastLines returns at most n trailing entries of lines.
func lastLines(lines []string, n int) []string {
	if n <= 0 {
		return nil
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Info("starting",
		zap.String("angle", cfg.AngleMode),
		zap.Int("max_digits", cfg.MaxDigits),
	)

	var (
		size     = app.Size(designWidth, designHeight)
		statusBg = app.StatusColor(backgroundColor)
		sysBg    = app.NavigationColor(backgroundColor)
		title    = app.Title("GioCalc")
		portrait = app.PortraitOrientation.Option()
	)
	go func() {
		w := app.NewWindow(statusBg, sysBg, size, title, portrait)
		w.Option(app.MinSize(designWidth, designHeight))

		c := calc.New(cfg.CalcOptions()...)
		if err := loop(w, newUI(newTheme(), c, logger, cfg.HistoryLines)); err != nil {
			logger.Error("window closed with error", zap.Error(err))
			logging.Sync(logger)
			os.Exit(1)
		}
		logger.Info("exiting", zap.Int("evaluations", c.HistoryLen()))
		logging.Sync(logger)
		os.Exit(0)
	}()
	app.Main()
}

// loop is the main loop of the app.
func loop(w *app.Window, ui *calcUI) error {
	var ops op.Ops
	for {
		switch e := w.NextEvent().(type) {
		case system.DestroyEvent:
			return e.Err
		case system.FrameEvent:
			gtx := layout.NewContext(&ops, e)
			paint.Fill(gtx.Ops, backgroundColor)
			ui.Layout(gtx)
			e.Frame(gtx.Ops)
		}
	}
}

// newTheme creates the material theme with the Go fonts.
func newTheme() *material.Theme {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()))
	return th
}
