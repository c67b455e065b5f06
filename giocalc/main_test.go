package main

import (
	"testing"

	"gioui.org/io/key"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fjl/gio-scicalc/internal/calc"
)

func newTestUI(t *testing.T) (*calcUI, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	ui := newUI(nil, calc.New(), zap.New(core), 3)
	return ui, logs
}

func press(ui *calcUI, keys ...string) {
	for _, k := range keys {
		ui.handleKey(key.Event{Name: k, State: key.Press})
	}
}

func TestKeyboardChain(t *testing.T) {
	ui, logs := newTestUI(t)
	press(ui, "1", "2", "*", "3", key.NameReturn)
	if got := ui.calc.Text(); got != "36" {
		t.Fatalf("wrong text %q", got)
	}
	entries := logs.FilterMessage("evaluated").All()
	if len(entries) != 1 || entries[0].ContextMap()["entry"] != "12 × 3 = 36" {
		t.Fatalf("wrong evaluation log: %+v", entries)
	}
}

func TestKeyboardOperators(t *testing.T) {
	ui, logs := newTestUI(t)
	press(ui, "2", "^", "3", "/", "2", "+", "1", "-", "3", key.NameReturn)
	if got := ui.calc.Text(); got != "2" {
		t.Fatalf("wrong text %q", got)
	}
	want := []string{"2 ^ 3 = 8", "8 ÷ 2 = 4", "4 + 1 = 5", "5 − 3 = 2"}
	entries := logs.FilterMessage("evaluated").All()
	if len(entries) != len(want) {
		t.Fatalf("wrong evaluation log: %+v", entries)
	}
	for i, e := range entries {
		if got := e.ContextMap()["entry"]; got != want[i] {
			t.Errorf("entry %d is %q, want %q", i, got, want[i])
		}
	}
}

func TestNewTheme(t *testing.T) {
	if th := newTheme(); th.Shaper == nil {
		t.Fatal("theme has no shaper")
	}
}

func TestKeyboardEditing(t *testing.T) {
	ui, _ := newTestUI(t)
	press(ui, "4", ".", "5", key.NameDeleteBackward)
	if got := ui.calc.Text(); got != "4." {
		t.Fatalf("wrong text after backspace %q", got)
	}
	ui.handleKey(key.Event{Name: "-", Modifiers: key.ModAlt, State: key.Press})
	if got := ui.calc.Text(); got != "-4." {
		t.Fatalf("wrong text after sign flip %q", got)
	}
	press(ui, key.NameEscape)
	if got := ui.calc.Text(); got != "0" {
		t.Fatalf("wrong text after escape %q", got)
	}
	ui.handleKey(key.Event{Name: "7", State: key.Release})
	if got := ui.calc.Text(); got != "0" {
		t.Fatalf("key release must be ignored, got %q", got)
	}
}

func TestFaultIsLogged(t *testing.T) {
	ui, logs := newTestUI(t)
	press(ui, "5", "/", "0", "=")
	if !ui.calc.Faulted() {
		t.Fatalf("expected fault, got %q", ui.calc.Text())
	}
	if logs.FilterMessage("calculation fault").Len() != 1 {
		t.Fatalf("fault not logged: %+v", logs.All())
	}
}

func TestButtons(t *testing.T) {
	ui, _ := newTestUI(t)
	ui.buttons[3][0].action() // 1
	ui.buttons[4][0].action() // 0
	ui.funcs[0][4].action()   // xʸ
	if !ui.funcs[0][4].active() {
		t.Fatal("power button should be highlighted")
	}
	ui.buttons[1][0].action() // 7
	if ui.funcs[0][4].active() {
		t.Fatal("highlight should end once an operand is typed")
	}
	ui.buttons[4][3].action() // =
	if got := ui.calc.Text(); got != "10000000" {
		t.Fatalf("wrong text %q", got)
	}

	angle := ui.funcs[0][0]
	if angle.text() != "DEG" {
		t.Fatalf("wrong angle label %q", angle.text())
	}
	angle.action()
	if angle.text() != "RAD" {
		t.Fatalf("wrong angle label %q", angle.text())
	}
}

func TestPasteRejected(t *testing.T) {
	ui, logs := newTestUI(t)
	ui.paste("hello")
	if logs.FilterMessage("paste rejected").Len() != 1 {
		t.Fatal("rejected paste not logged")
	}
	ui.paste("2.5")
	if got := ui.calc.Text(); got != "2.5" {
		t.Fatalf("wrong text %q", got)
	}
}

func TestLastLines(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	if got := lastLines(lines, 2); len(got) != 2 || got[0] != "c" {
		t.Fatalf("wrong lines %v", got)
	}
	if got := lastLines(lines, 0); got != nil {
		t.Fatalf("expected no lines, got %v", got)
	}
	if got := lastLines(lines[:1], 3); len(got) != 1 {
		t.Fatalf("wrong lines %v", got)
	}
}
