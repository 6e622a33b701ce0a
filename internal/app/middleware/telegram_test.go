package middleware

import (
	"errors"
	"testing"

	tele "gopkg.in/telebot.v4"
)

func TestRecover(t *testing.T) {
	var caught error
	mw := Recover(func(err error, _ tele.Context) { caught = err })

	handler := mw(func(tele.Context) error { panic("boom") })
	err := handler(nil)

	if err == nil || err.Error() != "boom" {
		t.Errorf("Ожидалась ошибка boom, получено %v", err)
	}
	if caught == nil || caught.Error() != "boom" {
		t.Errorf("onError не вызван: %v", caught)
	}
}

func TestRecover_PassesThrough(t *testing.T) {
	want := errors.New("handler failed")
	handler := Recover()(func(tele.Context) error { return want })
	if err := handler(nil); !errors.Is(err, want) {
		t.Errorf("Ожидалась исходная ошибка, получено %v", err)
	}
}
