package screen

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRouter_InitialScreen(t *testing.T) {
	r := NewRouter(Splash, nil)

	assert.Equal(t, Splash, r.Current())
	assert.Equal(t, []Name{Splash}, r.History())
}

func TestRouter_Navigate(t *testing.T) {
	r := NewRouter(Login, nil)

	r.Navigate(List)
	r.Navigate(Cart)

	assert.Equal(t, Cart, r.Current())
	assert.Equal(t, []Name{Login, List, Cart}, r.History())
}

func TestRouter_Navigate_ExistingScreenPopsBack(t *testing.T) {
	r := NewRouter(Login, nil)
	r.Navigate(Register)

	r.Navigate(Login)

	assert.Equal(t, []Name{Login}, r.History())
}

func TestRouter_Back(t *testing.T) {
	r := NewRouter(Login, nil)
	r.Navigate(List)
	r.Navigate(Cart)

	assert.Equal(t, List, r.Back())
	assert.Equal(t, Login, r.Back())
	assert.Equal(t, Login, r.Back(), "root is never popped")
}

func TestRouter_NavigateAfter_Fires(t *testing.T) {
	r := NewRouter(Login, nil)

	r.NavigateAfter(10*time.Millisecond, List)
	assert.True(t, r.Pending())

	assert.Eventually(t, func() bool { return r.Current() == List }, time.Second, 5*time.Millisecond)
	assert.False(t, r.Pending())
}

func TestRouter_NavigateAfter_Cancel(t *testing.T) {
	r := NewRouter(Login, nil)

	cancel := r.NavigateAfter(20*time.Millisecond, List)
	cancel()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, Login, r.Current())
	assert.False(t, r.Pending())
}

func TestRouter_NavigateAfter_SupersededByNavigate(t *testing.T) {
	r := NewRouter(Login, nil)

	r.NavigateAfter(20*time.Millisecond, List)
	r.Navigate(Register)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, Register, r.Current())
}

func TestRouter_NavigateAfter_StaleCancelIsHarmless(t *testing.T) {
	r := NewRouter(Splash, nil)

	first := r.NavigateAfter(time.Hour, Login)
	r.NavigateAfter(10*time.Millisecond, List)
	first()

	assert.Eventually(t, func() bool { return r.Current() == List }, time.Second, 5*time.Millisecond)
}

func TestRouter_Close(t *testing.T) {
	r := NewRouter(Login, nil)
	r.NavigateAfter(10*time.Millisecond, List)

	r.Close()
	r.Navigate(Cart)

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, Login, r.Current())
	assert.False(t, r.Pending())
}

func TestValid(t *testing.T) {
	for _, name := range []Name{Splash, Login, Register, List, Cart} {
		assert.True(t, Valid(name), name)
	}
	assert.False(t, Valid("Checkout"))
	assert.False(t, Valid(""))
}
