//go:build windows

package hotkey

import (
	"context"
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/yourusername/movetodesktop/internal/logging"
)

const (
	wmQuit   = 0x0012
	wmHotkey = 0x0312
)

var (
	moduser32              = windows.NewLazySystemDLL("user32.dll")
	procRegisterHotKey     = moduser32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = moduser32.NewProc("UnregisterHotKey")
	procGetMessageW        = moduser32.NewProc("GetMessageW")
	procPostThreadMessageW = moduser32.NewProc("PostThreadMessageW")
)

type msg struct {
	hwnd    uintptr
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      struct{ x, y int32 }
}

// Listen registers bindings and calls onPress on the calling OS thread for
// every press until ctx is done. The goroutine is locked to its thread for
// the duration, so onPress may use thread-affine state such as a COM
// apartment.
func Listen(ctx context.Context, bindings []Binding, onPress func(Binding)) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	registered := 0
	defer func() {
		for id := 1; id <= registered; id++ {
			syscall.SyscallN(procUnregisterHotKey.Addr(), 0, uintptr(id))
		}
	}()

	for i, b := range bindings {
		id := i + 1
		r0, _, errno := syscall.SyscallN(procRegisterHotKey.Addr(), 0, uintptr(id),
			uintptr(b.Combo.Modifiers|modNoRepeat), uintptr(b.Combo.Key))
		if r0 == 0 {
			return fmt.Errorf("failed to register hotkey %s: %w", b.Combo, errno)
		}
		registered = id
		logging.Debug().
			Str("hotkey", b.Combo.String()).
			Int("desktop", b.Desktop).
			Msg("registered hotkey")
	}

	tid := windows.GetCurrentThreadId()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			syscall.SyscallN(procPostThreadMessageW.Addr(), uintptr(tid), wmQuit, 0, 0)
		case <-done:
		}
	}()

	var m msg
	for {
		r0, _, errno := syscall.SyscallN(procGetMessageW.Addr(), uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(r0) {
		case 0:
			return nil
		case -1:
			return fmt.Errorf("GetMessage: %w", errno)
		}

		if m.message != wmHotkey {
			continue
		}
		id := int(m.wParam)
		if id < 1 || id > len(bindings) {
			continue
		}
		onPress(bindings[id-1])
	}
}
