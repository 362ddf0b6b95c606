//go:build windows

package window

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	gaRootOwner  = 3
	wmSysCommand = 0x0112
)

var (
	moduser32               = windows.NewLazySystemDLL("user32.dll")
	procGetAncestor         = moduser32.NewProc("GetAncestor")
	procGetForegroundWindow = moduser32.NewProc("GetForegroundWindow")
	procGetWindowTextW      = moduser32.NewProc("GetWindowTextW")
	procPostMessageW        = moduser32.NewProc("PostMessageW")
	procIsWindow            = moduser32.NewProc("IsWindow")
)

func systemRootOwner(h Handle) Handle {
	r0, _, _ := syscall.SyscallN(procGetAncestor.Addr(), uintptr(h), gaRootOwner)
	return Handle(r0)
}

// Foreground returns the window the user is working in.
func Foreground() (Handle, error) {
	r0, _, _ := syscall.SyscallN(procGetForegroundWindow.Addr())
	if r0 == 0 {
		return 0, fmt.Errorf("no foreground window")
	}
	return Handle(r0), nil
}

// IsWindow reports whether h identifies an existing window.
func IsWindow(h Handle) bool {
	r0, _, _ := syscall.SyscallN(procIsWindow.Addr(), uintptr(h))
	return r0 != 0
}

// Title returns the window caption, empty if it has none.
func Title(h Handle) string {
	buf := make([]uint16, 256)
	r0, _, _ := syscall.SyscallN(procGetWindowTextW.Addr(), uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	return windows.UTF16ToString(buf[:r0])
}

// PostSysCommand posts WM_SYSCOMMAND with param to h. An installed hook in
// the owning process intercepts it.
func PostSysCommand(h Handle, param uint32) error {
	r0, _, errno := syscall.SyscallN(procPostMessageW.Addr(), uintptr(h), wmSysCommand, uintptr(param), 0)
	if r0 == 0 {
		return fmt.Errorf("PostMessage(%s): %w", h, errno)
	}
	return nil
}
