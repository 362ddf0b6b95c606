//go:build windows

package shell

import (
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	coinitApartmentThreaded = 0x2
	clsctxLocalServer       = 0x4

	slotRelease      = 2
	slotQueryService = 3

	slotObjectArrayGetCount = 3
	slotObjectArrayGetAt    = 4

	slotMoveWindowToDesktop = 5

	maxSlots = 64
)

var (
	modole32             = windows.NewLazySystemDLL("ole32.dll")
	procCoInitializeEx   = modole32.NewProc("CoInitializeEx")
	procCoUninitialize   = modole32.NewProc("CoUninitialize")
	procCoCreateInstance = modole32.NewProc("CoCreateInstance")
)

// comObject is any COM interface pointer: its first word is the vtable.
type comObject struct {
	vtbl *[maxSlots]uintptr
}

func (o *comObject) method(slot int) uintptr {
	return o.vtbl[slot]
}

func (o *comObject) release() {
	syscall.SyscallN(o.method(slotRelease), uintptr(unsafe.Pointer(o)))
}

func mustGUID(s string) windows.GUID {
	g, err := windows.GUIDFromString(s)
	if err != nil {
		panic("shell: bad guid constant " + s)
	}
	return g
}

func coInitializeEx(flags uint32) HRESULT {
	r0, _, _ := syscall.SyscallN(procCoInitializeEx.Addr(), 0, uintptr(flags))
	return HRESULT(r0)
}

func coUninitialize() {
	syscall.SyscallN(procCoUninitialize.Addr())
}

func coCreateInstance(clsid, iid *windows.GUID, context uint32) (*comObject, error) {
	var obj *comObject
	r0, _, _ := syscall.SyscallN(procCoCreateInstance.Addr(),
		uintptr(unsafe.Pointer(clsid)),
		0,
		uintptr(context),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&obj)))
	if err := check("CoCreateInstance", HRESULT(r0)); err != nil {
		return nil, err
	}
	return obj, nil
}

// queryService calls IServiceProvider::QueryService.
func queryService(sp *comObject, sid, iid *windows.GUID) (*comObject, error) {
	var obj *comObject
	r0, _, _ := syscall.SyscallN(sp.method(slotQueryService),
		uintptr(unsafe.Pointer(sp)),
		uintptr(unsafe.Pointer(sid)),
		uintptr(unsafe.Pointer(iid)),
		uintptr(unsafe.Pointer(&obj)))
	if err := check("QueryService", HRESULT(r0)); err != nil {
		return nil, err
	}
	return obj, nil
}
