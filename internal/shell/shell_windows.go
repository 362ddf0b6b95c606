//go:build windows

package shell

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/yourusername/movetodesktop/internal/desktop"
	"github.com/yourusername/movetodesktop/internal/logging"
	"github.com/yourusername/movetodesktop/internal/session"
	"github.com/yourusername/movetodesktop/internal/window"
)

// Initialize joins a single-threaded apartment. A thread already in a
// multi-threaded apartment is usable as is and is left alone on teardown.
func (p *Platform) Initialize() error {
	hr := coInitializeEx(coinitApartmentThreaded)
	switch hr {
	case sOK, sFalse:
		p.balance = true
		return nil
	case rpcEChangedMode:
		p.balance = false
		logging.Debug().Msg("thread already in another apartment")
		return nil
	}
	return check("CoInitializeEx", hr)
}

func (p *Platform) Uninitialize() {
	if p.balance {
		coUninitialize()
		p.balance = false
	}
}

// CreateBroker activates the immersive shell's service provider.
func (p *Platform) CreateBroker() (session.Broker, error) {
	clsid := mustGUID(clsidImmersiveShell)
	iid := mustGUID(iidServiceProvider)

	sp, err := coCreateInstance(&clsid, &iid, clsctxLocalServer)
	if err != nil {
		return nil, err
	}
	return &broker{sp: sp, variants: p.variants}, nil
}

type broker struct {
	sp       *comObject
	variants []Variant
}

func (b *broker) QueryManager() (session.Manager, error) {
	iid := mustGUID(iidVirtualDesktopManager)
	obj, err := queryService(b.sp, &iid, &iid)
	if err != nil {
		return nil, fmt.Errorf("IVirtualDesktopManager: %w", err)
	}
	return &manager{obj: obj}, nil
}

// QueryEnumerator probes the known layouts of the internal manager and
// binds the first one the shell answers for.
func (b *broker) QueryEnumerator() (session.Enumerator, error) {
	if len(b.variants) == 0 {
		return nil, errors.New("internal desktop manager disabled")
	}

	sid := mustGUID(sidVirtualDesktopInternal)
	var errs []error
	for _, v := range b.variants {
		iid := mustGUID(v.InternalIID)
		obj, err := queryService(b.sp, &sid, &iid)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", v.Name, err))
			continue
		}
		logging.Debug().Str("variant", v.Name).Msg("bound internal desktop manager")
		return &enumerator{obj: obj, variant: v}, nil
	}
	return nil, fmt.Errorf("no known IVirtualDesktopManagerInternal: %w", errors.Join(errs...))
}

func (b *broker) Release() {
	b.sp.release()
}

// manager is IVirtualDesktopManager.
type manager struct {
	obj *comObject
}

func (m *manager) MoveWindowToDesktop(h window.Handle, id desktop.ID) error {
	guid := id.GUIDBytes()
	r0, _, _ := syscall.SyscallN(m.obj.method(slotMoveWindowToDesktop),
		uintptr(unsafe.Pointer(m.obj)),
		uintptr(h),
		uintptr(unsafe.Pointer(&guid)))
	return check("MoveWindowToDesktop", HRESULT(r0))
}

func (m *manager) Release() {
	m.obj.release()
}

// enumerator is IVirtualDesktopManagerInternal.
type enumerator struct {
	obj     *comObject
	variant Variant
}

func (e *enumerator) GetDesktops() (desktop.Array, error) {
	var arr *comObject
	r0, _, _ := syscall.SyscallN(e.obj.method(e.variant.GetDesktopsSlot),
		uintptr(unsafe.Pointer(e.obj)),
		uintptr(unsafe.Pointer(&arr)))
	if err := check("GetDesktops", HRESULT(r0)); err != nil {
		return nil, err
	}
	return &objectArray{obj: arr, variant: e.variant}, nil
}

func (e *enumerator) Release() {
	e.obj.release()
}

// objectArray is IObjectArray of IVirtualDesktop.
type objectArray struct {
	obj     *comObject
	variant Variant
}

func (a *objectArray) Count() (int, error) {
	var count uint32
	r0, _, _ := syscall.SyscallN(a.obj.method(slotObjectArrayGetCount),
		uintptr(unsafe.Pointer(a.obj)),
		uintptr(unsafe.Pointer(&count)))
	if err := check("IObjectArray::GetCount", HRESULT(r0)); err != nil {
		return 0, err
	}
	return int(count), nil
}

func (a *objectArray) IDAt(index int) (desktop.ID, error) {
	iid := mustGUID(a.variant.DesktopIID)
	var vd *comObject
	r0, _, _ := syscall.SyscallN(a.obj.method(slotObjectArrayGetAt),
		uintptr(unsafe.Pointer(a.obj)),
		uintptr(uint32(index)),
		uintptr(unsafe.Pointer(&iid)),
		uintptr(unsafe.Pointer(&vd)))
	if err := check("IObjectArray::GetAt", HRESULT(r0)); err != nil {
		return desktop.ID{}, err
	}
	defer vd.release()

	var guid windows.GUID
	r0, _, _ = syscall.SyscallN(vd.method(a.variant.GetIDSlot),
		uintptr(unsafe.Pointer(vd)),
		uintptr(unsafe.Pointer(&guid)))
	if err := check("IVirtualDesktop::GetID", HRESULT(r0)); err != nil {
		return desktop.ID{}, err
	}
	return desktop.FromGUIDBytes((*[desktop.IDSize]byte)(unsafe.Pointer(&guid))[:])
}

func (a *objectArray) Release() {
	a.obj.release()
}
