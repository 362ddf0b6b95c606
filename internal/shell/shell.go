// Package shell binds the Explorer immersive shell's virtual desktop
// services over COM.
package shell

import (
	"fmt"
	"strings"
)

const (
	clsidImmersiveShell       = "{C2F03A33-21F5-47FA-B4BB-156362A2F239}"
	sidVirtualDesktopInternal = "{C5E0CDCA-7B6E-41B2-9FC4-D93975CC467B}"
	iidServiceProvider        = "{6D5140C1-7436-11CE-8034-00AA006009FA}"
	iidVirtualDesktopManager  = "{A5CD92FF-29BE-454C-8D04-D82879FB3F1B}"
	iidObjectArray            = "{92CA9DCD-5622-4BBA-A805-5E9F541BD8C9}"
)

// Variant describes one published layout of the undocumented
// IVirtualDesktopManagerInternal interface.
type Variant struct {
	Name            string
	InternalIID     string // IVirtualDesktopManagerInternal
	DesktopIID      string // IVirtualDesktop
	GetDesktopsSlot int    // vtable index of GetDesktops
	GetIDSlot       int    // vtable index of IVirtualDesktop::GetID
}

// Variants in probing order, newest first.
var Variants = []Variant{
	{
		Name:            "win10-1809",
		InternalIID:     "{F31574D6-B682-4CDC-BD56-1827860ABEC6}",
		DesktopIID:      "{FF72FFDD-BE7E-43FC-9C03-AD81681E88E4}",
		GetDesktopsSlot: 7,
		GetIDSlot:       4,
	},
	{
		Name:            "win10",
		InternalIID:     "{AF8DA486-95BB-4460-B3B7-6E7A6B2962B5}",
		DesktopIID:      "{FF72FFDD-BE7E-43FC-9C03-AD81681E88E4}",
		GetDesktopsSlot: 7,
		GetIDSlot:       4,
	},
}

const (
	// InterfaceAuto probes every known variant.
	InterfaceAuto = "auto"
	// InterfaceNone never binds the internal interface.
	InterfaceNone = "none"
)

// SelectVariants returns the variants to probe for a config value.
func SelectVariants(name string) ([]Variant, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "", InterfaceAuto:
		return Variants, nil
	case InterfaceNone:
		return nil, nil
	}
	for _, v := range Variants {
		if v.Name == name {
			return []Variant{v}, nil
		}
	}
	return nil, fmt.Errorf("unknown internal interface %q (use auto, none, %s)", name, strings.Join(VariantNames(), ", "))
}

// VariantNames lists the known variant names.
func VariantNames() []string {
	names := make([]string, len(Variants))
	for i, v := range Variants {
		names[i] = v.Name
	}
	return names
}

// Platform is the COM runtime for the calling thread. Every method must be
// called from the same OS thread.
type Platform struct {
	variants []Variant
	balance  bool // CoInitializeEx succeeded and needs a CoUninitialize
}

// NewPlatform probes variants when binding the internal interface.
func NewPlatform(variants []Variant) *Platform {
	return &Platform{variants: variants}
}
