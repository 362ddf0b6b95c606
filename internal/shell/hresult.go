package shell

import "fmt"

// HRESULT is a failed COM call status.
type HRESULT uint32

const (
	sOK                  HRESULT = 0x00000000
	sFalse               HRESULT = 0x00000001
	eNoInterface         HRESULT = 0x80004002
	ePointer             HRESULT = 0x80004003
	eFail                HRESULT = 0x80004005
	eAccessDenied        HRESULT = 0x80070005
	eInvalidArg          HRESULT = 0x80070057
	regdbEClassNotReg    HRESULT = 0x80040154
	rpcEChangedMode      HRESULT = 0x80010106
	rpcEDisconnected     HRESULT = 0x80010108
	typeEElementNotFound HRESULT = 0x8002802B
)

var hresultNames = map[HRESULT]string{
	eNoInterface:         "E_NOINTERFACE",
	ePointer:             "E_POINTER",
	eFail:                "E_FAIL",
	eAccessDenied:        "E_ACCESSDENIED",
	eInvalidArg:          "E_INVALIDARG",
	regdbEClassNotReg:    "REGDB_E_CLASSNOTREG",
	rpcEChangedMode:      "RPC_E_CHANGED_MODE",
	rpcEDisconnected:     "RPC_E_DISCONNECTED",
	typeEElementNotFound: "TYPE_E_ELEMENTNOTFOUND",
}

// Failed reports whether hr is an error status.
func (hr HRESULT) Failed() bool {
	return int32(hr) < 0
}

func (hr HRESULT) Error() string {
	if name, ok := hresultNames[hr]; ok {
		return fmt.Sprintf("%s (0x%08X)", name, uint32(hr))
	}
	return fmt.Sprintf("HRESULT 0x%08X", uint32(hr))
}

// check converts a returned status into an error.
func check(op string, hr HRESULT) error {
	if hr.Failed() {
		return fmt.Errorf("%s: %w", op, hr)
	}
	return nil
}
